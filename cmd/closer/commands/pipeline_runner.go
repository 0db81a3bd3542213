// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-02-02
// Last Modified: 2026-03-12

package commands

import (
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/similigh/empty-issue-closer/internal/core/pipeline"
	"github.com/similigh/empty-issue-closer/internal/tui"
)

// Wrapper step to send status updates
type statusReportingStep struct {
	inner      pipeline.Step
	statusChan chan<- tui.PipelineStatusMsg
	delay      time.Duration
}

func (s *statusReportingStep) Name() string {
	return s.inner.Name()
}

func (s *statusReportingStep) Run(ctx *pipeline.Context) error {
	s.statusChan <- tui.PipelineStatusMsg{Step: s.Name(), Status: tui.StatusStarted, Message: "Starting..."}
	time.Sleep(s.delay) // visual effect only

	err := s.inner.Run(ctx)

	if err != nil {
		if errors.Is(err, pipeline.ErrSkipPipeline) {
			s.statusChan <- tui.PipelineStatusMsg{Step: s.Name(), Status: tui.StatusSkipped, Message: "Nothing left to decide"}
			return err
		}
		s.statusChan <- tui.PipelineStatusMsg{Step: s.Name(), Status: tui.StatusError, Message: err.Error()}
		return err
	}

	s.statusChan <- tui.PipelineStatusMsg{Step: s.Name(), Status: tui.StatusSuccess, Message: "Completed"}
	return nil
}

// withStatus wraps every step of p so it reports progress on statusChan.
func withStatus(p *pipeline.Pipeline, statusChan chan<- tui.PipelineStatusMsg, delay time.Duration) *pipeline.Pipeline {
	var wrapped []pipeline.Step
	for _, step := range p.Steps() {
		wrapped = append(wrapped, &statusReportingStep{inner: step, statusChan: statusChan, delay: delay})
	}
	return pipeline.New(wrapped...)
}

// runWithTUI runs p while a progress view follows it. The final result is
// sent to the program once the pipeline returns.
func runWithTUI(title string, p *pipeline.Pipeline, pCtx *pipeline.Context, render func(*pipeline.Context, error) tui.ResultMsg) error {
	var names []string
	for _, step := range p.Steps() {
		names = append(names, step.Name())
	}

	// Each step reports at most twice, so the pipeline never blocks on a
	// view that has already quit.
	statusChan := make(chan tui.PipelineStatusMsg, 2*len(names))
	prog := tea.NewProgram(tui.NewModel(title, names, statusChan))

	errCh := make(chan error, 1)
	go func() {
		err := withStatus(p, statusChan, 100*time.Millisecond).Run(pCtx)
		close(statusChan)
		prog.Send(render(pCtx, err))
		errCh <- err
	}()

	if _, err := prog.Run(); err != nil {
		return err
	}
	return <-errCh
}
