// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-03-12

// Package pipeline provides the step pipeline that turns an issue event into
// at most one issue state change.
// It defines the Step interface and Context structure used by all pipeline steps.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/similigh/empty-issue-closer/internal/core/config"
	"github.com/similigh/empty-issue-closer/internal/core/policy"
	"github.com/similigh/empty-issue-closer/internal/templates"
)

// ErrSkipPipeline indicates that the pipeline should stop gracefully.
// This is not an error condition, just an early exit (e.g., nothing left to decide).
var ErrSkipPipeline = errors.New("skip remaining pipeline steps")

// Step defines the interface that all pipeline steps must implement.
type Step interface {
	// Name returns the unique identifier for this step.
	Name() string

	// Run executes the step's logic.
	// It should return ErrSkipPipeline to stop the pipeline gracefully,
	// or any other error to indicate failure.
	Run(ctx *Context) error
}

// Issue is the issue carried by the triggering event.
type Issue struct {
	Org    string  `json:"org"`
	Repo   string  `json:"repo"`
	Number int     `json:"number"`
	Title  string  `json:"title,omitempty"`
	State  string  `json:"state"` // "open" or "closed"
	Body   *string `json:"body"`
	Author string  `json:"author,omitempty"`
	URL    string  `json:"url,omitempty"`

	// EventName is the workflow event (e.g. "issues") and EventAction its
	// sub-type (e.g. "edited").
	EventName   string `json:"event_name"`
	EventAction string `json:"event_action"`

	// Changes holds the previous body on edited events.
	Changes *policy.ChangeDelta `json:"changes,omitempty"`
}

// Snapshot returns the issue fields the policy evaluates.
func (i *Issue) Snapshot() policy.Snapshot {
	return policy.Snapshot{Number: i.Number, State: i.State, Body: i.Body}
}

// Result holds the accumulated results from pipeline execution.
type Result struct {
	RunID           string `json:"run_id"`
	IssueNumber     int    `json:"issue_number"`
	Decision        string `json:"decision"`
	TargetState     string `json:"target_state,omitempty"`
	Comment         string `json:"comment,omitempty"`
	Template        string `json:"template,omitempty"`
	TemplatesLoaded int    `json:"templates_loaded"`
	Applied         bool   `json:"applied"`
	DryRun          bool   `json:"dry_run"`
}

// Context carries data through the pipeline steps.
type Context struct {
	// Ctx is the Go context for cancellation and timeouts.
	Ctx context.Context

	// Issue is the issue being processed.
	Issue *Issue

	// Config is the loaded configuration.
	Config *config.Config

	// Result accumulates the processing results.
	Result *Result

	// Decision is set by the first step that reaches one.
	Decision policy.Decision

	// Corpus holds the templates once they are loaded.
	Corpus templates.Corpus
}

// NewContext creates a new pipeline context for an issue.
func NewContext(ctx context.Context, issue *Issue, cfg *config.Config) *Context {
	return &Context{
		Ctx:    ctx,
		Issue:  issue,
		Config: cfg,
		Result: &Result{
			RunID:       uuid.NewString(),
			IssueNumber: issue.Number,
			Decision:    policy.NoAction.String(),
		},
	}
}

// PolicyInput builds the policy input for the current issue.
func (c *Context) PolicyInput() policy.Input {
	return policy.Input{
		Issue:          c.Issue.Snapshot(),
		Delta:          c.Issue.Changes,
		Event:          c.Issue.EventAction,
		Comments:       c.Config.Comments.PolicyComments(),
		CheckTemplates: c.Config.CheckTemplates,
	}
}

// Decide records d as the run's decision.
func (c *Context) Decide(d policy.Decision) {
	c.Decision = d
	c.Result.Decision = d.Kind.String()
	c.Result.TargetState = d.Kind.TargetState()
	c.Result.Comment = d.Comment
	c.Result.Template = d.Template
}

// Pipeline executes a sequence of steps.
type Pipeline struct {
	steps []Step
}

// New creates a new pipeline with the given steps.
func New(steps ...Step) *Pipeline {
	return &Pipeline{steps: steps}
}

// Run executes all steps in order.
// Stops on the first error (unless it's ErrSkipPipeline, which is graceful).
func (p *Pipeline) Run(ctx *Context) error {
	for _, step := range p.steps {
		if err := step.Run(ctx); err != nil {
			if errors.Is(err, ErrSkipPipeline) {
				// Graceful early exit
				return nil
			}
			return fmt.Errorf("step '%s' failed: %w", step.Name(), err)
		}
	}
	return nil
}

// AddStep appends a step to the pipeline.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// Steps returns the list of steps (for introspection).
func (p *Pipeline) Steps() []Step {
	return p.steps
}
