// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-03-08
// Last Modified: 2026-03-12

package commands

import (
	"context"
	"log"

	"github.com/spf13/cobra"

	"github.com/similigh/empty-issue-closer/internal/core/config"
	"github.com/similigh/empty-issue-closer/internal/core/pipeline"
	"github.com/similigh/empty-issue-closer/internal/integrations/actions"
	"github.com/similigh/empty-issue-closer/internal/integrations/github"
	"github.com/similigh/empty-issue-closer/internal/steps"
	"github.com/similigh/empty-issue-closer/internal/templates"
)

// actionRuntime is the part of the Actions runtime a run needs.
type actionRuntime interface {
	Input(name string) string
	Mask(secret string)
	Debug() bool
	Trigger() (*actions.Trigger, error)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Triage the issue that triggered the workflow",
	Long: `Run as a GitHub Actions step. Reads the action inputs and the triggering
issues event, decides whether the issue should be closed or reopened and applies
the decision (or only logs it when dry_run is set).`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		rt := actions.New()
		if _, err := executeAction(cmd.Context(), rt); err != nil {
			rt.Fail(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}

// executeAction performs one triage run. A missing token fails the run
// before the event is read.
func executeAction(ctx context.Context, rt actionRuntime) (*pipeline.Result, error) {
	token := rt.Input(config.InputGitHubToken)
	rt.Mask(token)

	cfg, err := loadConfig(ctx, token)
	if err != nil {
		return nil, err
	}
	cfg.ApplyInputs(rt.Input)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	trigger, err := rt.Trigger()
	if err != nil {
		return nil, err
	}
	issue := trigger.Issue

	client, err := github.NewClientForAPI(ctx, cfg.Token, trigger.APIURL)
	if err != nil {
		return nil, err
	}

	debug := verbose || rt.Debug()
	deps := &pipeline.Dependencies{
		Mutator:   client,
		Templates: templateSource(cfg, client, issue.Org, issue.Repo),
		DryRun:    cfg.DryRun,
		Verbose:   debug,
	}

	p, err := steps.Build(deps)
	if err != nil {
		return nil, err
	}

	pCtx := pipeline.NewContext(ctx, issue, cfg)
	pCtx.Result.DryRun = cfg.DryRun
	if debug {
		log.Printf("[closer] Run %s: %s/%s#%d (%s.%s)", pCtx.Result.RunID, issue.Org, issue.Repo, issue.Number, issue.EventName, issue.EventAction)
	}

	if err := p.Run(pCtx); err != nil {
		return pCtx.Result, err
	}
	return pCtx.Result, nil
}

// templateSource picks where the template corpus is read from.
func templateSource(cfg *config.Config, client *github.Client, org, repo string) templates.Source {
	if cfg.Templates.Source == config.SourceAPI {
		return github.NewTemplateSource(client, org, repo, cfg.Templates.Dir, cfg.Templates.Ref)
	}
	return templates.NewDirSource(cfg.Templates.Dir)
}
