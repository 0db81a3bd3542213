// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-03-12

package steps

import (
	"fmt"
	"log"

	"github.com/similigh/empty-issue-closer/internal/core/pipeline"
	"github.com/similigh/empty-issue-closer/internal/core/policy"
)

// ActionExecutor applies the run's decision to the issue.
type ActionExecutor struct {
	mutator policy.Mutator
	dryRun  bool
}

// NewActionExecutor creates a new action executor step.
func NewActionExecutor(deps *pipeline.Dependencies) *ActionExecutor {
	return &ActionExecutor{
		mutator: deps.Mutator,
		dryRun:  deps.DryRun,
	}
}

// Name returns the step name.
func (s *ActionExecutor) Name() string {
	return "action_executor"
}

// Run calls the mutator at most once per run.
func (s *ActionExecutor) Run(ctx *pipeline.Context) error {
	d := ctx.Decision
	ctx.Result.DryRun = s.dryRun

	if !d.IsAction() {
		log.Printf("[action_executor] No action needed for #%d", ctx.Issue.Number)
		return nil
	}

	state := d.Kind.TargetState()
	verb := "Closing"
	if state == policy.StateOpen {
		verb = "Re-opening"
	}

	if s.dryRun {
		log.Printf("[action_executor] DRY RUN: %s #%d since %s", verb, ctx.Issue.Number, d.Kind.Reason())
		if d.Comment != "" {
			log.Printf("[action_executor] DRY RUN: Would post comment:\n%s", d.Comment)
		}
		return nil
	}

	if ctx.Result.Applied {
		return fmt.Errorf("decision for issue #%d was already applied", ctx.Issue.Number)
	}
	if s.mutator == nil {
		return fmt.Errorf("GitHub client is required to change issue state")
	}

	log.Printf("[action_executor] %s #%d since %s", verb, ctx.Issue.Number, d.Kind.Reason())
	if err := s.mutator.ApplyDecision(ctx.Ctx, ctx.Issue.Org, ctx.Issue.Repo, ctx.Issue.Number, state, d.Comment); err != nil {
		return fmt.Errorf("failed to change state of issue #%d: %w", ctx.Issue.Number, err)
	}
	ctx.Result.Applied = true
	return nil
}
