// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-03-12

// Package steps contains the pipeline steps of the closer workflow.
// Each step implements the pipeline.Step interface.
package steps

import (
	"fmt"
	"log"

	"github.com/similigh/empty-issue-closer/internal/core/pipeline"
	"github.com/similigh/empty-issue-closer/internal/core/policy"
)

// Gatekeeper rejects runs that were not triggered by a supported issues event.
type Gatekeeper struct {
	verbose bool
}

// NewGatekeeper creates a new gatekeeper step.
func NewGatekeeper(deps *pipeline.Dependencies) *Gatekeeper {
	return &Gatekeeper{verbose: deps.Verbose}
}

// Name returns the step name.
func (s *Gatekeeper) Name() string {
	return "gatekeeper"
}

// Run validates the trigger. Unsupported triggers are fatal, not skipped.
func (s *Gatekeeper) Run(ctx *pipeline.Context) error {
	if s.verbose {
		log.Printf("[gatekeeper] Issue #%d, EventName=%q, EventAction=%q, Repo=%s/%s",
			ctx.Issue.Number, ctx.Issue.EventName, ctx.Issue.EventAction, ctx.Issue.Org, ctx.Issue.Repo)
	}

	if err := policy.ValidateTrigger(ctx.Issue.EventName, ctx.Issue.EventAction); err != nil {
		return err
	}

	if ctx.Issue.Number == 0 {
		return &policy.ConfigError{Reason: "issue number is missing from the event payload"}
	}

	switch ctx.Issue.State {
	case policy.StateOpen, policy.StateClosed:
	default:
		return fmt.Errorf("unexpected state %q for issue #%d", ctx.Issue.State, ctx.Issue.Number)
	}

	return nil
}
