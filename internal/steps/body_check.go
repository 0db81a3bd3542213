// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-03-06
// Last Modified: 2026-03-06

package steps

import (
	"log"

	"github.com/similigh/empty-issue-closer/internal/core/pipeline"
	"github.com/similigh/empty-issue-closer/internal/core/policy"
)

// BodyCheck closes empty issues and reopens issues that were filled in.
type BodyCheck struct{}

// NewBodyCheck creates a new body check step.
func NewBodyCheck(_ *pipeline.Dependencies) *BodyCheck {
	return &BodyCheck{}
}

// Name returns the step name.
func (s *BodyCheck) Name() string {
	return "body_check"
}

// Run applies the empty-body rules.
func (s *BodyCheck) Run(ctx *pipeline.Context) error {
	log.Printf("[body_check] Checking if issue #%d is empty", ctx.Issue.Number)

	d := policy.EvaluateBody(ctx.PolicyInput())
	if d.IsAction() {
		log.Printf("[body_check] Decision for #%d: %s since %s", ctx.Issue.Number, d.Kind, d.Kind.Reason())
		ctx.Decide(d)
	}
	return nil
}
