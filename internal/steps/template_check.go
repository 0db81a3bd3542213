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

// TemplateCheck closes issues that left a template unchanged and reopens them
// once the template is filled in.
type TemplateCheck struct{}

// NewTemplateCheck creates a new template check step.
func NewTemplateCheck(_ *pipeline.Dependencies) *TemplateCheck {
	return &TemplateCheck{}
}

// Name returns the step name.
func (s *TemplateCheck) Name() string {
	return "template_check"
}

// Run applies the template rules against the loaded corpus.
func (s *TemplateCheck) Run(ctx *pipeline.Context) error {
	if ctx.Decision.IsAction() || !ctx.Config.CheckTemplates {
		return nil
	}

	log.Printf("[template_check] Checking if issue #%d changed the template", ctx.Issue.Number)

	d := policy.EvaluateTemplates(ctx.PolicyInput(), ctx.Corpus)
	if d.IsAction() {
		log.Printf("[template_check] Decision for #%d: %s since %s (%s)", ctx.Issue.Number, d.Kind, d.Kind.Reason(), d.Template)
		ctx.Decide(d)
	}
	return nil
}
