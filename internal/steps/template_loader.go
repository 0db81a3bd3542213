// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-03-06
// Last Modified: 2026-03-12

package steps

import (
	"fmt"
	"log"

	"github.com/similigh/empty-issue-closer/internal/core/pipeline"
	"github.com/similigh/empty-issue-closer/internal/templates"
)

// TemplateLoader loads the repository's issue templates when template checks
// are enabled and no decision was reached yet.
type TemplateLoader struct {
	source  templates.Source
	verbose bool
}

// NewTemplateLoader creates a new template loader step.
func NewTemplateLoader(deps *pipeline.Dependencies) *TemplateLoader {
	return &TemplateLoader{
		source:  deps.Templates,
		verbose: deps.Verbose,
	}
}

// Name returns the step name.
func (s *TemplateLoader) Name() string {
	return "template_loader"
}

// Run loads the template corpus into the context.
func (s *TemplateLoader) Run(ctx *pipeline.Context) error {
	if ctx.Decision.IsAction() {
		return nil
	}
	if !ctx.Config.CheckTemplates {
		log.Printf("[template_loader] Template checks disabled, nothing left to decide")
		return pipeline.ErrSkipPipeline
	}
	if s.source == nil {
		return fmt.Errorf("no template source configured")
	}

	corpus, err := templates.Load(ctx.Ctx, s.source)
	if err != nil {
		return err
	}

	ctx.Corpus = corpus
	ctx.Result.TemplatesLoaded = len(corpus)
	log.Printf("[template_loader] Loaded %d issue templates", len(corpus))
	if s.verbose {
		for _, t := range corpus {
			log.Printf("[template_loader] %s (%s): %q", t.DisplayName(), t.File, t.Body)
		}
	}
	return nil
}
