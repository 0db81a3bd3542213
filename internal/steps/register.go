// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-03-06

package steps

import (
	"github.com/similigh/empty-issue-closer/internal/core/pipeline"
)

// RegisterAll registers all built-in steps with the registry.
func RegisterAll(r *pipeline.Registry) {
	r.Register("gatekeeper", func(deps *pipeline.Dependencies) (pipeline.Step, error) {
		return NewGatekeeper(deps), nil
	})

	r.Register("body_check", func(deps *pipeline.Dependencies) (pipeline.Step, error) {
		return NewBodyCheck(deps), nil
	})

	r.Register("template_loader", func(deps *pipeline.Dependencies) (pipeline.Step, error) {
		return NewTemplateLoader(deps), nil
	})

	r.Register("template_check", func(deps *pipeline.Dependencies) (pipeline.Step, error) {
		return NewTemplateCheck(deps), nil
	})

	r.Register("action_executor", func(deps *pipeline.Dependencies) (pipeline.Step, error) {
		return NewActionExecutor(deps), nil
	})
}

// Build creates the default closer pipeline.
func Build(deps *pipeline.Dependencies) (*pipeline.Pipeline, error) {
	registry := pipeline.NewRegistry()
	RegisterAll(registry)
	return registry.BuildFromNames(pipeline.DefaultSteps, deps)
}
