// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-03-12

// Package pipeline provides step registration and preset workflow building.
package pipeline

import (
	"fmt"
	"sync"

	"github.com/similigh/empty-issue-closer/internal/core/policy"
	"github.com/similigh/empty-issue-closer/internal/templates"
)

// Registry holds registered step factories.
// Step factories create Step instances, allowing for dependency injection.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]StepFactory
}

// StepFactory is a function that creates a Step.
// It receives dependencies (like clients, config) as parameters.
type StepFactory func(deps *Dependencies) (Step, error)

// Dependencies holds the dependencies that can be injected into steps.
type Dependencies struct {
	// Mutator changes issue state. It may be nil in dry-run mode.
	Mutator policy.Mutator

	// Templates is where the template corpus is read from.
	Templates templates.Source

	// DryRun logs decisions instead of applying them.
	DryRun bool

	// Verbose enables detailed logging.
	Verbose bool
}

// NewRegistry creates a new step registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]StepFactory),
	}
}

// Register adds a step factory to the registry.
func (r *Registry) Register(name string, factory StepFactory) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = factory
}

// Get retrieves a step factory by name.
func (r *Registry) Get(name string) (StepFactory, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	factory, ok := r.factories[name]
	return factory, ok
}

// BuildFromNames creates a pipeline from a list of step names.
func (r *Registry) BuildFromNames(names []string, deps *Dependencies) (*Pipeline, error) {
	var steps []Step
	for _, name := range names {
		factory, ok := r.Get(name)
		if !ok {
			return nil, fmt.Errorf("unknown step: %s", name)
		}
		step, err := factory(deps)
		if err != nil {
			return nil, fmt.Errorf("failed to create step '%s': %w", name, err)
		}
		steps = append(steps, step)
	}
	return New(steps...), nil
}

// DefaultSteps is the closer workflow. Body checks run before the template
// corpus is loaded so that decided runs never read templates.
var DefaultSteps = []string{
	"gatekeeper",
	"body_check",
	"template_loader",
	"template_check",
	"action_executor",
}
