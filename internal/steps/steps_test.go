// Author: Sachindu Nethmin
// GitHub: https://github.com/Sachindu-Nethmin
// Created: 2026-03-09
// Last Modified: 2026-03-12

package steps

import (
	"context"
	"errors"
	"testing"

	"github.com/similigh/empty-issue-closer/internal/core/config"
	"github.com/similigh/empty-issue-closer/internal/core/pipeline"
	"github.com/similigh/empty-issue-closer/internal/core/policy"
	"github.com/similigh/empty-issue-closer/internal/templates"
)

const (
	bugTemplate     = "\n\n**Describe the bug**\nA clear and concise description of what the bug is.\n"
	featureTemplate = "\n\n**Is your feature request related to a problem?**\nA clear and concise description of what the problem is.\n"
	filledTemplate  = "\n\n**Describe the bug**\nEverytime I supply the function with a string it gives an error."
)

type mutatorCall struct {
	Owner, Repo    string
	Number         int
	State, Comment string
}

type fakeMutator struct {
	calls []mutatorCall
	err   error
}

func (m *fakeMutator) ApplyDecision(_ context.Context, owner, repo string, number int, state, comment string) error {
	m.calls = append(m.calls, mutatorCall{owner, repo, number, state, comment})
	return m.err
}

type fakeSource struct {
	files   map[string]string
	missing bool
	lists   int
}

func (s *fakeSource) List(context.Context) (templates.Listing, error) {
	s.lists++
	if s.missing {
		return templates.Listing{Found: false}, nil
	}
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	return templates.Listing{Found: true, Names: names}, nil
}

func (s *fakeSource) Read(_ context.Context, name string) (string, error) {
	content, ok := s.files[name]
	if !ok {
		return "", errors.New("file not found")
	}
	return content, nil
}

func strPtr(s string) *string { return &s }

func testConfig(checkTemplates bool) *config.Config {
	cfg := config.Default()
	cfg.CheckTemplates = checkTemplates
	cfg.Comments = config.CommentsConfig{
		Close:         "close",
		Open:          "open",
		TemplateClose: "template close",
		TemplateOpen:  "template open",
	}
	return cfg
}

func runPipeline(t *testing.T, issue *pipeline.Issue, cfg *config.Config, deps *pipeline.Dependencies) (*pipeline.Context, error) {
	t.Helper()
	p, err := Build(deps)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	pCtx := pipeline.NewContext(context.Background(), issue, cfg)
	return pCtx, p.Run(pCtx)
}

func newIssue(action, state string, body *string, delta *policy.ChangeDelta) *pipeline.Issue {
	return &pipeline.Issue{
		Org:         "octo",
		Repo:        "hello",
		Number:      32,
		State:       state,
		Body:        body,
		EventName:   "issues",
		EventAction: action,
		Changes:     delta,
	}
}

func TestPipelineScenarios(t *testing.T) {
	tests := []struct {
		name           string
		issue          *pipeline.Issue
		checkTemplates bool
		wantDecision   policy.Kind
		wantCall       *mutatorCall
		wantListed     bool
		wantTemplate   string
	}{
		{
			name:         "open issue with empty body is closed",
			issue:        newIssue("opened", "open", strPtr(""), nil),
			wantDecision: policy.CloseEmpty,
			wantCall:     &mutatorCall{"octo", "hello", 32, "closed", "close"},
		},
		{
			name:         "closed issue filled in is reopened",
			issue:        newIssue("edited", "closed", strPtr("hello"), &policy.ChangeDelta{BodyFrom: strPtr("")}),
			wantDecision: policy.ReopenFilled,
			wantCall:     &mutatorCall{"octo", "hello", 32, "open", "open"},
		},
		{
			name:           "unchanged template is closed",
			issue:          newIssue("opened", "open", strPtr(bugTemplate), nil),
			checkTemplates: true,
			wantDecision:   policy.CloseUnchangedTemplate,
			wantCall:       &mutatorCall{"octo", "hello", 32, "closed", "template close"},
			wantListed:     true,
			wantTemplate:   "Bug report",
		},
		{
			name:           "filled in template is reopened",
			issue:          newIssue("edited", "closed", strPtr("filled in content"), &policy.ChangeDelta{BodyFrom: strPtr(bugTemplate)}),
			checkTemplates: true,
			wantDecision:   policy.ReopenChangedTemplate,
			wantCall:       &mutatorCall{"octo", "hello", 32, "open", "template open"},
			wantListed:     true,
			wantTemplate:   "Bug report",
		},
		{
			name:         "closed issue edited without body delta is reopened",
			issue:        newIssue("edited", "closed", strPtr("hello"), nil),
			wantDecision: policy.ReopenFilled,
			wantCall:     &mutatorCall{"octo", "hello", 32, "open", "open"},
		},
		{
			name:         "closed issue reopened event is ignored",
			issue:        newIssue("reopened", "closed", strPtr("hello"), nil),
			wantDecision: policy.NoAction,
		},
		{
			name:         "closed issue still empty is ignored",
			issue:        newIssue("edited", "closed", strPtr(""), &policy.ChangeDelta{BodyFrom: strPtr("")}),
			wantDecision: policy.NoAction,
		},
		{
			name:           "template with whitespace edits is closed",
			issue:          newIssue("edited", "open", strPtr(featureTemplate+"\n\n   \r\n"), nil),
			checkTemplates: true,
			wantDecision:   policy.CloseUnchangedTemplate,
			wantCall:       &mutatorCall{"octo", "hello", 32, "closed", "template close"},
			wantListed:     true,
			wantTemplate:   "Feature request",
		},
		{
			name:           "filled in bug template stays open",
			issue:          newIssue("opened", "open", strPtr(filledTemplate), nil),
			checkTemplates: true,
			wantDecision:   policy.NoAction,
			wantListed:     true,
		},
		{
			name:           "template swapped for another template stays closed",
			issue:          newIssue("edited", "closed", strPtr(featureTemplate), &policy.ChangeDelta{BodyFrom: strPtr(bugTemplate)}),
			checkTemplates: true,
			wantDecision:   policy.NoAction,
			wantListed:     true,
		},
		{
			name:           "closed issue with filled previous body stays closed",
			issue:          newIssue("edited", "closed", strPtr("more details"), &policy.ChangeDelta{BodyFrom: strPtr(filledTemplate)}),
			checkTemplates: true,
			wantDecision:   policy.NoAction,
			wantListed:     true,
		},
		{
			name:           "closed template reopened event is ignored",
			issue:          newIssue("reopened", "closed", strPtr("filled in content"), &policy.ChangeDelta{BodyFrom: strPtr(bugTemplate)}),
			checkTemplates: true,
			wantDecision:   policy.NoAction,
			wantListed:     true,
		},
		{
			name:           "filled in issue is left alone",
			issue:          newIssue("opened", "open", strPtr("steps to reproduce..."), nil),
			checkTemplates: true,
			wantDecision:   policy.NoAction,
			wantListed:     true,
		},
		{
			name:         "template checks disabled",
			issue:        newIssue("opened", "open", strPtr(bugTemplate), nil),
			wantDecision: policy.NoAction,
		},
		{
			name:           "empty body decided before templates are read",
			issue:          newIssue("reopened", "open", nil, nil),
			checkTemplates: true,
			wantDecision:   policy.CloseEmpty,
			wantCall:       &mutatorCall{"octo", "hello", 32, "closed", "close"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mutator := &fakeMutator{}
			source := &fakeSource{files: map[string]string{
				"bug_report.md":      "---\nname: Bug report\n---" + bugTemplate,
				"feature_request.md": "---\nname: Feature request\n---" + featureTemplate,
			}}
			deps := &pipeline.Dependencies{Mutator: mutator, Templates: source}

			pCtx, err := runPipeline(t, tt.issue, testConfig(tt.checkTemplates), deps)
			if err != nil {
				t.Fatalf("Run() error: %v", err)
			}

			if pCtx.Decision.Kind != tt.wantDecision {
				t.Errorf("decision = %s, want %s", pCtx.Decision.Kind, tt.wantDecision)
			}
			if pCtx.Result.Template != tt.wantTemplate {
				t.Errorf("template = %q, want %q", pCtx.Result.Template, tt.wantTemplate)
			}
			if (source.lists > 0) != tt.wantListed {
				t.Errorf("templates listed %d times, wantListed=%v", source.lists, tt.wantListed)
			}

			if tt.wantCall == nil {
				if len(mutator.calls) != 0 {
					t.Errorf("Expected no mutator calls, got %+v", mutator.calls)
				}
				return
			}
			if len(mutator.calls) != 1 {
				t.Fatalf("Expected exactly one mutator call, got %+v", mutator.calls)
			}
			if mutator.calls[0] != *tt.wantCall {
				t.Errorf("mutator call = %+v, want %+v", mutator.calls[0], *tt.wantCall)
			}
			if !pCtx.Result.Applied {
				t.Error("Expected result to be marked applied")
			}
		})
	}
}

func TestPipelineDryRun(t *testing.T) {
	mutator := &fakeMutator{}
	deps := &pipeline.Dependencies{Mutator: mutator, Templates: &fakeSource{}, DryRun: true}

	pCtx, err := runPipeline(t, newIssue("opened", "open", strPtr(""), nil), testConfig(false), deps)
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if pCtx.Decision.Kind != policy.CloseEmpty {
		t.Errorf("Expected decision to be computed in dry run, got %s", pCtx.Decision.Kind)
	}
	if len(mutator.calls) != 0 {
		t.Errorf("Expected no mutator calls in dry run, got %+v", mutator.calls)
	}
	if !pCtx.Result.DryRun || pCtx.Result.Applied {
		t.Errorf("Unexpected result %+v", pCtx.Result)
	}
}

func TestPipelineDryRunWithoutMutator(t *testing.T) {
	deps := &pipeline.Dependencies{Templates: &fakeSource{}, DryRun: true}

	if _, err := runPipeline(t, newIssue("edited", "closed", strPtr("hi"), nil), testConfig(false), deps); err != nil {
		t.Fatalf("Expected dry run to work without a client, got %v", err)
	}
}

func TestPipelineRejectsUnsupportedTrigger(t *testing.T) {
	tests := []struct {
		name      string
		eventName string
		action    string
	}{
		{"wrong event name", "pull_request", "opened"},
		{"unsupported action", "issues", "labeled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mutator := &fakeMutator{}
			issue := newIssue(tt.action, "open", strPtr(""), nil)
			issue.EventName = tt.eventName

			pCtx, err := runPipeline(t, issue, testConfig(true), &pipeline.Dependencies{Mutator: mutator, Templates: &fakeSource{}})

			var cfgErr *policy.ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("Expected ConfigError, got %v", err)
			}
			if pCtx.Decision.IsAction() || len(mutator.calls) != 0 {
				t.Error("Expected no decision and no mutation for an unsupported trigger")
			}
		})
	}
}

func TestPipelineMissingIssue(t *testing.T) {
	issue := newIssue("opened", "open", nil, nil)
	issue.Number = 0

	_, err := runPipeline(t, issue, testConfig(false), &pipeline.Dependencies{Mutator: &fakeMutator{}})
	var cfgErr *policy.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Expected ConfigError, got %v", err)
	}
}

func TestPipelineMissingTemplateDirectory(t *testing.T) {
	mutator := &fakeMutator{}
	source := &fakeSource{missing: true}
	issue := newIssue("opened", "open", strPtr(bugTemplate), nil)

	pCtx, err := runPipeline(t, issue, testConfig(true), &pipeline.Dependencies{Mutator: mutator, Templates: source})
	if err != nil {
		t.Fatalf("Expected missing template directory to be tolerated, got %v", err)
	}
	if pCtx.Decision.IsAction() || len(mutator.calls) != 0 {
		t.Errorf("Expected no action against an empty corpus, got %s", pCtx.Decision.Kind)
	}
}

func TestPipelineTemplateReadFailure(t *testing.T) {
	mutator := &fakeMutator{}
	source := &brokenReadSource{}
	issue := newIssue("opened", "open", strPtr(bugTemplate), nil)

	_, err := runPipeline(t, issue, testConfig(true), &pipeline.Dependencies{Mutator: mutator, Templates: source})
	if err == nil {
		t.Fatal("Expected template read failure to abort the run")
	}
	if len(mutator.calls) != 0 {
		t.Errorf("Expected no mutation after a failed read, got %+v", mutator.calls)
	}
}

type brokenReadSource struct{}

func (brokenReadSource) List(context.Context) (templates.Listing, error) {
	return templates.Listing{Found: true, Names: []string{"bug_report.md"}}, nil
}

func (brokenReadSource) Read(context.Context, string) (string, error) {
	return "", errors.New("permission denied")
}

func TestPipelineMutationFailure(t *testing.T) {
	mutator := &fakeMutator{err: errors.New("rate limited")}

	pCtx, err := runPipeline(t, newIssue("opened", "open", strPtr(""), nil), testConfig(false), &pipeline.Dependencies{Mutator: mutator})
	if err == nil {
		t.Fatal("Expected mutation failure to be fatal")
	}
	if len(mutator.calls) != 1 {
		t.Errorf("Expected a single attempt, got %d", len(mutator.calls))
	}
	if pCtx.Result.Applied {
		t.Error("Expected result not to be marked applied")
	}
}

func TestActionExecutorAppliesOnce(t *testing.T) {
	mutator := &fakeMutator{}
	exec := NewActionExecutor(&pipeline.Dependencies{Mutator: mutator})
	pCtx := pipeline.NewContext(context.Background(), newIssue("opened", "open", nil, nil), testConfig(false))
	pCtx.Decide(policy.Decision{Kind: policy.CloseEmpty})

	if err := exec.Run(pCtx); err != nil {
		t.Fatalf("first Run() error: %v", err)
	}
	if err := exec.Run(pCtx); err == nil {
		t.Error("Expected second application to be refused")
	}
	if len(mutator.calls) != 1 {
		t.Errorf("Expected exactly one mutator call, got %d", len(mutator.calls))
	}
}

func TestActionExecutorRequiresMutator(t *testing.T) {
	exec := NewActionExecutor(&pipeline.Dependencies{})
	pCtx := pipeline.NewContext(context.Background(), newIssue("opened", "open", nil, nil), testConfig(false))
	pCtx.Decide(policy.Decision{Kind: policy.CloseEmpty})

	if err := exec.Run(pCtx); err == nil {
		t.Error("Expected error without a mutator outside dry run")
	}
}
