// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-03-07
// Last Modified: 2026-03-12

// Package actions adapts the GitHub Actions runtime: inputs, the triggering
// event and workflow-command output.
package actions

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	githubapi "github.com/google/go-github/v60/github"
	"github.com/sethvargo/go-githubactions"

	"github.com/similigh/empty-issue-closer/internal/core/pipeline"
	"github.com/similigh/empty-issue-closer/internal/core/policy"
)

// Runtime wraps the Actions toolkit for a single run.
type Runtime struct {
	action *githubactions.Action
	getenv func(string) string
}

// Trigger is the event that started the run.
type Trigger struct {
	Issue  *pipeline.Issue
	APIURL string
}

// New creates a runtime reading from the process environment.
func New() *Runtime {
	return NewWithEnv(os.Getenv)
}

// NewWithEnv creates a runtime that reads variables through getenv.
func NewWithEnv(getenv func(string) string) *Runtime {
	return &Runtime{
		action: githubactions.New(githubactions.WithGetenv(getenv)),
		getenv: getenv,
	}
}

// Input returns the trimmed value of an action input.
func (r *Runtime) Input(name string) string {
	return r.action.GetInput(name)
}

// Debug reports whether the workflow runs with step debug logging.
func (r *Runtime) Debug() bool {
	return r.getenv("RUNNER_DEBUG") == "1"
}

// Mask hides a secret in the workflow log.
func (r *Runtime) Mask(secret string) {
	if secret != "" {
		r.action.AddMask(secret)
	}
}

// Debugf writes a debug message, shown only when step debugging is on.
func (r *Runtime) Debugf(format string, args ...any) {
	r.action.Debugf(format, args...)
}

// Fail reports err as the run's failure and exits with a failure status.
// Error detail is only written at debug level.
func (r *Runtime) Fail(err error) {
	r.action.Debugf("%+v", err)
	r.action.Fatalf("%s", err.Error())
}

// Trigger reads the triggering event from the runner environment.
func (r *Runtime) Trigger() (*Trigger, error) {
	ghctx, err := r.action.Context()
	if err != nil {
		return nil, fmt.Errorf("failed to read workflow context: %w", err)
	}
	if ghctx.Event == nil {
		return nil, &policy.ConfigError{Reason: "event payload is missing (GITHUB_EVENT_PATH not set)"}
	}

	payload, err := json.Marshal(ghctx.Event)
	if err != nil {
		return nil, fmt.Errorf("failed to encode event payload: %w", err)
	}

	issue, err := ParseIssueEvent(ghctx.EventName, payload)
	if err != nil {
		return nil, err
	}

	if issue.Org == "" || issue.Repo == "" {
		issue.Org, issue.Repo = splitRepository(ghctx.Repository)
	}

	return &Trigger{Issue: issue, APIURL: ghctx.APIURL}, nil
}

// ParseIssueEvent decodes an issues event payload.
func ParseIssueEvent(eventName string, payload []byte) (*pipeline.Issue, error) {
	var ev githubapi.IssuesEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return nil, fmt.Errorf("failed to parse event payload: %w", err)
	}

	issue := &pipeline.Issue{
		EventName:   eventName,
		EventAction: ev.GetAction(),
	}

	if ev.Repo != nil {
		issue.Org = ev.Repo.GetOwner().GetLogin()
		issue.Repo = ev.Repo.GetName()
	}

	if ev.Issue == nil {
		// Still returned so the trigger can be validated first.
		return issue, nil
	}

	issue.Number = ev.Issue.GetNumber()
	issue.Title = ev.Issue.GetTitle()
	issue.State = ev.Issue.GetState()
	issue.Body = ev.Issue.Body
	issue.Author = ev.Issue.GetUser().GetLogin()
	issue.URL = ev.Issue.GetHTMLURL()

	if ev.Changes != nil {
		delta := &policy.ChangeDelta{}
		if ev.Changes.Body != nil {
			delta.BodyFrom = ev.Changes.Body.From
		}
		issue.Changes = delta
	}

	return issue, nil
}

func splitRepository(full string) (string, string) {
	parts := strings.SplitN(strings.TrimSpace(full), "/", 2)
	if len(parts) != 2 {
		return "", ""
	}
	return parts[0], parts[1]
}
