// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-03-04
// Last Modified: 2026-03-11

// Package policy decides whether an issue should be closed or reopened based on
// its body and the repository's issue templates.
package policy

import (
	"context"
	"fmt"
)

// Issue states as reported by GitHub.
const (
	StateOpen   = "open"
	StateClosed = "closed"
)

// Issue event actions the policy handles.
const (
	EventOpened   = "opened"
	EventReopened = "reopened"
	EventEdited   = "edited"
)

// TriggerEventName is the only workflow event the closer runs on.
const TriggerEventName = "issues"

// Snapshot is the issue as it was at event time.
type Snapshot struct {
	Number int
	State  string
	Body   *string // nil when the payload carried no body
}

// BodyText returns the body, or "" when absent.
func (s Snapshot) BodyText() string {
	if s.Body == nil {
		return ""
	}
	return *s.Body
}

// HasBody reports whether the body is present and non-empty.
func (s Snapshot) HasBody() bool {
	return s.BodyText() != ""
}

// ChangeDelta holds the body before an edit. It is only sent on edited events.
type ChangeDelta struct {
	BodyFrom *string `json:"body_from,omitempty"`
}

// PreviousBody returns the pre-edit body, treating a missing delta as "".
func (d *ChangeDelta) PreviousBody() string {
	if d == nil || d.BodyFrom == nil {
		return ""
	}
	return *d.BodyFrom
}

// Kind identifies which rule produced a decision.
type Kind int

const (
	NoAction Kind = iota
	CloseEmpty
	ReopenFilled
	CloseUnchangedTemplate
	ReopenChangedTemplate
)

func (k Kind) String() string {
	switch k {
	case CloseEmpty:
		return "close_empty"
	case ReopenFilled:
		return "reopen_filled"
	case CloseUnchangedTemplate:
		return "close_unchanged_template"
	case ReopenChangedTemplate:
		return "reopen_changed_template"
	default:
		return "no_action"
	}
}

// Reason explains the decision in log messages.
func (k Kind) Reason() string {
	switch k {
	case CloseEmpty:
		return "it is empty"
	case ReopenFilled:
		return "it is no longer empty"
	case CloseUnchangedTemplate:
		return "the template was not changed"
	case ReopenChangedTemplate:
		return "the template was changed"
	default:
		return "no rule matched"
	}
}

// TargetState is the state the issue moves to, or "" for NoAction.
func (k Kind) TargetState() string {
	switch k {
	case CloseEmpty, CloseUnchangedTemplate:
		return StateClosed
	case ReopenFilled, ReopenChangedTemplate:
		return StateOpen
	default:
		return ""
	}
}

// Decision is the single outcome of a run.
type Decision struct {
	Kind    Kind
	Comment string // empty means no comment is posted

	// Template is the name of the template involved in a template rule, if known.
	Template string
}

// IsAction reports whether the decision changes the issue.
func (d Decision) IsAction() bool {
	return d.Kind != NoAction
}

// Comments holds the comment posted for each kind of decision.
type Comments struct {
	Close         string
	Open          string
	TemplateClose string
	TemplateOpen  string
}

// Mutator applies a decision to an issue. Implementations are not required to
// be idempotent; callers invoke it at most once per run.
type Mutator interface {
	// ApplyDecision posts comment (when non-empty) and then sets the issue state.
	ApplyDecision(ctx context.Context, owner, repo string, number int, state, comment string) error
}

// ConfigError reports a misconfiguration that must stop the run before any
// decision is made.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s", e.Reason)
}
