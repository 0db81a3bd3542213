// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-03-04
// Last Modified: 2026-03-11

package policy

import (
	"fmt"

	"github.com/similigh/empty-issue-closer/internal/templates"
)

// Input is everything the policy needs to reach a decision.
type Input struct {
	Issue          Snapshot
	Delta          *ChangeDelta
	Event          string
	Comments       Comments
	CheckTemplates bool
}

// ValidateTrigger rejects anything other than an opened, reopened or edited
// issues event.
func ValidateTrigger(eventName, action string) error {
	if eventName != TriggerEventName {
		return &ConfigError{Reason: fmt.Sprintf("this action can only be run by the issues event, got %q", eventName)}
	}
	switch action {
	case EventOpened, EventReopened, EventEdited:
		return nil
	}
	return &ConfigError{Reason: fmt.Sprintf("this action is meant to be run with the 'opened', 'reopened' or 'edited' event types, got %q", action)}
}

// EvaluateBody applies the empty-body rules. It returns NoAction when neither
// rule matches. The body rules take priority over the template rules, so
// EvaluateTemplates is only consulted when this returns NoAction.
func EvaluateBody(in Input) Decision {
	switch {
	case in.Issue.State == StateOpen && !in.Issue.HasBody():
		return Decision{Kind: CloseEmpty, Comment: in.Comments.Close}
	case in.Issue.State == StateClosed && in.Event == EventEdited &&
		WasBodyEmpty(in.Delta) && in.Issue.HasBody():
		return Decision{Kind: ReopenFilled, Comment: in.Comments.Open}
	}
	return Decision{Kind: NoAction}
}

// EvaluateTemplates applies the template rules against corpus. The caller is
// responsible for checking that template checks are enabled.
func EvaluateTemplates(in Input, corpus templates.Corpus) Decision {
	if !in.Issue.HasBody() {
		return Decision{Kind: NoAction}
	}
	body := in.Issue.BodyText()
	bodies := corpus.Bodies()

	switch in.Issue.State {
	case StateOpen:
		if tmpl, ok := corpus.Match(body); ok {
			return Decision{Kind: CloseUnchangedTemplate, Comment: in.Comments.TemplateClose, Template: tmpl.DisplayName()}
		}
	case StateClosed:
		if in.Event != EventEdited || IsEmptyTemplate(body, bodies) {
			break
		}
		if tmpl, ok := corpus.Match(in.Delta.PreviousBody()); ok {
			return Decision{Kind: ReopenChangedTemplate, Comment: in.Comments.TemplateOpen, Template: tmpl.DisplayName()}
		}
	}
	return Decision{Kind: NoAction}
}
