// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-03-04
// Last Modified: 2026-03-04

package policy

import (
	"github.com/similigh/empty-issue-closer/internal/utils/text"
)

// IsEmptyTemplate reports whether body equals one of the template bodies,
// ignoring whitespace. It is false for an empty corpus.
func IsEmptyTemplate(body string, corpus []string) bool {
	for _, tmpl := range corpus {
		if text.BodiesEqual(body, tmpl) {
			return true
		}
	}
	return false
}

// WasBodyEmpty reports whether the body was empty before the edit.
func WasBodyEmpty(delta *ChangeDelta) bool {
	return len(delta.PreviousBody()) == 0
}

// WasTemplateUnchanged reports whether the body before the edit was an
// unmodified template.
func WasTemplateUnchanged(delta *ChangeDelta, corpus []string) bool {
	return IsEmptyTemplate(delta.PreviousBody(), corpus)
}
