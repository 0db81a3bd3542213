// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-03-04
// Last Modified: 2026-03-09

// Package text provides the normalization used to compare issue bodies
// against issue templates.
package text

import (
	"regexp"
	"strings"
)

// frontMatterPattern matches a block that opens and closes with a line made of
// three dashes. The lazy body makes it stop at the first closing line.
var frontMatterPattern = regexp.MustCompile(`(?ms)^---[ \t\r]*$(.*?)^---[ \t\r]*$`)

// whitespaceReplacer drops every character ignored by body comparison.
// Pipes are included to stay compatible with bodies compared by earlier releases.
var whitespaceReplacer = strings.NewReplacer(
	"\r", "",
	"\n", "",
	" ", "",
	"|", "",
)

// StripTemplateHeader removes the first front-matter block from a template.
// Text without a block is returned unchanged.
func StripTemplateHeader(s string) string {
	loc := frontMatterPattern.FindStringIndex(s)
	if loc == nil {
		return s
	}
	return s[:loc[0]] + s[loc[1]:]
}

// FrontMatter returns the content between the delimiters of the first
// front-matter block, and whether a block was found.
func FrontMatter(s string) (string, bool) {
	m := frontMatterPattern.FindStringSubmatch(s)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// NormalizeWhitespace removes carriage returns, newlines, spaces and pipes.
func NormalizeWhitespace(s string) string {
	return whitespaceReplacer.Replace(s)
}

// BodiesEqual reports whether two bodies are equal once normalized.
func BodiesEqual(a, b string) bool {
	return NormalizeWhitespace(a) == NormalizeWhitespace(b)
}
