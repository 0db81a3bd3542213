// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-03-05
// Last Modified: 2026-03-12

// Package templates loads a repository's issue templates and matches issue
// bodies against them.
package templates

import (
	"context"
	"fmt"
	"log"

	"gopkg.in/yaml.v3"

	"github.com/similigh/empty-issue-closer/internal/utils/text"
)

// DefaultDir is where GitHub looks for issue templates.
const DefaultDir = ".github/ISSUE_TEMPLATE/"

// Template is a single issue template with its front-matter removed.
type Template struct {
	// Name is the template's display name from its front-matter, if any.
	Name string `json:"name,omitempty"`

	// File is the file name inside the template directory.
	File string `json:"file"`

	// Body is the template text without front-matter.
	Body string `json:"body"`
}

// DisplayName returns the front-matter name, falling back to the file name.
func (t Template) DisplayName() string {
	if t.Name != "" {
		return t.Name
	}
	return t.File
}

// Corpus is the set of templates defined by a repository.
type Corpus []Template

// Bodies returns the template bodies in load order.
func (c Corpus) Bodies() []string {
	bodies := make([]string, 0, len(c))
	for _, t := range c {
		bodies = append(bodies, t.Body)
	}
	return bodies
}

// Match returns the first template whose body equals body, ignoring whitespace.
func (c Corpus) Match(body string) (Template, bool) {
	for _, t := range c {
		if text.BodiesEqual(body, t.Body) {
			return t, true
		}
	}
	return Template{}, false
}

// Listing is the result of listing the template directory.
// A directory that does not exist is reported with Found set to false,
// not as an error.
type Listing struct {
	Found bool
	Names []string
}

// Source provides access to a template directory.
type Source interface {
	// List returns the candidate template files in the directory.
	List(ctx context.Context) (Listing, error)

	// Read returns the full content of the named template file.
	Read(ctx context.Context, name string) (string, error)
}

// metadata is the subset of template front-matter we care about.
type metadata struct {
	Name string `yaml:"name"`
}

// LoadFileNames lists the template files. A missing directory yields no names.
func LoadFileNames(ctx context.Context, src Source) ([]string, error) {
	listing, err := src.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list issue templates: %w", err)
	}
	if !listing.Found {
		log.Printf("[templates] Template directory not found, using an empty corpus")
		return []string{}, nil
	}
	return listing.Names, nil
}

// LoadBodies reads each named template in order and strips its front-matter.
// Any read failure aborts the load.
func LoadBodies(ctx context.Context, src Source, names []string) (Corpus, error) {
	corpus := make(Corpus, 0, len(names))
	for _, name := range names {
		content, err := src.Read(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("failed to read issue template %s: %w", name, err)
		}
		corpus = append(corpus, Template{
			Name: templateName(content),
			File: name,
			Body: text.StripTemplateHeader(content),
		})
	}
	return corpus, nil
}

// Load lists and reads every template from src.
func Load(ctx context.Context, src Source) (Corpus, error) {
	names, err := LoadFileNames(ctx, src)
	if err != nil {
		return nil, err
	}
	return LoadBodies(ctx, src, names)
}

// templateName extracts the display name from a template's front-matter.
// Unparseable front-matter is ignored.
func templateName(content string) string {
	fm, ok := text.FrontMatter(content)
	if !ok {
		return ""
	}
	var meta metadata
	if err := yaml.Unmarshal([]byte(fm), &meta); err != nil {
		return ""
	}
	return meta.Name
}
