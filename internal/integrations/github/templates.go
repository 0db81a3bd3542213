// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-03-08
// Last Modified: 2026-03-08

package github

import (
	"context"
	"path"
	"strings"

	"github.com/similigh/empty-issue-closer/internal/templates"
)

// TemplateSource reads issue templates through the contents API, for runs
// where the repository is not checked out.
type TemplateSource struct {
	client *Client
	org    string
	repo   string
	dir    string
	ref    string
}

// NewTemplateSource creates a template source for org/repo. An empty ref reads
// from the default branch.
func NewTemplateSource(client *Client, org, repo, dir, ref string) *TemplateSource {
	if dir == "" {
		dir = templates.DefaultDir
	}
	return &TemplateSource{
		client: client,
		org:    org,
		repo:   repo,
		dir:    strings.Trim(dir, "/"),
		ref:    ref,
	}
}

// List returns the files in the template directory.
func (s *TemplateSource) List(ctx context.Context) (templates.Listing, error) {
	names, found, err := s.client.ListDirectory(ctx, s.org, s.repo, s.dir, s.ref)
	if err != nil {
		return templates.Listing{}, err
	}
	return templates.Listing{Found: found, Names: names}, nil
}

// Read returns the content of a template file.
func (s *TemplateSource) Read(ctx context.Context, name string) (string, error) {
	data, err := s.client.GetFileContent(ctx, s.org, s.repo, path.Join(s.dir, name), s.ref)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
