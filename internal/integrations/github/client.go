// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-03-12

package github

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/google/go-github/v60/github"
)

// Client wraps the GitHub API client.
type Client struct {
	client *github.Client
}

// GetIssue fetches issue details.
func (c *Client) GetIssue(ctx context.Context, org, repo string, number int) (*github.Issue, error) {
	issue, _, err := c.client.Issues.Get(ctx, org, repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch issue: %w", err)
	}

	return issue, nil
}

// CreateComment posts a comment on an issue.
func (c *Client) CreateComment(ctx context.Context, org, repo string, number int, body string) error {
	if body == "" {
		return fmt.Errorf("comment body cannot be empty")
	}

	comment := &github.IssueComment{
		Body: github.String(body),
	}
	_, _, err := c.client.Issues.CreateComment(ctx, org, repo, number, comment)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// SetIssueState opens or closes an issue.
func (c *Client) SetIssueState(ctx context.Context, org, repo string, number int, state string) error {
	if state != "open" && state != "closed" {
		return fmt.Errorf("invalid issue state %q: expected 'open' or 'closed'", state)
	}

	req := &github.IssueRequest{State: github.String(state)}
	_, _, err := c.client.Issues.Edit(ctx, org, repo, number, req)
	if err != nil {
		return fmt.Errorf("failed to update issue state: %w", err)
	}
	return nil
}

// ApplyDecision posts the comment, if non-empty, and then sets the issue state.
// It is not idempotent: calling it twice posts the comment twice.
func (c *Client) ApplyDecision(ctx context.Context, org, repo string, number int, state, comment string) error {
	if comment != "" {
		log.Printf("[github] Adding a comment to #%d", number)
		if err := c.CreateComment(ctx, org, repo, number, comment); err != nil {
			return err
		}
	}

	log.Printf("[github] Changing state of #%d to %s", number, state)
	return c.SetIssueState(ctx, org, repo, number, state)
}

// GetFileContent returns the decoded content of a file at ref.
// An empty ref reads from the default branch.
func (c *Client) GetFileContent(ctx context.Context, org, repo, path, ref string) ([]byte, error) {
	file, _, _, err := c.client.Repositories.GetContents(ctx, org, repo, path, contentOptions(ref))
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", path, err)
	}
	if file == nil {
		return nil, fmt.Errorf("%s is not a file", path)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return []byte(content), nil
}

// ListDirectory returns the names of the files in a directory at ref.
// found is false when the directory does not exist.
func (c *Client) ListDirectory(ctx context.Context, org, repo, path, ref string) (names []string, found bool, err error) {
	_, entries, _, err := c.client.Repositories.GetContents(ctx, org, repo, path, contentOptions(ref))
	if err != nil {
		if isNotFound(err) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to list %s: %w", path, err)
	}
	if entries == nil {
		return nil, false, fmt.Errorf("%s is not a directory", path)
	}

	for _, e := range entries {
		if e.GetType() != "file" {
			continue
		}
		names = append(names, e.GetName())
	}
	return names, true, nil
}

func contentOptions(ref string) *github.RepositoryContentGetOptions {
	if ref == "" {
		return nil
	}
	return &github.RepositoryContentGetOptions{Ref: ref}
}

func isNotFound(err error) bool {
	var ghErr *github.ErrorResponse
	return errors.As(err, &ghErr) && ghErr.Response != nil && ghErr.Response.StatusCode == http.StatusNotFound
}
