// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-03-10

package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/google/go-github/v60/github"
	"golang.org/x/oauth2"
)

// DefaultAPIURL is the public GitHub REST endpoint.
const DefaultAPIURL = "https://api.github.com"

// NewClient creates a new GitHub client using the provided token.
// If token is empty, it returns an unauthenticated client.
func NewClient(ctx context.Context, token string) *Client {
	var tc *http.Client

	if token != "" {
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		tc = oauth2.NewClient(ctx, ts)
	}

	client := github.NewClient(tc)

	return &Client{
		client: client,
	}
}

// NewClientForAPI creates a client for apiURL, which lets the closer run
// against GitHub Enterprise Server. An empty or public URL behaves like NewClient.
func NewClientForAPI(ctx context.Context, token, apiURL string) (*Client, error) {
	c := NewClient(ctx, token)
	if apiURL == "" || strings.TrimSuffix(apiURL, "/") == DefaultAPIURL {
		return c, nil
	}

	uploadURL := strings.Replace(apiURL, "/api/v3", "/api/uploads", 1)
	enterprise, err := c.client.WithEnterpriseURLs(apiURL, uploadURL)
	if err != nil {
		return nil, fmt.Errorf("invalid GitHub API URL %q: %w", apiURL, err)
	}
	c.client = enterprise
	return c, nil
}
