// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-03-12

package github

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/google/go-github/v60/github"

	"github.com/similigh/empty-issue-closer/internal/templates"
)

// apiRequest is a request seen by the fake GitHub API.
type apiRequest struct {
	Method string
	Path   string
	Body   map[string]interface{}
}

// newTestClient starts a fake GitHub API and returns a client pointed at it.
func newTestClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	gh := github.NewClient(nil)
	u, err := url.Parse(server.URL + "/")
	if err != nil {
		t.Fatalf("Failed to parse server URL: %v", err)
	}
	gh.BaseURL = u
	return &Client{client: gh}
}

// recordingHandler records every request and answers with an empty object.
func recordingHandler(mu *sync.Mutex, seen *[]apiRequest) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		req := apiRequest{Method: r.Method, Path: r.URL.Path}
		if data, _ := io.ReadAll(r.Body); len(data) > 0 {
			_ = json.Unmarshal(data, &req.Body)
		}
		mu.Lock()
		*seen = append(*seen, req)
		mu.Unlock()
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{}`)
	})
}

func TestCreateCommentValidation(t *testing.T) {
	// Test that CreateComment rejects empty body
	client := &Client{client: nil} // nil client for validation testing

	err := client.CreateComment(context.Background(), "org", "repo", 1, "")
	if err == nil {
		t.Error("Expected error for empty comment body")
	}
}

func TestSetIssueStateValidation(t *testing.T) {
	client := &Client{client: nil} // nil client for validation testing

	for _, state := range []string{"", "merged", "Closed"} {
		if err := client.SetIssueState(context.Background(), "org", "repo", 1, state); err == nil {
			t.Errorf("Expected error for state %q", state)
		}
	}
}

func TestApplyDecisionCommentsBeforeStateChange(t *testing.T) {
	var mu sync.Mutex
	var seen []apiRequest
	client := newTestClient(t, recordingHandler(&mu, &seen))

	err := client.ApplyDecision(context.Background(), "octo", "hello", 32, "closed", "Closing since it is empty.")
	if err != nil {
		t.Fatalf("ApplyDecision() error: %v", err)
	}

	if len(seen) != 2 {
		t.Fatalf("Expected 2 API calls, got %d: %+v", len(seen), seen)
	}
	if seen[0].Method != http.MethodPost || seen[0].Path != "/repos/octo/hello/issues/32/comments" {
		t.Errorf("Expected comment first, got %s %s", seen[0].Method, seen[0].Path)
	}
	if seen[0].Body["body"] != "Closing since it is empty." {
		t.Errorf("Unexpected comment body %v", seen[0].Body)
	}
	if seen[1].Method != http.MethodPatch || seen[1].Path != "/repos/octo/hello/issues/32" {
		t.Errorf("Expected issue edit second, got %s %s", seen[1].Method, seen[1].Path)
	}
	if seen[1].Body["state"] != "closed" {
		t.Errorf("Expected state=closed, got %v", seen[1].Body)
	}
}

func TestApplyDecisionWithoutComment(t *testing.T) {
	var mu sync.Mutex
	var seen []apiRequest
	client := newTestClient(t, recordingHandler(&mu, &seen))

	if err := client.ApplyDecision(context.Background(), "octo", "hello", 5, "open", ""); err != nil {
		t.Fatalf("ApplyDecision() error: %v", err)
	}
	if len(seen) != 1 || seen[0].Method != http.MethodPatch {
		t.Fatalf("Expected a single issue edit, got %+v", seen)
	}
	if seen[0].Body["state"] != "open" {
		t.Errorf("Expected state=open, got %v", seen[0].Body)
	}
}

func TestApplyDecisionPostsWhitespaceComment(t *testing.T) {
	var mu sync.Mutex
	var seen []apiRequest
	client := newTestClient(t, recordingHandler(&mu, &seen))

	if err := client.ApplyDecision(context.Background(), "octo", "hello", 5, "closed", "  \n"); err != nil {
		t.Fatalf("ApplyDecision() error: %v", err)
	}
	if len(seen) != 2 || seen[0].Method != http.MethodPost {
		t.Fatalf("Expected comment then issue edit, got %+v", seen)
	}
	if seen[0].Body["body"] != "  \n" {
		t.Errorf("Expected comment to be posted verbatim, got %v", seen[0].Body)
	}
}

func TestApplyDecisionCommentFailureStopsStateChange(t *testing.T) {
	var edits int
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			edits++
		}
		w.WriteHeader(http.StatusForbidden)
		fmt.Fprint(w, `{"message":"Resource not accessible by integration"}`)
	}))

	err := client.ApplyDecision(context.Background(), "octo", "hello", 5, "closed", "bye")
	if err == nil {
		t.Fatal("Expected error when the comment cannot be created")
	}
	if edits != 0 {
		t.Errorf("Expected no state change after a failed comment, got %d", edits)
	}
}

func TestTemplateSource(t *testing.T) {
	bugTemplate := "---\nname: Bug report\n---\n\n**Describe the bug**\n"
	mux := http.NewServeMux()
	mux.HandleFunc("/repos/octo/hello/contents/.github/ISSUE_TEMPLATE", func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("ref"); got != "main" {
			t.Errorf("Expected ref=main, got %q", got)
		}
		fmt.Fprint(w, `[
			{"type": "file", "name": "bug_report.md", "path": ".github/ISSUE_TEMPLATE/bug_report.md"},
			{"type": "dir", "name": "nested", "path": ".github/ISSUE_TEMPLATE/nested"}
		]`)
	})
	mux.HandleFunc("/repos/octo/hello/contents/.github/ISSUE_TEMPLATE/bug_report.md", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `{"type": "file", "name": "bug_report.md", "encoding": "base64", "content": %q}`,
			base64.StdEncoding.EncodeToString([]byte(bugTemplate)))
	})
	client := newTestClient(t, mux)

	src := NewTemplateSource(client, "octo", "hello", "", "main")
	corpus, err := templates.Load(context.Background(), src)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if len(corpus) != 1 {
		t.Fatalf("Expected 1 template, got %d", len(corpus))
	}
	if corpus[0].Name != "Bug report" || corpus[0].Body != "\n\n**Describe the bug**\n" {
		t.Errorf("Unexpected template %+v", corpus[0])
	}
}

func TestTemplateSourceMissingDirectory(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"message":"Not Found"}`)
	}))

	listing, err := NewTemplateSource(client, "octo", "hello", "", "").List(context.Background())
	if err != nil {
		t.Fatalf("Expected missing directory to be reported without error, got %v", err)
	}
	if listing.Found {
		t.Error("Expected Found=false for a missing directory")
	}
}

func TestTemplateSourceListFailure(t *testing.T) {
	client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"message":"boom"}`)
	}))

	if _, err := NewTemplateSource(client, "octo", "hello", "", "").List(context.Background()); err == nil {
		t.Error("Expected error for a failed listing")
	}
}

func TestNewClientForAPI(t *testing.T) {
	c, err := NewClientForAPI(context.Background(), "token", "")
	if err != nil || c.client.BaseURL.String() != DefaultAPIURL+"/" {
		t.Fatalf("Expected public API client, got %v, %v", c, err)
	}

	c, err = NewClientForAPI(context.Background(), "token", "https://ghes.example.com/api/v3")
	if err != nil {
		t.Fatalf("NewClientForAPI() error: %v", err)
	}
	if c.client.BaseURL.String() != "https://ghes.example.com/api/v3/" {
		t.Errorf("Unexpected enterprise base URL %s", c.client.BaseURL)
	}
}
