// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-03-09
// Last Modified: 2026-03-12

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/similigh/empty-issue-closer/internal/core/pipeline"
	"github.com/similigh/empty-issue-closer/internal/core/policy"
	"github.com/similigh/empty-issue-closer/internal/integrations/actions"
	"github.com/similigh/empty-issue-closer/internal/integrations/github"
	"github.com/similigh/empty-issue-closer/internal/steps"
	"github.com/similigh/empty-issue-closer/internal/tui"
)

var (
	eventFile      string
	eventName      string
	eventAction    string
	checkRepo      string
	checkNumber    int
	previousBody   string
	checkTemplates bool
	templatesDir   string
)

// checkCmd evaluates an issue locally without changing it.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Show what the closer would do for an issue (always a dry run)",
	Long: `Evaluate an issues event locally and print the decision without changing the issue.

The event comes from a webhook payload file (--event), or from a live issue
fetched with --repo and --number. GITHUB_TOKEN is used when set.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd.Context(), cmd.OutOrStdout(), cmd.Flags().Changed("check-templates"))
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)

	checkCmd.Flags().StringVar(&eventFile, "event", "", "Path to an issues event payload (JSON)")
	checkCmd.Flags().StringVar(&eventName, "event-name", policy.TriggerEventName, "Workflow event name")
	checkCmd.Flags().StringVar(&eventAction, "action", "", "Event action (opened, reopened, edited); overrides the payload")
	checkCmd.Flags().StringVar(&checkRepo, "repo", "", "Repository as owner/name")
	checkCmd.Flags().IntVar(&checkNumber, "number", 0, "Issue number to fetch from GitHub")
	checkCmd.Flags().StringVar(&previousBody, "previous-body", "", "Body before the edit, for edited events")
	checkCmd.Flags().BoolVar(&checkTemplates, "check-templates", false, "Also compare the body against the issue templates")
	checkCmd.Flags().StringVar(&templatesDir, "templates", "", "Issue template directory (overrides config)")
}

func runCheck(ctx context.Context, out io.Writer, templatesFlagSet bool) error {
	token := os.Getenv("GITHUB_TOKEN")

	cfg, err := loadConfig(ctx, token)
	if err != nil {
		return err
	}
	cfg.Token = token
	cfg.DryRun = true
	if templatesFlagSet {
		cfg.CheckTemplates = checkTemplates
	}
	if templatesDir != "" {
		cfg.Templates.Dir = templatesDir
	}

	client := github.NewClient(ctx, token)

	issue, err := loadCheckIssue(ctx, client)
	if err != nil {
		return err
	}

	deps := &pipeline.Dependencies{
		Templates: templateSource(cfg, client, issue.Org, issue.Repo),
		DryRun:    true,
		Verbose:   verbose,
	}
	p, err := steps.Build(deps)
	if err != nil {
		return err
	}

	pCtx := pipeline.NewContext(ctx, issue, cfg)
	pCtx.Result.DryRun = true

	if isInteractive() {
		title := fmt.Sprintf("closer: %s/%s#%d", issue.Org, issue.Repo, issue.Number)
		return runWithTUI(title, p, pCtx, checkResultMsg)
	}

	runErr := p.Run(pCtx)
	if runErr != nil {
		return runErr
	}
	return printCheckResult(out, pCtx.Result)
}

// loadCheckIssue builds the issue from the event file, a live issue, or both.
func loadCheckIssue(ctx context.Context, client *github.Client) (*pipeline.Issue, error) {
	var issue *pipeline.Issue

	switch {
	case eventFile != "":
		data, err := os.ReadFile(eventFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read event file: %w", err)
		}
		issue, err = actions.ParseIssueEvent(eventName, data)
		if err != nil {
			return nil, err
		}
	case checkRepo != "" && checkNumber > 0:
		org, repo, err := parseRepo(checkRepo)
		if err != nil {
			return nil, err
		}
		live, err := client.GetIssue(ctx, org, repo, checkNumber)
		if err != nil {
			return nil, err
		}
		issue = &pipeline.Issue{
			Org:         org,
			Repo:        repo,
			Number:      live.GetNumber(),
			Title:       live.GetTitle(),
			State:       live.GetState(),
			Body:        live.Body,
			Author:      live.GetUser().GetLogin(),
			URL:         live.GetHTMLURL(),
			EventName:   eventName,
			EventAction: policy.EventOpened,
		}
	default:
		return nil, fmt.Errorf("provide --event <file>, or --repo <owner/name> with --number")
	}

	if checkRepo != "" && (issue.Org == "" || issue.Repo == "") {
		org, repo, err := parseRepo(checkRepo)
		if err != nil {
			return nil, err
		}
		issue.Org, issue.Repo = org, repo
	}
	if eventAction != "" {
		issue.EventAction = eventAction
	}
	if previousBody != "" {
		from := previousBody
		issue.Changes = &policy.ChangeDelta{BodyFrom: &from}
	}

	return issue, nil
}

func parseRepo(full string) (string, string, error) {
	parts := strings.SplitN(full, "/", 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("invalid repository %q (expected owner/name)", full)
	}
	return parts[0], parts[1], nil
}

// isInteractive reports whether a progress view can be shown.
func isInteractive() bool {
	if os.Getenv("CI") == "true" || os.Getenv("GITHUB_ACTIONS") == "true" {
		return false
	}
	info, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

// describeDecision is a one-line summary of a result.
func describeDecision(r *pipeline.Result) string {
	if r.TargetState == "" {
		return fmt.Sprintf("#%d: no action", r.IssueNumber)
	}
	verb := "close"
	if r.TargetState == policy.StateOpen {
		verb = "reopen"
	}
	summary := fmt.Sprintf("#%d: would %s (%s)", r.IssueNumber, verb, r.Decision)
	if r.Template != "" {
		summary += fmt.Sprintf(", template %q", r.Template)
	}
	return summary
}

func checkResultMsg(pCtx *pipeline.Context, err error) tui.ResultMsg {
	if err != nil {
		return tui.ResultMsg{Success: false, Output: err.Error()}
	}
	resultBytes, _ := json.MarshalIndent(pCtx.Result, "", "  ")
	return tui.ResultMsg{Success: true, Decision: describeDecision(pCtx.Result), Output: string(resultBytes)}
}

func printCheckResult(out io.Writer, r *pipeline.Result) error {
	fmt.Fprintln(out, tui.RenderDecision(describeDecision(r)))
	resultBytes, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	fmt.Fprintln(out, string(resultBytes))
	return nil
}
