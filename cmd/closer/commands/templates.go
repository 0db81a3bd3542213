// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-03-09
// Last Modified: 2026-03-12

package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/similigh/empty-issue-closer/internal/core/config"
	"github.com/similigh/empty-issue-closer/internal/integrations/github"
	"github.com/similigh/empty-issue-closer/internal/templates"
	"github.com/similigh/empty-issue-closer/internal/utils/text"
)

var (
	listRepo   string
	listRef    string
	listSource string
	listBodies bool
)

var templatesCmd = &cobra.Command{
	Use:   "templates",
	Short: "List the issue templates an unchanged body is compared against",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTemplates(cmd.Context(), cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(templatesCmd)

	templatesCmd.Flags().StringVar(&listSource, "source", "", "Template source: workspace or api (overrides config)")
	templatesCmd.Flags().StringVar(&listRepo, "repo", "", "Repository as owner/name (api source)")
	templatesCmd.Flags().StringVar(&listRef, "ref", "", "Branch, tag or SHA to read templates at (api source)")
	templatesCmd.Flags().StringVar(&templatesDir, "dir", "", "Issue template directory (overrides config)")
	templatesCmd.Flags().BoolVar(&listBodies, "bodies", false, "Print the normalized body of each template")
}

func runTemplates(ctx context.Context, out io.Writer) error {
	token := os.Getenv("GITHUB_TOKEN")

	cfg, err := loadConfig(ctx, token)
	if err != nil {
		return err
	}
	cfg.ApplyInputs(func(name string) string {
		switch name {
		case config.InputTemplateSource:
			return listSource
		case config.InputTemplatesDir:
			return templatesDir
		case config.InputTemplatesRef:
			return listRef
		}
		return ""
	})

	var org, repo string
	if cfg.Templates.Source == config.SourceAPI {
		if org, repo, err = parseRepo(listRepo); err != nil {
			return err
		}
	}

	src := templateSource(cfg, github.NewClient(ctx, token), org, repo)
	listing, err := src.List(ctx)
	if err != nil {
		return err
	}
	if !listing.Found {
		fmt.Fprintf(out, "No template directory at %s\n", cfg.Templates.Dir)
		return nil
	}

	corpus, err := templates.LoadBodies(ctx, src, listing.Names)
	if err != nil {
		return err
	}
	printCorpus(out, corpus)
	return nil
}

func printCorpus(out io.Writer, corpus templates.Corpus) {
	fmt.Fprintf(out, "%d template(s)\n", len(corpus))
	for _, t := range corpus {
		fmt.Fprintf(out, "- %s (%s)\n", t.DisplayName(), t.File)
		if listBodies {
			fmt.Fprintf(out, "  %s\n", text.NormalizeWhitespace(t.Body))
		}
	}
}
