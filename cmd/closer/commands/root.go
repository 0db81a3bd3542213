// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-03-08
// Last Modified: 2026-03-12

// Package commands implements the closer CLI.
package commands

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// version is set at build time using -ldflags.
var version = "dev"

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "closer",
	Short: "Close empty or unchanged-template issues and reopen them once filled in",
	Long: `closer triages GitHub issues on opened, reopened and edited events.

Issues with an empty body, or whose body is an unmodified issue template, are
closed with a comment. Closed issues are reopened once the author edits the body
into something real.`,
	Version:      version,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Local runs keep secrets in .env; a missing file is fine.
		_ = godotenv.Load()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file (default: .github/empty-issues.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
