// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-03-12

// Package main is the entry point for the empty-issue-closer CLI.
package main

import (
	"os"

	"github.com/similigh/empty-issue-closer/cmd/closer/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
