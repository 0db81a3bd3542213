// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-03-12

package commands

import (
	"context"
	"fmt"
	"log"

	"github.com/similigh/empty-issue-closer/internal/core/config"
	"github.com/similigh/empty-issue-closer/internal/integrations/github"
)

// loadConfig reads the optional config file. Remote parents named by
// 'extends' are fetched with token. No file means defaults.
func loadConfig(ctx context.Context, token string) (*config.Config, error) {
	path := config.FindConfigPath(cfgFile)
	if path == "" {
		if cfgFile != "" {
			return nil, fmt.Errorf("config file %s not found", cfgFile)
		}
		if verbose {
			log.Printf("[config] No configuration file found. Using defaults and action inputs.")
		}
		return config.Default(), nil
	}

	fetcher := func(ref string) ([]byte, error) {
		org, repo, branch, file, err := config.ParseExtendsRef(ref)
		if err != nil {
			return nil, err
		}
		if token == "" {
			return nil, fmt.Errorf("a github token is required to fetch remote config %s", ref)
		}
		return github.NewClient(ctx, token).GetFileContent(ctx, org, repo, file, branch)
	}

	cfg, err := config.LoadWithInheritance(path, fetcher)
	if err != nil {
		return nil, err
	}
	if verbose {
		log.Printf("[config] Loaded config from %s", path)
	}
	return cfg, nil
}
