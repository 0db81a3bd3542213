// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-03-12

// Package config handles loading and merging closer configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/similigh/empty-issue-closer/internal/core/policy"
	"github.com/similigh/empty-issue-closer/internal/templates"
)

// Template sources.
const (
	SourceWorkspace = "workspace"
	SourceAPI       = "api"
)

// Action input names.
const (
	InputGitHubToken          = "github_token"
	InputCloseComment         = "close_comment"
	InputOpenComment          = "open_comment"
	InputTemplateCloseComment = "template_close_comment"
	InputTemplateOpenComment  = "template_open_comment"
	InputCheckTemplates       = "check_templates"
	InputDryRun               = "dry_run"
	InputTemplateSource       = "template_source"
	InputTemplatesDir         = "templates_dir"
	InputTemplatesRef         = "templates_ref"
)

// Config is the root configuration structure.
type Config struct {
	// Extends allows inheriting from a remote config (e.g., "org/repo@branch").
	Extends string `yaml:"extends,omitempty"`

	// Token authenticates GitHub API calls. It is never read from a file.
	Token string `yaml:"-"`

	// Comments holds the comment posted with each kind of decision.
	Comments CommentsConfig `yaml:"comments"`

	// CheckTemplates enables closing issues that leave a template unchanged.
	CheckTemplates bool `yaml:"check_templates"`

	// DryRun logs decisions without changing issues.
	DryRun bool `yaml:"dry_run"`

	// Templates configures where issue templates are read from.
	Templates TemplatesConfig `yaml:"templates"`
}

// CommentsConfig holds the comment texts. Empty means no comment.
type CommentsConfig struct {
	Close         string `yaml:"close"`
	Open          string `yaml:"open"`
	TemplateClose string `yaml:"template_close"`
	TemplateOpen  string `yaml:"template_open"`
}

// TemplatesConfig holds template location settings.
type TemplatesConfig struct {
	// Source is "workspace" (local checkout) or "api" (GitHub contents API).
	Source string `yaml:"source"`
	Dir    string `yaml:"dir"`
	// Ref is the branch, tag or SHA read by the api source. Empty means the default branch.
	Ref string `yaml:"ref,omitempty"`
}

// PolicyComments converts the comment settings for the policy.
func (c CommentsConfig) PolicyComments() policy.Comments {
	return policy.Comments{
		Close:         c.Close,
		Open:          c.Open,
		TemplateClose: c.TemplateClose,
		TemplateOpen:  c.TemplateOpen,
	}
}

// Default returns a config with all defaults applied.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load reads a config file from the given path and expands environment variables.
func Load(path string) (*Config, error) {
	cfg, err := loadRaw(path)
	if err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	return cfg, nil
}

// loadRaw reads a config file without applying defaults, so unset fields
// can still be inherited.
func loadRaw(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return parse(data)
}

// LoadWithInheritance loads a config and resolves the 'extends' chain.
// The fetcher function is used to retrieve remote configs.
func LoadWithInheritance(path string, fetcher func(ref string) ([]byte, error)) (*Config, error) {
	cfg, err := loadRaw(path)
	if err != nil {
		return nil, err
	}

	if cfg.Extends == "" {
		cfg.applyDefaults()
		return cfg, nil
	}

	parentData, err := fetcher(cfg.Extends)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch parent config '%s': %w", cfg.Extends, err)
	}

	parentCfg, err := parse(parentData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse parent config: %w", err)
	}

	// Merge: child overrides parent
	merged := mergeConfigs(parentCfg, cfg)
	merged.applyDefaults()

	return merged, nil
}

func parse(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// FindConfigPath searches for a config file in standard locations.
func FindConfigPath(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}

	candidates := []string{
		".github/empty-issues.yaml",
		".github/empty-issues.yml",
		".empty-issues.yaml",
		".empty-issues.yml",
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			abs, _ := filepath.Abs(c)
			return abs
		}
	}

	return ""
}

// ApplyInputs overrides settings with the non-empty action inputs returned by get.
func (c *Config) ApplyInputs(get func(name string) string) {
	setString := func(name string, dst *string) {
		if v := get(name); v != "" {
			*dst = v
		}
	}
	setBool := func(name string, dst *bool) {
		if v := get(name); v != "" {
			*dst = ParseBool(v)
		}
	}

	setString(InputGitHubToken, &c.Token)
	setString(InputCloseComment, &c.Comments.Close)
	setString(InputOpenComment, &c.Comments.Open)
	setString(InputTemplateCloseComment, &c.Comments.TemplateClose)
	setString(InputTemplateOpenComment, &c.Comments.TemplateOpen)
	setBool(InputCheckTemplates, &c.CheckTemplates)
	setBool(InputDryRun, &c.DryRun)
	setString(InputTemplateSource, &c.Templates.Source)
	setString(InputTemplatesDir, &c.Templates.Dir)
	setString(InputTemplatesRef, &c.Templates.Ref)

	c.applyDefaults()
}

// Validate checks settings that must hold before any decision is made.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Token) == "" {
		return &policy.ConfigError{Reason: "github token is missing"}
	}
	switch c.Templates.Source {
	case SourceWorkspace, SourceAPI:
	default:
		return &policy.ConfigError{Reason: fmt.Sprintf("unknown template source %q (expected %q or %q)", c.Templates.Source, SourceWorkspace, SourceAPI)}
	}
	return nil
}

// ParseBool reports whether s is "true", ignoring case.
func ParseBool(s string) bool {
	return strings.ToLower(s) == "true"
}

// applyDefaults sets default values for unset fields.
func (c *Config) applyDefaults() {
	if c.Templates.Source == "" {
		c.Templates.Source = SourceWorkspace
	}
	if c.Templates.Dir == "" {
		c.Templates.Dir = templates.DefaultDir
	}
}

// mergeConfigs merges a child config onto a parent config.
// Non-zero values in child override parent.
func mergeConfigs(parent, child *Config) *Config {
	result := *parent
	result.Extends = child.Extends

	if child.Comments.Close != "" {
		result.Comments.Close = child.Comments.Close
	}
	if child.Comments.Open != "" {
		result.Comments.Open = child.Comments.Open
	}
	if child.Comments.TemplateClose != "" {
		result.Comments.TemplateClose = child.Comments.TemplateClose
	}
	if child.Comments.TemplateOpen != "" {
		result.Comments.TemplateOpen = child.Comments.TemplateOpen
	}

	// Booleans: always take the child value so it can override parent true -> false and vice versa
	result.CheckTemplates = child.CheckTemplates
	result.DryRun = child.DryRun

	if child.Templates.Source != "" {
		result.Templates.Source = child.Templates.Source
	}
	if child.Templates.Dir != "" {
		result.Templates.Dir = child.Templates.Dir
	}
	if child.Templates.Ref != "" {
		result.Templates.Ref = child.Templates.Ref
	}

	return &result
}

// ParseExtendsRef parses "org/repo@branch" into components.
func ParseExtendsRef(ref string) (org, repo, branch, path string, err error) {
	// Format: org/repo@branch or org/repo@branch:path
	parts := strings.SplitN(ref, "@", 2)
	if len(parts) != 2 {
		return "", "", "", "", fmt.Errorf("invalid extends reference: %s (expected org/repo@branch)", ref)
	}

	orgRepo := strings.SplitN(parts[0], "/", 2)
	if len(orgRepo) != 2 {
		return "", "", "", "", fmt.Errorf("invalid extends reference: %s (expected org/repo)", ref)
	}

	org = orgRepo[0]
	repo = orgRepo[1]

	branchPath := strings.SplitN(parts[1], ":", 2)
	branch = branchPath[0]
	if len(branchPath) == 2 {
		path = branchPath[1]
	} else {
		path = ".github/empty-issues.yaml" // default path
	}

	return org, repo, branch, path, nil
}
