// Package configloader resolves the formatter's style configuration.
// It discovers .phpfmt.yaml by walking upward from the working
// directory, falls back to the user-level XDG config, applies
// environment variable overrides, and validates the result.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yigitcukuren/phpfmt/pkg/style"
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to the current working directory if empty.
	WorkingDir string

	// ExplicitPath is a config file path from the --config flag.
	// When set, discovery is skipped and the file must exist.
	ExplicitPath string

	// IgnoreEnv skips PHPFMT_* environment variable overrides.
	IgnoreEnv bool
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the resolved configuration.
	Config *style.Config

	// Source is the path of the loaded config file, empty when the
	// defaults were used.
	Source string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the configuration. The first source found wins:
//  1. Explicit config file (opts.ExplicitPath)
//  2. Project config (.phpfmt.yaml, searched upward from WorkingDir)
//  3. User config ($XDG_CONFIG_HOME/phpfmt/config.yaml)
//  4. Built-in defaults
//
// PHPFMT_* environment variables override the loaded file unless
// opts.IgnoreEnv is set.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	result := &LoadResult{}

	path, err := resolveConfigPath(ctx, opts)
	if err != nil {
		return nil, err
	}

	if path == "" {
		result.Config = style.NewConfig()
	} else {
		cfg, err := loadConfigFile(path)
		if err != nil {
			return nil, err
		}
		result.Config = cfg
		result.Source = path
	}

	if !opts.IgnoreEnv {
		if err := applyEnv(result.Config); err != nil {
			return nil, err
		}
	}

	validation := Validate(result.Config)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Message)
	}

	return result, nil
}

func resolveConfigPath(ctx context.Context, opts LoadOptions) (string, error) {
	if opts.ExplicitPath != "" {
		if !fileExists(opts.ExplicitPath) {
			return "", fmt.Errorf("config file not found: %s", opts.ExplicitPath)
		}
		return opts.ExplicitPath, nil
	}

	projectPath, err := FindProjectConfig(ctx, opts.WorkingDir)
	if err != nil {
		return "", fmt.Errorf("discover project config: %w", err)
	}
	if projectPath != "" {
		return projectPath, nil
	}

	return FindUserConfig(), nil
}

// loadConfigFile loads a configuration from a YAML file on top of the
// defaults.
func loadConfigFile(path string) (*style.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg, err := style.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
