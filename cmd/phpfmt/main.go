// Package main is the entry point for the phpfmt CLI.
package main

import (
	"errors"
	"os"

	"github.com/yigitcukuren/phpfmt/internal/cli"
	"github.com/yigitcukuren/phpfmt/internal/logging"
)

// Build-time variables set by the release pipeline via ldflags.
//
//nolint:gochecknoglobals // Version variables must be package-level for ldflags injection
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	info := cli.BuildInfo{
		Version: version,
		Commit:  commit,
		Date:    date,
	}

	rootCmd := cli.NewRootCommand(info)

	err := rootCmd.Execute()
	if err == nil {
		return cli.ExitSuccess
	}

	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		if !exitErr.Silent() {
			logging.Default().Error("command failed", logging.FieldError, err)
		}
		return exitErr.Code
	}

	// Cobra's own errors (unknown flag, bad arguments) are usage errors.
	logging.Default().Error("command failed", logging.FieldError, err)
	return cli.ExitInvalidUsage
}
