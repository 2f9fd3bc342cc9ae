package cli

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yigitcukuren/phpfmt/internal/configloader"
	"github.com/yigitcukuren/phpfmt/internal/logging"
	"github.com/yigitcukuren/phpfmt/pkg/format"
	"github.com/yigitcukuren/phpfmt/pkg/reporter"
	"github.com/yigitcukuren/phpfmt/pkg/runner"
	"github.com/yigitcukuren/phpfmt/pkg/style"
)

type fmtFlags struct {
	write      bool
	check      bool
	diff       bool
	list       bool
	stdin      bool
	jobs       int
	exclude    []string
	printWidth int
	format     string
	noBackups  bool
	followSym  bool
	configPath string
	color      string
}

func addFmtFlags(cmd *cobra.Command, flags *fmtFlags) {
	cmd.Flags().BoolVarP(&flags.write, "write", "w", false, "rewrite files in place")
	cmd.Flags().BoolVar(&flags.check, "check", false, "exit non-zero when any file needs formatting")
	cmd.Flags().BoolVarP(&flags.diff, "diff", "d", false, "print unified diffs instead of rewriting")
	cmd.Flags().BoolVarP(&flags.list, "list", "l", false, "list files that need formatting, one per line")
	cmd.Flags().BoolVar(&flags.stdin, "stdin", false, "format standard input to standard output")
	cmd.Flags().IntVar(&flags.jobs, "jobs", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringSliceVar(&flags.exclude, "exclude", nil, "glob patterns to skip")
	cmd.Flags().IntVar(&flags.printWidth, "print-width", 0, "target maximum line width (overrides config)")
	cmd.Flags().StringVar(&flags.format, "format", "", "output format: text, json, diff, list, summary")
	cmd.Flags().BoolVar(&flags.noBackups, "no-backups", false, "disable backup creation when writing")
	cmd.Flags().BoolVar(&flags.followSym, "follow-symlinks", false, "traverse directory symlinks during discovery")
}

func runFormat(cmd *cobra.Command, args []string, flags *fmtFlags) error {
	logger := logging.Default()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = logging.WithLogger(ctx, logger)

	if flags.write && flags.check {
		return &ExitError{Code: ExitInvalidUsage,
			Err: errors.New("--write and --check are mutually exclusive")}
	}

	workDir, err := os.Getwd()
	if err != nil {
		return &ExitError{Code: ExitIOError, Err: fmt.Errorf("get working directory: %w", err)}
	}

	cfg, err := loadConfig(ctx, workDir, flags)
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, cfg, flags)

	if flags.stdin {
		return runStdin(cmd, cfg, flags)
	}

	outputFormat, err := resolveOutputFormat(flags)
	if err != nil {
		return &ExitError{Code: ExitInvalidUsage, Err: err}
	}

	pipeline := format.PipelineOptions{
		Write:               flags.write,
		Diff:                outputFormat == reporter.FormatDiff,
		Backup:              format.BackupConfigFromStyle(cfg),
		StrictRaceDetection: true,
	}
	if flags.noBackups {
		pipeline.Backup.Enabled = false
	}

	runOpts := runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		ExcludeGlobs:   cfg.Exclude,
		FollowSymlinks: flags.followSym,
		Jobs:           cfg.Jobs,
		Config:         cfg,
		Pipeline:       pipeline,
	}

	logger.Debug("starting run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldWrite, flags.write,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := runner.Run(ctx, runOpts)
	if err != nil {
		return &ExitError{Code: ExitFatal, Err: fmt.Errorf("run failed: %w", err)}
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		ErrorWriter: cmd.ErrOrStderr(),
		Format:      outputFormat,
		Color:       flags.color,
		ShowSummary: outputFormat == reporter.FormatText,
		WorkingDir:  workDir,
	})
	if err != nil {
		return &ExitError{Code: ExitInvalidUsage, Err: err}
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return &ExitError{Code: ExitIOError, Err: fmt.Errorf("report results: %w", err)}
	}

	if code := ExitCodeFromResult(result, flags.write); code != ExitSuccess {
		return exitWith(code)
	}
	return nil
}

// loadConfig resolves the style configuration, mapping load failures to
// the config-error exit code.
func loadConfig(ctx context.Context, workDir string, flags *fmtFlags) (*style.Config, error) {
	logger := logging.FromContext(ctx)
	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: flags.configPath,
	})
	if err != nil {
		return nil, &ExitError{Code: ExitConfigError, Err: err}
	}
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if loadResult.Source != "" {
		logger.Debug("loaded configuration", logging.FieldConfigPath, loadResult.Source)
	}
	return loadResult.Config, nil
}

// applyFlagOverrides layers CLI flags over the loaded configuration.
func applyFlagOverrides(cmd *cobra.Command, cfg *style.Config, flags *fmtFlags) {
	if cmd.Flags().Changed("print-width") {
		cfg.PrintWidth = flags.printWidth
	}
	if cmd.Flags().Changed("jobs") {
		cfg.Jobs = flags.jobs
	}
	cfg.Exclude = append(cfg.Exclude, flags.exclude...)
}

// resolveOutputFormat picks the reporter format from the mode flags.
// An explicit --format always wins.
func resolveOutputFormat(flags *fmtFlags) (reporter.Format, error) {
	if flags.format != "" {
		return reporter.ParseFormat(flags.format)
	}
	switch {
	case flags.diff:
		return reporter.FormatDiff, nil
	case flags.list:
		return reporter.FormatList, nil
	default:
		return reporter.FormatText, nil
	}
}

// runStdin formats standard input and writes the result to standard
// output. In check mode nothing is printed; the exit status reports
// whether the input was already formatted.
func runStdin(cmd *cobra.Command, cfg *style.Config, flags *fmtFlags) error {
	// Refuse to sit waiting on an interactive terminal.
	if cmd.InOrStdin() == os.Stdin && term.IsTerminal(int(os.Stdin.Fd())) {
		return &ExitError{Code: ExitInvalidUsage,
			Err: errors.New("--stdin requires piped input")}
	}

	src, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return &ExitError{Code: ExitIOError, Err: fmt.Errorf("read stdin: %w", err)}
	}

	formatted, err := format.Format(src, cfg)
	if err != nil {
		return &ExitError{Code: ExitFatal, Err: fmt.Errorf("format stdin: %w", err)}
	}

	changed := !bytes.Equal(src, formatted)
	if flags.check || flags.list {
		if changed {
			return exitWith(ExitChangesNeeded)
		}
		return nil
	}

	if _, err := cmd.OutOrStdout().Write(formatted); err != nil {
		return &ExitError{Code: ExitIOError, Err: fmt.Errorf("write stdout: %w", err)}
	}
	return nil
}
