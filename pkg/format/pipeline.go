package format

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/yigitcukuren/phpfmt/pkg/diff"
	"github.com/yigitcukuren/phpfmt/pkg/fsutil"
	"github.com/yigitcukuren/phpfmt/pkg/style"
)

// Pipeline error categories, matchable with errors.Is.
var (
	ErrFileNotFound     = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrParseFailure     = errors.New("parse failure")
	ErrWriteFailure     = errors.New("write failure")
)

// PipelineOptions controls what happens to a file after formatting.
type PipelineOptions struct {
	// Write rewrites changed files in place.
	Write bool

	// Diff computes a unified diff for changed files.
	Diff bool

	// Backup configures backup creation before in-place writes.
	Backup fsutil.BackupConfig

	// StrictRaceDetection re-hashes content when checking for concurrent
	// modification; otherwise only mod time and size are compared.
	StrictRaceDetection bool
}

// FileResult is the outcome of pushing one file through the pipeline.
type FileResult struct {
	Path string

	// Changed is true when formatting produced different bytes.
	Changed bool

	// Formatted is the formatted content; nil when unchanged.
	Formatted []byte

	// Diff is set in diff mode for changed files.
	Diff *diff.Diff

	// Skipped is true when a write was abandoned, with the reason.
	Skipped    bool
	SkipReason string

	BackupCreated bool
	Written       bool
}

// Summary returns a one-word description of what happened to the file.
func (r *FileResult) Summary() string {
	switch {
	case r.Skipped:
		return "skipped: " + r.SkipReason
	case r.Written && r.BackupCreated:
		return "formatted (backup created)"
	case r.Written:
		return "formatted"
	case r.Changed:
		return "needs formatting"
	default:
		return "ok"
	}
}

// ProcessFile runs the write-safety pipeline on one file:
//
//  1. Read and hash the original.
//  2. Format.
//  3. Stop early when nothing changed.
//  4. Generate a diff when asked.
//  5. Before writing, verify the file was not modified concurrently.
//  6. Create a backup when configured.
//  7. Write atomically.
func ProcessFile(ctx context.Context, path string, cfg *style.Config, opts PipelineOptions) (*FileResult, error) {
	result := &FileResult{Path: path}

	original, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		return nil, categorizeError(err)
	}

	formatted, err := Format(original, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrParseFailure, path, err)
	}
	if bytes.Equal(original, formatted) {
		return result, nil
	}
	result.Changed = true
	result.Formatted = formatted

	if opts.Diff {
		result.Diff = diff.Generate(path, original, formatted)
	}
	if !opts.Write {
		return result, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("processing cancelled: %w", err)
	}

	modified, err := checkModified(ctx, info, opts.StrictRaceDetection)
	if err != nil {
		return nil, fmt.Errorf("check modified: %w", err)
	}
	if modified {
		result.Skipped = true
		result.SkipReason = "file modified during processing"
		return result, nil
	}

	if opts.Backup.Enabled {
		created, err := fsutil.CreateBackup(path, opts.Backup)
		if err != nil {
			return nil, fmt.Errorf("create backup: %w", err)
		}
		result.BackupCreated = created
	}

	if err := fsutil.WriteAtomic(path, formatted, info.Mode); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrWriteFailure, err)
	}
	result.Written = true
	return result, nil
}

func checkModified(ctx context.Context, info *fsutil.FileInfo, strict bool) (bool, error) {
	if strict {
		return fsutil.CheckModified(ctx, info)
	}
	return fsutil.CheckModifiedQuick(ctx, info)
}

func categorizeError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, fsutil.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", ErrFileNotFound, err)
	}
	if errors.Is(err, fsutil.ErrPermissionDenied) || errors.Is(err, os.ErrPermission) {
		return fmt.Errorf("%w: %w", ErrPermissionDenied, err)
	}
	return err
}

// BackupConfigFromStyle maps the style backup settings onto fsutil.
func BackupConfigFromStyle(cfg *style.Config) fsutil.BackupConfig {
	if cfg == nil {
		return fsutil.BackupConfig{Enabled: false, Mode: fsutil.BackupModeSidecar}
	}
	mode := fsutil.BackupMode(cfg.Backups.Mode)
	if mode == "" {
		mode = fsutil.BackupModeSidecar
	}
	return fsutil.BackupConfig{Enabled: cfg.Backups.Enabled, Mode: mode}
}
