package reporter

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/yigitcukuren/phpfmt/pkg/runner"
)

// Reporter formats and writes run results.
type Reporter interface {
	// Report writes formatted output for the result and returns the
	// number of files that needed formatting.
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// New creates a Reporter for the specified options.
func New(opts Options) (Reporter, error) {
	if opts.Writer == nil {
		opts.Writer = DefaultOptions().Writer
	}

	format := opts.Format
	if format == "" {
		format = FormatText
	}
	if !format.IsValid() {
		return nil, fmt.Errorf("unsupported format: %s", format)
	}

	switch format {
	case FormatJSON:
		return NewJSONReporter(opts), nil
	case FormatDiff:
		return NewDiffReporter(opts), nil
	case FormatList:
		return NewListReporter(opts), nil
	case FormatSummary:
		return NewSummaryReporter(opts), nil
	default:
		return NewTextReporter(opts), nil
	}
}

// displayPath makes a path relative to the working directory when that
// produces a shorter, in-tree path.
func displayPath(workingDir, path string) string {
	if workingDir == "" {
		return path
	}
	rel, err := filepath.Rel(workingDir, path)
	if err != nil || len(rel) >= len(path) {
		return path
	}
	return rel
}
