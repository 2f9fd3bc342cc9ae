package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yigitcukuren/phpfmt/internal/ui/pretty"
	"github.com/yigitcukuren/phpfmt/pkg/runner"
)

// DiffReporter prints a unified diff for every file needing changes.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()
	if result == nil {
		return 0, nil
	}

	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(displayPath(r.opts.WorkingDir, file.Path)),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}
		if file.Result == nil || !file.Result.Diff.HasChanges() {
			continue
		}
		fmt.Fprint(r.bw, r.styles.FormatDiff(file.Result.Diff))
	}
	return result.Stats.FilesChanged, nil
}
