package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yigitcukuren/phpfmt/internal/ui/pretty"
	"github.com/yigitcukuren/phpfmt/pkg/runner"
)

// SummaryReporter prints only the aggregate statistics line.
type SummaryReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewSummaryReporter creates a new summary reporter.
func NewSummaryReporter(opts Options) *SummaryReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &SummaryReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *SummaryReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()
	if result == nil {
		return 0, nil
	}
	fmt.Fprintln(r.bw, r.styles.FormatSummaryLine(result.Stats))
	return result.Stats.FilesChanged, nil
}

// ListReporter prints the path of every file that needs formatting,
// one per line, for scripting.
type ListReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewListReporter creates a new list reporter.
func NewListReporter(opts Options) *ListReporter {
	return &ListReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *ListReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()
	if result == nil {
		return 0, nil
	}
	for _, file := range result.Files {
		if file.Result != nil && file.Result.Changed {
			fmt.Fprintln(r.bw, displayPath(r.opts.WorkingDir, file.Path))
		}
	}
	return result.Stats.FilesChanged, nil
}
