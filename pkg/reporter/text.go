package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yigitcukuren/phpfmt/internal/ui/pretty"
	"github.com/yigitcukuren/phpfmt/pkg/runner"
)

// TextReporter writes per-file status lines as styled terminal output.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to format."))
		}
		return 0, nil
	}

	for _, file := range result.Files {
		path := displayPath(r.opts.WorkingDir, file.Path)
		if file.Error != nil {
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}
		if file.Result == nil {
			continue
		}
		// Unchanged files stay quiet; only work and problems print.
		if !file.Result.Changed && !file.Result.Skipped {
			continue
		}
		fmt.Fprintf(r.bw, "%s: %s\n",
			r.styles.FilePath.Render(path),
			r.styles.Status.Render(file.Result.Summary()),
		)
	}

	if r.opts.ShowSummary {
		fmt.Fprintln(r.bw, r.styles.FormatSummaryLine(result.Stats))
	}
	return result.Stats.FilesChanged, nil
}
