package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yigitcukuren/phpfmt/pkg/runner"
)

// JSONOutput is the top-level JSON structure.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult represents a single file's outcome.
type JSONFileResult struct {
	Path       string `json:"path"`
	Changed    bool   `json:"changed"`
	Written    bool   `json:"written,omitempty"`
	Skipped    bool   `json:"skipped,omitempty"`
	SkipReason string `json:"skipReason,omitempty"`
	Diff       string `json:"diff,omitempty"`
	Error      string `json:"error,omitempty"`
}

// JSONSummary contains aggregate statistics.
type JSONSummary struct {
	FilesDiscovered int `json:"filesDiscovered"`
	FilesProcessed  int `json:"filesProcessed"`
	FilesChanged    int `json:"filesChanged"`
	FilesWritten    int `json:"filesWritten"`
	FilesSkipped    int `json:"filesSkipped"`
	FilesErrored    int `json:"filesErrored"`
}

// JSONReporter formats results as JSON.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter creates a new JSON reporter.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{
		opts: opts,
		bw:   bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}
	return output.Summary.FilesChanged, nil
}

func (r *JSONReporter) buildOutput(result *runner.Result) *JSONOutput {
	output := &JSONOutput{Version: "1", Files: []JSONFileResult{}}
	if result == nil {
		return output
	}

	for _, file := range result.Files {
		jf := JSONFileResult{Path: displayPath(r.opts.WorkingDir, file.Path)}
		if file.Error != nil {
			jf.Error = file.Error.Error()
			output.Files = append(output.Files, jf)
			continue
		}
		if file.Result != nil {
			jf.Changed = file.Result.Changed
			jf.Written = file.Result.Written
			jf.Skipped = file.Result.Skipped
			jf.SkipReason = file.Result.SkipReason
			if file.Result.Diff.HasChanges() {
				jf.Diff = file.Result.Diff.String()
			}
		}
		output.Files = append(output.Files, jf)
	}

	output.Summary = JSONSummary{
		FilesDiscovered: result.Stats.FilesDiscovered,
		FilesProcessed:  result.Stats.FilesProcessed,
		FilesChanged:    result.Stats.FilesChanged,
		FilesWritten:    result.Stats.FilesWritten,
		FilesSkipped:    result.Stats.FilesSkipped,
		FilesErrored:    result.Stats.FilesErrored,
	}
	return output
}
