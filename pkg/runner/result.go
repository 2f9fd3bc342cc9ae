package runner

import "github.com/yigitcukuren/phpfmt/pkg/format"

// FileOutcome pairs a file path with its pipeline result or error.
type FileOutcome struct {
	Path string

	// Result is nil when the file errored.
	Result *format.FileResult

	// Error is set when the file could not be processed.
	Error error
}

// Stats aggregates a run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesChanged    int
	FilesWritten    int
	FilesSkipped    int
	FilesErrored    int
	BackupsCreated  int
}

// Result collects per-file outcomes in path order plus run statistics.
type Result struct {
	Files []FileOutcome
	Stats Stats

	// Errors holds failures not tied to a single file.
	Errors []error
}

// HasChanges reports whether any file needed formatting.
func (r *Result) HasChanges() bool {
	return r != nil && r.Stats.FilesChanged > 0
}

// HasErrors reports whether any file failed to process.
func (r *Result) HasErrors() bool {
	return r != nil && (r.Stats.FilesErrored > 0 || len(r.Errors) > 0)
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++
	if outcome.Result.Changed {
		r.Stats.FilesChanged++
	}
	if outcome.Result.Written {
		r.Stats.FilesWritten++
	}
	if outcome.Result.Skipped {
		r.Stats.FilesSkipped++
	}
	if outcome.Result.BackupCreated {
		r.Stats.BackupsCreated++
	}
}
