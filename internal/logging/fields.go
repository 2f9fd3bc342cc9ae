// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
// Using constants prevents typos and enables IDE autocomplete.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"

	// Run mode fields.
	FieldWrite = "write"
	FieldCheck = "check"
	FieldDiff  = "diff"
	FieldJobs  = "jobs"

	// Statistics fields.
	FieldFilesDiscovered = "files_discovered"
	FieldFilesProcessed  = "files_processed"
	FieldFilesChanged    = "files_changed"
	FieldFilesWritten    = "files_written"
	FieldFilesSkipped    = "files_skipped"
	FieldFilesErrored    = "files_errored"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Config fields.
	FieldConfigPath = "config_path"
	FieldOption     = "option"
)
