package cli

import (
	"errors"

	"github.com/yigitcukuren/phpfmt/pkg/format"
	"github.com/yigitcukuren/phpfmt/pkg/runner"
)

// Exit codes for phpfmt.
const (
	// ExitSuccess indicates nothing needed changing, or writes succeeded.
	ExitSuccess = 0

	// ExitChangesNeeded indicates changes would be made (check, diff,
	// and list modes).
	ExitChangesNeeded = 1

	// ExitFatal indicates at least one file failed to parse or an
	// internal error occurred.
	ExitFatal = 2

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates a configuration file error.
	ExitConfigError = 65

	// ExitIOError indicates a file I/O error.
	ExitIOError = 74
)

// ExitError carries an exit code through cobra's error return.
type ExitError struct {
	Code int
	Err  error
}

// Error implements the error interface.
func (e *ExitError) Error() string {
	if e.Err == nil {
		return "exit"
	}
	return e.Err.Error()
}

// Unwrap exposes the wrapped error to errors.Is/As.
func (e *ExitError) Unwrap() error { return e.Err }

// Silent reports whether the error is only an exit-code signal and
// should not be logged.
func (e *ExitError) Silent() bool { return e.Err == nil }

// exitWith returns an ExitError signalling code without a message.
func exitWith(code int) *ExitError {
	return &ExitError{Code: code}
}

// ExitCodeFromResult determines the exit code for a completed run.
// Per-file errors take precedence over pending changes; pending changes
// only matter when files are not being rewritten in place.
func ExitCodeFromResult(result *runner.Result, write bool) int {
	if result == nil {
		return ExitSuccess
	}

	if result.HasErrors() {
		return worstErrorCode(result)
	}
	if !write && result.HasChanges() {
		return ExitChangesNeeded
	}
	return ExitSuccess
}

// worstErrorCode maps the run's file errors to a single exit code.
// Parse failures dominate I/O failures so CI surfaces broken sources
// first.
func worstErrorCode(result *runner.Result) int {
	sawIO := false
	for _, file := range result.Files {
		if file.Error == nil {
			continue
		}
		if errors.Is(file.Error, format.ErrParseFailure) {
			return ExitFatal
		}
		if errors.Is(file.Error, format.ErrFileNotFound) ||
			errors.Is(file.Error, format.ErrPermissionDenied) ||
			errors.Is(file.Error, format.ErrWriteFailure) {
			sawIO = true
		}
	}
	if sawIO {
		return ExitIOError
	}
	return ExitFatal
}
