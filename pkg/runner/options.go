// Package runner orchestrates formatting across many files: discovery,
// a worker pool, and deterministic aggregation of per-file outcomes.
package runner

import (
	"github.com/yigitcukuren/phpfmt/pkg/format"
	"github.com/yigitcukuren/phpfmt/pkg/style"
)

// Options controls a multi-file run.
type Options struct {
	// Paths are the files or directories to process; empty means ".".
	Paths []string

	// WorkingDir resolves relative Paths; empty means the process CWD.
	WorkingDir string

	// Extensions is the set of extensions (lowercase, leading dot)
	// treated as PHP. Empty uses DefaultExtensions.
	Extensions []string

	// ExcludeGlobs skip matching files and directories, relative to
	// WorkingDir.
	ExcludeGlobs []string

	// FollowSymlinks traverses directory symlinks during discovery.
	FollowSymlinks bool

	// Jobs caps concurrent workers; zero or negative means NumCPU.
	Jobs int

	// Config is the resolved style configuration.
	Config *style.Config

	// Pipeline controls what happens to changed files.
	Pipeline format.PipelineOptions
}

// DefaultExtensions returns the extensions discovered by default.
func DefaultExtensions() []string {
	return []string{".php", ".phtml"}
}

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
