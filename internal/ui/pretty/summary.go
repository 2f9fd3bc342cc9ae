package pretty

import (
	"fmt"
	"strings"

	"github.com/yigitcukuren/phpfmt/pkg/runner"
)

// FormatSummaryLine renders a one-line run summary.
func (s *Styles) FormatSummaryLine(stats runner.Stats) string {
	parts := []string{
		fmt.Sprintf("%d files", stats.FilesDiscovered),
	}
	if stats.FilesWritten > 0 {
		parts = append(parts, fmt.Sprintf("%d formatted", stats.FilesWritten))
	} else if stats.FilesChanged > 0 {
		parts = append(parts, fmt.Sprintf("%d need formatting", stats.FilesChanged))
	}
	if stats.FilesSkipped > 0 {
		parts = append(parts, fmt.Sprintf("%d skipped", stats.FilesSkipped))
	}
	if stats.FilesErrored > 0 {
		parts = append(parts, fmt.Sprintf("%d errored", stats.FilesErrored))
	}

	line := strings.Join(parts, ", ")
	switch {
	case stats.FilesErrored > 0:
		return s.Failure.Render(line)
	case stats.FilesChanged > 0 && stats.FilesWritten == 0:
		return s.Bold.Render(line)
	default:
		return s.Success.Render(line)
	}
}
