// Package pretty provides Lipgloss-based styled output utilities.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles contains all styled renderers for CLI output.
type Styles struct {
	// File and status components.
	FilePath lipgloss.Style
	Status   lipgloss.Style
	Error    lipgloss.Style

	// Diff styles.
	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	// Summary styles.
	SummaryTitle lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	// Misc.
	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// NewStyles creates a new Styles with the given color mode.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &Styles{
			FilePath:     plain,
			Status:       plain,
			Error:        plain,
			DiffHeader:   plain,
			DiffHunk:     plain,
			DiffAdd:      plain,
			DiffRemove:   plain,
			DiffContext:  plain,
			SummaryTitle: plain,
			Success:      plain,
			Failure:      plain,
			Dim:          plain,
			Bold:         plain,
		}
	}
	return &Styles{
		FilePath:     lipgloss.NewStyle().Bold(true),
		Status:       lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Error:        lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		DiffHeader:   lipgloss.NewStyle().Bold(true),
		DiffHunk:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
		DiffAdd:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		DiffRemove:   lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
		DiffContext:  lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		SummaryTitle: lipgloss.NewStyle().Bold(true),
		Success:      lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true),
		Failure:      lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true),
		Dim:          lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Bold:         lipgloss.NewStyle().Bold(true),
	}
}

// IsColorEnabled determines if color should be enabled based on mode and writer.
// Mode values: "auto" (default), "always", "never".
// In auto mode, color is enabled only if the writer is a TTY and NO_COLOR is not set.
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default: // "auto"
		// https://no-color.org/
		if os.Getenv("NO_COLOR") != "" {
			return false
		}
		if f, ok := writer.(*os.File); ok {
			return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
		}
		return false
	}
}
