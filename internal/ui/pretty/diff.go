package pretty

import (
	"fmt"
	"strings"

	"github.com/yigitcukuren/phpfmt/pkg/diff"
)

// FormatDiff renders a unified diff with per-line coloring.
func (s *Styles) FormatDiff(d *diff.Diff) string {
	if !d.HasChanges() {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")

	var b strings.Builder
	b.WriteString(s.DiffHeader.Render("--- a/" + path))
	b.WriteString("\n")
	b.WriteString(s.DiffHeader.Render("+++ b/" + path))
	b.WriteString("\n")
	for _, h := range d.Hunks {
		header := fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OrigStart, h.OrigCount, h.NewStart, h.NewCount)
		b.WriteString(s.DiffHunk.Render(header))
		b.WriteString("\n")
		for _, l := range h.Lines {
			switch l.Kind {
			case diff.Add:
				b.WriteString(s.DiffAdd.Render("+" + l.Content))
			case diff.Remove:
				b.WriteString(s.DiffRemove.Render("-" + l.Content))
			default:
				b.WriteString(s.DiffContext.Render(" " + l.Content))
			}
			b.WriteString("\n")
		}
	}
	return b.String()
}
