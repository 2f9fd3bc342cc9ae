// Package diff produces unified diffs between the original and
// formatted renditions of a file.
package diff

import (
	"fmt"
	"strings"
)

// contextLines is the number of unchanged lines shown around a change.
const contextLines = 3

// LineKind classifies a line within a hunk.
type LineKind int

const (
	Context LineKind = iota
	Add
	Remove
)

// Line is a single line of a hunk, without its +/-/space prefix.
type Line struct {
	Kind    LineKind
	Content string
}

// Hunk is one @@ block of a unified diff.
type Hunk struct {
	OrigStart int // 1-based
	OrigCount int
	NewStart  int // 1-based
	NewCount  int
	Lines     []Line
}

// Diff is a unified diff for one file.
type Diff struct {
	Path      string
	Hunks     []Hunk
	Additions int
	Deletions int
}

// Generate computes the unified diff between two contents. It returns
// nil when the contents are line-identical.
func Generate(path string, original, formatted []byte) *Diff {
	orig := splitLines(original)
	next := splitLines(formatted)

	ops := diffOps(orig, next)
	changed := false
	for _, op := range ops {
		if op.kind != Context {
			changed = true
			break
		}
	}
	if !changed {
		return nil
	}

	d := &Diff{Path: path, Hunks: hunks(ops)}
	for _, h := range d.Hunks {
		for _, l := range h.Lines {
			switch l.Kind {
			case Add:
				d.Additions++
			case Remove:
				d.Deletions++
			}
		}
	}
	return d
}

// HasChanges reports whether the diff holds at least one hunk.
func (d *Diff) HasChanges() bool { return d != nil && len(d.Hunks) > 0 }

// String renders the diff in unified format with ---/+++ headers.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}
	path := strings.TrimPrefix(d.Path, "/")
	var b strings.Builder
	fmt.Fprintf(&b, "--- a/%s\n", path)
	fmt.Fprintf(&b, "+++ b/%s\n", path)
	for _, h := range d.Hunks {
		fmt.Fprintf(&b, "@@ -%d,%d +%d,%d @@\n", h.OrigStart, h.OrigCount, h.NewStart, h.NewCount)
		for _, l := range h.Lines {
			switch l.Kind {
			case Context:
				b.WriteString(" ")
			case Add:
				b.WriteString("+")
			case Remove:
				b.WriteString("-")
			}
			b.WriteString(l.Content)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func splitLines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	lines := strings.Split(string(content), "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

type op struct {
	kind    LineKind
	content string
}

// diffOps walks original and formatted lines against their longest
// common subsequence, emitting context, remove, and add operations.
func diffOps(orig, next []string) []op {
	common := lcs(orig, next)
	var ops []op
	oi, ni, ci := 0, 0, 0
	for oi < len(orig) || ni < len(next) {
		if ci < len(common) && oi < len(orig) && ni < len(next) &&
			orig[oi] == common[ci] && next[ni] == common[ci] {
			ops = append(ops, op{Context, orig[oi]})
			oi++
			ni++
			ci++
			continue
		}
		for oi < len(orig) && (ci >= len(common) || orig[oi] != common[ci]) {
			ops = append(ops, op{Remove, orig[oi]})
			oi++
		}
		for ni < len(next) && (ci >= len(common) || next[ni] != common[ci]) {
			ops = append(ops, op{Add, next[ni]})
			ni++
		}
	}
	return ops
}

// hunks groups change runs into hunks, merging runs whose context
// windows would overlap.
func hunks(ops []op) []Hunk {
	type span struct{ start, end int }
	var runs []span
	open := -1
	for i, o := range ops {
		if o.kind != Context {
			if open < 0 {
				open = i
			}
			continue
		}
		if open >= 0 {
			runs = append(runs, span{open, i})
			open = -1
		}
	}
	if open >= 0 {
		runs = append(runs, span{open, len(ops)})
	}
	if len(runs) == 0 {
		return nil
	}

	var out []Hunk
	for i := 0; i < len(runs); {
		j := i + 1
		for j < len(runs) && runs[j].start-runs[j-1].end <= contextLines*2 {
			j++
		}
		out = append(out, buildHunk(ops, runs[i].start, runs[j-1].end))
		i = j
	}
	return out
}

func buildHunk(ops []op, changeStart, changeEnd int) Hunk {
	start := changeStart - contextLines
	if start < 0 {
		start = 0
	}
	end := changeEnd + contextLines
	if end > len(ops) {
		end = len(ops)
	}

	h := Hunk{OrigStart: 1, NewStart: 1}
	for i := 0; i < start; i++ {
		if ops[i].kind != Add {
			h.OrigStart++
		}
		if ops[i].kind != Remove {
			h.NewStart++
		}
	}
	for i := start; i < end; i++ {
		h.Lines = append(h.Lines, Line{Kind: ops[i].kind, Content: ops[i].content})
		switch ops[i].kind {
		case Context:
			h.OrigCount++
			h.NewCount++
		case Remove:
			h.OrigCount++
		case Add:
			h.NewCount++
		}
	}
	return h
}

// lcs computes the longest common subsequence of two line slices with
// the classic dynamic-programming table.
func lcs(a, b []string) []string {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	dp := make([][]int, len(a)+1)
	for i := range dp {
		dp[i] = make([]int, len(b)+1)
	}
	for i := 1; i <= len(a); i++ {
		for j := 1; j <= len(b); j++ {
			if a[i-1] == b[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else if dp[i-1][j] >= dp[i][j-1] {
				dp[i][j] = dp[i-1][j]
			} else {
				dp[i][j] = dp[i][j-1]
			}
		}
	}
	n := dp[len(a)][len(b)]
	if n == 0 {
		return nil
	}
	out := make([]string, n)
	i, j := len(a), len(b)
	for i > 0 && j > 0 {
		switch {
		case a[i-1] == b[j-1]:
			n--
			out[n] = a[i-1]
			i--
			j--
		case dp[i-1][j] > dp[i][j-1]:
			i--
		default:
			j--
		}
	}
	return out
}
