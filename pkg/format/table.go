package format

import (
	"strings"

	"github.com/yigitcukuren/phpfmt/pkg/format/doc"
	"github.com/yigitcukuren/phpfmt/pkg/php/ast"
	"github.com/yigitcukuren/phpfmt/pkg/style"
)

func (p *printer) arrayLit(v *ast.ArrayLit) doc.Doc {
	return p.arrayLitStyled(v, p.cfg.ArrayStyle)
}

// arrayLitStyled prints an array literal with an explicit syntax choice,
// so destructuring targets can follow list_style instead of array_style.
func (p *printer) arrayLitStyled(v *ast.ArrayLit, st style.ArrayStyle) doc.Doc {
	long := v.Long
	switch st {
	case style.ArrayShort:
		long = false
	case style.ArrayLong:
		long = true
	}
	open, closing := "[", "]"
	if long {
		open, closing = p.kw("array")+"(", ")"
	}

	if len(v.Entries) == 0 {
		if dangling := p.comments.Dangling(v); len(dangling) > 0 {
			return doc.Concat(
				doc.Text(open),
				doc.Indent(doc.Concat(doc.HardLine, p.danglingDocs(v))),
				doc.HardLine,
				doc.Text(closing),
			)
		}
		return doc.Text(open + closing)
	}

	if rows, widths, ok := p.tableCells(v); ok {
		return p.tableDoc(v, rows, widths, open, closing)
	}

	var items []doc.Doc
	for i, e := range v.Entries {
		if i > 0 {
			items = append(items, doc.Line)
		}
		items = append(items, p.leadingInline(e), p.entryDoc(e))
		if i < len(v.Entries)-1 {
			items = append(items, doc.Text(","))
		} else if p.cfg.TrailingComma {
			items = append(items, doc.IfBreak(doc.Text(","), nil))
		}
		items = append(items, p.trailingInline(e))
	}
	if p.cfg.PreserveBreakingArrayLike && p.brokeBetweenItems(nodesOf(v.Entries)) {
		items = append(items, doc.BreakParent)
	}
	inner := doc.Concat(doc.SoftLine, doc.Concat(items...))
	if dangling := p.comments.Dangling(v); len(dangling) > 0 {
		inner = doc.Concat(inner, doc.HardLine, p.danglingDocs(v), doc.BreakParent)
	}
	return doc.Group(doc.Concat(
		doc.Text(open),
		doc.Indent(inner),
		doc.SoftLine,
		doc.Text(closing),
	))
}

func (p *printer) entryDoc(e *ast.ArrayEntry) doc.Doc {
	var parts []doc.Doc
	if e.Key != nil {
		parts = append(parts, p.expr(e.Key), doc.Text(" => "))
	}
	if e.Spread {
		parts = append(parts, doc.Text("..."))
	}
	if e.ByRef {
		parts = append(parts, doc.Text("&"))
	}
	parts = append(parts, p.expr(e.Value))
	return doc.Concat(parts...)
}

// flatText renders a document on one unbounded line. It fails when the
// document contains a forced break.
func (p *printer) flatText(d doc.Doc) (string, bool) {
	s := doc.Render(d, doc.RenderOptions{
		Width:    1 << 20,
		TabWidth: p.cfg.TabWidth,
		Measure:  p.measure,
	})
	if strings.Contains(s, "\n") {
		return "", false
	}
	return s, true
}

// tableRow is one aligned row: cell texts with the row's opening
// delimiter folded into the first cell, plus the closing delimiter.
type tableRow struct {
	cells   []string
	closing string
}

// rowCells flattens one row into cell texts. Rows are inner array
// literals or calls of a plain named function; anything else, or a row
// carrying comments, disqualifies the table.
func (p *printer) rowCells(e *ast.ArrayEntry) (tableRow, bool) {
	var open, closing string
	var values []doc.Doc

	switch row := e.Value.(type) {
	case *ast.ArrayLit:
		if len(row.Entries) == 0 || len(p.comments.Dangling(row)) > 0 {
			return tableRow{}, false
		}
		long := row.Long
		switch p.cfg.ArrayStyle {
		case style.ArrayShort:
			long = false
		case style.ArrayLong:
			long = true
		}
		open, closing = "[", "]"
		if long {
			open, closing = p.kw("array")+"(", ")"
		}
		for _, cell := range row.Entries {
			if len(p.comments.Leading(cell)) > 0 || len(p.comments.Trailing(cell)) > 0 {
				return tableRow{}, false
			}
			values = append(values, p.entryDoc(cell))
		}
	case *ast.Call:
		name, ok := row.Fun.(*ast.Name)
		if !ok || len(row.Args) == 0 || len(p.comments.Dangling(row)) > 0 {
			return tableRow{}, false
		}
		open, closing = name.String()+"(", ")"
		for _, cell := range row.Args {
			if len(p.comments.Leading(cell)) > 0 || len(p.comments.Trailing(cell)) > 0 {
				return tableRow{}, false
			}
			values = append(values, p.argDoc(cell))
		}
	default:
		return tableRow{}, false
	}

	cells := make([]string, 0, len(values))
	for i, d := range values {
		text, ok := p.flatText(d)
		if !ok {
			return tableRow{}, false
		}
		if i == 0 {
			text = open + text
		}
		cells = append(cells, text)
	}
	return tableRow{cells: cells, closing: closing}, true
}

// tableCells decides whether an array literal qualifies for table
// alignment and returns the flattened rows plus per-column widths.
// Qualifying arrays hold at least two unkeyed rows of equal arity whose
// cells render on one line, with no comments inside any row, and no row
// wider than table_alignment_max_width before padding.
func (p *printer) tableCells(v *ast.ArrayLit) ([]tableRow, []int, bool) {
	if !p.cfg.ArrayTableAlignment || len(v.Entries) < 2 {
		return nil, nil, false
	}

	arity := -1
	rows := make([]tableRow, 0, len(v.Entries))
	for _, e := range v.Entries {
		if e.Key != nil || e.Spread || e.ByRef {
			return nil, nil, false
		}
		row, ok := p.rowCells(e)
		if !ok {
			return nil, nil, false
		}
		if arity == -1 {
			arity = len(row.cells)
		} else if len(row.cells) != arity {
			return nil, nil, false
		}
		rowWidth := p.measure(row.closing)
		for _, cell := range row.cells {
			rowWidth += p.measure(cell)
		}
		rowWidth += 2 * (arity - 1)
		if rowWidth > p.cfg.TableAlignmentMaxWidth {
			return nil, nil, false
		}
		rows = append(rows, row)
	}

	widths := make([]int, arity)
	for _, row := range rows {
		for i, cell := range row.cells {
			if w := p.measure(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return rows, widths, true
}

// tableDoc prints a qualifying array as an aligned table, one row per
// line with every column except the last padded to its widest cell.
// The last row's comma follows trailing_comma.
func (p *printer) tableDoc(v *ast.ArrayLit, rows []tableRow, widths []int, open, closing string) doc.Doc {
	var body []doc.Doc
	for i, row := range rows {
		entry := v.Entries[i]
		if i > 0 {
			body = append(body, doc.HardLine)
		}
		body = append(body, p.leadingInline(entry))

		var line strings.Builder
		for j, cell := range row.cells {
			line.WriteString(cell)
			if j < len(row.cells)-1 {
				// Pad after the comma so each column starts at the same
				// offset across rows.
				line.WriteString(",")
				line.WriteString(strings.Repeat(" ", widths[j]-p.measure(cell)+1))
			}
		}
		line.WriteString(row.closing)
		if i < len(rows)-1 || p.cfg.TrailingComma {
			line.WriteString(",")
		}
		body = append(body, doc.Text(line.String()), p.trailingDoc(entry))
	}
	inner := doc.Concat(doc.HardLine, doc.Concat(body...))
	if dangling := p.comments.Dangling(v); len(dangling) > 0 {
		inner = doc.Concat(inner, doc.HardLine, p.danglingDocs(v))
	}
	return doc.Concat(
		doc.Text(open),
		doc.Indent(inner),
		doc.HardLine,
		doc.Text(closing),
	)
}
