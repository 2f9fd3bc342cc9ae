package format

import (
	"sort"
	"strings"

	"github.com/yigitcukuren/phpfmt/pkg/format/doc"
	"github.com/yigitcukuren/phpfmt/pkg/php/ast"
)

func useTypeRank(t ast.UseType) int {
	switch t {
	case ast.UseFunction:
		return 1
	case ast.UseConst:
		return 2
	default:
		return 0
	}
}

func (p *printer) useKeyword(t ast.UseType) string {
	switch t {
	case ast.UseFunction:
		return p.kw("use") + " " + p.kw("function")
	case ast.UseConst:
		return p.kw("use") + " " + p.kw("const")
	default:
		return p.kw("use")
	}
}

// useRun prints a run of consecutive use statements sorted by name,
// optionally regrouped by import type with a blank line between types.
func (p *printer) useRun(run []*ast.UseStmt) doc.Doc {
	type item struct {
		stmt    *ast.UseStmt
		entries []*ast.UseEntry
	}

	var items []item
	for _, u := range run {
		entries := make([]*ast.UseEntry, len(u.Entries))
		copy(entries, u.Entries)
		sort.SliceStable(entries, func(i, j int) bool {
			return strings.ToLower(entries[i].Name.String()) < strings.ToLower(entries[j].Name.String())
		})
		if p.cfg.ExpandUseGroups && len(entries) > 1 {
			for i, e := range entries {
				it := item{stmt: u, entries: []*ast.UseEntry{e}}
				if i > 0 {
					// Comments stay with the first expanded line.
					it.stmt = nil
				}
				items = append(items, it)
			}
			continue
		}
		items = append(items, item{stmt: u, entries: entries})
	}

	key := func(it item) string {
		return strings.ToLower(it.entries[0].Name.String())
	}
	rank := func(it item) int {
		t := ast.UseClass
		if it.stmt != nil {
			t = it.stmt.Type
		}
		return useTypeRank(t)
	}
	// Expanded entries inherit the statement of their source line so the
	// use type survives the split.
	for i := range items {
		if items[i].stmt == nil {
			items[i].stmt = items[i-1].stmt
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		if p.cfg.SeparateUseTypes && rank(items[i]) != rank(items[j]) {
			return rank(items[i]) < rank(items[j])
		}
		return key(items[i]) < key(items[j])
	})

	var parts []doc.Doc
	seen := make(map[*ast.UseStmt]bool)
	for i, it := range items {
		if i > 0 {
			parts = append(parts, doc.HardLine)
			if p.cfg.SeparateUseTypes && rank(items[i-1]) != rank(it) {
				parts = append(parts, doc.HardLine)
			}
		}
		if !seen[it.stmt] {
			parts = append(parts, p.leadingDocs(it.stmt)...)
		}
		parts = append(parts, p.useLine(it.stmt.Type, it.entries))
		if !seen[it.stmt] {
			parts = append(parts, p.trailingDoc(it.stmt))
		}
		seen[it.stmt] = true
	}
	return doc.Concat(parts...)
}

// useStmt prints a single use statement with its source entry order,
// used when sorting is disabled.
func (p *printer) useStmt(u *ast.UseStmt) doc.Doc {
	return p.useLine(u.Type, u.Entries)
}

func (p *printer) useLine(t ast.UseType, entries []*ast.UseEntry) doc.Doc {
	parts := []doc.Doc{doc.Text(p.useKeyword(t) + " ")}
	for i, e := range entries {
		if i > 0 {
			parts = append(parts, doc.Text(", "))
		}
		parts = append(parts, doc.Text(e.Name.String()))
		if e.Alias != "" {
			parts = append(parts, doc.Text(" "+p.kw("as")+" "+e.Alias))
		}
	}
	parts = append(parts, doc.Text(";"))
	return doc.Concat(parts...)
}
