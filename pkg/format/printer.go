// Package format turns parsed PHP back into source text according to a
// style configuration. Printing is two-phase: node printers build a
// document tree (pkg/format/doc), then the renderer lays it out against
// the configured width. Comments re-enter through the Comments
// attachment built by AttachTrivia.
package format

import (
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yigitcukuren/phpfmt/pkg/format/doc"
	"github.com/yigitcukuren/phpfmt/pkg/php/ast"
	"github.com/yigitcukuren/phpfmt/pkg/php/token"
	"github.com/yigitcukuren/phpfmt/pkg/style"
)

type printer struct {
	cfg      *style.Config
	comments *Comments
	src      []byte
	measure  func(string) int
}

func newPrinter(cfg *style.Config, comments *Comments, src []byte) *printer {
	measure := runewidth.StringWidth
	if cfg.WidthMetric == style.WidthRunes {
		measure = func(s string) int { return len([]rune(s)) }
	}
	return &printer{cfg: cfg, comments: comments, src: src, measure: measure}
}

// kw normalizes keyword casing.
func (p *printer) kw(s string) string {
	if p.cfg.KeywordCase == style.KeywordLowercase {
		return strings.ToLower(s)
	}
	return s
}

// blanksBetween counts the blank lines the source kept between two
// offsets, clamped to blank_lines_max.
func (p *printer) blanksBetween(from, to int) int {
	if from < 0 || to > len(p.src) || from >= to {
		return 0
	}
	n := 0
	for _, b := range p.src[from:to] {
		if b == '\n' {
			n++
		}
	}
	n--
	if n < 0 {
		n = 0
	}
	if n > p.cfg.BlankLinesMax {
		n = p.cfg.BlankLinesMax
	}
	return n
}

// sourceBrokeBetween reports whether the source had a line break
// between two offsets, which the preserve_breaking_* options honor.
func (p *printer) sourceBrokeBetween(from, to int) bool {
	if from < 0 || to > len(p.src) || from >= to {
		return false
	}
	for _, b := range p.src[from:to] {
		if b == '\n' {
			return true
		}
	}
	return false
}

// verbatim splits raw text on newlines and joins the pieces with
// literal lines so indentation never touches it.
func verbatim(s string) doc.Doc {
	lines := strings.Split(s, "\n")
	parts := make([]doc.Doc, 0, len(lines)*2-1)
	for i, l := range lines {
		if i > 0 {
			parts = append(parts, doc.LiteralLine)
		}
		parts = append(parts, doc.Text(strings.TrimSuffix(l, "\r")))
	}
	return doc.Concat(parts...)
}

func hardLines(n int) doc.Doc {
	parts := make([]doc.Doc, n)
	for i := range parts {
		parts[i] = doc.HardLine
	}
	return doc.Concat(parts...)
}

// leadingDocs renders a node's leading comments, preserving kept blank
// lines between comments and before the node itself.
func (p *printer) leadingDocs(n ast.Node) []doc.Doc {
	lead := p.comments.Leading(n)
	if len(lead) == 0 {
		return nil
	}
	var parts []doc.Doc
	for i, tr := range lead {
		parts = append(parts, verbatim(tr.Text), doc.HardLine)
		gapEnd := n.Span().Start
		if i+1 < len(lead) {
			gapEnd = lead[i+1].Span.Start
		}
		parts = append(parts, hardLines(p.blanksBetween(tr.Span.End, gapEnd)))
	}
	return parts
}

// trailingDoc renders a node's trailing comments for statement context,
// where a hard line always follows.
func (p *printer) trailingDoc(n ast.Node) doc.Doc {
	var parts []doc.Doc
	for _, tr := range p.comments.Trailing(n) {
		parts = append(parts, doc.Text(" "), verbatim(tr.Text))
	}
	return doc.Concat(parts...)
}

// trailingInline renders trailing comments inside an expression-level
// group. Any trailing comment forces the group broken: a line comment
// would swallow the rest of a flat layout, and a block comment glued
// between list items never round-trips to the same attachment.
func (p *printer) trailingInline(n ast.Node) doc.Doc {
	var parts []doc.Doc
	for _, tr := range p.comments.Trailing(n) {
		parts = append(parts, doc.Text(" "), verbatim(tr.Text))
	}
	if len(parts) > 0 {
		parts = append(parts, doc.BreakParent)
	}
	return doc.Concat(parts...)
}

// leadingInline renders leading comments for a list item inside a
// group. Comments that occupied their own line force the group broken.
func (p *printer) leadingInline(n ast.Node) doc.Doc {
	var parts []doc.Doc
	for _, tr := range p.comments.Leading(n) {
		parts = append(parts, verbatim(tr.Text))
		if tr.Kind == token.TriviaBlockComment || tr.Kind == token.TriviaDocComment {
			if tr.SameLine() {
				parts = append(parts, doc.Text(" "))
				continue
			}
		}
		parts = append(parts, doc.HardLine)
	}
	return doc.Concat(parts...)
}

func (p *printer) danglingDocs(n ast.Node) doc.Doc {
	var parts []doc.Doc
	for i, tr := range p.comments.Dangling(n) {
		if i > 0 {
			parts = append(parts, doc.HardLine)
		}
		parts = append(parts, verbatim(tr.Text))
	}
	return doc.Concat(parts...)
}

// program prints a whole file, minus the final newline the facade adds.
func (p *printer) program(prog *ast.Program) doc.Doc {
	var parts []doc.Doc
	if prog.LeadingHTML != "" {
		parts = append(parts, verbatim(prog.LeadingHTML), doc.LiteralLine)
	}
	parts = append(parts, doc.Text("<?php"))
	if len(prog.Stmts) > 0 {
		if _, isHTML := prog.Stmts[0].(*ast.InlineHTMLStmt); !isHTML {
			parts = append(parts, doc.HardLine, hardLines(p.cfg.BlankLinesAfterOpenTag))
		}
		parts = append(parts, p.stmtSeq(prog.Stmts, true))
	}
	if dangling := p.comments.Dangling(prog); len(dangling) > 0 {
		parts = append(parts, doc.HardLine, p.danglingDocs(prog))
	}
	return doc.Concat(parts...)
}

// stmtSeq prints a statement list without enclosing braces, handling
// blank-line preservation, use-statement sorting, assignment alignment,
// and inline HTML transitions.
func (p *printer) stmtSeq(stmts []ast.Stmt, topLevel bool) doc.Doc {
	alignCols := p.assignAlignment(stmts)

	var parts []doc.Doc
	prevEnd := -1
	for i := 0; i < len(stmts); i++ {
		s := stmts[i]
		if html, ok := s.(*ast.InlineHTMLStmt); ok {
			parts = append(parts, doc.Text(" "), doc.Text("?>"), verbatim(html.Text))
			if i < len(stmts)-1 {
				parts = append(parts, doc.Text("<?php"), doc.HardLine)
			}
			prevEnd = html.Span().End
			continue
		}

		start := s.Span().Start
		if lead := p.comments.Leading(s); len(lead) > 0 {
			start = lead[0].Span.Start
		}
		if i > 0 || !topLevel {
			if i > 0 {
				parts = append(parts, doc.HardLine)
			}
			blanks := p.blanksBetween(prevEnd, start)
			if p.cfg.EmptyLineBeforeReturn && i > 0 {
				if _, isRet := s.(*ast.ReturnStmt); isRet && blanks == 0 {
					blanks = 1
				}
			}
			parts = append(parts, hardLines(blanks))
		}

		// A run of consecutive use statements sorts and regroups as a
		// unit.
		if _, isUse := s.(*ast.UseStmt); isUse && p.cfg.SortUses {
			j := i
			for j < len(stmts) {
				if _, ok := stmts[j].(*ast.UseStmt); !ok {
					break
				}
				j++
			}
			run := make([]*ast.UseStmt, 0, j-i)
			for _, u := range stmts[i:j] {
				run = append(run, u.(*ast.UseStmt))
			}
			parts = append(parts, p.useRun(run))
			prevEnd = stmts[j-1].Span().End
			i = j - 1
			continue
		}

		parts = append(parts, p.leadingDocs(s)...)
		parts = append(parts, p.stmt(s, alignCols[i]))
		parts = append(parts, p.trailingDoc(s))

		prevEnd = s.Span().End
		if trail := p.comments.Trailing(s); len(trail) > 0 {
			prevEnd = trail[len(trail)-1].Span.End
		}
	}
	return doc.Concat(parts...)
}

// assignAlignment returns, per statement, the column the assignment
// target should pad to, or 0. Runs of adjacent simple assignments
// align; blank lines and other statements break a run.
func (p *printer) assignAlignment(stmts []ast.Stmt) []int {
	cols := make([]int, len(stmts))
	if !p.cfg.AlignAssignments {
		return cols
	}

	target := func(s ast.Stmt) (string, bool) {
		es, ok := s.(*ast.ExprStmt)
		if !ok {
			return "", false
		}
		as, ok := es.X.(*ast.Assign)
		if !ok || as.Op != "=" {
			return "", false
		}
		v, ok := as.Target.(*ast.Variable)
		if !ok {
			return "", false
		}
		return v.Name, true
	}

	i := 0
	for i < len(stmts) {
		name, ok := target(stmts[i])
		if !ok {
			i++
			continue
		}
		run := []int{i}
		maxW := p.measure(name)
		j := i + 1
		for j < len(stmts) {
			if p.blanksBetween(stmts[j-1].Span().End, stmts[j].Span().Start) > 0 {
				break
			}
			n, ok := target(stmts[j])
			if !ok {
				break
			}
			run = append(run, j)
			if w := p.measure(n); w > maxW {
				maxW = w
			}
			j++
		}
		if len(run) > 1 {
			for _, k := range run {
				cols[k] = maxW
			}
		}
		i = j
	}
	return cols
}

func (p *printer) stmt(s ast.Stmt, alignCol int) doc.Doc {
	switch v := s.(type) {
	case *ast.ExprStmt:
		if as, ok := v.X.(*ast.Assign); ok && alignCol > 0 {
			return doc.Concat(p.assign(as, alignCol), doc.Text(";"))
		}
		return doc.Concat(p.expr(v.X), doc.Text(";"))
	case *ast.EchoStmt:
		if len(v.Exprs) == 1 {
			return doc.Concat(doc.Text(p.kw("echo")+" "), p.expr(v.Exprs[0]), doc.Text(";"))
		}
		// Fill packs as many operands per line as fit instead of
		// breaking the whole list at once.
		items := make([]doc.Doc, 0, len(v.Exprs)*2-1)
		for i, e := range v.Exprs {
			if i > 0 {
				items = append(items, doc.Line)
			}
			d := p.expr(e)
			if i < len(v.Exprs)-1 {
				d = doc.Concat(d, doc.Text(","))
			}
			items = append(items, d)
		}
		return doc.Concat(doc.Text(p.kw("echo")+" "), doc.Indent(doc.Fill(items...)), doc.Text(";"))
	case *ast.ReturnStmt:
		if v.X == nil {
			return doc.Text(p.kw("return") + ";")
		}
		return doc.Concat(doc.Text(p.kw("return")), doc.Text(" "), p.expr(v.X), doc.Text(";"))
	case *ast.IfStmt:
		return p.ifStmt(v)
	case *ast.WhileStmt:
		return doc.Concat(doc.Text(p.kw("while")), doc.Text(" "), p.condParens(v.Cond),
			p.controlBody(v.Body))
	case *ast.DoWhileStmt:
		return doc.Concat(doc.Text(p.kw("do")), p.controlBody(v.Body),
			doc.Text(" "+p.kw("while")+" "), p.condParens(v.Cond), doc.Text(";"))
	case *ast.ForStmt:
		return p.forStmt(v)
	case *ast.ForeachStmt:
		return p.foreachStmt(v)
	case *ast.SwitchStmt:
		return p.switchStmt(v)
	case *ast.BreakStmt:
		if v.Level != "" {
			return doc.Text(p.kw("break") + " " + v.Level + ";")
		}
		return doc.Text(p.kw("break") + ";")
	case *ast.ContinueStmt:
		if v.Level != "" {
			return doc.Text(p.kw("continue") + " " + v.Level + ";")
		}
		return doc.Text(p.kw("continue") + ";")
	case *ast.ThrowStmt:
		return doc.Concat(doc.Text(p.kw("throw")+" "), p.expr(v.X), doc.Text(";"))
	case *ast.TryStmt:
		return p.tryStmt(v)
	case *ast.Block:
		return p.blockBody(v, false)
	case *ast.DeclareStmt:
		return p.declareStmt(v)
	case *ast.NamespaceStmt:
		if v.Name == nil {
			return doc.Text(p.kw("namespace") + ";")
		}
		return doc.Text(p.kw("namespace") + " " + v.Name.String() + ";")
	case *ast.UseStmt:
		return p.useStmt(v)
	case *ast.ConstStmt:
		return p.constStmt(v)
	case *ast.FunctionDecl:
		return p.functionDecl(v)
	case *ast.ClassDecl:
		return p.classDecl(v)
	case *ast.InlineHTMLStmt:
		// Handled by stmtSeq; reaching here means a lone trailing chunk.
		return verbatim(v.Text)
	}
	return doc.Nil
}

// condParens wraps a condition in parentheses that break before the
// closing paren when the condition is too long.
func (p *printer) condParens(cond ast.Expr) doc.Doc {
	pad := doc.SoftLine
	if p.cfg.SpaceWithinGroupingParens {
		pad = doc.Line
	}
	forced := doc.Nil
	if p.cfg.PreserveBreakingConditionList && p.sourceBrokeBetween(cond.Span().Start, cond.Span().End) {
		forced = doc.BreakParent
	}
	return doc.Group(doc.Concat(
		doc.Text("("),
		doc.Indent(doc.Concat(pad, p.expr(cond), forced)),
		pad,
		doc.Text(")"),
	))
}

// controlBody renders a control-structure block with the configured
// brace placement.
func (p *printer) controlBody(b *ast.Block) doc.Doc {
	if len(b.Stmts) == 0 && len(p.comments.Dangling(b)) == 0 && p.cfg.InlineEmptyControlBraces {
		return doc.Text(" {}")
	}
	sep := doc.Text(" ")
	if p.cfg.ControlBraceStyle == style.BraceNextLine {
		sep = doc.HardLine
	}
	return doc.Concat(sep, p.blockBody(b, false))
}

// blockBody renders { ... } including dangling comments before the
// closing brace. blankAfterOpen inserts the configured blank line after
// the opening brace of class-like bodies.
func (p *printer) blockBody(b *ast.Block, blankAfterOpen bool) doc.Doc {
	dangling := p.comments.Dangling(b)
	if len(b.Stmts) == 0 {
		if len(dangling) == 0 {
			return doc.Concat(doc.Text("{"), doc.HardLine, doc.Text("}"))
		}
		return doc.Concat(doc.Text("{"), doc.Indent(doc.Concat(doc.HardLine, p.danglingDocs(b))), doc.HardLine, doc.Text("}"))
	}
	inner := []doc.Doc{doc.HardLine}
	if blankAfterOpen {
		inner = append(inner, doc.HardLine)
	}
	inner = append(inner, p.stmtSeq(b.Stmts, false))
	if len(dangling) > 0 {
		inner = append(inner, doc.HardLine, p.danglingDocs(b))
	}
	return doc.Concat(doc.Text("{"), doc.Indent(doc.Concat(inner...)), doc.HardLine, doc.Text("}"))
}

func (p *printer) ifStmt(v *ast.IfStmt) doc.Doc {
	parts := []doc.Doc{
		doc.Text(p.kw("if") + " "), p.condParens(v.Cond), p.controlBody(v.Then),
	}
	for _, e := range v.Elseifs {
		parts = append(parts, p.chainKeyword(), doc.Text(p.kw("elseif")+" "), p.condParens(e.Cond), p.controlBody(e.Body))
	}
	if v.Else != nil {
		parts = append(parts, p.chainKeyword(), doc.Text(p.kw("else")), p.controlBody(v.Else))
	}
	return doc.Concat(parts...)
}

// chainKeyword separates } from a following elseif/else/catch/finally
// keyword according to the control brace style.
func (p *printer) chainKeyword() doc.Doc {
	if p.cfg.ControlBraceStyle == style.BraceNextLine {
		return doc.HardLine
	}
	return doc.Text(" ")
}

// forStmt prints the header as a fill over its three sections, so a
// header that cannot stay flat wraps at the semicolons rather than
// overflowing the width.
func (p *printer) forStmt(v *ast.ForStmt) doc.Doc {
	section := func(list []ast.Expr) doc.Doc {
		parts := make([]doc.Doc, len(list))
		for i, e := range list {
			parts[i] = p.expr(e)
		}
		return doc.Group(doc.Join(doc.Concat(doc.Text(","), doc.Line), parts...))
	}
	header := doc.Fill(
		doc.Concat(section(v.Init), doc.Text(";")),
		doc.Line,
		doc.Concat(section(v.Cond), doc.Text(";")),
		doc.Line,
		section(v.Post),
	)
	return doc.Concat(
		doc.Text(p.kw("for")+" ("),
		doc.Indent(header),
		doc.Text(")"),
		p.controlBody(v.Body),
	)
}

func (p *printer) foreachStmt(v *ast.ForeachStmt) doc.Doc {
	parts := []doc.Doc{
		doc.Text(p.kw("foreach") + " ("), p.expr(v.Subject), doc.Text(" " + p.kw("as") + " "),
	}
	if v.Key != nil {
		parts = append(parts, p.expr(v.Key), doc.Text(" => "))
	}
	if v.ByRef {
		parts = append(parts, doc.Text("&"))
	}
	value := p.expr(v.Value)
	if lit, ok := v.Value.(*ast.ArrayLit); ok {
		value = p.arrayLitStyled(lit, p.cfg.ListStyle)
	}
	parts = append(parts, value, doc.Text(")"), p.controlBody(v.Body))
	return doc.Concat(parts...)
}

func (p *printer) switchStmt(v *ast.SwitchStmt) doc.Doc {
	var body []doc.Doc
	for i, c := range v.Cases {
		if i > 0 {
			body = append(body, doc.HardLine)
			body = append(body, hardLines(p.blanksBetween(v.Cases[i-1].Span().End, c.Span().Start)))
		}
		body = append(body, p.leadingInline(c))
		if c.Cond == nil {
			body = append(body, doc.Text(p.kw("default")+":"))
		} else {
			body = append(body, doc.Text(p.kw("case")+" "), p.expr(c.Cond), doc.Text(":"))
		}
		body = append(body, p.trailingDoc(c))
		if len(c.Stmts) > 0 {
			body = append(body, doc.Indent(doc.Concat(doc.HardLine, p.stmtSeq(c.Stmts, false))))
		}
	}
	sep := doc.Text(" ")
	if p.cfg.ControlBraceStyle == style.BraceNextLine {
		sep = doc.HardLine
	}
	inner := doc.Concat(doc.HardLine, doc.Concat(body...))
	if dangling := p.comments.Dangling(v); len(dangling) > 0 {
		inner = doc.Concat(inner, doc.HardLine, p.danglingDocs(v))
	}
	return doc.Concat(
		doc.Text(p.kw("switch")+" "), p.condParens(v.Subject), sep,
		doc.Text("{"), doc.Indent(inner), doc.HardLine, doc.Text("}"),
	)
}

func (p *printer) tryStmt(v *ast.TryStmt) doc.Doc {
	parts := []doc.Doc{doc.Text(p.kw("try")), p.controlBody(v.Body)}
	for _, c := range v.Catches {
		names := make([]doc.Doc, len(c.Types))
		for i, n := range c.Types {
			names[i] = doc.Text(n.String())
		}
		parts = append(parts, p.chainKeyword(), doc.Text(p.kw("catch")+" ("), doc.Join(doc.Text(" | "), names...))
		if c.Var != "" {
			parts = append(parts, doc.Text(" "+c.Var))
		}
		parts = append(parts, doc.Text(")"), p.controlBody(c.Body))
	}
	if v.Finally != nil {
		parts = append(parts, p.chainKeyword(), doc.Text(p.kw("finally")), p.controlBody(v.Finally))
	}
	return doc.Concat(parts...)
}

func (p *printer) declareStmt(v *ast.DeclareStmt) doc.Doc {
	parts := []doc.Doc{doc.Text(p.kw("declare") + "(")}
	for i, d := range v.Directives {
		if i > 0 {
			parts = append(parts, doc.Text(", "))
		}
		parts = append(parts, doc.Text(d.Name+"="), p.expr(d.Value))
	}
	parts = append(parts, doc.Text(");"))
	return doc.Concat(parts...)
}

func (p *printer) constStmt(v *ast.ConstStmt) doc.Doc {
	parts := []doc.Doc{doc.Text(p.kw("const") + " ")}
	for i, c := range v.Consts {
		if i > 0 {
			parts = append(parts, doc.Text(", "))
		}
		parts = append(parts, doc.Text(c.Name+" = "), p.expr(c.Value))
	}
	parts = append(parts, doc.Text(";"))
	return doc.Concat(parts...)
}
