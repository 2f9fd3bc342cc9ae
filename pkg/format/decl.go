package format

import (
	"strings"

	"github.com/yigitcukuren/phpfmt/pkg/format/doc"
	"github.com/yigitcukuren/phpfmt/pkg/php/ast"
	"github.com/yigitcukuren/phpfmt/pkg/style"
)

// attrGroups prints #[...] groups, each on its own line or trailing a
// space per attributes_on_own_line.
func (p *printer) attrGroups(groups []*ast.AttributeGroup) doc.Doc {
	var parts []doc.Doc
	for _, g := range groups {
		parts = append(parts, p.leadingDocs(g)...)
		parts = append(parts, p.attrGroup(g))
		if p.cfg.AttributesOnOwnLine {
			parts = append(parts, doc.HardLine)
		} else {
			parts = append(parts, doc.Text(" "))
		}
	}
	return doc.Concat(parts...)
}

func (p *printer) attrGroup(g *ast.AttributeGroup) doc.Doc {
	attrs := make([]doc.Doc, len(g.Attrs))
	for i, a := range g.Attrs {
		attrs[i] = p.attribute(a)
	}
	return doc.Concat(doc.Text("#["), doc.Join(doc.Text(", "), attrs...), doc.Text("]"))
}

func (p *printer) attribute(a *ast.Attribute) doc.Doc {
	if len(a.Args) == 0 {
		return doc.Text(a.Name.String())
	}
	force := false
	if p.cfg.AlwaysBreakAttributeNamedArguments {
		for _, arg := range a.Args {
			if arg.Name != "" {
				force = true
				break
			}
		}
	}
	return doc.Concat(doc.Text(a.Name.String()), p.argListForced(a, a.Args, force))
}

// typeHint prints a type annotation, rewriting nullability per
// null_type_hint.
func (p *printer) typeHint(t *ast.TypeHint) doc.Doc {
	if t == nil {
		return doc.Nil
	}
	sep := "|"
	if t.Sep == '&' {
		sep = "&"
	}
	joined := strings.Join(t.Types, sep)
	if !t.Nullable {
		return doc.Text(joined)
	}
	if p.cfg.NullTypeHint == style.NullPipe && t.Sep != '&' {
		return doc.Text(joined + "|" + p.kw("null"))
	}
	return doc.Text("?" + joined)
}

// nullableHint reports whether the hint already names null, so ?T and
// T|null collapse to one spelling.
func normalizeNullUnion(t *ast.TypeHint) *ast.TypeHint {
	if t == nil || t.Nullable || t.Sep == '&' || len(t.Types) < 2 {
		return t
	}
	var kept []string
	hasNull := false
	for _, name := range t.Types {
		if strings.EqualFold(name, "null") {
			hasNull = true
			continue
		}
		kept = append(kept, name)
	}
	if !hasNull || len(kept) == 0 {
		return t
	}
	return &ast.TypeHint{Nullable: true, Types: kept, Sep: t.Sep, Pos: t.Pos}
}

func (p *printer) typeAnnot(t *ast.TypeHint) doc.Doc {
	return p.typeHint(normalizeNullUnion(t))
}

// paramList prints a parameter list group. Promoted constructor
// properties force the break when break_promoted_properties is set.
func (p *printer) paramList(owner ast.Node, params []*ast.Param) doc.Doc {
	if len(params) == 0 {
		if dangling := p.comments.Dangling(owner); len(dangling) > 0 {
			return doc.Concat(
				doc.Text("("),
				doc.Indent(doc.Concat(doc.HardLine, p.danglingDocs(owner))),
				doc.HardLine,
				doc.Text(")"),
			)
		}
		return doc.Text("()")
	}
	var items []doc.Doc
	for i, prm := range params {
		if i > 0 {
			items = append(items, doc.Line)
		}
		items = append(items, p.leadingInline(prm), p.param(prm))
		if i < len(params)-1 {
			items = append(items, doc.Text(","))
		} else if p.cfg.TrailingComma {
			items = append(items, doc.IfBreak(doc.Text(","), nil))
		}
		items = append(items, p.trailingInline(prm))
	}
	force := false
	if p.cfg.BreakPromotedProperties {
		for _, prm := range params {
			if len(prm.Modifiers) > 0 {
				force = true
				break
			}
		}
	}
	if !force && p.cfg.PreserveBreakingParameterList && p.brokeBetweenItems(nodesOf(params)) {
		force = true
	}
	if force {
		items = append(items, doc.BreakParent)
	}
	// A comment before the closing paren has no parameter to lead; it
	// prints on its own line above the delimiter.
	if dangling := p.comments.Dangling(owner); len(dangling) > 0 {
		items = append(items, doc.HardLine, p.danglingDocs(owner))
	}
	return doc.Group(doc.Concat(
		doc.Text("("),
		doc.Indent(doc.Concat(doc.SoftLine, doc.Concat(items...))),
		doc.SoftLine,
		doc.Text(")"),
	))
}

func (p *printer) param(prm *ast.Param) doc.Doc {
	var parts []doc.Doc
	for _, g := range prm.Attrs {
		parts = append(parts, p.attrGroup(g), doc.Text(" "))
	}
	if len(prm.Modifiers) > 0 {
		parts = append(parts, doc.Text(p.joinModifiers(prm.Modifiers)+" "))
	}
	if prm.Type != nil {
		parts = append(parts, p.typeAnnot(prm.Type), doc.Text(" "))
	}
	if prm.ByRef {
		parts = append(parts, doc.Text("&"))
	}
	if prm.Variadic {
		parts = append(parts, doc.Text("..."))
	}
	parts = append(parts, doc.Text(prm.Name))
	if prm.Default != nil {
		parts = append(parts, doc.Text(" = "), p.expr(prm.Default))
	}
	return doc.Concat(parts...)
}

func modifierRank(m string, staticFirst bool) int {
	switch strings.ToLower(m) {
	case "abstract", "final":
		return 0
	case "public", "protected", "private":
		if staticFirst {
			return 2
		}
		return 1
	case "static":
		if staticFirst {
			return 1
		}
		return 2
	case "readonly":
		return 3
	}
	return 4
}

// joinModifiers normalizes modifier casing and order. The legacy var
// keyword becomes public.
func (p *printer) joinModifiers(mods []string) string {
	out := make([]string, 0, len(mods))
	for _, m := range mods {
		if strings.EqualFold(m, "var") {
			m = "public"
		}
		out = append(out, p.kw(m))
	}
	if p.cfg.VisibilityOrder == style.VisibilityFirst {
		sortStableBy(out, func(a, b string) bool {
			return modifierRank(a, p.cfg.StaticBeforeVisibility) < modifierRank(b, p.cfg.StaticBeforeVisibility)
		})
	}
	return strings.Join(out, " ")
}

func sortStableBy(items []string, less func(a, b string) bool) {
	for i := 1; i < len(items); i++ {
		for j := i; j > 0 && less(items[j], items[j-1]); j-- {
			items[j], items[j-1] = items[j-1], items[j]
		}
	}
}

// memberModifiers applies require_visibility on top of the shared
// normalization.
func (p *printer) memberModifiers(mods []string) string {
	hasVisibility := false
	for _, m := range mods {
		switch strings.ToLower(m) {
		case "public", "protected", "private", "var":
			hasVisibility = true
		}
	}
	if !hasVisibility && p.cfg.RequireVisibility {
		mods = append([]string{"public"}, mods...)
	}
	return p.joinModifiers(mods)
}

func (p *printer) functionDecl(v *ast.FunctionDecl) doc.Doc {
	parts := []doc.Doc{p.attrGroups(v.Attrs), doc.Text(p.kw("function") + " ")}
	if v.ByRef {
		parts = append(parts, doc.Text("&"))
	}
	parts = append(parts, doc.Text(v.Name), p.paramList(v, v.Params))
	if v.ReturnType != nil {
		parts = append(parts, doc.Text(": "), p.typeAnnot(v.ReturnType))
	}
	parts = append(parts, p.declBody(v.Body, p.cfg.FunctionBraceStyle))
	return doc.Concat(parts...)
}

// declBody places a function-like body per the given brace style; a nil
// body ends the declaration with a semicolon.
func (p *printer) declBody(b *ast.Block, bs style.BraceStyle) doc.Doc {
	if b == nil {
		return doc.Text(";")
	}
	sep := doc.Text(" ")
	if bs == style.BraceNextLine {
		sep = doc.HardLine
	}
	return doc.Concat(sep, p.blockBody(b, false))
}

func (p *printer) closure(v *ast.Closure) doc.Doc {
	var parts []doc.Doc
	if v.Static {
		parts = append(parts, doc.Text(p.kw("static")+" "))
	}
	parts = append(parts, doc.Text(p.kw("function")))
	if v.ByRef {
		parts = append(parts, doc.Text(" &"))
	} else if p.cfg.SpaceBeforeClosureParams {
		parts = append(parts, doc.Text(" "))
	}
	parts = append(parts, p.paramList(v, v.Params))
	if len(v.Uses) > 0 {
		use := doc.Text(" " + p.kw("use") + "(")
		if p.cfg.SpaceAfterClosureUse {
			use = doc.Text(" " + p.kw("use") + " (")
		}
		parts = append(parts, use)
		for i, u := range v.Uses {
			if i > 0 {
				parts = append(parts, doc.Text(", "))
			}
			if u.ByRef {
				parts = append(parts, doc.Text("&"))
			}
			parts = append(parts, doc.Text(u.Name))
		}
		parts = append(parts, doc.Text(")"))
	}
	if v.ReturnType != nil {
		parts = append(parts, doc.Text(": "), p.typeAnnot(v.ReturnType))
	}
	parts = append(parts, p.declBody(v.Body, p.cfg.ClosureBraceStyle))
	return doc.Concat(parts...)
}

func (p *printer) arrowFn(v *ast.ArrowFn) doc.Doc {
	var parts []doc.Doc
	if v.Static {
		parts = append(parts, doc.Text(p.kw("static")+" "))
	}
	parts = append(parts, doc.Text(p.kw("fn")))
	if p.cfg.SpaceBeforeArrowFnParams {
		parts = append(parts, doc.Text(" "))
	}
	parts = append(parts, p.paramList(v, v.Params))
	if v.ReturnType != nil {
		parts = append(parts, doc.Text(": "), p.typeAnnot(v.ReturnType))
	}
	parts = append(parts, doc.Text(" => "))
	parts = append(parts, doc.Group(doc.Indent(p.expr(v.Body))))
	return doc.Concat(parts...)
}

func classKindKeyword(k ast.ClassKind) string {
	switch k {
	case ast.KindInterface:
		return "interface"
	case ast.KindTrait:
		return "trait"
	case ast.KindEnum:
		return "enum"
	default:
		return "class"
	}
}

func (p *printer) classDecl(v *ast.ClassDecl) doc.Doc {
	parts := []doc.Doc{p.attrGroups(v.Attrs)}
	if len(v.Modifiers) > 0 {
		parts = append(parts, doc.Text(p.joinModifiers(v.Modifiers)+" "))
	}
	parts = append(parts, doc.Text(p.kw(classKindKeyword(v.Kind))+" "+v.Name))
	if v.BackingType != nil {
		parts = append(parts, doc.Text(": "), p.typeAnnot(v.BackingType))
	}
	if len(v.Extends) > 0 {
		names := make([]doc.Doc, len(v.Extends))
		for i, n := range v.Extends {
			names[i] = doc.Text(n.String())
		}
		parts = append(parts, doc.Text(" "+p.kw("extends")+" "), doc.Join(doc.Text(", "), names...))
	}
	if len(v.Implements) > 0 {
		names := make([]doc.Doc, len(v.Implements))
		for i, n := range v.Implements {
			names[i] = doc.Text(n.String())
		}
		parts = append(parts, doc.Text(" "+p.kw("implements")+" "), doc.Join(doc.Text(", "), names...))
	}

	sep := doc.Text(" ")
	if p.cfg.ClasslikeBraceStyle == style.BraceNextLine {
		sep = doc.HardLine
	}
	parts = append(parts, sep, p.classBody(v))
	return doc.Concat(parts...)
}

func (p *printer) classBody(v *ast.ClassDecl) doc.Doc {
	dangling := p.comments.Dangling(v)
	if len(v.Members) == 0 {
		if len(dangling) == 0 {
			return doc.Concat(doc.Text("{"), doc.HardLine, doc.Text("}"))
		}
		return doc.Concat(
			doc.Text("{"),
			doc.Indent(doc.Concat(doc.HardLine, p.danglingDocs(v))),
			doc.HardLine,
			doc.Text("}"),
		)
	}
	inner := []doc.Doc{doc.HardLine}
	if p.cfg.EmptyLineAfterOpeningBrace {
		inner = append(inner, doc.HardLine)
	}
	inner = append(inner, p.memberSeq(v.Members))
	if len(dangling) > 0 {
		inner = append(inner, doc.HardLine, p.danglingDocs(v))
	}
	return doc.Concat(doc.Text("{"), doc.Indent(doc.Concat(inner...)), doc.HardLine, doc.Text("}"))
}

// memberSpacing returns the configured minimum blank lines between two
// adjacent members.
func (p *printer) memberSpacing(a, b ast.Member) int {
	if _, ok := a.(*ast.MethodDecl); ok {
		return p.cfg.MethodSpacing
	}
	if _, ok := b.(*ast.MethodDecl); ok {
		return p.cfg.MethodSpacing
	}
	_, aProp := a.(*ast.PropertyDecl)
	_, bProp := b.(*ast.PropertyDecl)
	if aProp && bProp {
		return p.cfg.PropertySpacing
	}
	_, aConst := a.(*ast.ClassConstDecl)
	_, bConst := b.(*ast.ClassConstDecl)
	if aConst && bConst {
		return p.cfg.ConstSpacing
	}
	return 0
}

func (p *printer) memberSeq(members []ast.Member) doc.Doc {
	var parts []doc.Doc
	prevEnd := -1
	for i, m := range members {
		start := m.Span().Start
		if lead := p.comments.Leading(m); len(lead) > 0 {
			start = lead[0].Span.Start
		}
		if i > 0 {
			parts = append(parts, doc.HardLine)
			blanks := p.blanksBetween(prevEnd, start)
			if min := p.memberSpacing(members[i-1], m); blanks < min {
				blanks = min
			}
			if blanks > p.cfg.BlankLinesMax {
				blanks = p.cfg.BlankLinesMax
			}
			parts = append(parts, hardLines(blanks))
		}
		parts = append(parts, p.leadingDocs(m)...)
		parts = append(parts, p.member(m))
		parts = append(parts, p.trailingDoc(m))

		prevEnd = m.Span().End
		if trail := p.comments.Trailing(m); len(trail) > 0 {
			prevEnd = trail[len(trail)-1].Span.End
		}
	}
	return doc.Concat(parts...)
}

func (p *printer) member(m ast.Member) doc.Doc {
	switch v := m.(type) {
	case *ast.ClassConstDecl:
		return p.classConstDecl(v)
	case *ast.PropertyDecl:
		return p.propertyDecl(v)
	case *ast.MethodDecl:
		return p.methodDecl(v)
	case *ast.EnumCaseDecl:
		return p.enumCaseDecl(v)
	case *ast.UseTraitDecl:
		names := make([]doc.Doc, len(v.Names))
		for i, n := range v.Names {
			names[i] = doc.Text(n.String())
		}
		return doc.Concat(doc.Text(p.kw("use")+" "), doc.Join(doc.Text(", "), names...), doc.Text(";"))
	}
	return doc.Nil
}

func (p *printer) classConstDecl(v *ast.ClassConstDecl) doc.Doc {
	head := []doc.Doc{p.attrGroups(v.Attrs)}
	if mods := p.memberModifiers(v.Modifiers); mods != "" {
		head = append(head, doc.Text(mods+" "))
	}
	head = append(head, doc.Text(p.kw("const")+" "))
	if v.Type != nil {
		head = append(head, p.typeAnnot(v.Type), doc.Text(" "))
	}

	entry := func(c *ast.ConstEntry) doc.Doc {
		return doc.Concat(doc.Text(c.Name+" = "), p.expr(c.Value))
	}
	if p.cfg.SplitMultiDeclare && len(v.Consts) > 1 {
		var parts []doc.Doc
		for i, c := range v.Consts {
			if i > 0 {
				parts = append(parts, doc.HardLine)
			}
			parts = append(parts, doc.Concat(head...), entry(c), doc.Text(";"))
		}
		return doc.Concat(parts...)
	}
	parts := append([]doc.Doc{}, head...)
	for i, c := range v.Consts {
		if i > 0 {
			parts = append(parts, doc.Text(", "))
		}
		parts = append(parts, entry(c))
	}
	parts = append(parts, doc.Text(";"))
	return doc.Concat(parts...)
}

func (p *printer) propertyDecl(v *ast.PropertyDecl) doc.Doc {
	head := []doc.Doc{p.attrGroups(v.Attrs)}
	if mods := p.memberModifiers(v.Modifiers); mods != "" {
		head = append(head, doc.Text(mods+" "))
	}
	if v.Type != nil {
		head = append(head, p.typeAnnot(v.Type), doc.Text(" "))
	}

	entry := func(e *ast.PropertyEntry) doc.Doc {
		if e.Default == nil {
			return doc.Text(e.Name)
		}
		return doc.Concat(doc.Text(e.Name+" = "), p.expr(e.Default))
	}
	if p.cfg.SplitMultiDeclare && len(v.Props) > 1 {
		var parts []doc.Doc
		for i, e := range v.Props {
			if i > 0 {
				parts = append(parts, doc.HardLine)
			}
			parts = append(parts, doc.Concat(head...), entry(e), doc.Text(";"))
		}
		return doc.Concat(parts...)
	}
	parts := append([]doc.Doc{}, head...)
	for i, e := range v.Props {
		if i > 0 {
			parts = append(parts, doc.Text(", "))
		}
		parts = append(parts, entry(e))
	}
	parts = append(parts, doc.Text(";"))
	return doc.Concat(parts...)
}

func (p *printer) methodDecl(v *ast.MethodDecl) doc.Doc {
	parts := []doc.Doc{p.attrGroups(v.Attrs)}
	if mods := p.memberModifiers(v.Modifiers); mods != "" {
		parts = append(parts, doc.Text(mods+" "))
	}
	parts = append(parts, doc.Text(p.kw("function")+" "))
	if v.ByRef {
		parts = append(parts, doc.Text("&"))
	}
	parts = append(parts, doc.Text(v.Name), p.paramList(v, v.Params))
	if v.ReturnType != nil {
		parts = append(parts, doc.Text(": "), p.typeAnnot(v.ReturnType))
	}
	parts = append(parts, p.declBody(v.Body, p.cfg.FunctionBraceStyle))
	return doc.Concat(parts...)
}

func (p *printer) enumCaseDecl(v *ast.EnumCaseDecl) doc.Doc {
	parts := []doc.Doc{p.attrGroups(v.Attrs), doc.Text(p.kw("case") + " " + v.Name)}
	if v.Value != nil {
		parts = append(parts, doc.Text(" = "), p.expr(v.Value))
	}
	parts = append(parts, doc.Text(";"))
	return doc.Concat(parts...)
}
