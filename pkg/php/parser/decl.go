package parser

import (
	"github.com/yigitcukuren/phpfmt/pkg/php/ast"
	"github.com/yigitcukuren/phpfmt/pkg/php/token"
)

func (p *parser) parseAttributeGroups() []*ast.AttributeGroup {
	var groups []*ast.AttributeGroup
	for p.at(token.TokAttributeStart) {
		gStart := p.advance().Span.Start
		group := &ast.AttributeGroup{}
		for {
			aStart := p.cur().Span.Start
			attr := &ast.Attribute{Name: p.parseName()}
			if p.at(token.TokLparen) {
				attr.Args = p.parseArgs()
			}
			attr.Pos = p.span(aStart)
			group.Attrs = append(group.Attrs, attr)
			if !p.accept(token.TokComma) {
				break
			}
			if p.at(token.TokRbrack) {
				break
			}
		}
		p.expect(token.TokRbrack, "']'")
		group.Pos = p.span(gStart)
		groups = append(groups, group)
	}
	return groups
}

var paramModifiers = []string{"public", "protected", "private", "readonly"}

func (p *parser) parseParams() []*ast.Param {
	p.expect(token.TokLparen, "'('")
	var params []*ast.Param
	for !p.at(token.TokRparen) {
		start := p.cur().Span.Start
		param := &ast.Param{Attrs: p.parseAttributeGroups()}
		for p.atParamModifier() {
			param.Modifiers = append(param.Modifiers, p.advance().Text)
		}
		if p.typeAhead() {
			param.Type = p.parseTypeHint()
		}
		param.ByRef = p.accept(token.TokAmp)
		param.Variadic = p.accept(token.TokEllipsis)
		param.Name = p.expect(token.TokVariable, "parameter variable").Text
		if p.accept(token.TokEq) {
			param.Default = p.parseExpr()
		}
		param.Pos = p.span(start)
		params = append(params, param)
		if !p.accept(token.TokComma) {
			break
		}
	}
	p.expect(token.TokRparen, "')'")
	return params
}

func (p *parser) atParamModifier() bool {
	for _, m := range paramModifiers {
		if p.atKw(m) {
			return true
		}
	}
	return false
}

// typeAhead reports whether the current token opens a type hint rather
// than the parameter variable itself.
func (p *parser) typeAhead() bool {
	switch p.cur().Kind {
	case token.TokQuestion, token.TokBackslash, token.TokIdent:
		return true
	}
	return false
}

func (p *parser) parseTypeHint() *ast.TypeHint {
	start := p.cur().Span.Start
	hint := &ast.TypeHint{}
	hint.Nullable = p.accept(token.TokQuestion)
	hint.Types = append(hint.Types, p.parseTypeAtom())
	switch {
	case p.at(token.TokPipe):
		hint.Sep = '|'
		for p.accept(token.TokPipe) {
			hint.Types = append(hint.Types, p.parseTypeAtom())
		}
	case p.at(token.TokAmp) && p.intersectionAhead():
		hint.Sep = '&'
		for p.at(token.TokAmp) && p.intersectionAhead() {
			p.advance()
			hint.Types = append(hint.Types, p.parseTypeAtom())
		}
	}
	hint.Pos = p.span(start)
	return hint
}

// intersectionAhead distinguishes an intersection type A&B from the
// by-reference marker in A &$x.
func (p *parser) intersectionAhead() bool {
	next := p.peek(1)
	return next.Kind == token.TokIdent || next.Kind == token.TokBackslash
}

func (p *parser) parseTypeAtom() string {
	if p.at(token.TokLparen) {
		p.failHere("parenthesized DNF types are not supported")
	}
	return p.parseName().String()
}

func (p *parser) parseFunctionDecl(attrs []*ast.AttributeGroup) ast.Stmt {
	start := p.cur().Span.Start
	if len(attrs) > 0 {
		start = attrs[0].Pos.Start
	}
	p.expectKw("function")
	decl := &ast.FunctionDecl{Attrs: attrs}
	decl.ByRef = p.accept(token.TokAmp)
	decl.Name = p.expect(token.TokIdent, "function name").Text
	decl.Params = p.parseParams()
	if p.accept(token.TokColon) {
		decl.ReturnType = p.parseTypeHint()
	}
	decl.Body = p.parseBlock()
	decl.Pos = p.span(start)
	return decl
}

var classModifiers = []string{"abstract", "final", "readonly"}

func (p *parser) parseClassDecl(attrs []*ast.AttributeGroup) ast.Stmt {
	start := p.cur().Span.Start
	if len(attrs) > 0 {
		start = attrs[0].Pos.Start
	}
	decl := &ast.ClassDecl{Attrs: attrs}
	for p.atClassModifier() {
		decl.Modifiers = append(decl.Modifiers, p.advance().Text)
	}
	switch {
	case p.acceptKw("class"):
		decl.Kind = ast.KindClass
	case p.acceptKw("interface"):
		decl.Kind = ast.KindInterface
	case p.acceptKw("trait"):
		decl.Kind = ast.KindTrait
	case p.acceptKw("enum"):
		decl.Kind = ast.KindEnum
	default:
		p.failHere("expected class, interface, trait, or enum")
	}
	decl.Name = p.expect(token.TokIdent, "type name").Text

	if decl.Kind == ast.KindEnum && p.accept(token.TokColon) {
		decl.BackingType = p.parseTypeHint()
	}
	if p.acceptKw("extends") {
		decl.Extends = append(decl.Extends, p.parseName())
		for p.accept(token.TokComma) {
			decl.Extends = append(decl.Extends, p.parseName())
		}
	}
	if p.acceptKw("implements") {
		decl.Implements = append(decl.Implements, p.parseName())
		for p.accept(token.TokComma) {
			decl.Implements = append(decl.Implements, p.parseName())
		}
	}

	p.expect(token.TokLbrace, "'{'")
	for !p.at(token.TokRbrace) {
		if p.at(token.TokEOF) {
			p.failHere("unexpected end of file in %s body", decl.Name)
		}
		decl.Members = append(decl.Members, p.parseMember())
	}
	p.expect(token.TokRbrace, "'}'")
	decl.Pos = p.span(start)
	return decl
}

func (p *parser) atClassModifier() bool {
	for _, m := range classModifiers {
		if p.atKw(m) {
			return true
		}
	}
	return false
}

var memberModifiers = []string{
	"public", "protected", "private", "static", "abstract", "final", "readonly", "var",
}

func (p *parser) parseMember() ast.Member {
	start := p.cur().Span.Start
	attrs := p.parseAttributeGroups()

	if p.atKw("use") {
		return p.parseUseTrait(start)
	}
	if p.atKw("case") {
		return p.parseEnumCase(start, attrs)
	}

	var mods []string
	for p.atMemberModifier() {
		mods = append(mods, p.advance().Text)
	}

	switch {
	case p.atKw("const"):
		return p.parseClassConst(start, attrs, mods)
	case p.atKw("function"):
		return p.parseMethod(start, attrs, mods)
	case p.at(token.TokVariable), p.typeAhead(), p.at(token.TokQuestion):
		return p.parseProperty(start, attrs, mods)
	}
	p.failHere("unexpected %q in class body", p.cur().Text)
	return nil
}

func (p *parser) atMemberModifier() bool {
	// A modifier keyword directly followed by ( is a method named like a
	// modifier, e.g. function static is invalid but final() is not ours
	// to reject here.
	for _, m := range memberModifiers {
		if p.atKw(m) {
			return true
		}
	}
	return false
}

func (p *parser) parseUseTrait(start int) ast.Member {
	p.expectKw("use")
	decl := &ast.UseTraitDecl{Names: []*ast.Name{p.parseName()}}
	for p.accept(token.TokComma) {
		decl.Names = append(decl.Names, p.parseName())
	}
	if p.at(token.TokLbrace) {
		p.failHere("trait adaptation blocks are not supported")
	}
	p.expect(token.TokSemicolon, "';'")
	decl.Pos = p.span(start)
	return decl
}

func (p *parser) parseEnumCase(start int, attrs []*ast.AttributeGroup) ast.Member {
	p.expectKw("case")
	decl := &ast.EnumCaseDecl{Attrs: attrs}
	decl.Name = p.expect(token.TokIdent, "case name").Text
	if p.accept(token.TokEq) {
		decl.Value = p.parseExpr()
	}
	p.expect(token.TokSemicolon, "';'")
	decl.Pos = p.span(start)
	return decl
}

func (p *parser) parseClassConst(start int, attrs []*ast.AttributeGroup, mods []string) ast.Member {
	p.expectKw("const")
	decl := &ast.ClassConstDecl{Attrs: attrs, Modifiers: mods}
	// Typed constant: the type is present when the next token is not
	// immediately followed by =.
	if p.at(token.TokQuestion) ||
		(p.typeAhead() && p.peek(1).Kind != token.TokEq) {
		decl.Type = p.parseTypeHint()
	}
	for {
		cStart := p.cur().Span.Start
		name := p.expect(token.TokIdent, "constant name").Text
		p.expect(token.TokEq, "'='")
		entry := &ast.ConstEntry{Name: name, Value: p.parseExpr()}
		entry.Pos = p.span(cStart)
		decl.Consts = append(decl.Consts, entry)
		if !p.accept(token.TokComma) {
			break
		}
	}
	p.expect(token.TokSemicolon, "';'")
	decl.Pos = p.span(start)
	return decl
}

func (p *parser) parseMethod(start int, attrs []*ast.AttributeGroup, mods []string) ast.Member {
	p.expectKw("function")
	decl := &ast.MethodDecl{Attrs: attrs, Modifiers: mods}
	decl.ByRef = p.accept(token.TokAmp)
	decl.Name = p.expect(token.TokIdent, "method name").Text
	decl.Params = p.parseParams()
	if p.accept(token.TokColon) {
		decl.ReturnType = p.parseTypeHint()
	}
	if p.at(token.TokLbrace) {
		decl.Body = p.parseBlock()
	} else {
		p.expect(token.TokSemicolon, "';'")
	}
	decl.Pos = p.span(start)
	return decl
}

func (p *parser) parseProperty(start int, attrs []*ast.AttributeGroup, mods []string) ast.Member {
	decl := &ast.PropertyDecl{Attrs: attrs, Modifiers: mods}
	if !p.at(token.TokVariable) {
		decl.Type = p.parseTypeHint()
	}
	for {
		pStart := p.cur().Span.Start
		entry := &ast.PropertyEntry{Name: p.expect(token.TokVariable, "property variable").Text}
		if p.accept(token.TokEq) {
			entry.Default = p.parseExpr()
		}
		entry.Pos = p.span(pStart)
		decl.Props = append(decl.Props, entry)
		if !p.accept(token.TokComma) {
			break
		}
	}
	p.expect(token.TokSemicolon, "';'")
	decl.Pos = p.span(start)
	return decl
}
