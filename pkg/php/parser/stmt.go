package parser

import (
	"github.com/yigitcukuren/phpfmt/pkg/php/ast"
	"github.com/yigitcukuren/phpfmt/pkg/php/token"
)

func (p *parser) parseStmt() ast.Stmt {
	t := p.cur()

	if t.Kind == token.TokAttributeStart {
		attrs := p.parseAttributeGroups()
		return p.parseAttributedDecl(attrs)
	}
	if t.Kind == token.TokLbrace {
		return p.parseBlock()
	}
	if t.Kind != token.TokIdent {
		return p.parseExprStmt()
	}

	switch {
	case t.IsKeyword("if"):
		return p.parseIf()
	case t.IsKeyword("while"):
		return p.parseWhile()
	case t.IsKeyword("do"):
		return p.parseDoWhile()
	case t.IsKeyword("for"):
		return p.parseFor()
	case t.IsKeyword("foreach"):
		return p.parseForeach()
	case t.IsKeyword("switch"):
		return p.parseSwitch()
	case t.IsKeyword("break"):
		return p.parseBreakContinue(true)
	case t.IsKeyword("continue"):
		return p.parseBreakContinue(false)
	case t.IsKeyword("return"):
		return p.parseReturn()
	case t.IsKeyword("echo"):
		return p.parseEcho()
	case t.IsKeyword("throw"):
		return p.parseThrow()
	case t.IsKeyword("try"):
		return p.parseTry()
	case t.IsKeyword("namespace"):
		return p.parseNamespace()
	case t.IsKeyword("use"):
		return p.parseUse()
	case t.IsKeyword("declare"):
		return p.parseDeclare()
	case t.IsKeyword("const"):
		return p.parseConst()
	case t.IsKeyword("function") && p.isFunctionDeclAhead():
		return p.parseFunctionDecl(nil)
	case t.IsKeyword("abstract"), t.IsKeyword("final"),
		t.IsKeyword("class"), t.IsKeyword("interface"),
		t.IsKeyword("trait"), t.IsKeyword("enum"):
		return p.parseClassDecl(nil)
	case t.IsKeyword("readonly") && p.peek(1).IsKeyword("class"):
		return p.parseClassDecl(nil)
	}

	return p.parseExprStmt()
}

// isFunctionDeclAhead distinguishes a named function declaration from a
// closure expression, which shares the function keyword.
func (p *parser) isFunctionDeclAhead() bool {
	next := p.peek(1)
	if next.Kind == token.TokAmp {
		next = p.peek(2)
	}
	return next.Kind == token.TokIdent
}

func (p *parser) parseAttributedDecl(attrs []*ast.AttributeGroup) ast.Stmt {
	t := p.cur()
	switch {
	case t.IsKeyword("function"):
		return p.parseFunctionDecl(attrs)
	case t.IsKeyword("abstract"), t.IsKeyword("final"), t.IsKeyword("readonly"),
		t.IsKeyword("class"), t.IsKeyword("interface"),
		t.IsKeyword("trait"), t.IsKeyword("enum"):
		return p.parseClassDecl(attrs)
	}
	p.failHere("attributes must precede a function or class-like declaration")
	return nil
}

func (p *parser) parseExprStmt() ast.Stmt {
	start := p.cur().Span.Start
	x := p.parseExpr()
	p.terminateStmt()
	return &ast.ExprStmt{X: x, Pos: p.span(start)}
}

func (p *parser) parseBlock() *ast.Block {
	start := p.expect(token.TokLbrace, "'{'").Span.Start
	b := &ast.Block{}
	for !p.at(token.TokRbrace) {
		if p.at(token.TokEOF) {
			p.failHere("unexpected end of file, expected '}'")
		}
		if p.accept(token.TokSemicolon) {
			continue
		}
		b.Stmts = append(b.Stmts, p.parseStmt())
	}
	p.expect(token.TokRbrace, "'}'")
	b.Pos = p.span(start)
	return b
}

// parseBody parses a braced block, or wraps a single unbraced statement
// in a block so the printer always has braces to emit.
func (p *parser) parseBody() *ast.Block {
	if p.at(token.TokLbrace) {
		return p.parseBlock()
	}
	if p.at(token.TokColon) {
		p.failHere("alternative syntax (endif/endwhile/...) is not supported")
	}
	start := p.cur().Span.Start
	s := p.parseStmt()
	return &ast.Block{Stmts: []ast.Stmt{s}, Pos: p.span(start)}
}

func (p *parser) parseParenExpr() ast.Expr {
	p.expect(token.TokLparen, "'('")
	x := p.parseExpr()
	p.expect(token.TokRparen, "')'")
	return x
}

func (p *parser) parseIf() ast.Stmt {
	start := p.expectKw("if").Span.Start
	stmt := &ast.IfStmt{Cond: p.parseParenExpr(), Then: p.parseBody()}
	for {
		if p.atKw("elseif") || (p.atKw("else") && p.peek(1).IsKeyword("if")) {
			cStart := p.advance().Span.Start
			p.acceptKw("if") // the second half of "else if"
			clause := &ast.ElseifClause{Cond: p.parseParenExpr(), Body: p.parseBody()}
			clause.Pos = p.span(cStart)
			stmt.Elseifs = append(stmt.Elseifs, clause)
			continue
		}
		if p.acceptKw("else") {
			stmt.Else = p.parseBody()
		}
		break
	}
	stmt.Pos = p.span(start)
	return stmt
}

func (p *parser) parseWhile() ast.Stmt {
	start := p.expectKw("while").Span.Start
	stmt := &ast.WhileStmt{Cond: p.parseParenExpr(), Body: p.parseBody()}
	stmt.Pos = p.span(start)
	return stmt
}

func (p *parser) parseDoWhile() ast.Stmt {
	start := p.expectKw("do").Span.Start
	body := p.parseBody()
	p.expectKw("while")
	cond := p.parseParenExpr()
	p.terminateStmt()
	return &ast.DoWhileStmt{Body: body, Cond: cond, Pos: p.span(start)}
}

func (p *parser) parseExprList(stop token.Kind) []ast.Expr {
	var list []ast.Expr
	if p.at(stop) {
		return list
	}
	list = append(list, p.parseExpr())
	for p.accept(token.TokComma) {
		list = append(list, p.parseExpr())
	}
	return list
}

func (p *parser) parseFor() ast.Stmt {
	start := p.expectKw("for").Span.Start
	p.expect(token.TokLparen, "'('")
	init := p.parseExprList(token.TokSemicolon)
	p.expect(token.TokSemicolon, "';'")
	cond := p.parseExprList(token.TokSemicolon)
	p.expect(token.TokSemicolon, "';'")
	post := p.parseExprList(token.TokRparen)
	p.expect(token.TokRparen, "')'")
	stmt := &ast.ForStmt{Init: init, Cond: cond, Post: post, Body: p.parseBody()}
	stmt.Pos = p.span(start)
	return stmt
}

func (p *parser) parseForeach() ast.Stmt {
	start := p.expectKw("foreach").Span.Start
	p.expect(token.TokLparen, "'('")
	stmt := &ast.ForeachStmt{Subject: p.parseExpr()}
	p.expectKw("as")
	first := p.parseForeachTarget(&stmt.ByRef)
	if p.accept(token.TokDoubleArrow) {
		stmt.Key = first
		stmt.Value = p.parseForeachTarget(&stmt.ByRef)
	} else {
		stmt.Value = first
	}
	p.expect(token.TokRparen, "')'")
	stmt.Body = p.parseBody()
	stmt.Pos = p.span(start)
	return stmt
}

func (p *parser) parseForeachTarget(byRef *bool) ast.Expr {
	if p.accept(token.TokAmp) {
		*byRef = true
	}
	return p.parseExpr()
}

func (p *parser) parseSwitch() ast.Stmt {
	start := p.expectKw("switch").Span.Start
	stmt := &ast.SwitchStmt{Subject: p.parseParenExpr()}
	p.expect(token.TokLbrace, "'{'")
	for !p.at(token.TokRbrace) {
		cStart := p.cur().Span.Start
		clause := &ast.CaseClause{}
		if p.acceptKw("default") {
			// Cond stays nil.
		} else {
			p.expectKw("case")
			clause.Cond = p.parseExpr()
		}
		if !p.accept(token.TokColon) {
			p.expect(token.TokSemicolon, "':' or ';'")
		}
		for !p.at(token.TokRbrace) && !p.atKw("case") && !p.atKw("default") {
			clause.Stmts = append(clause.Stmts, p.parseStmt())
		}
		clause.Pos = p.span(cStart)
		stmt.Cases = append(stmt.Cases, clause)
	}
	p.expect(token.TokRbrace, "'}'")
	stmt.Pos = p.span(start)
	return stmt
}

func (p *parser) parseBreakContinue(isBreak bool) ast.Stmt {
	start := p.advance().Span.Start
	level := ""
	if p.at(token.TokInt) {
		level = p.advance().Text
	}
	p.terminateStmt()
	if isBreak {
		return &ast.BreakStmt{Level: level, Pos: p.span(start)}
	}
	return &ast.ContinueStmt{Level: level, Pos: p.span(start)}
}

func (p *parser) parseReturn() ast.Stmt {
	start := p.expectKw("return").Span.Start
	stmt := &ast.ReturnStmt{}
	if !p.at(token.TokSemicolon) && !p.at(token.TokCloseTag) && !p.at(token.TokEOF) {
		stmt.X = p.parseExpr()
	}
	p.terminateStmt()
	stmt.Pos = p.span(start)
	return stmt
}

func (p *parser) parseEcho() ast.Stmt {
	start := p.expectKw("echo").Span.Start
	stmt := &ast.EchoStmt{Exprs: []ast.Expr{p.parseExpr()}}
	for p.accept(token.TokComma) {
		stmt.Exprs = append(stmt.Exprs, p.parseExpr())
	}
	p.terminateStmt()
	stmt.Pos = p.span(start)
	return stmt
}

func (p *parser) parseThrow() ast.Stmt {
	start := p.expectKw("throw").Span.Start
	x := p.parseExpr()
	p.terminateStmt()
	return &ast.ThrowStmt{X: x, Pos: p.span(start)}
}

func (p *parser) parseTry() ast.Stmt {
	start := p.expectKw("try").Span.Start
	stmt := &ast.TryStmt{Body: p.parseBlock()}
	for p.atKw("catch") {
		cStart := p.advance().Span.Start
		p.expect(token.TokLparen, "'('")
		clause := &ast.CatchClause{Types: []*ast.Name{p.parseName()}}
		for p.accept(token.TokPipe) {
			clause.Types = append(clause.Types, p.parseName())
		}
		if p.at(token.TokVariable) {
			clause.Var = p.advance().Text
		}
		p.expect(token.TokRparen, "')'")
		clause.Body = p.parseBlock()
		clause.Pos = p.span(cStart)
		stmt.Catches = append(stmt.Catches, clause)
	}
	if p.acceptKw("finally") {
		stmt.Finally = p.parseBlock()
	}
	if len(stmt.Catches) == 0 && stmt.Finally == nil {
		p.failHere("try requires at least one catch or finally")
	}
	stmt.Pos = p.span(start)
	return stmt
}

func (p *parser) parseNamespace() ast.Stmt {
	start := p.expectKw("namespace").Span.Start
	stmt := &ast.NamespaceStmt{}
	if p.at(token.TokIdent) {
		stmt.Name = p.parseName()
	}
	if p.at(token.TokLbrace) {
		p.failHere("braced namespace declarations are not supported")
	}
	p.terminateStmt()
	stmt.Pos = p.span(start)
	return stmt
}

func (p *parser) parseUse() ast.Stmt {
	start := p.expectKw("use").Span.Start
	stmt := &ast.UseStmt{Type: ast.UseClass}
	if p.atKw("function") {
		p.advance()
		stmt.Type = ast.UseFunction
	} else if p.atKw("const") {
		p.advance()
		stmt.Type = ast.UseConst
	}

	first := p.parseName()
	// Group imports carry a trailing backslash before the brace.
	if p.at(token.TokBackslash) && p.peek(1).Kind == token.TokLbrace {
		p.advance()
	}
	if p.at(token.TokLbrace) {
		// Group import: expand entries onto the shared prefix.
		p.advance()
		for {
			eStart := p.cur().Span.Start
			inner := p.parseName()
			entry := &ast.UseEntry{Name: &ast.Name{
				Parts:  append(append([]string{}, first.Parts...), inner.Parts...),
				Rooted: first.Rooted,
				Pos:    token.Span{Start: first.Pos.Start, End: inner.Pos.End},
			}}
			if p.acceptKw("as") {
				entry.Alias = p.expect(token.TokIdent, "alias").Text
			}
			entry.Pos = p.span(eStart)
			stmt.Entries = append(stmt.Entries, entry)
			if !p.accept(token.TokComma) {
				break
			}
			if p.at(token.TokRbrace) {
				break
			}
		}
		p.expect(token.TokRbrace, "'}'")
	} else {
		entry := &ast.UseEntry{Name: first, Pos: first.Pos}
		if p.acceptKw("as") {
			entry.Alias = p.expect(token.TokIdent, "alias").Text
			entry.Pos = p.span(first.Pos.Start)
		}
		stmt.Entries = append(stmt.Entries, entry)
		for p.accept(token.TokComma) {
			eStart := p.cur().Span.Start
			e := &ast.UseEntry{Name: p.parseName()}
			if p.acceptKw("as") {
				e.Alias = p.expect(token.TokIdent, "alias").Text
			}
			e.Pos = p.span(eStart)
			stmt.Entries = append(stmt.Entries, e)
		}
	}
	p.terminateStmt()
	stmt.Pos = p.span(start)
	return stmt
}

func (p *parser) parseConst() ast.Stmt {
	start := p.expectKw("const").Span.Start
	stmt := &ast.ConstStmt{}
	for {
		cStart := p.cur().Span.Start
		name := p.expect(token.TokIdent, "constant name").Text
		p.expect(token.TokEq, "'='")
		entry := &ast.ConstEntry{Name: name, Value: p.parseExpr()}
		entry.Pos = p.span(cStart)
		stmt.Consts = append(stmt.Consts, entry)
		if !p.accept(token.TokComma) {
			break
		}
	}
	p.terminateStmt()
	stmt.Pos = p.span(start)
	return stmt
}

func (p *parser) parseDeclare() ast.Stmt {
	start := p.expectKw("declare").Span.Start
	p.expect(token.TokLparen, "'('")
	stmt := &ast.DeclareStmt{}
	for {
		dStart := p.cur().Span.Start
		name := p.expect(token.TokIdent, "directive name").Text
		p.expect(token.TokEq, "'='")
		d := &ast.DeclareDirective{Name: name, Value: p.parseExpr()}
		d.Pos = p.span(dStart)
		stmt.Directives = append(stmt.Directives, d)
		if !p.accept(token.TokComma) {
			break
		}
	}
	p.expect(token.TokRparen, "')'")
	if p.at(token.TokLbrace) {
		p.failHere("declare blocks are not supported")
	}
	p.terminateStmt()
	stmt.Pos = p.span(start)
	return stmt
}
