package parser

import (
	"github.com/yigitcukuren/phpfmt/pkg/php/ast"
	"github.com/yigitcukuren/phpfmt/pkg/php/token"
)

// parseExpr parses a full expression, including the low-precedence
// keyword operators or, xor, and.
func (p *parser) parseExpr() ast.Expr {
	return p.parseKeywordLogical(0)
}

var keywordOps = []string{"or", "xor", "and"}

func (p *parser) parseKeywordLogical(level int) ast.Expr {
	if level >= len(keywordOps) {
		return p.parseAssignExpr()
	}
	lhs := p.parseKeywordLogical(level + 1)
	for p.atKw(keywordOps[level]) {
		op := p.advance().Text
		rhs := p.parseKeywordLogical(level + 1)
		lhs = &ast.Binary{Op: op, Left: lhs, Right: rhs,
			Pos: token.Span{Start: lhs.Span().Start, End: rhs.Span().End}}
	}
	return lhs
}

var assignOps = map[token.Kind]string{
	token.TokEq:         "=",
	token.TokPlusEq:     "+=",
	token.TokMinusEq:    "-=",
	token.TokStarEq:     "*=",
	token.TokPowEq:      "**=",
	token.TokSlashEq:    "/=",
	token.TokPercentEq:  "%=",
	token.TokDotEq:      ".=",
	token.TokAmpEq:      "&=",
	token.TokPipeEq:     "|=",
	token.TokCaretEq:    "^=",
	token.TokShlEq:      "<<=",
	token.TokShrEq:      ">>=",
	token.TokCoalesceEq: "??=",
}

func (p *parser) parseAssignExpr() ast.Expr {
	lhs := p.parseTernary()
	op, ok := assignOps[p.cur().Kind]
	if !ok {
		return lhs
	}
	p.advance()
	rhs := p.parseAssignExpr()
	return &ast.Assign{Op: op, Target: lhs, Value: rhs,
		Pos: token.Span{Start: lhs.Span().Start, End: rhs.Span().End}}
}

func (p *parser) parseTernary() ast.Expr {
	cond := p.parseBinaryExpr(0)
	if !p.at(token.TokQuestion) {
		return cond
	}
	p.advance()
	t := &ast.Ternary{Cond: cond}
	if !p.at(token.TokColon) {
		t.Then = p.parseExpr()
	}
	p.expect(token.TokColon, "':'")
	t.Else = p.parseAssignExpr()
	t.Pos = token.Span{Start: cond.Span().Start, End: t.Else.Span().End}
	return t
}

type binOp struct {
	prec       int
	rightAssoc bool
}

// binaryOps maps operator tokens to their precedence, lowest first.
// Concatenation binds below shifts and arithmetic, per the PHP 8 table.
var binaryOps = map[token.Kind]binOp{
	token.TokCoalesce:     {1, true},
	token.TokOrOr:         {2, false},
	token.TokAndAnd:       {3, false},
	token.TokPipe:         {4, false},
	token.TokCaret:        {5, false},
	token.TokAmp:          {6, false},
	token.TokEqEq:         {7, false},
	token.TokNotEq:        {7, false},
	token.TokIdentical:    {7, false},
	token.TokNotIdentical: {7, false},
	token.TokLt:           {8, false},
	token.TokLe:           {8, false},
	token.TokGt:           {8, false},
	token.TokGe:           {8, false},
	token.TokSpaceship:    {8, false},
	token.TokDot:          {9, false},
	token.TokShl:          {10, false},
	token.TokShr:          {10, false},
	token.TokPlus:         {11, false},
	token.TokMinus:        {11, false},
	token.TokStar:         {12, false},
	token.TokSlash:        {12, false},
	token.TokPercent:      {12, false},
	token.TokPow:          {14, true},
}

func (p *parser) binaryOpAt() (binOp, string, bool) {
	if op, ok := binaryOps[p.cur().Kind]; ok {
		return op, p.cur().Text, true
	}
	if p.atKw("instanceof") {
		return binOp{prec: 13}, p.cur().Text, true
	}
	return binOp{}, "", false
}

func (p *parser) parseBinaryExpr(minPrec int) ast.Expr {
	lhs := p.parseUnary()
	for {
		op, text, ok := p.binaryOpAt()
		if !ok || op.prec < minPrec {
			return lhs
		}
		p.advance()
		next := op.prec + 1
		if op.rightAssoc {
			next = op.prec
		}
		rhs := p.parseBinaryExpr(next)
		lhs = &ast.Binary{Op: text, Left: lhs, Right: rhs,
			Pos: token.Span{Start: lhs.Span().Start, End: rhs.Span().End}}
	}
}

var castTypes = map[string]bool{
	"int": true, "integer": true, "bool": true, "boolean": true,
	"float": true, "double": true, "real": true, "string": true,
	"array": true, "object": true, "unset": true, "binary": true,
}

func (p *parser) prefixUnary(op string) ast.Expr {
	start := p.advance().Span.Start
	operand := p.parseUnary()
	return &ast.Unary{Op: op, Operand: operand,
		Pos: token.Span{Start: start, End: operand.Span().End}}
}

func (p *parser) parseUnary() ast.Expr {
	t := p.cur()
	switch t.Kind {
	case token.TokNot:
		return p.prefixUnary("!")
	case token.TokTilde:
		return p.prefixUnary("~")
	case token.TokMinus:
		return p.prefixUnary("-")
	case token.TokPlus:
		return p.prefixUnary("+")
	case token.TokAt:
		return p.prefixUnary("@")
	case token.TokAmp:
		return p.prefixUnary("&")
	case token.TokInc:
		return p.prefixUnary("++")
	case token.TokDec:
		return p.prefixUnary("--")
	case token.TokLparen:
		// A cast is ( typename ) with nothing else inside the parens.
		if p.peek(1).Kind == token.TokIdent && p.peek(2).Kind == token.TokRparen {
			name := p.peek(1).Text
			if castTypes[lowerASCII(name)] {
				start := t.Span.Start
				p.advance()
				p.advance()
				p.advance()
				operand := p.parseUnary()
				return &ast.Cast{Type: name, Operand: operand,
					Pos: token.Span{Start: start, End: operand.Span().End}}
			}
		}
	case token.TokIdent:
		switch {
		case t.IsKeyword("new"):
			return p.parseNew()
		case t.IsKeyword("clone"):
			return p.prefixUnary("clone")
		case t.IsKeyword("print"):
			start := p.advance().Span.Start
			operand := p.parseAssignExpr()
			return &ast.Unary{Op: "print", Operand: operand,
				Pos: token.Span{Start: start, End: operand.Span().End}}
		case t.IsKeyword("throw"):
			start := p.advance().Span.Start
			operand := p.parseAssignExpr()
			return &ast.Unary{Op: "throw", Operand: operand,
				Pos: token.Span{Start: start, End: operand.Span().End}}
		}
	}
	return p.parsePostfix(p.parsePrimary())
}

func (p *parser) parsePostfix(x ast.Expr) ast.Expr {
	for {
		switch p.cur().Kind {
		case token.TokArrow, token.TokNullsafe:
			nullsafe := p.cur().Kind == token.TokNullsafe
			p.advance()
			name := p.parseMemberName()
			if p.at(token.TokLparen) {
				x = &ast.MethodCall{Receiver: x, Nullsafe: nullsafe, Name: name,
					Args: p.parseArgs(),
					Pos:  token.Span{Start: x.Span().Start, End: p.prevEnd()}}
			} else {
				x = &ast.PropertyFetch{Receiver: x, Nullsafe: nullsafe, Name: name,
					Pos: token.Span{Start: x.Span().Start, End: p.prevEnd()}}
			}
		case token.TokDoubleColon:
			p.advance()
			switch {
			case p.at(token.TokVariable):
				name := p.advance().Text
				x = &ast.StaticPropertyFetch{Class: x, Name: name,
					Pos: token.Span{Start: x.Span().Start, End: p.prevEnd()}}
			case p.at(token.TokIdent):
				name := p.advance().Text
				if p.at(token.TokLparen) {
					x = &ast.StaticCall{Class: x, Name: name, Args: p.parseArgs(),
						Pos: token.Span{Start: x.Span().Start, End: p.prevEnd()}}
				} else {
					x = &ast.ClassConstFetch{Class: x, Name: name,
						Pos: token.Span{Start: x.Span().Start, End: p.prevEnd()}}
				}
			default:
				p.failHere("expected member name after '::'")
			}
		case token.TokLparen:
			x = &ast.Call{Fun: x, Args: p.parseArgs(),
				Pos: token.Span{Start: x.Span().Start, End: p.prevEnd()}}
		case token.TokLbrack:
			p.advance()
			idx := &ast.Index{Target: x}
			if !p.at(token.TokRbrack) {
				idx.Dim = p.parseExpr()
			}
			p.expect(token.TokRbrack, "']'")
			idx.Pos = token.Span{Start: x.Span().Start, End: p.prevEnd()}
			x = idx
		case token.TokInc, token.TokDec:
			op := p.advance().Text
			return &ast.Unary{Op: op, Operand: x, Postfix: true,
				Pos: token.Span{Start: x.Span().Start, End: p.prevEnd()}}
		default:
			return x
		}
	}
}

// parseMemberName parses the name after -> or ?->. Keywords are valid
// member names, as are dynamic $name members.
func (p *parser) parseMemberName() string {
	switch p.cur().Kind {
	case token.TokIdent, token.TokVariable:
		return p.advance().Text
	}
	p.failHere("expected member name, found %q", p.cur().Text)
	return ""
}

func (p *parser) parseArgs() []*ast.Arg {
	p.expect(token.TokLparen, "'('")
	var args []*ast.Arg
	for !p.at(token.TokRparen) {
		start := p.cur().Span.Start
		arg := &ast.Arg{}
		if p.at(token.TokIdent) && p.peek(1).Kind == token.TokColon {
			arg.Name = p.advance().Text
			p.advance()
		}
		if p.accept(token.TokEllipsis) {
			arg.Spread = true
		}
		arg.Value = p.parseExpr()
		arg.Pos = p.span(start)
		args = append(args, arg)
		if !p.accept(token.TokComma) {
			break
		}
	}
	p.expect(token.TokRparen, "')'")
	return args
}

func (p *parser) parsePrimary() ast.Expr {
	t := p.cur()
	switch t.Kind {
	case token.TokVariable:
		p.advance()
		return &ast.Variable{Name: t.Text, Pos: t.Span}
	case token.TokInt:
		p.advance()
		return &ast.IntLit{Text: t.Text, Pos: t.Span}
	case token.TokFloat:
		p.advance()
		return &ast.FloatLit{Text: t.Text, Pos: t.Span}
	case token.TokString:
		p.advance()
		return &ast.StringLit{Text: t.Text, Pos: t.Span}
	case token.TokHeredoc:
		p.advance()
		return &ast.HeredocLit{Text: t.Text, Pos: t.Span}
	case token.TokLparen:
		start := p.advance().Span.Start
		inner := p.parseExpr()
		p.expect(token.TokRparen, "')'")
		return &ast.Paren{Inner: inner, Pos: p.span(start)}
	case token.TokLbrack:
		return p.parseArrayLit(false)
	case token.TokBackslash:
		return p.parseName()
	case token.TokDollar:
		p.failHere("variable variables are not supported")
	case token.TokIdent:
		switch {
		case t.IsKeyword("array") && p.peek(1).Kind == token.TokLparen:
			return p.parseArrayLit(true)
		case t.IsKeyword("function"):
			return p.parseClosure(false)
		case t.IsKeyword("fn"):
			return p.parseArrowFn(false, t.Span.Start)
		case t.IsKeyword("static") && p.peek(1).IsKeyword("function"):
			start := p.advance().Span.Start
			c := p.parseClosure(true)
			c.Pos.Start = start
			return c
		case t.IsKeyword("static") && p.peek(1).IsKeyword("fn"):
			start := p.advance().Span.Start
			return p.parseArrowFn(true, start)
		case t.IsKeyword("match") && p.peek(1).Kind == token.TokLparen:
			return p.parseMatch()
		}
		return p.parseName()
	}
	p.failHere("unexpected token %q in expression", t.Text)
	return nil
}

func (p *parser) parseName() *ast.Name {
	start := p.cur().Span.Start
	n := &ast.Name{}
	if p.accept(token.TokBackslash) {
		n.Rooted = true
	}
	n.Parts = append(n.Parts, p.expect(token.TokIdent, "name").Text)
	for p.at(token.TokBackslash) && p.peek(1).Kind == token.TokIdent {
		p.advance()
		n.Parts = append(n.Parts, p.advance().Text)
	}
	n.Pos = p.span(start)
	return n
}

func (p *parser) parseNew() ast.Expr {
	start := p.expectKw("new").Span.Start
	if p.atKw("class") {
		p.failHere("anonymous classes are not supported")
	}
	n := &ast.New{}
	switch p.cur().Kind {
	case token.TokVariable:
		t := p.advance()
		n.Class = &ast.Variable{Name: t.Text, Pos: t.Span}
	case token.TokLparen:
		pStart := p.advance().Span.Start
		inner := p.parseExpr()
		p.expect(token.TokRparen, "')'")
		n.Class = &ast.Paren{Inner: inner, Pos: p.span(pStart)}
	default:
		n.Class = p.parseName()
	}
	if p.at(token.TokLparen) {
		n.HasParens = true
		n.Args = p.parseArgs()
	}
	n.Pos = p.span(start)
	return n
}

func (p *parser) parseArrayLit(long bool) ast.Expr {
	start := p.cur().Span.Start
	var close token.Kind
	if long {
		p.advance() // array
		p.expect(token.TokLparen, "'('")
		close = token.TokRparen
	} else {
		p.expect(token.TokLbrack, "'['")
		close = token.TokRbrack
	}

	lit := &ast.ArrayLit{Long: long}
	for !p.at(close) {
		eStart := p.cur().Span.Start
		entry := &ast.ArrayEntry{}
		if p.accept(token.TokEllipsis) {
			entry.Spread = true
		}
		if p.accept(token.TokAmp) {
			entry.ByRef = true
		}
		first := p.parseExpr()
		if p.accept(token.TokDoubleArrow) {
			entry.Key = first
			if p.accept(token.TokAmp) {
				entry.ByRef = true
			}
			entry.Value = p.parseExpr()
		} else {
			entry.Value = first
		}
		entry.Pos = p.span(eStart)
		lit.Entries = append(lit.Entries, entry)
		if !p.accept(token.TokComma) {
			break
		}
	}
	if long {
		p.expect(token.TokRparen, "')'")
	} else {
		p.expect(token.TokRbrack, "']'")
	}
	lit.Pos = p.span(start)
	return lit
}

func (p *parser) parseClosure(static bool) *ast.Closure {
	start := p.expectKw("function").Span.Start
	c := &ast.Closure{Static: static}
	c.ByRef = p.accept(token.TokAmp)
	c.Params = p.parseParams()
	if p.acceptKw("use") {
		p.expect(token.TokLparen, "'('")
		for !p.at(token.TokRparen) {
			uStart := p.cur().Span.Start
			u := &ast.ClosureUse{ByRef: p.accept(token.TokAmp)}
			u.Name = p.expect(token.TokVariable, "variable").Text
			u.Pos = p.span(uStart)
			c.Uses = append(c.Uses, u)
			if !p.accept(token.TokComma) {
				break
			}
		}
		p.expect(token.TokRparen, "')'")
	}
	if p.accept(token.TokColon) {
		c.ReturnType = p.parseTypeHint()
	}
	c.Body = p.parseBlock()
	c.Pos = p.span(start)
	return c
}

func (p *parser) parseArrowFn(static bool, start int) ast.Expr {
	p.expectKw("fn")
	if p.at(token.TokAmp) {
		p.failHere("by-reference arrow functions are not supported")
	}
	fn := &ast.ArrowFn{Static: static}
	fn.Params = p.parseParams()
	if p.accept(token.TokColon) {
		fn.ReturnType = p.parseTypeHint()
	}
	p.expect(token.TokDoubleArrow, "'=>'")
	fn.Body = p.parseExpr()
	fn.Pos = p.span(start)
	return fn
}

func (p *parser) parseMatch() ast.Expr {
	start := p.expectKw("match").Span.Start
	m := &ast.Match{Cond: p.parseParenExpr()}
	p.expect(token.TokLbrace, "'{'")
	for !p.at(token.TokRbrace) {
		aStart := p.cur().Span.Start
		arm := &ast.MatchArm{}
		if p.acceptKw("default") {
			// Conds stays nil.
		} else {
			arm.Conds = append(arm.Conds, p.parseExpr())
			for p.accept(token.TokComma) {
				if p.at(token.TokDoubleArrow) {
					break
				}
				arm.Conds = append(arm.Conds, p.parseExpr())
			}
		}
		p.expect(token.TokDoubleArrow, "'=>'")
		arm.Body = p.parseExpr()
		arm.Pos = p.span(aStart)
		m.Arms = append(m.Arms, arm)
		if !p.accept(token.TokComma) {
			break
		}
	}
	p.expect(token.TokRbrace, "'}'")
	m.Pos = p.span(start)
	return m
}

func lowerASCII(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			b[i] = c + 'a' - 'A'
		}
	}
	return string(b)
}
