// Package parser builds syntax trees from PHP source for the supported
// subset of the language. Parsing is a single recursive descent pass
// over the token stream; comments never reach the parser and are
// returned as an ordered trivia stream for the printer to re-anchor.
package parser

import (
	"fmt"

	"github.com/yigitcukuren/phpfmt/pkg/php/ast"
	"github.com/yigitcukuren/phpfmt/pkg/php/token"
)

// Error is a positioned parse error.
type Error struct {
	Line int
	Col  int
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Col, e.Msg)
}

// Parse scans and parses src, returning the program together with the
// source-ordered trivia stream. On failure the returned error carries a
// 1-based line and column.
func Parse(src []byte) (*ast.Program, []token.Trivia, error) {
	tokens, trivia, err := token.Tokenize(src)
	if err != nil {
		return nil, nil, err
	}
	p := &parser{
		tokens: tokens,
		lines:  token.NewLineIndex(src),
	}
	prog, err := p.parseProgram()
	if err != nil {
		return nil, nil, err
	}
	return prog, trivia, nil
}

type parser struct {
	tokens []token.Token
	pos    int
	lines  *token.LineIndex
}

type parseBailout struct{ err *Error }

// fail aborts the parse via panic; parseProgram recovers it. Descent
// code stays free of error plumbing on every call.
func (p *parser) fail(at token.Token, format string, args ...any) {
	line, col := p.lines.Position(at.Span.Start)
	panic(parseBailout{&Error{Line: line, Col: col, Msg: fmt.Sprintf(format, args...)}})
}

func (p *parser) failHere(format string, args ...any) {
	p.fail(p.cur(), format, args...)
}

func (p *parser) cur() token.Token { return p.tokens[p.pos] }

func (p *parser) peek(ahead int) token.Token {
	i := p.pos + ahead
	if i >= len(p.tokens) {
		return p.tokens[len(p.tokens)-1]
	}
	return p.tokens[i]
}

func (p *parser) at(k token.Kind) bool { return p.cur().Kind == k }

func (p *parser) atKw(kw string) bool { return p.cur().IsKeyword(kw) }

func (p *parser) advance() token.Token {
	t := p.cur()
	if p.pos < len(p.tokens)-1 {
		p.pos++
	}
	return t
}

func (p *parser) expect(k token.Kind, what string) token.Token {
	if !p.at(k) {
		p.failHere("expected %s, found %q", what, p.cur().Text)
	}
	return p.advance()
}

func (p *parser) expectKw(kw string) token.Token {
	if !p.atKw(kw) {
		p.failHere("expected %q, found %q", kw, p.cur().Text)
	}
	return p.advance()
}

// accept consumes the current token when it matches.
func (p *parser) accept(k token.Kind) bool {
	if p.at(k) {
		p.advance()
		return true
	}
	return false
}

func (p *parser) acceptKw(kw string) bool {
	if p.atKw(kw) {
		p.advance()
		return true
	}
	return false
}

// prevEnd is the byte offset just past the last consumed token, used to
// close node spans.
func (p *parser) prevEnd() int {
	if p.pos == 0 {
		return 0
	}
	return p.tokens[p.pos-1].Span.End
}

func (p *parser) span(start int) token.Span {
	return token.Span{Start: start, End: p.prevEnd()}
}

func (p *parser) parseProgram() (prog *ast.Program, err error) {
	defer func() {
		if r := recover(); r != nil {
			bail, ok := r.(parseBailout)
			if !ok {
				panic(r)
			}
			prog, err = nil, bail.err
		}
	}()

	prog = &ast.Program{}
	if p.at(token.TokInlineHTML) {
		prog.LeadingHTML = p.advance().Text
	}
	if p.at(token.TokEOF) {
		prog.Pos = p.span(0)
		return prog, nil
	}
	p.expect(token.TokOpenTag, "opening tag")

	for !p.at(token.TokEOF) {
		switch {
		case p.at(token.TokCloseTag):
			p.advance()
			if p.at(token.TokInlineHTML) {
				t := p.advance()
				prog.Stmts = append(prog.Stmts, &ast.InlineHTMLStmt{Text: t.Text, Pos: t.Span})
			}
			if !p.at(token.TokEOF) {
				p.expect(token.TokOpenTag, "opening tag")
			}
		case p.at(token.TokSemicolon):
			// Empty statement.
			p.advance()
		default:
			prog.Stmts = append(prog.Stmts, p.parseStmt())
		}
	}
	prog.Pos = p.span(0)
	return prog, nil
}

// terminateStmt consumes the statement terminator. A close tag or end
// of file terminates a statement without an explicit semicolon.
func (p *parser) terminateStmt() {
	if p.at(token.TokCloseTag) || p.at(token.TokEOF) {
		return
	}
	p.expect(token.TokSemicolon, "';'")
}
