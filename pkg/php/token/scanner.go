package token

import (
	"fmt"
	"strings"
)

// Tokenize scans PHP source into a token slice plus an ordered trivia
// stream. Tokens never include comments or whitespace; those survive as
// Trivia items and newline counts on the tokens that follow them.
func Tokenize(src []byte) ([]Token, []Trivia, error) {
	s := &scanner{src: src}
	if err := s.run(); err != nil {
		return nil, nil, err
	}
	return s.tokens, s.trivia, nil
}

type scanner struct {
	src    []byte
	pos    int
	inPHP  bool
	tokens []Token
	trivia []Trivia

	// pendingNewlines counts line terminators seen since the last emitted
	// token or trivia item.
	pendingNewlines int
}

func (s *scanner) run() error {
	for s.pos < len(s.src) {
		if !s.inPHP {
			if err := s.scanInlineHTML(); err != nil {
				return err
			}
			continue
		}
		if err := s.scanPHP(); err != nil {
			return err
		}
	}
	s.emit(TokEOF, s.pos, s.pos)
	return nil
}

// scanInlineHTML consumes raw content up to the next open tag.
func (s *scanner) scanInlineHTML() error {
	start := s.pos
	idx := strings.Index(string(s.src[s.pos:]), "<?")
	if idx < 0 {
		if start < len(s.src) {
			s.emit(TokInlineHTML, start, len(s.src))
		}
		s.pos = len(s.src)
		return nil
	}
	tagStart := s.pos + idx
	if tagStart > start {
		s.emit(TokInlineHTML, start, tagStart)
	}
	end := tagStart + 2
	if hasPrefixFold(s.src[end:], "php") {
		end += 3
	} else if end < len(s.src) && s.src[end] == '=' {
		end++
	}
	s.emit(TokOpenTag, tagStart, end)
	s.pos = end
	s.inPHP = true
	return nil
}

//nolint:gocyclo // direct transcription of the PHP lexical grammar
func (s *scanner) scanPHP() error {
	s.skipWhitespace()
	if s.pos >= len(s.src) {
		return nil
	}

	start := s.pos
	c := s.src[s.pos]

	switch {
	case c == '?' && s.peekIs(1, '>'):
		s.emit(TokCloseTag, start, start+2)
		s.pos = start + 2
		s.inPHP = false
		return nil
	case c == '/' && s.peekIs(1, '/'):
		return s.scanLineComment(start, TriviaLineComment)
	case c == '#' && s.peekIs(1, '['):
		s.emit(TokAttributeStart, start, start+2)
		s.pos = start + 2
		return nil
	case c == '#':
		return s.scanLineComment(start, TriviaHashComment)
	case c == '/' && s.peekIs(1, '*'):
		return s.scanBlockComment(start)
	case c == '$' && s.isNameStart(s.pos+1):
		s.pos++
		s.scanName()
		s.emit(TokVariable, start, s.pos)
		return nil
	case c == '$':
		s.emit(TokDollar, start, start+1)
		s.pos++
		return nil
	case s.isNameStartByte(c):
		s.scanName()
		s.emit(TokIdent, start, s.pos)
		return nil
	case c >= '0' && c <= '9', c == '.' && s.digitAt(s.pos+1):
		return s.scanNumber(start)
	case c == '\'' || c == '"':
		return s.scanString(start, c)
	case c == '<' && s.peekIs(1, '<') && s.peekIs(2, '<'):
		return s.scanHeredoc(start)
	}

	return s.scanOperator(start)
}

func (s *scanner) scanLineComment(start int, kind TriviaKind) error {
	for s.pos < len(s.src) && s.src[s.pos] != '\n' {
		s.pos++
	}
	end := s.pos
	// Exclude a trailing \r from the comment text.
	if end > start && s.src[end-1] == '\r' {
		end--
	}
	text := string(s.src[start:end])
	// A // comment closing the PHP block ("// comment ?>") is not split
	// here; the supported subset treats ?> inside comments as comment text.
	s.emitTrivia(kind, text, start, end)
	return nil
}

func (s *scanner) scanBlockComment(start int) error {
	kind := TriviaBlockComment
	if hasPrefixFold(s.src[start:], "/**") && !hasPrefixFold(s.src[start:], "/**/") {
		kind = TriviaDocComment
	}
	idx := strings.Index(string(s.src[start+2:]), "*/")
	if idx < 0 {
		return s.errorAt(start, "unterminated block comment")
	}
	end := start + 2 + idx + 2
	s.emitTrivia(kind, string(s.src[start:end]), start, end)
	return nil
}

func (s *scanner) scanString(start int, quote byte) error {
	s.pos++
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if c == '\\' {
			s.pos += 2
			continue
		}
		if c == quote {
			s.pos++
			s.emit(TokString, start, s.pos)
			return nil
		}
		s.pos++
	}
	return s.errorAt(start, "unterminated string literal")
}

func (s *scanner) scanHeredoc(start int) error {
	p := start + 3
	for p < len(s.src) && (s.src[p] == ' ' || s.src[p] == '\t') {
		p++
	}
	var quote byte
	if p < len(s.src) && (s.src[p] == '\'' || s.src[p] == '"') {
		quote = s.src[p]
		p++
	}
	labelStart := p
	for p < len(s.src) && s.isNameByte(s.src[p]) {
		p++
	}
	if p == labelStart {
		return s.errorAt(start, "malformed heredoc opener")
	}
	label := string(s.src[labelStart:p])
	if quote != 0 {
		if p >= len(s.src) || s.src[p] != quote {
			return s.errorAt(start, "malformed heredoc opener")
		}
		p++
	}

	// Find the closing label at the start of a line (leading whitespace
	// allowed since PHP 7.3), not followed by a label character.
	for p < len(s.src) {
		nl := strings.IndexByte(string(s.src[p:]), '\n')
		if nl < 0 {
			return s.errorAt(start, "unterminated heredoc %q", label)
		}
		lineStart := p + nl + 1
		q := lineStart
		for q < len(s.src) && (s.src[q] == ' ' || s.src[q] == '\t') {
			q++
		}
		if strings.HasPrefix(string(s.src[q:]), label) {
			after := q + len(label)
			if after >= len(s.src) || !s.isNameByte(s.src[after]) {
				s.emit(TokHeredoc, start, after)
				s.pos = after
				return nil
			}
		}
		p = lineStart
	}
	return s.errorAt(start, "unterminated heredoc %q", label)
}

func (s *scanner) scanNumber(start int) error {
	isFloat := false
	if s.src[s.pos] == '0' && s.pos+1 < len(s.src) &&
		(s.src[s.pos+1] == 'x' || s.src[s.pos+1] == 'X' ||
			s.src[s.pos+1] == 'b' || s.src[s.pos+1] == 'B' ||
			s.src[s.pos+1] == 'o' || s.src[s.pos+1] == 'O') {
		s.pos += 2
		for s.pos < len(s.src) && (isHexDigit(s.src[s.pos]) || s.src[s.pos] == '_') {
			s.pos++
		}
		s.emit(TokInt, start, s.pos)
		return nil
	}
	for s.pos < len(s.src) && (s.digitAt(s.pos) || s.src[s.pos] == '_') {
		s.pos++
	}
	if s.pos < len(s.src) && s.src[s.pos] == '.' && s.digitAt(s.pos+1) {
		isFloat = true
		s.pos++
		for s.pos < len(s.src) && (s.digitAt(s.pos) || s.src[s.pos] == '_') {
			s.pos++
		}
	}
	if s.pos < len(s.src) && (s.src[s.pos] == 'e' || s.src[s.pos] == 'E') {
		q := s.pos + 1
		if q < len(s.src) && (s.src[q] == '+' || s.src[q] == '-') {
			q++
		}
		if q < len(s.src) && s.digitAt(q) {
			isFloat = true
			s.pos = q
			for s.pos < len(s.src) && s.digitAt(s.pos) {
				s.pos++
			}
		}
	}
	if isFloat {
		s.emit(TokFloat, start, s.pos)
	} else {
		s.emit(TokInt, start, s.pos)
	}
	return nil
}

// operators, longest match first
var operators = []struct {
	text string
	kind Kind
}{
	{"<=>", TokSpaceship},
	{"===", TokIdentical},
	{"!==", TokNotIdentical},
	{"**=", TokPowEq},
	{"<<=", TokShlEq},
	{">>=", TokShrEq},
	{"??=", TokCoalesceEq},
	{"...", TokEllipsis},
	{"?->", TokNullsafe},
	{"==", TokEqEq},
	{"!=", TokNotEq},
	{"<=", TokLe},
	{">=", TokGe},
	{"&&", TokAndAnd},
	{"||", TokOrOr},
	{"<<", TokShl},
	{">>", TokShr},
	{"++", TokInc},
	{"--", TokDec},
	{"+=", TokPlusEq},
	{"-=", TokMinusEq},
	{"*=", TokStarEq},
	{"/=", TokSlashEq},
	{"%=", TokPercentEq},
	{".=", TokDotEq},
	{"&=", TokAmpEq},
	{"|=", TokPipeEq},
	{"^=", TokCaretEq},
	{"**", TokPow},
	{"??", TokCoalesce},
	{"::", TokDoubleColon},
	{"->", TokArrow},
	{"=>", TokDoubleArrow},
	{"(", TokLparen},
	{")", TokRparen},
	{"{", TokLbrace},
	{"}", TokRbrace},
	{"[", TokLbrack},
	{"]", TokRbrack},
	{",", TokComma},
	{";", TokSemicolon},
	{":", TokColon},
	{"?", TokQuestion},
	{"\\", TokBackslash},
	{"@", TokAt},
	{"=", TokEq},
	{"!", TokNot},
	{"<", TokLt},
	{">", TokGt},
	{"+", TokPlus},
	{"-", TokMinus},
	{"*", TokStar},
	{"/", TokSlash},
	{"%", TokPercent},
	{".", TokDot},
	{"&", TokAmp},
	{"|", TokPipe},
	{"^", TokCaret},
	{"~", TokTilde},
}

func (s *scanner) scanOperator(start int) error {
	rest := s.src[start:]
	for _, op := range operators {
		if len(rest) >= len(op.text) && string(rest[:len(op.text)]) == op.text {
			s.emit(op.kind, start, start+len(op.text))
			s.pos = start + len(op.text)
			return nil
		}
	}
	return s.errorAt(start, "unexpected character %q", rune(s.src[start]))
}

func (s *scanner) skipWhitespace() {
	for s.pos < len(s.src) {
		switch s.src[s.pos] {
		case ' ', '\t', '\r':
			s.pos++
		case '\n':
			s.pendingNewlines++
			s.pos++
		default:
			return
		}
	}
}

func (s *scanner) emit(kind Kind, start, end int) {
	s.tokens = append(s.tokens, Token{
		Kind:           kind,
		Text:           string(s.src[start:end]),
		Span:           Span{Start: start, End: end},
		NewlinesBefore: s.pendingNewlines,
	})
	s.pendingNewlines = 0
	if end > s.pos {
		s.pos = end
	}
}

func (s *scanner) emitTrivia(kind TriviaKind, text string, start, end int) {
	s.trivia = append(s.trivia, Trivia{
		Kind:              kind,
		Text:              text,
		Span:              Span{Start: start, End: end},
		PrecedingNewlines: s.pendingNewlines,
	})
	s.pendingNewlines = 0
	if end > s.pos {
		s.pos = end
	}
}

func (s *scanner) errorAt(offset int, format string, args ...any) error {
	line, col := NewLineIndex(s.src).Position(offset)
	return fmt.Errorf("%d:%d: %s", line, col, fmt.Sprintf(format, args...))
}

func (s *scanner) peekIs(ahead int, c byte) bool {
	return s.pos+ahead < len(s.src) && s.src[s.pos+ahead] == c
}

func (s *scanner) digitAt(i int) bool {
	return i < len(s.src) && s.src[i] >= '0' && s.src[i] <= '9'
}

func (s *scanner) isNameStart(i int) bool {
	return i < len(s.src) && s.isNameStartByte(s.src[i])
}

func (s *scanner) isNameStartByte(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func (s *scanner) isNameByte(c byte) bool {
	return s.isNameStartByte(c) || (c >= '0' && c <= '9')
}

func (s *scanner) scanName() {
	for s.pos < len(s.src) && s.isNameByte(s.src[s.pos]) {
		s.pos++
	}
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hasPrefixFold(b []byte, prefix string) bool {
	if len(b) < len(prefix) {
		return false
	}
	for i := 0; i < len(prefix); i++ {
		c := b[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != prefix[i] {
			return false
		}
	}
	return true
}
