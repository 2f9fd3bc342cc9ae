// Package token defines the lexical tokens of PHP source code and a
// scanner that produces them together with an out-of-band trivia stream
// (comments and blank-line counts) for format-preserving reprinting.
package token

//go:generate stringer -type=Kind -trimprefix=Tok

// Kind classifies the type of a token in the PHP source.
type Kind uint16

const (
	TokEOF Kind = iota
	TokIllegal

	// Source framing.
	TokInlineHTML // raw content outside <?php ... ?>
	TokOpenTag    // <?php or <?=
	TokCloseTag   // ?>

	// Atoms.
	TokIdent    // names and keywords (echo, class, Foo, array_map)
	TokVariable // $name
	TokInt      // 42, 0xFF, 1_000
	TokFloat    // 4.2, 1e9
	TokString   // 'x' or "x", full lexeme including quotes
	TokHeredoc  // <<<EOT ... EOT, full lexeme; includes nowdoc

	// Punctuation.
	TokLparen
	TokRparen
	TokLbrace
	TokRbrace
	TokLbrack
	TokRbrack
	TokComma
	TokSemicolon
	TokColon
	TokDoubleColon // ::
	TokArrow       // ->
	TokNullsafe    // ?->
	TokDoubleArrow // =>
	TokQuestion
	TokCoalesce // ??
	TokEllipsis // ...
	TokBackslash
	TokAt
	TokDollar
	TokAttributeStart // #[

	// Operators.
	TokEq        // =
	TokEqEq      // ==
	TokIdentical // ===
	TokNot       // !
	TokNotEq     // !=
	TokNotIdentical
	TokLt
	TokGt
	TokLe
	TokGe
	TokSpaceship // <=>
	TokPlus
	TokMinus
	TokStar
	TokPow // **
	TokSlash
	TokPercent
	TokDot // .
	TokAmp
	TokAndAnd // &&
	TokPipe
	TokOrOr // ||
	TokCaret
	TokTilde
	TokShl // <<
	TokShr // >>
	TokInc // ++
	TokDec // --

	// Compound assignment.
	TokPlusEq
	TokMinusEq
	TokStarEq
	TokPowEq
	TokSlashEq
	TokPercentEq
	TokDotEq
	TokAmpEq
	TokPipeEq
	TokCaretEq
	TokShlEq
	TokShrEq
	TokCoalesceEq // ??=
)

// Span is a half-open byte range [Start, End) into the original source.
type Span struct {
	Start int
	End   int
}

// Len returns the length of the span in bytes.
func (s Span) Len() int { return s.End - s.Start }

// IsEmpty returns true if the span has zero length.
func (s Span) IsEmpty() bool { return s.Start == s.End }

// Contains returns true if the given offset falls within the span.
func (s Span) Contains(offset int) bool { return offset >= s.Start && offset < s.End }

// Encloses returns true if other lies entirely within this span.
func (s Span) Encloses(other Span) bool { return s.Start <= other.Start && other.End <= s.End }

// Token is a classified span of the PHP source.
type Token struct {
	Kind Kind
	Text string
	Span Span

	// NewlinesBefore counts line terminators between the previous token or
	// trivia item and this token. Used to preserve intentional blank lines.
	NewlinesBefore int
}

// IsKeyword reports whether the token is an identifier matching the given
// keyword, compared case-insensitively as PHP requires.
func (t Token) IsKeyword(kw string) bool {
	if t.Kind != TokIdent || len(t.Text) != len(kw) {
		return false
	}
	for i := 0; i < len(kw); i++ {
		c := t.Text[i]
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		if c != kw[i] {
			return false
		}
	}
	return true
}

// TriviaKind classifies a trivia item.
type TriviaKind uint8

const (
	// TriviaLineComment is a // comment.
	TriviaLineComment TriviaKind = iota
	// TriviaHashComment is a # comment (but never the #[ attribute opener).
	TriviaHashComment
	// TriviaBlockComment is a /* ... */ comment.
	TriviaBlockComment
	// TriviaDocComment is a /** ... */ comment.
	TriviaDocComment
)

// Trivia is a comment together with enough layout metadata to re-anchor
// it during printing. Trivia never appears in the token stream; the
// scanner collects it out of band in source order.
type Trivia struct {
	Kind TriviaKind
	Text string
	Span Span

	// PrecedingNewlines counts line terminators between the previous token
	// or trivia item and this one. Zero means same line.
	PrecedingNewlines int
}

// SameLine reports whether the comment sits on the same line as the
// source element before it, making it a trailing-comment candidate.
func (tr Trivia) SameLine() bool { return tr.PrecedingNewlines == 0 }

// LineIndex maps byte offsets to 1-based line/column positions.
type LineIndex struct {
	// starts[i] is the byte offset of the first byte of line i+1.
	starts []int
}

// NewLineIndex builds a line index for the given source.
func NewLineIndex(src []byte) *LineIndex {
	starts := []int{0}
	for i, b := range src {
		if b == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &LineIndex{starts: starts}
}

// Position returns the 1-based line and column for a byte offset.
// Columns count bytes, matching how PHP tooling reports positions.
func (ix *LineIndex) Position(offset int) (line, col int) {
	lo, hi := 0, len(ix.starts)-1
	for lo < hi {
		mid := (lo + hi + 1) / 2
		if ix.starts[mid] <= offset {
			lo = mid
		} else {
			hi = mid - 1
		}
	}
	return lo + 1, offset - ix.starts[lo] + 1
}
