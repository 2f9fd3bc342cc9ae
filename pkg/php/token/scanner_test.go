package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(tokens []Token) []Kind {
	out := make([]Kind, 0, len(tokens))
	for _, t := range tokens {
		out = append(out, t.Kind)
	}
	return out
}

func TestTokenizeBasicStatement(t *testing.T) {
	tokens, trivia, err := Tokenize([]byte("<?php\n$x = 1 + 2;\n"))
	require.NoError(t, err)
	assert.Empty(t, trivia)
	assert.Equal(t, []Kind{
		TokOpenTag, TokVariable, TokEq, TokInt, TokPlus, TokInt, TokSemicolon, TokEOF,
	}, kinds(tokens))
	assert.Equal(t, "$x", tokens[1].Text)
	assert.Equal(t, 1, tokens[1].NewlinesBefore)
}

func TestTokenizeOperators(t *testing.T) {
	tests := []struct {
		src  string
		want Kind
	}{
		{"<=>", TokSpaceship},
		{"===", TokIdentical},
		{"!==", TokNotIdentical},
		{"??=", TokCoalesceEq},
		{"?->", TokNullsafe},
		{"??", TokCoalesce},
		{"::", TokDoubleColon},
		{"->", TokArrow},
		{"=>", TokDoubleArrow},
		{"**", TokPow},
		{".=", TokDotEq},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tokens, _, err := Tokenize([]byte("<?php " + tt.src))
			require.NoError(t, err)
			require.Len(t, tokens, 3)
			assert.Equal(t, tt.want, tokens[1].Kind)
		})
	}
}

func TestTokenizeComments(t *testing.T) {
	src := `<?php
// a line comment
# a hash comment
/* block */
/** doc */
$x = 1;
`
	tokens, trivia, err := Tokenize([]byte(src))
	require.NoError(t, err)
	require.Len(t, trivia, 4)
	assert.Equal(t, TriviaLineComment, trivia[0].Kind)
	assert.Equal(t, "// a line comment", trivia[0].Text)
	assert.Equal(t, TriviaHashComment, trivia[1].Kind)
	assert.Equal(t, TriviaBlockComment, trivia[2].Kind)
	assert.Equal(t, TriviaDocComment, trivia[3].Kind)
	assert.Equal(t, TokVariable, tokens[1].Kind)
}

func TestTokenizeTrailingCommentSameLine(t *testing.T) {
	tokens, trivia, err := Tokenize([]byte("<?php\n$x = 1; // trailing\n$y = 2;\n"))
	require.NoError(t, err)
	require.Len(t, trivia, 1)
	assert.True(t, trivia[0].SameLine())
	// $y starts a fresh line after the comment.
	assert.Equal(t, TokVariable, tokens[5].Kind)
	assert.Equal(t, 1, tokens[5].NewlinesBefore)
}

func TestTokenizeAttributeStartIsNotComment(t *testing.T) {
	tokens, trivia, err := Tokenize([]byte("<?php #[Foo] # real comment"))
	require.NoError(t, err)
	assert.Len(t, trivia, 1)
	assert.Equal(t, []Kind{
		TokOpenTag, TokAttributeStart, TokIdent, TokRbrack, TokEOF,
	}, kinds(tokens))
}

func TestTokenizeStrings(t *testing.T) {
	tokens, _, err := Tokenize([]byte(`<?php 'a\'b' "c\"d{$e}"`))
	require.NoError(t, err)
	require.Len(t, tokens, 4)
	assert.Equal(t, `'a\'b'`, tokens[1].Text)
	assert.Equal(t, `"c\"d{$e}"`, tokens[2].Text)
}

func TestTokenizeUnterminatedString(t *testing.T) {
	_, _, err := Tokenize([]byte(`<?php 'oops`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unterminated string")
}

func TestTokenizeHeredoc(t *testing.T) {
	src := "<?php\n$s = <<<EOT\nline one\n  line two\nEOT;\n"
	tokens, _, err := Tokenize([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, []Kind{
		TokOpenTag, TokVariable, TokEq, TokHeredoc, TokSemicolon, TokEOF,
	}, kinds(tokens))
	assert.Contains(t, tokens[3].Text, "line two")
}

func TestTokenizeNowdoc(t *testing.T) {
	src := "<?php $s = <<<'RAW'\nno $interp here\nRAW;"
	tokens, _, err := Tokenize([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, TokHeredoc, tokens[3].Kind)
}

func TestTokenizeNumbers(t *testing.T) {
	tests := []struct {
		src  string
		want Kind
	}{
		{"42", TokInt},
		{"1_000_000", TokInt},
		{"0xFF", TokInt},
		{"0b1010", TokInt},
		{"4.2", TokFloat},
		{"1e9", TokFloat},
		{"1.5e-3", TokFloat},
	}
	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			tokens, _, err := Tokenize([]byte("<?php " + tt.src + ";"))
			require.NoError(t, err)
			assert.Equal(t, tt.want, tokens[1].Kind)
			assert.Equal(t, tt.src, tokens[1].Text)
		})
	}
}

func TestTokenizeInlineHTML(t *testing.T) {
	tokens, _, err := Tokenize([]byte("<html>\n<?php echo 1; ?>\n</html>"))
	require.NoError(t, err)
	assert.Equal(t, []Kind{
		TokInlineHTML, TokOpenTag, TokIdent, TokInt, TokSemicolon, TokCloseTag,
		TokInlineHTML, TokEOF,
	}, kinds(tokens))
}

func TestTokenizeBlankLineCounting(t *testing.T) {
	tokens, _, err := Tokenize([]byte("<?php\n$a = 1;\n\n\n$b = 2;\n"))
	require.NoError(t, err)
	var b Token
	for _, tok := range tokens {
		if tok.Kind == TokVariable && tok.Text == "$b" {
			b = tok
		}
	}
	assert.Equal(t, 3, b.NewlinesBefore)
}

func TestIsKeywordCaseInsensitive(t *testing.T) {
	tokens, _, err := Tokenize([]byte("<?php FUNCTION"))
	require.NoError(t, err)
	assert.True(t, tokens[1].IsKeyword("function"))
	assert.False(t, tokens[1].IsKeyword("func"))
}

func TestLineIndexPosition(t *testing.T) {
	ix := NewLineIndex([]byte("ab\ncd\nef"))
	line, col := ix.Position(0)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)
	line, col = ix.Position(4)
	assert.Equal(t, 2, line)
	assert.Equal(t, 2, col)
	line, col = ix.Position(7)
	assert.Equal(t, 3, line)
	assert.Equal(t, 2, col)
}
