package style

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	cfg := NewConfig()
	assert.Equal(t, 120, cfg.PrintWidth)
	assert.Equal(t, 4, cfg.TabWidth)
	assert.False(t, cfg.UseTabs)
	assert.Equal(t, EOLAuto, cfg.EndOfLine)
	assert.True(t, cfg.SingleQuote)
	assert.True(t, cfg.TrailingComma)
	assert.Equal(t, 2, cfg.MethodChainMinLinks)
	assert.True(t, cfg.ArrayTableAlignment)
	assert.Equal(t, 60, cfg.TableAlignmentMaxWidth)
	assert.Equal(t, BraceNextLine, cfg.FunctionBraceStyle)
	assert.Equal(t, BraceSameLine, cfg.ControlBraceStyle)
	assert.True(t, cfg.Backups.Enabled)
}

func TestFromYAMLOverridesDefaults(t *testing.T) {
	cfg, err := FromYAML([]byte("print_width: 80\nuse_tabs: true\nsort_uses: false\n"))
	require.NoError(t, err)
	assert.Equal(t, 80, cfg.PrintWidth)
	assert.True(t, cfg.UseTabs)
	assert.False(t, cfg.SortUses)
	// Untouched options keep their defaults.
	assert.True(t, cfg.SingleQuote)
	assert.Equal(t, 4, cfg.TabWidth)
}

func TestFromYAMLRejectsUnknownKeys(t *testing.T) {
	_, err := FromYAML([]byte("print_widht: 80\n"))
	require.Error(t, err)
}

func TestFromYAMLEmptyFile(t *testing.T) {
	cfg, err := FromYAML(nil)
	require.NoError(t, err)
	assert.Equal(t, 120, cfg.PrintWidth)
}

func TestYAMLRoundTrip(t *testing.T) {
	orig := NewConfig()
	orig.PrintWidth = 100
	orig.MethodChainBreakingStyle = ChainSameLine
	orig.Exclude = []string{"vendor/**"}

	data, err := orig.ToYAML()
	require.NoError(t, err)
	back, err := FromYAML(data)
	require.NoError(t, err)
	assert.Equal(t, orig, back)
}

func TestEndOfLineTerminator(t *testing.T) {
	tests := []struct {
		name string
		eol  EndOfLine
		src  string
		want string
	}{
		{"explicit lf", EOLLf, "a\r\nb", "\n"},
		{"explicit crlf", EOLCrlf, "a\nb", "\r\n"},
		{"auto detects crlf", EOLAuto, "a\r\nb\nc", "\r\n"},
		{"auto detects lf", EOLAuto, "a\nb", "\n"},
		{"auto detects cr", EOLAuto, "a\rb", "\r"},
		{"auto no terminator", EOLAuto, "abc", "\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.eol.Terminator([]byte(tt.src)))
		})
	}
}

func TestEnumValidation(t *testing.T) {
	assert.True(t, EOLAuto.IsValid())
	assert.False(t, EndOfLine("windows").IsValid())
	assert.True(t, ChainNextLine.IsValid())
	assert.False(t, ChainStyle("dangling").IsValid())
	assert.True(t, BraceSameLine.IsValid())
	assert.False(t, BraceStyle("k&r").IsValid())
	assert.True(t, WidthRunes.IsValid())
	assert.True(t, NullPipe.IsValid())
	assert.True(t, ArrayPreserve.IsValid())
}

func TestCloneIsDeep(t *testing.T) {
	cfg := NewConfig()
	cfg.Exclude = []string{"a"}
	clone := cfg.Clone()
	clone.Exclude[0] = "b"
	clone.PrintWidth = 1
	assert.Equal(t, "a", cfg.Exclude[0])
	assert.Equal(t, 120, cfg.PrintWidth)
}

func TestOptionsCoverEveryYAMLField(t *testing.T) {
	opts := Options()
	names := make(map[string]bool, len(opts))
	for _, o := range opts {
		names[o.Name] = true
	}
	assert.True(t, names["print_width"])
	assert.True(t, names["method_chain_min_links"])
	assert.True(t, names["backups.enabled"])
	// Options carries the defaults verbatim.
	for _, o := range opts {
		if o.Name == "print_width" {
			assert.Equal(t, "120", o.Default)
		}
	}
}

func TestTemplateMentionsEveryOption(t *testing.T) {
	tpl := string(Template())
	for _, o := range Options() {
		if strings.Contains(o.Name, ".") {
			continue
		}
		assert.Contains(t, tpl, "# "+o.Name+":")
	}
}
