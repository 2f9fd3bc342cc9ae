// Package style defines the formatting style configuration for phpfmt.
// These types are pure data structures; discovery, merging, and
// validation live in internal/configloader.
package style

import "bytes"

// EndOfLine selects the line terminator written to output.
type EndOfLine string

const (
	EOLAuto EndOfLine = "auto"
	EOLLf   EndOfLine = "lf"
	EOLCrlf EndOfLine = "crlf"
	EOLCr   EndOfLine = "cr"
)

// IsValid returns true if the end-of-line mode is recognized.
func (e EndOfLine) IsValid() bool {
	switch e {
	case EOLAuto, EOLLf, EOLCrlf, EOLCr:
		return true
	default:
		return false
	}
}

// Terminator resolves the terminator string for a given source file.
// In auto mode the first terminator found in the source wins; a file
// with no terminators gets LF.
func (e EndOfLine) Terminator(src []byte) string {
	switch e {
	case EOLLf:
		return "\n"
	case EOLCrlf:
		return "\r\n"
	case EOLCr:
		return "\r"
	}
	if i := bytes.IndexAny(src, "\r\n"); i >= 0 {
		if src[i] == '\n' {
			return "\n"
		}
		if i+1 < len(src) && src[i+1] == '\n' {
			return "\r\n"
		}
		return "\r"
	}
	return "\n"
}

// WidthMetric selects how line width is measured against print_width.
type WidthMetric string

const (
	// WidthDisplay measures terminal display cells, so CJK characters
	// count as two.
	WidthDisplay WidthMetric = "display"
	// WidthRunes counts runes, matching editors that column-count.
	WidthRunes WidthMetric = "runes"
)

// IsValid returns true if the width metric is recognized.
func (w WidthMetric) IsValid() bool { return w == WidthDisplay || w == WidthRunes }

// KeywordCase controls normalization of PHP keywords.
type KeywordCase string

const (
	KeywordLowercase KeywordCase = "lowercase"
	KeywordPreserve  KeywordCase = "preserve"
)

// IsValid returns true if the keyword case mode is recognized.
func (k KeywordCase) IsValid() bool { return k == KeywordLowercase || k == KeywordPreserve }

// BraceStyle controls opening-brace placement for a construct family.
type BraceStyle string

const (
	BraceSameLine BraceStyle = "same_line"
	BraceNextLine BraceStyle = "next_line"
)

// IsValid returns true if the brace style is recognized.
func (b BraceStyle) IsValid() bool { return b == BraceSameLine || b == BraceNextLine }

// ChainStyle controls where the arrow lands when a method chain breaks.
type ChainStyle string

const (
	// ChainNextLine puts each ->link() at the start of its own line.
	ChainNextLine ChainStyle = "next_line"
	// ChainSameLine leaves the arrow trailing on the previous line.
	ChainSameLine ChainStyle = "same_line"
)

// IsValid returns true if the chain style is recognized.
func (c ChainStyle) IsValid() bool { return c == ChainNextLine || c == ChainSameLine }

// NullTypeHint controls how nullable types are written.
type NullTypeHint string

const (
	// NullQuestion writes ?T.
	NullQuestion NullTypeHint = "question"
	// NullPipe writes T|null.
	NullPipe NullTypeHint = "pipe"
)

// IsValid returns true if the null type hint style is recognized.
func (n NullTypeHint) IsValid() bool { return n == NullQuestion || n == NullPipe }

// ParensPolicy controls parentheses on constructs where they are optional.
type ParensPolicy string

const (
	ParensPreserve ParensPolicy = "preserve"
	ParensAlways   ParensPolicy = "always"
	ParensNever    ParensPolicy = "never"
)

// IsValid returns true if the parentheses policy is recognized.
func (p ParensPolicy) IsValid() bool {
	return p == ParensPreserve || p == ParensAlways || p == ParensNever
}

// ArrayStyle controls short [] versus long array() syntax.
type ArrayStyle string

const (
	ArrayShort    ArrayStyle = "short"
	ArrayLong     ArrayStyle = "long"
	ArrayPreserve ArrayStyle = "preserve"
)

// IsValid returns true if the array style is recognized.
func (a ArrayStyle) IsValid() bool {
	return a == ArrayShort || a == ArrayLong || a == ArrayPreserve
}

// VisibilityOrder controls where visibility modifiers sit among other
// member modifiers.
type VisibilityOrder string

const (
	VisibilityFirst    VisibilityOrder = "first"
	VisibilityPreserve VisibilityOrder = "preserve"
)

// IsValid returns true if the visibility order is recognized.
func (v VisibilityOrder) IsValid() bool {
	return v == VisibilityFirst || v == VisibilityPreserve
}

// BackupsConfig controls backup behavior when writing files in place.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Mode    string `yaml:"mode"` // "sidecar" or "none"
}

// Config is the root style configuration. Every field has a default;
// an absent config file yields a fully working formatter.
type Config struct {
	// Layout.
	PrintWidth  int         `yaml:"print_width"`
	TabWidth    int         `yaml:"tab_width"`
	UseTabs     bool        `yaml:"use_tabs"`
	EndOfLine   EndOfLine   `yaml:"end_of_line"`
	WidthMetric WidthMetric `yaml:"width_metric"`

	// Literals and tokens.
	SingleQuote   bool        `yaml:"single_quote"`
	TrailingComma bool        `yaml:"trailing_comma"`
	KeywordCase   KeywordCase `yaml:"keyword_case"`
	ArrayStyle    ArrayStyle  `yaml:"array_style"`
	ListStyle     ArrayStyle  `yaml:"list_style"`

	// Blank lines.
	BlankLinesMax          int `yaml:"blank_lines_max"`
	BlankLinesAfterOpenTag int `yaml:"blank_lines_after_open_tag"`

	// Spacing.
	SpaceAroundBinaryOperators bool `yaml:"space_around_binary_operators"`
	SpaceAroundConcat          bool `yaml:"space_around_concat"`
	SpaceAfterCast             bool `yaml:"space_after_cast"`
	SpaceAfterNot              bool `yaml:"space_after_not"`
	SpaceWithinGroupingParens  bool `yaml:"space_within_grouping_parens"`
	SpaceBeforeClosureParams   bool `yaml:"space_before_closure_params"`
	SpaceAfterClosureUse       bool `yaml:"space_after_closure_use"`
	SpaceBeforeArrowFnParams   bool `yaml:"space_before_arrow_fn_params"`

	// Braces.
	ControlBraceStyle        BraceStyle `yaml:"control_brace_style"`
	FunctionBraceStyle       BraceStyle `yaml:"function_brace_style"`
	ClasslikeBraceStyle      BraceStyle `yaml:"classlike_brace_style"`
	ClosureBraceStyle        BraceStyle `yaml:"closure_brace_style"`
	InlineEmptyControlBraces bool       `yaml:"inline_empty_control_braces"`

	// Method chains.
	MethodChainBreakingStyle ChainStyle `yaml:"method_chain_breaking_style"`
	MethodChainMinLinks      int        `yaml:"method_chain_min_links"`

	// Array table alignment.
	ArrayTableAlignment    bool `yaml:"array_table_alignment"`
	TableAlignmentMaxWidth int  `yaml:"table_alignment_max_width"`
	AlignAssignments       bool `yaml:"align_assignments"`

	// Imports.
	SortUses         bool `yaml:"sort_uses"`
	SeparateUseTypes bool `yaml:"separate_use_types"`
	ExpandUseGroups  bool `yaml:"expand_use_groups"`

	// Declarations.
	NullTypeHint            NullTypeHint    `yaml:"null_type_hint"`
	ParenthesesAroundNew    ParensPolicy    `yaml:"parentheses_around_new"`
	ParenthesesInExit       bool            `yaml:"parentheses_in_exit"`
	BreakPromotedProperties bool            `yaml:"break_promoted_properties"`
	SplitMultiDeclare       bool            `yaml:"split_multi_declare"`
	StaticBeforeVisibility  bool            `yaml:"static_before_visibility"`
	VisibilityOrder         VisibilityOrder `yaml:"visibility_order"`
	RequireVisibility       bool            `yaml:"require_visibility"`

	// Attributes.
	AlwaysBreakAttributeNamedArguments bool `yaml:"always_break_attribute_named_arguments"`
	AttributesOnOwnLine                bool `yaml:"attributes_on_own_line"`

	// Breaking behavior.
	BreakBeforeBinaryOperator         bool `yaml:"break_before_binary_operator"`
	EmptyLineAfterOpeningBrace        bool `yaml:"empty_line_after_opening_brace"`
	EmptyLineBeforeReturn             bool `yaml:"empty_line_before_return"`
	PreserveBreakingMemberAccessChain bool `yaml:"preserve_breaking_member_access_chain"`
	PreserveBreakingArgumentList      bool `yaml:"preserve_breaking_argument_list"`
	PreserveBreakingArrayLike         bool `yaml:"preserve_breaking_array_like"`
	PreserveBreakingParameterList     bool `yaml:"preserve_breaking_parameter_list"`
	PreserveBreakingConditionList     bool `yaml:"preserve_breaking_condition_list"`

	// Member spacing (blank lines between members of the same kind).
	MethodSpacing   int `yaml:"method_spacing"`
	PropertySpacing int `yaml:"property_spacing"`
	ConstSpacing    int `yaml:"const_spacing"`

	// Tool options.
	Exclude []string      `yaml:"exclude"`
	Backups BackupsConfig `yaml:"backups"`

	// CLI-level options (not persisted to config files).

	// Jobs is the number of parallel workers; 0 means GOMAXPROCS.
	Jobs int `yaml:"-"`
}

// NewConfig returns a Config holding every option's default.
func NewConfig() *Config {
	return &Config{
		PrintWidth:  120,
		TabWidth:    4,
		UseTabs:     false,
		EndOfLine:   EOLAuto,
		WidthMetric: WidthDisplay,

		SingleQuote:   true,
		TrailingComma: true,
		KeywordCase:   KeywordLowercase,
		ArrayStyle:    ArrayShort,
		ListStyle:     ArrayShort,

		BlankLinesMax:          2,
		BlankLinesAfterOpenTag: 1,

		SpaceAroundBinaryOperators: true,
		SpaceAroundConcat:          true,
		SpaceAfterCast:             true,
		SpaceAfterNot:              false,
		SpaceWithinGroupingParens:  false,
		SpaceBeforeClosureParams:   true,
		SpaceAfterClosureUse:       true,
		SpaceBeforeArrowFnParams:   false,

		ControlBraceStyle:        BraceSameLine,
		FunctionBraceStyle:       BraceNextLine,
		ClasslikeBraceStyle:      BraceNextLine,
		ClosureBraceStyle:        BraceSameLine,
		InlineEmptyControlBraces: false,

		MethodChainBreakingStyle: ChainNextLine,
		MethodChainMinLinks:      2,

		ArrayTableAlignment:    true,
		TableAlignmentMaxWidth: 60,
		AlignAssignments:       false,

		SortUses:         true,
		SeparateUseTypes: true,
		ExpandUseGroups:  false,

		NullTypeHint:            NullQuestion,
		ParenthesesAroundNew:    ParensPreserve,
		ParenthesesInExit:       false,
		BreakPromotedProperties: true,
		SplitMultiDeclare:       true,
		StaticBeforeVisibility:  false,
		VisibilityOrder:         VisibilityFirst,
		RequireVisibility:       false,

		AlwaysBreakAttributeNamedArguments: false,
		AttributesOnOwnLine:                true,

		BreakBeforeBinaryOperator:         true,
		EmptyLineAfterOpeningBrace:        false,
		EmptyLineBeforeReturn:             false,
		PreserveBreakingMemberAccessChain: true,
		PreserveBreakingArgumentList:      true,
		PreserveBreakingArrayLike:         true,
		PreserveBreakingParameterList:     true,
		PreserveBreakingConditionList:     true,

		MethodSpacing:   1,
		PropertySpacing: 0,
		ConstSpacing:    0,

		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
	}
}
