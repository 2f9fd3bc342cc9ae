package style

import (
	"bytes"
	"fmt"
	"reflect"
	"strings"
)

// Option describes one style option for documentation and template
// generation.
type Option struct {
	Name    string
	Default string
	Doc     string
}

// optionDocs maps yaml option names to their one-line documentation.
// Options without an entry still appear in Options() undocumented.
var optionDocs = map[string]string{
	"print_width":                  "target maximum line width",
	"tab_width":                    "spaces per indentation level, and tab display width",
	"use_tabs":                     "indent with tabs instead of spaces",
	"end_of_line":                  "line terminator: auto, lf, crlf, or cr",
	"width_metric":                 "width measurement: display (CJK counts 2) or runes",
	"single_quote":                 "prefer single-quoted strings when meaning is unchanged",
	"trailing_comma":               "add trailing commas to broken multi-line lists",
	"keyword_case":                 "keyword normalization: lowercase or preserve",
	"array_style":                  "array literal syntax: short, long, or preserve",
	"list_style":                   "list() syntax: short, long, or preserve",
	"blank_lines_max":              "maximum consecutive blank lines kept",
	"blank_lines_after_open_tag":   "blank lines after the opening <?php tag",
	"space_around_binary_operators": "spaces around binary operators",
	"space_around_concat":           "spaces around the . concatenation operator",
	"space_after_cast":              "space after (int) style casts",
	"space_after_not":               "space after the ! operator",
	"space_within_grouping_parens":  "spaces inside grouping parentheses",
	"space_before_closure_params":   "space between function keyword and closure params",
	"space_after_closure_use":       "space after the closure use keyword",
	"space_before_arrow_fn_params":  "space between fn and its parameter list",
	"control_brace_style":           "brace placement for control structures",
	"function_brace_style":          "brace placement for functions and methods",
	"classlike_brace_style":         "brace placement for classes, interfaces, traits, enums",
	"closure_brace_style":           "brace placement for closures",
	"inline_empty_control_braces":   "keep {} of empty control bodies on one line",
	"method_chain_breaking_style":   "broken chains: arrows leading (next_line) or trailing",
	"method_chain_min_links":        "minimum links before an overlong chain breaks fully",
	"array_table_alignment":         "column-align eligible array-of-array literals",
	"table_alignment_max_width":     "skip table alignment when any row exceeds this width",
	"align_assignments":             "align = in runs of consecutive assignments",
	"sort_uses":                     "sort use imports alphabetically",
	"separate_use_types":            "group class, function, and const imports separately",
	"expand_use_groups":             "expand grouped use imports into one per line",
	"null_type_hint":                "nullable types: question (?T) or pipe (T|null)",
	"parentheses_around_new":        "argument parens on new without args: preserve, always, never",
	"parentheses_in_exit":           "force parentheses on exit and die",
	"break_promoted_properties":     "one promoted constructor property per line",
	"split_multi_declare":           "split multi-variable declarations into single ones",
	"static_before_visibility":      "write static before the visibility modifier",
	"visibility_order":              "position of visibility among modifiers: first or preserve",
	"require_visibility":            "add public to members lacking a visibility modifier",
	"always_break_attribute_named_arguments": "break attribute argument lists with named arguments",
	"attributes_on_own_line":                 "each #[...] group on its own line above the declaration",
	"break_before_binary_operator":           "broken operands carry the operator to the next line",
	"empty_line_after_opening_brace":         "blank line after a class-like opening brace",
	"empty_line_before_return":               "blank line before return statements",
	"preserve_breaking_member_access_chain":  "keep chains broken that were broken in the input",
	"preserve_breaking_argument_list":        "keep argument lists broken that were broken in the input",
	"preserve_breaking_array_like":           "keep arrays broken that were broken in the input",
	"preserve_breaking_parameter_list":       "keep parameter lists broken that were broken in the input",
	"preserve_breaking_condition_list":       "keep condition lists broken that were broken in the input",
	"method_spacing":                         "blank lines between methods",
	"property_spacing":                       "blank lines between properties",
	"const_spacing":                          "blank lines between constants",
	"exclude":                                "glob patterns for paths to skip",
}

// Options returns every persistable style option with its default value,
// in declaration order.
func Options() []Option {
	defaults := NewConfig()
	v := reflect.ValueOf(*defaults)
	t := v.Type()

	var opts []Option
	for i := 0; i < t.NumField(); i++ {
		tag := t.Field(i).Tag.Get("yaml")
		if tag == "" || tag == "-" {
			continue
		}
		if t.Field(i).Type.Kind() == reflect.Struct {
			// Nested option groups are documented per leaf.
			continue
		}
		opts = append(opts, Option{
			Name:    tag,
			Default: formatDefault(v.Field(i)),
			Doc:     optionDocs[tag],
		})
	}
	opts = append(opts,
		Option{Name: "backups.enabled", Default: fmt.Sprintf("%v", defaults.Backups.Enabled),
			Doc: "keep a backup before overwriting files"},
		Option{Name: "backups.mode", Default: defaults.Backups.Mode,
			Doc: "backup placement: sidecar (next to file) or none"},
	)
	return opts
}

func formatDefault(v reflect.Value) string {
	switch v.Kind() {
	case reflect.Slice:
		if v.Len() == 0 {
			return "[]"
		}
	case reflect.String:
		return v.String()
	}
	return fmt.Sprintf("%v", v.Interface())
}

// Template generates a fully commented .phpfmt.yaml with every option
// at its default, ready to uncomment and edit.
func Template() []byte {
	var buf bytes.Buffer
	buf.WriteString("# phpfmt configuration\n")
	buf.WriteString("# Every option is shown at its default; uncomment to change.\n\n")
	for _, opt := range Options() {
		if strings.Contains(opt.Name, ".") {
			continue
		}
		if opt.Doc != "" {
			fmt.Fprintf(&buf, "# %s\n", opt.Doc)
		}
		fmt.Fprintf(&buf, "# %s: %s\n\n", opt.Name, opt.Default)
	}
	buf.WriteString("# keep a backup before overwriting files\n")
	buf.WriteString("# backups:\n")
	buf.WriteString("#   enabled: true\n")
	buf.WriteString("#   mode: sidecar\n")
	return buf.Bytes()
}
