package configloader

import (
	"fmt"

	"github.com/yigitcukuren/phpfmt/pkg/fsutil"
	"github.com/yigitcukuren/phpfmt/pkg/style"
)

// ValidationError describes an invalid configuration value.
type ValidationError struct {
	Option  string
	Value   any
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid value for %s: %v (%s)", e.Option, e.Value, e.Message)
}

// ValidationWarning describes a suspicious but usable value.
type ValidationWarning struct {
	Option  string
	Message string
}

// ValidationResult collects errors and warnings from validation.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationWarning
}

// Valid returns true when no errors were found.
func (r *ValidationResult) Valid() bool { return len(r.Errors) == 0 }

func (r *ValidationResult) addError(option string, value any, message string) {
	r.Errors = append(r.Errors, ValidationError{Option: option, Value: value, Message: message})
}

func (r *ValidationResult) addWarning(option, message string) {
	r.Warnings = append(r.Warnings, ValidationWarning{Option: option, Message: message})
}

// Validate checks every constrained option of the configuration.
func Validate(cfg *style.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		result.addError("config", nil, "configuration is nil")
		return result
	}

	validateLayout(cfg, result)
	validateEnums(cfg, result)
	validateSpacing(cfg, result)
	validateBackups(cfg, result)

	return result
}

func validateLayout(cfg *style.Config, result *ValidationResult) {
	if cfg.PrintWidth < 1 {
		result.addError("print_width", cfg.PrintWidth, "must be at least 1")
	}
	if cfg.PrintWidth > 1000 {
		result.addWarning("print_width", "values above 1000 effectively disable line breaking")
	}
	if cfg.TabWidth < 1 {
		result.addError("tab_width", cfg.TabWidth, "must be at least 1")
	}
	if cfg.TableAlignmentMaxWidth < 1 {
		result.addError("table_alignment_max_width", cfg.TableAlignmentMaxWidth, "must be at least 1")
	}
	if cfg.MethodChainMinLinks < 1 {
		result.addError("method_chain_min_links", cfg.MethodChainMinLinks, "must be at least 1")
	}
	if cfg.Jobs < 0 {
		result.addError("jobs", cfg.Jobs, "must not be negative")
	}
}

func validateEnums(cfg *style.Config, result *ValidationResult) {
	if !cfg.EndOfLine.IsValid() {
		result.addError("end_of_line", cfg.EndOfLine, "expected auto, lf, crlf, or cr")
	}
	if !cfg.WidthMetric.IsValid() {
		result.addError("width_metric", cfg.WidthMetric, "expected display or runes")
	}
	if !cfg.KeywordCase.IsValid() {
		result.addError("keyword_case", cfg.KeywordCase, "expected lowercase or preserve")
	}
	if !cfg.ArrayStyle.IsValid() {
		result.addError("array_style", cfg.ArrayStyle, "expected short, long, or preserve")
	}
	if !cfg.ListStyle.IsValid() {
		result.addError("list_style", cfg.ListStyle, "expected short, long, or preserve")
	}
	if !cfg.ControlBraceStyle.IsValid() {
		result.addError("control_brace_style", cfg.ControlBraceStyle, "expected same_line or next_line")
	}
	if !cfg.FunctionBraceStyle.IsValid() {
		result.addError("function_brace_style", cfg.FunctionBraceStyle, "expected same_line or next_line")
	}
	if !cfg.ClasslikeBraceStyle.IsValid() {
		result.addError("classlike_brace_style", cfg.ClasslikeBraceStyle, "expected same_line or next_line")
	}
	if !cfg.ClosureBraceStyle.IsValid() {
		result.addError("closure_brace_style", cfg.ClosureBraceStyle, "expected same_line or next_line")
	}
	if !cfg.MethodChainBreakingStyle.IsValid() {
		result.addError("method_chain_breaking_style", cfg.MethodChainBreakingStyle, "expected next_line or same_line")
	}
	if !cfg.NullTypeHint.IsValid() {
		result.addError("null_type_hint", cfg.NullTypeHint, "expected question or pipe")
	}
	if !cfg.ParenthesesAroundNew.IsValid() {
		result.addError("parentheses_around_new", cfg.ParenthesesAroundNew, "expected preserve, always, or never")
	}
	if !cfg.VisibilityOrder.IsValid() {
		result.addError("visibility_order", cfg.VisibilityOrder, "expected first or preserve")
	}
}

func validateSpacing(cfg *style.Config, result *ValidationResult) {
	if cfg.BlankLinesMax < 0 {
		result.addError("blank_lines_max", cfg.BlankLinesMax, "must not be negative")
	}
	if cfg.BlankLinesAfterOpenTag < 0 {
		result.addError("blank_lines_after_open_tag", cfg.BlankLinesAfterOpenTag, "must not be negative")
	}
	if cfg.MethodSpacing < 0 {
		result.addError("method_spacing", cfg.MethodSpacing, "must not be negative")
	}
	if cfg.PropertySpacing < 0 {
		result.addError("property_spacing", cfg.PropertySpacing, "must not be negative")
	}
	if cfg.ConstSpacing < 0 {
		result.addError("const_spacing", cfg.ConstSpacing, "must not be negative")
	}
}

func validateBackups(cfg *style.Config, result *ValidationResult) {
	switch fsutil.BackupMode(cfg.Backups.Mode) {
	case fsutil.BackupModeSidecar, fsutil.BackupModeNone:
	default:
		result.addError("backups.mode", cfg.Backups.Mode, "expected sidecar or none")
	}
}
