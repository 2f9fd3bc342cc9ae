package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yigitcukuren/phpfmt/internal/ui/pretty"
)

// HelpStyles contains lipgloss styles for command help formatting.
type HelpStyles struct {
	Command     lipgloss.Style
	Heading     lipgloss.Style
	Subcommand  lipgloss.Style
	Flag        lipgloss.Style
	Description lipgloss.Style
	Example     lipgloss.Style
	Dim         lipgloss.Style
}

// NewHelpStyles creates help styles based on color mode.
func NewHelpStyles(colorEnabled bool) *HelpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &HelpStyles{
			Command: plain, Heading: plain, Subcommand: plain,
			Flag: plain, Description: plain, Example: plain, Dim: plain,
		}
	}
	return &HelpStyles{
		Command:     lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Heading:     lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Subcommand:  lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:        lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Description: lipgloss.NewStyle(),
		Example:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Dim:         lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter renders styled help output for cobra commands.
type HelpFormatter struct {
	styles *HelpStyles
}

// NewHelpFormatter creates a help formatter honoring the color mode.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: NewHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

func (h *HelpFormatter) templateFuncs() template.FuncMap {
	return template.FuncMap{
		"styleCommand":            h.styles.Command.Render,
		"styleHeading":            h.styles.Heading.Render,
		"styleSubcommand":         h.styles.Subcommand.Render,
		"styleDescription":        h.styles.Description.Render,
		"styleExample":            h.styles.Example.Render,
		"styleFlagsUsage":         h.styleFlagsUsage,
		"rpad":                    rpad,
		"trimTrailingWhitespaces": trimTrailingWhitespaces,
	}
}

func (h *HelpFormatter) usageTemplate() string {
	return `{{ styleHeading "Usage:" }}
  {{if .Runnable}}{{ styleCommand .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ styleCommand .CommandPath }} [command]{{end}}

{{- if .HasExample}}

{{ styleHeading "Examples:" }}
{{ styleExample .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ styleHeading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ styleSubcommand (rpad .Name .NamePadding) }} {{ styleDescription .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ styleHeading "Flags:" }}
{{ styleFlagsUsage .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ styleHeading "Global Flags:" }}
{{ styleFlagsUsage .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ styleCommand (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`
}

func (h *HelpFormatter) helpTemplate() string {
	return `{{with (or .Long .Short)}}{{ . | trimTrailingWhitespaces }}

{{end}}` + h.usageTemplate()
}

// styleFlagsUsage colorizes pflag's FlagUsages output line by line.
func (h *HelpFormatter) styleFlagsUsage(flags interface{}) string {
	flagUsages, ok := flags.(interface{ FlagUsages() string })
	if !ok {
		return ""
	}
	usages := flagUsages.FlagUsages()
	if usages == "" {
		return ""
	}

	lines := strings.Split(strings.TrimSuffix(usages, "\n"), "\n")
	for i, line := range lines {
		lines[i] = h.styleFlagLine(line)
	}
	return strings.Join(lines, "\n")
}

// styleFlagLine splits "  -f, --flag type   description" at the first
// run of two or more spaces after the flag tokens and styles each half.
func (h *HelpFormatter) styleFlagLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	if trimmed == "" {
		return line
	}
	indent := line[:len(line)-len(trimmed)]

	flagPart, desc, found := splitFlagLine(trimmed)
	if !found {
		return line
	}
	return indent + h.styles.Flag.Render(flagPart) + "   " + h.styles.Description.Render(desc)
}

// splitFlagLine finds the boundary between the flag spelling and its
// description: the first gap of two or more spaces.
func splitFlagLine(line string) (flagPart, desc string, found bool) {
	spaceStart := -1
	for idx, char := range line {
		if char == ' ' {
			if spaceStart < 0 {
				spaceStart = idx
			}
			continue
		}
		if spaceStart >= 0 && idx-spaceStart >= 2 {
			return strings.TrimRight(line[:spaceStart], " "), line[idx:], true
		}
		spaceStart = -1
	}
	return "", "", false
}

// ApplyToCommand installs the styled templates on a command tree.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := h.templateFuncs()

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		tmpl, err := template.New("usage").Funcs(funcs).Parse(h.usageTemplate())
		if err != nil {
			return fmt.Errorf("parse usage template: %w", err)
		}
		return tmpl.Execute(command.OutOrStdout(), command)
	})

	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		tmpl, err := template.New("help").Funcs(funcs).Parse(h.helpTemplate())
		if err != nil {
			command.PrintErrln(err)
			return
		}
		if err := tmpl.Execute(command.OutOrStdout(), command); err != nil {
			command.PrintErrln(err)
		}
	})
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
