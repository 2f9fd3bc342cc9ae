// Package cli provides the Cobra command structure for phpfmt.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yigitcukuren/phpfmt/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root phpfmt command with all subcommands.
// The root command itself formats; `phpfmt src/` is the common
// invocation.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	flags := &fmtFlags{}

	rootCmd := &cobra.Command{
		Use:   "phpfmt [paths...]",
		Short: "An opinionated PHP source formatter",
		Long: `phpfmt is an opinionated, comment-preserving PHP source formatter.

It parses each file into a syntax tree, reattaches every comment, and
reprints the code against a configurable style: line width, brace
placement, array table alignment, method-chain breaking, import sorting
and more. Formatting is idempotent and never changes program meaning.

Without flags phpfmt reports the files that need formatting and exits
with status 1 when any do. Use --write to rewrite files in place.`,
		Example: `  phpfmt src/                # report files needing formatting
  phpfmt -w src/ tests/      # format in place
  phpfmt -d app.php          # show the diff for one file
  phpfmt -l .                # list unformatted files
  phpfmt --check --format json src/   # machine-readable CI check
  cat app.php | phpfmt --stdin        # filter mode`,
		Args: cobra.ArbitraryArgs,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, flags)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&flags.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&flags.color, "color", "auto",
		"colorize output: auto, always, never")

	addFmtFlags(rootCmd, flags)

	// Subcommands.
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newOptionsCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Styled help formatting.
	helpFormatter := NewHelpFormatter(flags.color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
