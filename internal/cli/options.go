package cli

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/yigitcukuren/phpfmt/internal/configloader"
	"github.com/yigitcukuren/phpfmt/pkg/style"
)

func newOptionsCommand() *cobra.Command {
	var showEnv bool

	cmd := &cobra.Command{
		Use:   "options",
		Short: "List every style option with its default",
		Long: `List every style option phpfmt understands, with its default value
and a one-line description. Options are set in .phpfmt.yaml; run
'phpfmt init' to generate a commented template.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOptions(cmd, showEnv)
		},
	}

	cmd.Flags().BoolVar(&showEnv, "env", false, "also list supported environment variables")

	return cmd
}

func runOptions(cmd *cobra.Command, showEnv bool) error {
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)

	fmt.Fprintln(w, "OPTION\tDEFAULT\tDESCRIPTION")
	for _, opt := range style.Options() {
		fmt.Fprintf(w, "%s\t%s\t%s\n", opt.Name, opt.Default, opt.Doc)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	if showEnv {
		fmt.Fprintln(cmd.OutOrStdout())
		envW := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(envW, "VARIABLE\tDESCRIPTION")
		envVars := configloader.ListEnvVars()
		names := make([]string, 0, len(envVars))
		for name := range envVars {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Fprintf(envW, "%s\t%s\n", name, envVars[name])
		}
		if err := envW.Flush(); err != nil {
			return fmt.Errorf("flush output: %w", err)
		}
	}

	return nil
}
