package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yigitcukuren/phpfmt/internal/logging"
	"github.com/yigitcukuren/phpfmt/pkg/style"
)

// configFilePermissions is the file mode for configuration files
// (world-readable).
const configFilePermissions = 0644

type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new phpfmt configuration file",
		Long: `Create a .phpfmt.yaml configuration file in the current directory
with every style option listed at its default, commented out and ready
to edit.

Examples:
  phpfmt init                     Create .phpfmt.yaml
  phpfmt init --output fmt.yaml   Write to a custom file path`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .phpfmt.yaml)")

	return cmd
}

func runInit(flags *initFlags) error {
	logger := logging.NewInteractive()

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".phpfmt.yaml"
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return &ExitError{Code: ExitInvalidUsage,
				Err: fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)}
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	if err := os.WriteFile(absPath, style.Template(), configFilePermissions); err != nil {
		return &ExitError{Code: ExitIOError, Err: fmt.Errorf("write file: %w", err)}
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'phpfmt options' to see every option explained")

	return nil
}
