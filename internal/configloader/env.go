package configloader

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/yigitcukuren/phpfmt/pkg/style"
)

// envVarPrefix is the prefix for all phpfmt environment variables.
const envVarPrefix = "PHPFMT_"

// applyEnv applies PHPFMT_* environment variable overrides to the
// configuration. Only a small, stable subset of options is exposed;
// everything else belongs in the config file.
func applyEnv(cfg *style.Config) error {
	if cfg == nil {
		return nil
	}

	if v := os.Getenv(envVarPrefix + "PRINT_WIDTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid integer for %sPRINT_WIDTH: %q", envVarPrefix, v)
		}
		cfg.PrintWidth = n
	}
	if v := os.Getenv(envVarPrefix + "JOBS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid integer for %sJOBS: %q", envVarPrefix, v)
		}
		cfg.Jobs = n
	}
	if v := os.Getenv(envVarPrefix + "USE_TABS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean for %sUSE_TABS: %q (expected true/false/1/0)", envVarPrefix, v)
		}
		cfg.UseTabs = b
	}
	if v := os.Getenv(envVarPrefix + "END_OF_LINE"); v != "" {
		cfg.EndOfLine = style.EndOfLine(v)
	}
	if v := os.Getenv(envVarPrefix + "BACKUPS_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid boolean for %sBACKUPS_ENABLED: %q (expected true/false/1/0)", envVarPrefix, v)
		}
		cfg.Backups.Enabled = b
	}
	if v := os.Getenv(envVarPrefix + "BACKUPS_MODE"); v != "" {
		cfg.Backups.Mode = v
	}
	if v := os.Getenv(envVarPrefix + "EXCLUDE"); v != "" {
		cfg.Exclude = parseSliceValue(v)
	}

	return nil
}

// parseSliceValue parses a comma-separated string into a slice,
// trimming whitespace and dropping empty elements.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns the supported environment variables with their
// descriptions, for help output.
func ListEnvVars() map[string]string {
	return map[string]string{
		envVarPrefix + "PRINT_WIDTH":     "Target maximum line width",
		envVarPrefix + "JOBS":            "Number of parallel workers (0 = auto)",
		envVarPrefix + "USE_TABS":        "Indent with tabs: true or false",
		envVarPrefix + "END_OF_LINE":     "Line terminator: auto, lf, crlf, or cr",
		envVarPrefix + "BACKUPS_ENABLED": "Keep a backup before overwriting: true or false",
		envVarPrefix + "BACKUPS_MODE":    "Backup mode: sidecar or none",
		envVarPrefix + "EXCLUDE":         "Comma-separated glob patterns to skip",
	}
}
