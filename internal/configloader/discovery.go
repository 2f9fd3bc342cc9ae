package configloader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// configFileNames are the config file names searched for, in order of
// preference.
var configFileNames = []string{
	".phpfmt.yaml",
	".phpfmt.yml",
	"phpfmt.yaml",
	"phpfmt.yml",
}

// vcsRootMarkers are directories that indicate a VCS root.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// FindProjectConfig searches upward from startDir for a project config
// file. It returns the path of the first file found, or empty string if
// none. The search stops at a VCS root, the home directory, or the
// filesystem root.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		var err error
		startDir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
	}

	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		homeDir = ""
	}

	currentDir := absDir
	for {
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		for _, name := range configFileNames {
			path := filepath.Join(currentDir, name)
			if fileExists(path) {
				return path, nil
			}
		}

		if isVCSRoot(currentDir) {
			return "", nil
		}
		if homeDir != "" && currentDir == homeDir {
			return "", nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", nil
		}
		currentDir = parentDir
	}
}

// FindUserConfig returns the path to the user-level config file
// ($XDG_CONFIG_HOME/phpfmt/config.yaml), or empty string if none exists.
func FindUserConfig() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}

	for _, name := range []string{"config.yaml", "config.yml"} {
		path := filepath.Join(configHome, "phpfmt", name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// isVCSRoot returns true if the directory contains a VCS root marker.
func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		info, err := os.Stat(filepath.Join(dir, marker))
		if err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
