package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func relPaths(t *testing.T, root string, paths []string) []string {
	t.Helper()
	out := make([]string, len(paths))
	for i, p := range paths {
		rel, err := filepath.Rel(root, p)
		require.NoError(t, err)
		out[i] = filepath.ToSlash(rel)
	}
	return out
}

func TestDiscoverDirectoryFiltersByExtension(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"index.php":          "<?php\n",
		"view.phtml":         "<?php\n",
		"readme.md":          "# docs\n",
		"src/App.php":        "<?php\n",
		"src/helpers.go":     "package main\n",
		"src/deep/Model.php": "<?php\n",
	})

	files, err := Discover(context.Background(), Options{WorkingDir: root})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"index.php",
		"src/App.php",
		"src/deep/Model.php",
		"view.phtml",
	}, relPaths(t, root, files))
}

func TestDiscoverSkipsHiddenEntries(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"app.php":            "<?php\n",
		".hidden.php":        "<?php\n",
		".git/hooks/pre.php": "<?php\n",
	})

	files, err := Discover(context.Background(), Options{WorkingDir: root})
	require.NoError(t, err)
	assert.Equal(t, []string{"app.php"}, relPaths(t, root, files))
}

func TestDiscoverExcludeGlobs(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"app.php":               "<?php\n",
		"vendor/lib/Loader.php": "<?php\n",
		"cache/view.php":        "<?php\n",
		"src/Service.php":       "<?php\n",
	})

	files, err := Discover(context.Background(), Options{
		WorkingDir:   root,
		ExcludeGlobs: []string{"vendor/**", "cache/**"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"app.php", "src/Service.php"}, relPaths(t, root, files))
}

func TestDiscoverExplicitFileBypassesExtensionFilter(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"console": "#!/usr/bin/env php\n<?php\n",
	})

	files, err := Discover(context.Background(), Options{
		WorkingDir: root,
		Paths:      []string{"console"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"console"}, relPaths(t, root, files))
}

func TestDiscoverExtensionlessShebangScript(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"bin/console": "#!/usr/bin/env php\n<?php\necho 'cli';\n",
		"bin/deploy":  "#!/bin/bash\nset -e\n",
		"app.php":     "<?php\n",
	})

	files, err := Discover(context.Background(), Options{WorkingDir: root})
	require.NoError(t, err)
	assert.Equal(t, []string{"app.php", "bin/console"}, relPaths(t, root, files))
}

func TestDiscoverMissingPath(t *testing.T) {
	root := t.TempDir()
	_, err := Discover(context.Background(), Options{
		WorkingDir: root,
		Paths:      []string{"no-such-dir"},
	})
	require.Error(t, err)
}

func TestDiscoverDeduplicates(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"app.php": "<?php\n"})

	files, err := Discover(context.Background(), Options{
		WorkingDir: root,
		Paths:      []string{".", "app.php"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"app.php"}, relPaths(t, root, files))
}

func TestDiscoverCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{"app.php": "<?php\n"})

	_, err := Discover(ctx, Options{WorkingDir: root})
	require.Error(t, err)
}

func TestMatchGlob(t *testing.T) {
	tests := []struct {
		path    string
		pattern string
		want    bool
	}{
		{"vendor/lib/a.php", "vendor/**", true},
		{"vendor", "vendor/**", true},
		{"src/vendor.php", "vendor/**", false},
		{"src/gen/out.php", "**/gen/out.php", true},
		{"a/b/c.php", "**/*.php", true},
		{"cache/view.php", "cache/*.php", true},
		{"cache/sub/view.php", "cache/*.php", false},
		{"notes.txt", "*.php", false},
		{"deep/dir/file.php", "file.php", true},
	}

	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, matchGlob(tt.path, tt.pattern))
		})
	}
}

func TestDiscoverSymlinkedDirectory(t *testing.T) {
	root := t.TempDir()
	outside := t.TempDir()
	writeTree(t, outside, map[string]string{"Linked.php": "<?php\n"})
	writeTree(t, root, map[string]string{"app.php": "<?php\n"})
	require.NoError(t, os.Symlink(outside, filepath.Join(root, "linked")))

	// Ignored by default.
	files, err := Discover(context.Background(), Options{WorkingDir: root})
	require.NoError(t, err)
	assert.Equal(t, []string{"app.php"}, relPaths(t, root, files))

	// Followed on request.
	files, err = Discover(context.Background(), Options{WorkingDir: root, FollowSymlinks: true})
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, "Linked.php", filepath.Base(files[sortedIndexOf(files, "Linked.php")]))
}

func sortedIndexOf(paths []string, base string) int {
	for i, p := range paths {
		if filepath.Base(p) == base {
			return i
		}
	}
	return -1
}
