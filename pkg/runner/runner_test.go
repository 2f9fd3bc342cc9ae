package runner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigitcukuren/phpfmt/pkg/format"
	"github.com/yigitcukuren/phpfmt/pkg/style"
)

const formattedSource = "<?php\n\necho 'hello';\n"
const unformattedSource = "<?php\necho   \"hello\"  ;\n"

func TestRunReportsChangedAndClean(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"clean.php": formattedSource,
		"dirty.php": unformattedSource,
	})

	result, err := Run(context.Background(), Options{
		WorkingDir: root,
		Config:     style.NewConfig(),
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.Stats.FilesDiscovered)
	assert.Equal(t, 2, result.Stats.FilesProcessed)
	assert.Equal(t, 1, result.Stats.FilesChanged)
	assert.Equal(t, 0, result.Stats.FilesWritten)
	assert.True(t, result.HasChanges())
	assert.False(t, result.HasErrors())

	// Outcomes arrive in path order.
	require.Len(t, result.Files, 2)
	assert.Equal(t, "clean.php", filepath.Base(result.Files[0].Path))
	assert.False(t, result.Files[0].Result.Changed)
	assert.Equal(t, "dirty.php", filepath.Base(result.Files[1].Path))
	assert.True(t, result.Files[1].Result.Changed)
}

func TestRunWriteMode(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"dirty.php": unformattedSource})

	cfg := style.NewConfig()
	result, err := Run(context.Background(), Options{
		WorkingDir: root,
		Config:     cfg,
		Pipeline: format.PipelineOptions{
			Write:  true,
			Backup: format.BackupConfigFromStyle(cfg),
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.Stats.FilesWritten)
	assert.Equal(t, 1, result.Stats.BackupsCreated)

	content, err := os.ReadFile(filepath.Join(root, "dirty.php"))
	require.NoError(t, err)
	assert.Equal(t, "<?php\n\necho 'hello';\n", string(content))

	backup, err := os.ReadFile(filepath.Join(root, "dirty.php.phpfmt.bak"))
	require.NoError(t, err)
	assert.Equal(t, unformattedSource, string(backup))
}

func TestRunWriteIsIdempotent(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{"dirty.php": unformattedSource})

	cfg := style.NewConfig()
	opts := Options{
		WorkingDir: root,
		Config:     cfg,
		Pipeline:   format.PipelineOptions{Write: true},
	}

	first, err := Run(context.Background(), opts)
	require.NoError(t, err)
	require.Equal(t, 1, first.Stats.FilesChanged)

	second, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, 0, second.Stats.FilesChanged)
	assert.Equal(t, 0, second.Stats.FilesWritten)
}

func TestRunCollectsParseErrors(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"good.php":   formattedSource,
		"broken.php": "<?php if (\n",
	})

	result, err := Run(context.Background(), Options{
		WorkingDir: root,
		Config:     style.NewConfig(),
	})
	require.NoError(t, err, "per-file errors must not abort the run")

	assert.Equal(t, 1, result.Stats.FilesErrored)
	assert.Equal(t, 1, result.Stats.FilesProcessed)
	assert.True(t, result.HasErrors())

	broken := result.Files[0]
	require.Equal(t, "broken.php", filepath.Base(broken.Path))
	require.Error(t, broken.Error)
	assert.ErrorIs(t, broken.Error, format.ErrParseFailure)
}

func TestRunEmptyDirectory(t *testing.T) {
	result, err := Run(context.Background(), Options{
		WorkingDir: t.TempDir(),
		Config:     style.NewConfig(),
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.Stats.FilesDiscovered)
	assert.False(t, result.HasChanges())
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	root := t.TempDir()
	writeTree(t, root, map[string]string{"app.php": formattedSource})

	_, err := Run(ctx, Options{WorkingDir: root, Config: style.NewConfig()})
	require.Error(t, err)
}

func TestRunManyFilesDeterministicOrder(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{}
	for _, name := range []string{"a.php", "b.php", "c.php", "d.php", "e.php", "f.php", "g.php", "h.php"} {
		files[name] = formattedSource
	}
	writeTree(t, root, files)

	result, err := Run(context.Background(), Options{
		WorkingDir: root,
		Config:     style.NewConfig(),
		Jobs:       4,
	})
	require.NoError(t, err)

	require.Len(t, result.Files, 8)
	for i := 1; i < len(result.Files); i++ {
		assert.Less(t, result.Files[i-1].Path, result.Files[i].Path)
	}
}
