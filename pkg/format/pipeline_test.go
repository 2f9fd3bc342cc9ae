package format

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigitcukuren/phpfmt/pkg/fsutil"
	"github.com/yigitcukuren/phpfmt/pkg/style"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestProcessFileUnchanged(t *testing.T) {
	path := writeTemp(t, "clean.php", "<?php\n\necho 'hello';\n")

	result, err := ProcessFile(context.Background(), path, style.NewConfig(), PipelineOptions{})
	require.NoError(t, err)
	assert.False(t, result.Changed)
	assert.False(t, result.Written)
	assert.Nil(t, result.Formatted)
}

func TestProcessFileChangedWithoutWrite(t *testing.T) {
	original := "<?php\necho   \"hello\"  ;\n"
	path := writeTemp(t, "dirty.php", original)

	result, err := ProcessFile(context.Background(), path, style.NewConfig(), PipelineOptions{})
	require.NoError(t, err)
	assert.True(t, result.Changed)
	assert.False(t, result.Written)
	assert.Equal(t, "<?php\n\necho 'hello';\n", string(result.Formatted))

	// The file itself is untouched.
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, string(content))
}

func TestProcessFileWrite(t *testing.T) {
	path := writeTemp(t, "dirty.php", "<?php\necho   \"hello\"  ;\n")

	opts := PipelineOptions{
		Write:  true,
		Backup: fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar},
	}
	result, err := ProcessFile(context.Background(), path, style.NewConfig(), opts)
	require.NoError(t, err)
	assert.True(t, result.Written)
	assert.True(t, result.BackupCreated)
	assert.Equal(t, "formatted (backup created)", result.Summary())

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "<?php\n\necho 'hello';\n", string(content))

	backup, err := os.ReadFile(fsutil.BackupPath(path, fsutil.BackupModeSidecar))
	require.NoError(t, err)
	assert.Equal(t, "<?php\necho   \"hello\"  ;\n", string(backup))
}

func TestProcessFileWriteWithoutBackup(t *testing.T) {
	path := writeTemp(t, "dirty.php", "<?php\necho   \"hello\"  ;\n")

	result, err := ProcessFile(context.Background(), path, style.NewConfig(), PipelineOptions{Write: true})
	require.NoError(t, err)
	assert.True(t, result.Written)
	assert.False(t, result.BackupCreated)

	_, err = os.Stat(fsutil.BackupPath(path, fsutil.BackupModeSidecar))
	assert.True(t, os.IsNotExist(err))
}

func TestProcessFilePreservesMode(t *testing.T) {
	path := writeTemp(t, "script.php", "<?php\necho   1  ;\n")
	require.NoError(t, os.Chmod(path, 0o755))

	_, err := ProcessFile(context.Background(), path, style.NewConfig(), PipelineOptions{Write: true})
	require.NoError(t, err)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o755), info.Mode().Perm())
}

func TestProcessFileDiff(t *testing.T) {
	path := writeTemp(t, "dirty.php", "<?php\necho   \"hello\"  ;\n")

	result, err := ProcessFile(context.Background(), path, style.NewConfig(), PipelineOptions{Diff: true})
	require.NoError(t, err)
	require.NotNil(t, result.Diff)
	assert.True(t, result.Diff.HasChanges())
	assert.Contains(t, result.Diff.String(), "+echo 'hello';")
}

func TestProcessFileParseFailure(t *testing.T) {
	path := writeTemp(t, "broken.php", "<?php if (\n")

	_, err := ProcessFile(context.Background(), path, style.NewConfig(), PipelineOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrParseFailure)
}

func TestProcessFileMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone.php")

	_, err := ProcessFile(context.Background(), path, style.NewConfig(), PipelineOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrFileNotFound)
}

func TestProcessFileCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	path := writeTemp(t, "dirty.php", "<?php\necho   1  ;\n")
	_, err := ProcessFile(ctx, path, style.NewConfig(), PipelineOptions{Write: true})
	require.Error(t, err)
}

func TestBackupConfigFromStyle(t *testing.T) {
	cfg := style.NewConfig()
	bc := BackupConfigFromStyle(cfg)
	assert.True(t, bc.Enabled)
	assert.Equal(t, fsutil.BackupModeSidecar, bc.Mode)

	cfg.Backups.Enabled = false
	cfg.Backups.Mode = "none"
	bc = BackupConfigFromStyle(cfg)
	assert.False(t, bc.Enabled)
	assert.Equal(t, fsutil.BackupModeNone, bc.Mode)

	bc = BackupConfigFromStyle(nil)
	assert.False(t, bc.Enabled)
}
