package fsutil

import (
	"fmt"
	"os"
)

// BackupMode selects where backups live.
type BackupMode string

const (
	// BackupModeSidecar keeps the backup next to the original file.
	BackupModeSidecar BackupMode = "sidecar"

	// BackupModeNone disables backups.
	BackupModeNone BackupMode = "none"
)

// BackupSuffix is appended to the original path in sidecar mode.
const BackupSuffix = ".phpfmt.bak"

// BackupConfig controls backup creation before in-place writes.
type BackupConfig struct {
	Enabled bool
	Mode    BackupMode
}

// BackupPath returns the backup location for path, or empty when
// backups are off.
func BackupPath(path string, mode BackupMode) string {
	if mode == BackupModeNone {
		return ""
	}
	return path + BackupSuffix
}

// CreateBackup copies the file to its backup location unless a backup
// already exists. Keeping the first backup means repeated runs never
// overwrite the pre-format original.
func CreateBackup(path string, cfg BackupConfig) (bool, error) {
	if !cfg.Enabled || cfg.Mode == BackupModeNone {
		return false, nil
	}

	backupPath := BackupPath(path, cfg.Mode)
	if _, err := os.Stat(backupPath); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("stat backup path: %w", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read original for backup: %w", err)
	}
	stat, err := os.Stat(path)
	if err != nil {
		return false, fmt.Errorf("stat original for backup: %w", err)
	}
	if err := WriteAtomic(backupPath, content, stat.Mode()); err != nil {
		return false, fmt.Errorf("write backup: %w", err)
	}
	return true, nil
}

// RestoreBackup writes the backup content back over the original.
// It reports false when no backup exists.
func RestoreBackup(path string, mode BackupMode) (bool, error) {
	backupPath := BackupPath(path, mode)
	if backupPath == "" {
		return false, nil
	}

	content, err := os.ReadFile(backupPath)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("read backup: %w", err)
	}
	stat, err := os.Stat(backupPath)
	if err != nil {
		return false, fmt.Errorf("stat backup: %w", err)
	}
	if err := WriteAtomic(path, content, stat.Mode()); err != nil {
		return false, fmt.Errorf("restore from backup: %w", err)
	}
	return true, nil
}
