package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"time"

	"codexmgr/internal/errs"
)

// Backup constants
const (
	// DefaultBackupRetention is the default number of backups to keep per file
	DefaultBackupRetention = 3

	backupTimeFormat = "20060102150405.000000000"
)

// BackupManager keeps timestamped copies of files in a dedicated directory
type BackupManager struct {
	// Dir is where backup copies are written
	Dir string
	// MaxBackups is the maximum number of backups to retain per file
	MaxBackups int

	now func() time.Time
}

// NewBackupManager creates a BackupManager storing copies under dir
func NewBackupManager(dir string, maxBackups int) *BackupManager {
	if maxBackups <= 0 {
		maxBackups = DefaultBackupRetention
	}
	return &BackupManager{
		Dir:        dir,
		MaxBackups: maxBackups,
		now:        time.Now,
	}
}

func (bm *BackupManager) pattern(filePath string) string {
	return filepath.Join(bm.Dir, filepath.Base(filePath)+".backup-*")
}

// CreateBackup copies filePath to <Dir>/<base>.backup-<timestamp>-<pid>.
// A missing source file is not backed up and yields an empty path.
func (bm *BackupManager) CreateBackup(filePath string) (string, error) {
	if !FileExists(filePath) {
		return "", nil
	}
	if err := os.MkdirAll(bm.Dir, 0700); err != nil {
		return "", errs.IO("create backup directory", err)
	}

	timestamp := bm.now().UTC().Format(backupTimeFormat)
	backupPath := filepath.Join(bm.Dir, fmt.Sprintf("%s.backup-%s-%d", filepath.Base(filePath), timestamp, os.Getpid()))

	if err := copyFile(filePath, backupPath); err != nil {
		return "", errs.IO("create backup of "+filePath, err)
	}

	return backupPath, nil
}

// ListBackups returns the backups of filePath, oldest first
func (bm *BackupManager) ListBackups(filePath string) ([]string, error) {
	backupFiles, err := filepath.Glob(bm.pattern(filePath))
	if err != nil {
		return nil, fmt.Errorf("failed to list backups: %w", err)
	}

	// Fixed-width timestamps make lexical order chronological
	sort.Strings(backupFiles)
	return backupFiles, nil
}

// CleanupOldBackups removes old backup files, retaining only the most recent MaxBackups
func (bm *BackupManager) CleanupOldBackups(filePath string) error {
	backupFiles, err := bm.ListBackups(filePath)
	if err != nil {
		return err
	}

	numToRemove := len(backupFiles) - bm.MaxBackups
	if numToRemove <= 0 {
		return nil
	}

	for _, oldBackup := range backupFiles[:numToRemove] {
		if err := os.Remove(oldBackup); err != nil {
			return errs.IO("remove old backup "+oldBackup, err)
		}
	}

	return nil
}

// RestoreFromBackup restores filePath from a specific backup path
func (bm *BackupManager) RestoreFromBackup(filePath string, backupPath string) error {
	match, err := filepath.Match(bm.pattern(filePath), backupPath)
	if err != nil {
		return fmt.Errorf("invalid backup path: %w", err)
	}
	if !match {
		return errs.InvalidArgument("backup path %s is not a valid backup for %s", backupPath, filePath)
	}

	data, err := os.ReadFile(backupPath)
	if err != nil {
		return errs.IO("read backup "+backupPath, err)
	}
	info, err := os.Stat(backupPath)
	if err != nil {
		return errs.IO("stat backup "+backupPath, err)
	}
	return AtomicWrite(filePath, data, info.Mode().Perm())
}

// RestoreFromLatestBackup restores filePath from its most recent backup
func (bm *BackupManager) RestoreFromLatestBackup(filePath string) error {
	backupFiles, err := bm.ListBackups(filePath)
	if err != nil {
		return err
	}

	if len(backupFiles) == 0 {
		return errs.NotFound("no backup files found for %s", filePath)
	}

	return bm.RestoreFromBackup(filePath, backupFiles[len(backupFiles)-1])
}

// copyFile copies a file from src to dst, preserving permissions
func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return err
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	return os.Chmod(dst, srcInfo.Mode())
}
