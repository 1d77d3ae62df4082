package storage

import (
	"os"
	"path/filepath"

	"codexmgr/internal/errs"
)

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// AtomicWrite replaces path with data so that readers observe either the
// previous content or the complete new content, never a partial write.
// Missing parent directories are created.
func AtomicWrite(path string, data []byte, perm os.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errs.IO("create directory "+dir, err)
	}

	// Create temporary file in the same directory so rename stays on one filesystem
	tmpFile, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errs.IO("create temporary file", err)
	}
	tmpName := tmpFile.Name()
	committed := false
	defer func() {
		if !committed {
			os.Remove(tmpName)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return errs.IO("write temporary file", err)
	}
	// Ensure data is flushed to disk before the rename makes it visible
	if err := tmpFile.Sync(); err != nil {
		tmpFile.Close()
		return errs.IO("sync temporary file", err)
	}
	if err := tmpFile.Close(); err != nil {
		return errs.IO("close temporary file", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		return errs.IO("set permissions on temporary file", err)
	}

	// Atomic rename - this is guaranteed to be atomic on all POSIX systems
	if err := os.Rename(tmpName, path); err != nil {
		return errs.IO("rename temporary file to "+path, err)
	}
	committed = true

	return nil
}

// ReadOptional reads path, reporting a missing file as (nil, false, nil).
func ReadOptional(path string) ([]byte, bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, false, nil
		}
		return nil, false, errs.IO("read "+path, err)
	}
	return data, true, nil
}
