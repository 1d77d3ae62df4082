package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"codexmgr/internal/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAtomicWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "config.toml")

	require.NoError(t, AtomicWrite(path, []byte("model = \"a\"\n"), 0600))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "model = \"a\"\n", string(data))

	require.NoError(t, AtomicWrite(path, []byte("model = \"b\"\n"), 0600))
	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "model = \"b\"\n", string(data))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	// no temporary files left behind
	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestAtomicWriteFailureKeepsOldContent(t *testing.T) {
	dir := t.TempDir()
	// a directory at the target path makes the final rename fail
	target := filepath.Join(dir, "auth.json")
	require.NoError(t, os.MkdirAll(filepath.Join(target, "child"), 0755))

	err := AtomicWrite(target, []byte("{}"), 0600)
	require.Error(t, err)
	assert.ErrorIs(t, err, errs.ErrIO)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary file must be removed on failure")
}

func TestReadOptional(t *testing.T) {
	dir := t.TempDir()
	data, ok, err := ReadOptional(filepath.Join(dir, "missing"))
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Nil(t, data)

	path := filepath.Join(dir, "present")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0600))
	data, ok, err = ReadOptional(path)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "x", string(data))
}

func TestBackupManager(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "codex", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(src), 0755))

	bm := NewBackupManager(filepath.Join(dir, "backups"), 2)
	tick := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	bm.now = func() time.Time {
		tick = tick.Add(time.Second)
		return tick
	}

	t.Run("missing source is skipped", func(t *testing.T) {
		path, err := bm.CreateBackup(src)
		require.NoError(t, err)
		assert.Empty(t, path)
	})

	for _, content := range []string{"v1", "v2", "v3"} {
		require.NoError(t, os.WriteFile(src, []byte(content), 0600))
		path, err := bm.CreateBackup(src)
		require.NoError(t, err)
		require.NotEmpty(t, path)
		require.NoError(t, bm.CleanupOldBackups(src))
	}

	backups, err := bm.ListBackups(src)
	require.NoError(t, err)
	require.Len(t, backups, 2)
	data, err := os.ReadFile(backups[0])
	require.NoError(t, err)
	assert.Equal(t, "v2", string(data))

	require.NoError(t, os.WriteFile(src, []byte("broken"), 0600))
	require.NoError(t, bm.RestoreFromLatestBackup(src))
	data, err = os.ReadFile(src)
	require.NoError(t, err)
	assert.Equal(t, "v3", string(data))

	t.Run("foreign backup path rejected", func(t *testing.T) {
		err := bm.RestoreFromBackup(src, filepath.Join(dir, "other.backup-1"))
		assert.ErrorIs(t, err, errs.ErrInvalidArgument)
	})

	t.Run("no backups", func(t *testing.T) {
		err := bm.RestoreFromLatestBackup(filepath.Join(dir, "codex", "auth.json"))
		assert.ErrorIs(t, err, errs.ErrNotFound)
	})
}
