// Package config stores codexmgr profiles and applies them to the Codex CLI.
package config

import (
	"os"
	"time"

	"codexmgr/config/paths"
	"codexmgr/config/storage"
	"codexmgr/config/validation"

	"github.com/google/uuid"
)

// Manager owns the profile records, the active-profile marker and the
// apply path onto the live Codex files. It does not serialize concurrent
// callers; each individual file write is atomic.
type Manager struct {
	paths          paths.Paths
	validator      *validation.Validator
	backups        *storage.BackupManager
	backupsEnabled bool
	now            func() time.Time
	newID          func() string
}

// Option configures a Manager
type Option func(*Manager)

// WithClock overrides the clock used for profile timestamps
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithBackups enables or disables backups of the live Codex files before apply
func WithBackups(enabled bool) Option {
	return func(m *Manager) { m.backupsEnabled = enabled }
}

// WithIDGenerator overrides how new profile ids are generated
func WithIDGenerator(newID func() string) Option {
	return func(m *Manager) { m.newID = newID }
}

// NewConfigManager creates a Manager rooted at the paths resolved from the environment
func NewConfigManager(opts ...Option) (*Manager, error) {
	p, err := paths.Resolve()
	if err != nil {
		return nil, err
	}
	return NewManager(p, opts...), nil
}

// NewManager creates a Manager rooted at explicit paths
func NewManager(p paths.Paths, opts ...Option) *Manager {
	m := &Manager{
		paths:          p,
		validator:      validation.NewValidator(),
		backups:        storage.NewBackupManager(p.BackupDir(), storage.DefaultBackupRetention),
		backupsEnabled: true,
		now:            time.Now,
		newID:          uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Paths returns the paths the Manager works on
func (m *Manager) Paths() paths.Paths {
	return m.paths
}

func (m *Manager) timestamp() string {
	return m.now().UTC().Format(time.RFC3339Nano)
}

// filePerm returns the permissions of an existing file, or def when it does not exist
func filePerm(path string, def os.FileMode) os.FileMode {
	if info, err := os.Stat(path); err == nil {
		return info.Mode().Perm()
	}
	return def
}
