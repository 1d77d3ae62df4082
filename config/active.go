package config

import (
	"os"
	"strings"

	"codexmgr/config/storage"
	"codexmgr/internal/errs"
)

// GetActiveID returns the active profile id, or "" when no profile is active.
// The id is not checked against existing profiles.
func (m *Manager) GetActiveID() (string, error) {
	data, ok, err := storage.ReadOptional(m.paths.ActiveProfilePath())
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	return strings.TrimSpace(string(data)), nil
}

// SetActiveID overwrites the active-profile marker with id
func (m *Manager) SetActiveID(id string) error {
	return storage.AtomicWrite(m.paths.ActiveProfilePath(), []byte(id), 0600)
}

func (m *Manager) clearActiveID() error {
	err := os.Remove(m.paths.ActiveProfilePath())
	if err != nil && !os.IsNotExist(err) {
		return errs.IO("clear active profile", err)
	}
	return nil
}
