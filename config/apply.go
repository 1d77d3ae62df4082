package config

import (
	"encoding/json"
	"fmt"
	"os"

	"codexmgr/config/codec"
	"codexmgr/config/models"
	"codexmgr/config/storage"
	syncpkg "codexmgr/config/sync"
	"codexmgr/internal/errs"

	"github.com/rs/zerolog/log"
)

// Apply projects profile id onto the live Codex files and marks it active.
//
// config.toml keeps every key except model_provider, model,
// model_reasoning_effort and model_providers; auth.json keeps every key
// except OPENAI_API_KEY. Both documents are merged before either is
// written, but the three writes (config.toml, auth.json, active marker)
// are not transactional: a failure part-way leaves the earlier writes in
// place.
func (m *Manager) Apply(id string) error {
	profile, err := m.Get(id)
	if err != nil {
		return err
	}
	resolution := syncpkg.Resolve(profile)

	configPath := m.paths.CodexConfigPath()
	doc, err := codec.ReadDocument(configPath)
	if err != nil {
		return err
	}
	configData, err := codec.EncodeDocument(syncpkg.MergeConfig(doc, profile, resolution))
	if err != nil {
		return err
	}

	authPath := m.paths.CodexAuthPath()
	authOriginal, _, err := storage.ReadOptional(authPath)
	if err != nil {
		return err
	}
	authData, err := syncpkg.UpdateAuth(authOriginal, resolution.APIKey)
	if err != nil {
		return err
	}

	record := applyRecord{Profile: id, AppliedAt: m.timestamp()}
	err = m.replaceLiveFiles(&record, []liveWrite{
		{path: configPath, data: configData},
		{path: authPath, data: authData},
	})
	if err != nil {
		return err
	}
	if err := m.SetActiveID(id); err != nil {
		return err
	}

	log.Info().
		Str("profile", id).
		Str("provider", resolution.ProviderID).
		Str("model", resolution.Model).
		Msg("applied profile")
	return nil
}

type liveWrite struct {
	path string
	data []byte
}

// applyRecord lists the backups taken by one apply. Backup is empty for a
// live file that did not exist before that apply.
type applyRecord struct {
	Profile   string       `json:"profile"`
	AppliedAt string       `json:"appliedAt"`
	Backups   []fileBackup `json:"backups"`
}

type fileBackup struct {
	Path   string `json:"path"`
	Backup string `json:"backup,omitempty"`
}

// replaceLiveFiles backs up each file (when enabled) and atomically replaces
// it. The backups taken are recorded even when a later write fails, so
// RestoreLive can undo a partial apply.
func (m *Manager) replaceLiveFiles(record *applyRecord, writes []liveWrite) error {
	if !m.backupsEnabled {
		// An older record would make restore skip past this apply
		if err := os.Remove(m.paths.LastApplyPath()); err != nil && !os.IsNotExist(err) {
			return errs.IO("remove apply record", err)
		}
		for _, w := range writes {
			if err := storage.AtomicWrite(w.path, w.data, filePerm(w.path, 0600)); err != nil {
				return err
			}
		}
		return nil
	}

	var writeErr error
	for _, w := range writes {
		backup, err := m.backups.CreateBackup(w.path)
		if err != nil {
			writeErr = err
			break
		}
		record.Backups = append(record.Backups, fileBackup{Path: w.path, Backup: backup})
		if err := m.backups.CleanupOldBackups(w.path); err != nil {
			log.Warn().Err(err).Str("path", w.path).Msg("failed to clean up old backups")
		}
		if err := storage.AtomicWrite(w.path, w.data, filePerm(w.path, 0600)); err != nil {
			writeErr = err
			break
		}
	}

	if len(record.Backups) > 0 {
		if err := m.writeApplyRecord(record); err != nil {
			if writeErr == nil {
				return err
			}
			log.Warn().Err(err).Msg("failed to record backups")
		}
	}
	return writeErr
}

func (m *Manager) writeApplyRecord(record *applyRecord) error {
	data, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize apply record: %w", err)
	}
	return storage.AtomicWrite(m.paths.LastApplyPath(), data, 0600)
}

func (m *Manager) readApplyRecord() (*applyRecord, error) {
	data, ok, err := storage.ReadOptional(m.paths.LastApplyPath())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errs.NotFound("no recorded switch to undo in %s", m.paths.BackupDir())
	}
	var record applyRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, errs.Parse("apply record", err)
	}
	return &record, nil
}

// Status reports whether the live Codex files exist, and where they are
func (m *Manager) Status() models.ConfigStatus {
	authPath := m.paths.CodexAuthPath()
	configPath := m.paths.CodexConfigPath()
	return models.ConfigStatus{
		AuthExists:   storage.FileExists(authPath),
		ConfigExists: storage.FileExists(configPath),
		AuthPath:     authPath,
		ConfigPath:   configPath,
	}
}

// ReadCurrent reads the live Codex files into profile shape.
// Missing files yield the default configuration.
func (m *Manager) ReadCurrent() (models.CurrentConfig, error) {
	doc, err := codec.ReadDocument(m.paths.CodexConfigPath())
	if err != nil {
		return models.CurrentConfig{}, err
	}
	auth, _, err := storage.ReadOptional(m.paths.CodexAuthPath())
	if err != nil {
		return models.CurrentConfig{}, err
	}
	return syncpkg.ReadCurrent(doc, auth)
}

// RestoreLive undoes the last apply by restoring the backups it took.
// A file that did not exist before that apply is left as it is, never
// restored from an older apply's backup. The active marker is left unchanged.
func (m *Manager) RestoreLive() ([]string, error) {
	record, err := m.readApplyRecord()
	if err != nil {
		return nil, err
	}

	var restored []string
	for _, b := range record.Backups {
		if b.Backup == "" {
			log.Debug().Str("path", b.Path).Msg("no backup taken at last apply, skipping")
			continue
		}
		if err := m.backups.RestoreFromBackup(b.Path, b.Backup); err != nil {
			return restored, err
		}
		restored = append(restored, b.Path)
	}
	if len(restored) == 0 {
		return nil, errs.NotFound("the last switch (%s) replaced no existing files", record.AppliedAt)
	}
	log.Info().Str("profile", record.Profile).Strs("files", restored).Msg("restored live files")
	return restored, nil
}
