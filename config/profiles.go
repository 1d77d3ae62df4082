package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"codexmgr/config/models"
	"codexmgr/config/storage"
	"codexmgr/internal/errs"
	"codexmgr/internal/providers"

	"github.com/rs/zerolog/log"
)

// DefaultProfileName is the name of the starter profile created by CreateDefault
const DefaultProfileName = "Default"

// profilePath validates id before building a path from it
func (m *Manager) profilePath(id string) (string, error) {
	if err := m.validator.ValidateProfileID(id); err != nil {
		return "", err
	}
	return m.paths.ProfilePath(id), nil
}

func readProfileFile(path string) (*models.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var profile models.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("invalid profile JSON: %w", err)
	}
	if profile.Providers == nil {
		profile.Providers = map[string]models.ProviderConfig{}
	}
	return &profile, nil
}

func (m *Manager) writeProfileFile(profile *models.Profile) error {
	path, err := m.profilePath(profile.ID)
	if err != nil {
		return err
	}
	if profile.Providers == nil {
		profile.Providers = map[string]models.ProviderConfig{}
	}
	data, err := json.MarshalIndent(profile, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize profile: %w", err)
	}
	return storage.AtomicWrite(path, data, 0600)
}

// List returns all profiles sorted by case-insensitive name.
// Records that cannot be read or parsed are skipped.
func (m *Manager) List() ([]models.Profile, error) {
	entries, err := os.ReadDir(m.paths.ProfilesDir())
	if err != nil {
		if os.IsNotExist(err) {
			return []models.Profile{}, nil
		}
		return nil, errs.IO("read profiles directory", err)
	}

	profiles := make([]models.Profile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(m.paths.ProfilesDir(), entry.Name())
		profile, err := readProfileFile(path)
		if err != nil {
			log.Debug().Err(err).Str("path", path).Msg("skipping unreadable profile")
			continue
		}
		profiles = append(profiles, *profile)
	}

	sort.SliceStable(profiles, func(i, j int) bool {
		return strings.ToLower(profiles[i].Name) < strings.ToLower(profiles[j].Name)
	})
	return profiles, nil
}

// Get returns a profile by id
func (m *Manager) Get(id string) (*models.Profile, error) {
	path, err := m.profilePath(id)
	if err != nil {
		return nil, err
	}
	profile, err := readProfileFile(path)
	if err != nil {
		return nil, errs.NotFound("profile %q: %v", id, err)
	}
	return profile, nil
}

// Save creates or updates a profile. An empty id gets a fresh id and
// creation time; an existing record keeps its original creation time; a
// new record with a caller-chosen id keeps the caller's creation time when
// set. UpdatedAt is always refreshed. The profile is updated in place.
func (m *Manager) Save(profile *models.Profile) error {
	if profile != nil && strings.TrimSpace(profile.ID) == "" {
		profile.ID = ""
	}
	if err := m.validator.ValidateProfile(profile); err != nil {
		return err
	}

	now := m.timestamp()
	if profile.ID == "" {
		profile.ID = m.newID()
		profile.CreatedAt = now
	} else {
		path, err := m.profilePath(profile.ID)
		if err != nil {
			return err
		}
		if storage.FileExists(path) {
			if old, err := readProfileFile(path); err == nil {
				profile.CreatedAt = old.CreatedAt
			} else {
				log.Warn().Err(err).Str("profile", profile.ID).Msg("existing profile unreadable, overwriting")
			}
		}
		if strings.TrimSpace(profile.CreatedAt) == "" {
			profile.CreatedAt = now
		}
	}
	profile.UpdatedAt = now

	if err := m.writeProfileFile(profile); err != nil {
		return err
	}
	log.Debug().Str("profile", profile.ID).Str("name", profile.Name).Msg("saved profile")
	return nil
}

// Delete removes a profile. A missing record is not an error. The active
// marker is cleared when it pointed at id.
func (m *Manager) Delete(id string) error {
	path, err := m.profilePath(id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return errs.IO("delete profile "+id, err)
	}

	active, err := m.GetActiveID()
	if err != nil {
		return err
	}
	if active == id {
		if err := m.clearActiveID(); err != nil {
			return err
		}
		log.Debug().Str("profile", id).Msg("cleared active profile")
	}
	return nil
}

// Duplicate copies a profile under a new id and name with fresh timestamps
func (m *Manager) Duplicate(id, newName string) (*models.Profile, error) {
	profile, err := m.Get(id)
	if err != nil {
		return nil, err
	}
	profile.ID = m.newID()
	profile.Name = newName
	profile.CreatedAt = m.timestamp()
	profile.UpdatedAt = profile.CreatedAt

	if err := m.writeProfileFile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}

// CreateDefault creates and stores a starter profile with a single custom
// provider and an empty credential.
func (m *Manager) CreateDefault() (*models.Profile, error) {
	preset, err := providers.Get(providers.Custom)
	if err != nil {
		return nil, err
	}
	provider := providers.Template(preset)
	provider.ModelReasoningEffort = models.StringPtr("high")
	provider.APIKey = models.StringPtr("")

	now := m.timestamp()
	profile := &models.Profile{
		ID:                   m.newID(),
		Name:                 DefaultProfileName,
		CreatedAt:            now,
		UpdatedAt:            now,
		Providers:            map[string]models.ProviderConfig{providers.Custom: provider},
		ModelProvider:        providers.Custom,
		Model:                preset.DefaultModel(),
		ModelReasoningEffort: models.StringPtr("high"),
		APIKey:               models.StringPtr(""),
	}

	if err := m.writeProfileFile(profile); err != nil {
		return nil, err
	}
	return profile, nil
}
