package tui

import "codexmgr/config/models"

// ProfilesLoadedMsg is sent when profiles are loaded
type ProfilesLoadedMsg struct {
	Profiles []models.Profile
	ActiveID string
	Err      error
}

// ProfileSwitchedMsg is sent when a profile has been applied to Codex
type ProfileSwitchedMsg struct {
	ID   string
	Name string
	Err  error
}

// ProfileSavedMsg is sent when a profile is added or updated
type ProfileSavedMsg struct {
	Profile models.Profile
	IsNew   bool
	Err     error
}

// ProfileDuplicatedMsg is sent when a profile is copied
type ProfileDuplicatedMsg struct {
	Profile models.Profile
	Err     error
}

// ProfileDeletedMsg is sent when a profile is deleted
type ProfileDeletedMsg struct {
	ID   string
	Name string
	Err  error
}

// CurrentLoadedMsg carries the live Codex configuration
type CurrentLoadedMsg struct {
	Current models.CurrentConfig
	Err     error
}
