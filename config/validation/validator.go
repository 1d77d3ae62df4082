package validation

import (
	"codexmgr/config/models"
	"codexmgr/internal/errs"
)

// Validator validates profile records and identifiers
type Validator struct {
}

// NewValidator creates a new Validator
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateProfileID checks that id is non-empty and only uses [A-Za-z0-9_-].
// Profile ids are used as filename stems, so this runs before any path is built.
func (v *Validator) ValidateProfileID(id string) error {
	if id == "" {
		return errs.InvalidArgument("profile id cannot be empty")
	}
	for _, c := range id {
		isAlnum := (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
		if !isAlnum && c != '-' && c != '_' {
			return errs.InvalidArgument("invalid profile id %q", id)
		}
	}
	return nil
}

// ValidateProfile checks the parts of a profile codexmgr relies on.
// Provider fields are passed through to Codex as-is and are not checked here.
func (v *Validator) ValidateProfile(p *models.Profile) error {
	if p == nil {
		return errs.InvalidArgument("profile cannot be nil")
	}
	if p.ID != "" {
		if err := v.ValidateProfileID(p.ID); err != nil {
			return err
		}
	}
	for id := range p.Providers {
		if id == "" {
			return errs.InvalidArgument("provider id cannot be empty")
		}
	}
	return nil
}
