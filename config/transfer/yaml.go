// Package transfer moves profiles in and out of the store as YAML documents.
package transfer

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"codexmgr/config/models"
	"codexmgr/config/validation"
	"codexmgr/internal/errs"

	"go.yaml.in/yaml/v3"
)

// Export serializes a profile as YAML. With redact set, the profile and
// provider API keys are left out.
func Export(p *models.Profile, redact bool) ([]byte, error) {
	if p == nil {
		return nil, errs.InvalidArgument("profile cannot be nil")
	}
	out := *p
	if redact {
		out.APIKey = nil
		out.Providers = make(map[string]models.ProviderConfig, len(p.Providers))
		for id, provider := range p.Providers {
			provider.APIKey = nil
			out.Providers[id] = provider
		}
	}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&out); err != nil {
		return nil, fmt.Errorf("failed to encode profile: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode profile: %w", err)
	}
	return buf.Bytes(), nil
}

// Import decodes a YAML profile. Unknown fields are rejected. Unless keepID
// is set the id and timestamps are cleared so the store assigns fresh ones.
func Import(data []byte, keepID bool) (*models.Profile, error) {
	var p models.Profile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errs.InvalidArgument("empty profile document")
		}
		return nil, errs.Parse("profile YAML", err)
	}

	if !keepID {
		p.ID = ""
		p.CreatedAt = ""
		p.UpdatedAt = ""
	}
	if p.Providers == nil {
		p.Providers = map[string]models.ProviderConfig{}
	}
	if err := validation.NewValidator().ValidateProfile(&p); err != nil {
		return nil, err
	}
	return &p, nil
}
