// Package sync projects a profile onto the Codex CLI's live files and reads
// those files back into profile shape.
//
// Everything here is pure: callers own reading and writing the files.
package sync

import (
	"sort"

	"codexmgr/config/codec"
	"codexmgr/config/models"
)

// Top-level config.toml keys owned by codexmgr. Every other key is passthrough.
const (
	KeyModelProvider   = "model_provider"
	KeyModel           = "model"
	KeyReasoningEffort = "model_reasoning_effort"
	KeyModelProviders  = "model_providers"
)

// Resolution is the effective provider selection of a profile.
type Resolution struct {
	// ProviderID is written to model_provider. It is the profile's raw
	// ModelProvider when no provider could be resolved.
	ProviderID string
	// Provider is nil when the profile has no providers.
	Provider *models.ProviderConfig
	Model    string
	// Effort and APIKey are nil when neither provider nor profile set them.
	Effort *string
	APIKey *string
}

// Resolve picks the authoritative provider and the effective model, effort
// and credential. The provider named by ModelProvider wins; otherwise the
// provider with the lexicographically smallest id is used. Provider values
// win over the profile-level fallbacks.
func Resolve(p *models.Profile) Resolution {
	r := Resolution{ProviderID: p.ModelProvider}

	if provider, ok := p.Providers[p.ModelProvider]; ok {
		r.Provider = &provider
	} else if len(p.Providers) > 0 {
		ids := make([]string, 0, len(p.Providers))
		for id := range p.Providers {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		provider := p.Providers[ids[0]]
		r.ProviderID = ids[0]
		r.Provider = &provider
	}

	r.Model = p.Model
	r.Effort = p.ModelReasoningEffort
	r.APIKey = p.APIKey
	if r.Provider != nil {
		if r.Provider.Model != nil && *r.Provider.Model != "" {
			r.Model = *r.Provider.Model
		}
		if r.Provider.ModelReasoningEffort != nil {
			r.Effort = r.Provider.ModelReasoningEffort
		}
		if r.Provider.APIKey != nil {
			r.APIKey = r.Provider.APIKey
		}
	}
	return r
}

// MergeConfig writes the resolution into doc in place and returns it.
// model_reasoning_effort is removed when no non-empty effort was resolved,
// and model_providers is rebuilt from the profile (absent when it has none).
func MergeConfig(doc codec.Document, p *models.Profile, r Resolution) codec.Document {
	if doc == nil {
		doc = codec.Document{}
	}

	doc[KeyModelProvider] = r.ProviderID
	doc[KeyModel] = r.Model
	if r.Effort != nil && *r.Effort != "" {
		doc[KeyReasoningEffort] = *r.Effort
	} else {
		delete(doc, KeyReasoningEffort)
	}

	delete(doc, KeyModelProviders)
	if len(p.Providers) > 0 {
		providers := make(map[string]any, len(p.Providers))
		for id, provider := range p.Providers {
			providers[id] = codec.ProviderToTable(provider)
		}
		doc[KeyModelProviders] = providers
	}
	return doc
}
