package sync

import (
	"codexmgr/config/codec"
	"codexmgr/config/models"

	"github.com/rs/zerolog/log"
)

// DefaultModelProvider is what Codex uses when model_provider is unset.
const DefaultModelProvider = "openai"

// ReadCurrent converts the live config.toml document and auth.json content
// into profile shape. The provider named by model_provider gets the
// top-level model, effort and credential back-filled when it lacks them,
// matching what an apply of the same state would have produced.
func ReadCurrent(doc codec.Document, auth []byte) (models.CurrentConfig, error) {
	current := models.CurrentConfig{
		Providers:     map[string]models.ProviderConfig{},
		ModelProvider: DefaultModelProvider,
	}

	if table, ok := doc[KeyModelProviders].(map[string]any); ok {
		for id, value := range table {
			provider, err := codec.TableToProvider(value)
			if err != nil {
				log.Debug().Err(err).Str("provider", id).Msg("skipping unreadable provider table")
				continue
			}
			current.Providers[id] = provider
		}
	}
	if s, ok := doc[KeyModelProvider].(string); ok {
		current.ModelProvider = s
	}
	if s, ok := doc[KeyModel].(string); ok {
		current.Model = s
	}
	if s, ok := doc[KeyReasoningEffort].(string); ok {
		current.ModelReasoningEffort = &s
	}

	apiKey, err := ReadAuthKey(auth)
	if err != nil {
		return models.CurrentConfig{}, err
	}
	current.APIKey = apiKey

	if provider, ok := current.Providers[current.ModelProvider]; ok {
		if provider.Model == nil {
			provider.Model = models.StringPtr(current.Model)
		}
		if provider.ModelReasoningEffort == nil && current.ModelReasoningEffort != nil {
			provider.ModelReasoningEffort = models.StringPtr(*current.ModelReasoningEffort)
		}
		if provider.APIKey == nil && current.APIKey != nil {
			provider.APIKey = models.StringPtr(*current.APIKey)
		}
		current.Providers[current.ModelProvider] = provider
	}

	return current, nil
}
