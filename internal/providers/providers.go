package providers

import (
	"errors"
	"sort"

	"codexmgr/config/models"
)

// Provider describes a well-known Codex model provider used as a template
// when creating profiles.
type Provider interface {
	// ID returns the provider id used as the model_providers key (e.g., "openrouter")
	ID() string
	// DisplayName returns the human readable provider name
	DisplayName() string
	// DefaultBaseURL returns the default base URL, empty for Codex's built-in default
	DefaultBaseURL() string
	// WireAPI returns the wire protocol ("responses" or "chat")
	WireAPI() string
	// RequiresOpenAIAuth reports whether Codex should send OpenAI auth
	RequiresOpenAIAuth() bool
	// EnvKey returns the environment variable Codex reads the key from, if any
	EnvKey() string
	// DefaultModel returns the default model for the provider
	DefaultModel() string
}

// registry stores all registered providers
var registry = make(map[string]Provider)

// Register registers a new provider
func Register(provider Provider) {
	registry[provider.ID()] = provider
}

// Get returns a provider by id
func Get(id string) (Provider, error) {
	provider, ok := registry[id]
	if !ok {
		return nil, errors.New("unknown provider: " + id)
	}
	return provider, nil
}

// List returns all registered provider ids, sorted
func List() []string {
	list := make([]string, 0, len(registry))
	for id := range registry {
		list = append(list, id)
	}
	sort.Strings(list)
	return list
}

// Template builds a profile provider entry from a registered provider.
// The private model field is pre-filled with the provider's default model.
func Template(p Provider) models.ProviderConfig {
	cfg := models.ProviderConfig{
		Name:               p.DisplayName(),
		BaseURL:            p.DefaultBaseURL(),
		WireAPI:            p.WireAPI(),
		RequiresOpenAIAuth: models.BoolPtr(p.RequiresOpenAIAuth()),
		EnvKey:             p.EnvKey(),
	}
	if model := p.DefaultModel(); model != "" {
		cfg.Model = models.StringPtr(model)
	}
	return cfg
}

// preset is a data-only Provider
type preset struct {
	id           string
	name         string
	baseURL      string
	wireAPI      string
	openAIAuth   bool
	envKey       string
	defaultModel string
}

func (p *preset) ID() string               { return p.id }
func (p *preset) DisplayName() string      { return p.name }
func (p *preset) DefaultBaseURL() string   { return p.baseURL }
func (p *preset) WireAPI() string          { return p.wireAPI }
func (p *preset) RequiresOpenAIAuth() bool { return p.openAIAuth }
func (p *preset) EnvKey() string           { return p.envKey }
func (p *preset) DefaultModel() string     { return p.defaultModel }

// Built-in provider ids
const (
	Custom     = "custom"
	OpenAI     = "openai"
	Azure      = "azure"
	OpenRouter = "openrouter"
	Ollama     = "ollama"
)

func init() {
	Register(&preset{id: Custom, name: "Custom Provider", wireAPI: "responses", openAIAuth: true, defaultModel: "gpt-5.2"})
	Register(&preset{id: OpenAI, name: "OpenAI", baseURL: "https://api.openai.com/v1", wireAPI: "responses", openAIAuth: true, defaultModel: "gpt-5.2"})
	Register(&preset{id: Azure, name: "Azure OpenAI", baseURL: "https://YOUR_PROJECT.openai.azure.com/openai", wireAPI: "responses", envKey: "AZURE_OPENAI_API_KEY", defaultModel: "gpt-5"})
	Register(&preset{id: OpenRouter, name: "OpenRouter", baseURL: "https://openrouter.ai/api/v1", wireAPI: "chat", envKey: "OPENROUTER_API_KEY", defaultModel: "openai/gpt-5"})
	Register(&preset{id: Ollama, name: "Ollama", baseURL: "http://localhost:11434/v1", wireAPI: "chat", defaultModel: "gpt-oss:20b"})
}
