package models

// ProviderConfig is one endpoint configuration a profile can select among.
// It mirrors a [model_providers.<id>] table of the Codex config, plus three
// codexmgr-only fields (Model, ModelReasoningEffort, APIKey) that are never
// written into that table.
type ProviderConfig struct {
	Name                 string            `json:"name,omitempty" yaml:"name,omitempty"`
	BaseURL              string            `json:"baseUrl,omitempty" yaml:"baseUrl,omitempty"`
	WireAPI              string            `json:"wireApi,omitempty" yaml:"wireApi,omitempty"`
	RequiresOpenAIAuth   *bool             `json:"requiresOpenaiAuth,omitempty" yaml:"requiresOpenaiAuth,omitempty"`
	EnvKey               string            `json:"envKey,omitempty" yaml:"envKey,omitempty"`
	EnvKeyInstructions   string            `json:"envKeyInstructions,omitempty" yaml:"envKeyInstructions,omitempty"`
	HTTPHeaders          map[string]string `json:"httpHeaders,omitempty" yaml:"httpHeaders,omitempty"`
	QueryParams          map[string]string `json:"queryParams,omitempty" yaml:"queryParams,omitempty"`
	Model                *string           `json:"model,omitempty" yaml:"model,omitempty"`
	ModelReasoningEffort *string           `json:"modelReasoningEffort,omitempty" yaml:"modelReasoningEffort,omitempty"`
	APIKey               *string           `json:"apiKey,omitempty" yaml:"apiKey,omitempty"`
}

// Profile is a named bundle of providers plus the default provider pointer
// and profile-level fallbacks used when the resolved provider lacks a value.
type Profile struct {
	ID                   string                    `json:"id" yaml:"id,omitempty"`
	Name                 string                    `json:"name" yaml:"name"`
	Description          string                    `json:"description,omitempty" yaml:"description,omitempty"`
	CreatedAt            string                    `json:"createdAt" yaml:"createdAt,omitempty"`
	UpdatedAt            string                    `json:"updatedAt" yaml:"updatedAt,omitempty"`
	Providers            map[string]ProviderConfig `json:"providers" yaml:"providers,omitempty"`
	ModelProvider        string                    `json:"modelProvider" yaml:"modelProvider"`
	Model                string                    `json:"model" yaml:"model"`
	ModelReasoningEffort *string                   `json:"modelReasoningEffort,omitempty" yaml:"modelReasoningEffort,omitempty"`
	APIKey               *string                   `json:"apiKey,omitempty" yaml:"apiKey,omitempty"`
}

// ConfigStatus reports where the live Codex files are and whether they exist.
type ConfigStatus struct {
	AuthExists   bool   `json:"authExists"`
	ConfigExists bool   `json:"configExists"`
	AuthPath     string `json:"authPath"`
	ConfigPath   string `json:"configPath"`
}

// CurrentConfig is the live Codex configuration in profile shape.
type CurrentConfig struct {
	Providers            map[string]ProviderConfig `json:"providers"`
	ModelProvider        string                    `json:"modelProvider"`
	Model                string                    `json:"model"`
	ModelReasoningEffort *string                   `json:"modelReasoningEffort,omitempty"`
	APIKey               *string                   `json:"apiKey,omitempty"`
}

// StringPtr returns a pointer to s.
func StringPtr(s string) *string {
	return &s
}

// BoolPtr returns a pointer to b.
func BoolPtr(b bool) *bool {
	return &b
}

// Deref returns *s, or "" when s is nil.
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
