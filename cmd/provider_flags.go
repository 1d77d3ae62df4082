package cmd

import (
	"strings"

	"codexmgr/config/models"
	"codexmgr/config/validation"
	"codexmgr/internal/errs"
	"codexmgr/internal/providers"

	"github.com/spf13/cobra"
)

// providerFlags are the provider fields settable from the command line.
// Only flags the user actually passed are applied.
type providerFlags struct {
	preset             string
	displayName        string
	baseURL            string
	wireAPI            string
	model              string
	effort             string
	apiKey             string
	envKey             string
	envKeyInstructions string
	requiresOpenAIAuth bool
	headers            []string
	queryParams        []string
}

func (f *providerFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.preset, "preset", "p", "", "Start from a built-in provider preset ("+joinPresets()+")")
	flags.StringVar(&f.displayName, "display-name", "", "Provider display name")
	flags.StringVarP(&f.baseURL, "base-url", "u", "", "Provider base URL")
	flags.StringVar(&f.wireAPI, "wire-api", "", "Wire protocol (responses or chat)")
	flags.StringVarP(&f.model, "model", "m", "", "Model to use with this provider")
	flags.StringVarP(&f.effort, "effort", "e", "", "Reasoning effort (minimal, low, medium, high, xhigh)")
	flags.StringVarP(&f.apiKey, "api-key", "k", "", "API key written to auth.json when this provider is applied")
	flags.StringVar(&f.envKey, "env-key", "", "Environment variable Codex reads the key from")
	flags.StringVar(&f.envKeyInstructions, "env-key-instructions", "", "Hint shown when the environment variable is missing")
	flags.BoolVar(&f.requiresOpenAIAuth, "requires-openai-auth", false, "Whether the provider uses OpenAI authentication")
	flags.StringArrayVar(&f.headers, "header", nil, "HTTP header KEY=VALUE (repeatable, empty value removes)")
	flags.StringArrayVar(&f.queryParams, "query", nil, "Query parameter KEY=VALUE (repeatable, empty value removes)")
}

func joinPresets() string {
	return strings.Join(providers.List(), ", ")
}

// template returns the starting point for a new provider entry
func (f *providerFlags) template(providerID string) (models.ProviderConfig, error) {
	if f.preset != "" {
		preset, err := providers.Get(f.preset)
		if err != nil {
			return models.ProviderConfig{}, errs.InvalidArgument("%v (available: %s)", err, joinPresets())
		}
		return providers.Template(preset), nil
	}
	if preset, err := providers.Get(providerID); err == nil {
		return providers.Template(preset), nil
	}
	preset, err := providers.Get(providers.Custom)
	if err != nil {
		return models.ProviderConfig{}, err
	}
	return providers.Template(preset), nil
}

// apply overlays the flags the user set onto provider
func (f *providerFlags) apply(cmd *cobra.Command, provider *models.ProviderConfig) error {
	iv := validation.NewInputValidator()
	flags := cmd.Flags()

	if flags.Changed("display-name") {
		provider.Name = f.displayName
	}
	if flags.Changed("base-url") {
		if err := iv.ValidateURL(f.baseURL); err != nil {
			return errs.InvalidArgument("--base-url: %v", err)
		}
		provider.BaseURL = f.baseURL
	}
	if flags.Changed("wire-api") {
		if f.wireAPI != "" && f.wireAPI != "responses" && f.wireAPI != "chat" {
			return errs.InvalidArgument("--wire-api must be responses or chat, got %q", f.wireAPI)
		}
		provider.WireAPI = f.wireAPI
	}
	if flags.Changed("model") {
		provider.Model = optional(f.model)
	}
	if flags.Changed("effort") {
		if err := iv.ValidateEffort(f.effort); err != nil {
			return errs.InvalidArgument("--effort: %v", err)
		}
		provider.ModelReasoningEffort = optional(f.effort)
	}
	if flags.Changed("api-key") {
		provider.APIKey = optional(f.apiKey)
	}
	if flags.Changed("env-key") {
		provider.EnvKey = f.envKey
	}
	if flags.Changed("env-key-instructions") {
		provider.EnvKeyInstructions = f.envKeyInstructions
	}
	if flags.Changed("requires-openai-auth") {
		provider.RequiresOpenAIAuth = models.BoolPtr(f.requiresOpenAIAuth)
	}

	var err error
	if provider.HTTPHeaders, err = mergePairs(provider.HTTPHeaders, f.headers); err != nil {
		return err
	}
	if provider.QueryParams, err = mergePairs(provider.QueryParams, f.queryParams); err != nil {
		return err
	}
	return nil
}

func mergePairs(dst map[string]string, values []string) (map[string]string, error) {
	if len(values) == 0 {
		return dst, nil
	}
	pairs, err := parsePairs(values)
	if err != nil {
		return nil, err
	}
	if dst == nil {
		dst = map[string]string{}
	}
	for k, v := range pairs {
		if v == "" {
			delete(dst, k)
		} else {
			dst[k] = v
		}
	}
	if len(dst) == 0 {
		return nil, nil
	}
	return dst, nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return models.StringPtr(s)
}
