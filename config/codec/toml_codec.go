// Package codec converts between provider records and the Codex CLI's
// config.toml representation.
package codec

import (
	"bytes"
	"fmt"
	"strings"

	"codexmgr/config/models"
	"codexmgr/config/storage"
	"codexmgr/internal/errs"

	"github.com/BurntSushi/toml"
)

// Keys of a [model_providers.<id>] table.
const (
	KeyName               = "name"
	KeyBaseURL            = "base_url"
	KeyWireAPI            = "wire_api"
	KeyRequiresOpenAIAuth = "requires_openai_auth"
	KeyEnvKey             = "env_key"
	KeyEnvKeyInstructions = "env_key_instructions"
	KeyHTTPHeaders        = "http_headers"
	KeyQueryParams        = "query_params"
)

// Document is a decoded TOML document.
type Document = map[string]any

// DecodeDocument parses TOML. Empty or whitespace-only input is an empty document.
func DecodeDocument(data []byte) (Document, error) {
	doc := Document{}
	if strings.TrimSpace(string(data)) == "" {
		return doc, nil
	}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, errs.Parse("config.toml", err)
	}
	return doc, nil
}

// EncodeDocument serializes a document. Plain keys are written before tables.
func EncodeDocument(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := toml.NewEncoder(&buf)
	enc.Indent = ""
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to serialize config.toml: %w", err)
	}
	return buf.Bytes(), nil
}

// ReadDocument reads and decodes a TOML file; a missing file is an empty document.
func ReadDocument(path string) (Document, error) {
	data, ok, err := storage.ReadOptional(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return Document{}, nil
	}
	return DecodeDocument(data)
}

// ProviderToTable converts a provider into its config.toml table.
// Model, ModelReasoningEffort and APIKey are never included.
func ProviderToTable(p models.ProviderConfig) map[string]any {
	table := map[string]any{}
	putString(table, KeyName, p.Name)
	putString(table, KeyBaseURL, p.BaseURL)
	putString(table, KeyWireAPI, p.WireAPI)
	if p.RequiresOpenAIAuth != nil {
		table[KeyRequiresOpenAIAuth] = *p.RequiresOpenAIAuth
	}
	putString(table, KeyEnvKey, p.EnvKey)
	putString(table, KeyEnvKeyInstructions, p.EnvKeyInstructions)
	if p.HTTPHeaders != nil {
		table[KeyHTTPHeaders] = stringTable(p.HTTPHeaders)
	}
	if p.QueryParams != nil {
		table[KeyQueryParams] = stringTable(p.QueryParams)
	}
	return table
}

// TableToProvider parses a config.toml provider table. Missing or
// mistyped optional fields are left unset.
func TableToProvider(value any) (models.ProviderConfig, error) {
	table, ok := value.(map[string]any)
	if !ok {
		return models.ProviderConfig{}, errs.Parse("provider config", fmt.Errorf("expected a table, got %T", value))
	}

	p := models.ProviderConfig{
		Name:               getString(table, KeyName),
		BaseURL:            getString(table, KeyBaseURL),
		WireAPI:            getString(table, KeyWireAPI),
		EnvKey:             getString(table, KeyEnvKey),
		EnvKeyInstructions: getString(table, KeyEnvKeyInstructions),
		HTTPHeaders:        getStringMap(table, KeyHTTPHeaders),
		QueryParams:        getStringMap(table, KeyQueryParams),
	}
	if b, ok := table[KeyRequiresOpenAIAuth].(bool); ok {
		p.RequiresOpenAIAuth = &b
	}
	return p, nil
}

func putString(table map[string]any, key, value string) {
	if value != "" {
		table[key] = value
	}
}

func stringTable(m map[string]string) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func getString(table map[string]any, key string) string {
	s, _ := table[key].(string)
	return s
}

func getStringMap(table map[string]any, key string) map[string]string {
	switch m := table[key].(type) {
	case map[string]any:
		out := make(map[string]string, len(m))
		for k, v := range m {
			if s, ok := v.(string); ok {
				out[k] = s
			}
		}
		return out
	case map[string]string:
		out := make(map[string]string, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out
	default:
		return nil
	}
}
