package utils

import "testing"

func TestMaskAPIKey(t *testing.T) {
	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{"Empty key", "", "****"},
		{"Exactly 8 chars", "12345678", "****"},
		{"Normal key", "sk-abcdefghijkl", "sk-a****ijkl"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := MaskAPIKey(tt.key); got != tt.expected {
				t.Errorf("MaskAPIKey(%q) = %q, want %q", tt.key, got, tt.expected)
			}
		})
	}
}

func TestMaskOptional(t *testing.T) {
	empty := ""
	key := "sk-abcdefghijkl"
	if got := MaskOptional(nil); got != "-" {
		t.Errorf("MaskOptional(nil) = %q, want -", got)
	}
	if got := MaskOptional(&empty); got != "-" {
		t.Errorf("MaskOptional(\"\") = %q, want -", got)
	}
	if got := MaskOptional(&key); got != "sk-a****ijkl" {
		t.Errorf("MaskOptional(key) = %q", got)
	}
}

func TestValidateURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"", false},
		{"https://api.openai.com/v1", true},
		{"http://localhost:11434/v1", true},
		{"ftp://example.com", false},
		{"api.example.com", false},
		{"https://", false},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			if got := ValidateURL(tt.url); got != tt.want {
				t.Errorf("ValidateURL(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestExtractHost(t *testing.T) {
	if got := ExtractHost("https://openrouter.ai/api/v1"); got != "openrouter.ai" {
		t.Errorf("ExtractHost = %q, want openrouter.ai", got)
	}
	if got := ExtractHost("not a url"); got != "" {
		t.Errorf("ExtractHost = %q, want empty", got)
	}
}
