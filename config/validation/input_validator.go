package validation

import (
	"fmt"
	"strings"

	"codexmgr/internal/utils"
)

// Reasoning effort levels accepted by Codex.
var ReasoningEfforts = []string{"minimal", "low", "medium", "high", "xhigh"}

// InputValidator validates interactive and flag input
type InputValidator struct {
}

// NewInputValidator creates a new InputValidator
func NewInputValidator() *InputValidator {
	return &InputValidator{}
}

// ValidateName checks a profile display name
func (iv *InputValidator) ValidateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if len(name) > 100 {
		return fmt.Errorf("name is too long (max 100 characters)")
	}
	return nil
}

// ValidateProviderID checks a provider id used as a TOML table key
func (iv *InputValidator) ValidateProviderID(id string) error {
	if id == "" {
		return fmt.Errorf("provider id cannot be empty")
	}
	if strings.ContainsAny(id, " .\"'[]") {
		return fmt.Errorf("provider id contains invalid characters")
	}
	return nil
}

// ValidateURL checks if a URL is valid; empty is allowed
func (iv *InputValidator) ValidateURL(url string) error {
	if url != "" && !utils.ValidateURL(url) {
		return fmt.Errorf("invalid URL format")
	}
	return nil
}

// ValidateEffort checks a reasoning effort level; empty is allowed
func (iv *InputValidator) ValidateEffort(effort string) error {
	if effort == "" {
		return nil
	}
	for _, e := range ReasoningEfforts {
		if e == effort {
			return nil
		}
	}
	return fmt.Errorf("unknown reasoning effort %q (expected one of %s)", effort, strings.Join(ReasoningEfforts, ", "))
}
