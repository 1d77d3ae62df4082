package cmd

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"codexmgr/config"
	"codexmgr/config/models"
	"codexmgr/config/validation"
	"codexmgr/internal/errs"
	"codexmgr/internal/utils"

	"github.com/charmbracelet/lipgloss"
)

var (
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	headingStyle = lipgloss.NewStyle().Bold(true)
)

// newManager creates the config manager honoring the global flags
func newManager() (*config.Manager, error) {
	m, err := config.NewConfigManager(config.WithBackups(!noBackup))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize config manager: %w", err)
	}
	return m, nil
}

// findProfile looks a profile up by id, then by case-insensitive name
func findProfile(m *config.Manager, ref string) (*models.Profile, error) {
	if validation.NewValidator().ValidateProfileID(ref) == nil {
		if p, err := m.Get(ref); err == nil {
			return p, nil
		}
	}

	profiles, err := m.List()
	if err != nil {
		return nil, err
	}
	var matches []models.Profile
	for _, p := range profiles {
		if strings.EqualFold(p.Name, ref) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return nil, errs.NotFound("profile %q", ref)
	case 1:
		return &matches[0], nil
	default:
		return nil, errs.InvalidArgument("profile name %q is ambiguous, use the id", ref)
	}
}

// isTerminal checks if stdin is a terminal
func isTerminal() bool {
	stat, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return (stat.Mode() & os.ModeCharDevice) != 0
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// printProviders writes the provider tables of a profile or live config
func printProviders(w io.Writer, providers map[string]models.ProviderConfig, defaultID string) {
	if len(providers) == 0 {
		fmt.Fprintln(w, "  (no providers)")
		return
	}
	for _, id := range sortedKeys(providers) {
		p := providers[id]
		label := id
		if id == defaultID {
			label += " " + successStyle.Render("[default]")
		}
		fmt.Fprintf(w, "  %s\n", label)
		fmt.Fprintf(w, "    Name:             %s\n", orDash(p.Name))
		fmt.Fprintf(w, "    Base URL:         %s\n", orDash(p.BaseURL))
		fmt.Fprintf(w, "    Wire API:         %s\n", orDash(p.WireAPI))
		if p.RequiresOpenAIAuth != nil {
			fmt.Fprintf(w, "    OpenAI auth:      %t\n", *p.RequiresOpenAIAuth)
		}
		if p.EnvKey != "" {
			fmt.Fprintf(w, "    Env key:          %s\n", p.EnvKey)
		}
		if p.EnvKeyInstructions != "" {
			fmt.Fprintf(w, "    Env key help:     %s\n", p.EnvKeyInstructions)
		}
		for _, k := range sortedKeys(p.HTTPHeaders) {
			fmt.Fprintf(w, "    Header:           %s=%s\n", k, p.HTTPHeaders[k])
		}
		for _, k := range sortedKeys(p.QueryParams) {
			fmt.Fprintf(w, "    Query param:      %s=%s\n", k, p.QueryParams[k])
		}
		fmt.Fprintf(w, "    Model:            %s\n", orDash(models.Deref(p.Model)))
		fmt.Fprintf(w, "    Reasoning effort: %s\n", orDash(models.Deref(p.ModelReasoningEffort)))
		fmt.Fprintf(w, "    API key:          %s\n", utils.MaskOptional(p.APIKey))
	}
}

// parsePairs parses repeated KEY=VALUE flag values
func parsePairs(values []string) (map[string]string, error) {
	pairs := make(map[string]string, len(values))
	for _, v := range values {
		k, val, ok := strings.Cut(v, "=")
		if !ok || strings.TrimSpace(k) == "" {
			return nil, errs.InvalidArgument("expected KEY=VALUE, got %q", v)
		}
		pairs[strings.TrimSpace(k)] = val
	}
	return pairs, nil
}
