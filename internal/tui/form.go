package tui

import (
	"strings"

	"codexmgr/config/models"
	syncpkg "codexmgr/config/sync"
	"codexmgr/config/validation"
	"codexmgr/internal/providers"
	"codexmgr/internal/utils"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// FormField represents the index of each profile form field
const (
	FormFieldName = iota
	FormFieldProviderID
	FormFieldBaseURL
	FormFieldModel
	FormFieldEffort
	FormFieldAPIKey
	FormFieldCount // Total number of fields
)

// FormData represents the data collected from the profile form.
// The provider fields describe the profile's default provider.
type FormData struct {
	Name       string
	ProviderID string
	BaseURL    string
	Model      string
	Effort     string
	APIKey     string
}

// Validate validates the form data
func (f *FormData) Validate() error {
	iv := validation.NewInputValidator()
	if err := iv.ValidateName(f.Name); err != nil {
		return err
	}
	if err := iv.ValidateProviderID(strings.TrimSpace(f.ProviderID)); err != nil {
		return err
	}
	if err := iv.ValidateURL(strings.TrimSpace(f.BaseURL)); err != nil {
		return err
	}
	return iv.ValidateEffort(strings.TrimSpace(f.Effort))
}

// FormDataFromProfile fills the form from a profile and the provider it
// applies with. Effort and key come from the provider alone; the profile
// fallbacks are shown by FormHintsFor instead, so clearing a field leaves
// the provider value unset.
func FormDataFromProfile(p *models.Profile) FormData {
	r := syncpkg.Resolve(p)
	data := FormData{
		Name:       p.Name,
		ProviderID: r.ProviderID,
		Model:      r.Model,
	}
	if r.Provider != nil {
		data.BaseURL = r.Provider.BaseURL
		data.Effort = models.Deref(r.Provider.ModelReasoningEffort)
		data.APIKey = models.Deref(r.Provider.APIKey)
	}
	return data
}

// ApplyTo writes the form into p. The named provider is created from its
// preset (or the custom template) when missing and becomes the default.
func (f *FormData) ApplyTo(p *models.Profile) {
	providerID := strings.TrimSpace(f.ProviderID)

	if p.Providers == nil {
		p.Providers = map[string]models.ProviderConfig{}
	}
	provider, ok := p.Providers[providerID]
	if !ok {
		provider = templateFor(providerID)
	}
	provider.BaseURL = strings.TrimSpace(f.BaseURL)
	provider.Model = optional(f.Model)
	provider.ModelReasoningEffort = optional(f.Effort)
	provider.APIKey = optional(f.APIKey)
	p.Providers[providerID] = provider

	p.Name = strings.TrimSpace(f.Name)
	p.ModelProvider = providerID
	p.Model = strings.TrimSpace(f.Model)
}

func templateFor(providerID string) models.ProviderConfig {
	if preset, err := providers.Get(providerID); err == nil {
		return providers.Template(preset)
	}
	if preset, err := providers.Get(providers.Custom); err == nil {
		return providers.Template(preset)
	}
	return models.ProviderConfig{}
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return models.StringPtr(s)
}

// Form styles
var (
	formLabelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Width(14)

	formFocusedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Bold(true).
				Width(14)

	formErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	formHintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true)
)

func newInput(placeholder string, limit int) textinput.Model {
	input := textinput.New()
	input.Placeholder = placeholder
	input.CharLimit = limit
	input.Width = 40
	input.Prompt = ""
	return input
}

// FormInputs creates and initializes the profile form fields
func FormInputs() []textinput.Model {
	inputs := make([]textinput.Model, FormFieldCount)
	inputs[FormFieldName] = newInput("Work", 100)
	inputs[FormFieldProviderID] = newInput(providers.Custom, 64)
	inputs[FormFieldBaseURL] = newInput("https://api.example.com/v1", 256)
	inputs[FormFieldModel] = newInput("gpt-5.2", 128)
	inputs[FormFieldEffort] = newInput("high", 16)
	inputs[FormFieldAPIKey] = newInput("sk-...", 256)
	inputs[FormFieldAPIKey].EchoMode = textinput.EchoPassword
	inputs[FormFieldAPIKey].EchoCharacter = '•'

	inputs[FormFieldName].Focus()
	return inputs
}

// NameInputs creates the single-field form used when copying a profile
func NameInputs(name string) []textinput.Model {
	input := newInput("Copy of profile", 100)
	input.SetValue(name)
	input.Focus()
	return []textinput.Model{input}
}

// GetFormData extracts FormData from form inputs
func GetFormData(inputs []textinput.Model) FormData {
	return FormData{
		Name:       inputs[FormFieldName].Value(),
		ProviderID: inputs[FormFieldProviderID].Value(),
		BaseURL:    inputs[FormFieldBaseURL].Value(),
		Model:      inputs[FormFieldModel].Value(),
		Effort:     inputs[FormFieldEffort].Value(),
		APIKey:     inputs[FormFieldAPIKey].Value(),
	}
}

// SetFormData populates form inputs with existing data
func SetFormData(inputs []textinput.Model, data FormData) {
	inputs[FormFieldName].SetValue(data.Name)
	inputs[FormFieldProviderID].SetValue(data.ProviderID)
	inputs[FormFieldBaseURL].SetValue(data.BaseURL)
	inputs[FormFieldModel].SetValue(data.Model)
	inputs[FormFieldEffort].SetValue(data.Effort)
	inputs[FormFieldAPIKey].SetValue(data.APIKey)
}

// FormLabels returns the labels for each profile form field
func FormLabels() []string {
	return []string{
		"Name:",
		"Provider:",
		"Base URL:",
		"Model:",
		"Effort:",
		"API Key:",
	}
}

// FormHints returns the hint text for each profile form field
func FormHints() []string {
	return []string{
		"Display name of the profile",
		"Provider id (" + strings.Join(providers.List(), ", ") + " or your own)",
		"Provider base URL (optional)",
		"Model to run (optional)",
		"Reasoning effort: " + strings.Join(validation.ReasoningEfforts, ", ") + " (optional)",
		"Written to auth.json on switch (optional)",
	}
}

// FormHintsFor returns the hints for editing p, naming the profile-level
// effort and key used when the provider leaves them empty
func FormHintsFor(p *models.Profile) []string {
	hints := FormHints()
	if effort := models.Deref(p.ModelReasoningEffort); effort != "" {
		hints[FormFieldEffort] += "; empty uses the profile's " + effort
	}
	if models.Deref(p.APIKey) != "" {
		hints[FormFieldAPIKey] += "; empty uses the profile key " + utils.MaskOptional(p.APIKey)
	}
	return hints
}

// RenderForm renders a form view. labels and hints are indexed like inputs.
func RenderForm(inputs []textinput.Model, labels, hints []string, focusIndex int, title string, errorMsg string) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", 50)))
	b.WriteString("\n\n")

	for i, input := range inputs {
		if i == focusIndex {
			b.WriteString(formFocusedStyle.Render(labels[i]))
		} else {
			b.WriteString(formLabelStyle.Render(labels[i]))
		}
		b.WriteString(" ")
		b.WriteString(input.View())
		b.WriteString("\n")

		if i == focusIndex && i < len(hints) {
			b.WriteString(formLabelStyle.Render(""))
			b.WriteString(" ")
			b.WriteString(formHintStyle.Render(hints[i]))
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if errorMsg != "" {
		b.WriteString("\n")
		b.WriteString(formErrorStyle.Render("✗ " + errorMsg))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", 50)))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("Tab/↓: next │ Shift+Tab/↑: previous │ Enter: save │ Esc: cancel"))

	return b.String()
}

// NextFormField moves focus to the next form field
func NextFormField(inputs []textinput.Model, currentFocus int) int {
	inputs[currentFocus].Blur()
	nextFocus := (currentFocus + 1) % len(inputs)
	inputs[nextFocus].Focus()
	return nextFocus
}

// PrevFormField moves focus to the previous form field
func PrevFormField(inputs []textinput.Model, currentFocus int) int {
	inputs[currentFocus].Blur()
	prevFocus := currentFocus - 1
	if prevFocus < 0 {
		prevFocus = len(inputs) - 1
	}
	inputs[prevFocus].Focus()
	return prevFocus
}
