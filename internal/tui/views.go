package tui

import (
	"fmt"
	"sort"
	"strings"

	"codexmgr/config/models"
	syncpkg "codexmgr/config/sync"
	"codexmgr/internal/utils"

	"github.com/charmbracelet/lipgloss"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("205"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(true)

	activeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42")).
			Bold(true)

	activeSelectedStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("42")).
				Background(lipgloss.Color("57")).
				Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("42"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("205"))

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))
)

// Detail view styles
var (
	detailLabelStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241")).
				Width(18)

	detailValueStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("252"))

	detailActiveTagStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("42")).
				Background(lipgloss.Color("22")).
				Bold(true).
				Padding(0, 1)

	detailSectionStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("205")).
				Bold(true)
)

// RenderMainView renders the main list view
func (m Model) RenderMainView() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Codex profiles"))
	b.WriteString("\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", m.getEffectiveWidth(40))))
	b.WriteString("\n\n")

	if len(m.profiles) == 0 {
		b.WriteString(dimStyle.Render("No profiles yet, press 'a' to add one"))
		b.WriteString("\n")
	} else {
		visibleHeight := m.getVisibleListHeight()
		startIdx := m.scrollOffset
		endIdx := startIdx + visibleHeight
		if endIdx > len(m.profiles) {
			endIdx = len(m.profiles)
		}

		if startIdx > 0 {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  ↑ %d more...", startIdx)))
			b.WriteString("\n")
		}
		for i := startIdx; i < endIdx; i++ {
			b.WriteString(m.renderProfileLine(i, m.profiles[i]))
			b.WriteString("\n")
		}
		if endIdx < len(m.profiles) {
			b.WriteString(dimStyle.Render(fmt.Sprintf("  ↓ %d more...", len(m.profiles)-endIdx)))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", m.getEffectiveWidth(40))))
	b.WriteString("\n")
	b.WriteString(m.RenderStatusBar())

	return b.String()
}

// getEffectiveWidth returns the effective width for rendering, with a minimum and maximum
func (m Model) getEffectiveWidth(defaultWidth int) int {
	if m.width <= 0 {
		return defaultWidth
	}
	maxWidth := 80
	if m.width < maxWidth {
		return m.width - 2
	}
	return maxWidth
}

// renderProfileLine renders a single profile line in the list
func (m Model) renderProfileLine(index int, p models.Profile) string {
	isSelected := index == m.cursor
	isActive := p.ID == m.activeID

	cursor := "  "
	if isSelected {
		cursor = "> "
	}
	activeMarker := "  "
	if isActive {
		activeMarker = "* "
	}

	r := syncpkg.Resolve(&p)
	info := ""
	if r.ProviderID != "" {
		info = " [" + r.ProviderID
		if r.Model != "" {
			info += " / " + r.Model
		}
		info += "]"
	}

	content := m.truncateText(cursor+activeMarker+p.Name+info, m.getEffectiveWidth(40))

	switch {
	case isSelected && isActive:
		return activeSelectedStyle.Render(content)
	case isSelected:
		return selectedStyle.Render(content)
	case isActive:
		return activeStyle.Render(content)
	}
	return normalStyle.Render(content)
}

func (m Model) detailLine(b *strings.Builder, label, value string) {
	b.WriteString(detailLabelStyle.Render(label))
	if value == "" {
		b.WriteString(dimStyle.Render("(not set)"))
	} else {
		b.WriteString(detailValueStyle.Render(m.truncateText(value, m.getEffectiveWidth(40)-18)))
	}
	b.WriteString("\n")
}

// renderProviders renders provider tables sorted by id
func (m Model) renderProviders(b *strings.Builder, providers map[string]models.ProviderConfig, defaultID string) {
	ids := make([]string, 0, len(providers))
	for id := range providers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	if len(ids) == 0 {
		b.WriteString(dimStyle.Render("(no providers)"))
		b.WriteString("\n")
	}
	for _, id := range ids {
		p := providers[id]
		label := id
		if id == defaultID {
			label += " (default)"
		}
		b.WriteString(detailSectionStyle.Render(label))
		b.WriteString("\n")
		m.detailLine(b, "  Name:", p.Name)
		m.detailLine(b, "  Base URL:", p.BaseURL)
		m.detailLine(b, "  Wire API:", p.WireAPI)
		m.detailLine(b, "  Model:", models.Deref(p.Model))
		m.detailLine(b, "  Effort:", models.Deref(p.ModelReasoningEffort))
		m.detailLine(b, "  API Key:", maskOptional(p.APIKey))
	}
}

// RenderDetailView renders the detail view of the selected profile
func (m Model) RenderDetailView() string {
	p := m.selectedProfile()
	if p == nil {
		return dimStyle.Render("No profile selected, press Esc to go back")
	}

	var b strings.Builder
	effectiveWidth := m.getEffectiveWidth(40)

	b.WriteString(titleStyle.Render(p.Name))
	if p.ID == m.activeID {
		b.WriteString("  ")
		b.WriteString(detailActiveTagStyle.Render("★ active"))
	}
	b.WriteString("\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", effectiveWidth)))
	b.WriteString("\n\n")

	m.detailLine(&b, "ID:", p.ID)
	if p.Description != "" {
		m.detailLine(&b, "Description:", p.Description)
	}
	defaultProvider := p.ModelProvider
	if _, ok := p.Providers[p.ModelProvider]; !ok && p.ModelProvider != "" {
		defaultProvider += " (not configured)"
	}
	m.detailLine(&b, "Default provider:", defaultProvider)
	m.detailLine(&b, "Model:", p.Model)
	m.detailLine(&b, "Effort:", models.Deref(p.ModelReasoningEffort))
	m.detailLine(&b, "API Key:", maskOptional(p.APIKey))
	m.detailLine(&b, "Updated:", p.UpdatedAt)
	b.WriteString("\n")

	m.renderProviders(&b, p.Providers, p.ModelProvider)

	b.WriteString("\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", effectiveWidth)))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("s: switch │ e: edit │ Esc: back"))

	return b.String()
}

// RenderCurrentView renders the live Codex configuration
func (m Model) RenderCurrentView() string {
	var b strings.Builder
	effectiveWidth := m.getEffectiveWidth(40)

	b.WriteString(titleStyle.Render("Live Codex configuration"))
	b.WriteString("\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", effectiveWidth)))
	b.WriteString("\n\n")

	if m.current == nil {
		b.WriteString(dimStyle.Render("Not loaded"))
		b.WriteString("\n")
	} else {
		c := m.current
		m.detailLine(&b, "Provider:", c.ModelProvider)
		m.detailLine(&b, "Model:", c.Model)
		m.detailLine(&b, "Effort:", models.Deref(c.ModelReasoningEffort))
		m.detailLine(&b, "API Key:", maskOptional(c.APIKey))
		b.WriteString("\n")
		m.renderProviders(&b, c.Providers, c.ModelProvider)
	}

	b.WriteString("\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", effectiveWidth)))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("r: reload │ Esc: back"))

	return b.String()
}

// truncateText truncates text to fit within maxWidth, adding ellipsis if needed
func (m Model) truncateText(text string, maxWidth int) string {
	if maxWidth <= 3 {
		return "..."
	}
	runes := []rune(text)
	if len(runes) <= maxWidth {
		return text
	}
	return string(runes[:maxWidth-3]) + "..."
}

// RenderDeleteConfirm renders the delete confirmation dialog
func (m Model) RenderDeleteConfirm() string {
	p := m.selectedProfile()
	if p == nil {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Delete profile"))
	b.WriteString("\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", m.getEffectiveWidth(40))))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Delete %s?\n", activeStyle.Render(p.Name)))
	if p.ID == m.activeID {
		b.WriteString(warnStyle.Render("This is the active profile. The live Codex files are left as they are."))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("y: delete │ n/Esc: cancel"))

	return b.String()
}

// RenderHelpView renders the help panel
func (m Model) RenderHelpView() string {
	var b strings.Builder
	effectiveWidth := m.getEffectiveWidth(50)

	b.WriteString(titleStyle.Render("Keyboard shortcuts"))
	b.WriteString("\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", effectiveWidth)))
	b.WriteString("\n\n")

	sections := []string{"Navigation", "Profiles", "Profiles", "General"}
	for i, group := range m.keys.FullHelp() {
		if i == 0 || sections[i] != sections[i-1] {
			b.WriteString(detailSectionStyle.Render(sections[i]))
			b.WriteString("\n")
		}
		for _, k := range group {
			b.WriteString(renderHelpLine(k.Help().Key, k.Help().Desc))
		}
	}

	b.WriteString("\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("─", effectiveWidth)))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("q/Esc: back"))

	return b.String()
}

// renderHelpLine renders a single help line with key and description
func renderHelpLine(key, desc string) string {
	keyStyled := helpKeyStyle.Render(fmt.Sprintf("  %-10s", key))
	descStyled := normalStyle.Render(desc)
	return fmt.Sprintf("%s %s\n", keyStyled, descStyled)
}

// RenderStatusBar renders the bottom status bar
func (m Model) RenderStatusBar() string {
	var b strings.Builder

	if m.errorMsg != "" {
		b.WriteString(errorStyle.Render("✗ Error: " + m.errorMsg))
		b.WriteString("\n")
	}
	if m.message != "" {
		b.WriteString(messageStyle.Render("✓ " + m.message))
		b.WriteString("\n")
	}
	if m.errorMsg != "" || m.message != "" {
		b.WriteString("\n")
	}

	shortHelp := m.keys.ShortHelp()
	hints := make([]string, 0, len(shortHelp))
	for _, k := range shortHelp {
		hints = append(hints, helpKeyStyle.Render(k.Help().Key)+" "+helpStyle.Render(k.Help().Desc))
	}
	b.WriteString(strings.Join(hints, helpStyle.Render(" │ ")))

	return b.String()
}

// maskOptional masks a key for display; unset keys render empty
func maskOptional(key *string) string {
	if key == nil || *key == "" {
		return ""
	}
	return utils.MaskAPIKey(*key)
}
