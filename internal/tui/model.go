// Package tui provides a terminal user interface for codexmgr
package tui

import (
	"fmt"

	"codexmgr/config"
	"codexmgr/config/models"
	"codexmgr/config/validation"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ViewState represents the current view state
type ViewState int

const (
	ViewMain      ViewState = iota // Main list view
	ViewDetail                     // Detail view
	ViewAdd                        // Add profile form
	ViewEdit                       // Edit profile form
	ViewDuplicate                  // Copy profile name prompt
	ViewDelete                     // Delete confirmation dialog
	ViewCurrent                    // Live Codex configuration
	ViewHelp                       // Help panel
)

// Model is the core state model for TUI
type Model struct {
	profiles      []models.Profile // Profile list
	activeID      string           // Active profile id
	cursor        int              // Current cursor position
	viewState     ViewState        // Current view state
	configManager *config.Manager  // Profile store
	keys          KeyMap

	// Form related
	formInputs []textinput.Model // Form input fields
	formFocus  int               // Currently focused input field
	formHints  []string          // Hints for the profile form fields

	// Live configuration
	current *models.CurrentConfig

	// Messages and errors
	message  string // Status message
	errorMsg string // Error message

	// Window size
	width  int
	height int

	// Scroll offset for main list view
	scrollOffset int
}

// NewModel creates a new TUI model
func NewModel(cm *config.Manager) Model {
	return Model{
		profiles:      []models.Profile{},
		viewState:     ViewMain,
		configManager: cm,
		keys:          DefaultKeyMap(),
		width:         80,
		height:        24,
	}
}

// Init initializes the model and returns initial commands
func (m Model) Init() tea.Cmd {
	return loadProfiles(m.configManager)
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.adjustScrollOffset()
		return m, nil

	case ProfilesLoadedMsg:
		if msg.Err != nil {
			m.errorMsg = msg.Err.Error()
			return m, nil
		}
		m.profiles = msg.Profiles
		m.activeID = msg.ActiveID
		// Keep the cursor in range after a deletion
		if m.cursor >= len(m.profiles) {
			m.cursor = len(m.profiles) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		m.adjustScrollOffset()
		return m, nil

	case ProfileSwitchedMsg:
		if msg.Err != nil {
			m.errorMsg = msg.Err.Error()
			return m, nil
		}
		m.activeID = msg.ID
		m.message = "Switched to " + msg.Name
		return m, nil

	case ProfileSavedMsg:
		if msg.Err != nil {
			m.errorMsg = msg.Err.Error()
			return m, nil
		}
		if msg.IsNew {
			m.message = "Profile added: " + msg.Profile.Name
		} else {
			m.message = "Profile updated: " + msg.Profile.Name
		}
		m.resetForm()
		return m, loadProfiles(m.configManager)

	case ProfileDuplicatedMsg:
		if msg.Err != nil {
			m.errorMsg = msg.Err.Error()
			return m, nil
		}
		m.message = "Profile copied: " + msg.Profile.Name
		m.resetForm()
		return m, loadProfiles(m.configManager)

	case ProfileDeletedMsg:
		m.viewState = ViewMain
		if msg.Err != nil {
			m.errorMsg = msg.Err.Error()
			return m, nil
		}
		m.message = "Profile deleted: " + msg.Name
		if m.activeID == msg.ID {
			m.activeID = ""
		}
		return m, loadProfiles(m.configManager)

	case CurrentLoadedMsg:
		if msg.Err != nil {
			m.errorMsg = msg.Err.Error()
			m.viewState = ViewMain
			return m, nil
		}
		current := msg.Current
		m.current = &current
		m.viewState = ViewCurrent
		return m, nil
	}

	return m, nil
}

// handleKeyMsg routes key presses to the handler of the current view
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.viewState {
	case ViewMain:
		return m.handleMainViewKeys(msg)
	case ViewDetail:
		return m.handleDetailViewKeys(msg)
	case ViewAdd, ViewEdit, ViewDuplicate:
		return m.handleFormViewKeys(msg)
	case ViewDelete:
		return m.handleDeleteViewKeys(msg)
	case ViewCurrent, ViewHelp:
		return m.handleInfoViewKeys(msg)
	default:
		return m, nil
	}
}

// handleMainViewKeys handles keyboard input in main view
func (m Model) handleMainViewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Down):
		m.moveDown()
		m.clearMessages()

	case key.Matches(msg, m.keys.Up):
		m.moveUp()
		m.clearMessages()

	case key.Matches(msg, m.keys.Top):
		m.moveToTop()
		m.clearMessages()

	case key.Matches(msg, m.keys.Bottom):
		m.moveToBottom()
		m.clearMessages()

	case key.Matches(msg, m.keys.Select):
		if m.selectedProfile() != nil {
			m.viewState = ViewDetail
		}

	case key.Matches(msg, m.keys.Switch):
		if p := m.selectedProfile(); p != nil {
			m.clearMessages()
			return m, switchProfile(m.configManager, p.ID, p.Name)
		}

	case key.Matches(msg, m.keys.Add):
		m.initAddForm()

	case key.Matches(msg, m.keys.Edit):
		m.initEditForm()

	case key.Matches(msg, m.keys.Duplicate):
		if p := m.selectedProfile(); p != nil {
			m.formInputs = NameInputs(p.Name + " copy")
			m.formFocus = 0
			m.viewState = ViewDuplicate
			m.clearMessages()
		}

	case key.Matches(msg, m.keys.Delete):
		if m.selectedProfile() != nil {
			m.viewState = ViewDelete
			m.clearMessages()
		}

	case key.Matches(msg, m.keys.Current):
		m.clearMessages()
		return m, loadCurrent(m.configManager)

	case key.Matches(msg, m.keys.Refresh):
		m.clearMessages()
		return m, loadProfiles(m.configManager)

	case key.Matches(msg, m.keys.Help):
		m.viewState = ViewHelp
	}

	return m, nil
}

// handleDetailViewKeys handles keyboard input in detail view
func (m Model) handleDetailViewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		m.viewState = ViewMain

	case key.Matches(msg, m.keys.Switch):
		if p := m.selectedProfile(); p != nil {
			m.viewState = ViewMain
			m.clearMessages()
			return m, switchProfile(m.configManager, p.ID, p.Name)
		}

	case key.Matches(msg, m.keys.Edit):
		m.initEditForm()
	}

	return m, nil
}

// handleInfoViewKeys handles the read-only help and live configuration views
func (m Model) handleInfoViewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.Help):
		m.viewState = ViewMain
	case m.viewState == ViewCurrent && key.Matches(msg, m.keys.Refresh):
		return m, loadCurrent(m.configManager)
	}
	return m, nil
}

// handleFormViewKeys handles keyboard input in the add, edit and copy forms
func (m Model) handleFormViewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit

	case key.Matches(msg, m.keys.Cancel):
		m.resetForm()
		m.errorMsg = ""
		return m, nil

	case key.Matches(msg, m.keys.NextField):
		m.formFocus = NextFormField(m.formInputs, m.formFocus)
		return m, nil

	case key.Matches(msg, m.keys.PrevField):
		m.formFocus = PrevFormField(m.formInputs, m.formFocus)
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		return m, m.submitForm()
	}

	// Pass other keys to the focused input
	if m.formFocus >= 0 && m.formFocus < len(m.formInputs) {
		var cmd tea.Cmd
		m.formInputs[m.formFocus], cmd = m.formInputs[m.formFocus].Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleDeleteViewKeys handles keyboard input in delete confirmation view
func (m Model) handleDeleteViewKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.String() == "ctrl+c":
		return m, tea.Quit

	case key.Matches(msg, m.keys.Yes):
		if p := m.selectedProfile(); p != nil {
			return m, deleteProfile(m.configManager, p.ID, p.Name)
		}
		m.viewState = ViewMain

	case key.Matches(msg, m.keys.No):
		m.viewState = ViewMain
		m.clearMessages()
	}

	return m, nil
}

// submitForm validates the open form and returns the command that stores it
func (m *Model) submitForm() tea.Cmd {
	if m.viewState == ViewDuplicate {
		name := m.formInputs[0].Value()
		if err := validation.NewInputValidator().ValidateName(name); err != nil {
			m.errorMsg = err.Error()
			return nil
		}
		p := m.selectedProfile()
		if p == nil {
			m.resetForm()
			return nil
		}
		m.errorMsg = ""
		return duplicateProfile(m.configManager, p.ID, name)
	}

	data := GetFormData(m.formInputs)
	if err := data.Validate(); err != nil {
		m.errorMsg = err.Error()
		return nil
	}
	m.errorMsg = ""

	if m.viewState == ViewAdd {
		profile := models.Profile{}
		data.ApplyTo(&profile)
		return saveProfile(m.configManager, profile, true)
	}

	p := m.selectedProfile()
	if p == nil {
		m.resetForm()
		return nil
	}
	profile := *p
	profile.Providers = make(map[string]models.ProviderConfig, len(p.Providers))
	for id, provider := range p.Providers {
		profile.Providers[id] = provider
	}
	data.ApplyTo(&profile)
	return saveProfile(m.configManager, profile, false)
}

// initAddForm initializes the form for adding a new profile
func (m *Model) initAddForm() {
	m.formInputs = FormInputs()
	m.formHints = FormHints()
	m.formFocus = 0
	m.viewState = ViewAdd
	m.clearMessages()
}

// initEditForm initializes the form for editing the selected profile
func (m *Model) initEditForm() {
	p := m.selectedProfile()
	if p == nil {
		return
	}
	m.formInputs = FormInputs()
	m.formHints = FormHintsFor(p)
	m.formFocus = 0
	m.viewState = ViewEdit
	m.clearMessages()
	SetFormData(m.formInputs, FormDataFromProfile(p))
}

func (m *Model) resetForm() {
	m.viewState = ViewMain
	m.formInputs = nil
	m.formHints = nil
	m.formFocus = 0
}

func (m *Model) clearMessages() {
	m.message = ""
	m.errorMsg = ""
}

// selectedProfile returns the profile under the cursor, or nil
func (m *Model) selectedProfile() *models.Profile {
	if m.cursor < 0 || m.cursor >= len(m.profiles) {
		return nil
	}
	return &m.profiles[m.cursor]
}

// moveUp moves cursor up
func (m *Model) moveUp() {
	if m.cursor > 0 {
		m.cursor--
		m.adjustScrollOffset()
	}
}

// moveDown moves cursor down
func (m *Model) moveDown() {
	if len(m.profiles) > 0 && m.cursor < len(m.profiles)-1 {
		m.cursor++
		m.adjustScrollOffset()
	}
}

// moveToTop moves cursor to top
func (m *Model) moveToTop() {
	m.cursor = 0
	m.scrollOffset = 0
}

// moveToBottom moves cursor to bottom
func (m *Model) moveToBottom() {
	if len(m.profiles) > 0 {
		m.cursor = len(m.profiles) - 1
		m.adjustScrollOffset()
	}
}

// getVisibleListHeight returns the number of lines available for the profile list
func (m *Model) getVisibleListHeight() int {
	// Title, separator and blank line above; blank line, separator and
	// two status lines below
	headerLines := 3
	footerLines := 4

	available := m.height - headerLines - footerLines
	if available < 1 {
		available = 1
	}
	return available
}

// adjustScrollOffset adjusts the scroll offset to keep cursor visible
func (m *Model) adjustScrollOffset() {
	visibleHeight := m.getVisibleListHeight()

	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+visibleHeight {
		m.scrollOffset = m.cursor - visibleHeight + 1
	}

	maxOffset := len(m.profiles) - visibleHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	if m.scrollOffset > maxOffset {
		m.scrollOffset = maxOffset
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

// View renders the UI
func (m Model) View() string {
	switch m.viewState {
	case ViewHelp:
		return m.RenderHelpView()
	case ViewDetail:
		return m.RenderDetailView()
	case ViewAdd, ViewEdit, ViewDuplicate:
		return m.RenderFormViewFull()
	case ViewDelete:
		return m.RenderDeleteConfirm()
	case ViewCurrent:
		return m.RenderCurrentView()
	default:
		return m.RenderMainView()
	}
}

// RenderFormViewFull renders the complete form view
func (m Model) RenderFormViewFull() string {
	switch m.viewState {
	case ViewDuplicate:
		return RenderForm(m.formInputs, []string{"Name:"}, []string{"Name of the copy"}, m.formFocus, "Copy profile", m.errorMsg)
	case ViewEdit:
		return RenderForm(m.formInputs, FormLabels(), m.formHints, m.formFocus, "Edit profile", m.errorMsg)
	default:
		return RenderForm(m.formInputs, FormLabels(), m.formHints, m.formFocus, "Add profile", m.errorMsg)
	}
}

// loadProfiles creates a command to load profiles
func loadProfiles(cm *config.Manager) tea.Cmd {
	return func() tea.Msg {
		profiles, err := cm.List()
		if err != nil {
			return ProfilesLoadedMsg{Err: err}
		}
		activeID, err := cm.GetActiveID()
		if err != nil {
			return ProfilesLoadedMsg{Err: err}
		}
		return ProfilesLoadedMsg{Profiles: profiles, ActiveID: activeID}
	}
}

// switchProfile creates a command to apply a profile to Codex
func switchProfile(cm *config.Manager, id, name string) tea.Cmd {
	return func() tea.Msg {
		return ProfileSwitchedMsg{ID: id, Name: name, Err: cm.Apply(id)}
	}
}

// saveProfile creates a command to store a new or edited profile
func saveProfile(cm *config.Manager, profile models.Profile, isNew bool) tea.Cmd {
	return func() tea.Msg {
		err := cm.Save(&profile)
		return ProfileSavedMsg{Profile: profile, IsNew: isNew, Err: err}
	}
}

// duplicateProfile creates a command to copy a profile
func duplicateProfile(cm *config.Manager, id, name string) tea.Cmd {
	return func() tea.Msg {
		profile, err := cm.Duplicate(id, name)
		if err != nil {
			return ProfileDuplicatedMsg{Err: err}
		}
		return ProfileDuplicatedMsg{Profile: *profile}
	}
}

// deleteProfile creates a command to delete a profile
func deleteProfile(cm *config.Manager, id, name string) tea.Cmd {
	return func() tea.Msg {
		return ProfileDeletedMsg{ID: id, Name: name, Err: cm.Delete(id)}
	}
}

// loadCurrent creates a command to read the live Codex configuration
func loadCurrent(cm *config.Manager) tea.Cmd {
	return func() tea.Msg {
		current, err := cm.ReadCurrent()
		if err != nil {
			return CurrentLoadedMsg{Err: fmt.Errorf("failed to read live config: %w", err)}
		}
		return CurrentLoadedMsg{Current: current}
	}
}
