package medlist

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mediremind/internal/keys"
	"github.com/nhle/mediremind/internal/model"
	"github.com/nhle/mediremind/internal/store"
	"github.com/nhle/mediremind/internal/theme"
)

// MedicationsLoadedMsg is sent when medications have been loaded from the store.
type MedicationsLoadedMsg struct {
	Medications []model.Medication
	Err         error
}

// SelectedMedicationMsg is sent when a user selects a medication to view details.
type SelectedMedicationMsg struct {
	MedicationID int64
}

// DeleteRequestedMsg is sent after the user confirms deleting a medication.
type DeleteRequestedMsg struct {
	MedicationID int64
}

// MarkTakenRequestedMsg is sent when the user marks the selected
// medication as taken.
type MarkTakenRequestedMsg struct {
	MedicationID int64
}

// sortModes defines the available sort modes cycled by Tab.
var sortModes = []string{
	"time",
	"name",
	"created_at",
	"updated_at",
}

// Model is the main medication list view component.
type Model struct {
	list         list.Model
	store        store.Store
	keys         *keys.KeyMap
	filter       store.MedicationFilter
	sortIndex    int
	searchMode   bool
	searchInput  textinput.Model
	confirmingID int64
	width        int
	height       int
}

// New creates a new medication list model.
func New(s store.Store, k *keys.KeyMap, clock24 bool, width, height int) Model {
	delegate := NewDelegate(clock24)
	l := list.New([]list.Item{}, delegate, width, height-2)
	l.Title = "Medications"
	l.SetShowStatusBar(true)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.Styles.Title = theme.HeaderStyle

	si := textinput.New()
	si.Placeholder = "search medications..."
	si.Prompt = "/ "
	si.Width = width - 4

	return Model{
		list:  l,
		store: s,
		keys:  k,
		filter: store.MedicationFilter{
			ActiveOnly: true,
			SortBy:     "time",
		},
		searchInput: si,
		width:       width,
		height:      height,
	}
}

// Init returns a command that loads the initial set of medications.
func (m Model) Init() tea.Cmd {
	return m.LoadMedications()
}

// Update handles messages for the medication list view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case MedicationsLoadedMsg:
		items := make([]list.Item, len(msg.Medications))
		for i, med := range msg.Medications {
			items[i] = MedicationItem{Medication: med}
		}
		cmd := m.list.SetItems(items)
		return m, cmd

	case tea.KeyMsg:
		if m.searchMode {
			return m.handleSearchKeys(msg)
		}
		if m.confirmingID != 0 {
			return m.handleConfirmKeys(msg)
		}
		return m.handleNormalKeys(msg)
	}

	// Delegate to list model for other messages
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// handleSearchKeys processes key input while in search mode.
func (m Model) handleSearchKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.searchMode = false
		query := m.searchInput.Value()
		if query != "" {
			m.filter.Query = &query
		} else {
			m.filter.Query = nil
		}
		return m, m.LoadMedications()

	case "esc":
		m.searchMode = false
		m.searchInput.Reset()
		m.filter.Query = nil
		return m, m.LoadMedications()
	}

	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(msg)
	return m, cmd
}

// handleConfirmKeys processes key input while a delete confirmation is
// pending. Only y confirms; anything else cancels.
func (m Model) handleConfirmKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	id := m.confirmingID
	m.confirmingID = 0

	if msg.String() == "y" {
		return m, func() tea.Msg {
			return DeleteRequestedMsg{MedicationID: id}
		}
	}
	return m, nil
}

// handleNormalKeys processes key input in normal (non-search) mode.
func (m Model) handleNormalKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Select):
		item, ok := m.list.SelectedItem().(MedicationItem)
		if !ok {
			return m, nil
		}
		return m, func() tea.Msg {
			return SelectedMedicationMsg{MedicationID: item.Medication.ID}
		}

	case key.Matches(msg, m.keys.Search):
		m.searchMode = true
		m.searchInput.Reset()
		return m, m.searchInput.Focus()

	case key.Matches(msg, m.keys.Delete):
		item, ok := m.list.SelectedItem().(MedicationItem)
		if !ok {
			return m, nil
		}
		m.confirmingID = item.Medication.ID
		return m, nil

	case key.Matches(msg, m.keys.MarkTaken):
		item, ok := m.list.SelectedItem().(MedicationItem)
		if !ok {
			return m, nil
		}
		id := item.Medication.ID
		return m, func() tea.Msg {
			return MarkTakenRequestedMsg{MedicationID: id}
		}

	case key.Matches(msg, m.keys.ToggleInactive):
		m.filter.ActiveOnly = !m.filter.ActiveOnly
		return m, m.LoadMedications()

	case key.Matches(msg, m.keys.CycleSort):
		m.sortIndex = (m.sortIndex + 1) % len(sortModes)
		m.filter.SortBy = sortModes[m.sortIndex]
		return m, m.LoadMedications()
	}

	// Delegate to the list for navigation keys (up/down/pgup/pgdn)
	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

// View renders the medication list view.
func (m Model) View() string {
	if m.searchMode {
		searchBar := lipgloss.NewStyle().
			Foreground(theme.ColorWhite).
			Padding(0, 1).
			Render(m.searchInput.View())
		return lipgloss.JoinVertical(lipgloss.Left, searchBar, m.list.View())
	}

	if m.confirmingID != 0 {
		prompt := lipgloss.NewStyle().
			Foreground(theme.ColorRed).
			Bold(true).
			Padding(0, 1).
			Render(fmt.Sprintf("Delete medication #%d? (y/n)", m.confirmingID))
		return lipgloss.JoinVertical(lipgloss.Left, prompt, m.list.View())
	}

	if len(m.list.Items()) == 0 {
		return m.renderEmptyState()
	}

	return m.list.View()
}

// renderEmptyState shows guidance text when no medications are available.
func (m Model) renderEmptyState() string {
	hasFilters := m.filter.Query != nil || m.filter.Frequency != nil

	style := lipgloss.NewStyle().
		Width(m.width).
		Height(m.height).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.ColorGray)

	if hasFilters {
		return style.Render("No matching medications.\nTry adjusting your search.")
	}

	return style.Render(
		"No medications yet.\n\n" +
			"Press n to add your first medication.",
	)
}

// LoadMedications returns a tea.Cmd that queries the store with the
// current filter.
func (m Model) LoadMedications() tea.Cmd {
	filter := m.filter
	s := m.store
	return func() tea.Msg {
		meds, err := s.GetMedications(context.Background(), filter)
		if err != nil {
			return MedicationsLoadedMsg{Err: err}
		}
		return MedicationsLoadedMsg{Medications: meds}
	}
}

// ToggleArchived flips visibility of archived medications and reloads.
func (m *Model) ToggleArchived() tea.Cmd {
	m.filter.ActiveOnly = !m.filter.ActiveOnly
	return m.LoadMedications()
}

// SetSort switches the sort column if it is one of the known modes.
func (m *Model) SetSort(column string) tea.Cmd {
	for i, mode := range sortModes {
		if mode == column {
			m.sortIndex = i
			m.filter.SortBy = column
			return m.LoadMedications()
		}
	}
	return nil
}

// CapturingInput reports whether the list is consuming raw key input,
// through either the search field or a pending delete confirmation.
// Global shortcuts must stay out of the way while this is true.
func (m Model) CapturingInput() bool {
	return m.searchMode || m.confirmingID != 0
}

// ShowingInactive reports whether archived medications are visible.
func (m Model) ShowingInactive() bool {
	return !m.filter.ActiveOnly
}

// SortBy returns the active sort column.
func (m Model) SortBy() string {
	return m.filter.SortBy
}

// SelectedID returns the identifier of the focused medication, or 0.
func (m Model) SelectedID() int64 {
	item, ok := m.list.SelectedItem().(MedicationItem)
	if !ok {
		return 0
	}
	return item.Medication.ID
}

// SetSize updates the list dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, height-2)
	m.searchInput.Width = width - 4
}
