package detail

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mediremind/internal/keys"
	"github.com/nhle/mediremind/internal/model"
	"github.com/nhle/mediremind/internal/store"
	"github.com/nhle/mediremind/internal/theme"
)

// BackMsg signals the parent to navigate back to the list view.
type BackMsg struct{}

// DetailLoadedMsg carries the loaded medication and its dose history.
type DetailLoadedMsg struct {
	Medication *model.Medication
	Doses      []model.DoseEvent
	Err        error
}

// ActionMsg signals the parent to execute an action on the current
// medication.
type ActionMsg struct {
	Action       string
	MedicationID int64
}

// Model is the medication detail view component.
type Model struct {
	med      *model.Medication
	doses    []model.DoseEvent
	viewport viewport.Model
	store    store.Store
	keys     *keys.KeyMap
	width    int
	height   int
	loading  bool
	clock24  bool

	// now is swappable for tests of the taken-today line.
	now func() time.Time
}

// New creates a new detail view model.
func New(s store.Store, keys *keys.KeyMap, clock24 bool, width, height int) Model {
	vp := viewport.New(width, height-2)
	vp.Style = lipgloss.NewStyle()

	return Model{
		viewport: vp,
		store:    s,
		keys:     keys,
		width:    width,
		height:   height,
		clock24:  clock24,
		now:      time.Now,
	}
}

// Init returns the initial command for the detail view.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the detail view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case DetailLoadedMsg:
		m.med = msg.Medication
		m.doses = msg.Doses
		m.loading = false
		m.viewport.SetContent(m.renderContent())
		m.viewport.GotoTop()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Back):
			return m, func() tea.Msg {
				return BackMsg{}
			}

		case key.Matches(msg, m.keys.MarkTaken):
			if m.med != nil {
				id := m.med.ID
				return m, func() tea.Msg {
					return ActionMsg{Action: "taken", MedicationID: id}
				}
			}

		case key.Matches(msg, m.keys.Edit):
			if m.med != nil {
				id := m.med.ID
				return m, func() tea.Msg {
					return ActionMsg{Action: "edit", MedicationID: id}
				}
			}
		}
	}

	// Delegate to viewport for scrolling (j/k, up/down, pgup/pgdn)
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the detail view.
func (m Model) View() string {
	if m.loading {
		loadingStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return loadingStyle.Render("Loading medication...")
	}

	if m.med == nil {
		emptyStyle := lipgloss.NewStyle().
			Width(m.width).
			Height(m.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(theme.ColorGray)
		return emptyStyle.Render("No medication selected")
	}

	return m.viewport.View()
}

// renderContent builds the full detail content string for the viewport.
func (m Model) renderContent() string {
	if m.med == nil {
		return ""
	}

	med := m.med
	var sections []string

	// Name
	titleStyle := lipgloss.NewStyle().Bold(true).Foreground(theme.ColorWhite)
	sections = append(sections, titleStyle.Render(med.Name))

	// Badges line: frequency + today's status
	freqBadge := theme.FrequencyStyle(med.Frequency).
		Render(model.FrequencyLabel(med.Frequency))

	var statusBadge string
	if med.TakenToday(m.now()) {
		statusBadge = theme.TakenStyle.Render("✓ taken today")
	} else if med.Frequency == model.FrequencyAsNeeded {
		statusBadge = theme.HelpStyle.Render("take as needed")
	} else {
		statusBadge = theme.DueStyle.Render("○ due today")
	}

	badgeLine := lipgloss.JoinHorizontal(
		lipgloss.Top, freqBadge, "  ", statusBadge,
	)
	if !med.Active {
		badgeLine = lipgloss.JoinHorizontal(
			lipgloss.Top, badgeLine, "  ",
			theme.InactiveStyle.Render("archived"),
		)
	}
	sections = append(sections, badgeLine)
	sections = append(sections, "")

	// Metadata table
	metaStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)
	valStyle := lipgloss.NewStyle().Foreground(theme.ColorWhite)

	sections = append(sections, fmt.Sprintf(
		"%s    %s",
		metaStyle.Render("Dosage:"),
		valStyle.Render(med.Dosage),
	))
	sections = append(sections, fmt.Sprintf(
		"%s      %s",
		metaStyle.Render("Time:"),
		valStyle.Render(med.FormatTime(m.clock24)),
	))
	if med.LastTaken != nil {
		layout := "2006-01-02 3:04 PM"
		if m.clock24 {
			layout = "2006-01-02 15:04"
		}
		sections = append(sections, fmt.Sprintf(
			"%s %s",
			metaStyle.Render("Last dose:"),
			valStyle.Render(med.LastTaken.Local().Format(layout)),
		))
	}
	if !med.CreatedAt.IsZero() {
		sections = append(sections, fmt.Sprintf(
			"%s     %s",
			metaStyle.Render("Added:"),
			valStyle.Render(med.CreatedAt.Local().Format("2006-01-02")),
		))
	}

	// Separator
	sepStyle := lipgloss.NewStyle().Foreground(theme.ColorSubtle)
	separator := sepStyle.Render(strings.Repeat("─", min(m.width-4, 80)))
	sections = append(sections, "")
	sections = append(sections, separator)
	sections = append(sections, "")

	// Notes
	notesHeaderStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	sections = append(sections, notesHeaderStyle.Render("Notes"))

	notes := med.Notes
	if notes == "" {
		notes = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Italic(true).
			Render("No notes")
	}
	sections = append(sections, notes)

	// Dose history
	if len(m.doses) > 0 {
		sections = append(sections, "")
		sections = append(sections, separator)
		sections = append(sections, "")

		historyHeaderStyle := lipgloss.NewStyle().
			Bold(true).
			Foreground(theme.ColorWhite)

		sections = append(sections, historyHeaderStyle.Render(
			fmt.Sprintf("Dose history (%d)", len(m.doses)),
		))
		sections = append(sections, "")

		timeStyle := lipgloss.NewStyle().Foreground(theme.ColorGray)

		doseLayout := "Mon Jan 02, 3:04 PM"
		if m.clock24 {
			doseLayout = "Mon Jan 02, 15:04"
		}
		for _, d := range m.doses {
			line := fmt.Sprintf(
				"%s %s",
				theme.TakenStyle.Render("✓"),
				timeStyle.Render(d.TakenAt.Local().Format(doseLayout)),
			)
			if d.ScheduledTime != "" {
				line += timeStyle.Render("  (scheduled " + d.ScheduledTime + ")")
			}
			sections = append(sections, line)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// SetMedication updates the medication being displayed and re-renders
// the content.
func (m *Model) SetMedication(med *model.Medication, doses []model.DoseEvent) {
	m.med = med
	m.doses = doses
	m.loading = false
	m.viewport.SetContent(m.renderContent())
	m.viewport.GotoTop()
}

// MedicationID returns the identifier of the displayed medication, or 0.
func (m Model) MedicationID() int64 {
	if m.med == nil {
		return 0
	}
	return m.med.ID
}

// SetLoading sets the loading state.
func (m *Model) SetLoading(loading bool) {
	m.loading = loading
}

// SetSize updates the detail view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height - 2
}
