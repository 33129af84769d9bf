package help

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mediremind/internal/keys"
	"github.com/nhle/mediremind/internal/theme"
)

// Model is the help overlay view.
type Model struct {
	keys   *keys.KeyMap
	help   help.Model
	width  int
	height int
}

// New creates a new help view model.
func New(keys *keys.KeyMap, width, height int) Model {
	h := help.New()
	h.Width = width
	return Model{
		keys:   keys,
		help:   h,
		width:  width,
		height: height,
	}
}

// Init returns the initial command.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update handles messages for the help view.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	return m, nil
}

// View renders the help overlay: keybindings, the command palette
// verbs, and a short note on how reminders and dose tracking behave.
func (m Model) View() string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorBlue)

	title := titleStyle.Render("MediRemind Help")

	m.help.Width = m.width - 4
	m.help.ShowAll = true
	helpText := m.help.View(m.keys)

	palette := lipgloss.JoinVertical(
		lipgloss.Left,
		sectionStyle.Render("Command palette (:)"),
		"  add              open the new medication form",
		"  refresh          reload the list",
		"  archived         show or hide archived medications",
		"  restore <id>     un-archive a medication",
		"  sort <column>    time, name, created_at, updated_at",
		"  help, quit",
	)

	note := theme.HelpStyle.Render(
		"Reminders fire at each medication's scheduled time while the\n" +
			"app is open. Mark a dose taken with t; the taken marker\n" +
			"resets at local midnight. Archived medications keep their\n" +
			"dose history.",
	)

	content := lipgloss.JoinVertical(
		lipgloss.Left, title, helpText, "", palette, "", note,
	)

	return theme.DetailPanelStyle.
		Width(m.width - 4).
		Height(m.height - 4).
		Render(content)
}

// SetSize updates the help view dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.help.Width = width - 4
}
