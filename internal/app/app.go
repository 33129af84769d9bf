package app

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/mediremind/internal/keys"
	"github.com/nhle/mediremind/internal/model"
	"github.com/nhle/mediremind/internal/schedule"
	"github.com/nhle/mediremind/internal/store"
	"github.com/nhle/mediremind/internal/ui"
	"github.com/nhle/mediremind/internal/ui/command"
	"github.com/nhle/mediremind/internal/ui/detail"
	helpview "github.com/nhle/mediremind/internal/ui/help"
	"github.com/nhle/mediremind/internal/ui/medform"
	"github.com/nhle/mediremind/internal/ui/medlist"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewList ViewState = iota
	ViewDetail
	ViewHelp
	ViewCommand
	ViewFormCreate
	ViewFormEdit
)

// Model is the root Bubble Tea model that manages view routing,
// layout, the persistence layer, and the reminder scheduler.
type Model struct {
	currentView   ViewState
	previousView  ViewState
	layout        ui.Layout
	store         store.Store
	keys          *keys.KeyMap
	medList       medlist.Model
	detail        detail.Model
	helpView      helpview.Model
	commandView   command.Model
	medForm       medform.Model
	scheduler     *schedule.Scheduler
	ready         bool
	firedCount    int
	statusMessage string
}

// New creates a new root application model with the given store,
// reminder scheduler, and configuration.
func New(s store.Store, sched *schedule.Scheduler, cfg *model.AppConfig) Model {
	k := keys.DefaultKeyMap()
	clock24 := cfg != nil && cfg.Display.Clock24

	return Model{
		currentView: ViewList,
		store:       s,
		keys:        k,
		medList:     medlist.New(s, k, clock24, 80, 24),
		detail:      detail.New(s, k, clock24, 80, 24),
		helpView:    helpview.New(k, 80, 24),
		commandView: command.New(80, 24),
		medForm:     medform.New(80, 24),
		scheduler:   sched,
	}
}

// Init loads the medication list, arms a reminder for every active
// medication, and starts the scheduler tick loop.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.medList.Init(),
		m.armReminders(),
		m.scheduler.Start(),
	)
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.medList.SetSize(contentWidth, contentHeight)
		m.detail.SetSize(contentWidth, contentHeight)
		m.helpView.SetSize(contentWidth, contentHeight)
		m.commandView.SetSize(contentWidth, contentHeight)
		m.medForm.SetSize(contentWidth, contentHeight)
		// Forward to active view so huh forms can calculate their layout.
		return m.updateActiveView(msg)

	case remindersArmedMsg:
		if msg.err != nil {
			m.statusMessage = "reminder setup failed: " + msg.err.Error()
		}
		return m, nil

	case schedule.ReminderMsg:
		m.firedCount++
		m.statusMessage = fmt.Sprintf("Reminder: take %s (%s)", msg.Name, msg.Dosage)
		// Re-arm the subscription and refresh so due markers update.
		return m, tea.Batch(
			m.scheduler.WaitForNextResult(),
			m.medList.LoadMedications(),
		)

	case medlist.MedicationsLoadedMsg:
		if msg.Err != nil {
			m.statusMessage = "load failed: " + msg.Err.Error()
			return m, nil
		}
		var cmd tea.Cmd
		m.medList, cmd = m.medList.Update(msg)
		return m, cmd

	case medlist.SelectedMedicationMsg:
		m.previousView = m.currentView
		m.currentView = ViewDetail
		m.detail.SetLoading(true)
		return m, m.loadMedicationDetail(msg.MedicationID)

	case medlist.DeleteRequestedMsg:
		return m, m.deleteMedication(msg.MedicationID)

	case medlist.MarkTakenRequestedMsg:
		return m, m.markTaken(msg.MedicationID)

	case medform.MedicationCreatedMsg:
		m.currentView = ViewList
		return m, m.createMedication(msg.Medication)

	case medform.MedicationUpdatedMsg:
		m.currentView = ViewList
		return m, m.updateMedication(msg.Medication)

	case medform.MedFormCancelMsg:
		m.currentView = ViewList
		return m, nil

	case medCreatedResultMsg:
		if msg.err != nil {
			m.statusMessage = "create failed: " + msg.err.Error()
			return m, nil
		}
		m.statusMessage = ""
		return m, m.medList.LoadMedications()

	case medUpdatedResultMsg:
		if msg.err != nil {
			m.statusMessage = "update failed: " + msg.err.Error()
			return m, nil
		}
		m.statusMessage = ""
		if m.currentView == ViewDetail {
			return m, tea.Batch(
				m.medList.LoadMedications(),
				m.loadMedicationDetail(msg.id),
			)
		}
		return m, m.medList.LoadMedications()

	case medDeletedResultMsg:
		if msg.err != nil {
			m.statusMessage = "delete failed: " + msg.err.Error()
			return m, nil
		}
		m.statusMessage = ""
		if m.currentView == ViewDetail {
			m.currentView = ViewList
		}
		return m, m.medList.LoadMedications()

	case medTakenResultMsg:
		if msg.err != nil {
			m.statusMessage = "mark taken failed: " + msg.err.Error()
			return m, nil
		}
		m.statusMessage = ""
		m.firedCount = 0
		if m.currentView == ViewDetail {
			return m, tea.Batch(
				m.medList.LoadMedications(),
				m.loadMedicationDetail(msg.id),
			)
		}
		return m, m.medList.LoadMedications()

	case medEditReadyMsg:
		if msg.med == nil {
			m.statusMessage = "medication not found"
			m.currentView = ViewList
			return m, nil
		}
		return m, m.medForm.StartEdit(*msg.med)

	case detail.DetailLoadedMsg:
		if msg.Err != nil {
			m.statusMessage = "load failed: " + msg.Err.Error()
		}
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return m, cmd

	case detail.BackMsg:
		m.currentView = ViewList
		return m, m.medList.LoadMedications()

	case detail.ActionMsg:
		switch msg.Action {
		case "taken":
			return m, m.markTaken(msg.MedicationID)
		case "edit":
			m.previousView = m.currentView
			m.currentView = ViewFormEdit
			return m, m.startEdit(msg.MedicationID)
		}
		return m, nil

	case command.CommandMsg:
		m.currentView = m.previousView
		return m, m.executeCommand(string(msg))

	case tea.KeyMsg:
		// The list's search field and delete confirmation consume raw
		// keys; only ctrl+c stays global while one of them is active.
		if m.currentView == ViewList && m.medList.CapturingInput() {
			if msg.String() == "ctrl+c" {
				m.scheduler.Stop()
				return m, tea.Quit
			}
			return m.updateActiveView(msg)
		}

		// Global keys that work regardless of current view
		switch msg.String() {
		case "ctrl+c":
			m.scheduler.Stop()
			return m, tea.Quit

		case "q":
			if m.currentView == ViewList {
				m.scheduler.Stop()
				return m, tea.Quit
			}

		case "?":
			if m.currentView == ViewFormCreate || m.currentView == ViewFormEdit {
				break
			}
			if m.currentView == ViewHelp {
				m.currentView = m.previousView
				return m, nil
			}
			m.previousView = m.currentView
			m.currentView = ViewHelp
			return m, nil

		case ":":
			if m.currentView == ViewFormCreate || m.currentView == ViewFormEdit {
				break
			}
			if m.currentView == ViewCommand {
				m.currentView = m.previousView
				return m, nil
			}
			m.previousView = m.currentView
			m.currentView = ViewCommand
			return m, m.commandView.Focus()

		case "n":
			if m.currentView == ViewList {
				m.previousView = m.currentView
				m.currentView = ViewFormCreate
				return m, m.medForm.StartCreate()
			}

		case "e":
			if m.currentView == ViewList {
				id := m.medList.SelectedID()
				if id != 0 {
					m.previousView = m.currentView
					m.currentView = ViewFormEdit
					return m, m.startEdit(id)
				}
			}
		}
	}

	// Delegate to active sub-view
	return m.updateActiveView(msg)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewList:
		m.medList, cmd = m.medList.Update(msg)
	case ViewDetail:
		m.detail, cmd = m.detail.Update(msg)
	case ViewHelp:
		m.helpView, cmd = m.helpView.Update(msg)
	case ViewCommand:
		m.commandView, cmd = m.commandView.Update(msg)
	case ViewFormCreate, ViewFormEdit:
		m.medForm, cmd = m.medForm.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("MediRemind", m.reminderStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.keyHints())

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewList:
		return m.medList.View()
	case ViewDetail:
		return m.detail.View()
	case ViewHelp:
		return m.helpView.View()
	case ViewCommand:
		return m.commandView.View()
	case ViewFormCreate, ViewFormEdit:
		return m.medForm.View()
	default:
		return ""
	}
}

// reminderStatus returns a short string describing the scheduler state.
// Reminders fired since the last acknowledgment take precedence.
func (m Model) reminderStatus() string {
	if m.firedCount > 0 {
		return fmt.Sprintf("%d due", m.firedCount)
	}
	count := m.scheduler.Count()
	if count == 0 {
		return "no reminders"
	}
	if count == 1 {
		return "1 reminder armed"
	}
	return fmt.Sprintf("%d reminders armed", count)
}

// keyHints returns keyboard shortcut hints for the status bar.
func (m Model) keyHints() string {
	// Surface the latest status or reminder message prominently.
	if m.statusMessage != "" && m.currentView == ViewList {
		return m.statusMessage
	}

	switch m.currentView {
	case ViewHelp:
		return "? close help | esc back"
	case ViewCommand:
		return ": close command | enter execute | esc back"
	case ViewDetail:
		return "esc back | t mark taken | e edit | j/k scroll"
	case ViewFormCreate, ViewFormEdit:
		return "enter submit | esc cancel"
	default:
		hints := "q quit | ? help | n new | e edit | t taken | d delete | / search | tab sort"
		if m.medList.ShowingInactive() {
			hints += " | showing archived"
		}
		return hints
	}
}

// executeCommand handles a command string from the command palette.
func (m *Model) executeCommand(cmd string) tea.Cmd {
	verb, arg := splitCommand(cmd)

	switch verb {
	case "quit", "q":
		m.scheduler.Stop()
		return tea.Quit
	case "add", "new":
		m.previousView = m.currentView
		m.currentView = ViewFormCreate
		return m.medForm.StartCreate()
	case "refresh":
		return m.medList.LoadMedications()
	case "help":
		m.previousView = ViewList
		m.currentView = ViewHelp
		return nil
	case "archived", "inactive":
		return m.medList.ToggleArchived()
	case "restore":
		return m.restoreMedication(arg)
	case "sort":
		return m.medList.SetSort(arg)
	default:
		m.statusMessage = "unknown command: " + verb
		return nil
	}
}

// splitCommand splits a palette command into a verb and its argument.
func splitCommand(cmd string) (verb, arg string) {
	for i, r := range cmd {
		if r == ' ' {
			return cmd[:i], cmd[i+1:]
		}
	}
	return cmd, ""
}
