package medform

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mediremind/internal/model"
	"github.com/nhle/mediremind/internal/theme"
)

// MedicationCreatedMsg is dispatched when a new medication is created
// via the form.
type MedicationCreatedMsg struct {
	Medication model.Medication
}

// MedicationUpdatedMsg is dispatched when an existing medication is
// updated via the form.
type MedicationUpdatedMsg struct {
	Medication model.Medication
}

// MedFormCancelMsg is dispatched when the user cancels the form.
type MedFormCancelMsg struct{}

// formBindings holds form field values on the heap so that huh's Value()
// pointers remain valid across Bubble Tea model copies.
type formBindings struct {
	name      string
	dosage    string
	clock     string
	frequency string
	notes     string
}

// Model is the Bubble Tea model for the medication create/edit form.
type Model struct {
	form     *huh.Form
	fb       *formBindings
	editMode bool
	editID   int64
	original model.Medication
	width    int
	height   int
}

// New creates a new medication form model.
func New(width, height int) Model {
	return Model{
		fb:     &formBindings{frequency: model.FrequencyDaily},
		width:  width,
		height: height,
	}
}

// StartCreate initializes the form for adding a new medication.
func (m *Model) StartCreate() tea.Cmd {
	m.editMode = false
	m.editID = 0
	m.original = model.Medication{}
	m.fb.name = ""
	m.fb.dosage = ""
	m.fb.clock = "08:00"
	m.fb.frequency = model.FrequencyDaily
	m.fb.notes = ""
	m.form = m.buildForm()
	return m.form.Init()
}

// StartEdit initializes the form for editing an existing medication.
func (m *Model) StartEdit(med model.Medication) tea.Cmd {
	m.editMode = true
	m.editID = med.ID
	m.original = med
	m.fb.name = med.Name
	m.fb.dosage = med.Dosage
	m.fb.clock = med.Time
	m.fb.frequency = med.Frequency
	m.fb.notes = med.Notes
	m.form = m.buildForm()
	return m.form.Init()
}

// Update handles messages for the medication form.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	if m.form == nil {
		return m, nil
	}

	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		return m, m.handleSubmit()
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return MedFormCancelMsg{} }
	}

	return m, cmd
}

// View renders the medication form.
func (m Model) View() string {
	if m.form == nil {
		return ""
	}

	titleText := "New Medication"
	if m.editMode {
		titleText = "Edit Medication"
	}

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(theme.ColorWhite).
		MarginBottom(1)

	content := titleStyle.Render(titleText) + "\n" + m.form.View()

	return lipgloss.NewStyle().
		Padding(1, 2).
		Render(content)
}

// SetSize updates the form dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m *Model) buildForm() *huh.Form {
	freqOpts := make([]huh.Option[string], len(model.Frequencies))
	for i, f := range model.Frequencies {
		freqOpts[i] = huh.NewOption(model.FrequencyLabel(f), f)
	}

	fields := []huh.Field{
		huh.NewInput().
			Title("Name").
			Placeholder("e.g. Aspirin").
			Value(&m.fb.name).
			Validate(validateRequired("Name")),
		huh.NewInput().
			Title("Dosage").
			Placeholder("e.g. 100mg").
			Value(&m.fb.dosage).
			Validate(validateRequired("Dosage")),
		huh.NewInput().
			Title("Time").
			Placeholder("HH:MM (24-hour)").
			Value(&m.fb.clock).
			Validate(validateClock),
		huh.NewSelect[string]().
			Title("Frequency").
			Options(freqOpts...).
			Value(&m.fb.frequency),
		huh.NewText().
			Title("Notes").
			Placeholder("Optional instructions...").
			Value(&m.fb.notes),
	}

	return huh.NewForm(
		huh.NewGroup(fields...),
	).WithWidth(m.formWidth()).WithHeight(m.formHeight())
}

func (m Model) handleSubmit() tea.Cmd {
	med := m.original
	med.Name = m.fb.name
	med.Dosage = m.fb.dosage
	med.Time = m.fb.clock
	med.Frequency = m.fb.frequency
	med.Notes = m.fb.notes

	if m.editMode {
		med.ID = m.editID
		return func() tea.Msg { return MedicationUpdatedMsg{Medication: med} }
	}
	med.Active = true
	return func() tea.Msg { return MedicationCreatedMsg{Medication: med} }
}

func (m Model) formWidth() int {
	w := m.width - 4
	if w < 40 {
		w = 40
	}
	if w > 100 {
		w = 100
	}
	return w
}

func (m Model) formHeight() int {
	h := m.height - 4
	if h < 10 {
		h = 10
	}
	return h
}

func validateRequired(fieldName string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", fieldName)
		}
		return nil
	}
}

func validateClock(s string) error {
	if _, err := model.NormalizeClock(s); err != nil {
		return fmt.Errorf("invalid time, use HH:MM (24-hour)")
	}
	return nil
}
