package medlist

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/mediremind/internal/model"
	"github.com/nhle/mediremind/internal/theme"
)

// MedicationItem wraps a model.Medication so it can be used in a bubbles/list.
type MedicationItem struct {
	Medication model.Medication
}

// FilterValue returns the string used for fuzzy filtering.
func (i MedicationItem) FilterValue() string { return i.Medication.Name }

// Title returns the medication name for the list.
func (i MedicationItem) Title() string { return i.Medication.Name }

// Description returns a short summary line for the list.
func (i MedicationItem) Description() string {
	return fmt.Sprintf("%s at %s", i.Medication.Dosage, i.Medication.DisplayTime())
}

// ItemDelegate implements list.ItemDelegate for rendering medication rows.
type ItemDelegate struct {
	clock24 bool

	// now is swappable for tests of the taken-today marker.
	now func() time.Time
}

// NewDelegate returns a delegate rendering against the current wall clock.
func NewDelegate(clock24 bool) ItemDelegate {
	return ItemDelegate{clock24: clock24, now: time.Now}
}

// Height returns the number of lines each item takes.
func (d ItemDelegate) Height() int { return 1 }

// Spacing returns the number of blank lines between items.
func (d ItemDelegate) Spacing() int { return 0 }

// Update handles per-item messages (unused for now).
func (d ItemDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

// Render draws a single medication line: taken marker, name, dosage,
// scheduled time, a frequency badge for non-daily schedules, and a
// notes indicator. Archived medications render dimmed.
func (d ItemDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	mi, ok := item.(MedicationItem)
	if !ok {
		return
	}

	med := mi.Medication
	isSelected := index == m.Index()

	now := time.Now()
	if d.now != nil {
		now = d.now()
	}

	var prefix string
	if med.TakenToday(now) {
		prefix = theme.TakenStyle.Render("✓")
	} else {
		prefix = theme.DueStyle.Render("○")
	}

	timeStr := lipgloss.NewStyle().
		Foreground(theme.ColorBlue).
		Render(med.FormatTime(d.clock24))

	freqBadge := ""
	if med.Frequency != model.FrequencyDaily {
		freqBadge = theme.FrequencyStyle(med.Frequency).
			Render(model.FrequencyLabel(med.Frequency))
	}

	takenStr := ""
	if med.TakenToday(now) && med.LastTaken != nil {
		layout := "3:04 PM"
		if d.clock24 {
			layout = "15:04"
		}
		takenStr = lipgloss.NewStyle().
			Foreground(theme.ColorGreen).
			Render(" taken " + med.LastTaken.Local().Format(layout))
	}

	notesMark := ""
	if med.Notes != "" {
		notesMark = lipgloss.NewStyle().
			Foreground(theme.ColorGray).
			Render(" ≡")
	}

	line := fmt.Sprintf(
		"%s %s  %s  %s%s%s%s",
		prefix, timeStr, med.Name,
		lipgloss.NewStyle().Foreground(theme.ColorGray).Render(med.Dosage),
		freqBadge, takenStr, notesMark,
	)

	if !med.Active {
		line = theme.InactiveStyle.Render(line)
	}

	if isSelected {
		line = theme.SelectedItemStyle.Render(line)
	} else {
		line = theme.ListItemStyle.Render(line)
	}

	fmt.Fprint(w, line)
}
