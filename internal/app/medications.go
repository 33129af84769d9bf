package app

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/mediremind/internal/model"
	"github.com/nhle/mediremind/internal/store"
	"github.com/nhle/mediremind/internal/ui/detail"
)

// remindersArmedMsg reports the result of arming startup reminders.
type remindersArmedMsg struct {
	count int
	err   error
}

// medCreatedResultMsg is sent after a medication is persisted.
type medCreatedResultMsg struct {
	id  int64
	err error
}

// medUpdatedResultMsg is sent after a medication is updated.
type medUpdatedResultMsg struct {
	id  int64
	err error
}

// medDeletedResultMsg is sent after a medication is archived.
type medDeletedResultMsg struct{ err error }

// medTakenResultMsg is sent after a dose is recorded.
type medTakenResultMsg struct {
	id  int64
	err error
}

// medEditReadyMsg carries the medication to be edited.
type medEditReadyMsg struct {
	med *model.Medication
}

// armReminders registers a trigger for every active medication. Run
// once at startup; edits afterwards keep the scheduler in sync
// incrementally.
func (m *Model) armReminders() tea.Cmd {
	s := m.store
	sched := m.scheduler
	return func() tea.Msg {
		meds, err := s.GetMedications(context.Background(), store.MedicationFilter{
			ActiveOnly: true,
		})
		if err != nil {
			return remindersArmedMsg{err: err}
		}
		armed := 0
		for _, med := range meds {
			if err := sched.Register(med); err != nil {
				return remindersArmedMsg{count: armed, err: err}
			}
			armed++
		}
		return remindersArmedMsg{count: armed}
	}
}

// createMedication persists a new medication and arms its reminder.
func (m *Model) createMedication(med model.Medication) tea.Cmd {
	s := m.store
	sched := m.scheduler
	return func() tea.Msg {
		ctx := context.Background()
		id, err := s.CreateMedication(ctx, med)
		if err != nil {
			return medCreatedResultMsg{err: err}
		}
		// Re-read so the scheduler sees the stored, normalized row.
		stored, err := s.GetMedicationByID(ctx, id)
		if err != nil {
			return medCreatedResultMsg{id: id, err: err}
		}
		if err := sched.Register(*stored); err != nil {
			return medCreatedResultMsg{id: id, err: err}
		}
		return medCreatedResultMsg{id: id}
	}
}

// updateMedication persists an edit and reschedules its reminder so
// the old trigger never fires.
func (m *Model) updateMedication(med model.Medication) tea.Cmd {
	s := m.store
	sched := m.scheduler
	return func() tea.Msg {
		ctx := context.Background()
		existing, err := s.GetMedicationByID(ctx, med.ID)
		if err != nil {
			return medUpdatedResultMsg{id: med.ID, err: err}
		}

		existing.Name = med.Name
		existing.Dosage = med.Dosage
		existing.Time = med.Time
		existing.Frequency = med.Frequency
		existing.Notes = med.Notes

		if err := s.UpdateMedication(ctx, *existing); err != nil {
			return medUpdatedResultMsg{id: med.ID, err: err}
		}
		stored, err := s.GetMedicationByID(ctx, med.ID)
		if err != nil {
			return medUpdatedResultMsg{id: med.ID, err: err}
		}
		if stored.Active {
			if err := sched.Reschedule(*stored); err != nil {
				return medUpdatedResultMsg{id: med.ID, err: err}
			}
		}
		return medUpdatedResultMsg{id: med.ID}
	}
}

// deleteMedication archives a medication and cancels its reminder.
// History is preserved; the row is hidden, not removed.
func (m *Model) deleteMedication(id int64) tea.Cmd {
	s := m.store
	sched := m.scheduler
	return func() tea.Msg {
		if err := s.SoftDeleteMedication(context.Background(), id); err != nil {
			return medDeletedResultMsg{err: err}
		}
		sched.Cancel(id)
		return medDeletedResultMsg{}
	}
}

// restoreMedication un-archives a medication by the palette argument
// and re-arms its reminder.
func (m *Model) restoreMedication(arg string) tea.Cmd {
	s := m.store
	sched := m.scheduler
	list := m.medList
	return func() tea.Msg {
		id, err := strconv.ParseInt(strings.TrimSpace(arg), 10, 64)
		if err != nil {
			return medUpdatedResultMsg{err: fmt.Errorf("restore needs a numeric id")}
		}
		ctx := context.Background()
		if err := s.RestoreMedication(ctx, id); err != nil {
			return medUpdatedResultMsg{id: id, err: err}
		}
		stored, err := s.GetMedicationByID(ctx, id)
		if err != nil {
			return medUpdatedResultMsg{id: id, err: err}
		}
		if err := sched.Register(*stored); err != nil {
			return medUpdatedResultMsg{id: id, err: err}
		}
		return list.LoadMedications()()
	}
}

// markTaken records a dose for the medication right now. Acknowledging
// twice on the same day is a no-op so the history holds one event per
// taken day.
func (m *Model) markTaken(id int64) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		ctx := context.Background()
		now := time.Now()

		med, err := s.GetMedicationByID(ctx, id)
		if err != nil {
			return medTakenResultMsg{id: id, err: err}
		}
		if med.TakenToday(now) {
			return medTakenResultMsg{id: id}
		}

		err = s.MarkTaken(ctx, id, now)
		return medTakenResultMsg{id: id, err: err}
	}
}

// loadMedicationDetail loads a medication and its recent dose history
// for the detail view.
func (m *Model) loadMedicationDetail(id int64) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		ctx := context.Background()
		med, err := s.GetMedicationByID(ctx, id)
		if err != nil {
			return detail.DetailLoadedMsg{Err: err}
		}
		doses, err := s.GetDoseEvents(ctx, id, 30)
		if err != nil {
			return detail.DetailLoadedMsg{Medication: med, Err: err}
		}
		return detail.DetailLoadedMsg{Medication: med, Doses: doses}
	}
}

// startEdit loads a medication by ID and prepares the edit form.
func (m *Model) startEdit(id int64) tea.Cmd {
	s := m.store
	return func() tea.Msg {
		med, err := s.GetMedicationByID(context.Background(), id)
		if err != nil {
			return medEditReadyMsg{med: nil}
		}
		return medEditReadyMsg{med: med}
	}
}
