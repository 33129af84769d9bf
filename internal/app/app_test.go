package app

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/mediremind/internal/model"
	"github.com/nhle/mediremind/internal/schedule"
	"github.com/nhle/mediremind/internal/store"
	"github.com/nhle/mediremind/internal/ui/medlist"
	"github.com/nhle/mediremind/tests/testutil"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestApp(t *testing.T) (Model, *store.SQLiteStore) {
	t.Helper()

	s := testutil.NewTestStore(t)
	sched := schedule.New(schedule.NoopNotifier{}, time.Hour)
	m := New(s, sched, &model.AppConfig{})

	mm, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return mm.(Model), s
}

func seedMedication(t *testing.T, s *store.SQLiteStore) model.Medication {
	t.Helper()

	id, err := s.CreateMedication(context.Background(), model.Medication{
		Name:      "Aspirin",
		Dosage:    "100mg",
		Time:      "08:00",
		Frequency: model.FrequencyDaily,
		Active:    true,
	})
	if err != nil {
		t.Fatalf("creating medication: %v", err)
	}
	med, err := s.GetMedicationByID(context.Background(), id)
	if err != nil {
		t.Fatalf("reading medication back: %v", err)
	}
	return *med
}

// loadList pushes the current active medications into the list view the
// same way the runtime does, via a MedicationsLoadedMsg.
func loadList(t *testing.T, m Model, s *store.SQLiteStore) Model {
	t.Helper()

	meds, err := s.GetMedications(context.Background(), store.MedicationFilter{
		ActiveOnly: true,
	})
	if err != nil {
		t.Fatalf("loading medications: %v", err)
	}
	mm, _ := m.Update(medlist.MedicationsLoadedMsg{Medications: meds})
	return mm.(Model)
}

func TestDeleteConfirmDeclineKeepsMedication(t *testing.T) {
	m, s := newTestApp(t)
	med := seedMedication(t, s)
	m = loadList(t, m, s)

	mm, _ := m.Update(keyMsg("d"))
	m = mm.(Model)
	if !m.medList.CapturingInput() {
		t.Fatal("expected a pending delete confirmation after d")
	}

	// n declines the prompt; it must not open the create form.
	mm, cmd := m.Update(keyMsg("n"))
	m = mm.(Model)
	if m.currentView != ViewList {
		t.Errorf("declining with n switched to view %v, want ViewList", m.currentView)
	}
	if m.medList.CapturingInput() {
		t.Error("confirmation still pending after decline")
	}
	if cmd != nil {
		if _, ok := cmd().(medlist.DeleteRequestedMsg); ok {
			t.Error("decline emitted a delete request")
		}
	}

	stored, err := s.GetMedicationByID(context.Background(), med.ID)
	if err != nil {
		t.Fatalf("reading medication back: %v", err)
	}
	if !stored.Active {
		t.Error("medication archived after a declined confirmation")
	}
}

func TestDeleteConfirmAcceptArchives(t *testing.T) {
	m, s := newTestApp(t)
	med := seedMedication(t, s)
	m = loadList(t, m, s)

	mm, _ := m.Update(keyMsg("d"))
	m = mm.(Model)

	mm, cmd := m.Update(keyMsg("y"))
	m = mm.(Model)
	if cmd == nil {
		t.Fatal("expected a command after confirming with y")
	}
	msg := cmd()
	req, ok := msg.(medlist.DeleteRequestedMsg)
	if !ok {
		t.Fatalf("confirmation produced %T, want DeleteRequestedMsg", msg)
	}
	if req.MedicationID != med.ID {
		t.Errorf("delete requested for %d, want %d", req.MedicationID, med.ID)
	}

	mm, cmd = m.Update(req)
	m = mm.(Model)
	if cmd == nil {
		t.Fatal("expected an archive command for the delete request")
	}
	archived := cmd()
	res, ok := archived.(medDeletedResultMsg)
	if !ok {
		t.Fatalf("archive produced %T, want medDeletedResultMsg", archived)
	}
	if res.err != nil {
		t.Fatalf("archiving: %v", res.err)
	}

	stored, err := s.GetMedicationByID(context.Background(), med.ID)
	if err != nil {
		t.Fatalf("reading medication back: %v", err)
	}
	if stored.Active {
		t.Error("medication still active after a confirmed delete")
	}
}

func TestSearchModeSuppressesGlobalKeys(t *testing.T) {
	m, s := newTestApp(t)
	seedMedication(t, s)
	m = loadList(t, m, s)

	mm, _ := m.Update(keyMsg("/"))
	m = mm.(Model)
	if !m.medList.CapturingInput() {
		t.Fatal("expected search mode after /")
	}

	// Typing a query with letters bound to global shortcuts must not
	// quit, open forms, or switch views.
	for _, k := range []string{"q", "u", "i", "n", "e"} {
		mm, cmd := m.Update(keyMsg(k))
		m = mm.(Model)
		if cmd != nil {
			if _, quit := cmd().(tea.QuitMsg); quit {
				t.Fatalf("typing %q in search quit the app", k)
			}
		}
		if m.currentView != ViewList {
			t.Fatalf("typing %q in search switched to view %v", k, m.currentView)
		}
	}
}
