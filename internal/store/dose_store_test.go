package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/nhle/mediremind/internal/model"
	"github.com/nhle/mediremind/tests/testutil"
)

func TestMarkTaken(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	id, err := s.CreateMedication(ctx, model.Medication{
		Name: "Aspirin", Dosage: "100mg", Time: "08:00",
	})
	if err != nil {
		t.Fatalf("CreateMedication failed: %v", err)
	}

	takenAt := time.Now()
	if err := s.MarkTaken(ctx, id, takenAt); err != nil {
		t.Fatalf("MarkTaken failed: %v", err)
	}

	med, err := s.GetMedicationByID(ctx, id)
	if err != nil {
		t.Fatalf("GetMedicationByID failed: %v", err)
	}
	if med.LastTaken == nil {
		t.Fatal("LastTaken not set after MarkTaken")
	}
	if !med.TakenToday(takenAt) {
		t.Error("medication should read as taken today")
	}

	events, err := s.GetDoseEvents(ctx, id, 0)
	if err != nil {
		t.Fatalf("GetDoseEvents failed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("expected exactly 1 dose event, got %d", len(events))
	}
	if events[0].MedicationID != id {
		t.Errorf("event MedicationID = %d, want %d", events[0].MedicationID, id)
	}
	if events[0].ScheduledTime != "08:00" {
		t.Errorf("event ScheduledTime = %q, want %q", events[0].ScheduledTime, "08:00")
	}
	if events[0].ID == "" {
		t.Error("event should have a generated id")
	}
}

func TestMarkTakenNotFound(t *testing.T) {
	s := testutil.NewTestStore(t)

	err := s.MarkTaken(context.Background(), 9999, time.Now())
	if err == nil {
		t.Fatal("MarkTaken succeeded for missing id, want error")
	}
}

func TestGetDoseEventsOrderAndLimit(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	id, err := s.CreateMedication(ctx, model.Medication{
		Name: "Aspirin", Dosage: "100mg", Time: "08:00",
	})
	if err != nil {
		t.Fatalf("CreateMedication failed: %v", err)
	}

	base := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)
	for day := 0; day < 3; day++ {
		if err := s.MarkTaken(ctx, id, base.AddDate(0, 0, day)); err != nil {
			t.Fatalf("MarkTaken failed: %v", err)
		}
	}

	events, err := s.GetDoseEvents(ctx, id, 0)
	if err != nil {
		t.Fatalf("GetDoseEvents failed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("expected 3 dose events, got %d", len(events))
	}
	for i := 1; i < len(events); i++ {
		if events[i].TakenAt.After(events[i-1].TakenAt) {
			t.Error("dose events not sorted newest first")
		}
	}

	limited, err := s.GetDoseEvents(ctx, id, 2)
	if err != nil {
		t.Fatalf("GetDoseEvents with limit failed: %v", err)
	}
	if len(limited) != 2 {
		t.Errorf("expected 2 dose events with limit, got %d", len(limited))
	}
}

func TestDoseHistorySurvivesSoftDelete(t *testing.T) {
	s := testutil.NewTestStore(t)
	ctx := context.Background()

	id, err := s.CreateMedication(ctx, model.Medication{
		Name: "Aspirin", Dosage: "100mg", Time: "08:00",
	})
	if err != nil {
		t.Fatalf("CreateMedication failed: %v", err)
	}
	if err := s.MarkTaken(ctx, id, time.Now()); err != nil {
		t.Fatalf("MarkTaken failed: %v", err)
	}
	if err := s.SoftDeleteMedication(ctx, id); err != nil {
		t.Fatalf("SoftDeleteMedication failed: %v", err)
	}

	events, err := s.GetDoseEvents(ctx, id, 0)
	if err != nil {
		t.Fatalf("GetDoseEvents failed: %v", err)
	}
	if len(events) != 1 {
		t.Errorf("expected dose history to survive archival, got %d events", len(events))
	}
}
