package store

import (
	"context"
	"time"

	"github.com/nhle/mediremind/internal/model"
)

// MedicationFilter controls filtering, sorting, and pagination for
// medication queries.
type MedicationFilter struct {
	ActiveOnly bool    // exclude soft-deleted rows
	Frequency  *string // one of model.Frequencies, or nil (all)
	Query      *string // search name + notes
	SortBy     string  // "time", "name", "created_at", "updated_at"
	SortDesc   bool
	Limit      int
	Offset     int
}

// Store defines the persistence interface for medications and their
// dose history.
type Store interface {
	// === Medication CRUD ===

	CreateMedication(ctx context.Context, med model.Medication) (int64, error)
	GetMedications(ctx context.Context, filter MedicationFilter) ([]model.Medication, error)
	GetMedicationByID(ctx context.Context, id int64) (*model.Medication, error)
	UpdateMedication(ctx context.Context, med model.Medication) error
	CountActiveMedications(ctx context.Context) (int, error)

	// === Dose acknowledgment ===

	// MarkTaken sets last_taken and appends a dose event in one transaction.
	MarkTaken(ctx context.Context, id int64, takenAt time.Time) error
	GetDoseEvents(ctx context.Context, medicationID int64, limit int) ([]model.DoseEvent, error)

	// === Soft delete ===

	SoftDeleteMedication(ctx context.Context, id int64) error
	RestoreMedication(ctx context.Context, id int64) error
}
