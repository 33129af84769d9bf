package model

import "time"

// DoseEvent records a single acknowledged dose. Events are append-only
// and survive soft-deletion of the parent medication, so adherence
// history is never lost.
type DoseEvent struct {
	// ID is the unique identifier for this event.
	ID string `json:"id" db:"id"`

	// MedicationID links the event to the medication it belongs to.
	MedicationID int64 `json:"medication_id" db:"medication_id"`

	// TakenAt is when the user acknowledged the dose.
	TakenAt time.Time `json:"taken_at" db:"taken_at"`

	// ScheduledTime is the "HH:MM" slot the dose satisfied.
	ScheduledTime string `json:"scheduled_time" db:"scheduled_time"`
}
