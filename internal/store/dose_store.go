package store

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/nhle/mediremind/internal/model"
)

// MarkTaken records a dose acknowledgment: it advances last_taken on
// the medication and appends a dose event, in a single transaction so
// history and the derived taken-today state never disagree.
func (s *SQLiteStore) MarkTaken(
	ctx context.Context,
	id int64,
	takenAt time.Time,
) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	var clock string
	err = tx.GetContext(ctx, &clock, "SELECT time FROM medications WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("medication %d not found: %w", id, err)
	}

	_, err = tx.ExecContext(ctx,
		"UPDATE medications SET last_taken = ?, updated_at = ? WHERE id = ?",
		takenAt.UTC(), time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("marking medication %d taken: %w", id, err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO dose_events (id, medication_id, taken_at, scheduled_time)
		VALUES (?, ?, ?, ?)`,
		uuid.New().String(), id, takenAt.UTC(), clock,
	)
	if err != nil {
		return fmt.Errorf("recording dose event for medication %d: %w", id, err)
	}

	return tx.Commit()
}

// GetDoseEvents returns the most recent dose events for a medication,
// newest first. A limit of 0 means no limit.
func (s *SQLiteStore) GetDoseEvents(
	ctx context.Context,
	medicationID int64,
	limit int,
) ([]model.DoseEvent, error) {
	query := "SELECT * FROM dose_events WHERE medication_id = ? ORDER BY taken_at DESC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryxContext(ctx, query, medicationID)
	if err != nil {
		return nil, fmt.Errorf("querying dose events: %w", err)
	}
	defer rows.Close()

	var events []model.DoseEvent
	for rows.Next() {
		var ev model.DoseEvent
		err := rows.Scan(&ev.ID, &ev.MedicationID, &ev.TakenAt, &ev.ScheduledTime)
		if err != nil {
			return nil, fmt.Errorf("scanning dose event row: %w", err)
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
