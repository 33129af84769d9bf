package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nhle/mediremind/internal/model"
)

// CreateMedication inserts a new medication and returns the assigned ID.
// Name, dosage, and notes are trimmed; the scheduled time is normalized
// to zero-padded "HH:MM".
func (s *SQLiteStore) CreateMedication(
	ctx context.Context,
	med model.Medication,
) (int64, error) {
	med.Name = strings.TrimSpace(med.Name)
	med.Dosage = strings.TrimSpace(med.Dosage)
	med.Notes = strings.TrimSpace(med.Notes)

	if med.Name == "" {
		return 0, fmt.Errorf("medication name must not be empty")
	}
	if med.Dosage == "" {
		return 0, fmt.Errorf("medication dosage must not be empty")
	}
	if med.Frequency == "" {
		med.Frequency = model.FrequencyDaily
	}
	if !model.IsValidFrequency(med.Frequency) {
		return 0, fmt.Errorf("unknown frequency %q", med.Frequency)
	}

	clock, err := model.NormalizeClock(med.Time)
	if err != nil {
		return 0, fmt.Errorf("invalid scheduled time: %w", err)
	}
	med.Time = clock

	now := time.Now().UTC()
	med.CreatedAt = now
	med.UpdatedAt = now

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO medications (
			name, dosage, time, frequency, notes,
			is_active, last_taken, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, 1, NULL, ?, ?)`,
		med.Name, med.Dosage, med.Time, med.Frequency, med.Notes,
		med.CreatedAt, med.UpdatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("creating medication: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading new medication id: %w", err)
	}
	return id, nil
}

// UpdateMedication updates an existing medication by ID. The identifier,
// creation timestamp, and last-taken timestamp are never touched here.
func (s *SQLiteStore) UpdateMedication(
	ctx context.Context,
	med model.Medication,
) error {
	med.Name = strings.TrimSpace(med.Name)
	med.Dosage = strings.TrimSpace(med.Dosage)
	med.Notes = strings.TrimSpace(med.Notes)

	if med.Name == "" {
		return fmt.Errorf("medication name must not be empty")
	}
	if med.Dosage == "" {
		return fmt.Errorf("medication dosage must not be empty")
	}
	if !model.IsValidFrequency(med.Frequency) {
		return fmt.Errorf("unknown frequency %q", med.Frequency)
	}

	clock, err := model.NormalizeClock(med.Time)
	if err != nil {
		return fmt.Errorf("invalid scheduled time: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE medications SET
			name = ?, dosage = ?, time = ?, frequency = ?, notes = ?,
			updated_at = ?
		WHERE id = ?`,
		med.Name, med.Dosage, clock, med.Frequency, med.Notes,
		time.Now().UTC(),
		med.ID,
	)
	if err != nil {
		return fmt.Errorf("updating medication %d: %w", med.ID, err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("medication %d not found", med.ID)
	}
	return nil
}

// GetMedicationByID retrieves a single medication by ID, including
// soft-deleted rows so history stays reachable.
func (s *SQLiteStore) GetMedicationByID(
	ctx context.Context,
	id int64,
) (*model.Medication, error) {
	row := s.db.QueryRowxContext(ctx, "SELECT * FROM medications WHERE id = ?", id)

	med, err := scanMedication(row)
	if err != nil {
		return nil, fmt.Errorf("getting medication %d: %w", id, err)
	}
	return &med, nil
}

// GetMedications retrieves medications matching the filter, sorted by
// scheduled time ascending unless the filter says otherwise.
func (s *SQLiteStore) GetMedications(
	ctx context.Context,
	filter MedicationFilter,
) ([]model.Medication, error) {
	query, args := buildMedicationQuery(filter)

	rows, err := s.db.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying medications: %w", err)
	}
	defer rows.Close()

	var meds []model.Medication
	for rows.Next() {
		med, err := scanMedication(rows)
		if err != nil {
			return nil, err
		}
		meds = append(meds, med)
	}
	return meds, rows.Err()
}

// CountActiveMedications returns the number of non-deleted medications.
func (s *SQLiteStore) CountActiveMedications(ctx context.Context) (int, error) {
	var count int
	err := s.db.GetContext(ctx, &count,
		"SELECT COUNT(*) FROM medications WHERE is_active = 1")
	if err != nil {
		return 0, fmt.Errorf("counting medications: %w", err)
	}
	return count, nil
}

// SoftDeleteMedication marks a medication inactive. The row and its
// dose history are retained.
func (s *SQLiteStore) SoftDeleteMedication(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE medications SET is_active = 0, updated_at = ? WHERE id = ?",
		time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("deleting medication %d: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("medication %d not found", id)
	}
	return nil
}

// RestoreMedication reactivates a soft-deleted medication.
func (s *SQLiteStore) RestoreMedication(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx,
		"UPDATE medications SET is_active = 1, updated_at = ? WHERE id = ?",
		time.Now().UTC(), id,
	)
	if err != nil {
		return fmt.Errorf("restoring medication %d: %w", id, err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("medication %d not found", id)
	}
	return nil
}

// buildMedicationQuery constructs the SQL query and args for a
// MedicationFilter.
func buildMedicationQuery(filter MedicationFilter) (string, []interface{}) {
	var conditions []string
	var args []interface{}

	if filter.ActiveOnly {
		conditions = append(conditions, "is_active = 1")
	}
	if filter.Frequency != nil {
		conditions = append(conditions, "frequency = ?")
		args = append(args, *filter.Frequency)
	}
	if filter.Query != nil && *filter.Query != "" {
		conditions = append(conditions, "(name LIKE ? OR notes LIKE ?)")
		q := "%" + *filter.Query + "%"
		args = append(args, q, q)
	}

	query := "SELECT * FROM medications"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}

	// Lexicographic order on zero-padded HH:MM is chronological order.
	sortBy := "time"
	if filter.SortBy != "" {
		allowed := map[string]bool{
			"time":       true,
			"name":       true,
			"created_at": true,
			"updated_at": true,
		}
		if allowed[filter.SortBy] {
			sortBy = filter.SortBy
		}
	}
	direction := "ASC"
	if filter.SortDesc {
		direction = "DESC"
	}
	query += fmt.Sprintf(" ORDER BY %s %s", sortBy, direction)

	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}
	if filter.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", filter.Offset)
	}

	return query, args
}

// scanMedication scans a medication row from sqlx.Rows or sqlx.Row.
func scanMedication(row interface{ Scan(dest ...interface{}) error }) (model.Medication, error) {
	var (
		med       model.Medication
		activeInt int
		lastTaken *time.Time
	)

	err := row.Scan(
		&med.ID, &med.Name, &med.Dosage, &med.Time, &med.Frequency,
		&med.Notes, &activeInt, &lastTaken,
		&med.CreatedAt, &med.UpdatedAt,
	)
	if err != nil {
		return model.Medication{}, fmt.Errorf("scanning medication row: %w", err)
	}

	med.Active = activeInt != 0
	med.LastTaken = lastTaken

	return med, nil
}
