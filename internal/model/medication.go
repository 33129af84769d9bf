package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Frequency values for how often a dose repeats.
const (
	FrequencyDaily    = "daily"
	FrequencyWeekly   = "weekly"
	FrequencyMonthly  = "monthly"
	FrequencyAsNeeded = "as_needed"
)

// Frequencies lists the valid frequency values in display order.
var Frequencies = []string{
	FrequencyDaily,
	FrequencyWeekly,
	FrequencyMonthly,
	FrequencyAsNeeded,
}

// IsValidFrequency reports whether s is one of the known frequency values.
func IsValidFrequency(s string) bool {
	for _, f := range Frequencies {
		if s == f {
			return true
		}
	}
	return false
}

// FrequencyLabel returns a human-readable label for a frequency value.
func FrequencyLabel(f string) string {
	switch f {
	case FrequencyDaily:
		return "Daily"
	case FrequencyWeekly:
		return "Weekly"
	case FrequencyMonthly:
		return "Monthly"
	case FrequencyAsNeeded:
		return "As needed"
	default:
		return f
	}
}

// Medication is a user-entered drug with its dose schedule.
// Deletion is soft: Active is cleared and the row is retained so the
// dose history stays queryable.
type Medication struct {
	ID        int64      `json:"id" db:"id"`
	Name      string     `json:"name" db:"name"`
	Dosage    string     `json:"dosage" db:"dosage"`
	Time      string     `json:"time" db:"time"` // zero-padded "HH:MM", no date component
	Frequency string     `json:"frequency" db:"frequency"`
	Notes     string     `json:"notes" db:"notes"`
	Active    bool       `json:"is_active" db:"is_active"`
	LastTaken *time.Time `json:"last_taken,omitempty" db:"last_taken"`
	CreatedAt time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt time.Time  `json:"updated_at" db:"updated_at"`
}

// TakenToday reports whether the last acknowledged dose falls on the
// same local calendar date as now. There is no stored flag; the taken
// indicator resets implicitly at local midnight.
func (m Medication) TakenToday(now time.Time) bool {
	if m.LastTaken == nil {
		return false
	}
	ty, tm, td := m.LastTaken.Local().Date()
	ny, nm, nd := now.Local().Date()
	return ty == ny && tm == nm && td == nd
}

// DisplayTime returns the scheduled time formatted as a 12-hour clock
// string, e.g. "8:00 AM" for "08:00".
func (m Medication) DisplayTime() string {
	s, err := FormatClock12(m.Time)
	if err != nil {
		return m.Time
	}
	return s
}

// FormatTime renders the scheduled time for display, honoring the
// 24-hour clock preference.
func (m Medication) FormatTime(clock24 bool) string {
	if clock24 {
		return m.Time
	}
	return m.DisplayTime()
}

// ParseClock parses an "HH:MM" (or "H:MM") clock string into hour and
// minute, validating both ranges.
func ParseClock(s string) (hour, minute int, err error) {
	hs, ms, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, 0, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	hour, err = strconv.Atoi(hs)
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err = strconv.Atoi(ms)
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour, minute, nil
}

// NormalizeClock returns the zero-padded "HH:MM" storage form of a
// clock string.
func NormalizeClock(s string) (string, error) {
	hour, minute, err := ParseClock(s)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%02d:%02d", hour, minute), nil
}

// FormatClock12 converts a stored "HH:MM" string to a 12-hour display
// string with an AM/PM suffix. Hour 0 renders as 12 AM, hour 12 as 12 PM.
func FormatClock12(s string) (string, error) {
	hour, minute, err := ParseClock(s)
	if err != nil {
		return "", err
	}
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	h := hour % 12
	if h == 0 {
		h = 12
	}
	return fmt.Sprintf("%d:%02d %s", h, minute, suffix), nil
}
