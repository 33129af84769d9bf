package schedule

import (
	"testing"
	"time"

	"github.com/nhle/mediremind/internal/model"
)

func TestNextTrigger(t *testing.T) {
	loc := time.Local

	t.Run("later today", func(t *testing.T) {
		now := time.Date(2026, 3, 10, 7, 0, 0, 0, loc)
		got, err := NextTrigger("08:00", now)
		if err != nil {
			t.Fatalf("NextTrigger failed: %v", err)
		}
		want := time.Date(2026, 3, 10, 8, 0, 0, 0, loc)
		if !got.Equal(want) {
			t.Errorf("NextTrigger = %v, want %v", got, want)
		}
	})

	t.Run("already passed rolls to tomorrow", func(t *testing.T) {
		now := time.Date(2026, 3, 10, 9, 0, 0, 0, loc)
		got, err := NextTrigger("08:00", now)
		if err != nil {
			t.Fatalf("NextTrigger failed: %v", err)
		}
		want := time.Date(2026, 3, 11, 8, 0, 0, 0, loc)
		if !got.Equal(want) {
			t.Errorf("NextTrigger = %v, want %v", got, want)
		}
	})

	t.Run("exactly now rolls to tomorrow", func(t *testing.T) {
		now := time.Date(2026, 3, 10, 8, 0, 0, 0, loc)
		got, err := NextTrigger("08:00", now)
		if err != nil {
			t.Fatalf("NextTrigger failed: %v", err)
		}
		want := time.Date(2026, 3, 11, 8, 0, 0, 0, loc)
		if !got.Equal(want) {
			t.Errorf("NextTrigger = %v, want %v", got, want)
		}
	})

	t.Run("invalid time", func(t *testing.T) {
		if _, err := NextTrigger("25:00", time.Now()); err == nil {
			t.Error("NextTrigger succeeded for invalid time, want error")
		}
	})
}

func TestAdvance(t *testing.T) {
	fired := time.Date(2026, 3, 10, 8, 0, 0, 0, time.Local)

	tests := []struct {
		frequency string
		want      time.Time
	}{
		{model.FrequencyDaily, fired.AddDate(0, 0, 1)},
		{model.FrequencyWeekly, fired.AddDate(0, 0, 7)},
		{model.FrequencyMonthly, time.Date(2026, 4, 10, 8, 0, 0, 0, time.Local)},
		{"", fired.AddDate(0, 0, 1)},
	}

	for _, tt := range tests {
		got := Advance(fired, tt.frequency)
		if !got.Equal(tt.want) {
			t.Errorf("Advance(%q) = %v, want %v", tt.frequency, got, tt.want)
		}
	}
}
