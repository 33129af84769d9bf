package schedule

import (
	"fmt"
	"time"

	"github.com/nhle/mediremind/internal/model"
)

// NextTrigger computes the next absolute instant a reminder should fire
// for the given "HH:MM" time-of-day. Today's occurrence is used unless
// it is not after now, in which case the trigger rolls to the next day.
func NextTrigger(timeOfDay string, now time.Time) (time.Time, error) {
	hour, minute, err := model.ParseClock(timeOfDay)
	if err != nil {
		return time.Time{}, fmt.Errorf("computing trigger: %w", err)
	}

	trigger := time.Date(
		now.Year(), now.Month(), now.Day(),
		hour, minute, 0, 0, now.Location(),
	)
	if !trigger.After(now) {
		trigger = trigger.AddDate(0, 0, 1)
	}
	return trigger, nil
}

// Advance returns the occurrence that follows a fired trigger for the
// given frequency. Daily repeats every day, weekly every 7 days,
// monthly every calendar month. As-needed medications are never
// registered, so they do not reach here; they fall through to daily.
func Advance(fired time.Time, frequency string) time.Time {
	switch frequency {
	case model.FrequencyWeekly:
		return fired.AddDate(0, 0, 7)
	case model.FrequencyMonthly:
		return fired.AddDate(0, 1, 0)
	default:
		return fired.AddDate(0, 0, 1)
	}
}
