package schedule

import (
	"fmt"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/mediremind/internal/model"
)

// ReminderMsg is a tea.Msg sent when a registered trigger fires.
type ReminderMsg struct {
	MedicationID int64
	Name         string
	Dosage       string
	FiredAt      time.Time

	// Err holds the notifier delivery error, if any. The reminder is
	// still surfaced in the UI when delivery fails.
	Err error
}

// entry holds a registered medication and its next trigger instant.
type entry struct {
	med  model.Medication
	next time.Time
}

// Scheduler keeps one pending trigger per medication and delivers
// reminders when they come due. A single goroutine ticks at a fixed
// interval; results flow to the Bubble Tea runtime through a buffered
// channel drained by a recurring subscription command.
type Scheduler struct {
	notifier Notifier
	tick     time.Duration
	entries  map[int64]*entry
	resultCh chan ReminderMsg
	stopCh   chan struct{}
	mu       sync.Mutex
	running  bool

	// now is swappable for tests.
	now func() time.Time
}

// New creates a Scheduler delivering through the given notifier.
func New(n Notifier, tick time.Duration) *Scheduler {
	if tick <= 0 {
		tick = 30 * time.Second
	}
	return &Scheduler{
		notifier: n,
		tick:     tick,
		entries:  make(map[int64]*entry),
		resultCh: make(chan ReminderMsg, 16),
		now:      time.Now,
	}
}

// Register computes and records the next trigger for a medication,
// keyed by its identifier. As-needed medications have no schedule and
// are skipped.
func (s *Scheduler) Register(med model.Medication) error {
	if med.Frequency == model.FrequencyAsNeeded {
		return nil
	}

	next, err := NextTrigger(med.Time, s.now())
	if err != nil {
		return fmt.Errorf("registering medication %d: %w", med.ID, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[med.ID] = &entry{med: med, next: next}
	return nil
}

// Reschedule cancels any existing trigger for the medication and
// registers a fresh one. Repeated edits never accumulate duplicates:
// there is at most one trigger per identifier.
func (s *Scheduler) Reschedule(med model.Medication) error {
	s.Cancel(med.ID)
	return s.Register(med)
}

// Cancel removes the pending trigger for a medication, if any.
func (s *Scheduler) Cancel(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, id)
}

// Registered reports whether a trigger is pending for the identifier.
func (s *Scheduler) Registered(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[id]
	return ok
}

// NextFire returns the pending trigger instant for the identifier.
func (s *Scheduler) NextFire(id int64) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return time.Time{}, false
	}
	return e.next, true
}

// Count returns the number of pending triggers.
func (s *Scheduler) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Start launches the tick goroutine and returns a subscription command
// that waits for the next reminder. Calling Start twice is a no-op,
// and a stopped scheduler can be started again.
func (s *Scheduler) Start() tea.Cmd {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return s.waitForResult()
	}
	s.running = true
	s.stopCh = make(chan struct{})
	stopCh := s.stopCh
	s.mu.Unlock()

	go s.loop(stopCh)

	return s.waitForResult()
}

// Stop halts the tick goroutine.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return
	}
	close(s.stopCh)
	s.running = false
}

// loop ticks until stopped, delivering whatever came due. The stop
// channel is passed in so a restart never races with a closed one.
func (s *Scheduler) loop(stopCh chan struct{}) {
	ticker := time.NewTicker(s.tick)
	defer ticker.Stop()

	for {
		select {
		case <-stopCh:
			return
		case <-ticker.C:
			s.deliverDue(s.now())
		}
	}
}

// deliverDue fires every entry whose trigger is not after now, advances
// each fired trigger to its next occurrence per its frequency, and
// emits one ReminderMsg per fired medication.
func (s *Scheduler) deliverDue(now time.Time) {
	s.mu.Lock()
	var fired []model.Medication
	for _, e := range s.entries {
		if e.next.After(now) {
			continue
		}
		fired = append(fired, e.med)
		e.next = Advance(e.next, e.med.Frequency)
		// Catch up if the process was asleep across occurrences.
		for !e.next.After(now) {
			e.next = Advance(e.next, e.med.Frequency)
		}
	}
	s.mu.Unlock()

	for _, med := range fired {
		err := s.notifier.Notify(
			"Medication reminder",
			fmt.Sprintf("Time to take %s (%s)", med.Name, med.Dosage),
		)
		s.sendResult(ReminderMsg{
			MedicationID: med.ID,
			Name:         med.Name,
			Dosage:       med.Dosage,
			FiredAt:      now,
			Err:          err,
		})
	}
}

// sendResult sends a ReminderMsg without blocking the tick goroutine.
func (s *Scheduler) sendResult(msg ReminderMsg) {
	select {
	case s.resultCh <- msg:
	default:
		// Drop if the channel is full to avoid blocking
	}
}

// waitForResult returns a tea.Cmd that waits for the next reminder.
func (s *Scheduler) waitForResult() tea.Cmd {
	return func() tea.Msg {
		result, ok := <-s.resultCh
		if !ok {
			return nil
		}
		return result
	}
}

// WaitForNextResult returns a tea.Cmd that waits for the next reminder.
// Call it after processing a ReminderMsg to keep listening.
func (s *Scheduler) WaitForNextResult() tea.Cmd {
	return s.waitForResult()
}
