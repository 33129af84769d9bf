package schedule

import (
	"sync"
	"testing"
	"time"

	"github.com/nhle/mediremind/internal/model"
)

type fakeNotifier struct {
	mu     sync.Mutex
	bodies []string
}

func (f *fakeNotifier) Notify(title, body string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bodies = append(f.bodies, body)
	return nil
}

func (f *fakeNotifier) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.bodies)
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestRegisterComputesNextTrigger(t *testing.T) {
	now := time.Date(2026, 3, 10, 7, 0, 0, 0, time.Local)
	s := New(&fakeNotifier{}, time.Second)
	s.now = fixedClock(now)

	med := model.Medication{ID: 1, Name: "Aspirin", Dosage: "100mg",
		Time: "08:00", Frequency: model.FrequencyDaily}
	if err := s.Register(med); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	if !s.Registered(1) {
		t.Fatal("expected medication 1 registered")
	}
	next, ok := s.NextFire(1)
	if !ok {
		t.Fatal("NextFire reported no entry")
	}
	want := time.Date(2026, 3, 10, 8, 0, 0, 0, time.Local)
	if !next.Equal(want) {
		t.Errorf("next fire = %v, want %v", next, want)
	}
}

func TestRegisterSkipsAsNeeded(t *testing.T) {
	s := New(&fakeNotifier{}, time.Second)

	med := model.Medication{ID: 1, Name: "Ibuprofen", Dosage: "200mg",
		Time: "08:00", Frequency: model.FrequencyAsNeeded}
	if err := s.Register(med); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if s.Registered(1) {
		t.Error("as-needed medication should not be registered")
	}
	if s.Count() != 0 {
		t.Errorf("Count = %d, want 0", s.Count())
	}
}

func TestRescheduleKeepsSingleTrigger(t *testing.T) {
	now := time.Date(2026, 3, 10, 7, 0, 0, 0, time.Local)
	s := New(&fakeNotifier{}, time.Second)
	s.now = fixedClock(now)

	med := model.Medication{ID: 1, Name: "Aspirin", Dosage: "100mg",
		Time: "08:00", Frequency: model.FrequencyDaily}
	if err := s.Register(med); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Repeated edits must never pile up extra triggers.
	for _, clock := range []string{"09:00", "10:00", "11:30"} {
		med.Time = clock
		if err := s.Reschedule(med); err != nil {
			t.Fatalf("Reschedule failed: %v", err)
		}
	}

	if s.Count() != 1 {
		t.Fatalf("Count = %d after edits, want 1", s.Count())
	}
	next, _ := s.NextFire(1)
	want := time.Date(2026, 3, 10, 11, 30, 0, 0, time.Local)
	if !next.Equal(want) {
		t.Errorf("next fire = %v, want %v", next, want)
	}
}

func TestCancel(t *testing.T) {
	now := time.Date(2026, 3, 10, 7, 0, 0, 0, time.Local)
	s := New(&fakeNotifier{}, time.Second)
	s.now = fixedClock(now)

	med := model.Medication{ID: 1, Name: "Aspirin", Dosage: "100mg",
		Time: "08:00", Frequency: model.FrequencyDaily}
	if err := s.Register(med); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	s.Cancel(1)
	if s.Registered(1) {
		t.Error("expected medication 1 cancelled")
	}

	// Cancelling a missing id is a no-op.
	s.Cancel(42)
}

func TestDeliverDueFiresAndAdvances(t *testing.T) {
	registeredAt := time.Date(2026, 3, 10, 7, 0, 0, 0, time.Local)
	fn := &fakeNotifier{}
	s := New(fn, time.Second)
	s.now = fixedClock(registeredAt)

	med := model.Medication{ID: 1, Name: "Aspirin", Dosage: "100mg",
		Time: "08:00", Frequency: model.FrequencyDaily}
	if err := s.Register(med); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Not yet due.
	s.deliverDue(time.Date(2026, 3, 10, 7, 59, 0, 0, time.Local))
	if fn.count() != 0 {
		t.Fatalf("notified %d times before the trigger, want 0", fn.count())
	}

	// Due now.
	firedAt := time.Date(2026, 3, 10, 8, 0, 30, 0, time.Local)
	s.deliverDue(firedAt)
	if fn.count() != 1 {
		t.Fatalf("notified %d times, want 1", fn.count())
	}
	if fn.bodies[0] != "Time to take Aspirin (100mg)" {
		t.Errorf("notification body = %q", fn.bodies[0])
	}

	msg := <-s.resultCh
	if msg.MedicationID != 1 || msg.Name != "Aspirin" {
		t.Errorf("unexpected reminder msg: %+v", msg)
	}

	// Trigger advanced to tomorrow, entry still armed.
	next, ok := s.NextFire(1)
	if !ok {
		t.Fatal("entry dropped after firing")
	}
	want := time.Date(2026, 3, 11, 8, 0, 0, 0, time.Local)
	if !next.Equal(want) {
		t.Errorf("next fire = %v, want %v", next, want)
	}

	// Same instant again fires nothing.
	s.deliverDue(firedAt)
	if fn.count() != 1 {
		t.Errorf("notified %d times after re-check, want still 1", fn.count())
	}
}

func TestDeliverDueCatchesUpMissedOccurrences(t *testing.T) {
	registeredAt := time.Date(2026, 3, 10, 7, 0, 0, 0, time.Local)
	fn := &fakeNotifier{}
	s := New(fn, time.Second)
	s.now = fixedClock(registeredAt)

	med := model.Medication{ID: 1, Name: "Aspirin", Dosage: "100mg",
		Time: "08:00", Frequency: model.FrequencyDaily}
	if err := s.Register(med); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	// Three days later: one notification, trigger lands in the future.
	later := time.Date(2026, 3, 13, 9, 0, 0, 0, time.Local)
	s.deliverDue(later)
	if fn.count() != 1 {
		t.Fatalf("notified %d times after sleep, want 1", fn.count())
	}
	next, _ := s.NextFire(1)
	if !next.After(later) {
		t.Errorf("next fire %v not after %v", next, later)
	}
}

func TestDeliverDueWeeklyAdvance(t *testing.T) {
	registeredAt := time.Date(2026, 3, 10, 7, 0, 0, 0, time.Local)
	fn := &fakeNotifier{}
	s := New(fn, time.Second)
	s.now = fixedClock(registeredAt)

	med := model.Medication{ID: 2, Name: "Vitamin D", Dosage: "1000IU",
		Time: "08:00", Frequency: model.FrequencyWeekly}
	if err := s.Register(med); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	s.deliverDue(time.Date(2026, 3, 10, 8, 1, 0, 0, time.Local))
	next, _ := s.NextFire(2)
	want := time.Date(2026, 3, 17, 8, 0, 0, 0, time.Local)
	if !next.Equal(want) {
		t.Errorf("next weekly fire = %v, want %v", next, want)
	}
}

func TestStartStopIdempotent(t *testing.T) {
	s := New(&fakeNotifier{}, time.Hour)

	cmd := s.Start()
	if cmd == nil {
		t.Fatal("Start returned nil command")
	}
	// Second Start is a no-op but still returns a subscription.
	if s.Start() == nil {
		t.Fatal("second Start returned nil command")
	}

	s.Stop()
	s.Stop()
}

func TestRestartAfterStop(t *testing.T) {
	s := New(&fakeNotifier{}, time.Hour)

	s.Start()
	s.mu.Lock()
	firstStop := s.stopCh
	s.mu.Unlock()

	s.Stop()

	if s.Start() == nil {
		t.Fatal("restart returned nil command")
	}

	s.mu.Lock()
	running := s.running
	secondStop := s.stopCh
	s.mu.Unlock()

	if !running {
		t.Fatal("expected scheduler running after restart")
	}
	if secondStop == firstStop {
		t.Fatal("restart reused the closed stop channel")
	}
	select {
	case <-secondStop:
		t.Fatal("stop channel already closed after restart")
	default:
	}

	s.Stop()
}
