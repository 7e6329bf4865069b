package selection

import (
	"errors"
	"testing"
	"time"

	"rumahstay/pkg/calendar"
)

// fakeAvailability blocks an explicit set of day keys.
type fakeAvailability struct {
	blocked map[string]bool
}

func newFakeAvailability(blockedDays ...string) *fakeAvailability {
	blocked := make(map[string]bool, len(blockedDays))
	for _, d := range blockedDays {
		blocked[d] = true
	}
	return &fakeAvailability{blocked: blocked}
}

func (f *fakeAvailability) Unavailable(d time.Time) bool {
	return f.blocked[calendar.Key(d)]
}

func (f *fakeAvailability) FirstUnavailableWithin(a, b time.Time) (time.Time, bool) {
	end := calendar.Truncate(b)
	for d := calendar.AddDays(calendar.Truncate(a), 1); calendar.Before(d, end); d = calendar.AddDays(d, 1) {
		if f.Unavailable(d) {
			return d, true
		}
	}
	return time.Time{}, false
}

func day(s string) time.Time {
	t, err := calendar.ParseKey(s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestSelectHappyPath(t *testing.T) {
	sel := NewSelector(newFakeAvailability())

	if err := sel.Select(day("2026-05-10")); err != nil {
		t.Fatalf("unexpected error selecting check-in: %v", err)
	}
	if sel.State() != StateCheckInOnly {
		t.Fatalf("expected state check_in_only, got %s", sel.State())
	}

	if err := sel.Select(day("2026-05-13")); err != nil {
		t.Fatalf("unexpected error selecting check-out: %v", err)
	}
	if sel.State() != StateComplete {
		t.Fatalf("expected state complete, got %s", sel.State())
	}

	checkIn, checkOut, ok := sel.Range()
	if !ok {
		t.Fatal("expected complete range")
	}
	if calendar.Key(checkIn) != "2026-05-10" || calendar.Key(checkOut) != "2026-05-13" {
		t.Errorf("got range %s..%s, want 2026-05-10..2026-05-13", calendar.Key(checkIn), calendar.Key(checkOut))
	}
}

func TestSelectUnavailableLeavesStateUntouched(t *testing.T) {
	avail := newFakeAvailability("2026-05-12")
	sel := NewSelector(avail)

	tests := []struct {
		name        string
		setup       func()
		description string
	}{
		{
			name:        "from empty",
			setup:       func() {},
			description: "unavailable tap on an empty selector changes nothing",
		},
		{
			name: "from check-in only",
			setup: func() {
				sel.Clear()
				if err := sel.Select(day("2026-05-10")); err != nil {
					t.Fatalf("setup failed: %v", err)
				}
			},
			description: "unavailable tap keeps the pending check-in",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			before := sel.State()

			err := sel.Select(day("2026-05-12"))
			if !errors.Is(err, ErrDateUnavailable) {
				t.Fatalf("expected ErrDateUnavailable, got %v", err)
			}
			if sel.State() != before {
				t.Errorf("state changed from %s to %s (%s)", before, sel.State(), tt.description)
			}
		})
	}
}

func TestSelectRestartsOnEarlierOrSameDay(t *testing.T) {
	sel := NewSelector(newFakeAvailability())

	if err := sel.Select(day("2026-05-10")); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	tests := []struct {
		name        string
		tap         string
		wantCheckIn string
	}{
		{name: "earlier day restarts", tap: "2026-05-08", wantCheckIn: "2026-05-08"},
		{name: "same day restarts", tap: "2026-05-08", wantCheckIn: "2026-05-08"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := sel.Select(day(tt.tap)); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if sel.State() != StateCheckInOnly {
				t.Fatalf("expected state check_in_only, got %s", sel.State())
			}
			checkIn, ok := sel.CheckIn()
			if !ok || calendar.Key(checkIn) != tt.wantCheckIn {
				t.Errorf("got check-in %s, want %s", calendar.Key(checkIn), tt.wantCheckIn)
			}
		})
	}
}

func TestSelectRejectsRangeSpanningUnavailable(t *testing.T) {
	sel := NewSelector(newFakeAvailability("2026-05-12"))

	if err := sel.Select(day("2026-05-10")); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	err := sel.Select(day("2026-05-14"))
	if !errors.Is(err, ErrRangeSpansUnavailable) {
		t.Fatalf("expected ErrRangeSpansUnavailable, got %v", err)
	}
	if sel.State() != StateCheckInOnly {
		t.Errorf("expected state to remain check_in_only, got %s", sel.State())
	}

	// Ending the range before the blocked day still works.
	if err := sel.Select(day("2026-05-12")); !errors.Is(err, ErrDateUnavailable) {
		t.Fatalf("expected blocked day itself to be rejected, got %v", err)
	}
	if err := sel.Select(day("2026-05-11")); err != nil {
		t.Fatalf("unexpected error completing shorter range: %v", err)
	}
	if sel.State() != StateComplete {
		t.Errorf("expected state complete, got %s", sel.State())
	}
}

func TestSelectAfterCompleteStartsNewRange(t *testing.T) {
	sel := NewSelector(newFakeAvailability())

	if err := sel.Select(day("2026-05-10")); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	if err := sel.Select(day("2026-05-13")); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	if err := sel.Select(day("2026-05-20")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sel.State() != StateCheckInOnly {
		t.Fatalf("expected state check_in_only, got %s", sel.State())
	}
	checkIn, _ := sel.CheckIn()
	if calendar.Key(checkIn) != "2026-05-20" {
		t.Errorf("got check-in %s, want 2026-05-20", calendar.Key(checkIn))
	}
	if _, _, ok := sel.Range(); ok {
		t.Error("expected previous range to be discarded")
	}
}

func TestClearIsIdempotentForState(t *testing.T) {
	sel := NewSelector(newFakeAvailability())

	if err := sel.Select(day("2026-05-10")); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	sel.Clear()
	if sel.State() != StateEmpty {
		t.Fatalf("expected state empty after clear, got %s", sel.State())
	}

	sel.Clear()
	if sel.State() != StateEmpty {
		t.Errorf("expected state empty after repeated clear, got %s", sel.State())
	}
}

func TestGenerationAdvancesOnClear(t *testing.T) {
	sel := NewSelector(newFakeAvailability())

	gen := sel.Generation()
	sel.Clear()
	if sel.Generation() != gen+1 {
		t.Errorf("expected generation %d after clear, got %d", gen+1, sel.Generation())
	}
}

func TestResetIfGeneration(t *testing.T) {
	sel := NewSelector(newFakeAvailability())

	if err := sel.Select(day("2026-05-10")); err != nil {
		t.Fatalf("setup failed: %v", err)
	}
	gen := sel.Generation()

	// A clear underneath the in-flight submission must win.
	sel.Clear()
	if err := sel.Select(day("2026-06-01")); err != nil {
		t.Fatalf("setup failed: %v", err)
	}

	if sel.ResetIfGeneration(gen) {
		t.Fatal("expected stale generation to be ignored")
	}
	checkIn, ok := sel.CheckIn()
	if !ok || calendar.Key(checkIn) != "2026-06-01" {
		t.Errorf("expected newer selection to survive, got check-in %s", calendar.Key(checkIn))
	}

	// With a current generation the reset goes through.
	if !sel.ResetIfGeneration(sel.Generation()) {
		t.Fatal("expected matching generation to reset")
	}
	if sel.State() != StateEmpty {
		t.Errorf("expected state empty after reset, got %s", sel.State())
	}
}
