package selection

import (
	"errors"
	"time"

	"rumahstay/pkg/calendar"
)

var (
	// ErrDateUnavailable is returned when the tapped day cannot be booked.
	// The selector state is untouched; clients typically swallow this.
	ErrDateUnavailable = errors.New("date is unavailable")

	// ErrRangeSpansUnavailable is returned when completing a range would
	// cover a blocked day between check-in and check-out.
	ErrRangeSpansUnavailable = errors.New("range spans unavailable dates")
)

// State is the selector's position in the two-tap date picking flow.
type State int

const (
	StateEmpty State = iota
	StateCheckInOnly
	StateComplete
)

func (s State) String() string {
	switch s {
	case StateEmpty:
		return "empty"
	case StateCheckInOnly:
		return "check_in_only"
	case StateComplete:
		return "complete"
	default:
		return "unknown"
	}
}

// Availability answers day-level booking questions for one property.
type Availability interface {
	Unavailable(d time.Time) bool
	FirstUnavailableWithin(a, b time.Time) (time.Time, bool)
}

// Selector models the date-range picking state machine. It is not safe
// for concurrent use; callers serialize access per session.
type Selector struct {
	state      State
	checkIn    time.Time
	checkOut   time.Time
	generation uint64
	avail      Availability
}

func NewSelector(avail Availability) *Selector {
	return &Selector{state: StateEmpty, avail: avail}
}

func (s *Selector) State() State {
	return s.state
}

// Range returns the selected half-open stay span. ok is false unless the
// selection is complete.
func (s *Selector) Range() (checkIn, checkOut time.Time, ok bool) {
	if s.state != StateComplete {
		return time.Time{}, time.Time{}, false
	}
	return s.checkIn, s.checkOut, true
}

// CheckIn returns the chosen check-in day, if any.
func (s *Selector) CheckIn() (time.Time, bool) {
	if s.state == StateEmpty {
		return time.Time{}, false
	}
	return s.checkIn, true
}

// Generation increments every time the selection is wiped. A submission
// captures it up front and only resets the selector if nothing changed
// underneath it in the meantime.
func (s *Selector) Generation() uint64 {
	return s.generation
}

// ReplaceAvailability swaps in a fresh snapshot, typically after a
// submission made new days unavailable.
func (s *Selector) ReplaceAvailability(avail Availability) {
	s.avail = avail
}

// Select applies one tap on day d.
func (s *Selector) Select(d time.Time) error {
	day := calendar.Truncate(d)

	if s.avail.Unavailable(day) {
		return ErrDateUnavailable
	}

	switch s.state {
	case StateEmpty, StateComplete:
		s.checkIn = day
		s.checkOut = time.Time{}
		s.state = StateCheckInOnly
		return nil

	case StateCheckInOnly:
		if !calendar.After(day, s.checkIn) {
			// Tapping on or before the current check-in restarts the range.
			s.checkIn = day
			return nil
		}
		if _, blocked := s.avail.FirstUnavailableWithin(s.checkIn, day); blocked {
			return ErrRangeSpansUnavailable
		}
		s.checkOut = day
		s.state = StateComplete
		return nil

	default:
		return errors.New("selector in unknown state")
	}
}

// Clear wipes the selection. Calling it on an empty selector is a no-op
// for the state but still advances the generation.
func (s *Selector) Clear() {
	s.state = StateEmpty
	s.checkIn = time.Time{}
	s.checkOut = time.Time{}
	s.generation++
}

// ResetIfGeneration clears the selection only if gen still matches, so a
// submission that raced with a manual Clear leaves the newer selection
// alone. It reports whether the reset happened.
func (s *Selector) ResetIfGeneration(gen uint64) bool {
	if s.generation != gen {
		return false
	}
	s.Clear()
	return true
}
