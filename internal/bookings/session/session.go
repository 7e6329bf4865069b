package session

import (
	"sync"
	"time"

	"rumahstay/internal/availability"
	"rumahstay/internal/pricing"
	"rumahstay/internal/selection"
	"rumahstay/pkg/model"

	"github.com/google/uuid"
)

// Session is one booking-widget mount: a property snapshot, an
// availability index frozen at creation time, and the date selector.
// All access goes through WithLock; the store hands out shared pointers.
type Session struct {
	ID        string
	Property  *model.Property
	CreatedAt time.Time
	ExpiresAt time.Time

	mu         sync.Mutex
	index      *availability.Index
	selector   *selection.Selector
	breakdown  pricing.Breakdown
	submitting bool
}

func New(property *model.Property, index *availability.Index, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        uuid.NewString(),
		Property:  property,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
		index:     index,
		selector:  selection.NewSelector(index),
	}
}

// WithLock runs fn while holding the session lock. The selector and the
// cached breakdown may only be touched inside fn.
func (s *Session) WithLock(fn func(sel *selection.Selector)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.selector)
}

// Index returns the availability snapshot backing the selector.
func (s *Session) Index() *availability.Index {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.index
}

// ReplaceIndex swaps in a fresh availability snapshot, keeping the
// selector (and its generation counter) intact.
func (s *Session) ReplaceIndex(index *availability.Index) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.index = index
	s.selector.ReplaceAvailability(index)
}

// SetBreakdown caches the latest quote shown to the guest.
func (s *Session) SetBreakdown(b pricing.Breakdown) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.breakdown = b
}

func (s *Session) Breakdown() pricing.Breakdown {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.breakdown
}

// BeginSubmit marks the session as having a submission in flight. It
// reports false if one is already running.
func (s *Session) BeginSubmit() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.submitting {
		return false
	}
	s.submitting = true
	return true
}

func (s *Session) EndSubmit() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
}

func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}
