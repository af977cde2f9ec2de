// Package session tracks per-product quantities for one detection session and
// applies the temporal deduplication rule that keeps a continuously-visible
// item from being counted on every frame.
package session

import (
	"sync"
	"time"
)

// DefaultCountInterval is the minimum time between counted re-observations of
// the same label.
const DefaultCountInterval = 2 * time.Second

type productCount struct {
	quantity   int
	lastUpdate time.Time
}

// Session is the detection session state machine. It starts Inactive with an
// empty count table. All mutations are serialized under one mutex; a snapshot
// reader never observes a partial update.
type Session struct {
	mu            sync.Mutex
	active        bool
	counts        map[string]*productCount
	countInterval time.Duration
}

// New creates an inactive session. A non-positive countInterval falls back to
// DefaultCountInterval.
func New(countInterval time.Duration) *Session {
	if countInterval <= 0 {
		countInterval = DefaultCountInterval
	}
	return &Session{
		counts:        make(map[string]*productCount),
		countInterval: countInterval,
	}
}

// Start activates the session and unconditionally discards all prior counts.
func (s *Session) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = true
	s.counts = make(map[string]*productCount)
}

// Stop deactivates the session. Counts are left untouched so the final tally
// stays readable until the next Start.
func (s *Session) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = false
}

// Active reports whether the session is currently accumulating counts.
func (s *Session) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

// RecordObservation folds one detection of label at time now into the count
// table. The first observation of a label this session initializes its
// quantity to 1. A re-observation increments only when the count interval has
// elapsed since the last counted update, and resets the timer exactly when an
// increment occurs. Observations while inactive are ignored.
//
// The return value reports whether the observation changed the quantity.
func (s *Session) RecordObservation(label string, now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.active {
		return false
	}

	count, seen := s.counts[label]
	if !seen {
		s.counts[label] = &productCount{quantity: 1, lastUpdate: now}
		return true
	}
	if now.Sub(count.lastUpdate) >= s.countInterval {
		count.quantity++
		count.lastUpdate = now
		return true
	}
	return false
}

// Snapshot returns a copy of the label to quantity mapping. It is usable in
// any state; after Stop it keeps returning the frozen final tally.
func (s *Session) Snapshot() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make(map[string]int, len(s.counts))
	for label, count := range s.counts {
		snapshot[label] = count.quantity
	}
	return snapshot
}
