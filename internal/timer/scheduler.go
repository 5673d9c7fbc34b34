// Package timer implements tick-driven deferred callbacks for game logic.
//
// Games run on a fixed tick; timed behaviors (hide a banner after N ticks,
// respawn after a delay) are modeled as scheduled callbacks rather than
// blocking waits. Scheduling a key that already has a pending callback
// cancels and replaces it, so "restart the countdown" is the default.
package timer

import "sort"

type entry struct {
	due uint64
	fn  func()
}

// Scheduler runs callbacks after a delay measured in simulation ticks.
// It is single-threaded: callbacks fire inside Advance on the caller's
// goroutine.
type Scheduler struct {
	tick    uint64
	pending map[string]entry
}

// NewScheduler creates an empty scheduler at tick zero.
func NewScheduler() *Scheduler {
	return &Scheduler{
		pending: make(map[string]entry),
	}
}

// Tick returns the number of times Advance has been called.
func (s *Scheduler) Tick() uint64 {
	return s.tick
}

// After schedules fn to run delayTicks advances from now.
// A pending callback under the same key is cancelled and replaced.
// A delay of zero or less fires on the next Advance.
func (s *Scheduler) After(key string, delayTicks int, fn func()) {
	if delayTicks < 1 {
		delayTicks = 1
	}
	s.pending[key] = entry{due: s.tick + uint64(delayTicks), fn: fn}
}

// Cancel drops the pending callback for key, if any.
func (s *Scheduler) Cancel(key string) {
	delete(s.pending, key)
}

// Pending reports whether a callback is scheduled under key.
func (s *Scheduler) Pending(key string) bool {
	_, ok := s.pending[key]
	return ok
}

// Remaining returns the number of ticks until key fires, or -1 if nothing
// is scheduled under key.
func (s *Scheduler) Remaining(key string) int {
	e, ok := s.pending[key]
	if !ok {
		return -1
	}
	if e.due <= s.tick {
		return 0
	}
	return int(e.due - s.tick)
}

// Reset cancels all pending callbacks and rewinds the tick counter.
func (s *Scheduler) Reset() {
	s.tick = 0
	s.pending = make(map[string]entry)
}

// Advance moves time forward one tick and runs all callbacks that came due.
// Callbacks due on the same tick run in key order so simulations stay
// deterministic. A callback may schedule new callbacks; those run on a
// later Advance, never re-entrantly.
func (s *Scheduler) Advance() {
	s.tick++

	var due []string
	for key, e := range s.pending {
		if e.due <= s.tick {
			due = append(due, key)
		}
	}
	if len(due) == 0 {
		return
	}
	sort.Strings(due)

	fns := make([]func(), 0, len(due))
	for _, key := range due {
		fns = append(fns, s.pending[key].fn)
		delete(s.pending, key)
	}
	for _, fn := range fns {
		fn()
	}
}
