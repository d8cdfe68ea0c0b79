// Package render coalesces bursts of screen mutations into a bounded
// frequency repaint signal.
package render

import (
	"sync"
	"time"
)

// DefaultInterval is the debounce window for repaint signals.
const DefaultInterval = 8 * time.Millisecond

// Scheduler turns arbitrarily frequent Dirty calls into at most one
// repaint signal per debounce interval. The first Dirty opens a window;
// further Dirty calls inside it are absorbed and the signal fires once
// the window elapses, so a burst of output collapses into a single
// redraw while sustained output still repaints once per interval. No
// signal fires without an intervening Dirty.
type Scheduler struct {
	mu       sync.Mutex
	interval time.Duration
	timer    *time.Timer
	armed    bool
	out      chan struct{}
	stopped  bool
}

// NewScheduler creates a scheduler with the given debounce interval.
// Intervals of zero or less fall back to DefaultInterval.
func NewScheduler(interval time.Duration) *Scheduler {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Scheduler{
		interval: interval,
		out:      make(chan struct{}, 1),
	}
}

// Dirty records a mutation. Safe to call from any goroutine.
func (s *Scheduler) Dirty() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.stopped || s.armed {
		return
	}
	s.armed = true
	if s.timer == nil {
		s.timer = time.AfterFunc(s.interval, s.fire)
		return
	}
	s.timer.Reset(s.interval)
}

func (s *Scheduler) fire() {
	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		return
	}
	s.armed = false
	s.mu.Unlock()

	select {
	case s.out <- struct{}{}:
	default:
	}
}

// Repaint returns the channel on which repaint signals are delivered.
// The channel has capacity one; a signal that arrives while a previous
// one is still pending is merged into it.
func (s *Scheduler) Repaint() <-chan struct{} {
	return s.out
}

// Stop cancels any pending signal. Dirty calls after Stop are ignored.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.stopped = true
	if s.timer != nil {
		s.timer.Stop()
	}
}
