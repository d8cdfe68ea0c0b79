// Package semaphore provides a timeout-aware semaphore implementation
// for capping concurrent sessions with proper timeout handling.
package semaphore

import (
	"context"
	"fmt"
	"time"
)

// SessionSemaphore controls concurrent access with timeout support.
// A buffered channel holds one token per running session; Acquire
// sends a token and Release takes it back.
type SessionSemaphore struct {
	slots   chan struct{}
	timeout time.Duration
}

// New creates a semaphore allowing up to n concurrent holders, each
// Acquire waiting at most timeout for a slot.
func New(n int, timeout time.Duration) *SessionSemaphore {
	return &SessionSemaphore{
		slots:   make(chan struct{}, n),
		timeout: timeout,
	}
}

// Acquire attempts to acquire the semaphore within the timeout period.
// Returns error if timeout expires or context is cancelled.
// If the semaphore is nil, this is a no-op and returns nil.
func (s *SessionSemaphore) Acquire(ctx context.Context) error {
	if s == nil {
		return nil // no-op if semaphore not provided
	}

	timeoutCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	select {
	case s.slots <- struct{}{}:
		return nil
	case <-timeoutCtx.Done():
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("timeout acquiring session slot after %v", s.timeout)
	}
}

// Release releases the semaphore slot.
// If the semaphore is nil, this is a no-op.
func (s *SessionSemaphore) Release() {
	if s == nil {
		return // no-op if semaphore not provided
	}
	<-s.slots
}
