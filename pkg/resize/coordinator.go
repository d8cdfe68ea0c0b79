// Package resize debounces window geometry changes and propagates the
// resulting rows/cols to the session.
package resize

import (
	"sync"
	"time"

	"pkt.systems/pslog"
)

const (
	// MinCols is the smallest width a resize may produce.
	MinCols = 40

	// MinRows is the smallest height a resize may produce.
	MinRows = 10

	// DefaultDelay is the debounce window for resize requests.
	DefaultDelay = 50 * time.Millisecond
)

// Target receives the debounced geometry. A terminal session resizes
// its screen sink and the PTY in one step.
type Target interface {
	Size() (cols, rows int)
	Resize(rows, cols int) error
}

// Coordinator converts pixel geometry into a rows/cols pair and applies
// it to the target once a debounce window has elapsed without further
// requests. During a window drag the PTY therefore sees at most one
// resize per window instead of one per motion event.
type Coordinator struct {
	mu      sync.Mutex
	delay   time.Duration
	target  Target
	log     pslog.Logger
	timer   *time.Timer
	pending pendingResize
	stopped bool
}

type pendingResize struct {
	cols, rows int
}

// NewCoordinator creates a coordinator applying to target after delay.
// Delays of zero or less fall back to DefaultDelay.
func NewCoordinator(delay time.Duration, target Target, log pslog.Logger) *Coordinator {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Coordinator{
		delay:  delay,
		target: target,
		log:    log,
	}
}

// Request records a candidate geometry computed from the pixel size of
// the viewport and the pixel size of a character cell, then restarts
// the debounce timer. Each call supersedes the previous candidate.
func (c *Coordinator) Request(pixelWidth, pixelHeight, cellWidth, cellHeight int) {
	if cellWidth < 1 {
		cellWidth = 1
	}
	if cellHeight < 1 {
		cellHeight = 1
	}

	cols := pixelWidth / cellWidth
	rows := pixelHeight / cellHeight
	if cols < MinCols {
		cols = MinCols
	}
	if rows < MinRows {
		rows = MinRows
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return
	}
	c.pending = pendingResize{cols: cols, rows: rows}
	if c.timer == nil {
		c.timer = time.AfterFunc(c.delay, c.apply)
		return
	}
	c.timer.Reset(c.delay)
}

func (c *Coordinator) apply() {
	c.mu.Lock()
	pending := c.pending
	stopped := c.stopped
	c.mu.Unlock()

	if stopped {
		return
	}

	curCols, curRows := c.target.Size()
	if pending.cols == curCols && pending.rows == curRows {
		return
	}

	if err := c.target.Resize(pending.rows, pending.cols); err != nil {
		c.log.Warn("resize failed", "cols", pending.cols, "rows", pending.rows, "err", err)
		return
	}
	c.log.Debug("resized", "cols", pending.cols, "rows", pending.rows)
}

// Stop cancels any pending resize. Requests after Stop are ignored.
func (c *Coordinator) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stopped = true
	if c.timer != nil {
		c.timer.Stop()
	}
}
