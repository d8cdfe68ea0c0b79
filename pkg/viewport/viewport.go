// Package viewport tracks how far the user has scrolled back into a
// session's history.
package viewport

import "sync"

// HistorySource reports the live scrollback length. Satisfied by the
// screen sink.
type HistorySource interface {
	HistoryLen() int
}

// Manager holds the scroll offset of one terminal. Offset 0 is the
// live tail where new output is visible; larger offsets reach back
// into history. The offset is clamped to [0, HistoryLen()] against
// the live length on every access, so a shrinking history can never
// leave a stale out-of-range position.
type Manager struct {
	mu     sync.Mutex
	src    HistorySource
	offset int
}

// NewManager creates a manager reading bounds from src.
func NewManager(src HistorySource) *Manager {
	return &Manager{src: src}
}

// ScrollBy moves the viewport by delta lines. Positive deltas scroll
// up into history, negative ones back toward the live tail. It returns
// the clamped offset.
func (m *Manager) ScrollBy(delta int) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.offset = m.clamp(m.offset + delta)
	return m.offset
}

// ScrollToBottom returns the viewport to the live tail.
func (m *Manager) ScrollToBottom() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.offset = 0
}

// Offset returns the current scroll offset, clamped to the live
// history length.
func (m *Manager) Offset() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.offset = m.clamp(m.offset)
	return m.offset
}

// AtBottom reports whether the viewport shows the live tail.
func (m *Manager) AtBottom() bool {
	return m.Offset() == 0
}

func (m *Manager) clamp(v int) int {
	if v < 0 {
		return 0
	}
	if limit := m.src.HistoryLen(); v > limit {
		return limit
	}
	return v
}
