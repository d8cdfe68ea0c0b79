// Package mocks provides mock implementations for testing.
package mocks

import (
	"bytes"
	"sync"

	"ptykit/pkg/screen"
)

// MockSink records everything a session feeds into it and lets tests
// stage grid content and history length by hand.
type MockSink struct {
	mu      sync.Mutex
	feeds   [][]byte
	resizes [][2]int // rows, cols per Resize call
	rows    int
	cols    int
	history int
	cells   map[[2]int]screen.Cell
	curRow  int
	curCol  int
}

var _ screen.Sink = (*MockSink)(nil)

// NewMockSink creates a mock sink with the given visible dimensions.
func NewMockSink(rows, cols int) *MockSink {
	return &MockSink{
		rows:  rows,
		cols:  cols,
		cells: make(map[[2]int]screen.Cell),
	}
}

// Feed records a copy of p.
func (m *MockSink) Feed(p []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	buf := make([]byte, len(p))
	copy(buf, p)
	m.feeds = append(m.feeds, buf)
}

// Resize records the call and adopts the new dimensions.
func (m *MockSink) Resize(rows, cols int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.resizes = append(m.resizes, [2]int{rows, cols})
	m.rows, m.cols = rows, cols
}

// HistoryLen returns the staged history length.
func (m *MockSink) HistoryLen() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.history
}

// SetHistoryLen stages the history length reported to callers.
func (m *MockSink) SetHistoryLen(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.history = n
}

// CellAt returns a staged cell, or a blank default.
func (m *MockSink) CellAt(row, col int) screen.Cell {
	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.cells[[2]int{row, col}]; ok {
		return c
	}
	return screen.Cell{Ch: ' ', FG: screen.ColorDefault, BG: screen.ColorDefault}
}

// SetRowText stages the given text starting at column 0 of a row.
func (m *MockSink) SetRowText(row int, text string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	col := 0
	for _, r := range text {
		m.cells[[2]int{row, col}] = screen.Cell{Ch: r, FG: screen.ColorDefault, BG: screen.ColorDefault}
		col++
	}
}

// CursorPosition returns the staged cursor position.
func (m *MockSink) CursorPosition() (row, col int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.curRow, m.curCol
}

// FeedCount returns how many times Feed was called.
func (m *MockSink) FeedCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.feeds)
}

// Joined returns all fed bytes concatenated in arrival order.
func (m *MockSink) Joined() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return bytes.Join(m.feeds, nil)
}

// Resizes returns the recorded resize calls as (rows, cols) pairs.
func (m *MockSink) Resizes() [][2]int {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([][2]int, len(m.resizes))
	copy(out, m.resizes)
	return out
}

// Size returns the current dimensions.
func (m *MockSink) Size() (rows, cols int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.rows, m.cols
}
