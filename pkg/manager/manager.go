// Package manager tracks the open terminals of one process: creation
// under a session cap, tab order, the current tab and teardown.
package manager

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"pkt.systems/pslog"

	"ptykit/pkg/engine"
	"ptykit/pkg/semaphore"
)

// DefaultOpenTimeout bounds how long Open waits for a session slot.
const DefaultOpenTimeout = 5 * time.Second

var (
	// ErrTooManySessions means the session cap is reached and no slot
	// freed up within the open timeout.
	ErrTooManySessions = errors.New("too many sessions")

	// ErrNotFound means no terminal with the given id exists.
	ErrNotFound = errors.New("no such terminal")
)

// Pane is the slice of a terminal the manager drives. engine.Terminal
// implements it.
type Pane interface {
	SendInput(p []byte) error
	RequestResize(pixelWidth, pixelHeight, cellWidth, cellHeight int)
	Repaint() <-chan struct{}
	Done() <-chan struct{}
	Alive() bool
	Close() error
}

var _ Pane = (*engine.Terminal)(nil)

// Factory builds a pane for Open. Tests substitute their own.
type Factory func(ctx context.Context, opts engine.Options) (Pane, error)

// Options configures a manager.
type Options struct {
	// MaxSessions caps concurrently open terminals. Zero or less
	// means no cap.
	MaxSessions int

	// OpenTimeout bounds how long Open waits for a free slot when the
	// cap is reached.
	OpenTimeout time.Duration

	// Factory overrides how panes are built. Nil uses engine.New.
	Factory Factory
}

// Manager owns the set of open terminals. All methods are safe for
// concurrent use.
type Manager struct {
	mu      sync.Mutex
	sem     *semaphore.SessionSemaphore
	factory Factory
	entries map[string]*Entry
	order   []string
	current int // index into order, -1 when empty
	counter int
}

// New creates an empty manager.
func New(opts Options) *Manager {
	factory := opts.Factory
	if factory == nil {
		factory = func(ctx context.Context, o engine.Options) (Pane, error) {
			return engine.New(ctx, o)
		}
	}

	var sem *semaphore.SessionSemaphore
	if opts.MaxSessions > 0 {
		timeout := opts.OpenTimeout
		if timeout <= 0 {
			timeout = DefaultOpenTimeout
		}
		sem = semaphore.New(opts.MaxSessions, timeout)
	}

	return &Manager{
		sem:     sem,
		factory: factory,
		entries: make(map[string]*Entry),
		current: -1,
	}
}

// Open starts a new terminal and makes it current. It blocks up to the
// open timeout for a session slot when the cap is reached.
func (m *Manager) Open(ctx context.Context, opts engine.Options) (*Entry, error) {
	if err := m.sem.Acquire(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTooManySessions, err)
	}

	pane, err := m.factory(ctx, opts)
	if err != nil {
		m.sem.Release()
		return nil, err
	}

	m.mu.Lock()
	m.counter++
	e := &Entry{
		ID:    uuid.NewString(),
		Title: fmt.Sprintf("Terminal %d", m.counter),
		Pane:  pane,
	}
	m.entries[e.ID] = e
	m.order = append(m.order, e.ID)
	m.current = len(m.order) - 1
	m.mu.Unlock()

	go m.watch(e)

	pslog.Ctx(ctx).Debug("terminal opened", "id", e.ID, "title", e.Title)
	return e, nil
}

// watch marks the entry once its session ends, so tab titles can show
// the state without polling.
func (m *Manager) watch(e *Entry) {
	<-e.Pane.Done()
	e.setFinished()
}

// Get returns the entry with the given id.
func (m *Manager) Get(id string) (*Entry, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	e, ok := m.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	return e, nil
}

// List returns all entries in tab order.
func (m *Manager) List() []*Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*Entry, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, m.entries[id])
	}
	return out
}

// Current returns the current entry, or nil when no terminal is open.
func (m *Manager) Current() *Entry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentLocked()
}

func (m *Manager) currentLocked() *Entry {
	if m.current < 0 || m.current >= len(m.order) {
		return nil
	}
	return m.entries[m.order[m.current]]
}

// Select makes the terminal with the given id current.
func (m *Manager) Select(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, oid := range m.order {
		if oid == id {
			m.current = i
			return nil
		}
	}
	return ErrNotFound
}

// Next advances the current tab, wrapping around, and returns it.
func (m *Manager) Next() *Entry {
	return m.step(1)
}

// Prev moves the current tab backwards, wrapping around, and returns it.
func (m *Manager) Prev() *Entry {
	return m.step(-1)
}

func (m *Manager) step(dir int) *Entry {
	m.mu.Lock()
	defer m.mu.Unlock()

	n := len(m.order)
	if n == 0 {
		return nil
	}
	m.current = ((m.current+dir)%n + n) % n
	return m.entries[m.order[m.current]]
}

// SendToCurrent writes input bytes to the current terminal.
func (m *Manager) SendToCurrent(p []byte) error {
	m.mu.Lock()
	e := m.currentLocked()
	m.mu.Unlock()

	if e == nil {
		return ErrNotFound
	}
	return e.Pane.SendInput(p)
}

// ResizeAll feeds new geometry to every open terminal's resize path.
func (m *Manager) ResizeAll(pixelWidth, pixelHeight, cellWidth, cellHeight int) {
	for _, e := range m.List() {
		e.Pane.RequestResize(pixelWidth, pixelHeight, cellWidth, cellHeight)
	}
}

// Close tears down the terminal with the given id and frees its
// session slot.
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	e, ok := m.entries[id]
	if !ok {
		m.mu.Unlock()
		return ErrNotFound
	}
	delete(m.entries, id)
	for i, oid := range m.order {
		if oid != id {
			continue
		}
		m.order = append(m.order[:i], m.order[i+1:]...)
		if i < m.current {
			m.current--
		}
		break
	}
	if m.current >= len(m.order) {
		m.current = len(m.order) - 1
	}
	m.mu.Unlock()

	err := e.Pane.Close()
	m.sem.Release()
	return err
}

// CloseAll tears down every terminal. The first close error is
// returned, but all terminals are attempted.
func (m *Manager) CloseAll() error {
	var firstErr error
	for _, e := range m.List() {
		if err := m.Close(e.ID); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Len returns how many terminals are open.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.order)
}
