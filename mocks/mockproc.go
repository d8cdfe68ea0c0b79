package mocks

import (
	"os"
	"sync"
	"syscall"
)

// MockProcess simulates a child process for lifecycle tests. It records
// every delivered signal and "exits" on SIGTERM, or only on SIGKILL
// when configured to ignore termination like a stuck child would.
type MockProcess struct {
	mu         sync.Mutex
	pid        int
	signals    []os.Signal
	ignoreTerm bool
	exited     bool
	onExit     func()
}

// NewMockProcess creates a mock process with the given pid.
func NewMockProcess(pid int) *MockProcess {
	return &MockProcess{pid: pid}
}

// SetIgnoreTerm makes the process survive SIGTERM.
func (m *MockProcess) SetIgnoreTerm(ignore bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ignoreTerm = ignore
}

// SetOnExit registers a callback invoked once when the process exits,
// used by tests to release their reaper channel.
func (m *MockProcess) SetOnExit(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.onExit = fn
}

// Pid returns the mock pid.
func (m *MockProcess) Pid() int {
	return m.pid
}

// Signal records sig and exits the process according to its
// configuration.
func (m *MockProcess) Signal(sig os.Signal) error {
	m.mu.Lock()
	m.signals = append(m.signals, sig)

	dies := false
	switch sig {
	case syscall.SIGKILL:
		dies = true
	case syscall.SIGTERM:
		dies = !m.ignoreTerm
	}

	var fire func()
	if dies && !m.exited {
		m.exited = true
		fire = m.onExit
	}
	m.mu.Unlock()

	if fire != nil {
		fire()
	}
	return nil
}

// Signals returns the delivered signals in order.
func (m *MockProcess) Signals() []os.Signal {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]os.Signal, len(m.signals))
	copy(out, m.signals)
	return out
}

// Exited reports whether the process has exited.
func (m *MockProcess) Exited() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.exited
}
