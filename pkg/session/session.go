// Package session owns the pseudo-terminal pair, the shell process
// running inside it and their lifecycle. A background pump forwards
// everything the shell writes to the screen sink; callers write input
// through Write and resize through Resize. Close tears the process
// tree down deterministically.
package session

import (
	"fmt"
	"os"
	"sync"
	"time"

	"pkt.systems/pslog"

	"ptykit/pkg/pty"
	"ptykit/pkg/screen"
)

const (
	defaultJoinTimeout = 2 * time.Second
	defaultTermTimeout = time.Second
)

// Options configures a new session.
type Options struct {
	// Shell is the binary to run. Empty means $SHELL, falling back
	// to /bin/bash.
	Shell string

	// WorkDir is the child's working directory. Empty inherits ours.
	WorkDir string

	// InitialCommand, if set, runs before the shell turns interactive.
	InitialCommand string

	// Cols and Rows are the initial geometry. Zero values default to
	// 80x24.
	Cols int
	Rows int

	// Env holds extra environment entries appended after the standard
	// terminal variables.
	Env []string

	// Sink receives everything the child writes. Required.
	Sink screen.Sink

	// OnDirty, if set, is called after every chunk fed to the sink.
	OnDirty func()
}

// Process is the narrow surface of the child process the session needs.
type Process interface {
	Pid() int
	Signal(sig os.Signal) error
}

// Session is a shell running on a pseudo-terminal. All methods are safe
// for concurrent use; the pump goroutine is the only reader of the
// master and callers are the only writers.
type Session struct {
	mu      sync.Mutex
	ptm     *os.File
	proc    Process
	pid     int
	workDir string
	cols    int
	rows    int
	alive   bool

	sink screen.Sink
	pump *pump

	events   chan Event
	done     chan struct{} // closed when the pump exits
	waitDone chan struct{} // closed when the child is reaped

	closeOnce sync.Once
	closeErr  error

	joinTimeout time.Duration
	termTimeout time.Duration

	log pslog.Logger
}

// Write sends input bytes to the PTY. Write failures are surfaced both
// as the returned error and as an EventWriteFailed on the event
// channel; the session stays alive.
func (s *Session) Write(p []byte) error {
	s.mu.Lock()
	ptm, alive := s.ptm, s.alive
	s.mu.Unlock()

	if !alive || ptm == nil {
		return ErrSessionClosed
	}

	if _, err := ptm.Write(p); err != nil {
		werr := fmt.Errorf("%w: %v", ErrWriteFailed, err)
		s.log.Warn("pty write failed", "err", err)
		s.emit(Event{Kind: EventWriteFailed, Err: werr})
		return werr
	}
	return nil
}

// Resize applies a new geometry to the screen sink, the kernel's
// window size and the session's own fields, in that order. The sink
// and session geometry are updated even if the ioctl fails so that
// in-memory state stays consistent.
func (s *Session) Resize(rows, cols int) error {
	s.mu.Lock()
	ptm, alive := s.ptm, s.alive
	s.mu.Unlock()

	if !alive || ptm == nil {
		return ErrSessionClosed
	}

	s.sink.Resize(rows, cols)

	var err error
	if ioctlErr := pty.SetSize(ptm, pty.TerminalSize{Rows: rows, Cols: cols}); ioctlErr != nil {
		err = fmt.Errorf("setting window size: %s", ioctlErr)
		s.log.Warn("window size ioctl failed", "rows", rows, "cols", cols, "err", ioctlErr)
	}

	s.mu.Lock()
	s.rows, s.cols = rows, cols
	s.mu.Unlock()

	return err
}

// Size returns the current geometry.
func (s *Session) Size() (cols, rows int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cols, s.rows
}

// Pid returns the child's process id.
func (s *Session) Pid() int {
	return s.pid
}

// WorkDir returns the working directory the session was started with.
func (s *Session) WorkDir() string {
	return s.workDir
}

// Alive reports whether the child is still attached. It flips to false
// exactly once, either through Close or when the pump sees the child
// side go away.
func (s *Session) Alive() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.alive
}

// Events returns the channel on which terminated/read/write events are
// delivered. Events are dropped (with a log entry) if the channel
// buffer is full, never blocking the pump.
func (s *Session) Events() <-chan Event {
	return s.events
}

// Done returns a channel closed when the IO pump has exited, which is
// the definitive end of output for this session.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

func (s *Session) emit(ev Event) {
	select {
	case s.events <- ev:
	default:
		s.log.Warn("session event dropped", "kind", ev.Kind.String())
	}
}

func (s *Session) setDead() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.alive = false
}
