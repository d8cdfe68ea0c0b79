package session

// EventKind classifies session events.
type EventKind int

const (
	// EventTerminated signals that the child exited and the session
	// is dead. The last rendered screen stays valid.
	EventTerminated EventKind = iota

	// EventReadFailed signals that the IO pump stopped on a read
	// error. The session is dead.
	EventReadFailed

	// EventWriteFailed signals a failed PTY write. The session stays
	// usable; the input that failed is dropped.
	EventWriteFailed
)

// String returns the event kind's name.
func (k EventKind) String() string {
	switch k {
	case EventTerminated:
		return "terminated"
	case EventReadFailed:
		return "read failed"
	case EventWriteFailed:
		return "write failed"
	}
	return "unknown"
}

// Event is delivered on the session's event channel from the IO pump's
// goroutine to whoever controls the session. Err is set for failure
// events.
type Event struct {
	Kind EventKind
	Err  error
}
