package session

import "errors"

var (
	// ErrPtyAllocFailed indicates the pseudo-terminal pair could not
	// be allocated.
	ErrPtyAllocFailed = errors.New("pty allocation failed")

	// ErrForkFailed indicates the shell process could not be started.
	ErrForkFailed = errors.New("starting child process failed")

	// ErrChildExecFailed indicates the child exited immediately after
	// start, detected via instant EOF on the master.
	ErrChildExecFailed = errors.New("child exec failed")

	// ErrWriteFailed indicates a write to the PTY master failed.
	ErrWriteFailed = errors.New("pty write failed")

	// ErrReadFailed indicates a read from the PTY master failed with
	// something other than EOF or hangup.
	ErrReadFailed = errors.New("pty read failed")

	// ErrSessionClosed is returned for operations on a closed session.
	ErrSessionClosed = errors.New("session is closed")
)
