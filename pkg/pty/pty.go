// Package pty allocates pseudo-terminal pairs and manages their window
// size. Sessions run on Unix systems (Linux, Darwin) where a real PTY
// with a controlling terminal is available; on Windows the allocation
// functions return ErrUnsupported.
package pty

import "errors"

// ErrUnsupported is returned on platforms without PTY support.
var ErrUnsupported = errors.New("pseudo-terminals are not supported on this platform")

// TerminalSize represents the dimensions of a terminal window in rows and columns.
type TerminalSize struct {
	Rows int // Number of rows (height) in the terminal
	Cols int // Number of columns (width) in the terminal
}
