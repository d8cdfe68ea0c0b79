//go:build windows
// +build windows

package pty

import "os"

// Open is not available on Windows. Driving a shell through ConPTY
// needs a different process model than fork with a controlling tty,
// so sessions are limited to Unix systems for now.
func Open() (*os.File, *os.File, error) {
	return nil, nil, ErrUnsupported
}

// SetSize is not available on Windows.
func SetSize(f *os.File, size TerminalSize) error {
	return ErrUnsupported
}

// GetSize is not available on Windows.
func GetSize(f *os.File) (TerminalSize, error) {
	return TerminalSize{}, ErrUnsupported
}
