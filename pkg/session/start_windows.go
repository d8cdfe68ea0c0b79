//go:build windows
// +build windows

package session

import (
	"context"
	"fmt"
	"os"

	"ptykit/pkg/pty"
)

// Start is not available on Windows, see pty.Open.
func Start(ctx context.Context, opts Options) (*Session, error) {
	return nil, fmt.Errorf("%w: %v", ErrPtyAllocFailed, pty.ErrUnsupported)
}

func (s *Session) terminate() error {
	return s.proc.Signal(os.Kill)
}

func (s *Session) kill() error {
	return s.proc.Signal(os.Kill)
}
