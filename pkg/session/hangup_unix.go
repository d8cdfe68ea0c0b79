//go:build !windows
// +build !windows

package session

import (
	"errors"
	"io/fs"

	"golang.org/x/sys/unix"
)

// isHangup reports whether err is how this platform says "the child's
// side of the pty is gone". Linux returns EIO from a master read once
// the last slave descriptor closes.
func isHangup(err error) bool {
	return errors.Is(err, unix.EIO) || errors.Is(err, fs.ErrClosed)
}
