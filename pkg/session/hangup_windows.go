//go:build windows
// +build windows

package session

import (
	"errors"
	"io/fs"
)

func isHangup(err error) bool {
	return errors.Is(err, fs.ErrClosed)
}
