//go:build linux
// +build linux

package pty

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

func openPtm() (*os.File, error) {
	ptm, err := os.OpenFile("/dev/ptmx", os.O_RDWR, 0)
	if err != nil {
		return nil, fmt.Errorf("os.OpenFile(/dev/ptmx): %s", err)
	}

	return ptm, nil
}

func ptsname(f *os.File) (string, error) {
	n, err := unix.IoctlGetInt(int(f.Fd()), unix.TIOCGPTN)
	if err != nil {
		return "", fmt.Errorf("ioctl(fd, TIOCGPTN): %s", err)
	}

	return fmt.Sprintf("/dev/pts/%d", n), nil
}

// grantpt needs no ioctl on Linux: devpts creates the slave owned by
// the opener of /dev/ptmx.
func grantpt(*os.File) error {
	return nil
}

func unlockpt(f *os.File) error {
	return unix.IoctlSetPointerInt(int(f.Fd()), unix.TIOCSPTLCK, 0)
}
