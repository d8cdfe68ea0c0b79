//go:build darwin
// +build darwin

package pty

import (
	"fmt"
	"os"
	"syscall"
	"unsafe"

	"golang.org/x/sys/unix"
)

// compare:
// https://opensource.apple.com/source/xnu/xnu-792.2.4/bsd/sys/ioccom.h.auto.html
// https://opensource.apple.com/source/Libc/Libc-825.26/stdlib/grantpt.c.auto.html

func openPtm() (*os.File, error) {
	fd, err := unix.Open("/dev/ptmx", unix.O_RDWR|unix.O_CLOEXEC, 0)
	if err != nil {
		return nil, fmt.Errorf("unix.Open(/dev/ptmx): %s", err)
	}

	return os.NewFile(uintptr(fd), "/dev/ptmx"), nil
}

const _IOCPARM_MASK = 0x1fff
const _IOCPARM_LEN = (unix.TIOCPTYGNAME >> 16) & _IOCPARM_MASK

func ptsname(f *os.File) (string, error) {
	buf := make([]byte, _IOCPARM_LEN)

	if err := ioctl(f.Fd(), unix.TIOCPTYGNAME, uintptr(unsafe.Pointer(&buf[0]))); err != nil {
		return "", fmt.Errorf("ioctl(fd, TIOCPTYGNAME, buf): %s", err)
	}

	return unix.ByteSliceToString(buf), nil
}

func grantpt(f *os.File) error {
	return ioctl(f.Fd(), unix.TIOCPTYGRANT, 0)
}

func unlockpt(f *os.File) error {
	return ioctl(f.Fd(), unix.TIOCPTYUNLK, 0)
}

func ioctl(fd, cmd, ptr uintptr) error {
	_, _, e := syscall.Syscall(syscall.SYS_IOCTL, fd, cmd, ptr)
	if e != 0 {
		return e
	}
	return nil
}
