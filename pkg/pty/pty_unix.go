//go:build linux || darwin
// +build linux darwin

package pty

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// Open allocates a new pseudo-terminal pair.
// It returns the master (ptm) and slave (pts) ends as open files.
// The caller is responsible for closing both.
func Open() (*os.File, *os.File, error) {
	ptm, err := openPtm()
	if err != nil {
		return nil, nil, fmt.Errorf("openPtm(): %s", err)
	}

	ptsName, err := ptsname(ptm)
	if err != nil {
		ptm.Close()
		return nil, nil, fmt.Errorf("ptsname(ptm): %s", err)
	}

	if err := grantpt(ptm); err != nil {
		ptm.Close()
		return nil, nil, fmt.Errorf("grantpt(ptm): %s", err)
	}

	if err := unlockpt(ptm); err != nil {
		ptm.Close()
		return nil, nil, fmt.Errorf("unlockpt(ptm): %s", err)
	}

	pts, err := openPts(ptsName)
	if err != nil {
		ptm.Close()
		return nil, nil, fmt.Errorf("openPts(%s): %s", ptsName, err)
	}
	return ptm, pts, nil
}

func openPts(ptsName string) (*os.File, error) {
	pts, err := os.OpenFile(ptsName, os.O_RDWR|unix.O_NOCTTY, 0)
	if err != nil {
		return nil, fmt.Errorf("os.OpenFile: %s", err)
	}

	return pts, nil
}

// Terminal size

// SetSize sets the window size of the terminal behind f.
// Both ends of a pair share the size, so resizing the master
// resizes the slave as well.
func SetSize(f *os.File, size TerminalSize) error {
	ws := unix.Winsize{
		Row: uint16(size.Rows),
		Col: uint16(size.Cols),
	}
	return unix.IoctlSetWinsize(int(f.Fd()), unix.TIOCSWINSZ, &ws)
}

// GetSize returns the current window size of the terminal behind f.
func GetSize(f *os.File) (TerminalSize, error) {
	ws, err := unix.IoctlGetWinsize(int(f.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return TerminalSize{}, err
	}

	return TerminalSize{
		Rows: int(ws.Row),
		Cols: int(ws.Col),
	}, nil
}
