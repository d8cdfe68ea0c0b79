package config

import (
	"io"
	"os"

	"golang.org/x/term"
)

// Dependencies contains injectable dependencies for testing and customization.
// All fields are optional and will use default implementations if nil.
type Dependencies struct {
	Stdin      StdinFunc
	Stdout     StdoutFunc
	StdinFd    StdinFdFunc
	IsTerminal IsTerminalFunc
	MakeRaw    MakeRawFunc
	TermSize   TermSizeFunc
}

// StdinFunc is a function that returns a reader for stdin.
// It returns an io.Reader to allow for mock implementations.
type StdinFunc func() io.Reader

// StdoutFunc is a function that returns a writer for stdout.
// It returns an io.Writer to allow for mock implementations.
type StdoutFunc func() io.Writer

// StdinFdFunc is a function that returns the descriptor raw mode and
// size probing act on.
type StdinFdFunc func() int

// IsTerminalFunc is a function that reports whether fd is attached to
// an interactive terminal.
type IsTerminalFunc func(fd int) bool

// MakeRawFunc is a function that switches fd into raw mode. It returns
// a restore function undoing the change.
type MakeRawFunc func(fd int) (restore func() error, err error)

// TermSizeFunc is a function that returns the terminal size of fd.
type TermSizeFunc func(fd int) (cols, rows int, err error)

// GetStdinFunc returns the stdin function from dependencies, or a default implementation.
// If deps is nil or deps.Stdin is nil, returns a function that uses os.Stdin.
func GetStdinFunc(deps *Dependencies) StdinFunc {
	if deps != nil && deps.Stdin != nil {
		return deps.Stdin
	}
	return func() io.Reader {
		return os.Stdin
	}
}

// GetStdoutFunc returns the stdout function from dependencies, or a default implementation.
// If deps is nil or deps.Stdout is nil, returns a function that uses os.Stdout.
func GetStdoutFunc(deps *Dependencies) StdoutFunc {
	if deps != nil && deps.Stdout != nil {
		return deps.Stdout
	}
	return func() io.Writer {
		return os.Stdout
	}
}

// GetStdinFdFunc returns the descriptor function from dependencies, or a default implementation.
// If deps is nil or deps.StdinFd is nil, returns a function that uses os.Stdin.
func GetStdinFdFunc(deps *Dependencies) StdinFdFunc {
	if deps != nil && deps.StdinFd != nil {
		return deps.StdinFd
	}
	return func() int {
		return int(os.Stdin.Fd())
	}
}

// GetIsTerminalFunc returns the terminal probe from dependencies, or a default implementation.
// If deps is nil or deps.IsTerminal is nil, returns golang.org/x/term's check.
func GetIsTerminalFunc(deps *Dependencies) IsTerminalFunc {
	if deps != nil && deps.IsTerminal != nil {
		return deps.IsTerminal
	}
	return term.IsTerminal
}

// GetMakeRawFunc returns the raw mode function from dependencies, or a default implementation.
// If deps is nil or deps.MakeRaw is nil, returns a function wrapping golang.org/x/term.
func GetMakeRawFunc(deps *Dependencies) MakeRawFunc {
	if deps != nil && deps.MakeRaw != nil {
		return deps.MakeRaw
	}
	return func(fd int) (func() error, error) {
		state, err := term.MakeRaw(fd)
		if err != nil {
			return nil, err
		}
		return func() error {
			return term.Restore(fd, state)
		}, nil
	}
}

// GetTermSizeFunc returns the size probe from dependencies, or a default implementation.
// If deps is nil or deps.TermSize is nil, returns golang.org/x/term's size query.
func GetTermSizeFunc(deps *Dependencies) TermSizeFunc {
	if deps != nil && deps.TermSize != nil {
		return deps.TermSize
	}
	return term.GetSize
}
