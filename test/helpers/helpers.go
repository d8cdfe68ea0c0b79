// Package helpers provides common utilities for integration and end-to-end tests.
package helpers

import (
	"io"

	"ptykit/mocks"
	"ptykit/pkg/config"
)

// Setup bundles mock stdio, dependency wiring and configs for
// end-to-end tests that drive the real entrypoint.
type Setup struct {
	Stdio *mocks.MockStdio
	Deps  *config.Dependencies
	Cfg   *config.Config
	RCfg  *config.Run
}

// SetupMockDependenciesAndConfigs creates mock stdio wired into a
// dependency set, plus default configs with a fixed 120x40 terminal.
// The mock stdin does not look like a tty, so the entrypoint leaves
// raw mode alone and the fixed size is never overridden by polling.
func SetupMockDependenciesAndConfigs() *Setup {
	stdio := mocks.NewMockStdio()

	cfg := config.DefaultConfig()
	cfg.Terminal.Cols = 120
	cfg.Terminal.Rows = 40

	return &Setup{
		Stdio: stdio,
		Deps: &config.Dependencies{
			Stdin:      func() io.Reader { return stdio.GetStdin() },
			Stdout:     func() io.Writer { return stdio.GetStdout() },
			StdinFd:    func() int { return -1 },
			IsTerminal: func(fd int) bool { return false },
		},
		Cfg:  &cfg,
		RCfg: &config.Run{},
	}
}

// Close releases the mock stdio pipes.
func (s *Setup) Close() {
	s.Stdio.Close()
}
