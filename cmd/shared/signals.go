package shared

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"
)

// gracePeriod is how long teardown may take after the first signal
// before the process exits regardless. Killing a stubborn shell takes
// up to a second per session, so leave room for a few of them.
const gracePeriod = 5 * time.Second

// SetupSignalHandling cancels ctx on the first termination signal and
// force-exits on the second. While the controlling terminal is in raw
// mode Ctrl+C reaches the shell as a byte, not as SIGINT, so anything
// arriving here comes from outside the session.
func SetupSignalHandling(cancel context.CancelFunc) {
	sigCh := make(chan os.Signal, 2)

	sigs := []os.Signal{os.Interrupt}
	if runtime.GOOS != "windows" {
		// SIGHUP covers the controlling terminal going away
		sigs = append(sigs, syscall.SIGTERM, syscall.SIGHUP, syscall.SIGQUIT)
		// broken pipes must not kill the process mid-teardown
		signal.Ignore(syscall.SIGPIPE)
	}
	signal.Notify(sigCh, sigs...)

	go func() {
		s := <-sigCh
		cancel()

		// a second signal skips the grace period
		select {
		case <-sigCh:
			os.Exit(forceExitCode(s))
		case <-time.After(gracePeriod):
			os.Exit(0)
		}
	}()
}

// forceExitCode maps a signal to the conventional 128+signum exit code.
func forceExitCode(s os.Signal) int {
	if ss, ok := s.(syscall.Signal); ok {
		return 128 + int(ss)
	}
	return 1
}
