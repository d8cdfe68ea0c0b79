package session

import (
	"fmt"
	"time"
)

// Close tears the session down in a fixed order: stop and join the IO
// pump, terminate the child (escalating to a kill if it will not go),
// reap it, close the master descriptor and mark the session dead.
// Every step runs even if an earlier one fails; a stuck child never
// prevents descriptor cleanup. Close is idempotent and returns the
// first error of the first call on every subsequent call.
func (s *Session) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.close()
	})
	return s.closeErr
}

func (s *Session) close() error {
	var firstErr error

	// 1. stop the pump and join it
	if s.pump != nil {
		s.pump.cancel()
		select {
		case <-s.done:
		case <-time.After(s.joinTimeout):
			// closing the master below unblocks a read that was not
			// cancelable
			s.log.Warn("pump did not stop within timeout")
		}
	}

	// 2. + 3. terminate the child, escalating to kill
	if s.proc != nil {
		if err := s.reapChild(); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	// 4. release the master descriptor
	if s.ptm != nil {
		if err := s.ptm.Close(); err != nil {
			s.log.Warn("closing pty master failed", "err", err)
			if firstErr == nil {
				firstErr = fmt.Errorf("closing pty master: %s", err)
			}
		}
	}

	// 5. the session is gone
	s.setDead()
	s.log.Debug("session closed")
	return firstErr
}

// reapChild sends SIGTERM, waits briefly and escalates to SIGKILL if
// the child ignores it. After a kill the reap wait is unbounded: the
// kernel guarantees the process disappears.
func (s *Session) reapChild() error {
	select {
	case <-s.waitDone:
		return nil // already exited
	default:
	}

	if err := s.terminate(); err != nil {
		s.log.Warn("terminating child failed", "err", err)
	}

	select {
	case <-s.waitDone:
		return nil
	case <-time.After(s.termTimeout):
	}

	s.log.Warn("child ignored termination, killing", "pid", s.pid)
	if err := s.kill(); err != nil {
		s.log.Warn("killing child failed", "err", err)
		select {
		case <-s.waitDone:
			return nil
		default:
			return fmt.Errorf("child %d could not be killed: %s", s.pid, err)
		}
	}

	<-s.waitDone
	return nil
}
