package session

import (
	"errors"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/muesli/cancelreader"

	"ptykit/mocks"
)

func waitClosed(t *testing.T, ch <-chan struct{}, timeout time.Duration) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(timeout):
		t.Fatal("channel not closed within timeout")
	}
}

func TestPumpFeedsInOrder(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	sink := mocks.NewMockSink(24, 80)
	var dirty atomic.Int32

	pr, pw := io.Pipe()
	s.pump = newPump(pr, sink, func() { dirty.Add(1) }, s)
	go s.pump.run()

	for _, chunk := range []string{"first ", "second ", "third"} {
		if _, err := pw.Write([]byte(chunk)); err != nil {
			t.Fatalf("Write(%q) error = %v", chunk, err)
		}
	}
	pw.Close()

	waitClosed(t, s.Done(), 2*time.Second)

	if got := string(sink.Joined()); got != "first second third" {
		t.Errorf("sink received %q, want %q", got, "first second third")
	}
	if dirty.Load() == 0 {
		t.Error("dirty callback never fired")
	}
	if s.Alive() {
		t.Error("Alive() = true after EOF")
	}

	select {
	case ev := <-s.Events():
		if ev.Kind != EventTerminated {
			t.Errorf("event = %v, want EventTerminated", ev.Kind)
		}
	default:
		t.Error("no terminated event emitted")
	}
}

type failingReader struct {
	err error
}

func (f *failingReader) Read(p []byte) (int, error) {
	return 0, f.err
}

func TestPumpEmitsReadFailed(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	sink := mocks.NewMockSink(24, 80)

	bang := errors.New("device exploded")
	s.pump = newPump(&failingReader{err: bang}, sink, nil, s)
	go s.pump.run()

	waitClosed(t, s.Done(), 2*time.Second)

	select {
	case ev := <-s.Events():
		if ev.Kind != EventReadFailed {
			t.Fatalf("event = %v, want EventReadFailed", ev.Kind)
		}
		if !errors.Is(ev.Err, ErrReadFailed) {
			t.Errorf("event error = %v, want ErrReadFailed", ev.Err)
		}
	default:
		t.Fatal("no event emitted")
	}
	if s.Alive() {
		t.Error("Alive() = true after read failure")
	}
}

func TestPumpExitsSilentlyOnCancel(t *testing.T) {
	t.Parallel()

	s := newTestSession()
	sink := mocks.NewMockSink(24, 80)

	s.pump = newPump(&failingReader{err: cancelreader.ErrCanceled}, sink, nil, s)
	go s.pump.run()

	waitClosed(t, s.Done(), 2*time.Second)

	select {
	case ev := <-s.Events():
		t.Errorf("unexpected event %v after cancellation", ev.Kind)
	default:
	}
	// cancellation comes from Close, which flips alive itself
	if !s.Alive() {
		t.Error("Alive() = false, cancellation must not mark the session dead")
	}
}

