package session

import (
	"errors"
	"fmt"
	"io"

	"github.com/muesli/cancelreader"
)

// readChunk is the maximum number of bytes moved per read.
const readChunk = 64 * 1024

// pump moves bytes from the PTY master to the screen sink. It is the
// only reader of the master. Reads go through a cancelable reader when
// the platform supports one so Close can interrupt a blocked read;
// otherwise closing the master unblocks it.
type pump struct {
	src     io.Reader
	creader cancelreader.CancelReader
	sink    screenSink
	onDirty func()
	sess    *Session
}

type screenSink interface {
	Feed(p []byte)
}

func newPump(src io.Reader, sink screenSink, onDirty func(), sess *Session) *pump {
	p := &pump{
		src:     src,
		sink:    sink,
		onDirty: onDirty,
		sess:    sess,
	}

	creader, err := cancelreader.NewReader(src)
	if err != nil {
		return p
	}
	p.creader = creader
	return p
}

func (p *pump) read(buf []byte) (int, error) {
	if p.creader != nil {
		return p.creader.Read(buf)
	}
	return p.src.Read(buf)
}

// cancel interrupts a blocked read. It reports whether the read was
// actually cancelable.
func (p *pump) cancel() bool {
	if p.creader != nil {
		return p.creader.Cancel()
	}
	return false
}

// run loops until the child side closes, a read fails or the pump is
// canceled. Every chunk is forwarded to the sink in arrival order
// before the next read starts, then the dirty callback fires.
func (p *pump) run() {
	defer close(p.sess.done)

	buf := make([]byte, readChunk)
	for {
		n, err := p.read(buf)
		if n > 0 {
			p.sink.Feed(buf[:n])
			if p.onDirty != nil {
				p.onDirty()
			}
		}
		if err == nil {
			continue
		}

		if errors.Is(err, cancelreader.ErrCanceled) {
			return
		}

		p.sess.setDead()
		if errors.Is(err, io.EOF) || isHangup(err) {
			// the child's side is gone, a normal end of session
			p.sess.emit(Event{Kind: EventTerminated})
		} else {
			p.sess.log.Warn("pty read failed", "err", err)
			p.sess.emit(Event{Kind: EventReadFailed, Err: fmt.Errorf("%w: %v", ErrReadFailed, err)})
		}
		return
	}
}
