// Package entrypoint attaches the calling terminal to a managed
// session: raw mode, the stdin pump, size polling and teardown live
// here, separated from CLI argument parsing.
package entrypoint

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/muesli/cancelreader"
	"pkt.systems/pslog"

	"ptykit/pkg/config"
	"ptykit/pkg/engine"
	"ptykit/pkg/log"
	"ptykit/pkg/manager"
	"ptykit/pkg/screen"
)

// uses interfaces/factories from internal.go (DI for testing)

// Run opens one terminal and wires the caller's tty to it until the
// session ends, stdin closes or ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config, rCfg *config.Run, deps *config.Dependencies) error {
	return run(ctx, cfg, rCfg, deps, realManagerFactory())
}

func run(
	parent context.Context,
	cfg *config.Config,
	rCfg *config.Run,
	deps *config.Dependencies,
	newManager managerFactory,
) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	logger := pslog.Ctx(ctx)

	stdin := config.GetStdinFunc(deps)()
	stdout := config.GetStdoutFunc(deps)()
	fd := config.GetStdinFdFunc(deps)()
	isTerminal := config.GetIsTerminalFunc(deps)
	makeRaw := config.GetMakeRawFunc(deps)
	termSize := config.GetTermSizeFunc(deps)

	cols, rows := cfg.Terminal.Cols, cfg.Terminal.Rows
	if (cols == 0 || rows == 0) && isTerminal(fd) {
		c, r, err := termSize(fd)
		if err != nil {
			logger.Warn("terminal size probe failed", "err", err)
		} else {
			if cols == 0 {
				cols = c
			}
			if rows == 0 {
				rows = r
			}
		}
	}
	if cols <= 0 {
		cols = 80
	}
	if rows <= 0 {
		rows = 24
	}

	var sink screen.Sink = &echoSink{
		Grid: screen.NewGrid(rows, cols, cfg.Terminal.HistoryLines),
		out:  stdout,
	}
	if rCfg.LogFile != "" {
		ts, err := log.NewTranscriptSink(sink, rCfg.LogFile)
		if err != nil {
			return fmt.Errorf("opening transcript: %w", err)
		}
		defer ts.Close()
		sink = ts
	}

	mgr := newManager(manager.Options{
		MaxSessions: cfg.Sessions.Max,
		OpenTimeout: cfg.OpenTimeout(),
	})
	var closeOnce sync.Once
	closeAll := func() { closeOnce.Do(func() { _ = mgr.CloseAll() }) }
	defer closeAll()

	entry, err := mgr.Open(ctx, engine.Options{
		Shell:          cfg.Shell,
		WorkDir:        cfg.WorkDir,
		InitialCommand: rCfg.Command,
		Cols:           cols,
		Rows:           rows,
		Sink:           sink,
		RenderInterval: cfg.RenderInterval(),
		ResizeDelay:    cfg.ResizeDelay(),
		WheelLines:     cfg.Terminal.ScrollLines,
	})
	if err != nil {
		return fmt.Errorf("opening terminal: %w", err)
	}

	if isTerminal(fd) {
		log.InfoMsg("Enabling raw mode\n")
		restore, err := makeRaw(fd)
		if err != nil {
			return fmt.Errorf("setting terminal to raw mode: %s", err)
		}
		defer func() {
			restore()
			fmt.Fprintf(stdout, "\033[2K\r") // clear line
		}()
	} else {
		logger.Warn("stdin is not a terminal, raw mode disabled")
	}

	in, cancelInput := cancelableStdin(stdin, logger)
	inputErr := make(chan error, 1)
	go pumpStdin(in, mgr, inputErr, logger)

	go pollTerminalSize(ctx, mgr, fd, cols, rows, isTerminal, termSize)

	select {
	case <-ctx.Done():
		closeAll()
		joinStdin(cancelInput, inputErr)
		return nil

	case err := <-inputErr:
		closeAll()
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		return nil

	case <-entry.Pane.Done():
		// the shell exited on its own
		closeAll()
		joinStdin(cancelInput, inputErr)
		return nil
	}
}

// cancelableStdin wraps stdin so the pump can be unblocked on exit.
// Falls back to the plain reader where cancellation is unsupported.
func cancelableStdin(stdin io.Reader, logger pslog.Logger) (io.Reader, func() bool) {
	creader, err := cancelreader.NewReader(stdin)
	if err != nil {
		logger.Warn("stdin cancellation unsupported", "err", err)
		return stdin, func() bool { return false }
	}
	return creader, creader.Cancel
}

func pumpStdin(in io.Reader, mgr managerInterface, inputErr chan<- error, logger pslog.Logger) {
	buf := make([]byte, 4096)
	for {
		n, err := in.Read(buf)
		if n > 0 {
			if werr := mgr.SendToCurrent(buf[:n]); werr != nil {
				logger.Warn("forwarding input failed", "err", werr)
			}
		}
		if err != nil {
			if errors.Is(err, cancelreader.ErrCanceled) || errors.Is(err, io.EOF) {
				inputErr <- nil
				return
			}
			inputErr <- err
			return
		}
	}
}

// joinStdin waits briefly for the pump to unwind. A reader that cannot
// be cancelled stays blocked on the final read and is abandoned.
func joinStdin(cancelInput func() bool, inputErr <-chan error) {
	cancelInput()
	select {
	case <-inputErr:
	case <-time.After(200 * time.Millisecond):
	}
}

func pollTerminalSize(
	ctx context.Context,
	mgr managerInterface,
	fd int,
	cols, rows int,
	isTerminal config.IsTerminalFunc,
	termSize config.TermSizeFunc,
) {
	ticker := time.NewTicker(1 * time.Second)
	defer ticker.Stop()

	lastCols, lastRows := cols, rows
	for {
		select {
		case <-ticker.C:
			if !isTerminal(fd) {
				continue
			}
			c, r, err := termSize(fd)
			if err != nil || (c == lastCols && r == lastRows) {
				continue
			}
			lastCols, lastRows = c, r
			// cell size 1x1 so cols and rows pass through as pixels
			mgr.ResizeAll(c, r, 1, 1)
		case <-ctx.Done():
			return
		}
	}
}

// echoSink keeps the grid model current while writing the raw bytes
// through to the attached terminal, which does the actual rendering.
type echoSink struct {
	*screen.Grid
	out io.Writer
}

func (s *echoSink) Feed(p []byte) {
	s.out.Write(p)
	s.Grid.Feed(p)
}
