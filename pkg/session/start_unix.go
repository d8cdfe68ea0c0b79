//go:build !windows
// +build !windows

package session

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"syscall"

	"golang.org/x/sys/unix"

	"pkt.systems/pslog"

	"ptykit/pkg/pty"
)

// Start allocates a pseudo-terminal, applies the requested geometry to
// the slave side and starts the shell attached to it as the leader of
// a new session with the slave as its controlling terminal. The IO
// pump begins feeding the sink immediately. The returned session is
// alive; Close releases everything.
func Start(ctx context.Context, opts Options) (*Session, error) {
	if opts.Sink == nil {
		return nil, fmt.Errorf("no screen sink provided")
	}

	shell := opts.Shell
	if shell == "" {
		shell = os.Getenv("SHELL")
	}
	if shell == "" {
		shell = "/bin/bash"
	}

	cols, rows := opts.Cols, opts.Rows
	if cols <= 0 {
		cols = 80
	}
	if rows <= 0 {
		rows = 24
	}

	ptm, pts, err := pty.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPtyAllocFailed, err)
	}

	log := pslog.Ctx(ctx)

	// geometry must be in place before the child attaches
	if err := pty.SetSize(pts, pty.TerminalSize{Rows: rows, Cols: cols}); err != nil {
		log.Warn("setting initial window size failed", "err", err)
	}

	cmd := buildCommand(shell, opts)
	cmd.Stdin = pts
	cmd.Stdout = pts
	cmd.Stderr = pts
	cmd.SysProcAttr = &syscall.SysProcAttr{
		Setsid:  true,
		Setctty: true,
	}
	cmd.Env = append(os.Environ(),
		"TERM=xterm-256color",
		"COLORTERM=truecolor",
		fmt.Sprintf("COLUMNS=%d", cols),
		fmt.Sprintf("LINES=%d", rows),
	)
	cmd.Env = append(cmd.Env, opts.Env...)

	if err := cmd.Start(); err != nil {
		ptm.Close()
		pts.Close()
		return nil, fmt.Errorf("%w: %v", ErrForkFailed, err)
	}

	// the child owns the slave now
	pts.Close()

	s := &Session{
		ptm:         ptm,
		proc:        realProcess{p: cmd.Process},
		pid:         cmd.Process.Pid,
		workDir:     opts.WorkDir,
		cols:        cols,
		rows:        rows,
		alive:       true,
		sink:        opts.Sink,
		events:      make(chan Event, 8),
		done:        make(chan struct{}),
		waitDone:    make(chan struct{}),
		joinTimeout: defaultJoinTimeout,
		termTimeout: defaultTermTimeout,
		log:         log.With("pid", cmd.Process.Pid),
	}

	go func() {
		cmd.Wait()
		close(s.waitDone)
	}()

	s.pump = newPump(ptm, opts.Sink, opts.OnDirty, s)
	go s.pump.run()

	s.log.Debug("session started", "shell", shell, "cols", cols, "rows", rows)
	return s, nil
}

// buildCommand assembles the shell invocation. With an initial command
// the shell runs it first and then replaces itself with an interactive
// shell, so the user keeps a prompt afterwards.
func buildCommand(shell string, opts Options) *exec.Cmd {
	var cmd *exec.Cmd
	if opts.InitialCommand != "" {
		script := fmt.Sprintf("%s; exec %s -i", opts.InitialCommand, shell)
		cmd = exec.Command(shell, "-c", script)
	} else {
		cmd = exec.Command(shell, "-l", "-i")
	}
	cmd.Dir = opts.WorkDir
	return cmd
}

type realProcess struct {
	p *os.Process
}

func (r realProcess) Pid() int {
	return r.p.Pid
}

func (r realProcess) Signal(sig os.Signal) error {
	return r.p.Signal(sig)
}

func (s *Session) terminate() error {
	return s.proc.Signal(unix.SIGTERM)
}

func (s *Session) kill() error {
	return s.proc.Signal(unix.SIGKILL)
}
