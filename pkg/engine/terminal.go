// Package engine wires one session together with input encoding,
// render scheduling, resize debouncing, scrollback and the clipboard.
// A Terminal is what a UI embeds per tab.
package engine

import (
	"context"
	"strings"
	"sync"
	"time"

	"pkt.systems/pslog"

	"ptykit/pkg/clipboard"
	"ptykit/pkg/key"
	"ptykit/pkg/render"
	"ptykit/pkg/resize"
	"ptykit/pkg/screen"
	"ptykit/pkg/session"
	"ptykit/pkg/viewport"
)

const (
	// DefaultHistoryLines is the scrollback capacity used when the
	// engine builds its own grid.
	DefaultHistoryLines = 10000

	// DefaultWheelLines is how many lines one mouse wheel notch
	// scrolls.
	DefaultWheelLines = 3
)

// Options configures a new terminal.
type Options struct {
	Shell          string
	WorkDir        string
	InitialCommand string
	Cols           int
	Rows           int
	Env            []string

	// Sink receives the session's output. Leave nil to let the engine
	// build a screen.Grid with HistoryLines of scrollback.
	Sink         screen.Sink
	HistoryLines int

	RenderInterval time.Duration
	ResizeDelay    time.Duration
	WheelLines     int

	// Clipboard overrides the process-wide clipboard, mainly for
	// tests.
	Clipboard *clipboard.Clipboard
}

// terminalSession is the slice of a session the engine drives.
type terminalSession interface {
	Write(p []byte) error
	Resize(rows, cols int) error
	Size() (cols, rows int)
	Alive() bool
	Events() <-chan session.Event
	Done() <-chan struct{}
	Close() error
}

// Terminal is one shell session plus everything around it: key events
// go in, repaint signals come out.
type Terminal struct {
	sess  terminalSession
	sink  screen.Sink
	sched *render.Scheduler
	coord *resize.Coordinator
	view  *viewport.Manager
	clip  *clipboard.Clipboard
	wheel int
	log   pslog.Logger

	mu  sync.Mutex
	sel *viewport.Selection
}

// New starts a session and assembles a terminal around it.
func New(ctx context.Context, opts Options) (*Terminal, error) {
	log := pslog.Ctx(ctx)

	cols, rows := opts.Cols, opts.Rows
	if cols <= 0 {
		cols = 80
	}
	if rows <= 0 {
		rows = 24
	}

	sink := opts.Sink
	if sink == nil {
		hist := opts.HistoryLines
		if hist <= 0 {
			hist = DefaultHistoryLines
		}
		sink = screen.NewGrid(rows, cols, hist)
	}

	wheel := opts.WheelLines
	if wheel <= 0 {
		wheel = DefaultWheelLines
	}
	clip := opts.Clipboard
	if clip == nil {
		clip = clipboard.Default()
	}

	t := &Terminal{
		sink:  sink,
		sched: render.NewScheduler(opts.RenderInterval),
		view:  viewport.NewManager(sink),
		clip:  clip,
		wheel: wheel,
		log:   log,
	}

	sess, err := session.Start(ctx, session.Options{
		Shell:          opts.Shell,
		WorkDir:        opts.WorkDir,
		InitialCommand: opts.InitialCommand,
		Cols:           cols,
		Rows:           rows,
		Env:            opts.Env,
		Sink:           sink,
		OnDirty:        t.sched.Dirty,
	})
	if err != nil {
		t.sched.Stop()
		return nil, err
	}
	t.sess = sess
	t.coord = resize.NewCoordinator(opts.ResizeDelay, sess, log)

	go t.watch()
	return t, nil
}

// watch schedules one final repaint when the session ends so the dead
// screen gets its "session ended" rendering.
func (t *Terminal) watch() {
	<-t.sess.Done()
	t.sched.Dirty()
}

// HandleKey routes one key event: reserved combinations run locally,
// everything else is encoded and written to the PTY.
func (t *Terminal) HandleKey(e key.Event) {
	switch key.Reserved(e) {
	case key.ActionCopy:
		t.CopySelection()
		return
	case key.ActionPaste:
		t.PasteClipboard()
		return
	case key.ActionScrollUp:
		t.scrollPage(1)
		return
	case key.ActionScrollDown:
		t.scrollPage(-1)
		return
	}

	b := key.Encode(e)
	if len(b) == 0 {
		return
	}
	t.SendInput(b)
}

// SendInput writes raw bytes to the PTY. Writing snaps the viewport to
// the live tail and drops any selection. Write errors are logged by
// the session and surfaced on Events; input is dropped, the terminal
// stays up.
func (t *Terminal) SendInput(p []byte) error {
	t.view.ScrollToBottom()
	t.ClearSelection()
	err := t.sess.Write(p)
	t.sched.Dirty()
	return err
}

// Wheel scrolls by mouse wheel notches, positive away from the live
// tail.
func (t *Terminal) Wheel(notches int) {
	t.view.ScrollBy(notches * t.wheel)
	t.sched.Dirty()
}

func (t *Terminal) scrollPage(dir int) {
	_, rows := t.sess.Size()
	step := rows - 1
	if step < 1 {
		step = 1
	}
	t.view.ScrollBy(dir * step)
	t.sched.Dirty()
}

// RequestResize feeds new pixel geometry into the debounced resize
// path.
func (t *Terminal) RequestResize(pixelWidth, pixelHeight, cellWidth, cellHeight int) {
	t.coord.Request(pixelWidth, pixelHeight, cellWidth, cellHeight)
}

// SetSelection replaces the active selection.
func (t *Terminal) SetSelection(start, end viewport.Point) {
	t.mu.Lock()
	t.sel = &viewport.Selection{Start: start, End: end}
	t.mu.Unlock()
	t.sched.Dirty()
}

// ClearSelection drops the active selection.
func (t *Terminal) ClearSelection() {
	t.mu.Lock()
	had := t.sel != nil
	t.sel = nil
	t.mu.Unlock()
	if had {
		t.sched.Dirty()
	}
}

// Selection returns the active selection, normalized, and whether one
// exists.
func (t *Terminal) Selection() (viewport.Selection, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.sel == nil {
		return viewport.Selection{}, false
	}
	return t.sel.Normalized(), true
}

// SelectedText reads the selected cells from the sink. Lines are
// joined with newlines, trailing blanks trimmed.
func (t *Terminal) SelectedText() string {
	sel, ok := t.Selection()
	if !ok {
		return ""
	}

	cols, rows := t.sess.Size()
	if cols <= 0 || rows <= 0 {
		return ""
	}

	startRow := clampInt(sel.Start.Row, 0, rows-1)
	endRow := clampInt(sel.End.Row, 0, rows-1)

	var lines []string
	for r := startRow; r <= endRow; r++ {
		from, to := 0, cols-1
		if r == sel.Start.Row {
			from = clampInt(sel.Start.Col, 0, cols-1)
		}
		if r == sel.End.Row {
			to = clampInt(sel.End.Col, 0, cols-1)
		}

		var b strings.Builder
		for c := from; c <= to; c++ {
			cell := t.sink.CellAt(r, c)
			if cell.Ch == 0 {
				continue
			}
			b.WriteRune(cell.Ch)
		}
		lines = append(lines, strings.TrimRight(b.String(), " "))
	}
	return strings.Join(lines, "\n")
}

// CopySelection puts the selected text on the clipboard. An empty
// selection copies nothing.
func (t *Terminal) CopySelection() {
	text := t.SelectedText()
	if text == "" {
		return
	}
	t.clip.Copy(text)
}

// CutSelection puts the selected text on the clipboard for a single
// paste and drops the selection.
func (t *Terminal) CutSelection() {
	text := t.SelectedText()
	if text == "" {
		return
	}
	t.clip.Cut(text)
	t.ClearSelection()
}

// PasteClipboard writes the clipboard's text to the PTY.
func (t *Terminal) PasteClipboard() {
	text, ok := t.clip.Paste()
	if !ok || text == "" {
		return
	}
	t.SendInput([]byte(text))
}

// Repaint returns the scheduler's repaint channel.
func (t *Terminal) Repaint() <-chan struct{} {
	return t.sched.Repaint()
}

// Events returns the session's event channel.
func (t *Terminal) Events() <-chan session.Event {
	return t.sess.Events()
}

// Done returns a channel closed when the session's output has ended.
func (t *Terminal) Done() <-chan struct{} {
	return t.sess.Done()
}

// Alive reports whether the session is still attached to a child.
func (t *Terminal) Alive() bool {
	return t.sess.Alive()
}

// Size returns the session's current geometry.
func (t *Terminal) Size() (cols, rows int) {
	return t.sess.Size()
}

// ScrollOffset returns how far the viewport is scrolled into history.
func (t *Terminal) ScrollOffset() int {
	return t.view.Offset()
}

// AtBottom reports whether the viewport shows the live tail.
func (t *Terminal) AtBottom() bool {
	return t.view.AtBottom()
}

// Sink returns the screen sink backing this terminal.
func (t *Terminal) Sink() screen.Sink {
	return t.sink
}

// Close stops the scheduler and the resize coordinator and tears the
// session down.
func (t *Terminal) Close() error {
	t.coord.Stop()
	t.sched.Stop()
	return t.sess.Close()
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
