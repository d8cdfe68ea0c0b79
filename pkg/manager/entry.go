package manager

import "sync"

// Entry is one managed terminal: a stable id, a display title and the
// pane behind it.
type Entry struct {
	ID    string
	Title string
	Pane  Pane

	mu       sync.Mutex
	finished bool
}

// Finished reports whether the terminal's session has ended while the
// tab is still open.
func (e *Entry) Finished() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.finished
}

// DisplayTitle returns the title, marked when the session has ended.
func (e *Entry) DisplayTitle() string {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.finished {
		return e.Title + " ✗"
	}
	return e.Title
}

func (e *Entry) setFinished() {
	e.mu.Lock()
	e.finished = true
	e.mu.Unlock()
}
