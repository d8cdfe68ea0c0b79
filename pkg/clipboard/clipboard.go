// Package clipboard holds the process-wide copy/cut buffer shared by
// all terminal sessions.
package clipboard

import "sync"

// Clipboard is a single text buffer with explicit ownership semantics:
// text placed by Cut is handed over on the first Paste and the buffer
// clears, while text placed by Copy survives any number of pastes.
type Clipboard struct {
	mu   sync.Mutex
	text string
	cut  bool
	has  bool
}

// Copy stores text for repeated pasting.
func (c *Clipboard) Copy(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
	c.cut = false
	c.has = true
}

// Cut stores text for a single paste.
func (c *Clipboard) Cut(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = text
	c.cut = true
	c.has = true
}

// Paste returns the stored text. After pasting cut text the buffer is
// empty; copied text remains available.
func (c *Clipboard) Paste() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.has {
		return "", false
	}
	text := c.text
	if c.cut {
		c.text = ""
		c.cut = false
		c.has = false
	}
	return text, true
}

// Clear empties the buffer.
func (c *Clipboard) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.text = ""
	c.cut = false
	c.has = false
}

// std is the process-wide clipboard used by the package-level funcs.
var std Clipboard

// Copy stores text on the process-wide clipboard.
func Copy(text string) {
	std.Copy(text)
}

// Cut stores text on the process-wide clipboard for a single paste.
func Cut(text string) {
	std.Cut(text)
}

// Paste returns the process-wide clipboard's text.
func Paste() (string, bool) {
	return std.Paste()
}

// Clear empties the process-wide clipboard.
func Clear() {
	std.Clear()
}

// Default returns the process-wide clipboard.
func Default() *Clipboard {
	return &std
}
