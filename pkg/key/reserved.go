package key

import (
	"unicode"
	"unicode/utf8"
)

// Action identifies a local function bound to a key combination.
// Reserved combinations are handled by the terminal itself and are
// never forwarded to the PTY.
type Action int

const (
	ActionNone Action = iota
	ActionCopy
	ActionPaste
	ActionScrollUp
	ActionScrollDown
)

// Reserved reports the local action bound to e, if any. Ctrl+Shift+C
// and Ctrl+Shift+V drive the clipboard; Shift+PageUp and Shift+PageDown
// page through scrollback.
func Reserved(e Event) Action {
	if e.Mods.HasShift() {
		switch e.Key {
		case KeyPageUp:
			return ActionScrollUp
		case KeyPageDown:
			return ActionScrollDown
		}
	}

	if e.Key == KeyText && e.Mods.HasCtrl() && e.Mods.HasShift() {
		r, _ := utf8.DecodeRuneInString(e.Text)
		switch unicode.ToLower(r) {
		case 'c':
			return ActionCopy
		case 'v':
			return ActionPaste
		}
	}

	return ActionNone
}
