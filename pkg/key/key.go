// Package key models keyboard input and its encoding into the byte
// sequences a terminal expects on its input stream.
package key

import "fmt"

// Key identifies a non-printable key. Printable input uses KeyText
// with the characters carried in Event.Text.
type Key uint16

const (
	// KeyNone represents no key.
	KeyNone Key = iota

	// KeyText is used for printable input.
	KeyText

	// Special keys
	KeyEnter
	KeyBackspace
	KeyEscape
	KeyTab
	KeyInsert
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// Arrow keys
	KeyUp
	KeyDown
	KeyRight
	KeyLeft

	// Function keys
	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12
)

var keyNames = map[Key]string{
	KeyNone:      "None",
	KeyText:      "Text",
	KeyEnter:     "Enter",
	KeyBackspace: "Backspace",
	KeyEscape:    "Escape",
	KeyTab:       "Tab",
	KeyInsert:    "Insert",
	KeyDelete:    "Delete",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyRight:     "Right",
	KeyLeft:      "Left",
}

// String returns a human-readable name for the key.
func (k Key) String() string {
	if name, ok := keyNames[k]; ok {
		return name
	}
	if k >= KeyF1 && k <= KeyF12 {
		return fmt.Sprintf("F%d", int(k-KeyF1)+1)
	}
	return fmt.Sprintf("Key(%d)", uint16(k))
}
