package key

import "unicode/utf8"

// F5 through F12 use numbered CSI codes with gaps inherited from the VT220.
var fnCodes = [...]string{"15", "17", "18", "19", "20", "21", "23", "24"}

// Encode translates a key event into the byte sequence a terminal
// program expects on its input stream. It is a pure table lookup with
// no hidden state. A nil or empty result means the event produces no
// input, not an error.
func Encode(e Event) []byte {
	switch e.Key {
	case KeyEnter:
		return []byte{'\r'}
	case KeyBackspace:
		return []byte{0x7f}
	case KeyEscape:
		return []byte{0x1b}
	case KeyTab:
		if e.Mods.HasShift() {
			return []byte("\x1b[Z")
		}
		return []byte{'\t'}
	case KeyUp:
		return []byte("\x1b[A")
	case KeyDown:
		return []byte("\x1b[B")
	case KeyRight:
		if e.Mods.HasCtrl() {
			return []byte("\x1bf") // word forward
		}
		return []byte("\x1b[C")
	case KeyLeft:
		if e.Mods.HasCtrl() {
			return []byte("\x1bb") // word backward
		}
		return []byte("\x1b[D")
	case KeyHome:
		return []byte("\x1b[H")
	case KeyEnd:
		return []byte("\x1b[F")
	case KeyPageUp:
		return []byte("\x1b[5~")
	case KeyPageDown:
		return []byte("\x1b[6~")
	case KeyInsert:
		return []byte("\x1b[2~")
	case KeyDelete:
		return []byte("\x1b[3~")
	case KeyF1, KeyF2, KeyF3, KeyF4:
		return []byte{0x1b, 'O', 'P' + byte(e.Key-KeyF1)}
	case KeyF5, KeyF6, KeyF7, KeyF8, KeyF9, KeyF10, KeyF11, KeyF12:
		return []byte("\x1b[" + fnCodes[e.Key-KeyF5] + "~")
	case KeyText:
		return encodeText(e)
	}
	return nil
}

func encodeText(e Event) []byte {
	if e.Text == "" {
		return nil
	}
	if e.Mods.HasCtrl() {
		if b, ok := controlByte(e.Text); ok {
			return []byte{b}
		}
	}
	if e.Mods.HasAlt() {
		return append([]byte{0x1b}, e.Text...)
	}
	return []byte(e.Text)
}

// controlByte maps a letter or one of [ \ ] to its control character.
// Other characters have no control mapping and fall through to the
// plain text encoding.
func controlByte(text string) (byte, bool) {
	r, _ := utf8.DecodeRuneInString(text)
	switch {
	case r >= 'a' && r <= 'z':
		return byte(r-'a') + 1, true
	case r >= 'A' && r <= 'Z':
		return byte(r-'A') + 1, true
	case r == '[':
		return 0x1b, true
	case r == '\\':
		return 0x1c, true
	case r == ']':
		return 0x1d, true
	}
	return 0, false
}
