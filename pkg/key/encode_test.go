package key

import (
	"bytes"
	"testing"
)

func TestEncode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		event Event
		want  []byte
	}{
		{
			name:  "enter",
			event: Event{Key: KeyEnter},
			want:  []byte("\r"),
		},
		{
			name:  "backspace",
			event: Event{Key: KeyBackspace},
			want:  []byte{0x7f},
		},
		{
			name:  "escape",
			event: Event{Key: KeyEscape},
			want:  []byte{0x1b},
		},
		{
			name:  "tab",
			event: Event{Key: KeyTab},
			want:  []byte("\t"),
		},
		{
			name:  "shift tab",
			event: Event{Key: KeyTab, Mods: ModShift},
			want:  []byte("\x1b[Z"),
		},
		{
			name:  "arrow up",
			event: Event{Key: KeyUp},
			want:  []byte("\x1b[A"),
		},
		{
			name:  "arrow down",
			event: Event{Key: KeyDown},
			want:  []byte("\x1b[B"),
		},
		{
			name:  "arrow right",
			event: Event{Key: KeyRight},
			want:  []byte("\x1b[C"),
		},
		{
			name:  "arrow left",
			event: Event{Key: KeyLeft},
			want:  []byte("\x1b[D"),
		},
		{
			name:  "ctrl right is word forward",
			event: Event{Key: KeyRight, Mods: ModCtrl},
			want:  []byte("\x1bf"),
		},
		{
			name:  "ctrl left is word backward",
			event: Event{Key: KeyLeft, Mods: ModCtrl},
			want:  []byte("\x1bb"),
		},
		{
			name:  "home",
			event: Event{Key: KeyHome},
			want:  []byte("\x1b[H"),
		},
		{
			name:  "end",
			event: Event{Key: KeyEnd},
			want:  []byte("\x1b[F"),
		},
		{
			name:  "page up",
			event: Event{Key: KeyPageUp},
			want:  []byte("\x1b[5~"),
		},
		{
			name:  "page down",
			event: Event{Key: KeyPageDown},
			want:  []byte("\x1b[6~"),
		},
		{
			name:  "insert",
			event: Event{Key: KeyInsert},
			want:  []byte("\x1b[2~"),
		},
		{
			name:  "delete",
			event: Event{Key: KeyDelete},
			want:  []byte("\x1b[3~"),
		},
		{
			name:  "f1",
			event: Event{Key: KeyF1},
			want:  []byte("\x1bOP"),
		},
		{
			name:  "f4",
			event: Event{Key: KeyF4},
			want:  []byte("\x1bOS"),
		},
		{
			name:  "f5",
			event: Event{Key: KeyF5},
			want:  []byte("\x1b[15~"),
		},
		{
			name:  "f10",
			event: Event{Key: KeyF10},
			want:  []byte("\x1b[21~"),
		},
		{
			name:  "f12",
			event: Event{Key: KeyF12},
			want:  []byte("\x1b[24~"),
		},
		{
			name:  "plain text",
			event: Event{Key: KeyText, Text: "ls -la"},
			want:  []byte("ls -la"),
		},
		{
			name:  "alt text gets escape prefix",
			event: Event{Key: KeyText, Text: "f", Mods: ModAlt},
			want:  []byte("\x1bf"),
		},
		{
			name:  "ctrl c",
			event: Event{Key: KeyText, Text: "c", Mods: ModCtrl},
			want:  []byte{0x03},
		},
		{
			name:  "ctrl a",
			event: Event{Key: KeyText, Text: "a", Mods: ModCtrl},
			want:  []byte{0x01},
		},
		{
			name:  "ctrl z",
			event: Event{Key: KeyText, Text: "z", Mods: ModCtrl},
			want:  []byte{0x1a},
		},
		{
			name:  "ctrl uppercase letter",
			event: Event{Key: KeyText, Text: "D", Mods: ModCtrl},
			want:  []byte{0x04},
		},
		{
			name:  "ctrl left bracket",
			event: Event{Key: KeyText, Text: "[", Mods: ModCtrl},
			want:  []byte{0x1b},
		},
		{
			name:  "ctrl backslash",
			event: Event{Key: KeyText, Text: `\`, Mods: ModCtrl},
			want:  []byte{0x1c},
		},
		{
			name:  "ctrl right bracket",
			event: Event{Key: KeyText, Text: "]", Mods: ModCtrl},
			want:  []byte{0x1d},
		},
		{
			name:  "ctrl digit falls through to text",
			event: Event{Key: KeyText, Text: "1", Mods: ModCtrl},
			want:  []byte("1"),
		},
		{
			name:  "empty text",
			event: Event{Key: KeyText},
			want:  nil,
		},
		{
			name:  "no key",
			event: Event{Key: KeyNone},
			want:  nil,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := Encode(tc.event)
			if !bytes.Equal(got, tc.want) {
				t.Errorf("Encode(%v) = %q, want %q", tc.event, got, tc.want)
			}
		})
	}
}

func TestEncodeControlLetters(t *testing.T) {
	t.Parallel()

	for c := byte('a'); c <= 'z'; c++ {
		got := Encode(Event{Key: KeyText, Text: string(c), Mods: ModCtrl})
		want := []byte{c - 'a' + 1}
		if !bytes.Equal(got, want) {
			t.Errorf("Encode(Ctrl+%c) = %q, want %q", c, got, want)
		}
	}
}

func TestEncodePrintableIdentity(t *testing.T) {
	t.Parallel()

	texts := []string{"a", "Z", "0", " ", "hello world", "ü", "日本語", "~!@#$%"}
	for _, text := range texts {
		got := Encode(Event{Key: KeyText, Text: text})
		if string(got) != text {
			t.Errorf("Encode(%q) = %q, want identity", text, got)
		}
	}
}

func TestEncodeFunctionKeys(t *testing.T) {
	t.Parallel()

	want := map[Key]string{
		KeyF1:  "\x1bOP",
		KeyF2:  "\x1bOQ",
		KeyF3:  "\x1bOR",
		KeyF4:  "\x1bOS",
		KeyF5:  "\x1b[15~",
		KeyF6:  "\x1b[17~",
		KeyF7:  "\x1b[18~",
		KeyF8:  "\x1b[19~",
		KeyF9:  "\x1b[20~",
		KeyF10: "\x1b[21~",
		KeyF11: "\x1b[23~",
		KeyF12: "\x1b[24~",
	}

	for k, seq := range want {
		got := Encode(Event{Key: k})
		if string(got) != seq {
			t.Errorf("Encode(%v) = %q, want %q", k, got, seq)
		}
	}
}
