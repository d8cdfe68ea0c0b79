package key

// Event is a single key press as reported by the hosting UI.
type Event struct {
	Key  Key
	Mods Modifier
	Text string // printable characters for KeyText events
}

// String returns a representation like "Ctrl+Shift+Text(c)".
func (e Event) String() string {
	mods := e.Mods.String()
	name := e.Key.String()
	if e.Key == KeyText && e.Text != "" {
		name = "Text(" + e.Text + ")"
	}
	if mods == "" {
		return name
	}
	return mods + "+" + name
}
