// Package screen defines the contract between a terminal session and
// the component that interprets its output, plus Grid, an ANSI/VT
// emulator implementing that contract. A sink consumes the raw bytes
// read from the PTY and maintains a rows×cols grid of attributed cells
// along with a bounded scrollback history.
package screen

// Color is an indexed terminal color. Values 0-7 are the standard
// palette, 8-15 the bright variants and 16-255 the extended xterm
// palette. ColorDefault leaves the choice to the renderer.
type Color int

// ColorDefault marks a cell drawn in the renderer's default color.
const ColorDefault Color = -1

// Cell is a single character cell of the visible grid.
type Cell struct {
	Ch      rune // 0 marks the continuation of a wide rune
	FG      Color
	BG      Color
	Bold    bool
	Reverse bool
}

// Sink consumes terminal output and maintains the interpreted screen
// state. Feed and Resize mutate, the rest only observe. Implementations
// must be safe for concurrent use: the IO pump feeds bytes while the
// control thread resizes and the renderer reads.
type Sink interface {
	// Feed processes raw output bytes in arrival order.
	Feed(p []byte)

	// Resize changes the visible grid to rows×cols, preserving the
	// top-left portion of the existing content.
	Resize(rows, cols int)

	// HistoryLen returns the number of lines in scrollback.
	HistoryLen() int

	// CellAt returns the cell at the given visible grid position.
	// Out-of-range positions yield a blank cell.
	CellAt(row, col int) Cell

	// CursorPosition returns the current cursor row and column.
	CursorPosition() (row, col int)
}
