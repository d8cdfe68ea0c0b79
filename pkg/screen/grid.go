package screen

import (
	"strconv"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// Grid is a thread-safe virtual terminal. It parses ANSI/VT escape
// sequences from raw PTY output and tracks cursor position, character
// attributes, the alternate screen and a bounded scrollback history.
type Grid struct {
	mu   sync.RWMutex
	rows int
	cols int

	main  gridState
	alt   gridState
	inAlt bool

	attrs attrs

	history []string
	histCap int

	pState parserState
	pBuf   []byte // escape sequence accumulator
	uBuf   []byte // incomplete UTF-8 bytes from previous Feed
}

type gridState struct {
	cells                   [][]Cell
	row, col                int
	scrollTop, scrollBottom int
	savedRow, savedCol      int
}

type attrs struct {
	fg, bg        Color
	bold, reverse bool
}

type parserState byte

const (
	psNorm    parserState = iota
	psEsc                 // saw ESC
	psCSI                 // saw ESC[
	psOSC                 // saw ESC]
	psOSCEsc              // saw ESC inside OSC (expecting \)
	psEscSkip             // skip next byte (charset designation)
)

var _ Sink = (*Grid)(nil)

// NewGrid creates a virtual terminal with the given dimensions and
// scrollback capacity in lines.
func NewGrid(rows, cols, historyCap int) *Grid {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	if historyCap < 0 {
		historyCap = 0
	}
	g := &Grid{
		rows:    rows,
		cols:    cols,
		histCap: historyCap,
		attrs:   defaultAttrs(),
	}
	g.main = newGridState(rows, cols)
	g.alt = newGridState(rows, cols)
	return g
}

func newGridState(rows, cols int) gridState {
	st := gridState{
		cells:        make([][]Cell, rows),
		scrollBottom: rows - 1,
	}
	for i := range st.cells {
		st.cells[i] = blankRow(cols)
	}
	return st
}

func blankRow(cols int) []Cell {
	row := make([]Cell, cols)
	for i := range row {
		row[i] = blankCell()
	}
	return row
}

func blankCell() Cell {
	return Cell{Ch: ' ', FG: ColorDefault, BG: ColorDefault}
}

func defaultAttrs() attrs {
	return attrs{fg: ColorDefault, bg: ColorDefault}
}

func (g *Grid) st() *gridState {
	if g.inAlt {
		return &g.alt
	}
	return &g.main
}

// Feed processes raw terminal output bytes, updating the grid.
func (g *Grid) Feed(p []byte) {
	g.mu.Lock()
	defer g.mu.Unlock()

	// Prepend any previously buffered incomplete UTF-8 bytes
	if len(g.uBuf) > 0 {
		p = append(g.uBuf, p...)
		g.uBuf = g.uBuf[:0]
	}

	i := 0
	for i < len(p) {
		b := p[i]

		// Inside escape sequence (all ASCII, byte at a time)
		if g.pState != psNorm {
			g.feedEsc(b)
			i++
			continue
		}

		// Control characters
		if b < 0x20 || b == 0x7f {
			g.feedCtrl(b)
			i++
			continue
		}

		// ASCII printable
		if b < 0x80 {
			g.putRune(rune(b))
			i++
			continue
		}

		// UTF-8 multi-byte
		r, size := utf8.DecodeRune(p[i:])
		if r == utf8.RuneError && size <= 1 {
			if len(p)-i < 4 {
				// Incomplete sequence, keep for the next Feed
				g.uBuf = append(g.uBuf[:0], p[i:]...)
				return
			}
			// Invalid byte
			i++
			continue
		}
		g.putRune(r)
		i += size
	}
}

// Resize changes the visible grid to rows×cols. The top-left portion
// of the existing content is preserved, the scroll region resets to
// the full screen and cursor positions are clamped into range.
func (g *Grid) Resize(rows, cols int) {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	if rows == g.rows && cols == g.cols {
		return
	}
	g.main.resize(rows, cols)
	g.alt.resize(rows, cols)
	g.rows = rows
	g.cols = cols
}

func (st *gridState) resize(rows, cols int) {
	cells := make([][]Cell, rows)
	for r := range cells {
		cells[r] = blankRow(cols)
		if r < len(st.cells) {
			copy(cells[r], st.cells[r])
		}
	}
	st.cells = cells
	st.scrollTop = 0
	st.scrollBottom = rows - 1
	st.row = clamp(st.row, 0, rows-1)
	st.col = clamp(st.col, 0, cols-1)
	st.savedRow = clamp(st.savedRow, 0, rows-1)
	st.savedCol = clamp(st.savedCol, 0, cols-1)
}

// Size returns the visible grid dimensions.
func (g *Grid) Size() (rows, cols int) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.rows, g.cols
}

// CellAt returns the cell at the given visible grid position.
func (g *Grid) CellAt(row, col int) Cell {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if row < 0 || row >= g.rows || col < 0 || col >= g.cols {
		return blankCell()
	}
	return g.st().cells[row][col]
}

// CursorPosition returns the current cursor row and column.
func (g *Grid) CursorPosition() (row, col int) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	st := g.st()
	return st.row, st.col
}

// HistoryLen returns the number of lines in scrollback.
func (g *Grid) HistoryLen() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.history)
}

// HistoryLine returns scrollback line i, with 0 the oldest line.
func (g *Grid) HistoryLine(i int) string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if i < 0 || i >= len(g.history) {
		return ""
	}
	return g.history[i]
}

// Line returns the text of a visible row with trailing spaces trimmed.
func (g *Grid) Line(row int) string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	if row < 0 || row >= g.rows {
		return ""
	}
	return rowText(g.st().cells[row])
}

// Lines returns the text of all visible rows.
func (g *Grid) Lines() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()

	st := g.st()
	lines := make([]string, g.rows)
	for r := 0; r < g.rows; r++ {
		lines[r] = rowText(st.cells[r])
	}
	return lines
}

func rowText(row []Cell) string {
	var b strings.Builder
	for _, c := range row {
		if c.Ch == 0 {
			continue
		}
		b.WriteRune(c.Ch)
	}
	return strings.TrimRight(b.String(), " ")
}

// --- Character output ---

func (g *Grid) putRune(r rune) {
	w := runewidth.RuneWidth(r)
	if w < 1 {
		// zero-width runes (combining marks) are dropped
		return
	}
	st := g.st()
	if st.col+w > g.cols {
		// Auto-wrap
		st.col = 0
		g.linefeed()
	}
	st.cells[st.row][st.col] = Cell{
		Ch:      r,
		FG:      g.attrs.fg,
		BG:      g.attrs.bg,
		Bold:    g.attrs.bold,
		Reverse: g.attrs.reverse,
	}
	if w == 2 && st.col+1 < g.cols {
		st.cells[st.row][st.col+1] = Cell{FG: g.attrs.fg, BG: g.attrs.bg}
	}
	st.col += w
}

// --- Control characters ---

func (g *Grid) feedCtrl(b byte) {
	st := g.st()
	switch b {
	case 0x1b: // ESC
		g.pState = psEsc
		g.pBuf = g.pBuf[:0]
	case '\r':
		st.col = 0
	case '\n':
		g.linefeed()
	case '\x08': // BS
		if st.col > 0 {
			st.col--
		}
	case '\t':
		st.col = (st.col/8 + 1) * 8
		if st.col >= g.cols {
			st.col = g.cols - 1
		}
	case '\x07': // BEL, ignore
	}
}

// --- Escape sequence parser ---

func (g *Grid) feedEsc(b byte) {
	switch g.pState {
	case psEsc:
		switch b {
		case '[':
			g.pState = psCSI
			g.pBuf = g.pBuf[:0]
		case ']':
			g.pState = psOSC
			g.pBuf = g.pBuf[:0]
		case 'M': // Reverse Index
			g.reverseIndex()
			g.pState = psNorm
		case '7': // Save Cursor (DECSC)
			st := g.st()
			st.savedRow = st.row
			st.savedCol = st.col
			g.pState = psNorm
		case '8': // Restore Cursor (DECRC)
			st := g.st()
			st.row = st.savedRow
			st.col = st.savedCol
			g.pState = psNorm
		case '(', ')': // Charset designation, skip next byte
			g.pState = psEscSkip
		default:
			g.pState = psNorm
		}

	case psCSI:
		if (b >= '0' && b <= '9') || b == ';' || b == '?' {
			g.pBuf = append(g.pBuf, b)
			return
		}
		// Final byte
		params := string(g.pBuf)
		g.pState = psNorm
		g.pBuf = g.pBuf[:0]
		g.execCSI(b, params)

	case psOSC:
		if b == 0x07 { // BEL terminates
			g.pState = psNorm
			g.pBuf = g.pBuf[:0]
		} else if b == 0x1b {
			g.pState = psOSCEsc
		}
		// else: accumulate (ignored)

	case psOSCEsc:
		// ESC \ is String Terminator
		g.pState = psNorm
		g.pBuf = g.pBuf[:0]

	case psEscSkip:
		g.pState = psNorm
	}
}

// --- CSI command execution ---

func (g *Grid) execCSI(final byte, params string) {
	st := g.st()

	switch final {
	case 'H', 'f': // CUP, Cursor Position
		row, col := parseTwo(params, 1, 1)
		st.row = clamp(row-1, 0, g.rows-1)
		st.col = clamp(col-1, 0, g.cols-1)

	case 'A': // CUU, Cursor Up
		st.row = max(st.row-parseOne(params, 1), st.scrollTop)

	case 'B': // CUD, Cursor Down
		st.row = min(st.row+parseOne(params, 1), st.scrollBottom)

	case 'C': // CUF, Cursor Forward
		st.col = min(st.col+parseOne(params, 1), g.cols-1)

	case 'D': // CUB, Cursor Backward
		st.col = max(st.col-parseOne(params, 1), 0)

	case 'E': // CNL, Cursor Next Line
		st.row = min(st.row+parseOne(params, 1), st.scrollBottom)
		st.col = 0

	case 'F': // CPL, Cursor Previous Line
		st.row = max(st.row-parseOne(params, 1), st.scrollTop)
		st.col = 0

	case 'G': // CHA, Cursor Horizontal Absolute
		st.col = clamp(parseOne(params, 1)-1, 0, g.cols-1)

	case 'd': // VPA, Vertical Position Absolute
		st.row = clamp(parseOne(params, 1)-1, 0, g.rows-1)

	case 'J': // ED, Erase Display
		g.eraseDisplay(parseOne(params, 0))

	case 'K': // EL, Erase Line
		g.eraseLine(parseOne(params, 0))

	case 'X': // ECH, Erase Characters
		n := parseOne(params, 1)
		for i := 0; i < n && st.col+i < g.cols; i++ {
			st.cells[st.row][st.col+i] = blankCell()
		}

	case 'L': // IL, Insert Lines
		g.insertLines(parseOne(params, 1))

	case 'M': // DL, Delete Lines
		g.deleteLines(parseOne(params, 1))

	case '@': // ICH, Insert Characters
		g.insertChars(parseOne(params, 1))

	case 'P': // DCH, Delete Characters
		g.deleteChars(parseOne(params, 1))

	case 'S': // SU, Scroll Up
		g.scrollUp(parseOne(params, 1))

	case 'T': // SD, Scroll Down
		g.scrollDown(parseOne(params, 1))

	case 'r': // DECSTBM, Set Scroll Region
		top, bottom := parseTwo(params, 1, g.rows)
		st.scrollTop = clamp(top-1, 0, g.rows-1)
		st.scrollBottom = clamp(bottom-1, 0, g.rows-1)
		// Cursor moves to home after setting the region
		st.row = st.scrollTop
		st.col = 0

	case 'h': // SM, Set Mode
		if len(params) > 0 && params[0] == '?' {
			g.setPrivateMode(params[1:], true)
		}

	case 'l': // RM, Reset Mode
		if len(params) > 0 && params[0] == '?' {
			g.setPrivateMode(params[1:], false)
		}

	case 's': // SCP, Save Cursor Position
		st.savedRow = st.row
		st.savedCol = st.col

	case 'u': // RCP, Restore Cursor Position
		st.row = st.savedRow
		st.col = st.savedCol

	case 'm': // SGR, Select Graphic Rendition
		g.execSGR(params)

	case 'n': // DSR, Device Status Report (ignore)
	case 'c': // DA, Device Attributes (ignore)
	case 'q': // DECSCUSR, Set Cursor Style (ignore)
	}
}

// --- Graphic rendition ---

func (g *Grid) execSGR(params string) {
	codes := strings.Split(params, ";")
	for i := 0; i < len(codes); i++ {
		n, _ := strconv.Atoi(codes[i])
		switch {
		case n == 0:
			g.attrs = defaultAttrs()
		case n == 1:
			g.attrs.bold = true
		case n == 22:
			g.attrs.bold = false
		case n == 7:
			g.attrs.reverse = true
		case n == 27:
			g.attrs.reverse = false
		case n >= 30 && n <= 37:
			g.attrs.fg = Color(n - 30)
		case n == 39:
			g.attrs.fg = ColorDefault
		case n >= 40 && n <= 47:
			g.attrs.bg = Color(n - 40)
		case n == 49:
			g.attrs.bg = ColorDefault
		case n >= 90 && n <= 97:
			g.attrs.fg = Color(n - 90 + 8)
		case n >= 100 && n <= 107:
			g.attrs.bg = Color(n - 100 + 8)
		case n == 38 || n == 48:
			i += g.execSGRExtended(n == 38, codes[i+1:])
		}
	}
}

// execSGRExtended handles 38;5;n / 48;5;n indexed colors and consumes
// (without applying) 38;2;r;g;b truecolor parameters. It returns the
// number of parameters consumed.
func (g *Grid) execSGRExtended(fg bool, rest []string) int {
	if len(rest) == 0 {
		return 0
	}
	mode, _ := strconv.Atoi(rest[0])
	switch mode {
	case 5:
		if len(rest) < 2 {
			return 1
		}
		n, _ := strconv.Atoi(rest[1])
		c := Color(clamp(n, 0, 255))
		if fg {
			g.attrs.fg = c
		} else {
			g.attrs.bg = c
		}
		return 2
	case 2:
		if len(rest) < 4 {
			return len(rest)
		}
		return 4
	}
	return 1
}

// --- Private modes ---

func (g *Grid) setPrivateMode(params string, set bool) {
	for _, p := range strings.Split(params, ";") {
		n, _ := strconv.Atoi(p)
		switch n {
		case 47, 1047, 1049: // Alternate screen buffer
			if set && !g.inAlt {
				g.inAlt = true
				g.alt = newGridState(g.rows, g.cols)
			} else if !set && g.inAlt {
				g.inAlt = false
			}
		}
	}
}

// --- Scrolling & line operations ---

func (g *Grid) linefeed() {
	st := g.st()
	if st.row == st.scrollBottom {
		g.scrollUp(1)
	} else if st.row < g.rows-1 {
		st.row++
	}
}

func (g *Grid) reverseIndex() {
	st := g.st()
	if st.row == st.scrollTop {
		g.scrollDown(1)
	} else if st.row > 0 {
		st.row--
	}
}

func (g *Grid) scrollUp(n int) {
	st := g.st()
	top, bottom := st.scrollTop, st.scrollBottom
	span := bottom - top + 1
	if n > span {
		n = span
	}
	// Lines scrolled off a full-screen region on the main grid go
	// into scrollback
	if !g.inAlt && top == 0 && bottom == g.rows-1 {
		for r := top; r < top+n; r++ {
			g.pushHistory(rowText(st.cells[r]))
		}
	}
	// Shift lines up within the scroll region
	for r := top; r <= bottom-n; r++ {
		st.cells[r] = st.cells[r+n]
	}
	// Blank lines enter at the bottom
	for r := bottom - n + 1; r <= bottom; r++ {
		st.cells[r] = blankRow(g.cols)
	}
}

func (g *Grid) scrollDown(n int) {
	st := g.st()
	top, bottom := st.scrollTop, st.scrollBottom
	span := bottom - top + 1
	if n > span {
		n = span
	}
	// Shift lines down within the scroll region
	for r := bottom; r >= top+n; r-- {
		st.cells[r] = st.cells[r-n]
	}
	// Blank lines enter at the top
	for r := top; r < top+n; r++ {
		st.cells[r] = blankRow(g.cols)
	}
}

func (g *Grid) pushHistory(line string) {
	if g.histCap == 0 {
		return
	}
	g.history = append(g.history, line)
	if len(g.history) > g.histCap {
		g.history = g.history[len(g.history)-g.histCap:]
	}
}

func (g *Grid) insertLines(n int) {
	st := g.st()
	if st.row < st.scrollTop || st.row > st.scrollBottom {
		return
	}
	saved := st.scrollTop
	st.scrollTop = st.row
	g.scrollDown(n)
	st.scrollTop = saved
	st.col = 0
}

func (g *Grid) deleteLines(n int) {
	st := g.st()
	if st.row < st.scrollTop || st.row > st.scrollBottom {
		return
	}
	saved := st.scrollTop
	st.scrollTop = st.row
	g.scrollUp(n)
	st.scrollTop = saved
	st.col = 0
}

func (g *Grid) insertChars(n int) {
	st := g.st()
	row := st.cells[st.row]
	// Shift right from cursor
	for i := g.cols - 1; i >= st.col+n && i >= 0; i-- {
		row[i] = row[i-n]
	}
	// Blank the inserted positions
	for i := st.col; i < st.col+n && i < g.cols; i++ {
		row[i] = blankCell()
	}
}

func (g *Grid) deleteChars(n int) {
	st := g.st()
	row := st.cells[st.row]
	// Shift left from cursor
	for i := st.col; i < g.cols-n; i++ {
		row[i] = row[i+n]
	}
	// Blank the vacated positions
	for i := g.cols - n; i < g.cols; i++ {
		if i >= 0 {
			row[i] = blankCell()
		}
	}
}

// --- Erase operations ---

func (g *Grid) eraseDisplay(mode int) {
	st := g.st()
	switch mode {
	case 0: // Below (from cursor to end)
		for i := st.col; i < g.cols; i++ {
			st.cells[st.row][i] = blankCell()
		}
		for r := st.row + 1; r < g.rows; r++ {
			st.cells[r] = blankRow(g.cols)
		}
	case 1: // Above (from start to cursor)
		for r := 0; r < st.row; r++ {
			st.cells[r] = blankRow(g.cols)
		}
		for i := 0; i <= st.col && i < g.cols; i++ {
			st.cells[st.row][i] = blankCell()
		}
	case 2, 3: // Entire screen
		for r := 0; r < g.rows; r++ {
			st.cells[r] = blankRow(g.cols)
		}
	}
}

func (g *Grid) eraseLine(mode int) {
	st := g.st()
	switch mode {
	case 0: // Right (from cursor to end)
		for i := st.col; i < g.cols; i++ {
			st.cells[st.row][i] = blankCell()
		}
	case 1: // Left (from start to cursor)
		for i := 0; i <= st.col && i < g.cols; i++ {
			st.cells[st.row][i] = blankCell()
		}
	case 2: // Entire line
		st.cells[st.row] = blankRow(g.cols)
	}
}

// --- Parameter parsing helpers ---

func parseOne(params string, def int) int {
	params = strings.TrimPrefix(params, "?")
	if params == "" {
		return def
	}
	n, err := strconv.Atoi(params)
	if err != nil || n == 0 {
		return def
	}
	return n
}

func parseTwo(params string, def1, def2 int) (int, int) {
	parts := strings.SplitN(params, ";", 2)
	a, b := def1, def2
	if len(parts) >= 1 && parts[0] != "" {
		if n, err := strconv.Atoi(parts[0]); err == nil && n > 0 {
			a = n
		}
	}
	if len(parts) >= 2 && parts[1] != "" {
		if n, err := strconv.Atoi(parts[1]); err == nil && n > 0 {
			b = n
		}
	}
	return a, b
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
