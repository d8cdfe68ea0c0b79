package screen

import (
	"strings"
	"testing"
)

func TestGridPlainText(t *testing.T) {
	t.Parallel()

	g := NewGrid(24, 80, 100)
	g.Feed([]byte("hello"))

	if got := g.Line(0); got != "hello" {
		t.Errorf("Line(0) = %q, want %q", got, "hello")
	}
	row, col := g.CursorPosition()
	if row != 0 || col != 5 {
		t.Errorf("CursorPosition() = (%d, %d), want (0, 5)", row, col)
	}
}

func TestGridNewlineAndCarriageReturn(t *testing.T) {
	t.Parallel()

	g := NewGrid(24, 80, 100)
	g.Feed([]byte("one\r\ntwo\r\nthree"))

	want := []string{"one", "two", "three"}
	for i, line := range want {
		if got := g.Line(i); got != line {
			t.Errorf("Line(%d) = %q, want %q", i, got, line)
		}
	}
}

func TestGridAutoWrap(t *testing.T) {
	t.Parallel()

	g := NewGrid(24, 5, 100)
	g.Feed([]byte("abcdefgh"))

	if got := g.Line(0); got != "abcde" {
		t.Errorf("Line(0) = %q, want %q", got, "abcde")
	}
	if got := g.Line(1); got != "fgh" {
		t.Errorf("Line(1) = %q, want %q", got, "fgh")
	}
}

func TestGridScrollIntoHistory(t *testing.T) {
	t.Parallel()

	g := NewGrid(3, 80, 100)
	g.Feed([]byte("one\r\ntwo\r\nthree\r\nfour\r\nfive"))

	if got := g.HistoryLen(); got != 2 {
		t.Fatalf("HistoryLen() = %d, want 2", got)
	}
	if got := g.HistoryLine(0); got != "one" {
		t.Errorf("HistoryLine(0) = %q, want %q", got, "one")
	}
	if got := g.HistoryLine(1); got != "two" {
		t.Errorf("HistoryLine(1) = %q, want %q", got, "two")
	}

	want := []string{"three", "four", "five"}
	for i, line := range want {
		if got := g.Line(i); got != line {
			t.Errorf("Line(%d) = %q, want %q", i, got, line)
		}
	}
}

func TestGridHistoryCapDropsOldest(t *testing.T) {
	t.Parallel()

	g := NewGrid(2, 80, 3)
	g.Feed([]byte("a\r\nb\r\nc\r\nd\r\ne\r\nf"))

	if got := g.HistoryLen(); got != 3 {
		t.Fatalf("HistoryLen() = %d, want 3", got)
	}
	// a through d scrolled off, only the last three are kept
	if got := g.HistoryLine(0); got != "b" {
		t.Errorf("HistoryLine(0) = %q, want %q", got, "b")
	}
	if got := g.HistoryLine(2); got != "d" {
		t.Errorf("HistoryLine(2) = %q, want %q", got, "d")
	}
}

func TestGridZeroHistoryCap(t *testing.T) {
	t.Parallel()

	g := NewGrid(2, 80, 0)
	g.Feed([]byte("a\r\nb\r\nc\r\nd"))

	if got := g.HistoryLen(); got != 0 {
		t.Errorf("HistoryLen() = %d, want 0", got)
	}
}

func TestGridColors(t *testing.T) {
	t.Parallel()

	g := NewGrid(24, 80, 0)
	g.Feed([]byte("\x1b[31mr\x1b[1;44mb\x1b[0mn"))

	c := g.CellAt(0, 0)
	if c.Ch != 'r' || c.FG != Color(1) || c.BG != ColorDefault || c.Bold {
		t.Errorf("CellAt(0,0) = %+v, want red foreground", c)
	}

	c = g.CellAt(0, 1)
	if c.Ch != 'b' || c.FG != Color(1) || c.BG != Color(4) || !c.Bold {
		t.Errorf("CellAt(0,1) = %+v, want bold on blue", c)
	}

	c = g.CellAt(0, 2)
	if c.Ch != 'n' || c.FG != ColorDefault || c.BG != ColorDefault || c.Bold {
		t.Errorf("CellAt(0,2) = %+v, want default attributes", c)
	}
}

func TestGridBrightAndIndexedColors(t *testing.T) {
	t.Parallel()

	g := NewGrid(24, 80, 0)
	g.Feed([]byte("\x1b[91ma\x1b[38;5;196mb\x1b[48;5;21mc"))

	if c := g.CellAt(0, 0); c.FG != Color(9) {
		t.Errorf("CellAt(0,0).FG = %d, want 9", c.FG)
	}
	if c := g.CellAt(0, 1); c.FG != Color(196) {
		t.Errorf("CellAt(0,1).FG = %d, want 196", c.FG)
	}
	if c := g.CellAt(0, 2); c.BG != Color(21) {
		t.Errorf("CellAt(0,2).BG = %d, want 21", c.BG)
	}
}

func TestGridTruecolorConsumedNotApplied(t *testing.T) {
	t.Parallel()

	g := NewGrid(24, 80, 0)
	g.Feed([]byte("\x1b[38;2;255;0;0;1mx"))

	c := g.CellAt(0, 0)
	if c.Ch != 'x' {
		t.Fatalf("CellAt(0,0).Ch = %q, want 'x'", c.Ch)
	}
	// the r;g;b triple must not be misread as separate SGR codes, but
	// the trailing ;1 still applies
	if c.FG != ColorDefault {
		t.Errorf("CellAt(0,0).FG = %d, want default", c.FG)
	}
	if !c.Bold {
		t.Errorf("CellAt(0,0).Bold = false, want true")
	}
}

func TestGridReverse(t *testing.T) {
	t.Parallel()

	g := NewGrid(24, 80, 0)
	g.Feed([]byte("\x1b[7ma\x1b[27mb"))

	if c := g.CellAt(0, 0); !c.Reverse {
		t.Errorf("CellAt(0,0).Reverse = false, want true")
	}
	if c := g.CellAt(0, 1); c.Reverse {
		t.Errorf("CellAt(0,1).Reverse = true, want false")
	}
}

func TestGridCursorMovement(t *testing.T) {
	t.Parallel()

	g := NewGrid(24, 80, 0)
	g.Feed([]byte("\x1b[5;10H"))

	row, col := g.CursorPosition()
	if row != 4 || col != 9 {
		t.Errorf("CursorPosition() = (%d, %d), want (4, 9)", row, col)
	}

	g.Feed([]byte("\x1b[2A\x1b[3C"))
	row, col = g.CursorPosition()
	if row != 2 || col != 12 {
		t.Errorf("CursorPosition() = (%d, %d), want (2, 12)", row, col)
	}
}

func TestGridEraseLine(t *testing.T) {
	t.Parallel()

	g := NewGrid(24, 80, 0)
	g.Feed([]byte("abcdef\r\x1b[3C\x1b[K"))

	if got := g.Line(0); got != "abc" {
		t.Errorf("Line(0) = %q, want %q", got, "abc")
	}
}

func TestGridEraseDisplay(t *testing.T) {
	t.Parallel()

	g := NewGrid(3, 80, 0)
	g.Feed([]byte("one\r\ntwo\r\nthree\x1b[2J"))

	for r := 0; r < 3; r++ {
		if got := g.Line(r); got != "" {
			t.Errorf("Line(%d) = %q, want empty", r, got)
		}
	}
}

func TestGridAltScreen(t *testing.T) {
	t.Parallel()

	g := NewGrid(24, 80, 100)
	g.Feed([]byte("main content"))
	g.Feed([]byte("\x1b[?1049h"))
	g.Feed([]byte("alt content"))

	if got := g.Line(0); got != "alt content" {
		t.Errorf("Line(0) in alt = %q, want %q", got, "alt content")
	}

	g.Feed([]byte("\x1b[?1049l"))
	if got := g.Line(0); got != "main content" {
		t.Errorf("Line(0) after leaving alt = %q, want %q", got, "main content")
	}
}

func TestGridAltScreenNoHistory(t *testing.T) {
	t.Parallel()

	g := NewGrid(2, 80, 100)
	g.Feed([]byte("\x1b[?1049h"))
	g.Feed([]byte("a\r\nb\r\nc\r\nd"))

	if got := g.HistoryLen(); got != 0 {
		t.Errorf("HistoryLen() = %d, want 0 while in alt screen", got)
	}
}

func TestGridScrollRegionNoHistory(t *testing.T) {
	t.Parallel()

	g := NewGrid(5, 80, 100)
	// restrict scrolling to rows 2-4, then overflow the region
	g.Feed([]byte("\x1b[2;4r"))
	g.Feed([]byte("a\r\nb\r\nc\r\nd\r\ne"))

	if got := g.HistoryLen(); got != 0 {
		t.Errorf("HistoryLen() = %d, want 0 for partial scroll region", got)
	}
}

func TestGridSplitEscapeSequence(t *testing.T) {
	t.Parallel()

	g := NewGrid(24, 80, 0)
	g.Feed([]byte("\x1b[3"))
	g.Feed([]byte("1mx"))

	c := g.CellAt(0, 0)
	if c.Ch != 'x' || c.FG != Color(1) {
		t.Errorf("CellAt(0,0) = %+v, want 'x' in red", c)
	}
}

func TestGridSplitUTF8(t *testing.T) {
	t.Parallel()

	g := NewGrid(24, 80, 0)
	raw := []byte("ü")
	g.Feed(raw[:1])
	g.Feed(raw[1:])

	if c := g.CellAt(0, 0); c.Ch != 'ü' {
		t.Errorf("CellAt(0,0).Ch = %q, want 'ü'", c.Ch)
	}
}

func TestGridWideRune(t *testing.T) {
	t.Parallel()

	g := NewGrid(24, 80, 0)
	g.Feed([]byte("世x"))

	if c := g.CellAt(0, 0); c.Ch != '世' {
		t.Errorf("CellAt(0,0).Ch = %q, want '世'", c.Ch)
	}
	if c := g.CellAt(0, 1); c.Ch != 0 {
		t.Errorf("CellAt(0,1).Ch = %q, want continuation cell", c.Ch)
	}
	if c := g.CellAt(0, 2); c.Ch != 'x' {
		t.Errorf("CellAt(0,2).Ch = %q, want 'x'", c.Ch)
	}
	if got := g.Line(0); got != "世x" {
		t.Errorf("Line(0) = %q, want %q", got, "世x")
	}
}

func TestGridResize(t *testing.T) {
	t.Parallel()

	g := NewGrid(10, 20, 0)
	g.Feed([]byte("preserved"))
	g.Resize(5, 10)

	rows, cols := g.Size()
	if rows != 5 || cols != 10 {
		t.Fatalf("Size() = (%d, %d), want (5, 10)", rows, cols)
	}
	if got := g.Line(0); got != "preserved" {
		t.Errorf("Line(0) = %q, want %q", got, "preserved")
	}

	// enlarging keeps content too
	g.Resize(20, 40)
	if got := g.Line(0); got != "preserved" {
		t.Errorf("Line(0) after enlarge = %q, want %q", got, "preserved")
	}
}

func TestGridResizeClampsCursor(t *testing.T) {
	t.Parallel()

	g := NewGrid(10, 40, 0)
	g.Feed([]byte("\x1b[10;40H"))
	g.Resize(4, 10)

	row, col := g.CursorPosition()
	if row > 3 || col > 9 {
		t.Errorf("CursorPosition() = (%d, %d), want clamped into 4x10", row, col)
	}
}

func TestGridCellAtOutOfRange(t *testing.T) {
	t.Parallel()

	g := NewGrid(2, 2, 0)
	c := g.CellAt(5, 5)
	if c.Ch != ' ' || c.FG != ColorDefault {
		t.Errorf("CellAt(5,5) = %+v, want blank cell", c)
	}
}

func TestGridOSCIgnored(t *testing.T) {
	t.Parallel()

	g := NewGrid(24, 80, 0)
	g.Feed([]byte("\x1b]0;window title\x07visible"))
	g.Feed([]byte("\x1b]2;other title\x1b\\ text"))

	if got := g.Line(0); got != "visible text" {
		t.Errorf("Line(0) = %q, want %q", got, "visible text")
	}
}

func TestGridLines(t *testing.T) {
	t.Parallel()

	g := NewGrid(3, 80, 0)
	g.Feed([]byte("a\r\nb"))

	got := g.Lines()
	want := []string{"a", "b", ""}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("Lines() = %v, want %v", got, want)
	}
}
