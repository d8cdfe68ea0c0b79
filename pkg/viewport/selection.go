package viewport

// Point is a cell position in (column, row) coordinates.
type Point struct {
	Col int
	Row int
}

// Selection is a range of cells between two points. Start and End are
// stored as given; Normalized orders them.
type Selection struct {
	Start Point
	End   Point
}

// Normalized returns the selection with Start preceding End in reading
// order (top to bottom, then left to right).
func (s Selection) Normalized() Selection {
	if s.End.Row < s.Start.Row || (s.End.Row == s.Start.Row && s.End.Col < s.Start.Col) {
		return Selection{Start: s.End, End: s.Start}
	}
	return s
}
