package core

// Position represents a specific location in the text buffer.
// Col is a character (rune) offset, never a byte offset.
type Position struct {
	Row int // Zero-indexed row (line number)
	Col int // Zero-indexed column (character position in the line)
}

// Less orders positions by row, then column.
func (p Position) Less(other Position) bool {
	return p.Row < other.Row || (p.Row == other.Row && p.Col < other.Col)
}

// Selection is the range between an anchor and a head. Reads go through Normalized.
type Selection struct {
	Anchor Position
	Head   Position
}

// Normalized returns the selection bounds with start <= end.
func (s Selection) Normalized() (start, end Position) {
	return NormalizeSelection(s.Anchor, s.Head)
}

// NormalizeSelection ensures start is before end, line by line, then column by column.
func NormalizeSelection(p1, p2 Position) (start, end Position) {
	if p2.Less(p1) {
		return p2, p1
	}
	return p1, p2
}
