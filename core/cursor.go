package core

import "unicode"

// Cursor represents the current position for editing operations
type Cursor struct {
	Position  Position // Current position (row, column)
	Preferred int      // Preferred column for vertical movement (sticky column)
}

// --- Cursor Movement ---

// clampCol ensures the column stays within [0, len(line)].
func (c *Cursor) clampCol(buffer Buffer) {
	lineLen := buffer.LineRuneCount(c.Position.Row)
	c.Position.Col = min(max(c.Position.Col, 0), lineLen)
}

// MoveLeft moves one character left without leaving the line.
func (c *Cursor) MoveLeft() {
	if c.Position.Col > 0 {
		c.Position.Col--
	}
	c.Preferred = c.Position.Col
}

// MoveRight moves one character right, up to the position after the last character.
func (c *Cursor) MoveRight(buffer Buffer) {
	if c.Position.Col < buffer.LineRuneCount(c.Position.Row) {
		c.Position.Col++
	}
	c.Preferred = c.Position.Col
}

// MoveLeftOrUp moves left, wrapping to the end of the previous line at column 0.
func (c *Cursor) MoveLeftOrUp(buffer Buffer) {
	if c.Position.Col > 0 {
		c.MoveLeft()
		return
	}
	if c.Position.Row > 0 {
		c.Position.Row--
		c.MoveToLineEnd(buffer)
	}
}

// MoveRightOrDown moves right, wrapping to the start of the next line at line end.
func (c *Cursor) MoveRightOrDown(buffer Buffer) {
	if c.Position.Col < buffer.LineRuneCount(c.Position.Row) {
		c.MoveRight(buffer)
		return
	}
	if c.Position.Row < buffer.LineCount()-1 {
		c.Position.Row++
		c.MoveToLineStart()
	}
}

// MoveUp moves up one line, targeting the preferred column.
func (c *Cursor) MoveUp(buffer Buffer) {
	if c.Position.Row <= 0 {
		return
	}
	c.Position.Row--
	c.Position.Col = c.Preferred
	c.clampCol(buffer)
}

// MoveDown moves down one line, targeting the preferred column.
func (c *Cursor) MoveDown(buffer Buffer) {
	if c.Position.Row >= buffer.LineCount()-1 {
		return
	}
	c.Position.Row++
	c.Position.Col = c.Preferred
	c.clampCol(buffer)
}

// MoveToLineStart moves the cursor to the start of the current line (col 0)
func (c *Cursor) MoveToLineStart() {
	c.Position.Col = 0
	c.Preferred = 0
}

// MoveToLineEnd moves the cursor *after* the last character of the current line
func (c *Cursor) MoveToLineEnd(buffer Buffer) {
	c.Position.Col = buffer.LineRuneCount(c.Position.Row)
	c.Preferred = c.Position.Col
}

// MoveToFirstNonBlank moves the cursor to the first non-whitespace character
func (c *Cursor) MoveToFirstNonBlank(buffer Buffer) {
	c.Position.Col = 0
	for i, r := range buffer.GetLineRunes(c.Position.Row) {
		if !isWhiteSpace(r) {
			c.Position.Col = i
			break
		}
	}
	c.Preferred = c.Position.Col
}

// MoveToBufferStart moves the cursor to the start of the buffer
func (c *Cursor) MoveToBufferStart() {
	c.Position = Position{}
	c.Preferred = 0
}

// MoveToBufferEnd moves the cursor to the end of the last line
func (c *Cursor) MoveToBufferEnd(buffer Buffer) {
	c.Position.Row = max(buffer.LineCount()-1, 0)
	c.MoveToLineEnd(buffer)
}

// --- Word Movement (Using Unicode and Runes) ---

func isWordChar(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsNumber(r) || r == '_'
}

func isWhiteSpace(r rune) bool {
	return unicode.IsSpace(r)
}

func isPunctuation(r rune) bool {
	return !isWordChar(r) && !isWhiteSpace(r)
}

// MoveWordForward implements 'w': skip the run under the cursor, then any
// whitespace. Reaching the line end moves to column 0 of the next line when
// there is one.
func (c *Cursor) MoveWordForward(buffer Buffer) {
	line := buffer.GetLineRunes(c.Position.Row)
	lineLen := len(line)
	pos := min(c.Position.Col, lineLen)

	if pos < lineLen {
		switch {
		case isWordChar(line[pos]):
			for pos < lineLen && isWordChar(line[pos]) {
				pos++
			}
		case isPunctuation(line[pos]):
			for pos < lineLen && isPunctuation(line[pos]) {
				pos++
			}
		}
	}
	for pos < lineLen && isWhiteSpace(line[pos]) {
		pos++
	}

	if pos >= lineLen && c.Position.Row < buffer.LineCount()-1 {
		c.Position = Position{Row: c.Position.Row + 1, Col: 0}
	} else {
		c.Position.Col = pos
	}
	c.Preferred = c.Position.Col
}

// MoveWordBackward implements 'b': skip whitespace backwards, then the run
// before it, landing on the run's first character. At column 0 it moves to the
// end of the previous line.
func (c *Cursor) MoveWordBackward(buffer Buffer) {
	if c.Position.Col <= 0 {
		if c.Position.Row > 0 {
			c.Position.Row--
			c.MoveToLineEnd(buffer)
		}
		return
	}

	line := buffer.GetLineRunes(c.Position.Row)
	pos := min(c.Position.Col, len(line)) - 1

	for pos >= 0 && isWhiteSpace(line[pos]) {
		pos--
	}
	if pos >= 0 {
		if isWordChar(line[pos]) {
			for pos >= 0 && isWordChar(line[pos]) {
				pos--
			}
		} else {
			for pos >= 0 && isPunctuation(line[pos]) {
				pos--
			}
		}
	}

	c.Position.Col = pos + 1
	c.Preferred = c.Position.Col
}
