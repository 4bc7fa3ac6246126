package core

import (
	"bytes"
	"fmt"
	"slices"
	"strings"
)

// Buffer represents the text content being edited (using runes).
// All columns are rune offsets.
type Buffer interface {
	// Content access
	GetLines() []string              // Get lines as strings (for saving/display)
	GetLine(lineNum int) string      // Get a single line, "" when out of range
	GetLineRunes(lineNum int) []rune // Get specific line as runes (for editing)
	LineRuneCount(lineNum int) int   // Get rune count for a line
	LineCount() int                  // Get number of lines
	GetCurrentContent() string       // Get entire buffer content as a string
	IsEmpty() bool                   // Check if buffer is a single empty line

	// Cursor
	GetCursor() Cursor
	SetCursor(Cursor)
	SetCursorPosition(row, col int) // Clamps into range, never fails

	// Editing at the cursor
	InsertChar(r rune)
	InsertString(s string) // Handles embedded newlines
	DeleteChar()           // Delete under cursor, joining the next line at line end
	Backspace()            // Delete before cursor, joining the previous line at column 0
	InsertNewline()
	DeleteLine()

	// Line-wise editing
	InsertLines(at int, lines []string) error
	DeleteLines(start, end int) ([]string, error) // end is inclusive

	// Movement
	MoveLeft()
	MoveRight()
	MoveUp()
	MoveDown()
	MoveLineStart()
	MoveLineEnd()
	MoveBufferStart()
	MoveBufferEnd()

	// Selection (end-exclusive once normalized)
	StartSelection()
	UpdateSelection()
	SetSelection(anchor, head Position)
	ClearSelection()
	Selection() (Selection, bool)
	GetSelection() (string, bool)
	DeleteSelection() (string, bool)

	// Persistence and metadata
	FilePath() string
	Language() string
	SetLanguage(language string)
	IsModified() bool
	Save() error
	SaveAs(path string) error
}

// textBuffer implementation using runes for better unicode handling
type textBuffer struct {
	lines     [][]rune // Store lines as slices of runes
	cursor    Cursor
	selection *Selection
	filePath  string
	language  string
	modified  bool
	storage   Storage
}

// BufferOption configures a buffer at construction.
type BufferOption func(*textBuffer)

// WithStorage sets the persistence backend. Defaults to FileStorage.
func WithStorage(storage Storage) BufferOption {
	return func(b *textBuffer) {
		if storage != nil {
			b.storage = storage
		}
	}
}

// WithFilePath associates a path used by Save.
func WithFilePath(path string) BufferOption {
	return func(b *textBuffer) { b.filePath = path }
}

// WithLanguage sets the language tag supplied by an external classifier.
func WithLanguage(language string) BufferOption {
	return func(b *textBuffer) { b.language = language }
}

func newTextBuffer(opts ...BufferOption) *textBuffer {
	b := &textBuffer{
		lines:   [][]rune{{}}, // Start with one empty line
		storage: FileStorage{},
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// NewBuffer creates a new empty buffer
func NewBuffer(opts ...BufferOption) Buffer {
	return newTextBuffer(opts...)
}

// NewBufferFromBytes creates an unmodified buffer holding content.
func NewBufferFromBytes(content []byte, opts ...BufferOption) Buffer {
	b := newTextBuffer(opts...)
	b.lines = splitLines(content)
	return b
}

// OpenBuffer loads path through the configured storage. A path that does not
// exist yet yields an empty buffer already marked modified.
func OpenBuffer(path string, opts ...BufferOption) (Buffer, error) {
	b := newTextBuffer(append(opts, WithFilePath(path))...)

	exists, err := b.storage.Exists(path)
	if err != nil {
		return nil, storageError(fmt.Errorf("stat %s: %w", path, err))
	}
	if !exists {
		b.modified = true
		return b, nil
	}

	content, err := b.storage.ReadFile(path)
	if err != nil {
		log.Error("failed to read file", "path", path, "error", err)
		return nil, storageError(fmt.Errorf("read %s: %w", path, err))
	}
	b.lines = splitLines(content)
	return b, nil
}

// splitLines drops a single trailing newline and a trailing carriage return per line.
func splitLines(content []byte) [][]rune {
	content = bytes.TrimSuffix(content, []byte("\n"))
	parts := bytes.Split(content, []byte("\n"))
	lines := make([][]rune, len(parts))
	for i, part := range parts {
		lines[i] = bytes.Runes(bytes.TrimSuffix(part, []byte("\r")))
	}
	return lines
}

// concat always allocates so joined lines never share a backing array.
func concat(a, b []rune) []rune {
	out := make([]rune, 0, len(a)+len(b))
	out = append(out, a...)
	return append(out, b...)
}

func (b *textBuffer) validRow(row int) bool {
	return row >= 0 && row < len(b.lines)
}

func (b *textBuffer) clampPosition(p Position) Position {
	p.Row = min(max(p.Row, 0), len(b.lines)-1)
	p.Col = min(max(p.Col, 0), len(b.lines[p.Row]))
	return p
}

func (b *textBuffer) IsEmpty() bool {
	return len(b.lines) == 1 && len(b.lines[0]) == 0
}

func (b *textBuffer) GetLines() []string {
	linesStr := make([]string, len(b.lines))
	for i, r := range b.lines {
		linesStr[i] = string(r)
	}
	return linesStr
}

func (b *textBuffer) GetLine(lineNum int) string {
	if !b.validRow(lineNum) {
		return ""
	}
	return string(b.lines[lineNum])
}

func (b *textBuffer) GetLineRunes(lineNum int) []rune {
	if !b.validRow(lineNum) {
		return nil
	}
	return b.lines[lineNum]
}

func (b *textBuffer) LineRuneCount(lineNum int) int {
	if !b.validRow(lineNum) {
		return 0
	}
	return len(b.lines[lineNum])
}

func (b *textBuffer) LineCount() int {
	return len(b.lines)
}

// GetCurrentContent returns the lines joined by single newlines.
func (b *textBuffer) GetCurrentContent() string {
	return strings.Join(b.GetLines(), "\n")
}

func (b *textBuffer) GetCursor() Cursor {
	return b.cursor
}

// SetCursor sets the cursor position, validating and clamping it.
func (b *textBuffer) SetCursor(cursor Cursor) {
	cursor.Position = b.clampPosition(cursor.Position)
	b.cursor = cursor
}

func (b *textBuffer) SetCursorPosition(row, col int) {
	b.cursor.Position = b.clampPosition(Position{Row: row, Col: col})
	b.cursor.Preferred = b.cursor.Position.Col
}

// --- Editing ---

func (b *textBuffer) InsertChar(r rune) {
	if r == '\n' {
		b.InsertNewline()
		return
	}
	b.insertRunes([]rune{r})
}

// insertRunes inserts newline-free runes at the cursor.
func (b *textBuffer) insertRunes(runes []rune) {
	row := b.cursor.Position.Row
	if !b.validRow(row) {
		return
	}
	line := b.lines[row]
	col := min(b.cursor.Position.Col, len(line))

	newLine := make([]rune, 0, len(line)+len(runes))
	newLine = append(newLine, line[:col]...)
	newLine = append(newLine, runes...)
	newLine = append(newLine, line[col:]...)
	b.lines[row] = newLine

	b.cursor.Position.Col = col + len(runes)
	b.cursor.Preferred = b.cursor.Position.Col
	b.modified = true
}

// InsertString inserts s at the cursor. The cursor ends after the inserted text.
func (b *textBuffer) InsertString(s string) {
	if s == "" {
		return
	}
	parts := strings.Split(s, "\n")
	if len(parts) == 1 {
		b.insertRunes([]rune(s))
		return
	}

	row := b.cursor.Position.Row
	if !b.validRow(row) {
		return
	}
	line := b.lines[row]
	col := min(b.cursor.Position.Col, len(line))

	last := []rune(parts[len(parts)-1])
	newLines := make([][]rune, 0, len(parts))
	newLines = append(newLines, concat(line[:col], []rune(parts[0])))
	for _, part := range parts[1 : len(parts)-1] {
		newLines = append(newLines, []rune(part))
	}
	newLines = append(newLines, concat(last, line[col:]))

	b.lines = slices.Replace(b.lines, row, row+1, newLines...)
	b.cursor.Position = Position{Row: row + len(parts) - 1, Col: len(last)}
	b.cursor.Preferred = b.cursor.Position.Col
	b.modified = true
}

func (b *textBuffer) DeleteChar() {
	row := b.cursor.Position.Row
	if !b.validRow(row) {
		return
	}
	line := b.lines[row]
	col := b.cursor.Position.Col

	if col < len(line) {
		b.lines[row] = slices.Delete(line, col, col+1)
		b.modified = true
	} else if row+1 < len(b.lines) {
		b.lines[row] = concat(line, b.lines[row+1])
		b.lines = slices.Delete(b.lines, row+1, row+2)
		b.modified = true
	}
}

func (b *textBuffer) Backspace() {
	row := b.cursor.Position.Row
	if !b.validRow(row) {
		return
	}
	col := min(b.cursor.Position.Col, len(b.lines[row]))

	if col > 0 {
		b.lines[row] = slices.Delete(b.lines[row], col-1, col)
		b.cursor.Position.Col = col - 1
	} else if row > 0 {
		prevLen := len(b.lines[row-1])
		b.lines[row-1] = concat(b.lines[row-1], b.lines[row])
		b.lines = slices.Delete(b.lines, row, row+1)
		b.cursor.Position = Position{Row: row - 1, Col: prevLen}
	} else {
		return
	}
	b.cursor.Preferred = b.cursor.Position.Col
	b.modified = true
}

func (b *textBuffer) InsertNewline() {
	row := b.cursor.Position.Row
	if !b.validRow(row) {
		return
	}
	line := b.lines[row]
	col := min(b.cursor.Position.Col, len(line))

	head := slices.Clone(line[:col])
	tail := slices.Clone(line[col:])
	b.lines[row] = head
	b.lines = slices.Insert(b.lines, row+1, tail)

	b.cursor.Position = Position{Row: row + 1, Col: 0}
	b.cursor.Preferred = 0
	b.modified = true
}

// DeleteLine removes the cursor line, or clears it when it is the only one.
func (b *textBuffer) DeleteLine() {
	row := b.cursor.Position.Row
	if !b.validRow(row) {
		return
	}
	if len(b.lines) > 1 {
		b.lines = slices.Delete(b.lines, row, row+1)
		if row >= len(b.lines) {
			b.cursor.Position.Row = len(b.lines) - 1
		}
	} else {
		b.lines[0] = []rune{}
	}
	b.cursor.Position.Col = 0
	b.cursor.Preferred = 0
	b.modified = true
}

// InsertLines inserts whole lines before index at (at == LineCount appends).
func (b *textBuffer) InsertLines(at int, lines []string) error {
	if at < 0 || at > len(b.lines) {
		return bufferError(fmt.Errorf("InsertLines: %w: row %d out of bounds [0, %d]", ErrInvalidPosition, at, len(b.lines)))
	}
	if len(lines) == 0 {
		return nil
	}
	newLines := make([][]rune, len(lines))
	for i, line := range lines {
		newLines[i] = []rune(line)
	}
	b.lines = slices.Insert(b.lines, at, newLines...)
	b.modified = true
	return nil
}

// DeleteLines removes rows start..end inclusive and returns their content.
func (b *textBuffer) DeleteLines(start, end int) ([]string, error) {
	if start < 0 || end >= len(b.lines) || start > end {
		return nil, bufferError(fmt.Errorf("DeleteLines: %w: rows %d-%d out of bounds [0, %d)", ErrInvalidPosition, start, end, len(b.lines)))
	}
	removed := make([]string, 0, end-start+1)
	for _, line := range b.lines[start : end+1] {
		removed = append(removed, string(line))
	}

	b.lines = slices.Delete(b.lines, start, end+1)
	if len(b.lines) == 0 {
		b.lines = [][]rune{{}}
	}
	b.cursor.Position = b.clampPosition(b.cursor.Position)
	b.modified = true
	return removed, nil
}

// --- Movement ---

func (b *textBuffer) MoveLeft()        { b.cursor.MoveLeftOrUp(b) }
func (b *textBuffer) MoveRight()       { b.cursor.MoveRightOrDown(b) }
func (b *textBuffer) MoveUp()          { b.cursor.MoveUp(b) }
func (b *textBuffer) MoveDown()        { b.cursor.MoveDown(b) }
func (b *textBuffer) MoveLineStart()   { b.cursor.MoveToLineStart() }
func (b *textBuffer) MoveLineEnd()     { b.cursor.MoveToLineEnd(b) }
func (b *textBuffer) MoveBufferStart() { b.cursor.MoveToBufferStart() }
func (b *textBuffer) MoveBufferEnd()   { b.cursor.MoveToBufferEnd(b) }

// --- Selection ---

func (b *textBuffer) StartSelection() {
	pos := b.cursor.Position
	b.selection = &Selection{Anchor: pos, Head: pos}
}

func (b *textBuffer) UpdateSelection() {
	if b.selection == nil {
		return
	}
	b.selection.Head = b.cursor.Position
}

func (b *textBuffer) SetSelection(anchor, head Position) {
	b.selection = &Selection{
		Anchor: b.clampPosition(anchor),
		Head:   b.clampPosition(head),
	}
}

func (b *textBuffer) ClearSelection() {
	b.selection = nil
}

func (b *textBuffer) Selection() (Selection, bool) {
	if b.selection == nil {
		return Selection{}, false
	}
	return *b.selection, true
}

// normalizedSelection clamps stale endpoints left behind by later edits.
func (b *textBuffer) normalizedSelection() (start, end Position, ok bool) {
	if b.selection == nil {
		return Position{}, Position{}, false
	}
	start, end = b.selection.Normalized()
	return b.clampPosition(start), b.clampPosition(end), true
}

func (b *textBuffer) textRange(start, end Position) string {
	if start.Row == end.Row {
		return string(b.lines[start.Row][start.Col:end.Col])
	}

	var sb strings.Builder
	sb.WriteString(string(b.lines[start.Row][start.Col:]))
	for r := start.Row + 1; r < end.Row; r++ {
		sb.WriteByte('\n')
		sb.WriteString(string(b.lines[r]))
	}
	sb.WriteByte('\n')
	sb.WriteString(string(b.lines[end.Row][:end.Col]))
	return sb.String()
}

func (b *textBuffer) GetSelection() (string, bool) {
	start, end, ok := b.normalizedSelection()
	if !ok {
		return "", false
	}
	return b.textRange(start, end), true
}

// DeleteSelection removes the selected span, leaving the cursor at its start.
func (b *textBuffer) DeleteSelection() (string, bool) {
	start, end, ok := b.normalizedSelection()
	if !ok {
		return "", false
	}
	text := b.textRange(start, end)

	joined := concat(b.lines[start.Row][:start.Col], b.lines[end.Row][end.Col:])
	b.lines = slices.Replace(b.lines, start.Row, end.Row+1, joined)

	b.cursor.Position = start
	b.cursor.Preferred = start.Col
	b.selection = nil
	b.modified = true
	return text, true
}

// --- Persistence ---

func (b *textBuffer) FilePath() string { return b.filePath }

func (b *textBuffer) Language() string { return b.language }

func (b *textBuffer) SetLanguage(language string) { b.language = language }

func (b *textBuffer) IsModified() bool { return b.modified }

func (b *textBuffer) Save() error {
	if b.filePath == "" {
		return bufferError(ErrNoFilePath)
	}
	return b.write(b.filePath)
}

func (b *textBuffer) SaveAs(path string) error {
	if path == "" {
		return bufferError(ErrNoFilePath)
	}
	if err := b.write(path); err != nil {
		return err
	}
	b.filePath = path
	return nil
}

func (b *textBuffer) write(path string) error {
	if err := b.storage.WriteFile(path, []byte(b.GetCurrentContent())); err != nil {
		log.Error("failed to save file", "path", path, "error", err)
		return storageError(fmt.Errorf("save %s: %w", path, err))
	}
	b.modified = false
	log.Info("buffer saved", "path", path, "lines", len(b.lines))
	return nil
}
