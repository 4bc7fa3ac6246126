package bubble_adapter

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rivo/uniseg"

	editor "github.com/ionut-t/modaledit/core"
)

// lineNumberWidth computes the gutter width, including the trailing space.
func (m *Model) lineNumberWidth(totalLines int) int {
	if !m.showLineNumbers {
		return 0
	}

	maxWidth := len(strconv.Itoa(max(1, totalLines)))
	if m.relativeNumbers {
		maxWidth = max(maxWidth, len(strconv.Itoa(max(1, m.viewport.Height))))
	}

	lineNumWidth := max(4, maxWidth) + 1
	return min(lineNumWidth, 10)
}

// cellWidth is the number of terminal columns r occupies.
func (m *Model) cellWidth(r rune) int {
	if r == '\t' {
		return m.tabWidth()
	}
	return max(uniseg.StringWidth(string(r)), 1)
}

func (m *Model) tabWidth() int {
	if width := m.editor.Options().TabWidth; width > 0 {
		return width
	}
	return editor.DefaultOptions().TabWidth
}

// scrollHorizontally keeps the cursor column inside a text area of width cells.
func (m *Model) scrollHorizontally(line []rune, col, width int) {
	col = min(col, len(line))
	if col < m.leftCol {
		m.leftCol = col
		return
	}

	used := 1 // the cursor cell
	if col < len(line) {
		used = m.cellWidth(line[col])
	}
	for i := col - 1; i >= m.leftCol; i-- {
		used += m.cellWidth(line[i])
		if used > width {
			m.leftCol = i + 1
			return
		}
	}
}

func (m *Model) getCursorStyles() lipgloss.Style {
	switch m.editor.GetState().Mode {
	case editor.InsertMode:
		return m.theme.InsertModeStyle
	case editor.VisualMode, editor.VisualLineMode:
		return m.theme.VisualModeStyle
	case editor.CommandMode:
		return m.theme.CommandModeStyle
	default:
		return m.theme.NormalModeStyle
	}
}

// renderVisibleSlice draws the rows between State.TopLine and the viewport
// height into the viewport. Lines are clipped, not wrapped; the cursor line
// and every other row share one horizontal offset.
func (m *Model) renderVisibleSlice() {
	buffer := m.editor.GetBuffer()
	if buffer == nil {
		m.viewport.SetContent("")
		return
	}

	lines := buffer.GetLines()
	if m.highlighter != nil {
		if content := strings.Join(lines, "\n"); content != m.renderedContent {
			m.highlighter.Invalidate()
			m.renderedContent = content
		}
	}

	state := m.editor.GetState()
	cursor := buffer.GetCursor().Position
	gutter := m.lineNumberWidth(len(lines))
	textWidth := max(m.viewport.Width-gutter, 1)
	m.scrollHorizontally(buffer.GetLineRunes(cursor.Row), cursor.Col, textWidth)

	selectionStyle := m.theme.SelectionStyle
	if m.yanked {
		selectionStyle = m.theme.HighlightYankStyle
	}

	var sb strings.Builder
	rendered := 0
	for row := state.TopLine; row < len(lines) && rendered < m.viewport.Height; row++ {
		if rendered > 0 {
			sb.WriteByte('\n')
		}
		if gutter > 0 {
			sb.WriteString(m.renderLineNumber(row, cursor.Row, gutter))
		}
		sb.WriteString(m.renderLine(row, lines, cursor, textWidth, selectionStyle))
		rendered++
	}

	for ; rendered < m.viewport.Height; rendered++ {
		if rendered > 0 {
			sb.WriteByte('\n')
		}
		if gutter > 0 && m.showTildeIndicator {
			sb.WriteString(m.theme.LineNumberStyle.Width(gutter-1).Render("~") + " ")
		}
	}

	m.viewport.SetContent(sb.String())
}

func (m *Model) renderLineNumber(row, cursorRow, gutter int) string {
	style := m.theme.LineNumberStyle
	num := row + 1
	if row == cursorRow {
		style = m.theme.CurrentLineNumberStyle
	} else if m.relativeNumbers {
		num = row - cursorRow
		if num < 0 {
			num = -num
		}
	}
	return style.Width(gutter-1).Render(strconv.Itoa(num)) + " "
}

// renderLine styles one buffer row: syntax colours first, then selection,
// then the cursor cell on top.
func (m *Model) renderLine(row int, lines []string, cursor editor.Position, width int, selectionStyle lipgloss.Style) string {
	runes := []rune(lines[row])

	var syntax []lipgloss.Style
	if m.highlighter != nil {
		syntax = m.highlighter.RuneStyles(row, lines)
	}

	var sb strings.Builder
	used := 0
	for col := m.leftCol; col < len(runes); col++ {
		r := runes[col]
		w := m.cellWidth(r)
		if used+w > width {
			break
		}
		used += w

		text := string(r)
		if r == '\t' {
			text = strings.Repeat(" ", w)
		}

		style := lipgloss.NewStyle()
		if col < len(syntax) {
			style = syntax[col]
		}

		pos := editor.Position{Row: row, Col: col}
		if m.editor.GetSelectionStatus(pos) != editor.SelectionNone {
			style = selectionStyle.Inherit(style)
		}
		if m.isFocused && pos == cursor {
			style = m.getCursorStyles()
		}

		sb.WriteString(style.Render(text))
	}

	// The cursor may sit one past the last character.
	if m.isFocused && cursor.Row == row && cursor.Col >= len(runes) && used < width {
		base := lipgloss.NewStyle()
		if m.editor.GetSelectionStatus(cursor) != editor.SelectionNone {
			base = selectionStyle
		}
		sb.WriteString(base.Render(m.getCursorStyles().Render(" ")))
	}

	return sb.String()
}
