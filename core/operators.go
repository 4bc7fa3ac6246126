package core

import "strings"

// storeRegister records text in the default register. A failed clipboard
// mirror is reported but never undoes the edit.
func storeRegister(editor Editor, content string, linewise bool) {
	if err := editor.Registers().Store(content, linewise); err != nil {
		log.Warning("failed to mirror register into clipboard", "error", err)
		editor.DispatchError(storageError(err))
	}
}

func yankCurrentLine(editor Editor, buffer Buffer) error {
	row := buffer.GetCursor().Position.Row
	yankLineRange(editor, buffer, row, row)
	return nil
}

func deleteCurrentLine(editor Editor, buffer Buffer) error {
	row := buffer.GetCursor().Position.Row
	return deleteLineRange(editor, buffer, row, row)
}

// yankLineRange copies rows start..end (inclusive) as a linewise register.
func yankLineRange(editor Editor, buffer Buffer, start, end int) {
	lines := make([]string, 0, end-start+1)
	for row := start; row <= end; row++ {
		lines = append(lines, buffer.GetLine(row))
	}
	storeRegister(editor, strings.Join(lines, "\n"), true)
	editor.DispatchSignal(YankSignal{totalLines: len(lines), linewise: true})
}

// deleteLineRange removes rows start..end (inclusive) into a linewise register
// and leaves the cursor at column 0 of the row that took their place.
func deleteLineRange(editor Editor, buffer Buffer, start, end int) error {
	removed, err := buffer.DeleteLines(start, end)
	if err != nil {
		return err
	}
	storeRegister(editor, strings.Join(removed, "\n"), true)
	buffer.SetCursorPosition(start, 0)
	editor.DispatchSignal(DeleteSignal{totalLines: len(removed)})
	return nil
}

// deleteToLineEnd removes the rest of the cursor line into a charwise register.
func deleteToLineEnd(editor Editor, buffer Buffer) error {
	pos := buffer.GetCursor().Position
	lineLen := buffer.LineRuneCount(pos.Row)
	if pos.Col >= lineLen {
		return nil
	}
	buffer.SetSelection(pos, Position{Row: pos.Row, Col: lineLen})
	text, _ := buffer.DeleteSelection()
	storeRegister(editor, text, false)
	editor.DispatchSignal(DeleteSignal{totalLines: 1})
	return nil
}

// paste inserts the default register. Linewise content opens new lines below
// (after) or above the cursor line; charwise content goes after or at the cursor.
func paste(editor Editor, buffer Buffer, after bool) error {
	reg, ok := editor.Registers().Default()
	if !ok || (reg.Content == "" && !reg.Linewise) {
		return nil
	}
	totalLines := strings.Count(reg.Content, "\n") + 1

	cursor := buffer.GetCursor()
	if reg.Linewise {
		at := cursor.Position.Row
		if after {
			at++
		}
		if err := buffer.InsertLines(at, strings.Split(reg.Content, "\n")); err != nil {
			return err
		}
		buffer.SetCursorPosition(at, 0)
		editor.DispatchSignal(PasteSignal{totalLines: totalLines})
		return nil
	}

	if after && cursor.Position.Col < buffer.LineRuneCount(cursor.Position.Row) {
		cursor.Position.Col++
		buffer.SetCursor(cursor)
	}
	buffer.InsertString(reg.Content)
	editor.DispatchSignal(PasteSignal{totalLines: totalLines})
	return nil
}
