package core

type normalMode struct {
	pending *pendingKeys // multi-key commands: dd, yy, gg
}

func NewNormalMode() EditorMode {
	trie := newKeyTrie()
	trie.Insert("dd", deleteCurrentLine)
	trie.Insert("yy", yankCurrentLine)
	trie.Insert("gg", moveToBufferStart)

	return &normalMode{pending: newPendingKeys(trie)}
}

func (m *normalMode) Name() Mode { return NormalMode }

func (m *normalMode) Enter(editor Editor, buffer Buffer) {
	editor.UpdateStatus(NormalMode.statusLabel())
	editor.UpdateCommand("")
	m.pending.Reset()
	editor.SetPending("")
	buffer.ClearSelection()
}

func (m *normalMode) Exit(editor Editor, buffer Buffer) {
	m.pending.Reset()
	editor.SetPending("")
}

func (m *normalMode) HandleKey(editor Editor, buffer Buffer, key KeyEvent) error {
	action, result := m.pending.Feed(key)
	editor.SetPending(m.pending.String())
	switch result {
	case seqPending, seqCancelled:
		return nil
	case seqMatched:
		return action(editor, buffer)
	}

	if moveCursor(buffer, key) {
		return nil
	}

	switch {
	case key.Key == KeyEscape:
		return nil
	case key.IsCtrl('q'):
		_, err := editor.ExecuteCommand("q")
		return err
	case key.Modifiers&(ModCtrl|ModAlt) != 0:
		return nil
	}

	cursor := buffer.GetCursor()

	switch key.Rune {
	// Mode changes
	case 'i': // Insert before cursor
		editor.SetInsertMode()

	case 'I': // Insert at first non-blank
		cursor.MoveToFirstNonBlank(buffer)
		buffer.SetCursor(cursor)
		editor.SetInsertMode()

	case 'a': // Insert after cursor, never leaving the line
		cursor.MoveRight(buffer)
		buffer.SetCursor(cursor)
		editor.SetInsertMode()

	case 'A': // Insert at end of line
		buffer.MoveLineEnd()
		editor.SetInsertMode()

	case 'o': // Open line below
		buffer.MoveLineEnd()
		buffer.InsertNewline()
		editor.SetInsertMode()

	case 'O': // Open line above
		buffer.MoveLineStart()
		buffer.InsertNewline()
		buffer.MoveUp()
		editor.SetInsertMode()

	case 'v':
		buffer.StartSelection()
		editor.SetVisualMode()

	case 'V':
		buffer.StartSelection()
		editor.SetVisualLineMode()

	case ':':
		editor.SetCommandMode()

	// Editing
	case 'x': // Delete character under cursor
		buffer.DeleteChar()

	case 'X': // Delete character before cursor, staying on the line
		if cursor.Position.Col > 0 {
			buffer.Backspace()
		}

	case 'D': // Delete to end of line
		return deleteToLineEnd(editor, buffer)

	case 'C': // Change to end of line
		if err := deleteToLineEnd(editor, buffer); err != nil {
			return err
		}
		editor.SetInsertMode()

	case 'p':
		return paste(editor, buffer, true)

	case 'P':
		return paste(editor, buffer, false)
	}

	return nil
}
