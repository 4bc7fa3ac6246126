package core

// visualMode serves both Visual and VisualLine. VisualLine widens every
// operation to whole lines.
type visualMode struct {
	lineWise bool
	pending  *pendingKeys
}

func NewVisualMode() EditorMode     { return newVisualMode(false) }
func NewVisualLineMode() EditorMode { return newVisualMode(true) }

func newVisualMode(lineWise bool) *visualMode {
	trie := newKeyTrie()
	trie.Insert("gg", moveToBufferStart)
	return &visualMode{lineWise: lineWise, pending: newPendingKeys(trie)}
}

func (m *visualMode) Name() Mode {
	if m.lineWise {
		return VisualLineMode
	}
	return VisualMode
}

func (m *visualMode) Enter(editor Editor, buffer Buffer) {
	editor.UpdateStatus(m.Name().statusLabel())
	editor.UpdateCommand("")
	m.pending.Reset()
	if _, ok := buffer.Selection(); !ok {
		buffer.StartSelection()
	}
}

func (m *visualMode) Exit(editor Editor, buffer Buffer) {
	m.pending.Reset()
	editor.SetPending("")
}

func (m *visualMode) HandleKey(editor Editor, buffer Buffer, key KeyEvent) error {
	action, result := m.pending.Feed(key)
	editor.SetPending(m.pending.String())
	switch result {
	case seqPending, seqCancelled:
		return nil
	case seqMatched:
		err := action(editor, buffer)
		buffer.UpdateSelection()
		return err
	}

	if moveCursor(buffer, key) {
		buffer.UpdateSelection()
		return nil
	}

	if key.Key == KeyEscape || key.IsCtrl('c') {
		buffer.ClearSelection()
		editor.SetNormalMode()
		return nil
	}
	if key.Modifiers&(ModCtrl|ModAlt) != 0 {
		return nil
	}

	switch key.Rune {
	case 'y':
		m.yank(editor, buffer)
	case 'd', 'x':
		return m.delete(editor, buffer, false)
	case 'c':
		return m.delete(editor, buffer, true)
	case 'o': // Jump to the other end of the selection
		if sel, ok := buffer.Selection(); ok {
			buffer.SetCursorPosition(sel.Anchor.Row, sel.Anchor.Col)
			buffer.SetSelection(sel.Head, sel.Anchor)
		}
	case 'v':
		m.toggle(editor, buffer, false)
	case 'V':
		m.toggle(editor, buffer, true)
	}
	return nil
}

// toggle switches between character and line selection, or leaves visual
// mode when the key names the current one.
func (m *visualMode) toggle(editor Editor, buffer Buffer, lineWise bool) {
	switch {
	case m.lineWise == lineWise:
		buffer.ClearSelection()
		editor.SetNormalMode()
	case lineWise:
		editor.SetVisualLineMode()
	default:
		editor.SetVisualMode()
	}
}

// charRange returns the selection widened to include the character under
// its end. At a line end the range takes the line break instead.
func (m *visualMode) charRange(buffer Buffer) (start, end Position, ok bool) {
	sel, ok := buffer.Selection()
	if !ok {
		return Position{}, Position{}, false
	}
	start, end = sel.Normalized()
	switch {
	case end.Col < buffer.LineRuneCount(end.Row):
		end.Col++
	case end.Row+1 < buffer.LineCount():
		end = Position{Row: end.Row + 1, Col: 0}
	}
	return start, end, true
}

func (m *visualMode) yank(editor Editor, buffer Buffer) {
	defer editor.SetNormalMode()

	if m.lineWise {
		sel, ok := buffer.Selection()
		if !ok {
			return
		}
		start, end := sel.Normalized()
		yankLineRange(editor, buffer, start.Row, end.Row)
		buffer.ClearSelection()
		buffer.SetCursorPosition(start.Row, start.Col)
		return
	}

	start, end, ok := m.charRange(buffer)
	if !ok {
		return
	}
	buffer.SetSelection(start, end)
	text, _ := buffer.GetSelection()
	storeRegister(editor, text, false)
	buffer.ClearSelection()
	buffer.SetCursorPosition(start.Row, start.Col)
	editor.DispatchSignal(YankSignal{totalLines: end.Row - start.Row + 1})
}

// delete removes the selection into the default register, then enters insert
// mode when change is set, normal mode otherwise.
func (m *visualMode) delete(editor Editor, buffer Buffer, change bool) error {
	next := editor.SetNormalMode
	if change {
		next = editor.SetInsertMode
	}

	if m.lineWise {
		sel, ok := buffer.Selection()
		if !ok {
			next()
			return nil
		}
		start, end := sel.Normalized()
		total := buffer.LineCount()
		buffer.ClearSelection()
		if err := deleteLineRange(editor, buffer, start.Row, end.Row); err != nil {
			next()
			return err
		}
		if change && end.Row-start.Row+1 < total {
			if err := buffer.InsertLines(start.Row, []string{""}); err != nil {
				next()
				return err
			}
			buffer.SetCursorPosition(start.Row, 0)
		}
		next()
		return nil
	}

	start, end, ok := m.charRange(buffer)
	if ok {
		buffer.SetSelection(start, end)
		text, _ := buffer.DeleteSelection()
		storeRegister(editor, text, false)
		editor.DispatchSignal(DeleteSignal{totalLines: end.Row - start.Row + 1})
	}
	next()
	return nil
}
