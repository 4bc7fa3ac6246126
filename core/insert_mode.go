package core

type insertMode struct{}

func NewInsertMode() EditorMode { return &insertMode{} }

func (m *insertMode) Name() Mode { return InsertMode }

func (m *insertMode) Enter(editor Editor, buffer Buffer) {
	editor.UpdateStatus(InsertMode.statusLabel())
	editor.UpdateCommand("")
	buffer.ClearSelection()
}

func (m *insertMode) Exit(editor Editor, buffer Buffer) {}

func (m *insertMode) HandleKey(editor Editor, buffer Buffer, key KeyEvent) error {
	if key.Key == KeyEscape || key.IsCtrl('c') {
		editor.SetNormalMode()
		return nil
	}

	switch key.Key {
	case KeyEnter:
		buffer.InsertNewline()
	case KeyBackspace:
		buffer.Backspace()
	case KeyDelete:
		buffer.DeleteChar()
	case KeyTab:
		buffer.InsertString(editor.Options().IndentString())
	case KeySpace:
		buffer.InsertChar(' ')
	case KeyLeft:
		buffer.MoveLeft()
	case KeyRight:
		buffer.MoveRight()
	case KeyUp:
		buffer.MoveUp()
	case KeyDown:
		buffer.MoveDown()
	case KeyHome:
		buffer.MoveLineStart()
	case KeyEnd:
		buffer.MoveLineEnd()
	default:
		// Ignore unknown special keys or modifiers without runes in insert mode
		if key.Printable() {
			buffer.InsertChar(key.Rune)
		}
	}
	return nil
}
