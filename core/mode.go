package core

type Mode string

const (
	NormalMode     Mode = "normal"
	InsertMode     Mode = "insert"
	VisualMode     Mode = "visual"
	VisualLineMode Mode = "visual-line"
	CommandMode    Mode = "command"
)

// statusLabel is the status line text shown while the mode is active.
func (m Mode) statusLabel() string {
	switch m {
	case NormalMode:
		return "-- NORMAL --"
	case InsertMode:
		return "-- INSERT --"
	case VisualMode:
		return "-- VISUAL --"
	case VisualLineMode:
		return "-- VISUAL LINE --"
	case CommandMode:
		return ""
	}
	return "-- " + string(m) + " --"
}

// EditorMode represents a Vim editing mode
type EditorMode interface {
	Name() Mode
	// HandleKey processes a key press against the active buffer. Mode changes
	// go through the editor's Set*Mode helpers.
	HandleKey(editor Editor, buffer Buffer, key KeyEvent) error
	Enter(editor Editor, buffer Buffer) // Called when entering the mode
	Exit(editor Editor, buffer Buffer)  // Called when exiting the mode
}

// moveCursor applies a single-key motion shared by normal and visual modes.
// It reports whether key was a motion.
func moveCursor(buffer Buffer, key KeyEvent) bool {
	cursor := buffer.GetCursor()

	switch key.Key {
	case KeyLeft:
		buffer.MoveLeft()
		return true
	case KeyRight:
		buffer.MoveRight()
		return true
	case KeyUp:
		buffer.MoveUp()
		return true
	case KeyDown:
		buffer.MoveDown()
		return true
	case KeyHome:
		buffer.MoveLineStart()
		return true
	case KeyEnd:
		buffer.MoveLineEnd()
		return true
	}

	if key.Modifiers&(ModCtrl|ModAlt) != 0 {
		return false
	}

	switch key.Rune {
	case 'h':
		buffer.MoveLeft()
	case 'l':
		buffer.MoveRight()
	case 'k':
		buffer.MoveUp()
	case 'j':
		buffer.MoveDown()
	case '0':
		buffer.MoveLineStart()
	case '$':
		buffer.MoveLineEnd()
	case '^':
		cursor.MoveToFirstNonBlank(buffer)
		buffer.SetCursor(cursor)
	case 'w':
		cursor.MoveWordForward(buffer)
		buffer.SetCursor(cursor)
	case 'b':
		cursor.MoveWordBackward(buffer)
		buffer.SetCursor(cursor)
	case 'G':
		buffer.MoveBufferEnd()
	default:
		return false
	}
	return true
}

func moveToBufferStart(editor Editor, buffer Buffer) error {
	buffer.MoveBufferStart()
	return nil
}
