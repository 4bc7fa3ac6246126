package core

type commandMode struct {
	commandBuffer []rune // includes the leading ':'
}

func NewCommandMode() EditorMode  { return &commandMode{} }
func (m *commandMode) Name() Mode { return CommandMode }

func (m *commandMode) Enter(editor Editor, buffer Buffer) {
	editor.DispatchSignal(EnterCommandModeSignal{})
	m.commandBuffer = append(m.commandBuffer[:0], ':')
	editor.UpdateStatus(CommandMode.statusLabel())
	editor.UpdateCommand(string(m.commandBuffer))
}

func (m *commandMode) Exit(editor Editor, buffer Buffer) {
	m.commandBuffer = m.commandBuffer[:0]
	editor.UpdateCommand("") // Clear command line on exit
}

func (m *commandMode) HandleKey(editor Editor, buffer Buffer, key KeyEvent) error {
	switch key.Key {
	case KeyEscape:
		editor.SetNormalMode()
		return nil

	case KeyBackspace:
		if len(m.commandBuffer) > 0 {
			m.commandBuffer = m.commandBuffer[:len(m.commandBuffer)-1]
		}
		if len(m.commandBuffer) == 0 {
			editor.SetNormalMode()
			return nil
		}
		editor.UpdateCommand(string(m.commandBuffer))
		return nil

	case KeyEnter:
		cmd := string(m.commandBuffer)
		editor.SetNormalMode()
		_, err := editor.ExecuteCommand(cmd)
		return err

	case KeySpace:
		m.commandBuffer = append(m.commandBuffer, ' ')
		editor.UpdateCommand(string(m.commandBuffer))
		return nil
	}

	if key.IsCtrl('c') {
		editor.SetNormalMode()
		return nil
	}
	if key.Printable() {
		m.commandBuffer = append(m.commandBuffer, key.Rune)
		editor.UpdateCommand(string(m.commandBuffer))
	}
	return nil
}
