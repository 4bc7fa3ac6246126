package core

import "fmt"

var (
	ChangesSavedMessage = "changes saved"
	YankMessage         = "selection yanked"
	UnsavedMessage      = "no write since last change (add ! to override)"
	NotCommandMessage   = "not an editor command"
)

// DispatchMessage sends a message signal. With one argument the id doubles as the text.
func (e *editor) DispatchMessage(args ...string) {
	if len(args) == 0 {
		return
	}
	id := args[0]
	value := id
	if len(args) > 1 {
		value = args[1]
	}
	e.state.Message = value
	select {
	case e.updateSignal <- MessageSignal{id, value}:
	default:
		log.Warning("channel is full, unable to send message signal", "id", id)
	}
}

func savedMessage(path string, lines int) string {
	return fmt.Sprintf("%q %dL written", path, lines)
}
