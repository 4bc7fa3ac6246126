package core

import (
	"fmt"
	"strconv"
	"strings"
)

// ExecuteCommand interprets an ex command line. The leading ':' is optional.
// It reports whether the command requested an exit; exit is refused, not an
// error, when :q meets unsaved changes.
func (e *editor) ExecuteCommand(cmd string) (bool, error) {
	cmd = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(cmd), ":"))
	if cmd == "" {
		return false, nil
	}
	if e.buffer == nil {
		return false, internalError(ErrNoActiveBuffer)
	}

	command, arg, _ := strings.Cut(cmd, " ")
	arg = strings.TrimSpace(arg)

	switch command {
	case "w", "write":
		return false, e.write(arg)

	case "q", "quit":
		if e.buffer.IsModified() {
			e.DispatchMessage(UnsavedMessage)
			return false, nil
		}
		e.Quit()
		return true, nil

	case "q!", "quit!":
		e.Quit()
		return true, nil

	case "wq", "x", "xit":
		if err := e.write(arg); err != nil {
			return false, err
		}
		e.Quit()
		return true, nil
	}

	// Line number navigation (e.g., ":10")
	if lineNum, err := strconv.Atoi(command); err == nil && lineNum >= 0 && arg == "" {
		e.buffer.SetCursorPosition(lineNum-1, 0)
		e.ScrollViewport()
		return false, nil
	}

	if e.options.StrictCommands {
		return false, commandError(fmt.Errorf("%w: %s", ErrInvalidCommand, cmd))
	}
	log.Debug("ignoring unknown command", "command", cmd)
	e.DispatchMessage(NotCommandMessage, fmt.Sprintf("%s: %s", NotCommandMessage, cmd))
	return false, nil
}

// write saves the buffer, to path when one is given.
func (e *editor) write(path string) error {
	var err error
	if path != "" {
		err = e.buffer.SaveAs(path)
	} else {
		err = e.buffer.Save()
	}
	if err != nil {
		return err
	}

	saved := e.buffer.FilePath()
	e.DispatchSignal(SaveSignal{path: saved})
	e.DispatchMessage(ChangesSavedMessage, savedMessage(saved, e.buffer.LineCount()))
	return nil
}
