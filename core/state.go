package core

import "fmt"

// State represents the complete current state of the editor
type State struct {
	Mode        Mode   // Current editing mode
	StatusLine  string // Content of the status line (bottom line)
	CommandLine string // Command being typed, including the leading ':'
	Pending     string // Keys of an unfinished multi-key command (e.g. "d")
	Message     string // Last dispatched message
	Quit        bool   // Set once an exit has been granted

	// Viewport information
	TopLine        int // First line visible in the viewport (0-indexed)
	ViewportHeight int // Number of lines that can be displayed
	ViewportWidth  int // Number of columns that can be displayed
}

// InitialState creates a default state
func InitialState() State {
	return State{
		Mode:           NormalMode,
		StatusLine:     NormalMode.statusLabel(),
		ViewportHeight: 24,
		ViewportWidth:  80,
	}
}

// Concrete implementation of Editor
type editor struct {
	buffer      Buffer
	currentMode EditorMode
	modes       map[Mode]EditorMode
	state       State
	options     Options
	registers   *Registers

	exitRequested bool // set by Quit during the current HandleKey
	updateSignal  chan Signal
}

// New creates a new editor instance holding an empty buffer. clipboard may be nil.
func New(clipboard Clipboard, options Options) Editor {
	e := &editor{
		buffer:       NewBuffer(),
		modes:        make(map[Mode]EditorMode),
		state:        InitialState(),
		options:      options,
		registers:    NewRegisters(clipboard, options.SyncClipboard),
		updateSignal: make(chan Signal, 100), // Buffered channel for updates
	}

	e.modes[NormalMode] = NewNormalMode()
	e.modes[InsertMode] = NewInsertMode()
	e.modes[VisualMode] = NewVisualMode()
	e.modes[VisualLineMode] = NewVisualLineMode()
	e.modes[CommandMode] = NewCommandMode()

	e.currentMode = e.modes[NormalMode]
	e.currentMode.Enter(e, e.buffer)

	return e
}

func (e *editor) setMode(modeName Mode) error {
	newMode, ok := e.modes[modeName]
	if !ok {
		return internalError(fmt.Errorf("%w: %s", ErrInvalidMode, modeName))
	}
	if e.buffer == nil {
		return internalError(ErrNoActiveBuffer)
	}

	from := e.state.Mode
	if e.currentMode != nil {
		e.currentMode.Exit(e, e.buffer)
	}

	e.currentMode = newMode
	e.state.Mode = modeName
	e.currentMode.Enter(e, e.buffer)

	if from != modeName {
		log.Debug("mode changed", "from", from, "to", modeName)
		e.DispatchSignal(ModeChangedSignal{from: from, to: modeName})
	}
	return nil
}

func (e *editor) switchMode(modeName Mode) {
	if err := e.setMode(modeName); err != nil {
		log.Error("failed to switch mode", "mode", modeName, "error", err)
	}
}

func (e *editor) SetNormalMode()     { e.switchMode(NormalMode) }
func (e *editor) SetInsertMode()     { e.switchMode(InsertMode) }
func (e *editor) SetVisualMode()     { e.switchMode(VisualMode) }
func (e *editor) SetVisualLineMode() { e.switchMode(VisualLineMode) }
func (e *editor) SetCommandMode()    { e.switchMode(CommandMode) }

func (e *editor) GetBuffer() Buffer {
	return e.buffer
}

// SetBuffer replaces the current buffer and returns to normal mode.
func (e *editor) SetBuffer(buffer Buffer) {
	e.buffer = buffer
	e.state.TopLine = 0
	if buffer == nil {
		return
	}
	e.SetNormalMode()
	e.ScrollViewport()
}

func (e *editor) SetContent(content []byte) {
	e.SetBuffer(NewBufferFromBytes(content))
}

func (e *editor) GetMode() EditorMode {
	return e.currentMode
}

func (e *editor) GetUpdateSignalChan() <-chan Signal {
	return e.updateSignal // Return the read-only channel
}

// HandleKey runs key through the current mode and reports whether the key
// caused an exit to be granted.
func (e *editor) HandleKey(key KeyEvent) (bool, error) {
	if e.buffer == nil {
		return false, internalError(ErrNoActiveBuffer)
	}
	if e.currentMode == nil {
		return false, internalError(ErrInvalidMode)
	}

	e.exitRequested = false
	err := e.currentMode.HandleKey(e, e.buffer, key)

	// Update derived state AFTER handling key
	e.ScrollViewport()

	return e.exitRequested, err
}

func (e *editor) GetState() State {
	return e.state
}

// SetState allows internal updates (e.g., from modes)
func (e *editor) SetState(state State) {
	e.state = state
}

// UpdateStatus is a helper for modes to update the status line
func (e *editor) UpdateStatus(status string) {
	e.state.StatusLine = status
}

// UpdateCommand is a helper for modes to update the command line
func (e *editor) UpdateCommand(cmd string) {
	e.state.CommandLine = cmd
}

func (e *editor) SetPending(keys string) {
	e.state.Pending = keys
}

func (e *editor) Registers() *Registers {
	return e.registers
}

func (e *editor) Options() Options {
	return e.options
}

func (e *editor) SetOptions(options Options) {
	e.options = options
	e.registers.SetSyncClipboard(options.SyncClipboard)
}

func (e *editor) SetViewportSize(width, height int) {
	e.state.ViewportWidth = max(width, 0)
	e.state.ViewportHeight = max(height, 0)
	e.ScrollViewport()
}

// ScrollViewport ensures the cursor is within the visible area
func (e *editor) ScrollViewport() {
	if e.buffer == nil {
		return
	}
	row := e.buffer.GetCursor().Position.Row

	if row < e.state.TopLine {
		e.state.TopLine = row
	} else if e.state.ViewportHeight > 0 && row >= e.state.TopLine+e.state.ViewportHeight {
		// Scroll down so cursor is on the last line of the viewport
		e.state.TopLine = row - e.state.ViewportHeight + 1
	}

	maxTop := max(e.buffer.LineCount()-1, 0)
	e.state.TopLine = min(max(e.state.TopLine, 0), maxTop)
}

// GetSelectionStatus classifies pos against the active visual selection.
// Character selections include the position under the cursor.
func (e *editor) GetSelectionStatus(pos Position) SelectionType {
	if e.buffer == nil || !(e.IsVisualMode() || e.IsVisualLineMode()) {
		return SelectionNone
	}
	sel, ok := e.buffer.Selection()
	if !ok {
		return SelectionNone
	}
	start, end := sel.Normalized()

	if e.IsVisualLineMode() {
		if pos.Row >= start.Row && pos.Row <= end.Row {
			return SelectionLine
		}
		return SelectionNone
	}

	if !pos.Less(start) && !end.Less(pos) {
		return SelectionCharacter
	}
	return SelectionNone
}

func (e *editor) Quit() {
	e.exitRequested = true
	e.state.Quit = true
	e.DispatchSignal(QuitSignal{})
}

func (e *editor) IsNormalMode() bool {
	return e.state.Mode == NormalMode
}

func (e *editor) IsInsertMode() bool {
	return e.state.Mode == InsertMode
}

func (e *editor) IsVisualMode() bool {
	return e.state.Mode == VisualMode
}

func (e *editor) IsVisualLineMode() bool {
	return e.state.Mode == VisualLineMode
}

func (e *editor) IsCommandMode() bool {
	return e.state.Mode == CommandMode
}
