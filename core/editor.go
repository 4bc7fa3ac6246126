package core

// SelectionType indicates the selection status of a position
type SelectionType int

const (
	SelectionNone      SelectionType = iota // Position is not selected
	SelectionCharacter                      // Position is part of a character-wise visual selection
	SelectionLine                           // Position is part of a line-wise visual selection
)

// Editor represents the main editor interface.
// All methods must be called from a single goroutine.
type Editor interface {
	// Buffer manipulation
	GetBuffer() Buffer
	SetBuffer(Buffer)  // Replace the current buffer
	SetContent([]byte) // Set buffer content from byte slice

	// Mode handling
	GetMode() EditorMode
	SetNormalMode()
	SetInsertMode()
	SetVisualMode()
	SetVisualLineMode()
	SetCommandMode()

	// HandleKey processes one key press and reports whether an exit was requested.
	HandleKey(key KeyEvent) (bool, error)

	// State Management
	GetState() State      // Get the current editor state
	SetState(State)       // Update the editor state (used internally)
	UpdateStatus(string)  // Helper to set status line
	UpdateCommand(string) // Helper to set command line
	SetPending(string)    // Helper to show a pending key sequence

	// ExecuteCommand runs an ex command line, with or without the leading ':'.
	ExecuteCommand(cmd string) (bool, error)

	Registers() *Registers
	Options() Options
	SetOptions(Options)

	ScrollViewport()
	SetViewportSize(width, height int)
	GetUpdateSignalChan() <-chan Signal            // For UI updates
	GetSelectionStatus(pos Position) SelectionType // Get selection status of a position
	Quit()                                         // Signal to quit the editor
	DispatchError(err error)                       // Dispatch errors to consumers
	DispatchMessage(args ...string)                // Dispatch messages to consumers
	DispatchSignal(signal Signal)                  // Dispatch signals to consumers

	IsNormalMode() bool
	IsInsertMode() bool
	IsVisualMode() bool
	IsVisualLineMode() bool
	IsCommandMode() bool
}

// Clipboard is the system clipboard backing the '+' register.
type Clipboard interface {
	Write(text string) error
	Read() (string, error)
}
