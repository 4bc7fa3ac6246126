package core

import "fmt"

const (
	DefaultRegister   = '"' // unnamed register, written by every yank and delete
	ClipboardRegister = '+' // system clipboard, backed by a Clipboard
)

// Register is a named slot holding yanked or deleted text.
type Register struct {
	Name     rune
	Content  string // may contain newlines
	Linewise bool   // content is whole lines without a trailing newline
}

// Registers is the keyed register store owned by one editor session.
type Registers struct {
	registers     map[rune]Register
	clipboard     Clipboard
	syncClipboard bool
}

// NewRegisters creates a store. clipboard may be nil.
func NewRegisters(clipboard Clipboard, syncClipboard bool) *Registers {
	return &Registers{
		registers:     make(map[rune]Register),
		clipboard:     clipboard,
		syncClipboard: syncClipboard && clipboard != nil,
	}
}

// Set overwrites a register. Writes to ClipboardRegister go to the clipboard.
func (r *Registers) Set(name rune, content string, linewise bool) error {
	if name == ClipboardRegister {
		if r.clipboard == nil {
			return ErrClipboardUnavailable
		}
		if err := r.clipboard.Write(content); err != nil {
			return fmt.Errorf("write clipboard: %w", err)
		}
	}
	r.registers[name] = Register{Name: name, Content: content, Linewise: linewise}
	return nil
}

// Get returns a register. ClipboardRegister reads the clipboard each time.
func (r *Registers) Get(name rune) (Register, bool) {
	if name == ClipboardRegister && r.clipboard != nil {
		content, err := r.clipboard.Read()
		if err != nil {
			log.Warning("failed to read clipboard", "error", err)
			return Register{}, false
		}
		reg := r.registers[name]
		if reg.Content != content {
			reg = Register{Name: name, Content: content}
		}
		return reg, true
	}
	reg, ok := r.registers[name]
	return reg, ok
}

// Store writes the default register, mirroring into the clipboard when enabled.
// The default register is always updated; only the mirror can fail.
func (r *Registers) Store(content string, linewise bool) error {
	r.registers[DefaultRegister] = Register{Name: DefaultRegister, Content: content, Linewise: linewise}
	if r.syncClipboard {
		return r.Set(ClipboardRegister, content, linewise)
	}
	return nil
}

// SetSyncClipboard toggles mirroring of Store into the clipboard.
func (r *Registers) SetSyncClipboard(sync bool) {
	r.syncClipboard = sync && r.clipboard != nil
}

// Default returns the default register.
func (r *Registers) Default() (Register, bool) {
	return r.Get(DefaultRegister)
}
