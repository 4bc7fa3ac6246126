package core

import (
	"fmt"
	"strings"
	"unicode"
)

// KeyCode represents non-character keys
type KeyCode int

const (
	KeyUnknown KeyCode = iota
	KeyEnter
	KeyTab
	KeyBackspace
	KeyEscape
	KeySpace

	// Arrow keys
	KeyUp
	KeyDown
	KeyLeft
	KeyRight

	// Navigation keys
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	// Editing keys
	KeyDelete
	KeyInsert
)

var keyNames = map[KeyCode]string{
	KeyUnknown:   "Unknown",
	KeyEnter:     "Enter",
	KeyTab:       "Tab",
	KeyBackspace: "Backspace",
	KeyEscape:    "Escape",
	KeySpace:     "Space",
	KeyUp:        "Up",
	KeyDown:      "Down",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
	KeyPageUp:    "PageUp",
	KeyPageDown:  "PageDown",
	KeyDelete:    "Delete",
	KeyInsert:    "Insert",
}

// KeyModifiers represents modifier keys held during a keystroke
type KeyModifiers uint8

const (
	ModNone KeyModifiers = 0
	ModCtrl KeyModifiers = 1 << iota
	ModAlt
	ModShift
)

// KeyEvent represents a keyboard input event.
// Character keys carry Rune; special keys carry Key.
type KeyEvent struct {
	Rune      rune
	Key       KeyCode
	Modifiers KeyModifiers
}

// RuneKey builds a plain character event.
func RuneKey(r rune) KeyEvent {
	return KeyEvent{Rune: r}
}

// CtrlKey builds a Ctrl+<r> event.
func CtrlKey(r rune) KeyEvent {
	return KeyEvent{Rune: r, Modifiers: ModCtrl}
}

// SpecialKey builds an event for a non-character key.
func SpecialKey(code KeyCode) KeyEvent {
	return KeyEvent{Key: code}
}

// IsCtrl reports whether the event is Ctrl+<r>.
func (k KeyEvent) IsCtrl(r rune) bool {
	return k.Modifiers&ModCtrl != 0 && unicode.ToLower(k.Rune) == r
}

// Printable reports whether the event inserts a character.
func (k KeyEvent) Printable() bool {
	return k.Rune != 0 && k.Modifiers&(ModCtrl|ModAlt) == 0 && unicode.IsPrint(k.Rune)
}

// String returns a string representation of a Key
func (k KeyEvent) String() string {
	var parts []string

	if k.Modifiers&ModCtrl != 0 {
		parts = append(parts, "Ctrl")
	}
	if k.Modifiers&ModAlt != 0 {
		parts = append(parts, "Alt")
	}
	if k.Modifiers&ModShift != 0 {
		parts = append(parts, "Shift")
	}

	switch name, ok := keyNames[k.Key]; {
	case k.Rune != 0:
		parts = append(parts, string(k.Rune))
	case ok:
		parts = append(parts, name)
	default:
		parts = append(parts, fmt.Sprintf("SpecialKey(%d)", k.Key))
	}

	return strings.Join(parts, "+")
}
