package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ============================================================================
// Insert mode
// ============================================================================

// TestTypeInInsertMode covers entering insert, typing, and escaping.
func TestTypeInInsertMode(t *testing.T) {
	e, b := newTestEditor()

	press(t, e, keys("ihi")...)
	press(t, e, escKey)

	assert.True(t, e.IsNormalMode())
	assert.Equal(t, "hi", b.GetLine(0))
	assert.Equal(t, 2, cursorAt(b).Col)
}

func TestInsertMode_CtrlCLeaves(t *testing.T) {
	e, _ := newTestEditor("abc")

	press(t, e, RuneKey('i'), CtrlKey('c'))

	assert.True(t, e.IsNormalMode())
}

func TestInsertMode_EditingKeys(t *testing.T) {
	e, b := newTestEditor("ab", "cd")
	b.SetCursorPosition(1, 0)

	press(t, e, RuneKey('i'), bsKey)
	assert.Equal(t, []string{"abcd"}, b.GetLines())

	press(t, e, enterKey)
	assert.Equal(t, []string{"ab", "cd"}, b.GetLines())
	assert.Equal(t, Position{Row: 1, Col: 0}, cursorAt(b))

	press(t, e, SpecialKey(KeyDelete))
	assert.Equal(t, []string{"ab", "d"}, b.GetLines())

	press(t, e, SpecialKey(KeyLeft))
	assert.Equal(t, Position{Row: 0, Col: 2}, cursorAt(b))
}

func TestInsertMode_TabUsesOptions(t *testing.T) {
	e, b := newTestEditor("")

	press(t, e, RuneKey('i'), SpecialKey(KeyTab))
	assert.Equal(t, "    ", b.GetLine(0))

	opts := e.Options()
	opts.InsertSpaces = false
	e.SetOptions(opts)
	press(t, e, SpecialKey(KeyTab))
	assert.Equal(t, "    \t", b.GetLine(0))
}

func TestInsertMode_IgnoresControlChords(t *testing.T) {
	e, b := newTestEditor("")

	press(t, e, RuneKey('i'), CtrlKey('x'), KeyEvent{Rune: 'y', Modifiers: ModAlt})

	assert.True(t, b.IsEmpty())
}

// ============================================================================
// Normal mode
// ============================================================================

func TestNormal_EscapeIsIdempotent(t *testing.T) {
	e, b := newTestEditor("abc", "def")
	b.SetCursorPosition(1, 2)
	before := e.GetState()

	press(t, e, escKey, escKey)

	assert.Equal(t, before, e.GetState())
	assert.Equal(t, []string{"abc", "def"}, b.GetLines())
	assert.Equal(t, Position{Row: 1, Col: 2}, cursorAt(b))
	assert.False(t, b.IsModified())
}

func TestNormal_GGMovesToStart(t *testing.T) {
	e, b := newTestEditor("one", "two", "three", "four", "five")
	b.SetCursorPosition(3, 2)

	press(t, e, RuneKey('g'))
	assert.Equal(t, "g", e.GetState().Pending)

	press(t, e, RuneKey('g'))
	assert.Equal(t, Position{}, cursorAt(b))
	assert.Empty(t, e.GetState().Pending)
}

// TestNormal_BrokenPrefixDoesNotMove verifies a mismatched second key only clears the prefix
func TestNormal_BrokenPrefixDoesNotMove(t *testing.T) {
	e, b := newTestEditor("one", "two", "three", "four", "five")
	b.SetCursorPosition(3, 2)

	press(t, e, RuneKey('g'), RuneKey('j'))

	assert.Equal(t, Position{Row: 3, Col: 2}, cursorAt(b))
	assert.Empty(t, e.GetState().Pending)
}

func TestNormal_Motions(t *testing.T) {
	e, b := newTestEditor("hello world", "second")

	press(t, e, RuneKey('w'))
	assert.Equal(t, Position{Row: 0, Col: 6}, cursorAt(b))

	press(t, e, RuneKey('$'))
	assert.Equal(t, Position{Row: 0, Col: 11}, cursorAt(b))

	press(t, e, RuneKey('0'))
	assert.Equal(t, Position{Row: 0, Col: 0}, cursorAt(b))

	press(t, e, RuneKey('j'), RuneKey('l'))
	assert.Equal(t, Position{Row: 1, Col: 1}, cursorAt(b))

	press(t, e, RuneKey('b'))
	assert.Equal(t, Position{Row: 1, Col: 0}, cursorAt(b))

	press(t, e, RuneKey('k'))
	assert.Equal(t, Position{Row: 0, Col: 0}, cursorAt(b))

	press(t, e, RuneKey('G'))
	assert.Equal(t, Position{Row: 1, Col: 6}, cursorAt(b))

	press(t, e, SpecialKey(KeyUp), SpecialKey(KeyRight))
	assert.Equal(t, Position{Row: 0, Col: 7}, cursorAt(b))
}

func TestNormal_InsertEntryPoints(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		start Position
		key   rune
		want  []string
		at    Position
	}{
		{"i", []string{"abc"}, Position{0, 1}, 'i', []string{"abc"}, Position{0, 1}},
		{"a", []string{"abc"}, Position{0, 1}, 'a', []string{"abc"}, Position{0, 2}},
		{"a at line end", []string{"abc"}, Position{0, 3}, 'a', []string{"abc"}, Position{0, 3}},
		{"A", []string{"abc"}, Position{0, 0}, 'A', []string{"abc"}, Position{0, 3}},
		{"I", []string{"  abc"}, Position{0, 4}, 'I', []string{"  abc"}, Position{0, 2}},
		{"o", []string{"abc", "def"}, Position{0, 1}, 'o', []string{"abc", "", "def"}, Position{1, 0}},
		{"O", []string{"abc"}, Position{0, 2}, 'O', []string{"", "abc"}, Position{0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, b := newTestEditor(tt.lines...)
			b.SetCursorPosition(tt.start.Row, tt.start.Col)

			press(t, e, RuneKey(tt.key))

			assert.True(t, e.IsInsertMode())
			assert.Equal(t, tt.want, b.GetLines())
			assert.Equal(t, tt.at, cursorAt(b))
		})
	}
}

func TestNormal_OpenLineThenType(t *testing.T) {
	e, b := newTestEditor("abc", "def")

	press(t, e, RuneKey('o'), RuneKey('x'), escKey)

	assert.Equal(t, []string{"abc", "x", "def"}, b.GetLines())
}

func TestNormal_DeleteChars(t *testing.T) {
	e, b := newTestEditor("abcd")
	b.SetCursorPosition(0, 1)

	press(t, e, RuneKey('x'))
	assert.Equal(t, "acd", b.GetLine(0))

	press(t, e, RuneKey('X'))
	assert.Equal(t, "cd", b.GetLine(0))
	assert.Equal(t, Position{Row: 0, Col: 0}, cursorAt(b))

	press(t, e, RuneKey('X'))
	assert.Equal(t, "cd", b.GetLine(0))
}

func TestNormal_DeleteToLineEnd(t *testing.T) {
	e, b := newTestEditor("hello world")
	b.SetCursorPosition(0, 5)

	press(t, e, RuneKey('D'))

	assert.Equal(t, "hello", b.GetLine(0))
	reg, ok := e.Registers().Default()
	require.True(t, ok)
	assert.Equal(t, " world", reg.Content)
	assert.False(t, reg.Linewise)
}

func TestNormal_ChangeToLineEnd(t *testing.T) {
	e, b := newTestEditor("hello world")
	b.SetCursorPosition(0, 6)

	press(t, e, RuneKey('C'))
	press(t, e, keys("there")...)

	assert.True(t, e.IsInsertMode())
	assert.Equal(t, "hello there", b.GetLine(0))
}

// ============================================================================
// Registers: dd, yy, p, P
// ============================================================================

func TestNormal_DeleteLineThenPasteAbove(t *testing.T) {
	e, b := newTestEditor("one", "two", "three")
	b.SetCursorPosition(1, 2)

	press(t, e, keys("dd")...)
	assert.Equal(t, []string{"one", "three"}, b.GetLines())
	assert.Equal(t, Position{Row: 1, Col: 0}, cursorAt(b))

	reg, ok := e.Registers().Default()
	require.True(t, ok)
	assert.Equal(t, Register{Name: DefaultRegister, Content: "two", Linewise: true}, reg)

	press(t, e, RuneKey('P'))
	assert.Equal(t, []string{"one", "two", "three"}, b.GetLines())
	assert.Equal(t, Position{Row: 1, Col: 0}, cursorAt(b))
}

func TestNormal_DeleteOnlyLine(t *testing.T) {
	e, b := newTestEditor("only")

	press(t, e, keys("dd")...)

	assert.Equal(t, []string{""}, b.GetLines())
	assert.True(t, b.IsModified())
}

func TestNormal_YankLineThenPasteBelow(t *testing.T) {
	e, b := newTestEditor("one", "two")

	press(t, e, keys("yy")...)
	assert.Equal(t, []string{"one", "two"}, b.GetLines())
	assert.False(t, b.IsModified())

	press(t, e, RuneKey('p'))
	assert.Equal(t, []string{"one", "one", "two"}, b.GetLines())
	assert.Equal(t, Position{Row: 1, Col: 0}, cursorAt(b))
}

func TestNormal_PasteCharwise(t *testing.T) {
	e, b := newTestEditor("abc")
	require.NoError(t, e.Registers().Store("XY", false))

	press(t, e, RuneKey('p'))
	assert.Equal(t, "aXYbc", b.GetLine(0))

	b.SetCursorPosition(0, 0)
	press(t, e, RuneKey('P'))
	assert.Equal(t, "XYaXYbc", b.GetLine(0))
}

func TestNormal_PasteEmptyRegisterIsNoop(t *testing.T) {
	e, b := newTestEditor("abc")

	press(t, e, RuneKey('p'), RuneKey('P'))

	assert.Equal(t, []string{"abc"}, b.GetLines())
	assert.False(t, b.IsModified())
}

func TestNormal_MixedPrefixRestartsPending(t *testing.T) {
	e, b := newTestEditor("one", "two")

	press(t, e, RuneKey('d'), RuneKey('y'))

	assert.Equal(t, []string{"one", "two"}, b.GetLines())
	assert.Equal(t, "y", e.GetState().Pending)
	_, ok := e.Registers().Default()
	assert.False(t, ok)

	press(t, e, RuneKey('y'))

	assert.Empty(t, e.GetState().Pending)
	reg, ok := e.Registers().Default()
	require.True(t, ok)
	assert.Equal(t, "one", reg.Content)
	assert.True(t, reg.Linewise)
}

func TestNormal_BrokenGoPrefixThenDeleteLine(t *testing.T) {
	e, b := newTestEditor("one", "two", "three")
	b.SetCursorPosition(1, 0)

	press(t, e, keys("gdd")...)

	assert.Equal(t, []string{"one", "three"}, b.GetLines())
}

func TestSyncClipboard(t *testing.T) {
	cb := &fakeClipboard{}
	opts := DefaultOptions()
	opts.SyncClipboard = true
	e := New(cb, opts)
	e.SetBuffer(newTestBuffer("alpha", "beta"))

	press(t, e, keys("yy")...)

	assert.Equal(t, "alpha", cb.text)
}

func TestSyncClipboard_FailureIsSignalled(t *testing.T) {
	cb := &fakeClipboard{err: errors.New("no display")}
	opts := DefaultOptions()
	opts.SyncClipboard = true
	e := New(cb, opts)
	b := newTestBuffer("alpha", "beta")
	e.SetBuffer(b)
	drainSignals(e)

	press(t, e, keys("dd")...)

	assert.Equal(t, []string{"beta"}, b.GetLines())

	var found bool
	for _, s := range drainSignals(e) {
		if sig, ok := s.(ErrorSignal); ok {
			kind, err := sig.Value()
			assert.Equal(t, KindStorage, kind)
			assert.Error(t, err)
			found = true
		}
	}
	assert.True(t, found, "expected an error signal")
}

// ============================================================================
// Exit and errors
// ============================================================================

func TestNormal_CtrlQ(t *testing.T) {
	e, b := newTestEditor("abc")

	assert.True(t, press(t, e, CtrlKey('q')))

	e, b = newTestEditor("abc")
	b.InsertChar('x')
	assert.False(t, press(t, e, CtrlKey('q')))
	assert.False(t, e.GetState().Quit)
}

func TestHandleKey_NoBuffer(t *testing.T) {
	e := New(nil, DefaultOptions())
	e.SetBuffer(nil)

	_, err := e.HandleKey(RuneKey('j'))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNoActiveBuffer)
	kind, _ := KindOf(err)
	assert.Equal(t, KindInternal, kind)
}

func TestSignals(t *testing.T) {
	e, _ := newTestEditor("one", "two")
	drainSignals(e)

	press(t, e, keys("dd")...)
	press(t, e, RuneKey('i'))

	signals := drainSignals(e)
	require.Len(t, signals, 2)

	del, ok := signals[0].(DeleteSignal)
	require.True(t, ok)
	assert.Equal(t, 1, del.Value())

	mode, ok := signals[1].(ModeChangedSignal)
	require.True(t, ok)
	from, to := mode.Value()
	assert.Equal(t, NormalMode, from)
	assert.Equal(t, InsertMode, to)
}

// ============================================================================
// Viewport
// ============================================================================

func TestScrollViewport(t *testing.T) {
	lines := make([]string, 10)
	for i := range lines {
		lines[i] = "line"
	}
	e, b := newTestEditor(lines...)
	e.SetViewportSize(80, 3)

	press(t, e, RuneKey('G'))
	assert.Equal(t, 9, cursorAt(b).Row)
	assert.Equal(t, 7, e.GetState().TopLine)

	press(t, e, RuneKey('k'), RuneKey('k'), RuneKey('k'))
	assert.Equal(t, 6, e.GetState().TopLine)

	press(t, e, keys("gg")...)
	assert.Equal(t, 0, e.GetState().TopLine)
}

func TestDispatchError_KindFromError(t *testing.T) {
	e, _ := newTestEditor("one")
	drainSignals(e)

	e.DispatchError(errors.New("plain failure"))
	e.DispatchError(storageError(errors.New("disk full")))

	var kinds []ErrorKind
	for len(e.GetUpdateSignalChan()) > 0 {
		if sig, ok := (<-e.GetUpdateSignalChan()).(ErrorSignal); ok {
			kind, _ := sig.Value()
			kinds = append(kinds, kind)
		}
	}
	assert.Equal(t, []ErrorKind{KindInternal, KindStorage}, kinds)
}
