package bubble_adapter

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	editor "github.com/ionut-t/modaledit/core"
)

func newTestModel(t *testing.T, content string, options editor.Options) Model {
	t.Helper()
	e := editor.New(nil, options)
	m := NewWithEditor(e, 40, 10)
	m.SetBuffer(editor.NewBufferFromBytes([]byte(content)))
	return m
}

func runeMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// typeKeys sends each rune of s as its own key press.
func typeKeys(t *testing.T, m Model, s string) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, r := range s {
		var next tea.Model
		next, cmd = m.Update(runeMsg(string(r)))
		m = next.(Model)
	}
	return m, cmd
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestConvertBubbleKey(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.KeyMsg
		want editor.KeyEvent
	}{
		{"rune", runeMsg("x"), editor.RuneKey('x')},
		{"alt rune", tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}, Alt: true}, editor.KeyEvent{Rune: 'x', Modifiers: editor.ModAlt}},
		{"enter", tea.KeyMsg{Type: tea.KeyEnter}, editor.SpecialKey(editor.KeyEnter)},
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}, editor.SpecialKey(editor.KeyEscape)},
		{"backspace", tea.KeyMsg{Type: tea.KeyBackspace}, editor.SpecialKey(editor.KeyBackspace)},
		{"tab", tea.KeyMsg{Type: tea.KeyTab}, editor.SpecialKey(editor.KeyTab)},
		{"space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, editor.KeyEvent{Rune: ' ', Key: editor.KeySpace}},
		{"arrow", tea.KeyMsg{Type: tea.KeyLeft}, editor.SpecialKey(editor.KeyLeft)},
		{"page down", tea.KeyMsg{Type: tea.KeyPgDown}, editor.SpecialKey(editor.KeyPageDown)},
		{"ctrl+q", tea.KeyMsg{Type: tea.KeyCtrlQ}, editor.CtrlKey('q')},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, editor.CtrlKey('c')},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, convertBubbleKey(tt.msg))
		})
	}
}

func TestConvertBubbleKeys_SplitsPastedRunes(t *testing.T) {
	events := convertBubbleKeys(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a\nb"), Paste: true})

	require.Len(t, events, 3)
	assert.Equal(t, editor.RuneKey('a'), events[0])
	assert.Equal(t, editor.SpecialKey(editor.KeyEnter), events[1])
	assert.Equal(t, editor.RuneKey('b'), events[2])
}

func TestUpdate_InsertAndEscape(t *testing.T) {
	m := newTestModel(t, "", editor.DefaultOptions())

	m, _ = typeKeys(t, m, "ihello")
	assert.True(t, m.IsInsertMode())
	assert.Contains(t, m.View(), "INSERT")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.True(t, m.IsNormalMode())
	assert.Equal(t, "hello", m.GetCurrentContent())
	assert.True(t, m.HasChanges())
	assert.Contains(t, m.View(), "hello")
	assert.Contains(t, m.View(), "NORMAL")
}

func TestUpdate_QuitReturnsQuitCmd(t *testing.T) {
	m := newTestModel(t, "one\ntwo", editor.DefaultOptions())

	m, _ = typeKeys(t, m, ":q")
	assert.True(t, m.IsCommandMode())
	assert.Contains(t, m.View(), ":q")

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestUpdate_CtrlQQuits(t *testing.T) {
	m := newTestModel(t, "one", editor.DefaultOptions())

	_, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyCtrlQ})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestUpdate_CommandErrorIsShown(t *testing.T) {
	options := editor.DefaultOptions()
	options.StrictCommands = true
	m := newTestModel(t, "one", options)

	m, _ = typeKeys(t, m, ":zz")
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	require.Error(t, m.err)
	assert.ErrorIs(t, m.err, editor.ErrInvalidCommand)
	assert.Contains(t, m.View(), "not an editor command")

	m, _ = update(t, m, clearMsg{})
	assert.NoError(t, m.err)
}

func TestUpdate_IgnoresKeysWhenBlurred(t *testing.T) {
	m := newTestModel(t, "one", editor.DefaultOptions())
	m.Blur()

	m, _ = typeKeys(t, m, "dd")
	assert.Equal(t, "one", m.GetCurrentContent())

	m.Focus()
	m, _ = typeKeys(t, m, "dd")
	assert.Equal(t, "", m.GetCurrentContent())
}

func TestUpdate_WindowSizeResizesEditor(t *testing.T) {
	m := newTestModel(t, "one", editor.DefaultOptions())

	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 20})

	state := m.GetEditor().GetState()
	assert.Equal(t, 18, state.ViewportHeight)
	assert.Equal(t, 60-m.lineNumberWidth(1), state.ViewportWidth)
}

func TestHandleSignal_Yank(t *testing.T) {
	m := newTestModel(t, "one\ntwo", editor.DefaultOptions())

	m, _ = typeKeys(t, m, "yy")

	var yank editor.Signal
	for len(m.GetEditor().GetUpdateSignalChan()) > 0 {
		signal := <-m.GetEditor().GetUpdateSignalChan()
		if _, ok := signal.(editor.YankSignal); ok {
			yank = signal
		}
	}
	require.NotNil(t, yank)

	cmd := m.handleSignal(yank)
	require.NotNil(t, cmd)
	msg := cmd()
	assert.Equal(t, yankMsg{"1 line yanked"}, msg)

	m, _ = update(t, m, msg)
	assert.True(t, m.yanked)
	assert.Contains(t, m.View(), "1 line yanked")
}

func TestHandleSignal_Quit(t *testing.T) {
	m := newTestModel(t, "", editor.DefaultOptions())

	cmd := m.handleSignal(editor.QuitSignal{})
	require.NotNil(t, cmd)
	assert.Equal(t, QuitMsg{}, cmd())

	_, cmd = update(t, m, QuitMsg{})
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestYankMessage(t *testing.T) {
	assert.Equal(t, editor.YankMessage, yankMessage(3, false))
	assert.Equal(t, "1 line yanked", yankMessage(1, true))
	assert.Equal(t, "3 lines yanked", yankMessage(3, true))
}

func TestSaveMsg_DetectsLanguage(t *testing.T) {
	m := newTestModel(t, "package main", editor.DefaultOptions())
	require.Nil(t, m.highlighter)

	m, _ = update(t, m, SaveMsg("/tmp/main.go"))

	assert.Equal(t, "go", m.GetEditor().GetBuffer().Language())
	assert.NotNil(t, m.highlighter)
}
