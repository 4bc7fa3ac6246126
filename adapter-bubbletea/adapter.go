package bubble_adapter

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/tliron/commonlog"

	"github.com/ionut-t/modaledit/adapter-bubbletea/highlighter"
	editor "github.com/ionut-t/modaledit/core"
)

var log = commonlog.GetLogger("modaledit.adapter")

type Theme struct {
	NormalModeStyle        lipgloss.Style
	InsertModeStyle        lipgloss.Style
	VisualModeStyle        lipgloss.Style
	CommandModeStyle       lipgloss.Style
	StatusLineStyle        lipgloss.Style
	CommandLineStyle       lipgloss.Style
	MessageStyle           lipgloss.Style
	LineNumberStyle        lipgloss.Style
	CurrentLineNumberStyle lipgloss.Style
	SelectionStyle         lipgloss.Style
	ErrorStyle             lipgloss.Style
	HighlightYankStyle     lipgloss.Style
}

var DefaultTheme = Theme{
	NormalModeStyle:        lipgloss.NewStyle().Background(lipgloss.Color("62")).Foreground(lipgloss.Color("255")),
	InsertModeStyle:        lipgloss.NewStyle().Background(lipgloss.Color("26")).Foreground(lipgloss.Color("255")),
	VisualModeStyle:        lipgloss.NewStyle().Background(lipgloss.Color("127")).Foreground(lipgloss.Color("255")),
	CommandModeStyle:       lipgloss.NewStyle().Background(lipgloss.Color("208")).Foreground(lipgloss.Color("255")),
	CommandLineStyle:       lipgloss.NewStyle().Background(lipgloss.Color("235")).Foreground(lipgloss.Color("255")),
	StatusLineStyle:        lipgloss.NewStyle().Background(lipgloss.Color("236")).Foreground(lipgloss.Color("255")),
	MessageStyle:           lipgloss.NewStyle().Foreground(lipgloss.Color("34")),
	ErrorStyle:             lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	LineNumberStyle:        lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Align(lipgloss.Right),
	CurrentLineNumberStyle: lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Align(lipgloss.Right),
	SelectionStyle:         lipgloss.NewStyle().Background(lipgloss.Color("237")),
	HighlightYankStyle:     lipgloss.NewStyle().Background(lipgloss.Color("220")).Foreground(lipgloss.Color("0")).Bold(true),
}

// Model is a bubbletea model driving one editor session.
type Model struct {
	editor             editor.Editor
	viewport           viewport.Model
	highlighter        *highlighter.Highlighter
	syntaxTheme        string
	width              int
	height             int
	leftCol            int    // first rune shown on the cursor line
	renderedContent    string // buffer content the highlighter cache was built for
	showLineNumbers    bool
	relativeNumbers    bool
	showTildeIndicator bool
	showStatusLine     bool
	theme              Theme
	StatusLineFunc     func() string
	err                error
	message            string
	yanked             bool
	isFocused          bool
}

type messageMsg string

type errMsg struct{ err error }

type SaveMsg string

type QuitMsg struct{}

type clearMsg struct{}

type yankMsg struct {
	message string
}

type clearYankMsg struct{}

// signalMsg carries one signal read from the editor's update channel.
type signalMsg struct {
	signal editor.Signal
}

func (m *Model) dispatchClearMsg() tea.Cmd {
	return tea.Tick(time.Second*3, func(t time.Time) tea.Msg {
		return clearMsg{}
	})
}

func (m *Model) dispatchClearYankMsg() tea.Cmd {
	return tea.Tick(time.Millisecond*150, func(t time.Time) tea.Msg {
		return clearYankMsg{}
	})
}

type atottoClipboard struct{}

func (c *atottoClipboard) Write(text string) error {
	if err := clipboard.WriteAll(text); err != nil {
		log.Warning("clipboard write failed", "error", err)
		return err
	}
	return nil
}

func (c *atottoClipboard) Read() (string, error) {
	return clipboard.ReadAll()
}

// New creates a focused model around a fresh editor backed by the system clipboard.
func New(width, height int, options editor.Options) Model {
	var cb editor.Clipboard
	if !clipboard.Unsupported {
		cb = &atottoClipboard{}
	}
	return NewWithEditor(editor.New(cb, options), width, height)
}

// NewWithEditor wraps an existing editor.
func NewWithEditor(e editor.Editor, width, height int) Model {
	m := Model{
		editor:          e,
		viewport:        viewport.New(width, max(height-2, 1)),
		syntaxTheme:     "dracula",
		showLineNumbers: true,
		showStatusLine:  true,
		theme:           DefaultTheme,
		isFocused:       true,
	}
	m.SetSize(width, height)
	return m
}

// SetSize resizes the text area, reserving two rows for the status and command lines.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = max(height-2, 1)
	m.viewport.YOffset = 0

	gutter := 0
	if buffer := m.editor.GetBuffer(); buffer != nil {
		gutter = m.lineNumberWidth(buffer.LineCount())
	}
	m.editor.SetViewportSize(max(width-gutter, 1), m.viewport.Height)
	m.renderVisibleSlice()
}

// SetBuffer installs buffer in the editor and prepares highlighting for its language.
func (m *Model) SetBuffer(buffer editor.Buffer) {
	m.editor.SetBuffer(buffer)
	m.leftCol = 0
	m.resetHighlighter()
	m.renderVisibleSlice()
}

// SetContent replaces the buffer content.
func (m *Model) SetContent(content []byte) {
	m.editor.SetContent(content)
	m.resetHighlighter()
	m.renderVisibleSlice()
}

// WithTheme allows setting a custom theme for the editor.
func (m *Model) WithTheme(theme Theme) {
	m.theme = theme
}

// SetSyntaxTheme selects the chroma style used for highlighting.
func (m *Model) SetSyntaxTheme(theme string) {
	m.syntaxTheme = theme
	m.resetHighlighter()
}

func (m *Model) resetHighlighter() {
	m.highlighter = nil
	m.renderedContent = ""
	buffer := m.editor.GetBuffer()
	if buffer == nil {
		return
	}
	language := buffer.Language()
	if language == "" || language == highlighter.PlainText {
		return
	}
	m.highlighter = highlighter.New(language, m.syntaxTheme)
}

// HideLineNumbers controls whether to show line numbers in the viewport.
func (m *Model) HideLineNumbers(hide bool) {
	m.showLineNumbers = !hide
}

// ShowRelativeLineNumbers numbers lines by their distance from the cursor line.
// It has no effect while line numbers are hidden.
func (m *Model) ShowRelativeLineNumbers(show bool) {
	m.relativeNumbers = show
}

// ShowTildeIndicator marks rows past the end of the buffer with '~'.
func (m *Model) ShowTildeIndicator(show bool) {
	m.showTildeIndicator = show
}

// HideStatusLine controls whether to show the status line at the bottom of the viewport.
func (m *Model) HideStatusLine(hide bool) {
	m.showStatusLine = !hide
}

// GetCurrentContent returns the unsaved content of the editor buffer.
func (m *Model) GetCurrentContent() string {
	if buffer := m.editor.GetBuffer(); buffer != nil {
		return buffer.GetCurrentContent()
	}
	return ""
}

// HasChanges checks if the editor has unsaved changes
func (m *Model) HasChanges() bool {
	buffer := m.editor.GetBuffer()
	return buffer != nil && buffer.IsModified()
}

// GetEditor returns the underlying editor instance
func (m *Model) GetEditor() editor.Editor {
	return m.editor
}

func (m *Model) Focus() {
	m.isFocused = true
}

func (m *Model) Blur() {
	m.isFocused = false
}

func (m *Model) IsFocused() bool {
	return m.isFocused
}

func (m *Model) IsNormalMode() bool     { return m.editor.IsNormalMode() }
func (m *Model) IsInsertMode() bool     { return m.editor.IsInsertMode() }
func (m *Model) IsVisualMode() bool     { return m.editor.IsVisualMode() }
func (m *Model) IsVisualLineMode() bool { return m.editor.IsVisualLineMode() }
func (m *Model) IsCommandMode() bool    { return m.editor.IsCommandMode() }

func (m Model) Init() tea.Cmd {
	return m.listenForEditorUpdate()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.SetSize(msg.Width, msg.Height)

	case tea.KeyMsg:
		if !m.IsFocused() {
			break
		}

		for _, keyEvent := range convertBubbleKeys(msg) {
			exit, err := m.editor.HandleKey(keyEvent)
			if err != nil {
				log.Debug("key failed", "key", keyEvent.String(), "error", err)
				m.message = ""
				m.err = err
				cmds = append(cmds, m.dispatchClearMsg())
			}
			if exit {
				return m, tea.Quit
			}
		}

	case signalMsg:
		cmds = append(cmds, m.handleSignal(msg.signal), m.listenForEditorUpdate())

	case messageMsg:
		m.message = string(msg)
		m.err = nil
		cmds = append(cmds, m.dispatchClearMsg())

	case errMsg:
		m.message = ""
		m.err = msg.err
		cmds = append(cmds, m.dispatchClearMsg())

	case yankMsg:
		m.message = msg.message
		m.err = nil
		m.yanked = true
		cmds = append(cmds, m.dispatchClearMsg(), m.dispatchClearYankMsg())

	case SaveMsg:
		m.detectLanguage(string(msg))

	case clearMsg:
		m.message = ""
		m.err = nil

	case clearYankMsg:
		m.yanked = false

	case QuitMsg:
		return m, tea.Quit
	}

	m.renderVisibleSlice()
	return m, tea.Batch(cmds...)
}

// handleSignal turns an editor signal into the follow-up message for Update.
func (m *Model) handleSignal(signal editor.Signal) tea.Cmd {
	var msg tea.Msg

	switch signal := signal.(type) {
	case editor.MessageSignal:
		_, message := signal.Value()
		msg = messageMsg(message)

	case editor.ErrorSignal:
		_, err := signal.Value()
		msg = errMsg{err}

	case editor.YankSignal:
		msg = yankMsg{yankMessage(signal.Value())}

	case editor.DeleteSignal:
		if lines := signal.Value(); lines > 1 {
			msg = messageMsg(fmt.Sprintf("%d fewer lines", lines))
		}

	case editor.PasteSignal:
		if lines := signal.Value(); lines > 1 {
			msg = messageMsg(fmt.Sprintf("%d more lines", lines))
		}

	case editor.SaveSignal:
		msg = SaveMsg(signal.Value())

	case editor.EnterCommandModeSignal:
		msg = messageMsg("")

	case editor.QuitSignal:
		msg = QuitMsg{}
	}

	if msg == nil {
		return nil
	}
	return func() tea.Msg { return msg }
}

func yankMessage(totalLines int, linewise bool) string {
	switch {
	case !linewise:
		return editor.YankMessage
	case totalLines == 1:
		return "1 line yanked"
	default:
		return fmt.Sprintf("%d lines yanked", totalLines)
	}
}

// detectLanguage classifies a buffer that was saved under a new name.
func (m *Model) detectLanguage(path string) {
	buffer := m.editor.GetBuffer()
	if buffer == nil || path == "" {
		return
	}
	if language := buffer.Language(); language != "" && language != highlighter.PlainText {
		return
	}
	buffer.SetLanguage(highlighter.Detect(path, []byte(buffer.GetCurrentContent())))
	m.resetHighlighter()
}

func (m Model) View() string {
	state := m.editor.GetState()

	content := m.viewport.View()

	var commandLine string
	switch {
	case m.err != nil:
		commandLine = m.theme.ErrorStyle.Render(m.err.Error())
	case state.Mode == editor.CommandMode:
		commandLine = state.CommandLine
	case m.message != "":
		commandLine = m.theme.MessageStyle.Render(m.message)
	}

	paddingWidth := m.width - lipgloss.Width(commandLine)
	if paddingWidth > 0 {
		commandLine += m.theme.CommandLineStyle.Render(strings.Repeat(" ", paddingWidth))
	}

	if !m.showStatusLine {
		return lipgloss.JoinVertical(lipgloss.Left, content, commandLine)
	}

	statusLine := m.getStatusLine()
	paddingWidth = m.width - lipgloss.Width(statusLine)
	if paddingWidth > 0 {
		statusLine += m.theme.StatusLineStyle.Render(strings.Repeat(" ", paddingWidth))
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		content,
		statusLine,
		commandLine,
	)
}

func (m *Model) getStatusLine() string {
	if m.StatusLineFunc != nil {
		return m.StatusLineFunc()
	}

	state := m.editor.GetState()

	var statusLine string
	switch state.Mode {
	case editor.NormalMode:
		statusLine = m.theme.NormalModeStyle.Render(" NORMAL ")
	case editor.InsertMode:
		statusLine = m.theme.InsertModeStyle.Render(" INSERT ")
	case editor.VisualMode:
		statusLine = m.theme.VisualModeStyle.Render(" VISUAL ")
	case editor.VisualLineMode:
		statusLine = m.theme.VisualModeStyle.Render(" VISUAL LINE ")
	case editor.CommandMode:
		statusLine = m.theme.CommandModeStyle.Render(" COMMAND ")
	}

	buffer := m.editor.GetBuffer()
	if buffer == nil {
		return statusLine
	}

	name := "[No Name]"
	if path := buffer.FilePath(); path != "" {
		name = filepath.Base(path)
	}
	if buffer.IsModified() {
		name += " [+]"
	}

	cursor := buffer.GetCursor()
	cursorInfo := fmt.Sprintf("%s  %d/%d ", state.Pending, cursor.Position.Row+1, cursor.Position.Col+1)
	name = " " + name

	width := m.width - (lipgloss.Width(cursorInfo) + lipgloss.Width(statusLine) + lipgloss.Width(name))
	gap := strings.Repeat(" ", max(0, width))

	statusLine += m.theme.StatusLineStyle.Render(name + gap + cursorInfo)

	return statusLine
}

// listenForEditorUpdate waits for the next editor signal. Update re-arms it
// after each one so exactly one listener is pending.
func (m *Model) listenForEditorUpdate() tea.Cmd {
	signals := m.editor.GetUpdateSignalChan()
	return func() tea.Msg {
		return signalMsg{<-signals}
	}
}

// convertBubbleKeys splits pasted or batched runes into one event per rune.
func convertBubbleKeys(msg tea.KeyMsg) []editor.KeyEvent {
	if msg.Type == tea.KeyRunes && len(msg.Runes) > 1 {
		events := make([]editor.KeyEvent, 0, len(msg.Runes))
		for _, r := range msg.Runes {
			key := editor.KeyEvent{Rune: r}
			switch r {
			case '\n', '\r':
				key = editor.SpecialKey(editor.KeyEnter)
			case '\t':
				key = editor.SpecialKey(editor.KeyTab)
			}
			events = append(events, key)
		}
		return events
	}
	return []editor.KeyEvent{convertBubbleKey(msg)}
}

// Convert Bubbletea key to editor.Key
func convertBubbleKey(msg tea.KeyMsg) editor.KeyEvent {
	key := editor.KeyEvent{}

	if len(msg.Runes) > 0 {
		key.Rune = msg.Runes[0]
	}

	if msg.Alt {
		key.Modifiers |= editor.ModAlt
	}

	switch msg.Type {
	case tea.KeyRunes:
	case tea.KeyEnter:
		key.Key = editor.KeyEnter
	case tea.KeySpace:
		key.Key = editor.KeySpace
		key.Rune = ' '
	case tea.KeyEsc:
		key.Key = editor.KeyEscape
	case tea.KeyBackspace:
		key.Key = editor.KeyBackspace
	case tea.KeyTab:
		key.Key = editor.KeyTab
	case tea.KeyUp:
		key.Key = editor.KeyUp
	case tea.KeyDown:
		key.Key = editor.KeyDown
	case tea.KeyLeft:
		key.Key = editor.KeyLeft
	case tea.KeyRight:
		key.Key = editor.KeyRight
	case tea.KeyHome:
		key.Key = editor.KeyHome
	case tea.KeyEnd:
		key.Key = editor.KeyEnd
	case tea.KeyDelete:
		key.Key = editor.KeyDelete
	case tea.KeyInsert:
		key.Key = editor.KeyInsert
	case tea.KeyPgUp:
		key.Key = editor.KeyPageUp
	case tea.KeyPgDown:
		key.Key = editor.KeyPageDown
	default:
		if msg.Type >= tea.KeyCtrlA && msg.Type <= tea.KeyCtrlZ {
			key.Rune = 'a' + rune(msg.Type-tea.KeyCtrlA)
			key.Modifiers |= editor.ModCtrl
			break
		}
		log.Debug("unmapped key", "key", msg.String())
	}

	return key
}
