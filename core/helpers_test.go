package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

// memStorage is an in-memory Storage.
type memStorage struct {
	files    map[string][]byte
	readErr  error
	writeErr error
}

func newMemStorage() *memStorage {
	return &memStorage{files: make(map[string][]byte)}
}

func (s *memStorage) ReadFile(path string) ([]byte, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	data, ok := s.files[path]
	if !ok {
		return nil, errors.New("not found")
	}
	return data, nil
}

func (s *memStorage) WriteFile(path string, data []byte) error {
	if s.writeErr != nil {
		return s.writeErr
	}
	s.files[path] = append([]byte(nil), data...)
	return nil
}

func (s *memStorage) Exists(path string) (bool, error) {
	_, ok := s.files[path]
	return ok, nil
}

// fakeClipboard records writes and serves text on reads.
type fakeClipboard struct {
	text string
	err  error
}

func (c *fakeClipboard) Write(text string) error {
	if c.err != nil {
		return c.err
	}
	c.text = text
	return nil
}

func (c *fakeClipboard) Read() (string, error) {
	return c.text, c.err
}

// newTestBuffer builds an unmodified buffer holding exactly lines.
func newTestBuffer(lines ...string) *textBuffer {
	b := newTextBuffer(WithStorage(newMemStorage()))
	if len(lines) > 0 {
		b.lines = make([][]rune, len(lines))
		for i, line := range lines {
			b.lines[i] = []rune(line)
		}
	}
	return b
}

func newTestEditor(lines ...string) (Editor, Buffer) {
	e := New(nil, DefaultOptions())
	b := newTestBuffer(lines...)
	e.SetBuffer(b)
	return e, b
}

var (
	escKey   = SpecialKey(KeyEscape)
	enterKey = SpecialKey(KeyEnter)
	bsKey    = SpecialKey(KeyBackspace)
)

// keys turns a string into plain character events.
func keys(s string) []KeyEvent {
	events := make([]KeyEvent, 0, len(s))
	for _, r := range s {
		events = append(events, RuneKey(r))
	}
	return events
}

// press feeds events in order, failing on any error, and returns the exit
// flag reported for the last one.
func press(t *testing.T, e Editor, events ...KeyEvent) bool {
	t.Helper()
	var exit bool
	for _, k := range events {
		var err error
		exit, err = e.HandleKey(k)
		require.NoError(t, err, "key %s", k)
	}
	return exit
}

// drainSignals empties the update channel without blocking.
func drainSignals(e Editor) []Signal {
	var signals []Signal
	ch := e.GetUpdateSignalChan()
	for {
		select {
		case s := <-ch:
			signals = append(signals, s)
		default:
			return signals
		}
	}
}

func cursorAt(b Buffer) Position {
	return b.GetCursor().Position
}
