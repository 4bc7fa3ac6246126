package core

import (
	"errors"
)

var (
	ErrNoFilePath           = errors.New("no file path set for buffer")
	ErrInvalidPosition      = errors.New("invalid position")
	ErrNoActiveBuffer       = errors.New("no active buffer")
	ErrInvalidMode          = errors.New("invalid mode")
	ErrInvalidCommand       = errors.New("not an editor command")
	ErrClipboardUnavailable = errors.New("clipboard unavailable")
)

// ErrorKind classifies errors returned by the editor core.
type ErrorKind int

const (
	KindStorage  ErrorKind = iota // read/write failure against persistence
	KindBuffer                    // invalid buffer index or save without a path
	KindInternal                  // invariant violation
	KindCommand                   // rejected ex command (strict policy only)
)

func (k ErrorKind) String() string {
	switch k {
	case KindStorage:
		return "storage"
	case KindBuffer:
		return "buffer"
	case KindInternal:
		return "internal"
	case KindCommand:
		return "command"
	default:
		return "unknown"
	}
}

type Error struct {
	kind ErrorKind
	err  error
}

func (e *Error) Error() string {
	return e.kind.String() + " error: " + e.err.Error()
}

func (e *Error) Unwrap() error {
	return e.err
}

// Kind reports the error class.
func (e *Error) Kind() ErrorKind {
	return e.kind
}

func storageError(err error) *Error  { return &Error{kind: KindStorage, err: err} }
func bufferError(err error) *Error   { return &Error{kind: KindBuffer, err: err} }
func internalError(err error) *Error { return &Error{kind: KindInternal, err: err} }
func commandError(err error) *Error  { return &Error{kind: KindCommand, err: err} }

// KindOf returns the kind of err if it carries one.
func KindOf(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.kind, true
	}
	return 0, false
}

func (e *editor) DispatchError(err error) {
	kind, ok := KindOf(err)
	if !ok {
		kind = KindInternal
	}
	select {
	case e.updateSignal <- ErrorSignal{kind: kind, err: err}:
	default:
		log.Warning("channel is full, unable to send error signal", "error", err)
	}
}
