package core

type Signal any

type YankSignal struct {
	totalLines int
	linewise   bool
}

func (y YankSignal) Value() (totalLines int, linewise bool) {
	return y.totalLines, y.linewise
}

type PasteSignal struct {
	totalLines int
}

func (p PasteSignal) Value() int {
	return p.totalLines
}

type DeleteSignal struct {
	totalLines int
}

func (d DeleteSignal) Value() int {
	return d.totalLines
}

type MessageSignal struct {
	id    string
	value string
}

func (m MessageSignal) Value() (id, message string) {
	return m.id, m.value
}

type SaveSignal struct {
	path string
}

func (s SaveSignal) Value() string {
	return s.path
}

type QuitSignal struct{}

type ErrorSignal struct {
	kind ErrorKind
	err  error
}

func (e ErrorSignal) Value() (kind ErrorKind, err error) {
	return e.kind, e.err
}

type EnterCommandModeSignal struct{}

type ModeChangedSignal struct {
	from, to Mode
}

func (m ModeChangedSignal) Value() (from, to Mode) {
	return m.from, m.to
}

// DispatchSignal never blocks; signals are dropped when nobody drains the channel.
func (e *editor) DispatchSignal(signal Signal) {
	select {
	case e.updateSignal <- signal:
	default:
		log.Debug("channel is full, dropping signal", "signal", signal)
	}
}
