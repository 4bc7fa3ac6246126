package core

import "strings"

// Options are the editor settings consumed by the core.
type Options struct {
	TabWidth       int  // spaces per indent when InsertSpaces is set
	InsertSpaces   bool // Tab inserts spaces instead of '\t'
	StrictCommands bool // unknown ex commands return an error instead of a message
	SyncClipboard  bool // mirror yanks and deletes into the '+' register
}

func DefaultOptions() Options {
	return Options{
		TabWidth:     4,
		InsertSpaces: true,
	}
}

// IndentString is what the Tab key inserts in insert mode.
func (o Options) IndentString() string {
	if !o.InsertSpaces {
		return "\t"
	}
	width := o.TabWidth
	if width <= 0 {
		width = DefaultOptions().TabWidth
	}
	return strings.Repeat(" ", width)
}
