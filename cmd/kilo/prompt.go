package main

import "fmt"

type promptKind uint8

const (
	promptSaveAs promptKind = iota
	promptSearch
)

type promptResult uint8

const (
	promptEditing promptResult = iota
	promptConfirmed
	promptCancelled
)

// prompt collects a line of input in the message bar, one key at a time from
// the main loop.
type prompt struct {
	kind   promptKind
	format string
	buf    []byte
}

func newPrompt(kind promptKind, format string) *prompt {
	return &prompt{kind: kind, format: format, buf: make([]byte, 0, 128)}
}

func (p *prompt) message() string {
	return fmt.Sprintf(p.format, p.buf)
}

func (p *prompt) input() string { return string(p.buf) }

// handle applies key to the input line.
func (p *prompt) handle(key int) promptResult {
	switch {
	case key == delKey || key == ctrlKey('h') || key == backspace:
		if len(p.buf) > 0 {
			p.buf = p.buf[:len(p.buf)-1]
		}
	case key == escKey:
		return promptCancelled
	case key == '\r':
		if len(p.buf) > 0 {
			return promptConfirmed
		}
	case isPrintableKey(key):
		p.buf = append(p.buf, byte(key))
	}
	return promptEditing
}
