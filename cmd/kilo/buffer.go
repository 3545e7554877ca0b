package main

import "bytes"

// buffer owns the lines of the file being edited. Every mutation goes
// through its methods so that render and hl stay in step with chars.
type buffer struct {
	rows     []row
	dirty    int
	filename string
	tabStop  int
}

func newBuffer(tabStop int) *buffer {
	if tabStop < 1 {
		tabStop = defaultTabStop
	}
	return &buffer{tabStop: tabStop}
}

func (b *buffer) numLines() int { return len(b.rows) }

func (b *buffer) row(at int) *row {
	if at < 0 || at >= len(b.rows) {
		return nil
	}
	return &b.rows[at]
}

func (b *buffer) lineLen(at int) int {
	if r := b.row(at); r != nil {
		return len(r.chars)
	}
	return 0
}

func (b *buffer) insertLine(at int, s []byte) bool {
	at = min(max(at, 0), len(b.rows))
	b.rows = append(b.rows, row{})
	copy(b.rows[at+1:], b.rows[at:])
	b.rows[at] = newRow(s, b.tabStop)
	b.dirty++
	return true
}

func (b *buffer) deleteLine(at int) bool {
	if at < 0 || at >= len(b.rows) {
		return false
	}
	b.rows = append(b.rows[:at], b.rows[at+1:]...)
	b.dirty++
	return true
}

func (b *buffer) insertChar(line, col int, c byte) bool {
	if line < 0 || line > len(b.rows) {
		return false
	}
	if line == len(b.rows) {
		b.insertLine(len(b.rows), nil)
	}
	r := &b.rows[line]
	r.insertChar(min(max(col, 0), len(r.chars)), c, b.tabStop)
	b.dirty++
	return true
}

// deleteChar removes the byte before col, or joins the line onto the
// previous one when col is 0. col is clamped to the line first. It returns the cursor position after the edit.
func (b *buffer) deleteChar(line, col int) (int, int, bool) {
	if line < 0 || line >= len(b.rows) {
		return line, col, false
	}
	r := &b.rows[line]
	col = min(max(col, 0), len(r.chars))
	if col > 0 {
		if !r.delChar(col-1, b.tabStop) {
			return line, col, false
		}
		b.dirty++
		return line, col - 1, true
	}
	if line == 0 {
		return 0, 0, false
	}
	prev := &b.rows[line-1]
	at := len(prev.chars)
	prev.appendBytes(r.chars, b.tabStop)
	b.deleteLine(line)
	return line - 1, at, true
}

// splitLine breaks the line at col, moving the remainder onto a new line
// directly below it.
func (b *buffer) splitLine(line, col int) bool {
	if line < 0 || line > len(b.rows) {
		return false
	}
	if line == len(b.rows) {
		return b.insertLine(line, nil)
	}
	r := &b.rows[line]
	col = min(max(col, 0), len(r.chars))
	if col == 0 {
		return b.insertLine(line, nil)
	}
	b.insertLine(line+1, r.chars[col:])
	r = &b.rows[line]
	r.truncate(col, b.tabStop)
	return true
}

// text serializes the buffer with every line terminated by '\n'.
func (b *buffer) text() []byte {
	n := 0
	for i := range b.rows {
		n += len(b.rows[i].chars) + 1
	}
	var out bytes.Buffer
	out.Grow(n)
	for i := range b.rows {
		out.Write(b.rows[i].chars)
		out.WriteByte('\n')
	}
	return out.Bytes()
}

// load replaces the contents with lines and marks the buffer clean.
func (b *buffer) load(lines [][]byte) {
	b.rows = make([]row, 0, len(lines))
	for _, ln := range lines {
		b.rows = append(b.rows, newRow(ln, b.tabStop))
	}
	b.dirty = 0
}

func (b *buffer) markSaved() { b.dirty = 0 }

func (b *buffer) setTabStop(n int) {
	if n < 1 || n == b.tabStop {
		return
	}
	b.tabStop = n
	for i := range b.rows {
		b.rows[i].update(n)
	}
}
