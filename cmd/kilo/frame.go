package main

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/mattn/go-runewidth"
)

// refreshScreen composes the whole frame into e.frame and hands it to the
// terminal in a single write.
func (e *editor) refreshScreen() error {
	e.scroll()
	b := &e.frame
	b.Reset()
	b.WriteString("\x1b[?25l\x1b[H")
	e.drawRows(b)
	e.drawStatusBar(b)
	e.drawMessageBar(b)
	writeCursorPos(b, e.cy-e.view.rowOff+1, e.rx-e.view.colOff+1)
	b.WriteString("\x1b[?25h")
	_, err := e.out.Write(b.Bytes())
	return err
}

func writeCursorPos(b *bytes.Buffer, row, col int) {
	var num [20]byte
	b.WriteString("\x1b[")
	b.Write(strconv.AppendInt(num[:0], int64(row), 10))
	b.WriteByte(';')
	b.Write(strconv.AppendInt(num[:0], int64(col), 10))
	b.WriteByte('H')
}

func writeColor(b *bytes.Buffer, color int) {
	var num [20]byte
	b.WriteString("\x1b[")
	b.Write(strconv.AppendInt(num[:0], int64(color), 10))
	b.WriteByte('m')
}

func (e *editor) drawRows(b *bytes.Buffer) {
	n := e.buf.numLines()
	for y := 0; y < e.view.rows; y++ {
		fr := y + e.view.rowOff
		if fr >= n {
			if n == 0 && y == e.view.rows/3 {
				e.drawWelcome(b)
			} else {
				b.WriteByte('~')
			}
		} else {
			e.drawLine(b, &e.buf.rows[fr])
		}
		b.WriteString("\x1b[K\r\n")
	}
}

func (e *editor) drawWelcome(b *bytes.Buffer) {
	msg := runewidth.Truncate(fmt.Sprintf("Kilo editor -- version %s", Version), e.view.cols, "")
	padding := (e.view.cols - runewidth.StringWidth(msg)) / 2
	if padding > 0 {
		b.WriteByte('~')
		padding--
	}
	for ; padding > 0; padding-- {
		b.WriteByte(' ')
	}
	b.WriteString(msg)
}

// drawLine writes the visible slice of r, switching colors only where the
// tag changes.
func (e *editor) drawLine(b *bytes.Buffer, r *row) {
	start := min(e.view.colOff, len(r.render))
	end := min(start+e.view.cols, len(r.render))
	current := -1
	for i := start; i < end; i++ {
		c := r.render[i]
		if isControlByte(c) {
			sym := byte('?')
			if c <= 26 {
				sym = '@' + c
			}
			b.WriteString("\x1b[7m")
			b.WriteByte(sym)
			b.WriteString("\x1b[m")
			if current != -1 {
				writeColor(b, current)
			}
			continue
		}
		if h := r.hl[i]; h == hlNormal {
			if current != -1 {
				b.WriteString("\x1b[39m")
				current = -1
			}
		} else if color := syntaxColor(h); color != current {
			current = color
			writeColor(b, color)
		}
		b.WriteByte(c)
	}
	b.WriteString("\x1b[39m")
}

func (e *editor) drawStatusBar(b *bytes.Buffer) {
	cols := e.view.cols
	b.WriteString("\x1b[7m")
	name := "[No Name]"
	if e.buf.filename != "" {
		name = runewidth.Truncate(safeTermString(e.buf.filename), 20, "")
	}
	modified := ""
	if e.buf.dirty > 0 {
		modified = "(modified)"
	}
	left := runewidth.Truncate(fmt.Sprintf("%s - %d lines %s", name, e.buf.numLines(), modified), cols, "")
	right := fmt.Sprintf("%d/%d", e.cy+1, e.buf.numLines())
	b.WriteString(left)
	for w := runewidth.StringWidth(left); w < cols; w++ {
		if cols-w == len(right) {
			b.WriteString(right)
			break
		}
		b.WriteByte(' ')
	}
	b.WriteString("\x1b[m\r\n")
}

func (e *editor) drawMessageBar(b *bytes.Buffer) {
	b.WriteString("\x1b[K")
	e.msgShown = e.messageVisible()
	if e.msgShown {
		b.WriteString(runewidth.Truncate(safeTermString(e.statusmsg), e.view.cols, ""))
	}
}

func safeTermString(s string) string {
	out := []byte(s)
	for i, c := range out {
		if isControlByte(c) {
			out[i] = '?'
		}
	}
	return string(out)
}
