package main

// row is one line of the buffer. render is chars with tabs expanded and hl
// carries one highlight tag per render byte; both are rebuilt by update
// whenever chars changes.
type row struct {
	chars  []byte
	render []byte
	hl     []highlight
}

func newRow(s []byte, tabStop int) row {
	r := row{chars: append([]byte(nil), s...)}
	r.update(tabStop)
	return r
}

func (r *row) update(tabStop int) {
	tabs := 0
	for _, c := range r.chars {
		if c == '\t' {
			tabs++
		}
	}
	n := len(r.chars) + tabs*(tabStop-1)
	if cap(r.render) < n {
		r.render = make([]byte, 0, n)
	}
	r.render = r.render[:0]
	for _, c := range r.chars {
		if c != '\t' {
			r.render = append(r.render, c)
			continue
		}
		r.render = append(r.render, ' ')
		for len(r.render)%tabStop != 0 {
			r.render = append(r.render, ' ')
		}
	}
	if cap(r.hl) < len(r.render) {
		r.hl = make([]highlight, len(r.render))
	} else {
		r.hl = r.hl[:len(r.render)]
	}
	tagNumbers(r.render, r.hl)
}

func (r *row) insertChar(at int, c byte, tabStop int) {
	if at < 0 || at > len(r.chars) {
		at = len(r.chars)
	}
	r.chars = append(r.chars, 0)
	copy(r.chars[at+1:], r.chars[at:])
	r.chars[at] = c
	r.update(tabStop)
}

func (r *row) delChar(at int, tabStop int) bool {
	if at < 0 || at >= len(r.chars) {
		return false
	}
	copy(r.chars[at:], r.chars[at+1:])
	r.chars = r.chars[:len(r.chars)-1]
	r.update(tabStop)
	return true
}

func (r *row) appendBytes(s []byte, tabStop int) {
	r.chars = append(r.chars, s...)
	r.update(tabStop)
}

func (r *row) truncate(at int, tabStop int) {
	r.chars = r.chars[:at]
	r.update(tabStop)
}

// cxToRx maps a character column to its display column.
func (r *row) cxToRx(cx, tabStop int) int {
	rx := 0
	for i := 0; i < cx && i < len(r.chars); i++ {
		if r.chars[i] == '\t' {
			rx += (tabStop - 1) - (rx % tabStop)
		}
		rx++
	}
	return rx
}

// rxToCx maps a display column back to the character column covering it.
// Columns past the end of the line map to len(chars).
func (r *row) rxToCx(rx, tabStop int) int {
	cur := 0
	for cx, c := range r.chars {
		if c == '\t' {
			cur += (tabStop - 1) - (cur % tabStop)
		}
		cur++
		if cur > rx {
			return cx
		}
	}
	return len(r.chars)
}
