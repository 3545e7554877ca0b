package main

// viewport is the window of the buffer shown on screen, in display
// coordinates.
type viewport struct {
	rowOff int
	colOff int
	rows   int
	cols   int
}

// scroll moves the offsets the least amount needed for (cy, rx) to be
// visible. Offsets snap to the cursor when it is above or left of the window.
func (v *viewport) scroll(cy, rx int) {
	if cy < v.rowOff {
		v.rowOff = cy
	}
	if cy >= v.rowOff+v.rows {
		v.rowOff = cy - v.rows + 1
	}
	if rx < v.colOff {
		v.colOff = rx
	}
	if rx >= v.colOff+v.cols {
		v.colOff = rx - v.cols + 1
	}
}

// resize sets the text area from the terminal size, keeping two rows for
// the status and message bars.
func (v *viewport) resize(termRows, termCols int) {
	v.rows = max(termRows-2, 1)
	v.cols = max(termCols, 1)
}
