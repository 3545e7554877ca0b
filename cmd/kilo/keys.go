package main

const (
	escKey    = 0x1b
	backspace = 127
)

const (
	arrowLeft = 1000 + iota
	arrowRight
	arrowUp
	arrowDown
	delKey
	homeKey
	endKey
	pageUp
	pageDown
)

func ctrlKey(k byte) int { return int(k & 0x1f) }

func isControlByte(c byte) bool { return c < 0x20 || c == 0x7f }

func isPrintableKey(k int) bool { return k >= 0x20 && k < 0x7f }
