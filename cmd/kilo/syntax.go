package main

import "bytes"

type highlight uint8

const (
	hlNormal highlight = iota
	hlNumber
	hlMatch
)

var separators = []byte(",.()+-/*=~%<>[];")

func isSeparator(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r', 0:
		return true
	}
	return bytes.IndexByte(separators, c) >= 0
}

func isDigitByte(c byte) bool { return c >= '0' && c <= '9' }

// tagNumbers overwrites hl with the tags for render. A digit continues or
// starts a number after a separator or another numeric byte; a '.' only
// continues one.
func tagNumbers(render []byte, hl []highlight) {
	prevSep := true
	for i, c := range render {
		prevHL := hlNormal
		if i > 0 {
			prevHL = hl[i-1]
		}
		if (isDigitByte(c) && (prevSep || prevHL == hlNumber)) ||
			(c == '.' && prevHL == hlNumber) {
			hl[i] = hlNumber
			prevSep = false
			continue
		}
		hl[i] = hlNormal
		prevSep = isSeparator(c)
	}
}

// syntaxColor returns the SGR foreground code for a tag.
func syntaxColor(h highlight) int {
	switch h {
	case hlNumber:
		return 31
	case hlMatch:
		return 34
	default:
		return 37
	}
}
