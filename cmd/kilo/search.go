package main

import "bytes"

type searchState uint8

const (
	searchIdle searchState = iota
	searchPrompting
	searchConfirmed
	searchCancelled
)

// searcher is the incremental search session. It remembers where the last
// match was, which way to look next and the tags of the line it painted so
// they can be put back untouched.
type searcher struct {
	state     searchState
	lastMatch int
	direction int
	savedLine int
	savedHL   []highlight

	// position before the search started, restored on cancel
	cx, cy         int
	rowOff, colOff int
}

type searchHit struct {
	line int
	cx   int
}

func (s *searcher) begin(cx, cy int, v viewport) {
	s.state = searchPrompting
	s.lastMatch = -1
	s.direction = 1
	s.savedLine = -1
	s.savedHL = s.savedHL[:0]
	s.cx, s.cy = cx, cy
	s.rowOff, s.colOff = v.rowOff, v.colOff
}

// restore lifts the match overlay, if any.
func (s *searcher) restore(b *buffer) {
	if s.savedLine < 0 {
		return
	}
	if r := b.row(s.savedLine); r != nil && len(r.hl) == len(s.savedHL) {
		copy(r.hl, s.savedHL)
	}
	s.savedLine = -1
	s.savedHL = s.savedHL[:0]
}

// step handles one key typed at the search prompt. query is the prompt
// contents after the key was applied and cursorLine is where scanning
// restarts after a reset.
func (s *searcher) step(b *buffer, query []byte, key int, cursorLine int) (searchHit, bool) {
	s.restore(b)
	switch key {
	case '\r':
		s.finish(searchConfirmed)
		return searchHit{}, false
	case escKey:
		s.finish(searchCancelled)
		return searchHit{}, false
	case arrowRight, arrowDown:
		s.direction = 1
	case arrowLeft, arrowUp:
		s.direction = -1
	default:
		s.lastMatch = -1
		s.direction = 1
	}
	if s.lastMatch == -1 {
		s.direction = 1
	}
	n := b.numLines()
	if len(query) == 0 || n == 0 {
		return searchHit{}, false
	}

	current := s.lastMatch
	if current == -1 {
		current = min(max(cursorLine, 0), n) - 1
	}
	for i := 0; i < n; i++ {
		current += s.direction
		if current == -1 {
			current = n - 1
		} else if current == n {
			current = 0
		}
		r := &b.rows[current]
		off := bytes.Index(r.render, query)
		if off < 0 {
			continue
		}
		s.lastMatch = current
		s.savedLine = current
		s.savedHL = append(s.savedHL[:0], r.hl...)
		for j := off; j < off+len(query); j++ {
			r.hl[j] = hlMatch
		}
		return searchHit{line: current, cx: r.rxToCx(off, b.tabStop)}, true
	}
	return searchHit{}, false
}

func (s *searcher) finish(st searchState) {
	s.state = st
	s.lastMatch = -1
	s.direction = 1
}
