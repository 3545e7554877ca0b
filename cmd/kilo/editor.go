package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
)

// editor is the whole session state. Every component gets it, or the part
// it needs, explicitly.
type editor struct {
	cfg   config
	log   *zap.Logger
	store store
	out   io.Writer

	buf    *buffer
	cx, cy int
	rx     int
	view   viewport

	statusmsg  string
	statusTime time.Time
	msgShown   bool
	quitTimes  int

	prompt *prompt
	search searcher

	now   func() time.Time
	frame bytes.Buffer
}

func newEditor(cfg config, out io.Writer, st store, log *zap.Logger) *editor {
	if log == nil {
		log = zap.NewNop()
	}
	return &editor{
		cfg:       cfg,
		log:       log,
		store:     st,
		out:       out,
		buf:       newBuffer(cfg.TabStop),
		quitTimes: cfg.QuitTimes,
		view:      viewport{rows: 1, cols: 1},
		now:       time.Now,
	}
}

func (e *editor) resize(termRows, termCols int) {
	e.view.resize(termRows, termCols)
	e.log.Debug("window size", zap.Int("rows", termRows), zap.Int("cols", termCols))
}

func (e *editor) setStatus(format string, args ...any) {
	e.statusmsg = fmt.Sprintf(format, args...)
	e.statusTime = e.now()
}

func (e *editor) messageVisible() bool {
	return e.statusmsg != "" && e.now().Sub(e.statusTime) < e.cfg.MessageTimeout
}

// messageExpired reports whether the frame on screen still shows a message
// that has since timed out.
func (e *editor) messageExpired() bool {
	return e.msgShown && !e.messageVisible()
}

// scroll clamps the cursor into the buffer and moves the viewport onto it.
func (e *editor) scroll() {
	e.cy = min(max(e.cy, 0), e.buf.numLines())
	e.cx = min(max(e.cx, 0), e.buf.lineLen(e.cy))
	e.rx = 0
	if r := e.buf.row(e.cy); r != nil {
		e.rx = r.cxToRx(e.cx, e.buf.tabStop)
	}
	e.view.scroll(e.cy, e.rx)
}

func (e *editor) open(path string) {
	lines, err := e.store.Load(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			e.log.Warn("open failed", zap.String("path", path), zap.Error(err))
			e.setStatus("Can't open %s: %s", path, ioErrText(err))
			return
		}
		lines = nil
		e.setStatus("\"%s\" [New File]", path)
	}
	e.buf.load(lines)
	e.buf.filename = path
	e.cx, e.cy = 0, 0
	e.view.rowOff, e.view.colOff = 0, 0
	e.log.Info("opened", zap.String("path", path), zap.Int("lines", len(lines)))
}

func (e *editor) save() {
	if e.buf.filename == "" {
		e.prompt = newPrompt(promptSaveAs, "Save as: %s (ESC to cancel)")
		e.setStatus("%s", e.prompt.message())
		return
	}
	e.writeFile()
}

// writeFile saves the buffer under its current name and reports success.
func (e *editor) writeFile() bool {
	n, err := e.store.Save(e.buf.filename, e.buf.text())
	if err != nil {
		e.log.Warn("save failed", zap.String("path", e.buf.filename), zap.Error(err))
		e.setStatus("Can't save! I/O error: %s", ioErrText(err))
		return false
	}
	e.buf.markSaved()
	e.log.Info("saved", zap.String("path", e.buf.filename), zap.Int("bytes", n))
	e.setStatus("%d bytes written to disk", n)
	return true
}

func (e *editor) insertChar(c byte) {
	if e.buf.insertChar(e.cy, e.cx, c) {
		e.cx++
	}
}

func (e *editor) insertNewline() {
	if e.buf.splitLine(e.cy, e.cx) {
		e.cy++
		e.cx = 0
	}
}

func (e *editor) delChar() {
	e.cy, e.cx, _ = e.buf.deleteChar(e.cy, e.cx)
}

func (e *editor) moveCursor(key int) {
	r := e.buf.row(e.cy)
	switch key {
	case arrowLeft:
		if e.cx > 0 {
			e.cx--
		} else if e.cy > 0 {
			e.cy--
			e.cx = e.buf.lineLen(e.cy)
		}
	case arrowRight:
		if r != nil && e.cx < len(r.chars) {
			e.cx++
		} else if r != nil && e.cx == len(r.chars) {
			e.cy++
			e.cx = 0
		}
	case arrowUp:
		if e.cy > 0 {
			e.cy--
		}
	case arrowDown:
		if e.cy < e.buf.numLines() {
			e.cy++
		}
	}
	e.cx = min(e.cx, e.buf.lineLen(e.cy))
}

// processKey dispatches one key and reports whether the editor should quit.
func (e *editor) processKey(key int) bool {
	if e.prompt != nil {
		e.handlePromptKey(key)
		return false
	}
	switch key {
	case '\r':
		e.insertNewline()
	case ctrlKey('q'):
		if e.buf.dirty > 0 && e.quitTimes > 0 {
			e.setStatus("WARNING!!! File has unsaved changes. Press Ctrl-Q %d more times to quit.", e.quitTimes)
			e.quitTimes--
			return false
		}
		return true
	case ctrlKey('s'):
		e.save()
	case ctrlKey('f'):
		e.startSearch()
	case homeKey:
		e.cx = 0
	case endKey:
		e.cx = e.buf.lineLen(e.cy)
	case backspace, ctrlKey('h'), delKey:
		if key == delKey {
			e.moveCursor(arrowRight)
		}
		e.delChar()
	case pageUp, pageDown:
		dir := arrowUp
		if key == pageUp {
			e.cy = e.view.rowOff
		} else {
			dir = arrowDown
			e.cy = min(e.view.rowOff+e.view.rows-1, e.buf.numLines())
		}
		for i := 0; i < e.view.rows; i++ {
			e.moveCursor(dir)
		}
	case arrowUp, arrowDown, arrowLeft, arrowRight:
		e.moveCursor(key)
	case ctrlKey('l'), escKey:
	default:
		if key >= 0 && key <= 0xff {
			e.insertChar(byte(key))
		}
	}
	e.quitTimes = e.cfg.QuitTimes
	return false
}

func (e *editor) startSearch() {
	e.search.begin(e.cx, e.cy, e.view)
	e.prompt = newPrompt(promptSearch, "Search: %s (Use ESC/Arrows/Enter)")
	e.setStatus("%s", e.prompt.message())
}

func (e *editor) handlePromptKey(key int) {
	p := e.prompt
	res := p.handle(key)
	switch p.kind {
	case promptSearch:
		if res == promptEditing && key == '\r' {
			break
		}
		if hit, ok := e.search.step(e.buf, p.buf, key, e.cy); ok {
			e.cy, e.cx = hit.line, hit.cx
			e.view.rowOff = e.buf.numLines()
		}
		switch res {
		case promptCancelled:
			s := &e.search
			e.cx, e.cy = s.cx, s.cy
			e.view.rowOff, e.view.colOff = s.rowOff, s.colOff
			fallthrough
		case promptConfirmed:
			e.search.state = searchIdle
			e.prompt = nil
			e.setStatus("")
			return
		}
	case promptSaveAs:
		switch res {
		case promptCancelled:
			e.prompt = nil
			e.setStatus("Save aborted")
			return
		case promptConfirmed:
			e.prompt = nil
			e.buf.filename = p.input()
			if !e.writeFile() {
				e.buf.filename = ""
			}
			return
		}
	}
	e.setStatus("%s", p.message())
}
