package main

import (
	"errors"
	"io"
	"io/fs"
	"strings"
	"testing"
	"time"
)

type memStore struct {
	files   map[string][]byte
	loadErr error
	saveErr error
}

func newMemStore() *memStore {
	return &memStore{files: map[string][]byte{}}
}

func (m *memStore) Load(path string) ([][]byte, error) {
	if m.loadErr != nil {
		return nil, &opError{Op: "open", Path: path, Err: m.loadErr}
	}
	data, ok := m.files[path]
	if !ok {
		return nil, &opError{Op: "open", Path: path, Err: fs.ErrNotExist}
	}
	var lines [][]byte
	for _, ln := range strings.SplitAfter(string(data), "\n") {
		if ln == "" {
			continue
		}
		lines = append(lines, []byte(strings.TrimSuffix(ln, "\n")))
	}
	return lines, nil
}

func (m *memStore) Save(path string, data []byte) (int, error) {
	if m.saveErr != nil {
		return 0, &opError{Op: "save", Path: path, Err: m.saveErr}
	}
	m.files[path] = append([]byte(nil), data...)
	return len(data), nil
}

func seedEditor(t testing.TB, lines []string, cx, cy int) *editor {
	t.Helper()
	e := newEditor(defaultConfig(), io.Discard, newMemStore(), nil)
	raw := make([][]byte, len(lines))
	for i, ln := range lines {
		raw[i] = []byte(ln)
	}
	e.buf.load(raw)
	e.cx, e.cy = cx, cy
	e.resize(26, 80)
	return e
}

func rowStrings(e *editor) []string {
	out := make([]string, e.buf.numLines())
	for i := range e.buf.rows {
		out[i] = string(e.buf.rows[i].chars)
	}
	return out
}

func typeKeys(e *editor, keys ...int) {
	for _, k := range keys {
		e.processKey(k)
	}
}

func typeString(e *editor, s string) {
	for i := 0; i < len(s); i++ {
		e.processKey(int(s[i]))
	}
}

func TestInsertNewlineAtEndOfLine(t *testing.T) {
	e := seedEditor(t, []string{"abc", "def"}, 3, 0)
	e.processKey('\r')
	got := rowStrings(e)
	want := []string{"abc", "", "def"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("rows = %q, want %q", got, want)
	}
	if e.cy != 1 || e.cx != 0 {
		t.Fatalf("cursor = (%d,%d), want (1,0)", e.cy, e.cx)
	}
}

func TestInsertNewlineMidLine(t *testing.T) {
	e := seedEditor(t, []string{"hello world"}, 5, 0)
	e.processKey('\r')
	if got := rowStrings(e); len(got) != 2 || got[0] != "hello" || got[1] != " world" {
		t.Fatalf("rows = %q", got)
	}
	e.processKey(backspace)
	if got := rowStrings(e); len(got) != 1 || got[0] != "hello world" {
		t.Fatalf("rows after backspace = %q", got)
	}
	if e.cy != 0 || e.cx != 5 {
		t.Fatalf("cursor = (%d,%d), want (0,5)", e.cy, e.cx)
	}
}

func TestTypingPastLastLineAppendsLine(t *testing.T) {
	e := seedEditor(t, nil, 0, 0)
	typeString(e, "hi")
	if got := rowStrings(e); len(got) != 1 || got[0] != "hi" {
		t.Fatalf("rows = %q", got)
	}
	if e.cx != 2 {
		t.Fatalf("cx = %d, want 2", e.cx)
	}
}

func TestDeleteKeyRemovesCharUnderCursor(t *testing.T) {
	e := seedEditor(t, []string{"abc"}, 1, 0)
	e.processKey(delKey)
	if got := rowStrings(e)[0]; got != "ac" {
		t.Fatalf("row = %q, want %q", got, "ac")
	}
	if e.cx != 1 {
		t.Fatalf("cx = %d, want 1", e.cx)
	}
}

func TestMoveCursorWrapsLines(t *testing.T) {
	e := seedEditor(t, []string{"ab", "cde"}, 2, 0)
	e.moveCursor(arrowRight)
	if e.cy != 1 || e.cx != 0 {
		t.Fatalf("right at eol: (%d,%d), want (1,0)", e.cy, e.cx)
	}
	e.moveCursor(arrowLeft)
	if e.cy != 0 || e.cx != 2 {
		t.Fatalf("left at bol: (%d,%d), want (0,2)", e.cy, e.cx)
	}
	e.cx, e.cy = 3, 1
	e.moveCursor(arrowUp)
	if e.cy != 0 || e.cx != 2 {
		t.Fatalf("up onto shorter line: (%d,%d), want (0,2)", e.cy, e.cx)
	}
	e.moveCursor(arrowDown)
	e.moveCursor(arrowDown)
	if e.cy != 2 || e.cx != 0 {
		t.Fatalf("down past last line: (%d,%d), want (2,0)", e.cy, e.cx)
	}
	e.moveCursor(arrowDown)
	if e.cy != 2 {
		t.Fatalf("cursor moved below the virtual last line: %d", e.cy)
	}
}

func TestHomeEndKeys(t *testing.T) {
	e := seedEditor(t, []string{"hello"}, 2, 0)
	e.processKey(endKey)
	if e.cx != 5 {
		t.Fatalf("end: cx = %d, want 5", e.cx)
	}
	e.processKey(homeKey)
	if e.cx != 0 {
		t.Fatalf("home: cx = %d, want 0", e.cx)
	}
}

func TestPageDownMovesAScreen(t *testing.T) {
	lines := make([]string, 100)
	for i := range lines {
		lines[i] = "x"
	}
	e := seedEditor(t, lines, 0, 0)
	e.processKey(pageDown)
	if want := 2*e.view.rows - 1; e.cy != want {
		t.Fatalf("cy = %d, want %d", e.cy, want)
	}
	e.scroll()
	e.processKey(pageUp)
	if want := e.view.rowOff - e.view.rows; e.cy != max(want, 0) {
		t.Fatalf("after page up cy = %d, want %d", e.cy, max(want, 0))
	}
}

func TestQuitGuardCountsDown(t *testing.T) {
	e := seedEditor(t, []string{"a"}, 0, 0)
	e.processKey('x')
	for i := defaultQuitTimes; i > 0; i-- {
		if e.processKey(ctrlKey('q')) {
			t.Fatalf("quit honoured with %d warnings left", i)
		}
		if !strings.Contains(e.statusmsg, "Press Ctrl-Q") || !strings.Contains(e.statusmsg, string(rune('0'+i))) {
			t.Fatalf("warning = %q, want count %d", e.statusmsg, i)
		}
	}
	if !e.processKey(ctrlKey('q')) {
		t.Fatalf("quit not honoured after %d warnings", defaultQuitTimes)
	}
}

func TestQuitGuardResetsOnOtherKey(t *testing.T) {
	e := seedEditor(t, []string{"a"}, 0, 0)
	e.processKey('x')
	e.processKey(ctrlKey('q'))
	e.processKey(ctrlKey('q'))
	e.processKey(arrowLeft)
	if e.quitTimes != defaultQuitTimes {
		t.Fatalf("quitTimes = %d, want reset to %d", e.quitTimes, defaultQuitTimes)
	}
	for i := 0; i < defaultQuitTimes; i++ {
		if e.processKey(ctrlKey('q')) {
			t.Fatalf("quit honoured after reset on attempt %d", i+1)
		}
	}
}

func TestQuitCleanBufferImmediately(t *testing.T) {
	e := seedEditor(t, []string{"a"}, 0, 0)
	if !e.processKey(ctrlKey('q')) {
		t.Fatalf("clean buffer should quit on first Ctrl-Q")
	}
}

func TestSaveNamedBuffer(t *testing.T) {
	e := seedEditor(t, []string{"one", "two"}, 0, 0)
	st := e.store.(*memStore)
	e.buf.filename = "notes.txt"
	e.processKey('x')
	e.processKey(ctrlKey('s'))
	if got := string(st.files["notes.txt"]); got != "xone\ntwo\n" {
		t.Fatalf("saved %q", got)
	}
	if e.buf.dirty != 0 {
		t.Fatalf("dirty = %d after save", e.buf.dirty)
	}
	if e.statusmsg != "9 bytes written to disk" {
		t.Fatalf("status = %q", e.statusmsg)
	}
}

func TestSaveAsPrompt(t *testing.T) {
	e := seedEditor(t, []string{"data"}, 0, 0)
	st := e.store.(*memStore)
	e.processKey(ctrlKey('s'))
	if e.prompt == nil || !strings.HasPrefix(e.statusmsg, "Save as: ") {
		t.Fatalf("expected save-as prompt, status %q", e.statusmsg)
	}
	typeString(e, "out.tx")
	typeKeys(e, 't', backspace, 't', '\r')
	if e.prompt != nil {
		t.Fatalf("prompt still open")
	}
	if e.buf.filename != "out.txt" {
		t.Fatalf("filename = %q", e.buf.filename)
	}
	if string(st.files["out.txt"]) != "data\n" {
		t.Fatalf("saved %q", st.files["out.txt"])
	}
}

func TestSaveAsCancelled(t *testing.T) {
	e := seedEditor(t, []string{"data"}, 0, 0)
	e.processKey('x')
	st := e.store.(*memStore)
	typeKeys(e, ctrlKey('s'), 'a', escKey)
	if e.prompt != nil {
		t.Fatalf("prompt still open")
	}
	if e.statusmsg != "Save aborted" {
		t.Fatalf("status = %q", e.statusmsg)
	}
	if e.buf.filename != "" || len(st.files) != 0 {
		t.Fatalf("cancelled save wrote %v", st.files)
	}
	if e.buf.dirty == 0 {
		t.Fatalf("cancelled save cleared dirty counter")
	}
}

func TestSaveAsEnterOnEmptyInputKeepsPrompt(t *testing.T) {
	e := seedEditor(t, []string{"data"}, 0, 0)
	typeKeys(e, ctrlKey('s'), '\r')
	if e.prompt == nil {
		t.Fatalf("enter with empty input closed the prompt")
	}
}

func TestSaveFailureKeepsBuffer(t *testing.T) {
	e := seedEditor(t, []string{"data"}, 0, 0)
	st := e.store.(*memStore)
	st.saveErr = errors.New("disk full")
	e.buf.filename = "f.txt"
	e.processKey('x')
	dirty := e.buf.dirty
	e.processKey(ctrlKey('s'))
	if !strings.HasPrefix(e.statusmsg, "Can't save! I/O error: disk full") {
		t.Fatalf("status = %q", e.statusmsg)
	}
	if e.buf.dirty != dirty {
		t.Fatalf("dirty = %d, want %d", e.buf.dirty, dirty)
	}
}

func TestSaveAsFailureKeepsNoName(t *testing.T) {
	e := seedEditor(t, []string{"data"}, 0, 0)
	st := e.store.(*memStore)
	st.saveErr = errors.New("read-only file system")
	e.processKey('x')
	typeKeys(e, ctrlKey('s'), 'o', '\r')
	if e.prompt != nil {
		t.Fatalf("prompt still open")
	}
	if e.statusmsg != "Can't save! I/O error: read-only file system" {
		t.Fatalf("status = %q", e.statusmsg)
	}
	if e.buf.filename != "" {
		t.Fatalf("filename = %q after failed save-as", e.buf.filename)
	}
	if e.buf.dirty == 0 {
		t.Fatalf("failed save-as cleared dirty counter")
	}
	e.processKey(ctrlKey('s'))
	if e.prompt == nil {
		t.Fatalf("next save did not ask for a name")
	}
}

func TestOpenLoadsFile(t *testing.T) {
	e := seedEditor(t, nil, 0, 0)
	st := e.store.(*memStore)
	st.files["a.txt"] = []byte("x\ny\n")
	e.open("a.txt")
	if got := rowStrings(e); len(got) != 2 || got[0] != "x" || got[1] != "y" {
		t.Fatalf("rows = %q", got)
	}
	if e.buf.dirty != 0 || e.buf.filename != "a.txt" {
		t.Fatalf("dirty=%d filename=%q", e.buf.dirty, e.buf.filename)
	}
}

func TestOpenMissingFileStartsNamedBuffer(t *testing.T) {
	e := seedEditor(t, nil, 0, 0)
	e.open("new.txt")
	if e.buf.filename != "new.txt" || e.buf.numLines() != 0 {
		t.Fatalf("filename=%q lines=%d", e.buf.filename, e.buf.numLines())
	}
	if !strings.Contains(e.statusmsg, "[New File]") {
		t.Fatalf("status = %q", e.statusmsg)
	}
}

func TestOpenFailureKeepsExistingBuffer(t *testing.T) {
	e := seedEditor(t, []string{"keep"}, 1, 0)
	e.buf.filename = "existing.txt"
	e.store.(*memStore).loadErr = fs.ErrPermission
	e.open("locked.txt")
	if got := rowStrings(e); len(got) != 1 || got[0] != "keep" {
		t.Fatalf("buffer mutated on failed open: %q", got)
	}
	if e.buf.filename != "existing.txt" {
		t.Fatalf("filename changed on failed open: %q", e.buf.filename)
	}
	if !strings.HasPrefix(e.statusmsg, "Can't open locked.txt") {
		t.Fatalf("status = %q", e.statusmsg)
	}
}

func TestMessageExpiry(t *testing.T) {
	e := seedEditor(t, []string{"a"}, 0, 0)
	now := time.Unix(1000, 0)
	e.now = func() time.Time { return now }
	e.setStatus("hello")
	if !e.messageVisible() {
		t.Fatalf("fresh message not visible")
	}
	e.msgShown = true
	now = now.Add(defaultMessageTimeout)
	if e.messageVisible() {
		t.Fatalf("message visible after timeout")
	}
	if !e.messageExpired() {
		t.Fatalf("expired message on screen not reported")
	}
}

type fakeScreen struct {
	resizes []bool
	cleared int
}

func (f *fakeScreen) resized() bool {
	if len(f.resizes) == 0 {
		return false
	}
	r := f.resizes[0]
	f.resizes = f.resizes[1:]
	return r
}

func (f *fakeScreen) windowSize() (int, int, error) { return 10, 40, nil }

func (f *fakeScreen) clearScreen() { f.cleared++ }

func TestLoopEditsUntilQuit(t *testing.T) {
	e := seedEditor(t, []string{"a"}, 0, 0)
	var out strings.Builder
	e.out = &out
	scr := &fakeScreen{resizes: []bool{true}}
	src := &scriptSource{script: ints("xy\r\x11\x11\x11\x11")}
	if err := loop(e, scr, newKeyDecoder(src)); err != nil {
		t.Fatalf("loop: %v", err)
	}
	if got := rowStrings(e); len(got) != 2 || got[0] != "xy" || got[1] != "a" {
		t.Fatalf("rows = %q", got)
	}
	if scr.cleared != 1 {
		t.Fatalf("screen cleared %d times, want 1", scr.cleared)
	}
	if e.view.rows != 8 || e.view.cols != 40 {
		t.Fatalf("viewport not resized: %+v", e.view)
	}
	if !strings.Contains(out.String(), "WARNING!!!") {
		t.Fatalf("quit warning never drawn")
	}
}

func TestLoopStopsOnReadError(t *testing.T) {
	e := seedEditor(t, []string{"a"}, 0, 0)
	boom := errors.New("boom")
	src := &scriptSource{err: boom}
	err := loop(e, &fakeScreen{}, newKeyDecoder(src))
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want %v", err, boom)
	}
}
