package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// terminal is the editor's only contact with the tty: raw mode, geometry,
// byte input with a read timeout and frame output.
type terminal struct {
	in       *os.File
	out      *os.File
	orig     *unix.Termios
	raw      bool
	sigwinch chan os.Signal
}

func newTerminal(in, out *os.File) *terminal {
	return &terminal{in: in, out: out}
}

func (t *terminal) isTerminal() bool {
	return term.IsTerminal(int(t.in.Fd()))
}

// enableRawMode switches the input side to raw mode with a 100ms read
// timeout (VMIN=0, VTIME=1), keeping the original settings for
// disableRawMode.
func (t *terminal) enableRawMode() error {
	fd := int(t.in.Fd())
	orig, err := unix.IoctlGetTermios(fd, ioctlReadTermios)
	if err != nil {
		return fmt.Errorf("tcgetattr: %w", err)
	}
	raw := *orig
	raw.Iflag &^= unix.BRKINT | unix.ICRNL | unix.INPCK | unix.ISTRIP | unix.IXON
	raw.Oflag &^= unix.OPOST
	raw.Cflag |= unix.CS8
	raw.Lflag &^= unix.ECHO | unix.ICANON | unix.IEXTEN | unix.ISIG
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 1
	if err := unix.IoctlSetTermios(fd, ioctlWriteTermios, &raw); err != nil {
		return fmt.Errorf("tcsetattr: %w", err)
	}
	t.orig = orig
	t.raw = true
	return nil
}

// disableRawMode restores the settings saved by enableRawMode. It is safe to
// call more than once.
func (t *terminal) disableRawMode() error {
	if !t.raw {
		return nil
	}
	t.raw = false
	if err := unix.IoctlSetTermios(int(t.in.Fd()), ioctlWriteTermios, t.orig); err != nil {
		return fmt.Errorf("tcsetattr: %w", err)
	}
	return nil
}

// readByte reads at most one byte. A raw-mode timeout or an interrupted read
// reports ok=false.
func (t *terminal) readByte() (byte, bool, error) {
	var b [1]byte
	n, err := unix.Read(int(t.in.Fd()), b[:])
	if err != nil {
		if errors.Is(err, unix.EAGAIN) || errors.Is(err, unix.EINTR) {
			return 0, false, nil
		}
		return 0, false, fmt.Errorf("read: %w", err)
	}
	if n == 0 {
		return 0, false, nil
	}
	return b[0], true, nil
}

func (t *terminal) Write(p []byte) (int, error) {
	return t.out.Write(p)
}

func (t *terminal) clearScreen() {
	_, _ = io.WriteString(t.out, "\x1b[2J\x1b[H")
}

// watchResize starts delivering SIGWINCH into a buffered channel that the
// main loop polls with resized.
func (t *terminal) watchResize() {
	t.sigwinch = make(chan os.Signal, 1)
	signal.Notify(t.sigwinch, unix.SIGWINCH)
}

func (t *terminal) stopResize() {
	if t.sigwinch != nil {
		signal.Stop(t.sigwinch)
	}
}

func (t *terminal) resized() bool {
	select {
	case <-t.sigwinch:
		return true
	default:
		return false
	}
}

// windowSize returns the terminal size in rows and columns. When the ioctl
// fails it pushes the cursor to the bottom-right corner and asks the
// terminal where it ended up.
func (t *terminal) windowSize() (int, int, error) {
	cols, rows, err := term.GetSize(int(t.out.Fd()))
	if err == nil && cols > 0 && rows > 0 {
		return rows, cols, nil
	}
	return t.cursorReportSize()
}

func (t *terminal) cursorReportSize() (int, int, error) {
	if _, err := io.WriteString(t.out, "\x1b[999C\x1b[999B\x1b[6n"); err != nil {
		return 0, 0, fmt.Errorf("%w: %w", ErrWindowSize, err)
	}
	var buf []byte
	for misses := 0; len(buf) < 32; {
		b, ok, err := t.readByte()
		if err != nil {
			return 0, 0, fmt.Errorf("%w: %w", ErrWindowSize, err)
		}
		if !ok {
			// up to a second for slow links
			if misses++; misses > 10 {
				break
			}
			continue
		}
		buf = append(buf, b)
		if b == 'R' {
			break
		}
	}
	return parseCursorReport(buf)
}

// parseCursorReport parses a "ESC [ rows ; cols R" cursor position report.
func parseCursorReport(buf []byte) (int, int, error) {
	if len(buf) < 6 || buf[0] != escKey || buf[1] != '[' || buf[len(buf)-1] != 'R' {
		return 0, 0, fmt.Errorf("%w: bad cursor report %q", ErrWindowSize, buf)
	}
	rs, cs, ok := strings.Cut(string(buf[2:len(buf)-1]), ";")
	if !ok {
		return 0, 0, fmt.Errorf("%w: bad cursor report %q", ErrWindowSize, buf)
	}
	rows, err := strconv.Atoi(rs)
	if err != nil || rows < 1 {
		return 0, 0, fmt.Errorf("%w: bad row count %q", ErrWindowSize, rs)
	}
	cols, err := strconv.Atoi(cs)
	if err != nil || cols < 1 {
		return 0, 0, fmt.Errorf("%w: bad column count %q", ErrWindowSize, cs)
	}
	return rows, cols, nil
}
