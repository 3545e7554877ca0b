package main

import (
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	"go.uber.org/zap"
)

var errUsage = errors.New("usage: kilo [file]")

func die(t *terminal, err error) {
	_ = t.disableRawMode()
	t.clearScreen()
	fmt.Fprintln(os.Stderr, "kilo:", err)
	os.Exit(1)
}

func main() {
	t := newTerminal(os.Stdin, os.Stdout)
	defer func() {
		if r := recover(); r != nil {
			_ = t.disableRawMode()
			t.clearScreen()
			fmt.Fprintf(os.Stderr, "kilo panic: %v\n", r)
			_, _ = os.Stderr.Write(debug.Stack())
			os.Exit(1)
		}
	}()
	if err := run(t, os.Args[1:]); err != nil {
		die(t, err)
	}
}

func run(t *terminal, args []string) error {
	if len(args) > 0 && args[0] == "--" {
		args = args[1:]
	}
	if len(args) > 1 {
		return errUsage
	}
	cfg := loadConfig(os.Getenv)
	log, closer, err := newLogger(cfg.LogPath)
	if err != nil {
		return err
	}
	defer closer.Close()

	if !t.isTerminal() {
		return ErrNotTerminal
	}
	if err := t.enableRawMode(); err != nil {
		log.Error("raw mode", zap.Error(err))
		return fmt.Errorf("enable raw mode: %w", err)
	}
	defer t.disableRawMode()

	rows, cols, err := t.windowSize()
	if err != nil {
		log.Error("window size", zap.Error(err))
		return fmt.Errorf("get window size: %w", err)
	}
	t.watchResize()
	defer t.stopResize()

	e := newEditor(cfg, t, fileStore{}, log)
	e.resize(rows, cols)
	if len(args) == 1 {
		e.open(args[0])
	}
	e.setStatus("HELP: Ctrl-S = save | Ctrl-Q = quit | Ctrl-F = find")
	return loop(e, t, newKeyDecoder(t))
}

// screen is what the main loop needs from the terminal besides input and
// frame output.
type screen interface {
	resized() bool
	windowSize() (int, int, error)
	clearScreen()
}

// loop redraws after every key, resize or message expiry until quit.
func loop(e *editor, t screen, keys *keyDecoder) error {
	redraw := true
	for {
		if redraw {
			if err := e.refreshScreen(); err != nil {
				e.log.Error("write frame", zap.Error(err))
				return fmt.Errorf("write: %w", err)
			}
		}
		key, ok, err := keys.ReadKey()
		if err != nil {
			e.log.Error("read input", zap.Error(err))
			return fmt.Errorf("read input: %w", err)
		}
		redraw = ok || e.messageExpired()
		if t.resized() {
			if rows, cols, err := t.windowSize(); err == nil {
				e.resize(rows, cols)
				redraw = true
			}
		}
		if !ok {
			continue
		}
		if e.processKey(key) {
			t.clearScreen()
			e.log.Info("quit")
			return nil
		}
	}
}
