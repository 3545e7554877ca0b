package main

import (
	"errors"
	"os"
)

var (
	// ErrIO marks failures reading or writing files. They are reported in the
	// message bar and never end the session.
	ErrIO = errors.New("i/o error")

	// ErrNotTerminal is returned when stdin is not a terminal.
	ErrNotTerminal = errors.New("kilo requires a TTY on stdin")

	// ErrWindowSize is returned when neither the ioctl nor the cursor report
	// yields a usable terminal size.
	ErrWindowSize = errors.New("cannot determine window size")
)

// opError records the operation and path of a failed file operation.
type opError struct {
	Op   string
	Path string
	Err  error
}

func (e *opError) Error() string {
	if e.Path == "" {
		return e.Op + ": " + e.Err.Error()
	}
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *opError) Unwrap() error { return e.Err }

func (e *opError) Is(target error) bool { return target == ErrIO }

// ioErrText returns the bare cause of err for display in the message bar.
func ioErrText(err error) string {
	if err == nil {
		return ""
	}
	var pe *os.PathError
	if errors.As(err, &pe) && pe.Err != nil {
		return pe.Err.Error()
	}
	var oe *opError
	if errors.As(err, &oe) && oe.Err != nil {
		return oe.Err.Error()
	}
	return err.Error()
}
