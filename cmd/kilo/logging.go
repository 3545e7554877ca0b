package main

import (
	"io"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// newLogger returns a debug logger. The terminal owns stdout and stderr while
// the editor runs, so records only go to a file when one is configured.
func newLogger(path string) (*zap.Logger, io.Closer, error) {
	if path == "" {
		return zap.NewNop(), nopCloser{}, nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, nil, &opError{Op: "open log", Path: path, Err: err}
	}
	enc := zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	core := zapcore.NewCore(enc, zapcore.AddSync(f), zapcore.DebugLevel)
	log := zap.New(core).With(zap.Int("pid", os.Getpid()))
	return log, logCloser{log: log, f: f}, nil
}

// logCloser flushes the logger before closing its file.
type logCloser struct {
	log *zap.Logger
	f   *os.File
}

func (c logCloser) Close() error {
	_ = c.log.Sync()
	return c.f.Close()
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
