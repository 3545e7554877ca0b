package main

import (
	"strconv"
	"time"
)

var Version = "0.0.1"

const (
	defaultTabStop        = 8
	defaultQuitTimes      = 3
	defaultMessageTimeout = 5 * time.Second
)

// config holds the editor's built-in settings. There is no config file;
// a couple of environment variables may override the defaults.
type config struct {
	TabStop        int
	QuitTimes      int
	MessageTimeout time.Duration
	LogPath        string
}

func defaultConfig() config {
	return config{
		TabStop:        defaultTabStop,
		QuitTimes:      defaultQuitTimes,
		MessageTimeout: defaultMessageTimeout,
	}
}

// loadConfig applies KILO_TABSTOP and KILO_LOG on top of the defaults.
// Invalid values are ignored.
func loadConfig(getenv func(string) string) config {
	cfg := defaultConfig()
	if v := getenv("KILO_TABSTOP"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 32 {
			cfg.TabStop = n
		}
	}
	cfg.LogPath = getenv("KILO_LOG")
	return cfg
}
