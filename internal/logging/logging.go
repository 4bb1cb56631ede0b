// Package logging configures the process-wide zerolog logger.
package logging

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

// New returns a console logger on stderr. Verbose runs log at debug level,
// everything else at info.
func New(verbose bool) zerolog.Logger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	out := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

// NewWithFile returns a logger that writes to stderr and appends to the log
// file at path. The returned file is owned by the caller and must be closed
// when logging is finished.
func NewWithFile(verbose bool, path string) (zerolog.Logger, *os.File, error) {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	console := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	}
	multi := zerolog.MultiLevelWriter(console, f)
	return zerolog.New(multi).Level(level).With().Timestamp().Logger(), f, nil
}
