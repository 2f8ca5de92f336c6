// Package logging builds the charmbracelet/log loggers used across the
// application.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
)

// DefaultFile is the log file name used when the terminal is owned by the UI.
const DefaultFile = "blockslide.log"

// New returns a logger writing to w with the given level name and prefix.
func New(w io.Writer, level, prefix string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("logging: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
		Level:           lvl,
	}), nil
}

// NewStderr returns a logger for headless commands such as the SSH server.
func NewStderr(level, prefix string) (*log.Logger, error) {
	return New(os.Stderr, level, prefix)
}

// NewFile opens (appending) a log file under dir and returns a logger for it
// plus the closer for the file. Interactive play logs here so output does not
// corrupt the terminal.
func NewFile(dir, level, prefix string) (*log.Logger, io.Closer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, nil, fmt.Errorf("logging: create dir %s: %w", dir, err)
	}

	p := filepath.Join(dir, DefaultFile)
	f, err := os.OpenFile(p, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("logging: open %s: %w", p, err)
	}

	logger, err := New(f, level, prefix)
	if err != nil {
		f.Close()
		return nil, nil, err
	}
	return logger, f, nil
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.New(io.Discard)
}
