// Package logging builds the leveled console and file loggers.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"todoctl/internal/config"
)

// Prefix is prepended to every log line.
const Prefix = "todoctl"

// New returns a logger writing to w at the level configured in cfg.
// Debug in cfg forces debug level.
func New(w io.Writer, cfg *config.Config) *log.Logger {
	level := log.WarnLevel
	if cfg != nil {
		if l, err := log.ParseLevel(cfg.LogLevel); err == nil {
			level = l
		}
		if cfg.Debug {
			level = log.DebugLevel
		}
	}
	return log.NewWithOptions(w, log.Options{
		Level:  level,
		Prefix: Prefix,
	})
}

// Redirectable is implemented by components whose logger can be swapped
// after construction, e.g. a store handed to the terminal UI.
type Redirectable interface {
	SetLogger(*log.Logger)
}

// Redirect points target at l when target supports it, and reports whether
// it did.
func Redirect(target any, l *log.Logger) bool {
	r, ok := target.(Redirectable)
	if ok {
		r.SetLogger(l)
	}
	return ok
}

// Discard returns a logger that drops everything.
func Discard() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}

// OpenFile opens cfg.LogFile for appending and returns a timestamped logger
// on it. The caller closes the returned file.
func OpenFile(cfg *config.Config) (*log.Logger, *os.File, error) {
	if err := cfg.EnsureDir(); err != nil {
		return nil, nil, fmt.Errorf("create config dir: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.LogFile), 0700); err != nil {
		return nil, nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := New(f, cfg)
	logger.SetReportTimestamp(true)
	logger.SetFormatter(log.LogfmtFormatter)
	return logger, f, nil
}
