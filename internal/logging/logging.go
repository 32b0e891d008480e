// Package logging builds the charmbracelet loggers used by the commands.
package logging

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"gopkg.in/natefinch/lumberjack.v2"
)

// Options configures New.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string

	// Writer is the console sink. Defaults to os.Stderr.
	Writer io.Writer

	// File, if set, receives a copy of every entry and is rotated by size.
	File       string
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int

	// Timestamps adds a time prefix to every line.
	Timestamps bool
}

// NewLogger creates a new [log.Logger] instance with the specified
// [io.Writer], with timestamps and caller reporting enabled.
//
// The writer defaults to [os.Stderr]
func NewLogger(w io.Writer) *log.Logger {
	if w == nil {
		w = os.Stderr
	}
	opts := log.Options{ReportTimestamp: true, ReportCaller: true}
	logger := log.NewWithOptions(w, opts)
	logger.SetStyles(styles())
	return logger
}

// styles are the default styles with tabs in messages left untouched.
func styles() *log.Styles {
	st := log.DefaultStyles()
	st.Message = st.Message.TabWidth(lipgloss.NoTabConversion)
	return st
}

// Transcript returns a child of l that prints messages with no timestamp
// or caller prefix, for lines that must read exactly as written.
func Transcript(l *log.Logger) *log.Logger {
	t := l.With()
	t.SetReportTimestamp(false)
	t.SetReportCaller(false)
	return t
}

// New creates a logger from opts. The returned io.Closer releases the log
// file and must be closed by the caller; it is a no-op without a file.
func New(opts Options) (*log.Logger, io.Closer, error) {
	level := log.InfoLevel
	if opts.Level != "" {
		l, err := log.ParseLevel(opts.Level)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
		}
		level = l
	}

	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}

	var closer io.Closer = nopCloser{}
	if opts.File != "" {
		if err := os.MkdirAll(filepath.Dir(opts.File), 0755); err != nil {
			return nil, nil, err
		}
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    orDefault(opts.MaxSizeMB, 10), // MB
			MaxBackups: orDefault(opts.MaxBackups, 3),
			MaxAge:     orDefault(opts.MaxAgeDays, 28), // days
			Compress:   true,
		}
		w = io.MultiWriter(w, rotator)
		closer = rotator
	}

	logger := log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: opts.Timestamps,
		ReportCaller:    level == log.DebugLevel,
	})
	logger.SetStyles(styles())
	return logger, closer, nil
}

// WithRun returns a child logger tagged with a fresh run id, and the id.
func WithRun(l *log.Logger) (*log.Logger, string) {
	id := uuid.New().String()
	return l.With("run", id), id
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
