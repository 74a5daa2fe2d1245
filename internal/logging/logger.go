package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime/debug"
)

// DefaultFile is the log file used when none is configured.
const DefaultFile = "CodeWise.log"

// Logger records warnings and errors. Logging never affects control flow.
type Logger interface {
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, err error, args ...any)
	ErrorTrace(msg string, err error, args ...any)
}

// SLogger is an adapter around slog.Logger implementing Logger.
type SLogger struct {
	logger *slog.Logger
}

var _ Logger = (*SLogger)(nil)

// New creates a new SLogger.
func New(logger *slog.Logger) *SLogger {
	return &SLogger{logger: logger}
}

// NewText creates an SLogger writing slog text lines to w.
func NewText(w io.Writer, level slog.Level) *SLogger {
	return New(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// Info logs an informational message.
func (l *SLogger) Info(msg string, args ...any) {
	l.log(slog.LevelInfo, msg, args...)
}

// Warn logs a warning.
func (l *SLogger) Warn(msg string, args ...any) {
	l.log(slog.LevelWarn, msg, args...)
}

// Error logs an error message. A nil err is allowed.
func (l *SLogger) Error(msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	l.log(slog.LevelError, msg, args...)
}

// ErrorTrace logs an error message together with the current goroutine stack.
func (l *SLogger) ErrorTrace(msg string, err error, args ...any) {
	if err != nil {
		args = append(args, "error", err.Error())
	}
	args = append(args, "trace", string(debug.Stack()))
	l.log(slog.LevelError, msg, args...)
}

func (l *SLogger) log(level slog.Level, msg string, args ...any) {
	if l == nil || l.logger == nil {
		return
	}
	l.logger.Log(context.Background(), level, msg, args...)
}

// File is an SLogger bound to an append-only log file.
type File struct {
	*SLogger
	f *os.File
}

// OpenFile opens (or creates) path for appending and returns a logger on it.
func OpenFile(path string, level slog.Level) (*File, error) {
	if path == "" {
		path = DefaultFile
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return &File{SLogger: NewText(f, level), f: f}, nil
}

// Path returns the name of the underlying log file.
func (f *File) Path() string {
	return f.f.Name()
}

// Close closes the log file.
func (f *File) Close() error {
	return f.f.Close()
}

// Nop discards everything.
type Nop struct{}

var _ Logger = Nop{}

func (Nop) Info(string, ...any)              {}
func (Nop) Warn(string, ...any)              {}
func (Nop) Error(string, error, ...any)      {}
func (Nop) ErrorTrace(string, error, ...any) {}

// ParseLevel maps a config string to a slog level. Unknown values map to info.
func ParseLevel(s string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return level
}
