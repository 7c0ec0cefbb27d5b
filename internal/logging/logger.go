// Package logging writes structured engine logs to a file so they never
// interfere with the terminal UI.
package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
)

// Logger appends slog text records to a log file.
type Logger struct {
	*slog.Logger
	file *os.File
}

// New opens (or creates) the log file at path.
func New(path string) (*Logger, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("logging: ensure log dir: %w", err)
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("logging: open log file: %w", err)
	}
	return &Logger{Logger: slog.New(slog.NewTextHandler(f, nil)), file: f}, nil
}

// Discard returns a logger that drops every record.
func Discard() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// Slog returns the underlying logger; a nil Logger yields a discarding one.
func (l *Logger) Slog() *slog.Logger {
	if l == nil || l.Logger == nil {
		return Discard().Logger
	}
	return l.Logger
}

// Close releases the file handle.
func (l *Logger) Close() error {
	if l == nil || l.file == nil {
		return nil
	}
	return l.file.Close()
}
