// Package logger implements a logging adapter using log/slog.
package logger

import (
	"errors"
	"io"
	"log/slog"
	"maps"
	"os"
	"slices"
	"strings"
	"sync"

	"go.trai.ch/whl/internal/core/ports"
	"go.trai.ch/zerr"
)

// Logger implements ports.Logger using log/slog.
type Logger struct {
	logger *slog.Logger
	mu     sync.RWMutex
}

// New creates a new Logger writing human-readable text to stderr.
func New() ports.Logger {
	return NewWithWriter(os.Stderr)
}

// NewWithWriter creates a new Logger writing to w.
func NewWithWriter(w io.Writer) *Logger {
	l := &Logger{}
	l.SetOutput(w)
	return l
}

// SetOutput updates the logger's output destination.
// If w is nil, os.Stderr is used.
func (l *Logger) SetOutput(w io.Writer) {
	if w == nil {
		w = os.Stderr
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	l.mu.Lock()
	defer l.mu.Unlock()
	l.logger = slog.New(handler)
}

// Info logs an informational message.
func (l *Logger) Info(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Info(msg)
}

// Warn logs a warning message.
func (l *Logger) Warn(msg string) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Warn(msg)
}

// Error logs an error together with the metadata attached anywhere in its chain.
func (l *Logger) Error(err error) {
	if err == nil {
		return
	}
	l.mu.RLock()
	defer l.mu.RUnlock()
	l.logger.Error(err.Error(), errorAttrs(err)...)
}

// errorAttrs collects zerr metadata from the whole chain. Outer errors win
// when the same key appears more than once.
func errorAttrs(err error) []any {
	meta := make(map[string]any)
	for current := err; current != nil; current = errors.Unwrap(current) {
		z, ok := current.(*zerr.Error)
		if !ok {
			continue
		}
		for k, v := range z.Metadata() {
			if _, seen := meta[k]; !seen {
				meta[k] = v
			}
		}
	}

	attrs := make([]any, 0, len(meta))
	for _, k := range slices.Sorted(maps.Keys(meta)) {
		attrs = append(attrs, slog.Any(k, meta[k]))
	}
	return attrs
}

// LineWriter adapts a log function into an io.Writer that emits one message
// per line. Partial lines are buffered until their newline arrives or Flush is called.
type LineWriter struct {
	emit func(string)
	mu   sync.Mutex
	buf  strings.Builder
}

// NewLineWriter returns a LineWriter calling emit for every complete line.
func NewLineWriter(emit func(string)) *LineWriter {
	return &LineWriter{emit: emit}
}

func (w *LineWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	w.buf.Write(p)
	data := w.buf.String()
	last := strings.LastIndexByte(data, '\n')
	if last < 0 {
		return len(p), nil
	}
	for line := range strings.SplitSeq(data[:last], "\n") {
		if line = strings.TrimRight(line, "\r"); line != "" {
			w.emit(line)
		}
	}
	w.buf.Reset()
	w.buf.WriteString(data[last+1:])
	return len(p), nil
}

// Flush emits any buffered partial line.
func (w *LineWriter) Flush() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if rest := strings.TrimRight(w.buf.String(), "\r"); rest != "" {
		w.emit(rest)
	}
	w.buf.Reset()
}
