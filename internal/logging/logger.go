// Package logging provides the leveled key/value logger used across the
// extractor. Output goes to stderr so transcripts written to stdout stay clean.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
)

// Logger writes "[LEVEL] msg k=v ..." lines.
type Logger struct {
	logger *log.Logger
	debug  bool
}

// New creates a logger writing to w. Debug lines are emitted only when debug is true.
func New(w io.Writer, prefix string, debug bool) *Logger {
	if prefix != "" {
		prefix = fmt.Sprintf("[%s] ", prefix)
	}
	return &Logger{
		logger: log.New(w, prefix, log.Ldate|log.Ltime),
		debug:  debug,
	}
}

// NewStderr creates a logger on stderr.
func NewStderr(prefix string, debug bool) *Logger {
	return New(os.Stderr, prefix, debug)
}

// Discard returns a logger that drops everything.
func Discard() *Logger {
	return New(io.Discard, "", false)
}

// DebugEnabled reports whether Debug lines are written.
func (l *Logger) DebugEnabled() bool {
	return l != nil && l.debug
}

// Info logs an informational message with key-value pairs
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.logWithKV("INFO", msg, keysAndValues...)
}

// Warn logs a warning message with key-value pairs
func (l *Logger) Warn(msg string, keysAndValues ...interface{}) {
	l.logWithKV("WARN", msg, keysAndValues...)
}

// Error logs an error message with key-value pairs
func (l *Logger) Error(msg string, keysAndValues ...interface{}) {
	l.logWithKV("ERROR", msg, keysAndValues...)
}

// Debug logs a debug message with key-value pairs
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	if !l.DebugEnabled() {
		return
	}
	l.logWithKV("DEBUG", msg, keysAndValues...)
}

func (l *Logger) logWithKV(level, msg string, keysAndValues ...interface{}) {
	if l == nil {
		return
	}
	var kv strings.Builder
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		fmt.Fprintf(&kv, " %v=%v", keysAndValues[i], keysAndValues[i+1])
	}
	l.logger.Printf("[%s] %s%s", level, msg, kv.String())
}
