package config

import (
	"io"
	"log"
)

// Logger writes verbosity-gated messages to the configured log stream.
// A nil *Logger discards everything.
type Logger struct {
	out       *log.Logger
	verbosity int
}

// NewLogger creates a Logger writing to w at the given verbosity.
func NewLogger(w io.Writer, verbosity int) *Logger {
	if w == nil {
		w = io.Discard
	}
	return &Logger{
		out:       log.New(w, "chess-server: ", log.LstdFlags|log.Lmsgprefix),
		verbosity: verbosity,
	}
}

// Logger returns a Logger over LogFile at the configured verbosity.
func (c *Config) Logger() *Logger {
	return NewLogger(c.LogFile, c.Verbosity)
}

// Errorf logs unconditionally.
func (l *Logger) Errorf(format string, args ...interface{}) {
	if l == nil {
		return
	}
	l.out.Printf(format, args...)
}

// Infof logs lifecycle messages at verbosity 1 and above.
func (l *Logger) Infof(format string, args ...interface{}) {
	if l == nil || l.verbosity < 1 {
		return
	}
	l.out.Printf(format, args...)
}

// Debugf logs running commentary at verbosity 2.
func (l *Logger) Debugf(format string, args ...interface{}) {
	if l == nil || l.verbosity < 2 {
		return
	}
	l.out.Printf(format, args...)
}
