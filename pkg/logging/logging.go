package logging

import (
	"os"

	"github.com/go-logr/logr"
	"golang.org/x/term"
)

const (
	LEVEL_INFO  = 0
	LEVEL_DEBUG = 1
	LEVEL_TRACE = 2
)

// NewLogger creates a new Logger instance with the given configuration
func NewLogger(log logr.Logger) *Logger {
	if log.GetSink() == nil {
		log = logr.Discard()
	}
	return &Logger{log: log}
}

// DefaultLogger returns a Logger that discards everything, matching the
// decoder's default of silent operation.
func DefaultLogger() *Logger {
	return &Logger{log: logr.Discard()}
}

// NewConsoleLogger returns a Logger backed by SimpleLogSink at the given
// verbosity, writing to os.Stdout. Color is disabled automatically when
// stdout is not a terminal (e.g. output is piped), regardless of the
// forceColor argument.
func NewConsoleLogger(minVerbosity int, forceColor bool) *Logger {
	useColor := forceColor && isTerminal(os.Stdout)
	return &Logger{log: NewSimpleLogger(os.Stdout, minVerbosity, useColor)}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Logger is a struct that wraps the logr.Logger interface.
type Logger struct {
	log logr.Logger
}

// Log methods (minimizing footprint in the rest of the library)
func (l *Logger) Debug(msg string, keysAndValues ...interface{}) {
	l.log.V(LEVEL_DEBUG).Info(msg, keysAndValues...)
}

func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.log.Info(msg, keysAndValues...)
}

func (l *Logger) Trace(msg string, keysAndValues ...interface{}) {
	l.log.V(LEVEL_TRACE).Info(msg, keysAndValues...)
}

func (l *Logger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.log.Error(err, msg, keysAndValues...)
}
