package sceneedit

import (
	"fmt"
	"io"
	"log"
	"os"
	"sync/atomic"
)

// Logger is what every editor component reports through. Debug output is
// off by default because handle drags log on every frame.
type Logger interface {
	DebugEnabled() bool
	SetDebug(enabled bool)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

type logLevel uint8

const (
	levelDebug logLevel = iota
	levelInfo
	levelWarn
	levelError
)

var levelNames = [...]string{"DEBUG", "INFO", "WARN", "ERROR"}

// DefaultLogger writes one line per message as "[prefix] LEVEL: text".
// Warnings and errors go to a separate sink so a host can route them apart
// from the per frame chatter.
type DefaultLogger struct {
	debug  atomic.Bool
	prefix string
	out    *log.Logger
	alert  *log.Logger
}

// NewDefaultLogger writes debug and info lines to stdout and the rest to
// stderr.
func NewDefaultLogger(prefix string, debug bool) *DefaultLogger {
	return newLogger(os.Stdout, os.Stderr, prefix, debug)
}

// NewWriterLogger sends every level to w.
func NewWriterLogger(w io.Writer, prefix string, debug bool) *DefaultLogger {
	return newLogger(w, w, prefix, debug)
}

func newLogger(out, alert io.Writer, prefix string, debug bool) *DefaultLogger {
	flags := log.LstdFlags | log.Lmicroseconds
	l := &DefaultLogger{
		prefix: prefix,
		out:    log.New(out, "", flags),
		alert:  log.New(alert, "", flags),
	}
	l.debug.Store(debug)
	return l
}

func (l *DefaultLogger) DebugEnabled() bool    { return l.debug.Load() }
func (l *DefaultLogger) SetDebug(enabled bool) { l.debug.Store(enabled) }

func (l *DefaultLogger) Debugf(format string, args ...any) {
	if l.debug.Load() {
		l.write(levelDebug, format, args)
	}
}

func (l *DefaultLogger) Infof(format string, args ...any)  { l.write(levelInfo, format, args) }
func (l *DefaultLogger) Warnf(format string, args ...any)  { l.write(levelWarn, format, args) }
func (l *DefaultLogger) Errorf(format string, args ...any) { l.write(levelError, format, args) }

func (l *DefaultLogger) write(level logLevel, format string, args []any) {
	msg := fmt.Sprintf(format, args...)
	line := levelNames[level] + ": " + msg
	if l.prefix != "" {
		line = "[" + l.prefix + "] " + line
	}
	if level >= levelWarn {
		l.alert.Print(line)
		return
	}
	l.out.Print(line)
}

// nopLogger stands in when a component is built without a logger.
type nopLogger struct{}

func NewNopLogger() Logger { return nopLogger{} }

func (nopLogger) DebugEnabled() bool    { return false }
func (nopLogger) SetDebug(bool)         {}
func (nopLogger) Debugf(string, ...any) {}
func (nopLogger) Infof(string, ...any)  {}
func (nopLogger) Warnf(string, ...any)  {}
func (nopLogger) Errorf(string, ...any) {}

func orNop(l Logger) Logger {
	if l == nil {
		return NewNopLogger()
	}
	return l
}
