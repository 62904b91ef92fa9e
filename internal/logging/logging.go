// Package logging is the process-wide diagnostic channel used by the hook engine and
// its platform sessions. A single sink is active at a time; messages below the
// installed threshold are discarded before they are formatted.
package logging

import (
	"fmt"
	"sync/atomic"
)

// Level is a diagnostic severity. Levels are totally ordered.
type Level uint8

const (
	Debug Level = iota + 1
	Info
	Warn
	Error
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warn:
		return "warn"
	case Error:
		return "error"
	default:
		return fmt.Sprintf("level(%d)", uint8(l))
	}
}

// Sink receives a pre-formatted diagnostic message. It may be called from the capture
// thread concurrently with any other goroutine.
type Sink func(level Level, msg string)

type logger struct {
	threshold Level
	sink      Sink
}

var active atomic.Pointer[logger]

// SetLogger installs sink as the diagnostic sink, replacing any previous one. Messages
// below threshold are dropped. A nil sink disables diagnostics.
func SetLogger(threshold Level, sink Sink) {
	if sink == nil {
		active.Store(nil)
		return
	}
	active.Store(&logger{threshold: threshold, sink: sink})
}

// Enabled reports whether a message at level would reach the installed sink.
func Enabled(level Level) bool {
	l := active.Load()
	return l != nil && level >= l.threshold
}

func Debugf(format string, args ...any) { logf(Debug, format, args...) }
func Infof(format string, args ...any) { logf(Info, format, args...) }
func Warnf(format string, args ...any) { logf(Warn, format, args...) }
func Errorf(format string, args ...any) { logf(Error, format, args...) }

func logf(level Level, format string, args ...any) {
	l := active.Load()
	if l == nil || level < l.threshold {
		return
	}
	msg := format
	if len(args) > 0 {
		msg = fmt.Sprintf(format, args...)
	}
	deliver(l.sink, level, msg)
}

// deliver calls the sink and swallows a panic so it never unwinds into the caller.
func deliver(sink Sink, level Level, msg string) {
	defer func() {
		_ = recover()
	}()
	sink(level, msg)
}
