// Package logging is a small leveled wrapper around the standard logger.
package logging

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync/atomic"
)

// Level represents severity.
type Level int32

const (
	LevelDebug Level = iota
	LevelInfo
	LevelWarn
	LevelError
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "INFO"
	}
}

var levelNames = map[string]Level{
	"debug":   LevelDebug,
	"info":    LevelInfo,
	"warn":    LevelWarn,
	"warning": LevelWarn,
	"error":   LevelError,
}

var current atomic.Int32

var base = log.New(os.Stderr, "", log.Ldate|log.Ltime)

func init() {
	current.Store(int32(LevelInfo))
}

// ParseLevel parses a level name. Unknown names return false.
func ParseLevel(s string) (Level, bool) {
	l, ok := levelNames[strings.ToLower(strings.TrimSpace(s))]
	return l, ok
}

// SetLevel sets the global level from its name. Unknown names are an error
// and leave the level unchanged.
func SetLevel(s string) error {
	l, ok := ParseLevel(s)
	if !ok {
		return fmt.Errorf("unknown log level %q", s)
	}
	current.Store(int32(l))
	return nil
}

// GetLevel returns the current global level.
func GetLevel() Level { return Level(current.Load()) }

// SetOutput redirects log output.
func SetOutput(w io.Writer) { base.SetOutput(w) }

// Logger prefixes messages with a component name, e.g. "ui: ".
type Logger struct {
	prefix string
}

// New returns a logger for the named component.
func New(component string) Logger {
	return Logger{prefix: component}
}

func (lg Logger) logf(l Level, format string, args ...any) {
	if GetLevel() > l {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if lg.prefix != "" {
		msg = lg.prefix + ": " + msg
	}
	base.Printf("%-5s %s", l, msg)
}

func (lg Logger) Debugf(format string, args ...any) { lg.logf(LevelDebug, format, args...) }
func (lg Logger) Infof(format string, args ...any)  { lg.logf(LevelInfo, format, args...) }
func (lg Logger) Warnf(format string, args ...any)  { lg.logf(LevelWarn, format, args...) }
func (lg Logger) Errorf(format string, args ...any) { lg.logf(LevelError, format, args...) }
