// Package flog is the process-wide levelled logger.
package flog

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"

	"golang.org/x/term"
)

type Level int

const (
	Debug Level = iota
	Info
	Warn
	Error
	None
)

func (l Level) String() string {
	switch l {
	case Debug:
		return "DEBUG"
	case Info:
		return "INFO"
	case Warn:
		return "WARN"
	case Error:
		return "ERROR"
	case None:
		return "NONE"
	default:
		return "UNKNOWN"
	}
}

func (l Level) color() string {
	switch l {
	case Debug:
		return "\033[36m"
	case Info:
		return "\033[32m"
	case Warn:
		return "\033[33m"
	default:
		return "\033[31m"
	}
}

func ParseLevel(s string) (Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return Debug, nil
	case "info":
		return Info, nil
	case "warn", "warning":
		return Warn, nil
	case "error":
		return Error, nil
	case "none", "off":
		return None, nil
	default:
		return Info, fmt.Errorf("unknown log level: %s", s)
	}
}

var (
	mu     sync.Mutex
	level  = Info
	color  = isTerminal(os.Stderr)
	logger = log.New(os.Stderr, "", log.Ldate|log.Ltime)
)

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func SetLevel(l Level) {
	mu.Lock()
	defer mu.Unlock()
	level = l
}

func GetLevel() Level {
	mu.Lock()
	defer mu.Unlock()
	return level
}

// SetOutput redirects log output; colors follow whether w is a terminal.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	logger.SetOutput(w)
	color = isTerminal(w)
}

func logf(l Level, format string, args ...any) {
	mu.Lock()
	defer mu.Unlock()
	if l < level {
		return
	}
	tag := "[" + l.String() + "] "
	if color {
		tag = l.color() + "[" + l.String() + "]\033[0m "
	}
	logger.Print(tag + fmt.Sprintf(format, args...))
}

func Debugf(format string, args ...any) { logf(Debug, format, args...) }
func Infof(format string, args ...any)  { logf(Info, format, args...) }
func Warnf(format string, args ...any)  { logf(Warn, format, args...) }
func Errorf(format string, args ...any) { logf(Error, format, args...) }

// Fatalf logs regardless of level and exits.
func Fatalf(format string, args ...any) {
	mu.Lock()
	logger.Print("[FATAL] " + fmt.Sprintf(format, args...))
	mu.Unlock()
	os.Exit(1)
}
