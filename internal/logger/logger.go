package logger

import (
	"strings"
	"sync"
)

// Log levels accepted by the log.level config key.
const (
	DebugLevel = "debug"
	InfoLevel  = "info"
	WarnLevel  = "warn"
	ErrorLevel = "error"
)

var (
	globalLogger *Logger
	once         sync.Once
)

// NormalizeLevel lowercases level and reports whether it is one of the known levels.
func NormalizeLevel(level string) (string, bool) {
	l := strings.ToLower(strings.TrimSpace(level))
	switch l {
	case DebugLevel, InfoLevel, WarnLevel, ErrorLevel:
		return l, true
	}
	return l, false
}

// Get returns the process-wide logger. Only the first call's level is applied.
func Get(level string) *Logger {
	once.Do(func() {
		globalLogger = New(level)
	})
	return globalLogger
}

// New builds a standalone logger; unknown levels fall back to info.
func New(level string) *Logger {
	l, _ := NormalizeLevel(level)
	return newZapLogger(l)
}
