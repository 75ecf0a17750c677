// Package logger provides leveled logging for the surfgrid commands.
// Text output goes through the standard log package; json output writes one
// object per line so renders on a headless display can be shipped to a
// collector.
package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"sync"
	"time"
)

// Level represents a logging level
type Level int

const (
	DebugLevel Level = iota
	InfoLevel
	WarnLevel
	ErrorLevel
)

func (l Level) String() string {
	switch l {
	case DebugLevel:
		return "DEBUG"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	}
	return "INFO"
}

// ParseLevel maps a config string onto a Level, defaulting to info.
func ParseLevel(s string) Level {
	switch strings.ToLower(s) {
	case "debug":
		return DebugLevel
	case "warn":
		return WarnLevel
	case "error":
		return ErrorLevel
	}
	return InfoLevel
}

// Logger provides leveled logging
type Logger struct {
	mu     sync.Mutex
	level  Level
	json   bool
	out    io.Writer
	logger *log.Logger
}

var defaultLogger *Logger

// Init initializes the default logger on stderr.
func Init(level, format string) {
	InitWriter(os.Stderr, level, format)
}

// InitWriter initializes the default logger on w.
func InitWriter(w io.Writer, level, format string) {
	defaultLogger = New(w, level, format)
}

// New builds a standalone logger.
func New(w io.Writer, level, format string) *Logger {
	l := &Logger{level: ParseLevel(level), out: w}
	if strings.ToLower(format) == "json" {
		l.json = true
		return l
	}
	l.logger = log.New(w, "", log.LstdFlags)
	return l
}

type entry struct {
	Time    string `json:"time"`
	Level   string `json:"level"`
	Message string `json:"msg"`
}

func (l *Logger) logf(level Level, format string, args ...interface{}) {
	if l == nil || level < l.level {
		return
	}
	msg := fmt.Sprintf(format, args...)
	if !l.json {
		_ = l.logger.Output(3, "["+level.String()+"] "+msg)
		return
	}

	b, err := json.Marshal(entry{
		Time:    time.Now().UTC().Format(time.RFC3339Nano),
		Level:   strings.ToLower(level.String()),
		Message: msg,
	})
	if err != nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	_, _ = l.out.Write(append(b, '\n'))
}

func (l *Logger) Debug(format string, args ...interface{}) { l.logf(DebugLevel, format, args...) }
func (l *Logger) Info(format string, args ...interface{})  { l.logf(InfoLevel, format, args...) }
func (l *Logger) Warn(format string, args ...interface{})  { l.logf(WarnLevel, format, args...) }
func (l *Logger) Error(format string, args ...interface{}) { l.logf(ErrorLevel, format, args...) }

// Debug logs a message at DebugLevel
func Debug(format string, args ...interface{}) { defaultLogger.logf(DebugLevel, format, args...) }

// Info logs a message at InfoLevel
func Info(format string, args ...interface{}) { defaultLogger.logf(InfoLevel, format, args...) }

// Warn logs a message at WarnLevel
func Warn(format string, args ...interface{}) { defaultLogger.logf(WarnLevel, format, args...) }

// Error logs a message at ErrorLevel
func Error(format string, args ...interface{}) { defaultLogger.logf(ErrorLevel, format, args...) }
