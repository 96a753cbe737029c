// Package logger is a small leveled logger with key/value fields and
// size/age based file rotation.
package logger

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"
)

// Level represents log severity
type Level int

const (
	DEBUG Level = iota
	INFO
	WARN
	ERROR
)

// String returns the string representation of the log level
func (l Level) String() string {
	switch l {
	case DEBUG:
		return "DEBUG"
	case INFO:
		return "INFO"
	case WARN:
		return "WARN"
	case ERROR:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// ParseLevel converts a level name to a Level. Unknown names map to INFO.
func ParseLevel(s string) Level {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "DEBUG":
		return DEBUG
	case "WARN", "WARNING":
		return WARN
	case "ERROR":
		return ERROR
	default:
		return INFO
	}
}

// Field represents a key-value pair for structured logging
type Field struct {
	Key   string
	Value any
}

// F is a shorthand for creating a Field
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Err is a shorthand for an "error" field
func Err(err error) Field {
	return Field{Key: "error", Value: err}
}

// Config holds logger configuration
type Config struct {
	Level      Level     // Minimum log level
	FilePath   string    // Path to log file, empty disables file output
	MaxSize    int64     // Max size in bytes before rotation
	MaxAge     int       // Max age in days before rotation
	MaxBackups int       // Number of numbered backups kept
	Console    bool      // Also write to stderr
	Output     io.Writer // Extra destination, used by tests
}

// DefaultLogPath returns ~/.taskflow/logs/taskflow.log
func DefaultLogPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".taskflow", "logs", "taskflow.log")
}

// DefaultConfig returns default logger configuration
func DefaultConfig() Config {
	return Config{
		Level:      INFO,
		FilePath:   DefaultLogPath(),
		MaxSize:    10 * 1024 * 1024, // 10MB
		MaxAge:     7,
		MaxBackups: 5,
		Console:    false, // would draw over the TUI
	}
}

// sink is the shared destination of a logger and every logger derived
// from it with WithFields.
type sink struct {
	mu     sync.Mutex
	config Config
	file   *os.File
}

// Logger writes leveled entries. A nil *Logger discards everything.
type Logger struct {
	sink   *sink
	fields []Field
}

var (
	globalLogger *Logger
	once         sync.Once
)

// Init initializes the global logger. Only the first call has an effect.
func Init(config Config) error {
	var err error
	once.Do(func() {
		globalLogger, err = New(config)
	})
	return err
}

// New creates a new logger instance
func New(config Config) (*Logger, error) {
	if config.MaxBackups <= 0 {
		config.MaxBackups = 1
	}
	s := &sink{config: config}

	if config.FilePath != "" {
		if err := os.MkdirAll(filepath.Dir(config.FilePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create log directory: %w", err)
		}
		if err := s.openFile(); err != nil {
			return nil, err
		}
		if err := s.rotateIfNeeded(); err != nil {
			return nil, err
		}
	}

	return &Logger{sink: s}, nil
}

func (s *sink) openFile() error {
	file, err := os.OpenFile(s.config.FilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	s.file = file
	return nil
}

// rotateIfNeeded must be called with mu held (or before the sink is shared)
func (s *sink) rotateIfNeeded() error {
	if s.file == nil {
		return nil
	}

	info, err := s.file.Stat()
	if err != nil {
		return err
	}

	if s.config.MaxSize > 0 && info.Size() >= s.config.MaxSize {
		return s.rotate()
	}
	if s.config.MaxAge > 0 && info.Size() > 0 && time.Since(info.ModTime()) > time.Duration(s.config.MaxAge)*24*time.Hour {
		return s.rotate()
	}
	return nil
}

// rotate shifts log -> log.1 -> log.2 ... dropping the oldest backup
func (s *sink) rotate() error {
	if s.file != nil {
		s.file.Close()
		s.file = nil
	}

	path := s.config.FilePath
	os.Remove(fmt.Sprintf("%s.%d", path, s.config.MaxBackups))
	for i := s.config.MaxBackups - 1; i >= 1; i-- {
		os.Rename(fmt.Sprintf("%s.%d", path, i), fmt.Sprintf("%s.%d", path, i+1))
	}
	if _, err := os.Stat(path); err == nil {
		if err := os.Rename(path, path+".1"); err != nil {
			return err
		}
	}

	return s.openFile()
}

func (s *sink) write(entry string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rotateIfNeeded()

	if s.file != nil {
		s.file.WriteString(entry)
	}
	if s.config.Console {
		os.Stderr.WriteString(entry)
	}
	if s.config.Output != nil {
		io.WriteString(s.config.Output, entry)
	}
}

// log formats and writes an entry. skip is the caller depth of the
// public logging call.
func (l *Logger) log(level Level, skip int, msg string, fields []Field) {
	if l == nil || l.sink == nil || level < l.sink.config.Level {
		return
	}

	caller := "???"
	if _, file, line, ok := runtime.Caller(skip); ok {
		caller = fmt.Sprintf("%s:%d", filepath.Base(file), line)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "[%s] %s %s: %s", time.Now().Format("2006-01-02 15:04:05.000"), level, caller, msg)

	if len(l.fields)+len(fields) > 0 {
		b.WriteString(" |")
		for _, f := range l.fields {
			fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
		}
		for _, f := range fields {
			fmt.Fprintf(&b, " %s=%v", f.Key, f.Value)
		}
	}
	b.WriteByte('\n')

	l.sink.write(b.String())
}

// WithFields creates a logger that adds fields to every entry
func (l *Logger) WithFields(fields ...Field) *Logger {
	if l == nil {
		return nil
	}
	merged := make([]Field, 0, len(l.fields)+len(fields))
	merged = append(merged, l.fields...)
	merged = append(merged, fields...)
	return &Logger{sink: l.sink, fields: merged}
}

// Debug logs a debug message
func (l *Logger) Debug(msg string, fields ...Field) {
	l.log(DEBUG, 2, msg, fields)
}

// Info logs an info message
func (l *Logger) Info(msg string, fields ...Field) {
	l.log(INFO, 2, msg, fields)
}

// Warn logs a warning message
func (l *Logger) Warn(msg string, fields ...Field) {
	l.log(WARN, 2, msg, fields)
}

// Error logs an error message
func (l *Logger) Error(msg string, fields ...Field) {
	l.log(ERROR, 2, msg, fields)
}

// Close closes the log file
func (l *Logger) Close() error {
	if l == nil || l.sink == nil {
		return nil
	}
	l.sink.mu.Lock()
	defer l.sink.mu.Unlock()

	if l.sink.file != nil {
		err := l.sink.file.Close()
		l.sink.file = nil
		return err
	}
	return nil
}

// Global logger functions

// Default returns the global logger, nil before Init
func Default() *Logger {
	return globalLogger
}

// Debug logs a debug message using the global logger
func Debug(msg string, fields ...Field) {
	globalLogger.log(DEBUG, 2, msg, fields)
}

// Info logs an info message using the global logger
func Info(msg string, fields ...Field) {
	globalLogger.log(INFO, 2, msg, fields)
}

// Warn logs a warning message using the global logger
func Warn(msg string, fields ...Field) {
	globalLogger.log(WARN, 2, msg, fields)
}

// Error logs an error message using the global logger
func Error(msg string, fields ...Field) {
	globalLogger.log(ERROR, 2, msg, fields)
}

// WithFields creates a new logger with preset fields using the global logger
func WithFields(fields ...Field) *Logger {
	return globalLogger.WithFields(fields...)
}

// Close closes the global logger
func Close() error {
	return globalLogger.Close()
}

// GetConfig returns the current logger configuration
func GetConfig() Config {
	if globalLogger != nil && globalLogger.sink != nil {
		return globalLogger.sink.config
	}
	return DefaultConfig()
}
