// Package logging is the structured logger used by the analysis
// orchestration and the CLI. Measurement packages do not log.
package logging

import "sync"

// Level is a log severity.
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
	case InfoLevel:
		return "INFO"
	case WarnLevel:
		return "WARN"
	case ErrorLevel:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

// Fields are structured key/value pairs attached to a message.
type Fields map[string]any

// Logger is the logging interface expected by this module.
type Logger interface {
	Debug(msg string, fields ...Fields)
	Info(msg string, fields ...Fields)
	Warn(msg string, fields ...Fields)
	Error(err error, msg string, fields ...Fields)

	// WithFields returns a logger that adds fields to every message.
	WithFields(fields Fields) Logger

	SetLevel(level Level)
}

var (
	globalMu     sync.RWMutex
	globalLogger Logger = NewDefaultLogger()
)

// SetGlobalLogger replaces the global logger. nil disables logging.
func SetGlobalLogger(logger Logger) {
	globalMu.Lock()
	defer globalMu.Unlock()

	if logger == nil {
		globalLogger = NoOpLogger{}
		return
	}

	globalLogger = logger
}

// GetGlobalLogger returns the current global logger.
func GetGlobalLogger() Logger {
	globalMu.RLock()
	defer globalMu.RUnlock()

	return globalLogger
}

func Debug(msg string, fields ...Fields) {
	GetGlobalLogger().Debug(msg, fields...)
}

func Info(msg string, fields ...Fields) {
	GetGlobalLogger().Info(msg, fields...)
}

func Warn(msg string, fields ...Fields) {
	GetGlobalLogger().Warn(msg, fields...)
}

func Error(err error, msg string, fields ...Fields) {
	GetGlobalLogger().Error(err, msg, fields...)
}

func WithFields(fields Fields) Logger {
	return GetGlobalLogger().WithFields(fields)
}

// NoOpLogger discards everything.
type NoOpLogger struct{}

func (NoOpLogger) Debug(string, ...Fields)        {}
func (NoOpLogger) Info(string, ...Fields)         {}
func (NoOpLogger) Warn(string, ...Fields)         {}
func (NoOpLogger) Error(error, string, ...Fields) {}
func (n NoOpLogger) WithFields(Fields) Logger     { return n }
func (NoOpLogger) SetLevel(Level)                 {}
