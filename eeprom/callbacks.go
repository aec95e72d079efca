package eeprom

import (
	"log/slog"
	"time"

	"github.com/moffa90/go-i2ceeprom/protocol"
)

// Progress describes a session step.
// Passed to ProgressCallback on every state change and every acknowledge-poll retry.
type Progress struct {
	// Phase is the state just entered
	Phase State

	// Polls is the number of acknowledge probes issued so far
	Polls int

	// Event is the completion code that caused the step (zero for Start)
	Event protocol.Event

	// ElapsedTime is the time elapsed since Start
	ElapsedTime time.Duration
}

// ProgressCallback is called as the session advances.
// It runs on the goroutine delivering transfer completions and must return quickly.
//
// Example:
//
//	s, _ := eeprom.New(engine, p,
//	    eeprom.WithProgressCallback(func(p eeprom.Progress) {
//	        fmt.Printf("[%s] polls=%d\n", p.Phase, p.Polls)
//	    }),
//	)
type ProgressCallback func(Progress)

// Logger is an optional logging interface that can be provided to the session.
// This allows integration with any logging framework; NewSlogLogger adapts log/slog.
type Logger interface {
	// Debug logs a debug message with optional key-value pairs
	Debug(msg string, keysAndValues ...interface{})

	// Info logs an info message with optional key-value pairs
	Info(msg string, keysAndValues ...interface{})

	// Error logs an error message with optional key-value pairs
	Error(msg string, keysAndValues ...interface{})
}

// SlogLogger adapts a *slog.Logger to Logger.
type SlogLogger struct {
	logger *slog.Logger
}

// NewSlogLogger wraps logger; a nil logger means slog.Default().
//
// Example:
//
//	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})
//	s, _ := eeprom.New(engine, p, eeprom.WithLogger(eeprom.NewSlogLogger(slog.New(handler))))
func NewSlogLogger(logger *slog.Logger) *SlogLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &SlogLogger{logger: logger.With("component", "eeprom")}
}

func (l *SlogLogger) Debug(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l *SlogLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Info(msg, keysAndValues...)
}

func (l *SlogLogger) Error(msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, keysAndValues...)
}
