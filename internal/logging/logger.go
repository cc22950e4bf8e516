package logging

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fadedpez/blackjack/internal/types"
)

// Level represents a logging level
type Level = log.Level

const (
	DEBUG = log.DebugLevel
	INFO  = log.InfoLevel
	WARN  = log.WarnLevel
	ERROR = log.ErrorLevel
)

// Logger is the structured logger shared by the engine's services
type Logger struct {
	*log.Logger
}

// NewLogger creates a new logger writing to w at the given level
func NewLogger(w io.Writer, level Level) *Logger {
	return &Logger{
		Logger: log.NewWithOptions(w, log.Options{
			Level:           level,
			ReportTimestamp: true,
			TimeFormat:      time.TimeOnly,
		}),
	}
}

// ParseLevel converts a config string such as "debug" into a Level.
// Unknown values fall back to INFO.
func ParseLevel(value string) Level {
	level, err := log.ParseLevel(strings.ToLower(strings.TrimSpace(value)))
	if err != nil {
		return INFO
	}
	return level
}

// With returns a child logger carrying the given key/value pairs
func (l *Logger) With(keyvals ...interface{}) *Logger {
	return &Logger{Logger: l.Logger.With(keyvals...)}
}

// LogError logs a GameError with appropriate context
func (l *Logger) LogError(err error) {
	var gameErr *types.GameError
	if types.As(err, &gameErr) {
		keyvals := []interface{}{"code", gameErr.Code, "message", gameErr.Message}
		if gameErr.Err != nil {
			keyvals = append(keyvals, "cause", fmt.Sprint(gameErr.Err))
		}
		l.Error("Game error occurred", keyvals...)
		return
	}
	l.Error("Unexpected error", "err", err)
}

// Default logger instance
var Default = NewLogger(os.Stderr, INFO)
