package logger

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Logger defines the interface for logging messages.
type Logger interface {
	Error(msg string, err error)
	Warn(msg string)
	Info(msg string)
	Debug(msg string)
}

type zeroLogger struct {
	zl zerolog.Logger
}

// New creates a logger writing JSON lines to stdout at the given level.
// Unknown levels fall back to info.
func New(level string) Logger {
	return NewWithWriter(os.Stdout, level)
}

// NewWithWriter creates a logger writing to w at the given level.
func NewWithWriter(w io.Writer, level string) Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	zl := zerolog.New(w).Level(lvl).With().Timestamp().CallerWithSkipFrameCount(3).Logger()
	return &zeroLogger{zl: zl}
}

// Nop returns a logger that discards everything. Used by tests.
func Nop() Logger {
	return &zeroLogger{zl: zerolog.Nop()}
}

// Error logs an error message. err may be nil.
func (l *zeroLogger) Error(msg string, err error) {
	evt := l.zl.Error()
	if err != nil {
		evt = evt.Err(err)
	}
	evt.Msg(msg)
}

// Warn logs a warning message.
func (l *zeroLogger) Warn(msg string) {
	l.zl.Warn().Msg(msg)
}

// Info logs an informational message.
func (l *zeroLogger) Info(msg string) {
	l.zl.Info().Msg(msg)
}

// Debug logs a debug message.
func (l *zeroLogger) Debug(msg string) {
	l.zl.Debug().Msg(msg)
}

func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
