package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
)

// JSONLogger writes one structured JSON object per message using zerolog.
// Verbose maps to the debug level.
type JSONLogger struct {
	zlog zerolog.Logger
}

// NewJSONLogger creates a JSONLogger writing to stderr.
func NewJSONLogger(verbose bool) *JSONLogger {
	return NewJSONLoggerTo(os.Stderr, verbose)
}

// NewJSONLoggerTo creates a JSONLogger writing to w.
func NewJSONLoggerTo(w io.Writer, verbose bool) *JSONLogger {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zlog := zerolog.New(w).
		Level(level).
		With().
		Timestamp().
		Str("component", "genmeta").
		Logger()
	return &JSONLogger{zlog: zlog}
}

func (l *JSONLogger) Verbose(format string, args ...interface{}) {
	l.zlog.Debug().Msgf(format, args...)
}

func (l *JSONLogger) Info(format string, args ...interface{}) {
	l.zlog.Info().Msgf(format, args...)
}

func (l *JSONLogger) Error(format string, args ...interface{}) {
	l.zlog.Error().Msgf(format, args...)
}
