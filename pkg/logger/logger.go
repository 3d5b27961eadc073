package logger

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Level represents logging level
type Level = zerolog.Level

// Logger levels
const (
	DebugLevel = zerolog.DebugLevel
	InfoLevel  = zerolog.InfoLevel
	WarnLevel  = zerolog.WarnLevel
	ErrorLevel = zerolog.ErrorLevel
	FatalLevel = zerolog.FatalLevel
)

// Config holds logger configuration
type Config struct {
	Level      Level
	TimeFormat string
	Output     io.Writer
	Pretty     bool
}

// Logger wraps zerolog.Logger
type Logger struct {
	zl zerolog.Logger
}

// NewLogger creates a new logger instance
func NewLogger(cfg *Config) *Logger {
	if cfg == nil {
		cfg = &Config{
			Level:      InfoLevel,
			TimeFormat: time.RFC3339,
			Output:     os.Stdout,
			Pretty:     true,
		}
	}

	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if cfg.Pretty {
		out = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: cfg.TimeFormat,
		}
	}

	logger := zerolog.New(out).
		Level(cfg.Level).
		With().
		Timestamp().
		Caller().
		Logger()

	return &Logger{zl: logger}
}

// WithFields adds fields to logger
func (l *Logger) WithFields(fields map[string]interface{}) *Logger {
	return &Logger{zl: l.zl.With().Fields(fields).Logger()}
}

func (l *Logger) Info(msg string, fields ...interface{}) {
	withFields(l.zl.Info(), fields).Msg(msg)
}

func (l *Logger) Warn(msg string, fields ...interface{}) {
	withFields(l.zl.Warn(), fields).Msg(msg)
}

func (l *Logger) Error(err error, msg string, fields ...interface{}) {
	withFields(l.zl.Error().Err(err), fields).Msg(msg)
}

func (l *Logger) Fatal(err error, msg string, fields ...interface{}) {
	withFields(l.zl.Fatal().Err(err), fields).Msg(msg)
}

func (l *Logger) Debug(msg string, fields ...interface{}) {
	withFields(l.zl.Debug(), fields).Msg(msg)
}

func withFields(ev *zerolog.Event, fields []interface{}) *zerolog.Event {
	switch len(fields) {
	case 0:
		return ev
	case 1:
		if fields[0] == nil {
			return ev
		}
		return ev.Fields(fields[0])
	default:
		return ev.Fields(fields)
	}
}

// Zerolog exposes the wrapped logger for packages that take *zerolog.Logger.
func (l *Logger) Zerolog() *zerolog.Logger {
	return &l.zl
}
