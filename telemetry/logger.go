// Package telemetry provides the structured logger used throughout
// enumeration, replacing the free-form TOPOSASDEBUG dprintf channel with
// leveled, field-carrying log lines.
package telemetry

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Level is a logging level.
type Level string

const (
	LevelDebug Level = "debug"
	LevelInfo  Level = "info"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// Format selects the logger's output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatText Format = "text"
)

// LoggerConfig configures a Logger.
type LoggerConfig struct {
	Level  Level
	Format Format
	Output io.Writer
}

// Logger wraps zerolog.Logger with the field-pair call shape used across
// this module's components.
type Logger struct {
	logger zerolog.Logger
}

// New builds a Logger from cfg. A zero-value cfg logs at info level, as
// JSON, to stdout.
func New(cfg LoggerConfig) *Logger {
	if cfg.Output == nil {
		cfg.Output = os.Stdout
	}

	var output io.Writer = cfg.Output
	if cfg.Format == FormatText {
		output = zerolog.ConsoleWriter{Out: cfg.Output, TimeFormat: time.RFC3339}
	}

	zlog := zerolog.New(output).With().Timestamp().Logger()
	switch cfg.Level {
	case LevelDebug:
		zlog = zlog.Level(zerolog.DebugLevel)
	case LevelWarn:
		zlog = zlog.Level(zerolog.WarnLevel)
	case LevelError:
		zlog = zlog.Level(zerolog.ErrorLevel)
	default:
		zlog = zlog.Level(zerolog.InfoLevel)
	}

	return &Logger{logger: zlog}
}

// Nop returns a Logger that discards everything, for callers (tests,
// library use) that don't want output.
func Nop() *Logger {
	return &Logger{logger: zerolog.Nop()}
}

func (l *Logger) event(lvl Level, msg string, fields ...interface{}) {
	var ev *zerolog.Event
	switch lvl {
	case LevelDebug:
		ev = l.logger.Debug()
	case LevelWarn:
		ev = l.logger.Warn()
	case LevelError:
		ev = l.logger.Error()
	default:
		ev = l.logger.Info()
	}
	for i := 0; i+1 < len(fields); i += 2 {
		key, ok := fields[i].(string)
		if !ok {
			continue
		}
		ev = ev.Interface(key, fields[i+1])
	}
	ev.Msg(msg)
}

func (l *Logger) Debug(msg string, fields ...interface{}) { l.event(LevelDebug, msg, fields...) }
func (l *Logger) Info(msg string, fields ...interface{})  { l.event(LevelInfo, msg, fields...) }
func (l *Logger) Warn(msg string, fields ...interface{})  { l.event(LevelWarn, msg, fields...) }
func (l *Logger) Error(msg string, fields ...interface{}) { l.event(LevelError, msg, fields...) }

// WithField returns a child Logger carrying an additional bound field.
func (l *Logger) WithField(key string, value interface{}) *Logger {
	return &Logger{logger: l.logger.With().Interface(key, value).Logger()}
}
