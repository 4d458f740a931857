package logger

import (
	"os"
	"strings"

	"github.com/gookit/slog"
	"github.com/gookit/slog/handler"
)

// Logger is the minimal logger surface used across the application.
type Logger interface {
	Debug(args ...any)
	Info(args ...any)
	Warn(args ...any)
	Error(args ...any)
	Debugf(format string, args ...any)
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
}

// Fields holds structured log fields.
type Fields map[string]any

// Log is the process-wide logger. It logs at info level until Init is called.
var Log Logger = NewLogger("info")

// service tags every *WithFields entry as service_name.
var service string

// Init replaces the global logger with one at the given level. Unknown or
// empty levels fall back to info. SERVICE_NAME overrides name.
func Init(name, level string) {
	if sn := os.Getenv("SERVICE_NAME"); sn != "" {
		name = sn
	}
	service = name

	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		level = "info"
	}
	Log = NewLogger(level)
}

// NewLogger builds a gookit/slog JSON logger writing to stdout.
func NewLogger(level string) Logger {
	logLevel := slog.LevelByName(level)

	var levels slog.Levels
	for _, lv := range slog.AllLevels {
		if lv <= logLevel {
			levels = append(levels, lv)
		}
	}

	h := handler.NewConsoleHandler(levels)
	// datetime/level/message are the only built-in keys, everything else goes
	// out as top-level fields.
	formatter := slog.NewJSONFormatter(func(f *slog.JSONFormatter) {
		f.Fields = []string{
			slog.FieldKeyDatetime,
			slog.FieldKeyLevel,
			slog.FieldKeyMessage,
		}
		f.Aliases = slog.StringMap{
			slog.FieldKeyDatetime: "datetime",
			slog.FieldKeyLevel:    "level",
			slog.FieldKeyMessage:  "message",
		}
		f.TimeFormat = "2006-01-02T15:04:05"
	})
	h.SetFormatter(formatter)

	return slog.NewWithHandlers(h)
}

// record attaches fields to an entry of the global logger. ok is false when
// Log was swapped for something that is not a gookit logger.
func record(fields Fields) (*slog.Record, bool) {
	lg, ok := Log.(*slog.Logger)
	if !ok {
		return nil, false
	}
	m := slog.M{}
	for k, v := range fields {
		m[k] = v
	}
	if _, set := m["service_name"]; !set && service != "" {
		m["service_name"] = service
	}
	return lg.WithFields(m), true
}

func InfoWithFields(msg string, fields Fields) {
	if r, ok := record(fields); ok {
		r.Info(msg)
		return
	}
	Log.Info(msg)
}

func DebugWithFields(msg string, fields Fields) {
	if r, ok := record(fields); ok {
		r.Debug(msg)
		return
	}
	Log.Debug(msg)
}

func WarnWithFields(msg string, fields Fields) {
	if r, ok := record(fields); ok {
		r.Warn(msg)
		return
	}
	Log.Warn(msg)
}

func ErrorWithFields(msg string, fields Fields) {
	if r, ok := record(fields); ok {
		r.Error(msg)
		return
	}
	Log.Error(msg)
}
