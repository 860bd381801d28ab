package logger

import (
	"context"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
)

type implLogger struct {
	entry *logrus.Entry
}

// Options configures the logrus backend.
type Options struct {
	Level  string
	Format string // "text" or "json"
	Output io.Writer
}

// NewWithOptions creates a Logger from explicit options.
func NewWithOptions(opts Options) Logger {
	l := logrus.New()
	l.SetLevel(parseLevel(opts.Level))
	if opts.Output != nil {
		l.SetOutput(opts.Output)
	} else {
		l.SetOutput(os.Stdout)
	}
	if strings.EqualFold(opts.Format, "json") {
		l.SetFormatter(&logrus.JSONFormatter{})
	} else {
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	return &implLogger{entry: logrus.NewEntry(l)}
}

// parseLevel maps config levels onto logrus, defaulting to info.
func parseLevel(level string) logrus.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return logrus.DebugLevel
	case "warn", "warning":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	default:
		return logrus.InfoLevel
	}
}

func (l *implLogger) Debug(ctx context.Context, msg string, args ...interface{}) {
	l.entry.WithContext(ctx).Debugf(msg, args...)
}

func (l *implLogger) Info(ctx context.Context, msg string, args ...interface{}) {
	l.entry.WithContext(ctx).Infof(msg, args...)
}

func (l *implLogger) Warn(ctx context.Context, msg string, args ...interface{}) {
	l.entry.WithContext(ctx).Warnf(msg, args...)
}

func (l *implLogger) Error(ctx context.Context, msg string, args ...interface{}) {
	l.entry.WithContext(ctx).Errorf(msg, args...)
}

func (l *implLogger) With(key string, value interface{}) Logger {
	return &implLogger{entry: l.entry.WithField(key, value)}
}

// Nop returns a Logger that discards everything. Handy in tests.
func Nop() Logger {
	return NewWithOptions(Options{Level: "error", Output: io.Discard})
}
