package logger

import "context"

// Logger is the ctx-first printf logger used across the pipeline.
type Logger interface {
	Debug(ctx context.Context, msg string, args ...interface{})
	Info(ctx context.Context, msg string, args ...interface{})
	Warn(ctx context.Context, msg string, args ...interface{})
	Error(ctx context.Context, msg string, args ...interface{})
	// With returns a logger that attaches a field to every entry.
	With(key string, value interface{}) Logger
}
