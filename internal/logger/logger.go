// Package logger wraps the zap logger used across the application.
package logger

import (
	"go.uber.org/zap"
)

type Logger struct {
	Log *zap.Logger
}

// New returns a logger that discards everything until Init is called.
func New() *Logger {
	return &Logger{
		Log: zap.NewNop(),
	}
}

// Init replaces the no-op logger with a production JSON logger at level.
func (l *Logger) Init(level string) error {
	lvl, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return err
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = lvl
	zl, err := cfg.Build()
	if err != nil {
		return err
	}

	l.Log = zl
	return nil
}

// Info logs msg with loosely typed key value pairs.
func (l *Logger) Info(msg string, keysAndValues ...interface{}) {
	l.Log.Sugar().Infow(msg, keysAndValues...)
}

// Sync flushes buffered entries.
func (l *Logger) Sync() error {
	return l.Log.Sync()
}
