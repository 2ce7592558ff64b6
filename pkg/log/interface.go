// Package log is the structured logging layer used by the clustering code.
//
// Logger mirrors the log/slog call shape (message plus key/value pairs).
// Backends: slog (SetupLogger), zerolog (NewZerologLogger) and an in-memory
// TestLogger.
//
//	logger := log.GetLogger().With(log.ModelNameKey, "KMeans")
//	logger.Info("KMeans fit completed", log.IterationKey, 12, log.ConvergedKey, true)
package log

import (
	"context"
	"sync"
)

// Logger is implemented by every backend. Error treats a leading error
// argument as the value of ErrAttrKey.
type Logger interface {
	Debug(msg string, fields ...any)
	Info(msg string, fields ...any)
	Warn(msg string, fields ...any)
	Error(msg string, fields ...any)
	With(fields ...any) Logger
	// Enabled lets callers skip building per-iteration fields.
	Enabled(ctx context.Context, level Level) bool
}

// Level uses the slog.Level numbering.
type Level int

const (
	LevelDebug Level = -4
	LevelInfo  Level = 0
	LevelWarn  Level = 4
	LevelError Level = 8
)

func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}

var (
	defaultMu     sync.RWMutex
	defaultLogger Logger
)

// SetLogger replaces the process-wide default logger.
// Passing nil restores the slog.Default() backed logger.
func SetLogger(l Logger) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultLogger = l
}

// GetLogger returns the process-wide default logger.
// Unless SetLogger was called it writes through slog.Default(), so
// SetupLogger also configures it.
func GetLogger() Logger {
	defaultMu.RLock()
	l := defaultLogger
	defaultMu.RUnlock()
	if l != nil {
		return l
	}
	return NewSlogLogger(nil)
}
