package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps a zap.Logger with field helpers for clock-stamped data.
// The helpers return a *Logger so they chain: l.WithKey(k).WithError(err).
type Logger struct {
	*zap.Logger
}

// NewLogger builds a logger for the given level (debug, info, warn, error)
// and encoding (json or console). Output goes to stdout without sampling.
func NewLogger(level string, format string) (*Logger, error) {
	atomicLevel, err := zap.ParseAtomicLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = atomicLevel
	cfg.Encoding = format
	cfg.Sampling = nil
	cfg.OutputPaths = []string{"stdout"}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.MessageKey = "message"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build %s logger: %w", format, err)
	}
	return &Logger{Logger: logger}, nil
}

// New wraps an existing zap logger. A nil logger gives Nop.
func New(logger *zap.Logger) *Logger {
	if logger == nil {
		return Nop()
	}
	return &Logger{Logger: logger}
}

// Nop returns a logger that discards everything.
func Nop() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// Named adds a sub-scope to the logger name.
func (l *Logger) Named(name string) *Logger {
	return &Logger{Logger: l.Logger.Named(name)}
}

func (l *Logger) WithNodeID(nodeID string) *Logger {
	return &Logger{Logger: l.With(zap.String("node_id", nodeID))}
}

func (l *Logger) WithKey(key string) *Logger {
	return &Logger{Logger: l.With(zap.String("key", key))}
}

func (l *Logger) WithError(err error) *Logger {
	return &Logger{Logger: l.With(zap.Error(err))}
}
