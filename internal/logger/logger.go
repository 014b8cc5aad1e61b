package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps the zap logger used by the evaluation service and the CLI.
type Logger struct {
	*zap.Logger
}

// NewLogger creates the default warn level logger, quiet enough that a
// successful run prints nothing to stderr.
func NewLogger() (*Logger, error) {
	return NewLoggerWithLevel(zapcore.WarnLevel)
}

// NewLoggerWithLevel creates a production JSON logger at level.
// Log lines go to stderr so that stdout stays free for reports.
func NewLoggerWithLevel(level zapcore.Level) (*Logger, error) {
	config := zap.NewProductionConfig()
	config.OutputPaths = []string{"stderr"}
	config.ErrorOutputPaths = []string{"stderr"}
	config.Level = zap.NewAtomicLevelAt(level)

	zapLogger, err := config.Build()
	if err != nil {
		return nil, err
	}

	return &Logger{
		Logger: zapLogger,
	}, nil
}

// NewNopLogger returns a logger that discards everything.
func NewNopLogger() *Logger {
	return &Logger{Logger: zap.NewNop()}
}

// Sync flushes any buffered log entries
func (l *Logger) Sync() error {
	if l.Logger != nil {
		return l.Logger.Sync()
	}

	return nil
}
