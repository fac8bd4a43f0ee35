package infrastructure

import (
	"errors"
	"fmt"
	"os"
	"syscall"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log output formats
const (
	LogFormatJSON    = "json"
	LogFormatConsole = "console"
)

// LogConfig selects verbosity and encoding of the service log
type LogConfig struct {
	Level  string // debug, info, warn, error; empty picks by environment
	Format string // json or console; empty picks by environment
}

// NewLogger builds the service logger. Production defaults to JSON at info,
// everything else to colored console output at debug. Every entry carries the
// service name and environment so logs from the API and the catalog watcher
// can be told apart when shipped together.
func NewLogger(environment, service string, config LogConfig) (*zap.Logger, error) {
	production := environment == "production"

	level := zapcore.DebugLevel
	if production {
		level = zapcore.InfoLevel
	}
	if config.Level != "" {
		parsed, err := zapcore.ParseLevel(config.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", config.Level, err)
		}
		level = parsed
	}

	format := config.Format
	if format == "" {
		format = LogFormatConsole
		if production {
			format = LogFormatJSON
		}
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "timestamp"
	encoderConfig.MessageKey = "message"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	var encoder zapcore.Encoder
	switch format {
	case LogFormatJSON:
		encoder = zapcore.NewJSONEncoder(encoderConfig)
	case LogFormatConsole:
		encoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		encoder = zapcore.NewConsoleEncoder(encoderConfig)
	default:
		return nil, fmt.Errorf("invalid log format %q", format)
	}

	core := zapcore.NewCore(encoder, zapcore.Lock(os.Stdout), zap.NewAtomicLevelAt(level))
	return zap.New(core,
		zap.AddCaller(),
		zap.AddStacktrace(zapcore.ErrorLevel),
		zap.ErrorOutput(zapcore.Lock(os.Stderr)),
		zap.Fields(
			zap.String("service", service),
			zap.String("environment", environment),
		),
	), nil
}

// SyncLogger flushes buffered entries. Terminals reject fsync with EINVAL or
// ENOTTY, which is not worth reporting.
func SyncLogger(logger *zap.Logger) {
	err := logger.Sync()
	if err == nil || errors.Is(err, syscall.EINVAL) || errors.Is(err, syscall.ENOTTY) {
		return
	}
	fmt.Fprintf(os.Stderr, "failed to sync logger: %v\n", err)
}
