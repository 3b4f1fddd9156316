package logger

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the logging surface the rest of the program depends on
type Logger interface {
	Debug(string, ...zap.Field)
	Info(string, ...zap.Field)
	Warn(string, ...zap.Field)
	Error(string, ...zap.Field)

	DebugWithContext(context.Context, string, ...zap.Field)
	InfoWithContext(context.Context, string, ...zap.Field)
	WarnWithContext(context.Context, string, ...zap.Field)
	ErrorWithContext(context.Context, string, ...zap.Field)

	// With returns a child logger that adds fields to every entry
	With(...zap.Field) Logger

	// Sugar exposes the key/value flavoured logger for libraries that expect one
	Sugar() *zap.SugaredLogger
}

// ZapLogger implements Logger on top of a *zap.Logger
type ZapLogger struct {
	*zap.Logger
}

func (l *ZapLogger) With(fields ...zap.Field) Logger {
	return &ZapLogger{l.Logger.With(fields...)}
}

func (l *ZapLogger) Debug(msg string, fields ...zap.Field) { l.Logger.Debug(msg, fields...) }
func (l *ZapLogger) Info(msg string, fields ...zap.Field)  { l.Logger.Info(msg, fields...) }
func (l *ZapLogger) Warn(msg string, fields ...zap.Field)  { l.Logger.Warn(msg, fields...) }
func (l *ZapLogger) Error(msg string, fields ...zap.Field) { l.Logger.Error(msg, fields...) }

func (l *ZapLogger) DebugWithContext(ctx context.Context, msg string, fields ...zap.Field) {
	l.logContext(ctx, zapcore.DebugLevel, msg, fields)
}

func (l *ZapLogger) InfoWithContext(ctx context.Context, msg string, fields ...zap.Field) {
	l.logContext(ctx, zapcore.InfoLevel, msg, fields)
}

func (l *ZapLogger) WarnWithContext(ctx context.Context, msg string, fields ...zap.Field) {
	l.logContext(ctx, zapcore.WarnLevel, msg, fields)
}

func (l *ZapLogger) ErrorWithContext(ctx context.Context, msg string, fields ...zap.Field) {
	l.logContext(ctx, zapcore.ErrorLevel, msg, fields)
}

// logContext records why ctx ended, if it has, next to the entry
func (l *ZapLogger) logContext(ctx context.Context, level zapcore.Level, msg string, fields []zap.Field) {
	ce := l.Logger.Check(level, msg)
	if ce == nil {
		return
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			fields = append(fields, zap.NamedError("context", err))
		}
	}
	ce.Write(fields...)
}

// NewNoopLogger returns a Logger that discards everything
func NewNoopLogger() *ZapLogger {
	return &ZapLogger{zap.NewNop()}
}

// NewLogger builds a zap logger writing to output ("stderr", "stdout" or a file path).
// Level "none" yields a no-op logger.
func NewLogger(logFormat, logLevel, output string) (*ZapLogger, error) {
	if logLevel == "none" {
		return NewNoopLogger(), nil
	}

	level, err := zapcore.ParseLevel(logLevel)
	if err != nil {
		return nil, fmt.Errorf("unknown log level %q: %w", logLevel, err)
	}
	if output == "" {
		output = "stderr"
	}

	cfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(level),
		Encoding:          "json",
		EncoderConfig:     zap.NewProductionEncoderConfig(),
		OutputPaths:       []string{output},
		ErrorOutputPaths:  []string{output},
		DisableCaller:     true,
		DisableStacktrace: true,
	}
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	switch logFormat {
	case "json":
	case "text":
		cfg.Encoding = "console"
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	default:
		return nil, fmt.Errorf("unknown log format: %s", logFormat)
	}

	zl, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return &ZapLogger{zl}, nil
}
