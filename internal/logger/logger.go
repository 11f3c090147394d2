package logger

import (
	"log"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
	Error(msg string, fields ...zap.Field)

	Infof(template string, args ...any)
	Errorf(template string, args ...any)

	// StdLogger adapts the logger for net/http's ErrorLog.
	StdLogger() *log.Logger
	Sync() error
}

type zapLogger struct {
	base    *zap.Logger
	sugared *zap.SugaredLogger
}

// New builds a console logger when pretty is set and a JSON production logger otherwise.
func New(level string, pretty bool) (Logger, error) {
	var cfg zap.Config
	if pretty {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	} else {
		cfg = zap.NewProductionConfig()
	}

	if lvl, ok := parseLevel(level); ok {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}

	base, err := cfg.Build(zap.AddStacktrace(zapcore.FatalLevel))
	if err != nil {
		return nil, err
	}

	return wrap(base), nil
}

// NewNop returns a logger that discards everything. Used by tests.
func NewNop() Logger {
	return wrap(zap.NewNop())
}

// FromZap wraps an existing zap logger, e.g. one built on zaptest/observer.
func FromZap(base *zap.Logger) Logger {
	return wrap(base)
}

func wrap(base *zap.Logger) *zapLogger {
	return &zapLogger{base: base, sugared: base.Sugar()}
}

func parseLevel(lvl string) (zapcore.Level, bool) {
	switch lvl {
	case "debug":
		return zapcore.DebugLevel, true
	case "info":
		return zapcore.InfoLevel, true
	case "warn":
		return zapcore.WarnLevel, true
	case "error":
		return zapcore.ErrorLevel, true
	default:
		return zapcore.InfoLevel, false
	}
}

func (l *zapLogger) Debug(msg string, fields ...zap.Field) { l.base.Debug(msg, fields...) }
func (l *zapLogger) Info(msg string, fields ...zap.Field)  { l.base.Info(msg, fields...) }
func (l *zapLogger) Warn(msg string, fields ...zap.Field)  { l.base.Warn(msg, fields...) }
func (l *zapLogger) Error(msg string, fields ...zap.Field) { l.base.Error(msg, fields...) }

func (l *zapLogger) Infof(t string, args ...any)  { l.sugared.Infof(t, args...) }
func (l *zapLogger) Errorf(t string, args ...any) { l.sugared.Errorf(t, args...) }

func (l *zapLogger) StdLogger() *log.Logger {
	std, err := zap.NewStdLogAt(l.base, zapcore.ErrorLevel)
	if err != nil {
		return zap.NewStdLog(l.base)
	}
	return std
}

func (l *zapLogger) Sync() error { return l.base.Sync() }

// Field constructors so callers don't import zap directly.
func String(key, val string) zap.Field                 { return zap.String(key, val) }
func Int(key string, val int) zap.Field                { return zap.Int(key, val) }
func Int64(key string, val int64) zap.Field            { return zap.Int64(key, val) }
func Duration(key string, val time.Duration) zap.Field { return zap.Duration(key, val) }
func Error(err error) zap.Field                        { return zap.Error(err) }
