package logger

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	DEBUG int = iota
	INFO
	WARNING
	ERROR
	SILENCE
)

type Logger interface {
	Debugf(msg string, a ...any)
	Infof(msg string, a ...any)
	Warnf(msg string, a ...any)
	Errorf(msg string, a ...any)
}

type zapLogger struct {
	sugar *zap.SugaredLogger
}

// NewZapLogger builds a Logger on top of zap. Level is one of DEBUG, INFO, WARNING, ERROR or
// SILENCE. Production loggers emit JSON, the others a colored console format.
func NewZapLogger(level string, production bool) *zapLogger {
	var cfg zap.Config
	if production {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}

	if ParseLevel(level) == SILENCE {
		return &zapLogger{sugar: zap.NewNop().Sugar()}
	}

	cfg.Level = zap.NewAtomicLevelAt(toZapLevel(ParseLevel(level)))
	cfg.OutputPaths = []string{"stderr"}

	l, err := cfg.Build(zap.AddCallerSkip(1))
	if err != nil {
		panic(err)
	}

	return &zapLogger{sugar: l.Sugar()}
}

// NewLogger returns a development logger at the given numeric level.
func NewLogger(level int) *zapLogger {
	return NewZapLogger(levelName(level), false)
}

// NewNopLogger discards everything.
func NewNopLogger() *zapLogger {
	return &zapLogger{sugar: zap.NewNop().Sugar()}
}

func (l *zapLogger) Debugf(msg string, a ...any) {
	l.sugar.Debugf(msg, a...)
}

func (l *zapLogger) Infof(msg string, a ...any) {
	l.sugar.Infof(msg, a...)
}

func (l *zapLogger) Warnf(msg string, a ...any) {
	l.sugar.Warnf(msg, a...)
}

func (l *zapLogger) Errorf(msg string, a ...any) {
	l.sugar.Errorf(msg, a...)
}

// Sync flushes buffered entries.
func (l *zapLogger) Sync() {
	_ = l.sugar.Sync()
}

func ParseLevel(level string) int {
	switch strings.ToUpper(level) {
	case "DEBUG":
		return DEBUG
	case "WARN", "WARNING":
		return WARNING
	case "ERROR":
		return ERROR
	case "SILENCE", "NONE":
		return SILENCE
	default:
		return INFO
	}
}

func levelName(level int) string {
	switch level {
	case DEBUG:
		return "DEBUG"
	case WARNING:
		return "WARNING"
	case ERROR:
		return "ERROR"
	case SILENCE:
		return "SILENCE"
	default:
		return "INFO"
	}
}

func toZapLevel(level int) zapcore.Level {
	switch level {
	case DEBUG:
		return zapcore.DebugLevel
	case WARNING:
		return zapcore.WarnLevel
	case ERROR:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
