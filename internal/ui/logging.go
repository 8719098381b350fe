package ui

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger keeps the printf-style surface used across the commands on top of
// a zap sugared logger writing to stderr.
type Logger struct {
	Debug bool
	s     *zap.SugaredLogger
}

func NewLogger(debug bool) *Logger {
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	cfg.DisableCaller = !debug
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	cfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	if !debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
	}

	z, err := cfg.Build()
	if err != nil {
		z = zap.NewNop()
	}

	return &Logger{Debug: debug, s: z.Sugar()}
}

// NewLoggerFrom wraps an existing zap logger.
func NewLoggerFrom(z *zap.Logger, debug bool) *Logger {
	return &Logger{Debug: debug, s: z.Sugar()}
}

func (l *Logger) Debugf(format string, args ...any) {
	l.s.Debugf(format, args...)
}

func (l *Logger) Infof(format string, args ...any) {
	l.s.Infof(format, args...)
}

func (l *Logger) Errorf(format string, args ...any) {
	l.s.Errorf(format, args...)
}

func (l *Logger) Sync() {
	_ = l.s.Sync()
}
