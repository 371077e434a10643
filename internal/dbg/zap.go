package dbg

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func NewDevLogger() *zap.Logger {
	return mustBuild(zap.NewDevelopmentConfig())
}

func NewProdLogger() *zap.Logger {
	return mustBuild(zap.NewProductionConfig())
}

// NewLogger builds a production style logger at the given level, e.g. "debug" or "warn".
// The development encoder is used when dev is set.
func NewLogger(level string, dev bool) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("unable to parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	if dev {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	return build(cfg)
}

func mustBuild(cfg zap.Config) *zap.Logger {
	logger, err := build(cfg)
	if err != nil {
		panic(err)
	}
	return logger
}

func build(cfg zap.Config) (*zap.Logger, error) {
	cfg.EncoderConfig.TimeKey = "ts"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	cfg.DisableCaller = true

	return cfg.Build()
}
