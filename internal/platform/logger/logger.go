package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a development logger in debug mode and a production logger
// otherwise. level and format ("json" or "console") override the preset when set.
func New(debugMode bool, level, format string) (*zap.Logger, error) {
	var cfg zap.Config
	if debugMode {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
	}

	if level != "" {
		parsed, err := zapcore.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("parse log level failed: %w", err)
		}
		cfg.Level = zap.NewAtomicLevelAt(parsed)
	}

	switch format {
	case "":
	case "json", "console":
		cfg.Encoding = format
	default:
		return nil, fmt.Errorf("unsupported log format %q", format)
	}

	l, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("init logger failed: %w", err)
	}
	return l, nil
}
