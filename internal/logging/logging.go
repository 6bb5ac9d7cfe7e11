// Package logging builds the zap logger used across the site.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const appName = "portfolio"

// Config selects console and optional file output.
type Config struct {
	Level       string `yaml:"level" koanf:"level"`             // none, debug or normal
	Format      string `yaml:"format" koanf:"format"`           // console or json
	Destination string `yaml:"destination" koanf:"destination"` // optional log file
}

// Prepare returns the configured logger. Errors and above go to stderr,
// everything else enabled by Level goes to stdout. When Destination is set
// the same entries are also appended to that file as JSON.
func (conf Config) Prepare() (*zap.Logger, error) {
	var min zapcore.Level
	switch conf.Level {
	case "none":
		return zap.NewNop(), nil
	case "debug":
		min = zapcore.DebugLevel
	case "normal", "":
		min = zapcore.InfoLevel
	default:
		return nil, fmt.Errorf("unknown log level %q", conf.Level)
	}

	ec := zap.NewDevelopmentEncoderConfig()
	ec.EncodeCaller = nil
	ec.EncodeLevel = zapcore.CapitalLevelEncoder
	var enc zapcore.Encoder
	switch conf.Format {
	case "json":
		pc := zap.NewProductionEncoderConfig()
		pc.EncodeTime = zapcore.ISO8601TimeEncoder
		enc = zapcore.NewJSONEncoder(pc)
	case "console", "":
		enc = zapcore.NewConsoleEncoder(ec)
	default:
		return nil, fmt.Errorf("unknown log format %q", conf.Format)
	}

	low := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return min <= lvl && lvl < zapcore.ErrorLevel
	})
	high := zap.LevelEnablerFunc(func(lvl zapcore.Level) bool {
		return lvl >= zapcore.ErrorLevel
	})

	cores := []zapcore.Core{
		zapcore.NewCore(enc, zapcore.Lock(os.Stdout), low),
		zapcore.NewCore(enc.Clone(), zapcore.Lock(os.Stderr), high),
	}

	if conf.Destination != "" {
		if err := os.MkdirAll(filepath.Dir(conf.Destination), 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
		f, err := os.OpenFile(conf.Destination, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("unable to access log destination (%s): %w", conf.Destination, err)
		}
		cores = append(cores, zapcore.NewCore(
			zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
			zapcore.Lock(f),
			zap.NewAtomicLevelAt(min),
		))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()).Named(appName), nil
}
