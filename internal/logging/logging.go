// Package logging builds the zap logger used by the packer CLI.
package logging

import (
	"io"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/mesh-intelligence/packer/pkg/types"
)

// Rotation limits for the optional log file.
const (
	maxSizeMB  = 64
	maxBackups = 7
	maxAgeDays = 7
)

// ParseLevel maps a config level name to a zap level. Unknown names map to info.
func ParseLevel(lvl string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(lvl)) {
	case types.LogLevelDebug:
		return zapcore.DebugLevel
	case types.LogLevelWarn:
		return zapcore.WarnLevel
	case types.LogLevelError:
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New returns a logger for cfg that writes to stderr. Production mode uses
// JSON encoding, development mode a console encoding. When cfg.LogFile is set
// a rotating JSON file sink is teed with the console core.
func New(cfg types.Config) *zap.Logger {
	return NewWithWriter(cfg, os.Stderr)
}

// NewWithWriter is New with the console output redirected to w.
func NewWithWriter(cfg types.Config, w io.Writer) *zap.Logger {
	level := zap.NewAtomicLevelAt(ParseLevel(cfg.LogLevel))

	var encCfg zapcore.EncoderConfig
	var enc zapcore.Encoder
	if cfg.LogMode == types.LogModeProduction {
		encCfg = zap.NewProductionEncoderConfig()
		enc = zapcore.NewJSONEncoder(encCfg)
	} else {
		encCfg = zap.NewDevelopmentEncoderConfig()
		enc = zapcore.NewConsoleEncoder(encCfg)
	}

	core := zapcore.NewCore(enc, zapcore.AddSync(w), level)
	if cfg.LogFile != "" {
		rotator := &lumberjack.Logger{
			Filename:   cfg.LogFile,
			MaxSize:    maxSizeMB,
			MaxBackups: maxBackups,
			MaxAge:     maxAgeDays,
		}
		core = zapcore.NewTee(
			core,
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(rotator),
				level,
			),
		)
	}

	return zap.New(core, zap.AddCaller())
}
