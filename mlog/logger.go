package mlog

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type LogConfig struct {
	// Level, See also zapcore.ParseLevel.
	Level string `yaml:"level"`

	// File that logger will be writen into.
	// Default is stderr.
	File string `yaml:"file"`

	// Production enables json output.
	Production bool `yaml:"production"`
}

var (
	stderr = zapcore.Lock(os.Stderr)
	lvl    = zap.NewAtomicLevelAt(zap.InfoLevel)
	l      = zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), stderr, lvl))
)

// NewLogger builds a logger from lc. The returned close func syncs the
// logger and closes the log file, if any. It must be called once the
// logger is no longer used.
func NewLogger(lc *LogConfig) (*zap.Logger, func(), error) {
	lvl, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("invalid log level: %w", err)
	}

	var out zapcore.WriteSyncer
	closeFile := func() {}
	if lf := lc.File; len(lf) > 0 {
		f, c, err := zap.Open(lf)
		if err != nil {
			return nil, nil, fmt.Errorf("open log file: %w", err)
		}
		out = zapcore.Lock(f)
		closeFile = c
	} else {
		out = stderr
	}

	var lg *zap.Logger
	if lc.Production {
		lg = zap.New(zapcore.NewCore(zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()), out, lvl))
	} else {
		lg = zap.New(zapcore.NewCore(zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()), out, lvl))
	}
	return lg, func() {
		_ = lg.Sync()
		closeFile()
	}, nil
}

// L is a global logger.
func L() *zap.Logger {
	return l
}

// SetLevel sets the lowest logging level for the global logger.
func SetLevel(l zapcore.Level) {
	lvl.SetLevel(l)
}
