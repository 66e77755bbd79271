// Package logging builds the zap loggers used across remixer.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Options struct {
	Level       string
	Development bool
	// OutputPath replaces stderr when set. The TUI needs this so log lines
	// do not land on the terminal it is drawing.
	OutputPath string
}

// New builds a logger at level writing to stderr.
func New(level string, development bool) (*zap.Logger, error) {
	return Build(Options{Level: level, Development: development})
}

// ToFile builds a logger writing JSON lines to path.
func ToFile(level, path string) (*zap.Logger, error) {
	return Build(Options{Level: level, OutputPath: path})
}

func Build(opts Options) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	config := zap.NewProductionConfig()
	if opts.Development {
		config = zap.NewDevelopmentConfig()
	}
	config.Level = zap.NewAtomicLevelAt(lvl)
	if opts.OutputPath != "" {
		config.OutputPaths = []string{opts.OutputPath}
		config.ErrorOutputPaths = []string{opts.OutputPath}
	}

	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}
