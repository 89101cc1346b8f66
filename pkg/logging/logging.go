// Package logging builds the zap logger shared by commands and the UI.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Options select the logger's level and destination.
type Options struct {
	Debug bool
	// File receives log lines instead of stderr when set.
	File string
	// Quiet discards output when File is empty. The full-screen UI sets it so
	// stderr writes do not tear the display.
	Quiet bool
}

// New builds a production logger for o.
func New(o Options) (*zap.Logger, error) {
	if o.Quiet && o.File == "" {
		return zap.NewNop(), nil
	}
	config := zap.NewProductionConfig()
	if o.Debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	if o.File != "" {
		config.OutputPaths = []string{o.File}
		config.ErrorOutputPaths = []string{o.File}
	}
	logger, err := config.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: build logger: %w", err)
	}
	return logger, nil
}
