// Package logging builds the zap logger shared by the CLI and the proof
// engine: production (JSON) config by default, debug level under
// --verbose.
package logging

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a *zap.Logger. verbose switches the level to Debug; otherwise
// the logger runs at Info, so only verbose mode prints Debug-level
// detail.
func New(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("logging: building zap logger: %w", err)
	}
	return logger, nil
}

// Nop returns a logger that discards everything, for tests and library
// callers that haven't set one up.
func Nop() *zap.Logger { return zap.NewNop() }
