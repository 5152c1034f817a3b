// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package logging builds the zap logger used for pipeline diagnostics.
// User-facing progress goes to stdout through io.Writer; the logger carries
// debug detail and warnings on stderr.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a sugared logger writing to stderr. With debug true the level
// is Debug and output is the human-readable console encoding; otherwise
// only warnings and errors surface.
func New(debug bool) (*zap.SugaredLogger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	}

	logger, err := cfg.Build()
	if err != nil {
		return nil, err
	}
	return logger.Sugar(), nil
}
