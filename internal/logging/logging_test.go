package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	debugLog, err := New(true)
	if err != nil {
		t.Fatalf("New(true) error: %v", err)
	}
	if !debugLog.Desugar().Core().Enabled(zapcore.DebugLevel) {
		t.Error("debug logger should enable debug level")
	}

	quietLog, err := New(false)
	if err != nil {
		t.Fatalf("New(false) error: %v", err)
	}
	if quietLog.Desugar().Core().Enabled(zapcore.InfoLevel) {
		t.Error("quiet logger should suppress info level")
	}
	if !quietLog.Desugar().Core().Enabled(zapcore.WarnLevel) {
		t.Error("quiet logger should keep warnings")
	}
}
