package log

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestSetLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	SetLogger(zap.New(core))
	defer SetLogger(nil)

	Debug("debug message", zap.Int("n", 1))
	Warn("warn message")

	if logs.Len() != 2 {
		t.Fatalf("Expected 2 log entries, got %d", logs.Len())
	}
	entry := logs.All()[0]
	if entry.Message != "debug message" {
		t.Errorf("Expected 'debug message', got %q", entry.Message)
	}
	if entry.ContextMap()["n"] != int64(1) {
		t.Errorf("Expected field n=1, got %v", entry.ContextMap()["n"])
	}
}

func TestNilLoggerRestoresNop(t *testing.T) {
	SetLogger(nil)
	if L() == nil {
		t.Fatal("Expected non-nil logger after SetLogger(nil)")
	}
	// must not panic
	Info("ignored")
}
