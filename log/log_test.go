package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"
)

func newTestLogger(buf *bytes.Buffer, level slog.Level) *Logger {
	h := slog.NewJSONHandler(buf, &slog.HandlerOptions{Level: level})
	return NewWithHandler(h)
}

func TestLoggerModule(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, slog.LevelDebug)
	child := l.Module("lower")

	child.Info("inlined wrapper", "unique_id", 3)

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal: %v (raw: %s)", err, buf.String())
	}
	if entry["module"] != "lower" {
		t.Fatalf("module = %v, want %q", entry["module"], "lower")
	}
	if entry["msg"] != "inlined wrapper" {
		t.Fatalf("msg = %v, want %q", entry["msg"], "inlined wrapper")
	}
}

func TestLoggerModuleChain(t *testing.T) {
	var buf bytes.Buffer
	l := newTestLogger(&buf, slog.LevelDebug)
	child := l.Module("access").With("type_id", 7)

	child.Info("variant taken")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("unmarshal: %v (raw: %s)", err, buf.String())
	}
	if entry["module"] != "access" {
		t.Fatalf("module = %v, want %q", entry["module"], "access")
	}
	if entry["type_id"] != float64(7) {
		t.Fatalf("type_id = %v, want 7", entry["type_id"])
	}
}

func TestDefaultLoggerIsUsable(t *testing.T) {
	// Smoke test: package-level helpers must not panic against the
	// process-wide default logger.
	Debug("debug", "x", 1)
	Info("info")
	Warn("warn")
	Error("error")
}
