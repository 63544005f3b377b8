package logging

import (
	"bytes"
	"strings"
	"testing"
)

func TestInitLevelAndFormat(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { Logger = prev })

	var buf bytes.Buffer
	if err := Init(&buf, "warn", "json"); err != nil {
		t.Fatalf("Init: %v", err)
	}
	Info("hidden", "k", "v")
	Warn("analysis failed", "pitch_id", "p1")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, `"pitch_id":"p1"`) || !strings.Contains(out, "analysis failed") {
		t.Fatalf("expected json warn line, got %s", out)
	}
}

func TestInitRejectsUnknownValues(t *testing.T) {
	prev := Logger
	t.Cleanup(func() { Logger = prev })

	if err := Init(&bytes.Buffer{}, "loud", "text"); err == nil {
		t.Fatalf("expected level error")
	}
	if err := Init(&bytes.Buffer{}, "info", "xml"); err == nil {
		t.Fatalf("expected format error")
	}
}
