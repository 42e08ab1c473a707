package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestNewRendersTraceLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, LevelTrace)
	log.Log(context.Background(), LevelTrace, "response received")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec["level"] != "TRACE" {
		t.Fatalf("expected TRACE level, got %v", rec["level"])
	}
}

func TestNewFiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, slog.LevelInfo)
	log.Log(context.Background(), LevelTrace, "dropped")
	log.Debug("dropped")
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"trace":   LevelTrace,
		"DEBUG":   slog.LevelDebug,
		" warn ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Errorf("ParseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestFromWithoutSpanReturnsBase(t *testing.T) {
	base := Discard()
	if got := From(context.Background(), base); got != base {
		t.Fatalf("expected base logger")
	}
}
