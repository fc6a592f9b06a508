package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want Level
	}{
		{"debug", LevelDebug},
		{"INFO", LevelInfo},
		{"warning", LevelWarn},
		{" error ", LevelError},
		{"verbose", LevelInfo},
		{"", LevelInfo},
	}
	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNew_JSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := New(Options{Level: LevelWarn, Format: "json", Output: &buf})

	log.Info("dropped")
	log.Warn("kept", "body", "moon")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("got %d lines: %q", len(lines), buf.String())
	}
	var entry map[string]any
	if err := json.Unmarshal([]byte(lines[0]), &entry); err != nil {
		t.Fatalf("not json: %v", err)
	}
	if entry["msg"] != "kept" || entry["body"] != "moon" {
		t.Errorf("entry = %v", entry)
	}
}

func TestWithRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	base := New(Options{Format: "text", Output: &buf})

	ctx, log := WithRequestLogger(context.Background(), base)
	id := RequestIDFromContext(ctx)
	if id == "" {
		t.Fatal("request id not set")
	}
	if FromContext(ctx, nil) != log {
		t.Error("FromContext did not return the request logger")
	}

	log.Info("hello")
	if !strings.Contains(buf.String(), "request_id="+id) {
		t.Errorf("log line missing request id: %q", buf.String())
	}

	// An existing id is kept.
	ctx2, _ := WithRequestLogger(ContextWithRequestID(context.Background(), "abc"), base)
	if RequestIDFromContext(ctx2) != "abc" {
		t.Errorf("request id = %q, want abc", RequestIDFromContext(ctx2))
	}
}

func TestFromContext_Fallback(t *testing.T) {
	fallback := Discard()
	if FromContext(context.Background(), fallback) != fallback {
		t.Error("expected fallback logger")
	}
	if FromContext(context.Background(), nil) == nil {
		t.Error("expected a non-nil logger")
	}
}
