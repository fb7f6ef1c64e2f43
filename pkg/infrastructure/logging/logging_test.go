package logging

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestContextAttrsAreMerged(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), New(&buf, slog.LevelDebug))
	ctx = WithAttrs(ctx, slog.String("component", "ledger"), slog.String("store", "files"))
	ctx = WithAttrs(ctx, slog.String("store", "sqlite"))

	Info(ctx, "entry appended", slog.Int("qty", 30))

	line := buf.String()
	for _, want := range []string{"component=ledger", "store=sqlite", "qty=30", `msg="entry appended"`} {
		if !strings.Contains(line, want) {
			t.Errorf("Expected log line to contain %q, got %q", want, line)
		}
	}
	if strings.Contains(line, "store=files") {
		t.Errorf("Expected store attr to be replaced, got %q", line)
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithLogger(context.Background(), New(&buf, slog.LevelWarn))

	Debug(ctx, "hidden")
	Info(ctx, "hidden too")
	Warn(ctx, "shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("Expected debug/info to be filtered, got %q", buf.String())
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("Expected warn line, got %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		input    string
		expected slog.Level
		wantErr  bool
	}{
		{"debug", slog.LevelDebug, false},
		{"", slog.LevelInfo, false},
		{"INFO", slog.LevelInfo, false},
		{"warning", slog.LevelWarn, false},
		{"error", slog.LevelError, false},
		{"loud", slog.LevelInfo, true},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			level, err := ParseLevel(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("Expected error for %q", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if level != tc.expected {
				t.Errorf("Expected %v, got %v", tc.expected, level)
			}
		})
	}
}
