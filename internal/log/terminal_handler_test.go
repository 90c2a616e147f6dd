package log

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"
)

func TestTerminalHandler_Format(t *testing.T) {
	var buf bytes.Buffer
	h := newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}, false)

	ts := time.Date(2026, 1, 15, 10, 30, 45, 123000000, time.UTC)
	r := slog.NewRecord(ts, slog.LevelInfo, "check finished", 0)
	r.AddAttrs(slog.String("version", "v0.6"), slog.Int("problems", 0))

	if err := h.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle() error: %v", err)
	}

	want := "10:30:45.123 INF check finished version=v0.6 problems=0\n"
	if buf.String() != want {
		t.Errorf("Handle() wrote %q, want %q", buf.String(), want)
	}
}

func TestTerminalHandler_Levels(t *testing.T) {
	tests := []struct {
		level    slog.Level
		expected string
	}{
		{slog.LevelDebug, "DBG"},
		{slog.LevelInfo, "INF"},
		{slog.LevelWarn, "WRN"},
		{slog.LevelError, "ERR"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			var buf bytes.Buffer
			h := newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}, false)

			r := slog.NewRecord(time.Now(), tt.level, "msg", 0)
			if err := h.Handle(context.Background(), r); err != nil {
				t.Fatalf("Handle() error: %v", err)
			}
			if !strings.Contains(buf.String(), tt.expected) {
				t.Errorf("expected %s in output, got: %s", tt.expected, buf.String())
			}
		})
	}
}

func TestTerminalHandler_ColourToggle(t *testing.T) {
	var coloured, plain bytes.Buffer
	r := slog.NewRecord(time.Now(), slog.LevelError, "fail", 0)

	if err := newTerminalHandler(&coloured, nil, true).Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle() error: %v", err)
	}
	if err := newTerminalHandler(&plain, nil, false).Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle() error: %v", err)
	}

	if !strings.Contains(coloured.String(), ansiRed) {
		t.Error("expected red colour for ERROR level")
	}
	if strings.Contains(plain.String(), "\033[") {
		t.Errorf("expected no escape codes, got: %q", plain.String())
	}
}

func TestTerminalHandler_FiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(newTerminalHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn}, false))

	logger.Debug("debug")
	logger.Info("info")
	logger.Warn("warn")
	logger.Error("error")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Errorf("expected 2 log lines, got %d: %s", len(lines), buf.String())
	}
}

func TestTerminalHandler_DefaultLevel(t *testing.T) {
	h := newTerminalHandler(&bytes.Buffer{}, nil, false)

	if !h.Enabled(context.Background(), slog.LevelInfo) {
		t.Error("default level should be INFO")
	}
	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("DEBUG should be disabled at default INFO level")
	}
}

func TestTerminalHandler_AttrsAndGroups(t *testing.T) {
	var buf bytes.Buffer
	base := newTerminalHandler(&buf, nil, false)
	h := base.WithAttrs([]slog.Attr{slog.String("component", "api")}).WithGroup("http")

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "request", 0)
	r.AddAttrs(
		slog.String("method", "GET"),
		slog.Group("resp", slog.Int("status", 200)),
	)
	if err := h.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle() error: %v", err)
	}

	output := buf.String()
	for _, want := range []string{"component=api", "http.method=GET", "http.resp.status=200"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected %s in output, got: %s", want, output)
		}
	}

	if base.WithGroup("") != base {
		t.Error("WithGroup with empty string should return same handler")
	}
}

func TestTerminalHandler_QuotesStrings(t *testing.T) {
	var buf bytes.Buffer
	h := newTerminalHandler(&buf, nil, false)

	r := slog.NewRecord(time.Now(), slog.LevelInfo, "msg", 0)
	r.AddAttrs(slog.String("path", "Documentation > Usage"), slog.String("link", ""))
	if err := h.Handle(context.Background(), r); err != nil {
		t.Fatalf("Handle() error: %v", err)
	}

	output := buf.String()
	if !strings.Contains(output, `path="Documentation > Usage"`) {
		t.Errorf("expected quoted path, got: %s", output)
	}
	if !strings.Contains(output, `link=""`) {
		t.Errorf("expected quoted empty link, got: %s", output)
	}
}
