package console_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/agriconnect/agriconnect/internal/logging"
	"github.com/agriconnect/agriconnect/internal/logging/console"
)

func TestConsoleLogger_WritesStructuredEntry(t *testing.T) {
	var buf bytes.Buffer
	now := time.Date(2025, 2, 3, 9, 30, 0, 125000000, time.UTC)

	minLevel := console.LevelDebug
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		TimeFunc: func() time.Time { return now },
		MinLevel: &minLevel,
	})

	logger := logging.WithFields(provider.GetLogger("agriconnect.locale"), map[string]any{"module": "agriconnect.locale"})
	ctx := logging.ContextWithFields(context.Background(), map[string]any{
		"request_id": "req-42",
	})
	logger = logger.WithContext(ctx)

	logger.Info("locale.resolved", "target", "hi", "source", "stored")

	got := strings.TrimSpace(buf.String())
	want := "2025-02-03T09:30:00.125Z INFO locale.resolved logger=agriconnect.locale module=agriconnect.locale request_id=req-42 source=stored target=hi"
	if got != want {
		t.Fatalf("unexpected log entry\nwant: %s\ngot:  %s", want, got)
	}
}

func TestConsoleLogger_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	minLevel := console.LevelInfo
	provider := console.NewProvider(console.Options{
		Writer:   &buf,
		MinLevel: &minLevel,
	})

	logger := provider.GetLogger("agriconnect.test")
	logger.Debug("ignored.debug", "foo", "bar")
	logger.Warn("included.warn", "foo", "bar")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 1 {
		t.Fatalf("expected single log line, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "included.warn") {
		t.Fatalf("expected warn log to be written, got %s", lines[0])
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]console.Level{
		"trace":   console.LevelTrace,
		"DEBUG":   console.LevelDebug,
		"":        console.LevelInfo,
		"warning": console.LevelWarn,
		"error":   console.LevelError,
	}
	for name, want := range cases {
		got, ok := console.ParseLevel(name)
		if !ok || got != want {
			t.Fatalf("ParseLevel(%q) = %v, %v; want %v", name, got, ok, want)
		}
	}
	if _, ok := console.ParseLevel("loud"); ok {
		t.Fatal("expected unknown level to report false")
	}
}
