package logger

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestLoggerErrorIncludesContextFields(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "test", Level: zerolog.DebugLevel, Output: &buf})

	ctx := logg.WithRequestID(context.Background(), "req-123")
	ctx = logg.WithComplaintID(ctx, 42)
	logg.Error(ctx, "failed to update complaint", errors.New("boom"))

	out := buf.String()
	if !strings.Contains(out, "req-123") {
		t.Fatalf("expected request id in output, got %s", out)
	}
	if !strings.Contains(out, "complaint_id") {
		t.Fatalf("expected complaint_id in output, got %s", out)
	}
	if !strings.Contains(out, "boom") {
		t.Fatalf("expected error message in output, got %s", out)
	}
}

func TestLoggerWarnStackToggle(t *testing.T) {
	var buf bytes.Buffer
	logg := New(Options{ServiceName: "test", Level: zerolog.DebugLevel, WarnStack: true, Output: &buf})

	logg.Warn(context.Background(), "something odd")
	if !strings.Contains(buf.String(), "stack") {
		t.Fatalf("expected stack field when WarnStack enabled, got %s", buf.String())
	}
}

func TestParseLevelDefaults(t *testing.T) {
	if got := ParseLevel(""); got != zerolog.InfoLevel {
		t.Fatalf("empty level: got %v", got)
	}
	if got := ParseLevel("nonsense"); got != zerolog.InfoLevel {
		t.Fatalf("invalid level: got %v", got)
	}
	if got := ParseLevel("WARN"); got != zerolog.WarnLevel {
		t.Fatalf("warn level: got %v", got)
	}
}
