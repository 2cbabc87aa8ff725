package logging

import (
	"context"
	"errors"
	"testing"

	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestLogger_InfoContextAddsTraceFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core))

	traceID, _ := trace.TraceIDFromHex("4bf92f3577b34da6a3ce929d0e0e4736")
	spanID, _ := trace.SpanIDFromHex("00f067aa0ba902b7")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    traceID,
		SpanID:     spanID,
		TraceFlags: trace.FlagsSampled,
	}))

	logger.InfoContext(ctx, "stats submitted", "player_id", "p-1")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["player_id"] != "p-1" {
		t.Fatalf("unexpected player_id field: %v", fields["player_id"])
	}
	if fields["trace_id"] != traceID.String() {
		t.Fatalf("unexpected trace_id field: %v", fields["trace_id"])
	}
}

func TestLogger_WithAndErrorFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	logger := FromZap(zap.New(core)).With("component", "lineup")

	logger.Error("assign failed", "error", errors.New("boom"), "dangling")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["component"] != "lineup" {
		t.Fatalf("expected component field, got %v", fields)
	}
	if fields["error"] != "boom" {
		t.Fatalf("expected error field, got %v", fields["error"])
	}
	if _, ok := fields["dangling"]; !ok {
		t.Fatalf("expected dangling key to be kept")
	}
}

func TestLogger_NilIsSafe(t *testing.T) {
	var logger *Logger
	logger.Info("no panic")
	if err := logger.Sync(); err != nil {
		t.Fatalf("sync nil logger: %v", err)
	}
}

func TestLogger_MirrorReceivesWrittenEntries(t *testing.T) {
	core, _ := observer.New(zapcore.InfoLevel)
	logger := FromZap(zap.New(core))

	var got []string
	SetMirror(func(_ context.Context, level Level, msg string, args ...any) {
		got = append(got, level.String()+":"+msg)
		if len(args) != 2 || args[0] != "match_id" {
			t.Fatalf("unexpected mirror args: %v", args)
		}
	})
	t.Cleanup(func() { SetMirror(nil) })

	logger.Debug("filtered", "match_id", "m-1")
	logger.WarnContext(context.Background(), "lineup incomplete", "match_id", "m-1")

	if len(got) != 1 || got[0] != "warn:lineup incomplete" {
		t.Fatalf("unexpected mirrored entries: %v", got)
	}

	SetMirror(nil)
	logger.Info("after removal", "match_id", "m-1")
	if len(got) != 1 {
		t.Fatalf("expected mirror to be removed, got %v", got)
	}
}
