package httpapi

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/riskibarqy/team-growth/internal/usecase"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func TestIsHandlerSpan(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{in: "httpapi.Handler.SubmitPlayerStats", want: true},
		{in: "httpapi.RequireScope", want: false},
		{in: "httpapi.writeError", want: false},
	}

	for _, tt := range tests {
		if got := isHandlerSpan(tt.in); got != tt.want {
			t.Fatalf("isHandlerSpan(%q)=%v want=%v", tt.in, got, tt.want)
		}
	}
}

func TestStartSpan_WithoutParentIsNoop(t *testing.T) {
	ctx, span := startSpan(context.Background(), "httpapi.Handler.Healthz")
	defer span.End()

	if span.SpanContext().IsValid() {
		t.Fatalf("expected noop span without a parent")
	}
	if ctx != context.Background() {
		t.Fatalf("expected context to be returned unchanged")
	}
}

func TestScopeAttributes_SkipsEmptyValues(t *testing.T) {
	attrs := scopeAttributes("team-1", "", "coach")
	want := []attribute.KeyValue{
		attribute.String("team.id", "team-1"),
		attribute.String("enduser.role", "coach"),
	}
	if len(attrs) != len(want) {
		t.Fatalf("unexpected attrs: %v", attrs)
	}
	for i := range want {
		if attrs[i] != want[i] {
			t.Fatalf("attr %d: got %v want %v", i, attrs[i], want[i])
		}
	}
}

func TestStartSpan_TagsScopeAndMarksServerErrors(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	provider := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	otel.SetTracerProvider(provider)
	t.Cleanup(func() { _ = provider.Shutdown(context.Background()) })

	ctx, parent := provider.Tracer("test").Start(context.Background(), "GET /v1/seasons")
	ctx = withScope(ctx, usecase.RequestScope{
		CurrentUserID: "user-coach-01",
		ActiveTeamID:  "team-garuda-u17",
		Role:          usecase.RoleCoach,
	})

	ctx, child := startSpan(ctx, "httpapi.Handler.ListSeasons")
	markSpanError(ctx, http.StatusNotFound, "notFound", errors.New("missing"))
	markSpanError(ctx, http.StatusInternalServerError, "internalError", errors.New("db down"))
	child.End()
	parent.End()

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	handlerSpan := spans[0]
	if handlerSpan.Name() != "httpapi.Handler.ListSeasons" {
		t.Fatalf("unexpected first span %q", handlerSpan.Name())
	}
	if handlerSpan.Status().Code != codes.Error {
		t.Fatalf("expected error status, got %v", handlerSpan.Status())
	}
	found := map[attribute.Key]string{}
	for _, kv := range handlerSpan.Attributes() {
		found[kv.Key] = kv.Value.AsString()
	}
	if found["team.id"] != "team-garuda-u17" || found["enduser.role"] != "coach" {
		t.Fatalf("missing scope attributes: %v", found)
	}
	if found["app.error_reason"] != "internalError" {
		t.Fatalf("expected last reason to win, got %q", found["app.error_reason"])
	}
}
