package usecase

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var usecaseTracer = otel.Tracer("team-growth/internal/usecase")

// startUsecaseSpan starts a child span tagged with attrs. Calls outside a
// traced request get the parent's non-recording span back.
func startUsecaseSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	parent := trace.SpanFromContext(ctx)
	if name == "" || !parent.SpanContext().IsValid() {
		return ctx, parent
	}
	return usecaseTracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

func matchAttr(matchID string) attribute.KeyValue {
	return attribute.String("match.id", matchID)
}

func playerAttr(playerID string) attribute.KeyValue {
	return attribute.String("player.id", playerID)
}

func seasonAttr(seasonID string) attribute.KeyValue {
	return attribute.String("season.id", seasonID)
}
