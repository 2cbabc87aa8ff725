package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const handlerSpanPrefix = "httpapi.Handler."

var (
	apiTracer = otel.Tracer("team-growth/internal/interfaces/httpapi")
	noopSpan  = trace.SpanFromContext(context.Background())
)

// startSpan opens a child span for handler entry points only. Middleware and
// response helpers share the handler span so traces stay one level deep per
// request, and unsampled routes such as /healthz never start root spans.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() || !isHandlerSpan(name) {
		return ctx, noopSpan
	}

	ctx, span := apiTracer.Start(ctx, name)
	if scope, ok := scopeFromContext(ctx); ok {
		span.SetAttributes(scopeAttributes(scope.ActiveTeamID, scope.CurrentUserID, string(scope.Role))...)
	}
	return ctx, span
}

func isHandlerSpan(name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix)
}

func scopeAttributes(teamID, userID, role string) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 3)
	if teamID != "" {
		attrs = append(attrs, attribute.String("team.id", teamID))
	}
	if userID != "" {
		attrs = append(attrs, attribute.String("enduser.id", userID))
	}
	if role != "" {
		attrs = append(attrs, attribute.String("enduser.role", role))
	}
	return attrs
}

// markSpanError flags the active span when a request ends with a 5xx.
// Client errors are expected outcomes and only get the reason attribute.
func markSpanError(ctx context.Context, status int, reason string, err error) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	span.SetAttributes(attribute.String("app.error_reason", reason))
	if status >= 500 && err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, reason)
	}
}
