package httpapi

import (
	"context"

	"github.com/riskibarqy/team-growth/internal/usecase"
)

type contextKey string

const scopeContextKey contextKey = "request_scope"

func withScope(ctx context.Context, scope usecase.RequestScope) context.Context {
	return context.WithValue(ctx, scopeContextKey, scope)
}

func scopeFromContext(ctx context.Context) (usecase.RequestScope, bool) {
	scope, ok := ctx.Value(scopeContextKey).(usecase.RequestScope)
	return scope, ok
}
