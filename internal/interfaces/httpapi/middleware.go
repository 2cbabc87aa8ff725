package httpapi

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/riskibarqy/team-growth/internal/platform/logging"
	"github.com/riskibarqy/team-growth/internal/usecase"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/trace"
)

// Identity headers set by the gateway in front of this service.
const (
	headerUserID = "X-User-ID"
	headerTeamID = "X-Team-ID"
	headerRole   = "X-User-Role"
)

// RequireScope builds the request scope from the gateway identity headers.
// Authentication itself happens upstream.
func RequireScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID := strings.TrimSpace(r.Header.Get(headerUserID))
		teamID := strings.TrimSpace(r.Header.Get(headerTeamID))
		if userID == "" || teamID == "" {
			writeError(ctx, w, fmt.Errorf("%w: %s and %s headers are required", usecase.ErrUnauthorized, headerUserID, headerTeamID))
			return
		}

		role, ok := usecase.ParseRole(r.Header.Get(headerRole))
		if !ok {
			writeError(ctx, w, fmt.Errorf("%w: %s must be coach or player", usecase.ErrUnauthorized, headerRole))
			return
		}

		trace.SpanFromContext(ctx).SetAttributes(scopeAttributes(teamID, userID, string(role))...)

		next.ServeHTTP(w, r.WithContext(withScope(ctx, usecase.RequestScope{
			CurrentUserID: userID,
			ActiveTeamID:  teamID,
			Role:          role,
		})))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func RequestLogging(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		started := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		logger.InfoContext(ctx, "http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"remote_addr", r.RemoteAddr,
			"duration_ms", time.Since(started).Milliseconds(),
		)
	})
}

func RequestTracing(next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, "team-growth-http",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}),
		otelhttp.WithFilter(func(r *http.Request) bool {
			return shouldTraceRequest(r.URL.Path)
		}),
	)
}

// Probe and docs routes are served without spans.
var untracedPaths = map[string]struct{}{
	"/healthz":  {},
	"/health":   {},
	"/livez":    {},
	"/readyz":   {},
	openAPIPath: {},
	"/docs":     {},
}

func shouldTraceRequest(path string) bool {
	_, skip := untracedPaths[strings.ToLower(strings.TrimSpace(path))]
	return !skip
}

var corsAllowHeaders = strings.Join([]string{
	"Authorization", "Content-Type", "Accept", headerUserID, headerTeamID, headerRole,
}, ",")

type corsPolicy struct {
	any     bool
	origins map[string]struct{}
}

func newCORSPolicy(allowedOrigins []string) corsPolicy {
	p := corsPolicy{origins: make(map[string]struct{}, len(allowedOrigins))}
	for _, origin := range allowedOrigins {
		switch origin = strings.TrimSpace(origin); origin {
		case "":
		case "*":
			p.any = true
		default:
			p.origins[origin] = struct{}{}
		}
	}
	return p
}

// allowOrigin returns the Access-Control-Allow-Origin value for origin.
func (p corsPolicy) allowOrigin(origin string) (string, bool) {
	if p.any {
		return "*", true
	}
	_, ok := p.origins[origin]
	return origin, ok
}

// CORS answers preflights itself and decorates allowed cross-origin requests.
func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	policy := newCORSPolicy(allowedOrigins)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin == "" {
			next.ServeHTTP(w, r)
			return
		}

		if value, ok := policy.allowOrigin(origin); ok {
			h := w.Header()
			h.Set("Access-Control-Allow-Origin", value)
			if value != "*" {
				h.Add("Vary", "Origin")
			}
			h.Set("Access-Control-Allow-Methods", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
			h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
			h.Set("Access-Control-Max-Age", "600")
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
