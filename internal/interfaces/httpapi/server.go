package httpapi

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/riskibarqy/team-growth/internal/platform/logging"
)

// RouterOptions toggles the optional outer surfaces of the router.
type RouterOptions struct {
	SwaggerEnabled     bool
	CORSAllowedOrigins []string
}

// NewRouter mounts every route behind tracing, access logging, CORS and
// panic recovery, outermost first.
func NewRouter(handler *Handler, logger *logging.Logger, opts RouterOptions) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler, opts.SwaggerEnabled)
	registerScopedRoutes(mux, handler)

	var h http.Handler = mux
	h = recoverPanic(logger, h)
	h = CORS(opts.CORSAllowedOrigins, h)
	h = RequestLogging(logger, h)
	return RequestTracing(h)
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			ctx := r.Context()
			err := fmt.Errorf("panic: %v", rec)
			logger.ErrorContext(ctx, "panic recovered",
				"method", r.Method,
				"path", r.URL.Path,
				"error", err,
				"stack", string(debug.Stack()),
			)
			markSpanError(ctx, http.StatusInternalServerError, "panic", err)
			writeInternalError(ctx, w)
		}()
		next.ServeHTTP(w, r)
	})
}
