package observability

import (
	"context"
	"errors"
	"net/http"
	"net/http/pprof"
	"time"

	"github.com/riskibarqy/team-growth/internal/config"
	"github.com/riskibarqy/team-growth/internal/platform/logging"
)

const pprofPrefix = "/debug/pprof/"

var namedProfiles = []string{"allocs", "block", "goroutine", "heap", "mutex", "threadcreate"}

// PprofServer exposes runtime profiles on a listener separate from the API.
type PprofServer struct {
	srv    *http.Server
	logger *logging.Logger
}

// StartPprofServer returns nil when pprof is disabled. Stop is safe on nil.
func StartPprofServer(cfg config.Config, logger *logging.Logger) (*PprofServer, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if !cfg.PprofEnabled {
		logger.Info("pprof disabled", "reason", "PPROF_ENABLED=false")
		return nil, nil
	}

	p := &PprofServer{
		srv: &http.Server{
			Addr:              cfg.PprofAddr,
			Handler:           pprofMux(),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}

	go func() {
		logger.Info("pprof server starting", "addr", cfg.PprofAddr)
		if err := p.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("pprof server failed", "error", err)
		}
	}()
	return p, nil
}

func pprofMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc(pprofPrefix, pprof.Index)
	mux.HandleFunc(pprofPrefix+"cmdline", pprof.Cmdline)
	mux.HandleFunc(pprofPrefix+"profile", pprof.Profile)
	mux.HandleFunc(pprofPrefix+"symbol", pprof.Symbol)
	mux.HandleFunc(pprofPrefix+"trace", pprof.Trace)
	for _, name := range namedProfiles {
		mux.Handle(pprofPrefix+name, pprof.Handler(name))
	}
	return mux
}

// Stop shuts the listener down within timeout.
func (p *PprofServer) Stop(timeout time.Duration) error {
	if p == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := p.srv.Shutdown(ctx); err != nil {
		return err
	}
	p.logger.Info("pprof server stopped")
	return nil
}
