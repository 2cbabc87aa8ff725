package observability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/grafana/pyroscope-go"
	"github.com/riskibarqy/team-growth/internal/config"
	"github.com/riskibarqy/team-growth/internal/platform/logging"
)

func TestInitUptrace_Disabled(t *testing.T) {
	cfg := config.Config{
		UptraceEnabled: false,
		ServiceName:    "team-growth-api",
		ServiceVersion: "dev",
		AppEnv:         config.EnvDev,
	}

	shutdown, err := InitUptrace(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}

func TestInitUptrace_EnabledWithoutDSNStaysOff(t *testing.T) {
	shutdown, err := InitUptrace(config.Config{UptraceEnabled: true}, logging.NewNop())
	if err != nil {
		t.Fatalf("init uptrace: %v", err)
	}
	if err := shutdown(context.Background()); err != nil {
		t.Fatalf("shutdown uptrace: %v", err)
	}
}

func TestResourceAttributes(t *testing.T) {
	attrs := resourceAttributes(config.Config{
		StoreDriver:          config.StorePostgres,
		ReflectionGatePolicy: config.GatePolicySticky,
		SuggestionsEnabled:   true,
	})
	if len(attrs) != 3 || attrs[0].Value.AsString() != config.StorePostgres {
		t.Fatalf("unexpected resource attributes: %v", attrs)
	}
}

func TestInitPyroscope_Disabled(t *testing.T) {
	stop, err := InitPyroscope(config.Config{PyroscopeEnabled: false}, nil)
	if err != nil {
		t.Fatalf("init pyroscope: %v", err)
	}
	if err := stop(); err != nil {
		t.Fatalf("stop pyroscope: %v", err)
	}
}

func TestProfileTypes_ProdUsesBaseSet(t *testing.T) {
	if got := profileTypes(config.EnvProd); len(got) != len(baseProfiles) {
		t.Fatalf("expected base profiles in prod, got %v", got)
	}

	dev := profileTypes(config.EnvDev)
	if len(dev) != len(baseProfiles)+len(contentionProfiles) {
		t.Fatalf("expected full profile set in dev, got %v", dev)
	}
	found := false
	for _, p := range dev {
		if p == pyroscope.ProfileMutexDuration {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected mutex profile in dev set")
	}
}

func TestStartPprofServer_Disabled(t *testing.T) {
	srv, err := StartPprofServer(config.Config{PprofEnabled: false}, logging.NewNop())
	if err != nil {
		t.Fatalf("start pprof: %v", err)
	}
	if srv != nil {
		t.Fatalf("expected nil server when pprof is disabled")
	}
	if err := srv.Stop(0); err != nil {
		t.Fatalf("stop nil pprof server: %v", err)
	}
}

func TestPprofMux_ServesNamedProfiles(t *testing.T) {
	mux := pprofMux()
	for _, path := range []string{"/debug/pprof/", "/debug/pprof/goroutine?debug=1", "/debug/pprof/heap?debug=1"} {
		rec := httptest.NewRecorder()
		mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s: status %d", path, rec.Code)
		}
	}
}
