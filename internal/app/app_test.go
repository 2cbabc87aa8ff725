package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/riskibarqy/team-growth/internal/config"
	"github.com/riskibarqy/team-growth/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/team-growth/internal/platform/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:                    config.EnvDev,
		HTTPAddr:                  ":0",
		ReadTimeout:               time.Second,
		WriteTimeout:              time.Second,
		StoreDriver:               config.StoreMemory,
		CacheEnabled:              true,
		CacheTTL:                  time.Minute,
		CORSAllowedOrigins:        []string{"*"},
		ReflectionUnlockThreshold: 50,
		ReflectionGatePolicy:      config.GatePolicySticky,
		LineupBenchSize:           7,
		StatsBatchWorkers:         2,
	}
}

func TestNewHTTPServer_MemoryStore(t *testing.T) {
	srv, cleanup, err := NewHTTPServer(context.Background(), memoryConfig(), logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, cleanup()) })

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestNewHTTPServer_RejectsUnknownPolicy(t *testing.T) {
	cfg := memoryConfig()
	cfg.ReflectionGatePolicy = "lenient"

	_, _, err := NewHTTPServer(context.Background(), cfg, logging.NewNop())
	require.Error(t, err)
}

func TestNewHTTPServer_DemoSeedFillsGrowthBoard(t *testing.T) {
	cfg := memoryConfig()
	cfg.DemoSeedMatches = 3

	srv, cleanup, err := NewHTTPServer(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { require.NoError(t, cleanup()) })

	req := httptest.NewRequest(http.MethodGet, "/v1/players/player-07/growth", nil)
	req.Header.Set("X-User-ID", memory.SeedCoach)
	req.Header.Set("X-Team-ID", memory.SeedTeamID)
	req.Header.Set("X-User-Role", "coach")
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Contains(t, rec.Body.String(), `"match_id"`)
}
