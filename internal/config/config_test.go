package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "x-other=1, uptrace-dsn='https://token@api.uptrace.dev?grpc=4317'")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev?grpc=4317" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_DefaultsByEnv(t *testing.T) {
	t.Run("prod disables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=false in prod by default")
		}
	})

	t.Run("dev enables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=true in dev by default")
		}
		if cfg.ServiceName != "team-growth-api" {
			t.Fatalf("unexpected default service name: %q", cfg.ServiceName)
		}
		if cfg.StoreDriver != StoreMemory {
			t.Fatalf("unexpected default store driver: %q", cfg.StoreDriver)
		}
	})
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_SERVICE_NAME", "team-growth-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "team-growth-api-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[0] != "https://a.example.com" {
			t.Fatalf("unexpected first CORS origin: %s", cfg.CORSAllowedOrigins[0])
		}
		if cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected second CORS origin: %s", cfg.CORSAllowedOrigins[1])
		}
	})
}

func TestLoad_StoreDriver(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("postgres accepted", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "Postgres")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.StoreDriver != StorePostgres {
			t.Fatalf("unexpected store driver: %q", cfg.StoreDriver)
		}
	})

	t.Run("unknown driver rejected", func(t *testing.T) {
		t.Setenv("STORE_DRIVER", "sqlite")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown STORE_DRIVER")
		}
	})
}

func TestLoad_DBDisablePreparedBinaryResultParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default true", func(t *testing.T) {
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.DBDisablePreparedBinary {
			t.Fatalf("expected DBDisablePreparedBinary=true by default")
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "not-bool")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid DB_DISABLE_PREPARED_BINARY_RESULT")
		}
	})
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("CACHE_ENABLED", "")
		t.Setenv("CACHE_TTL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.CacheEnabled {
			t.Fatalf("expected cache enabled by default")
		}
		if cfg.CacheTTL != 60*time.Second {
			t.Fatalf("unexpected default cache ttl: %s", cfg.CacheTTL)
		}
	})

	t.Run("invalid ttl", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid CACHE_TTL")
		}
	})

	t.Run("non positive ttl", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "0s")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for zero CACHE_TTL")
		}
	})
}

func TestLoad_RedisConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("disabled by default", func(t *testing.T) {
		t.Setenv("REDIS_ENABLED", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.RedisEnabled {
			t.Fatalf("expected RedisEnabled=false by default")
		}
		if cfg.RedisTimeout != 2*time.Second {
			t.Fatalf("unexpected default redis timeout: %s", cfg.RedisTimeout)
		}
	})

	t.Run("negative db rejected", func(t *testing.T) {
		t.Setenv("REDIS_DB", "-1")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for negative REDIS_DB")
		}
	})
}

func TestLoad_SuggestionsConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("enabled requires base url", func(t *testing.T) {
		t.Setenv("SUGGESTIONS_ENABLED", "true")
		t.Setenv("SUGGESTIONS_BASE_URL", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when SUGGESTIONS_ENABLED=true without SUGGESTIONS_BASE_URL")
		}
	})

	t.Run("enabled with values", func(t *testing.T) {
		t.Setenv("SUGGESTIONS_ENABLED", "true")
		t.Setenv("SUGGESTIONS_BASE_URL", "https://coach-ai.example.com/")
		t.Setenv("SUGGESTIONS_TOKEN", "secret")
		t.Setenv("SUGGESTIONS_TIMEOUT", "5s")
		t.Setenv("SUGGESTIONS_CIRCUIT_FAILURE_COUNT", "3")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SuggestionsBaseURL != "https://coach-ai.example.com" {
			t.Fatalf("expected trailing slash trimmed, got %q", cfg.SuggestionsBaseURL)
		}
		if cfg.SuggestionsTimeout != 5*time.Second {
			t.Fatalf("unexpected suggestions timeout: %s", cfg.SuggestionsTimeout)
		}
		if cfg.SuggestionsCircuitFailureCount != 3 {
			t.Fatalf("unexpected circuit failure count: %d", cfg.SuggestionsCircuitFailureCount)
		}
	})
}

func TestLoad_EngineConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.ReflectionUnlockThreshold != 50 {
			t.Fatalf("unexpected unlock threshold: %d", cfg.ReflectionUnlockThreshold)
		}
		if cfg.ReflectionGatePolicy != GatePolicySticky {
			t.Fatalf("unexpected gate policy: %q", cfg.ReflectionGatePolicy)
		}
		if cfg.LineupBenchSize != 7 {
			t.Fatalf("unexpected bench size: %d", cfg.LineupBenchSize)
		}
		if cfg.StatsBatchWorkers != 8 {
			t.Fatalf("unexpected batch workers: %d", cfg.StatsBatchWorkers)
		}
	})

	t.Run("unknown gate policy rejected", func(t *testing.T) {
		t.Setenv("REFLECTION_GATE_POLICY", "lenient")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown REFLECTION_GATE_POLICY")
		}
	})

	t.Run("zero threshold rejected", func(t *testing.T) {
		t.Setenv("REFLECTION_UNLOCK_THRESHOLD", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for zero REFLECTION_UNLOCK_THRESHOLD")
		}
	})

	t.Run("demo seed bounded", func(t *testing.T) {
		t.Setenv("DEMO_SEED_MATCHES", "41")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for DEMO_SEED_MATCHES above limit")
		}
	})

	t.Run("bench size out of range", func(t *testing.T) {
		t.Setenv("LINEUP_BENCH_SIZE", "20")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for LINEUP_BENCH_SIZE above 12")
		}
	})
}

func TestLoad_EnvFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.env")
	content := "APP_ENV=stage\nLINEUP_BENCH_SIZE=5\nAPP_SERVICE_NAME=from-file\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}

	t.Setenv("ENV_FILE", path)
	t.Setenv("APP_SERVICE_NAME", "from-env")
	// Keys must be absent, not empty, for the file to supply them.
	for _, key := range []string{"APP_ENV", "LINEUP_BENCH_SIZE"} {
		t.Setenv(key, "")
		if err := os.Unsetenv(key); err != nil {
			t.Fatalf("unset %s: %v", key, err)
		}
	}
	t.Setenv("UPTRACE_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.ServiceName != "from-env" {
		t.Fatalf("expected environment to win over env file, got %q", cfg.ServiceName)
	}
	if cfg.LineupBenchSize != 5 {
		t.Fatalf("unexpected bench size from env file: %d", cfg.LineupBenchSize)
	}
}

func TestLoad_MissingExplicitEnvFile(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for missing ENV_FILE")
	}
}
