package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/team-growth/external/suggestions"
	"github.com/riskibarqy/team-growth/internal/config"
	"github.com/riskibarqy/team-growth/internal/domain/lineup"
	"github.com/riskibarqy/team-growth/internal/domain/reflection"
	domainrefresh "github.com/riskibarqy/team-growth/internal/domain/refresh"
	"github.com/riskibarqy/team-growth/internal/domain/suggestion"
	"github.com/riskibarqy/team-growth/internal/domain/timeline"
	"github.com/riskibarqy/team-growth/internal/infrastructure/refresh"
	"github.com/riskibarqy/team-growth/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/team-growth/internal/platform/id"
	"github.com/riskibarqy/team-growth/internal/platform/logging"
	"github.com/riskibarqy/team-growth/internal/platform/resilience"
	"github.com/riskibarqy/team-growth/internal/usecase"
)

// NewHTTPServer wires the store, collaborators and services behind the HTTP
// router. The returned cleanup releases the store and the event broker.
func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, func() error, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	policy, ok := reflection.ParsePolicy(cfg.ReflectionGatePolicy)
	if !ok {
		return nil, nil, fmt.Errorf("unsupported reflection gate policy %q", cfg.ReflectionGatePolicy)
	}

	repos, closeRepos, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	publisher, closePublisher, err := buildPublisher(ctx, cfg, logger)
	if err != nil {
		_ = closeRepos()
		return nil, nil, err
	}

	cleanup := func() error {
		return errors.Join(closePublisher(), closeRepos())
	}

	ids := idgen.NewUUIDGenerator()
	locks := resilience.NewKeyedMutex()

	seasonSvc := usecase.NewSeasonService(repos.seasons, repos.matches, ids, publisher, logger)
	matchSvc := usecase.NewMatchService(repos.seasons, repos.matches, ids, publisher, logger)
	lineupSvc := usecase.NewLineupService(
		repos.matches,
		repos.players,
		repos.lineups,
		ids,
		lineup.NewRules(cfg.LineupBenchSize),
		publisher,
		logger,
	)
	statsSvc := usecase.NewStatsService(
		repos.matches,
		repos.players,
		repos.stats,
		ids,
		locks,
		publisher,
		logger,
		cfg.StatsBatchWorkers,
	)
	reflectionSvc := usecase.NewReflectionService(
		repos.matches,
		repos.players,
		repos.stats,
		reflection.NewGate(cfg.ReflectionUnlockThreshold, policy),
		locks,
		publisher,
		logger,
	)
	suggestionSvc := usecase.NewSuggestionService(
		repos.matches,
		repos.players,
		repos.stats,
		buildGenerator(cfg, logger),
		locks,
		publisher,
		logger,
	)
	growthSvc := usecase.NewGrowthService(repos.players, repos.snapshots, timeline.DefaultOptions())

	if err := seedDemo(ctx, demoServices{
		seasons: seasonSvc,
		matches: matchSvc,
		stats:   statsSvc,
		players: repos.players,
	}, cfg.DemoSeedMatches, time.Now().UTC(), logger); err != nil {
		_ = cleanup()
		return nil, nil, err
	}

	handler := httpapi.NewHandler(
		seasonSvc,
		matchSvc,
		lineupSvc,
		statsSvc,
		reflectionSvc,
		suggestionSvc,
		growthSvc,
		logger,
	)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterOptions{
		SwaggerEnabled:     cfg.SwaggerEnabled,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return server, cleanup, nil
}

func buildPublisher(ctx context.Context, cfg config.Config, logger *logging.Logger) (domainrefresh.Publisher, func() error, error) {
	if !cfg.RedisEnabled {
		logger.Info("refresh events logged only", "reason", "REDIS_ENABLED=false")
		return refresh.NewLogPublisher(logger), func() error { return nil }, nil
	}

	publisher, err := refresh.NewRedisPublisher(ctx, refresh.RedisConfig{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
		Timeout:  cfg.RedisTimeout,
	}, logger)
	if err != nil {
		return nil, nil, crerr.Wrap(err, "connect refresh publisher")
	}
	logger.Info("refresh events published to redis", "addr", cfg.RedisAddr, "db", cfg.RedisDB)
	return publisher, publisher.Close, nil
}

// buildGenerator returns nil when suggestions are disabled; the service then
// answers with a dependency error instead of calling out.
func buildGenerator(cfg config.Config, logger *logging.Logger) suggestion.Generator {
	if !cfg.SuggestionsEnabled {
		logger.Info("suggestion generator disabled", "reason", "SUGGESTIONS_ENABLED=false")
		return nil
	}

	return suggestions.NewClient(suggestions.Config{
		BaseURL: cfg.SuggestionsBaseURL,
		Token:   cfg.SuggestionsToken,
		Timeout: cfg.SuggestionsTimeout,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.SuggestionsCircuitEnabled,
			FailureThreshold: cfg.SuggestionsCircuitFailureCount,
			OpenTimeout:      cfg.SuggestionsCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.SuggestionsCircuitHalfOpenMax,
		},
	}, logger)
}
