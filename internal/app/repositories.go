package app

import (
	"context"

	crerr "github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/team-growth/internal/config"
	"github.com/riskibarqy/team-growth/internal/domain/growth"
	"github.com/riskibarqy/team-growth/internal/domain/lineup"
	"github.com/riskibarqy/team-growth/internal/domain/match"
	"github.com/riskibarqy/team-growth/internal/domain/matchstats"
	"github.com/riskibarqy/team-growth/internal/domain/roster"
	"github.com/riskibarqy/team-growth/internal/domain/season"
	"github.com/riskibarqy/team-growth/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/team-growth/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/team-growth/internal/infrastructure/repository/postgres"
	basecache "github.com/riskibarqy/team-growth/internal/platform/cache"
	"github.com/riskibarqy/team-growth/internal/platform/logging"
)

type repositories struct {
	seasons   season.Repository
	matches   match.Repository
	players   roster.Repository
	lineups   lineup.Repository
	stats     matchstats.Repository
	snapshots growth.SnapshotRepository
}

// buildRepositories returns the configured store and a closer for whatever
// it opened.
func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, func() error, error) {
	var (
		repos  repositories
		closer = func() error { return nil }
	)

	switch cfg.StoreDriver {
	case config.StorePostgres:
		db, err := openDB(ctx, cfg, logger)
		if err != nil {
			return repositories{}, nil, err
		}
		if cfg.DBSeedRoster {
			if err := postgres.BootstrapSeed(ctx, db); err != nil {
				_ = db.Close()
				return repositories{}, nil, crerr.Wrap(err, "seed roster")
			}
		}
		repos = postgresRepositories(db)
		closer = db.Close
	default:
		store := memory.NewStore(memory.SeedPlayers())
		repos = repositories{
			seasons:   store.Seasons(),
			matches:   store.Matches(),
			players:   store.Roster(),
			lineups:   store.Lineups(),
			stats:     store.MatchStats(),
			snapshots: store.Snapshots(),
		}
	}

	if cfg.CacheEnabled {
		repos = withReadCache(repos, basecache.NewStore(cfg.CacheTTL))
	}

	logger.Info("repositories ready",
		"store_driver", cfg.StoreDriver,
		"cache_enabled", cfg.CacheEnabled,
		"cache_ttl", cfg.CacheTTL,
	)
	return repos, closer, nil
}

func postgresRepositories(db *sqlx.DB) repositories {
	return repositories{
		seasons:   postgres.NewSeasonRepository(db),
		matches:   postgres.NewMatchRepository(db),
		players:   postgres.NewRosterRepository(db),
		lineups:   postgres.NewLineupRepository(db),
		stats:     postgres.NewMatchStatsRepository(db),
		snapshots: postgres.NewSnapshotRepository(db),
	}
}

// withReadCache wraps the read-heavy roster and growth paths. The stats
// decorator shares the store so a submission drops what it made stale.
func withReadCache(repos repositories, store *basecache.Store) repositories {
	repos.players = cache.NewRosterRepository(repos.players, store)
	repos.snapshots = cache.NewSnapshotRepository(repos.snapshots, store)
	repos.stats = cache.NewMatchStatsRepository(repos.stats, store)
	return repos
}
