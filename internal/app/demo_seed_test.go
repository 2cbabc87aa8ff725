package app

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/team-growth/internal/infrastructure/refresh"
	"github.com/riskibarqy/team-growth/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/team-growth/internal/platform/id"
	"github.com/riskibarqy/team-growth/internal/platform/logging"
	"github.com/riskibarqy/team-growth/internal/platform/resilience"
	"github.com/riskibarqy/team-growth/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedDemo_IsIdempotent(t *testing.T) {
	ctx := context.Background()
	logger := logging.NewNop()
	store := memory.NewStore(memory.SeedPlayers())
	ids := id.NewSequenceGenerator("demo")
	publisher := refresh.NewLogPublisher(logger)
	svc := demoServices{
		seasons: usecase.NewSeasonService(store.Seasons(), store.Matches(), ids, publisher, logger),
		matches: usecase.NewMatchService(store.Seasons(), store.Matches(), ids, publisher, logger),
		stats: usecase.NewStatsService(store.Matches(), store.Roster(), store.MatchStats(), ids,
			resilience.NewKeyedMutex(), publisher, logger, 2),
		players: store.Roster(),
	}

	now := time.Date(2026, time.March, 14, 9, 0, 0, 0, time.UTC)
	require.NoError(t, seedDemo(ctx, svc, 4, now, logger))
	require.NoError(t, seedDemo(ctx, svc, 4, now, logger))

	coach := usecase.RequestScope{CurrentUserID: memory.SeedCoach, ActiveTeamID: memory.SeedTeamID, Role: usecase.RoleCoach}
	seasons, err := svc.seasons.List(ctx, coach)
	require.NoError(t, err)
	require.Len(t, seasons, 1)
	assert.True(t, seasons[0].IsActive)

	matches, err := svc.matches.ListBySeason(ctx, coach, seasons[0].ID)
	require.NoError(t, err)
	assert.Len(t, matches, 4)

	snaps, err := store.Snapshots().ListByPlayer(ctx, "player-01")
	require.NoError(t, err)
	assert.Len(t, snaps, 4)
}

func TestSeedDemo_ZeroMatchesIsNoop(t *testing.T) {
	require.NoError(t, seedDemo(context.Background(), demoServices{}, 0, time.Now(), logging.NewNop()))
}
