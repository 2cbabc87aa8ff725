package cache

import (
	"context"

	"github.com/riskibarqy/team-growth/internal/domain/growth"
	"github.com/riskibarqy/team-growth/internal/domain/matchstats"
	"github.com/riskibarqy/team-growth/internal/domain/roster"
	basecache "github.com/riskibarqy/team-growth/internal/platform/cache"
)

const (
	rosterIDPrefix   = "roster:id:"
	rosterTeamPrefix = "roster:team:"
	snapshotsPrefix  = "growth:snapshots:"
)

type RosterRepository struct {
	next  roster.Repository
	cache *basecache.Store
}

func NewRosterRepository(next roster.Repository, cache *basecache.Store) *RosterRepository {
	return &RosterRepository{next: next, cache: cache}
}

func (r *RosterRepository) GetByID(ctx context.Context, id string) (roster.Player, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, rosterIDPrefix+id, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		return cachedPlayerByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return roster.Player{}, false, err
	}

	cached, _ := v.(cachedPlayerByID)
	return cached.value, cached.exists, nil
}

type cachedPlayerByID struct {
	value  roster.Player
	exists bool
}

func (r *RosterRepository) ListByTeam(ctx context.Context, teamID string) ([]roster.Player, error) {
	items, err := basecache.Load(ctx, r.cache, rosterTeamPrefix+teamID, func(ctx context.Context) ([]roster.Player, error) {
		return r.next.ListByTeam(ctx, teamID)
	})
	if err != nil {
		return nil, err
	}
	return append([]roster.Player(nil), items...), nil
}

func (r *RosterRepository) Upsert(ctx context.Context, p roster.Player) error {
	if err := r.next.Upsert(ctx, p); err != nil {
		return err
	}
	r.cache.Delete(ctx, rosterIDPrefix+p.ID, rosterTeamPrefix+p.TeamID)
	return nil
}

type SnapshotRepository struct {
	next  growth.SnapshotRepository
	cache *basecache.Store
}

func NewSnapshotRepository(next growth.SnapshotRepository, cache *basecache.Store) *SnapshotRepository {
	return &SnapshotRepository{next: next, cache: cache}
}

func (r *SnapshotRepository) ListByPlayer(ctx context.Context, playerID string) ([]growth.Snapshot, error) {
	items, err := basecache.Load(ctx, r.cache, snapshotsPrefix+playerID, func(ctx context.Context) ([]growth.Snapshot, error) {
		return r.next.ListByPlayer(ctx, playerID)
	})
	if err != nil {
		return nil, err
	}
	return append([]growth.Snapshot(nil), items...), nil
}

// MatchStatsRepository passes through and drops the cached ratings and
// growth log of the player a submission touched.
type MatchStatsRepository struct {
	matchstats.Repository
	cache *basecache.Store
}

func NewMatchStatsRepository(next matchstats.Repository, cache *basecache.Store) *MatchStatsRepository {
	return &MatchStatsRepository{Repository: next, cache: cache}
}

func (r *MatchStatsRepository) SaveSubmission(
	ctx context.Context,
	matchID, playerID string,
	apply func(matchstats.Current) (matchstats.Submission, error),
) (matchstats.Submission, error) {
	sub, err := r.Repository.SaveSubmission(ctx, matchID, playerID, apply)
	if err != nil {
		return matchstats.Submission{}, err
	}
	r.cache.Delete(ctx, rosterIDPrefix+playerID, snapshotsPrefix+playerID)
	r.cache.DeletePrefix(ctx, rosterTeamPrefix)
	return sub, nil
}
