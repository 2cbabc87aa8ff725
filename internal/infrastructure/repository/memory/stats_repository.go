package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/team-growth/internal/domain/growth"
	"github.com/riskibarqy/team-growth/internal/domain/matchstats"
)

type MatchStatsRepository struct {
	store *Store
}

func (r *MatchStatsRepository) Get(_ context.Context, matchID, playerID string) (matchstats.Record, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.stats[statKey{matchID: matchID, playerID: playerID}]
	if !ok {
		return matchstats.Record{}, false, nil
	}
	return item.Clone(), true, nil
}

func (r *MatchStatsRepository) ListByMatch(_ context.Context, matchID string) ([]matchstats.Record, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.list(func(rec matchstats.Record) bool { return rec.MatchID == matchID }), nil
}

func (r *MatchStatsRepository) ListByPlayer(_ context.Context, playerID string) ([]matchstats.Record, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return r.list(func(rec matchstats.Record) bool { return rec.PlayerID == playerID }), nil
}

func (r *MatchStatsRepository) list(keep func(matchstats.Record) bool) []matchstats.Record {
	out := sortedValues(r.store.stats, keep, func(a, b matchstats.Record) int {
		if c := strings.Compare(a.MatchID, b.MatchID); c != 0 {
			return c
		}
		return strings.Compare(a.PlayerID, b.PlayerID)
	})
	for i := range out {
		out[i] = out[i].Clone()
	}
	return out
}

func (r *MatchStatsRepository) SaveSubmission(
	_ context.Context,
	matchID, playerID string,
	apply func(matchstats.Current) (matchstats.Submission, error),
) (matchstats.Submission, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.matches[matchID]; !ok {
		return matchstats.Submission{}, fmt.Errorf("match %s not found", matchID)
	}
	p, ok := r.store.players[playerID]
	if !ok {
		return matchstats.Submission{}, fmt.Errorf("player %s not found", playerID)
	}

	key := statKey{matchID: matchID, playerID: playerID}
	existing, exists := r.store.stats[key]
	sub, err := apply(matchstats.Current{
		Record:           existing.Clone(),
		Exists:           exists,
		PlayerAttributes: p.Attributes,
		History:          r.gradedMatches(playerID),
	})
	if err != nil {
		return matchstats.Submission{}, err
	}

	r.store.stats[key] = sub.Record.Clone()
	snapshots := append(r.store.snapshots[playerID], sub.Snapshot)
	for _, rev := range sub.Revisions {
		r.store.stats[statKey{matchID: rev.Record.MatchID, playerID: playerID}] = rev.Record.Clone()
		snapshots = append(snapshots, rev.Snapshot)
	}
	r.store.snapshots[playerID] = snapshots
	p.Attributes = sub.Attributes
	r.store.players[playerID] = p
	return sub, nil
}

// gradedMatches joins the player's records with their matches. Callers hold
// the store lock.
func (r *MatchStatsRepository) gradedMatches(playerID string) []matchstats.GradedMatch {
	var out []matchstats.GradedMatch
	for _, rec := range r.list(func(rec matchstats.Record) bool { return rec.PlayerID == playerID }) {
		m, ok := r.store.matches[rec.MatchID]
		if !ok {
			continue
		}
		out = append(out, matchstats.GradedMatch{Record: rec, MatchDate: m.MatchDate, Opponent: m.Opponent})
	}
	return out
}

func (r *MatchStatsRepository) Update(_ context.Context, matchID, playerID string, fn func(*matchstats.Record) error) (matchstats.Record, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	key := statKey{matchID: matchID, playerID: playerID}
	existing, ok := r.store.stats[key]
	if !ok {
		return matchstats.Record{}, fmt.Errorf("match stats for player %s in match %s not found", playerID, matchID)
	}

	working := existing.Clone()
	if err := fn(&working); err != nil {
		return matchstats.Record{}, err
	}
	r.store.stats[key] = working.Clone()
	return working, nil
}

type SnapshotRepository struct {
	store *Store
}

// ListByPlayer returns snapshots by match date, then by insertion.
func (r *SnapshotRepository) ListByPlayer(_ context.Context, playerID string) ([]growth.Snapshot, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	out := append([]growth.Snapshot(nil), r.store.snapshots[playerID]...)
	growth.SortChronological(out)
	return out, nil
}
