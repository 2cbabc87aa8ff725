package memory

import (
	"context"
	"fmt"

	"github.com/riskibarqy/team-growth/internal/domain/lineup"
)

type LineupRepository struct {
	store *Store
}

func (r *LineupRepository) GetByID(_ context.Context, id string) (lineup.Lineup, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.lineups[id]
	if !ok {
		return lineup.Lineup{}, false, nil
	}
	return item.Clone(), true, nil
}

func (r *LineupRepository) GetByMatch(_ context.Context, matchID string) (lineup.Lineup, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	id, ok := r.store.lineupByMatch[matchID]
	if !ok {
		return lineup.Lineup{}, false, nil
	}
	return r.store.lineups[id].Clone(), true, nil
}

func (r *LineupRepository) SelectFormation(_ context.Context, candidate lineup.Lineup) (lineup.Lineup, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.matches[candidate.MatchID]; !ok {
		return lineup.Lineup{}, fmt.Errorf("match %s not found", candidate.MatchID)
	}

	item := candidate.Clone()
	if id, ok := r.store.lineupByMatch[candidate.MatchID]; ok {
		existing := r.store.lineups[id]
		item.ID = existing.ID
		item.CreatedAt = existing.CreatedAt
	}
	item.Assignments = map[string]string{}

	r.store.lineups[item.ID] = item
	r.store.lineupByMatch[item.MatchID] = item.ID
	return item.Clone(), nil
}

func (r *LineupRepository) Mutate(_ context.Context, lineupID string, fn func(*lineup.Lineup) error) (lineup.Lineup, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	existing, ok := r.store.lineups[lineupID]
	if !ok {
		return lineup.Lineup{}, fmt.Errorf("lineup %s not found", lineupID)
	}

	working := existing.Clone()
	if err := fn(&working); err != nil {
		return lineup.Lineup{}, err
	}
	r.store.lineups[lineupID] = working.Clone()
	return working, nil
}
