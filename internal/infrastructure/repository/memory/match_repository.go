package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/team-growth/internal/domain/match"
)

type MatchRepository struct {
	store *Store
}

func (r *MatchRepository) GetByID(_ context.Context, id string) (match.Match, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.matches[id]
	return item, ok, nil
}

func (r *MatchRepository) ListBySeason(_ context.Context, seasonID string) ([]match.Match, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return sortedValues(r.store.matches,
		func(m match.Match) bool { return m.SeasonID == seasonID },
		func(a, b match.Match) int {
			if c := a.MatchDate.Compare(b.MatchDate); c != 0 {
				return c
			}
			return strings.Compare(a.ID, b.ID)
		},
	), nil
}

func (r *MatchRepository) CountBySeason(_ context.Context, seasonID string) (int, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	count := 0
	for _, m := range r.store.matches {
		if m.SeasonID == seasonID {
			count++
		}
	}
	return count, nil
}

func (r *MatchRepository) Insert(_ context.Context, item match.Match) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, ok := r.store.seasons[item.SeasonID]; !ok {
		return fmt.Errorf("season %s not found", item.SeasonID)
	}
	if _, exists := r.store.matches[item.ID]; exists {
		return fmt.Errorf("match %s already exists", item.ID)
	}
	r.store.matches[item.ID] = item
	return nil
}

func (r *MatchRepository) Update(_ context.Context, item match.Match) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.matches[item.ID]; !exists {
		return fmt.Errorf("match %s not found", item.ID)
	}
	r.store.matches[item.ID] = item
	return nil
}

func (r *MatchRepository) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	delete(r.store.matches, id)
	if lineupID, ok := r.store.lineupByMatch[id]; ok {
		delete(r.store.lineups, lineupID)
		delete(r.store.lineupByMatch, id)
	}
	for key := range r.store.stats {
		if key.matchID == id {
			delete(r.store.stats, key)
		}
	}
	return nil
}
