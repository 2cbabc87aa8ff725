package memory

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/team-growth/internal/domain/season"
)

type SeasonRepository struct {
	store *Store
}

func (r *SeasonRepository) GetByID(_ context.Context, id string) (season.Season, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.seasons[id]
	return item, ok, nil
}

func (r *SeasonRepository) ListByTeam(_ context.Context, teamID string) ([]season.Season, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return sortedValues(r.store.seasons,
		func(s season.Season) bool { return s.TeamID == teamID },
		func(a, b season.Season) int {
			if c := a.StartDate.Compare(b.StartDate); c != 0 {
				return c
			}
			return strings.Compare(a.ID, b.ID)
		},
	), nil
}

func (r *SeasonRepository) Insert(_ context.Context, item season.Season) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.seasons[item.ID]; exists {
		return fmt.Errorf("season %s already exists", item.ID)
	}
	r.store.seasons[item.ID] = item
	return nil
}

func (r *SeasonRepository) Update(_ context.Context, item season.Season) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if _, exists := r.store.seasons[item.ID]; !exists {
		return fmt.Errorf("season %s not found", item.ID)
	}
	r.store.seasons[item.ID] = item
	return nil
}

func (r *SeasonRepository) SetActive(_ context.Context, teamID, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if item, ok := r.store.seasons[id]; !ok || item.TeamID != teamID {
		return fmt.Errorf("season %s not found for team %s", id, teamID)
	}
	for key, item := range r.store.seasons {
		if item.TeamID != teamID {
			continue
		}
		item.IsActive = key == id
		r.store.seasons[key] = item
	}
	return nil
}

func (r *SeasonRepository) Delete(_ context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for _, m := range r.store.matches {
		if m.SeasonID == id {
			return season.ErrInUse
		}
	}
	delete(r.store.seasons, id)
	return nil
}
