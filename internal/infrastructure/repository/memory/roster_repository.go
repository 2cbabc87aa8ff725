package memory

import (
	"context"
	"strings"

	"github.com/riskibarqy/team-growth/internal/domain/roster"
)

type RosterRepository struct {
	store *Store
}

func (r *RosterRepository) GetByID(_ context.Context, id string) (roster.Player, bool, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	item, ok := r.store.players[id]
	return item, ok, nil
}

func (r *RosterRepository) ListByTeam(_ context.Context, teamID string) ([]roster.Player, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	return sortedValues(r.store.players,
		func(p roster.Player) bool { return p.TeamID == teamID },
		func(a, b roster.Player) int {
			if a.JerseyNumber != b.JerseyNumber {
				return a.JerseyNumber - b.JerseyNumber
			}
			return strings.Compare(a.ID, b.ID)
		},
	), nil
}

func (r *RosterRepository) Upsert(_ context.Context, p roster.Player) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if existing, ok := r.store.players[p.ID]; ok && p.Attributes.IsZero() {
		p.Attributes = existing.Attributes
	}
	r.store.players[p.ID] = p
	return nil
}
