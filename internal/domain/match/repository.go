package match

import "context"

// Repository exposes match persistence operations.
type Repository interface {
	GetByID(ctx context.Context, id string) (Match, bool, error)
	ListBySeason(ctx context.Context, seasonID string) ([]Match, error)
	CountBySeason(ctx context.Context, seasonID string) (int, error)
	Insert(ctx context.Context, item Match) error
	Update(ctx context.Context, item Match) error
	// Delete removes the match together with its lineup, assignments and stat
	// records. Growth snapshots are kept.
	Delete(ctx context.Context, id string) error
}
