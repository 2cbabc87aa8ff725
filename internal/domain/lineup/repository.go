package lineup

import "context"

// Repository exposes lineup persistence operations.
type Repository interface {
	GetByID(ctx context.Context, id string) (Lineup, bool, error)
	GetByMatch(ctx context.Context, matchID string) (Lineup, bool, error)
	// SelectFormation creates the match lineup or replaces its formation,
	// clearing every assignment in the same transaction.
	SelectFormation(ctx context.Context, candidate Lineup) (Lineup, error)
	// Mutate loads the lineup under a row lock, applies fn and stores the
	// resulting assignments atomically. fn errors abort without writes.
	Mutate(ctx context.Context, lineupID string, fn func(*Lineup) error) (Lineup, error)
}
