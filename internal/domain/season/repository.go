package season

import (
	"context"
	"errors"
)

// ErrInUse is returned by Delete while matches still reference the season.
var ErrInUse = errors.New("season is referenced by matches")

// Repository exposes season persistence operations.
type Repository interface {
	GetByID(ctx context.Context, id string) (Season, bool, error)
	ListByTeam(ctx context.Context, teamID string) ([]Season, error)
	Insert(ctx context.Context, item Season) error
	Update(ctx context.Context, item Season) error
	// SetActive marks id active and every other season of the team inactive.
	SetActive(ctx context.Context, teamID, id string) error
	Delete(ctx context.Context, id string) error
}
