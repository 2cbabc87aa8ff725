package roster

import (
	"context"

	"github.com/riskibarqy/team-growth/internal/domain/growth"
)

type Position string

const (
	PositionGoalkeeper Position = "GK"
	PositionDefender   Position = "DEF"
	PositionMidfielder Position = "MID"
	PositionForward    Position = "FWD"
)

// Player is the roster entry the growth engine reads and updates. UserID links
// the player to the account that may write reflections.
type Player struct {
	ID           string
	TeamID       string
	UserID       string
	Name         string
	Position     Position
	JerseyNumber int
	Attributes   growth.Attributes
}

// Repository exposes roster reads. Attribute writes happen inside the stats
// submission transaction, not through this interface.
type Repository interface {
	GetByID(ctx context.Context, id string) (Player, bool, error)
	ListByTeam(ctx context.Context, teamID string) ([]Player, error)
	Upsert(ctx context.Context, p Player) error
}
