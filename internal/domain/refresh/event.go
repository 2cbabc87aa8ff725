package refresh

import (
	"context"
	"time"
)

// Kind names what changed so subscribers can refetch only what they show.
type Kind string

const (
	KindSeason     Kind = "season"
	KindMatch      Kind = "match"
	KindLineup     Kind = "lineup"
	KindStats      Kind = "stats"
	KindReflection Kind = "reflection"
	KindSuggestion Kind = "suggestion"
)

// Event tells clients of a team to invalidate and refetch.
type Event struct {
	TeamID     string    `json:"team_id"`
	Kind       Kind      `json:"kind"`
	EntityID   string    `json:"entity_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Publisher delivers events after a mutation has committed. Delivery is best
// effort; a failed publish never rolls back the mutation.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// Channel is the pub/sub channel for a team.
func Channel(teamID string) string {
	return "team-refresh:" + teamID
}
