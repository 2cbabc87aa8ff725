package matchstats

import (
	"context"

	"github.com/riskibarqy/team-growth/internal/domain/growth"
)

// Current is the locked state a submission is computed from. History holds
// every graded match of the player, including Record when it exists.
type Current struct {
	Record           Record
	Exists           bool
	PlayerAttributes growth.Attributes
	History          []GradedMatch
}

// Revision rewrites the baseline of a later record and appends its snapshot.
type Revision struct {
	Record   Record
	Snapshot growth.Snapshot
}

// Submission is what the repository persists in one transaction: the record
// upsert, the revisions of later matches in order, the player's new current
// attributes and the appended snapshots.
type Submission struct {
	Record     Record
	Attributes growth.Attributes
	Snapshot   growth.Snapshot
	Revisions  []Revision
}

// Repository persists stat records. SaveSubmission holds the player's lock
// and Update the (match, player) row lock for the duration of the callback;
// callback errors abort without writes.
type Repository interface {
	Get(ctx context.Context, matchID, playerID string) (Record, bool, error)
	ListByMatch(ctx context.Context, matchID string) ([]Record, error)
	ListByPlayer(ctx context.Context, playerID string) ([]Record, error)
	SaveSubmission(ctx context.Context, matchID, playerID string, apply func(Current) (Submission, error)) (Submission, error)
	Update(ctx context.Context, matchID, playerID string, fn func(*Record) error) (Record, error)
}
