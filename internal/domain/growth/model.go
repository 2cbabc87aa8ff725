package growth

import (
	"context"
	"math"
	"slices"
	"time"
)

// Attributes are the tracked player ratings, each on a 0..100 scale.
type Attributes struct {
	Shooting      float64
	Passing       float64
	Dribbling     float64
	Defense       float64
	Physical      float64
	CoachGrade    float64
	OverallRating float64
}

// Overall weights. Changing them breaks comparability with stored snapshots.
const (
	WeightShooting   = 0.20
	WeightPassing    = 0.20
	WeightDribbling  = 0.15
	WeightDefense    = 0.15
	WeightPhysical   = 0.10
	WeightCoachGrade = 0.20
)

const BaselineRating = 50.0

// Baseline is the rating set of a player without any graded match.
func Baseline() Attributes {
	a := Attributes{
		Shooting:   BaselineRating,
		Passing:    BaselineRating,
		Dribbling:  BaselineRating,
		Defense:    BaselineRating,
		Physical:   BaselineRating,
		CoachGrade: BaselineRating,
	}
	a.OverallRating = Overall(a)
	return a
}

// Overall is the fixed-weight aggregate of the five sub-attributes and coach grade.
func Overall(a Attributes) float64 {
	return round1(WeightShooting*a.Shooting +
		WeightPassing*a.Passing +
		WeightDribbling*a.Dribbling +
		WeightDefense*a.Defense +
		WeightPhysical*a.Physical +
		WeightCoachGrade*a.CoachGrade)
}

// IsZero reports whether no rating has ever been set.
func (a Attributes) IsZero() bool {
	return a == Attributes{}
}

func (a Attributes) Sub(b Attributes) Attributes {
	return Attributes{
		Shooting:      round1(a.Shooting - b.Shooting),
		Passing:       round1(a.Passing - b.Passing),
		Dribbling:     round1(a.Dribbling - b.Dribbling),
		Defense:       round1(a.Defense - b.Defense),
		Physical:      round1(a.Physical - b.Physical),
		CoachGrade:    round1(a.CoachGrade - b.CoachGrade),
		OverallRating: round1(a.OverallRating - b.OverallRating),
	}
}

// Snapshot is an immutable record of a player's ratings as of one match.
type Snapshot struct {
	ID         string
	PlayerID   string
	MatchID    string
	Attributes Attributes
	MatchDate  time.Time
	Opponent   string
	CreatedAt  time.Time
}

// SnapshotRepository reads the append-only growth log. Snapshots are written
// by the stats submission transaction.
type SnapshotRepository interface {
	ListByPlayer(ctx context.Context, playerID string) ([]Snapshot, error)
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(100, v))
}

// SortChronological orders snapshots by match date, keeping insertion order
// for snapshots of the same day.
func SortChronological(snapshots []Snapshot) {
	slices.SortStableFunc(snapshots, func(a, b Snapshot) int {
		return a.MatchDate.Compare(b.MatchDate)
	})
}
