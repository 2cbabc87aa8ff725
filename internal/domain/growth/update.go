package growth

import "math"

// Performance is the subset of a match stat line that feeds the ratings.
type Performance struct {
	MinutesPlayed  int
	Goals          int
	Assists        int
	Tackles        int
	Interceptions  int
	Saves          int
	ChancesCreated int
	CoachRating    int
}

const (
	fullMatchMinutes = 90.0
	maxBlend         = 0.3
)

// Apply blends one match into prev and returns the new ratings. Each
// sub-attribute moves toward the match score by an exponential moving average
// whose weight grows with minutes played, so a player who did not play keeps
// prev. Coach grade is taken from the match directly. Apply is pure.
func Apply(prev Attributes, p Performance) Attributes {
	if prev.IsZero() {
		prev = Baseline()
	}

	match := Score(p)
	alpha := maxBlend * playedShare(p.MinutesPlayed)

	next := Attributes{
		Shooting:   blend(prev.Shooting, match.Shooting, alpha),
		Passing:    blend(prev.Passing, match.Passing, alpha),
		Dribbling:  blend(prev.Dribbling, match.Dribbling, alpha),
		Defense:    blend(prev.Defense, match.Defense, alpha),
		Physical:   blend(prev.Physical, match.Physical, alpha),
		CoachGrade: round1(clamp(float64(p.CoachRating))),
	}
	next.OverallRating = Overall(next)
	return next
}

// Score rates a single match on the attribute scale, anchored on the coach rating.
func Score(p Performance) Attributes {
	anchor := float64(p.CoachRating)
	goals := float64(p.Goals)
	assists := float64(p.Assists)
	chances := float64(p.ChancesCreated)
	tackles := float64(p.Tackles)

	return Attributes{
		Shooting:   clamp(0.6*anchor + 12*goals + 2*chances),
		Passing:    clamp(0.6*anchor + 12*assists + 4*chances),
		Dribbling:  clamp(0.7*anchor + 3*chances + 4*goals + 4*assists),
		Defense:    clamp(0.6*anchor + 4*tackles + 4*float64(p.Interceptions) + 3*float64(p.Saves)),
		Physical:   clamp(0.6*anchor + 30*playedShare(p.MinutesPlayed) + 2*tackles),
		CoachGrade: clamp(anchor),
	}
}

func playedShare(minutes int) float64 {
	return math.Max(0, math.Min(float64(minutes), fullMatchMinutes)) / fullMatchMinutes
}

func blend(prev, match, alpha float64) float64 {
	return round1(clamp(prev + alpha*(match-prev)))
}
