package matchstats

import (
	"slices"
	"strings"
	"time"

	"github.com/riskibarqy/team-growth/internal/domain/growth"
)

// GradedMatch is a stored record together with the match facts that order it
// in the player's growth chain.
type GradedMatch struct {
	Record    Record
	MatchDate time.Time
	Opponent  string
}

// Step is one match of the chain after a replay. Record.Baseline holds the
// ratings going into the match and Attributes the ratings coming out.
type Step struct {
	Match      GradedMatch
	Attributes growth.Attributes
}

// Replayed is the chain from the submitted match onward. Later lists the
// matches played after it whose ratings had to be recomputed, oldest first.
type Replayed struct {
	Target  Step
	Later   []Step
	Current growth.Attributes
}

// Replay places target among the player's graded matches and recomputes the
// ratings from target to the newest match. current is the player's rating
// set, used as the starting point when nothing has been graded yet; otherwise
// the chain starts from the earliest record's baseline. A stored record for
// target's match in history is replaced by target. Replay is pure.
func Replay(current growth.Attributes, history []GradedMatch, target GradedMatch) Replayed {
	chain := slices.Clone(history)
	slices.SortStableFunc(chain, compareGraded)

	start := current
	if len(chain) > 0 {
		start = chain[0].Record.Baseline
	}
	if start.IsZero() {
		start = growth.Baseline()
	}

	chain = slices.DeleteFunc(chain, func(g GradedMatch) bool {
		return g.Record.MatchID == target.Record.MatchID
	})
	pos, _ := slices.BinarySearchFunc(chain, target, compareGraded)
	chain = slices.Insert(chain, pos, target)

	var out Replayed
	running := start
	for i, g := range chain {
		if i >= pos {
			g.Record.Baseline = running
		}
		running = growth.Apply(running, g.Record.Stats.Performance())
		switch {
		case i == pos:
			out.Target = Step{Match: g, Attributes: running}
		case i > pos:
			out.Later = append(out.Later, Step{Match: g, Attributes: running})
		}
	}
	out.Current = running
	return out
}

// compareGraded orders by match date, then by first grading, then by id.
func compareGraded(a, b GradedMatch) int {
	if c := a.MatchDate.Compare(b.MatchDate); c != 0 {
		return c
	}
	if c := a.Record.CreatedAt.Compare(b.Record.CreatedAt); c != 0 {
		return c
	}
	return strings.Compare(a.Record.MatchID, b.Record.MatchID)
}
