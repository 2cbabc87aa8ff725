// Package statsgen builds plausible, reproducible stat lines for fixtures and
// tests. It is never used by the submission pipeline.
package statsgen

import (
	"math/rand/v2"

	"github.com/riskibarqy/team-growth/internal/domain/match"
	"github.com/riskibarqy/team-growth/internal/domain/matchstats"
	"github.com/riskibarqy/team-growth/internal/domain/roster"
)

type profile struct {
	goals         int
	assists       int
	tackles       [2]int
	interceptions [2]int
	saves         [2]int
	chances       [2]int
}

var profiles = map[roster.Position]profile{
	roster.PositionGoalkeeper: {saves: [2]int{1, 8}, interceptions: [2]int{0, 2}},
	roster.PositionDefender:   {goals: 1, assists: 1, tackles: [2]int{2, 8}, interceptions: [2]int{1, 6}, chances: [2]int{0, 1}},
	roster.PositionMidfielder: {goals: 2, assists: 2, tackles: [2]int{1, 5}, interceptions: [2]int{0, 4}, chances: [2]int{1, 5}},
	roster.PositionForward:    {goals: 3, assists: 2, tackles: [2]int{0, 2}, interceptions: [2]int{0, 1}, chances: [2]int{1, 4}},
}

// coach rating window per result
var ratingRange = map[match.Result][2]int{
	match.ResultWin:  {65, 92},
	match.ResultDraw: {55, 78},
	match.ResultLoss: {40, 68},
}

// Generator is deterministic for a given seed and call order. Not safe for
// concurrent use.
type Generator struct {
	rng *rand.Rand
}

func New(seed uint64) *Generator {
	return &Generator{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Stats draws a stat line shaped by the player's position and the match result.
func (g *Generator) Stats(pos roster.Position, result match.Result) matchstats.RawStats {
	p, ok := profiles[pos]
	if !ok {
		p = profiles[roster.PositionMidfielder]
	}

	minutes := 90
	switch roll := g.rng.IntN(10); {
	case roll == 0:
		minutes = g.between(10, 35)
	case roll < 3:
		minutes = g.between(55, 89)
	}

	stats := matchstats.RawStats{
		MinutesPlayed:  minutes,
		Goals:          g.skewed(p.goals, result),
		Assists:        g.skewed(p.assists, result),
		Tackles:        g.between(p.tackles[0], p.tackles[1]),
		Interceptions:  g.between(p.interceptions[0], p.interceptions[1]),
		Saves:          g.between(p.saves[0], p.saves[1]),
		ChancesCreated: g.between(p.chances[0], p.chances[1]),
		CoachRating:    g.rating(result),
	}
	return stats
}

// Scoreline draws a final score that agrees with result.
func (g *Generator) Scoreline(result match.Result) (team, opponent int) {
	switch result {
	case match.ResultWin:
		opponent = g.between(0, 2)
		return opponent + g.between(1, 3), opponent
	case match.ResultLoss:
		team = g.between(0, 2)
		return team, team + g.between(1, 3)
	default:
		team = g.between(0, 3)
		return team, team
	}
}

// Result draws a result with a slight home-side bias.
func (g *Generator) Result() match.Result {
	switch roll := g.rng.IntN(100); {
	case roll < 45:
		return match.ResultWin
	case roll < 70:
		return match.ResultDraw
	default:
		return match.ResultLoss
	}
}

func (g *Generator) rating(result match.Result) int {
	r, ok := ratingRange[result]
	if !ok {
		r = ratingRange[match.ResultDraw]
	}
	return g.between(r[0], r[1])
}

// skewed draws 0..limit, favouring more involvement in wins.
func (g *Generator) skewed(limit int, result match.Result) int {
	if limit <= 0 {
		return 0
	}
	v := g.rng.IntN(limit + 1)
	if result == match.ResultLoss && v > 0 && g.rng.IntN(2) == 0 {
		v--
	}
	if result == match.ResultWin && v < limit && g.rng.IntN(4) == 0 {
		v++
	}
	return v
}

func (g *Generator) between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + g.rng.IntN(hi-lo+1)
}
