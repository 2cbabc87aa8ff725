package statsgen

import (
	"context"
	"testing"

	"github.com/riskibarqy/team-growth/internal/domain/match"
	"github.com/riskibarqy/team-growth/internal/domain/matchstats"
	"github.com/riskibarqy/team-growth/internal/domain/roster"
)

func TestGenerator_SameSeedSameSequence(t *testing.T) {
	a, b := New(42), New(42)
	for i := 0; i < 50; i++ {
		if a.Stats(roster.PositionForward, match.ResultWin) != b.Stats(roster.PositionForward, match.ResultWin) {
			t.Fatalf("sequences diverged at draw %d", i)
		}
	}
}

func TestGenerator_StatsAlwaysValid(t *testing.T) {
	g := New(7)
	positions := []roster.Position{
		roster.PositionGoalkeeper, roster.PositionDefender, roster.PositionMidfielder, roster.PositionForward, "??",
	}
	for i := 0; i < 400; i++ {
		pos := positions[i%len(positions)]
		stats := g.Stats(pos, g.Result())
		if err := matchstats.Validate(context.Background(), stats); err != nil {
			t.Fatalf("draw %d for %s is invalid: %v", i, pos, err)
		}
		if pos != roster.PositionGoalkeeper && stats.Saves != 0 {
			t.Fatalf("outfield player %s got saves: %+v", pos, stats)
		}
		if pos == roster.PositionGoalkeeper && stats.Goals != 0 {
			t.Fatalf("goalkeeper scored: %+v", stats)
		}
	}
}

func TestGenerator_WinsRateHigherThanLosses(t *testing.T) {
	g := New(99)
	var wins, losses int
	for i := 0; i < 200; i++ {
		wins += g.Stats(roster.PositionMidfielder, match.ResultWin).CoachRating
		losses += g.Stats(roster.PositionMidfielder, match.ResultLoss).CoachRating
	}
	if wins <= losses {
		t.Fatalf("expected wins to rate higher: wins=%d losses=%d", wins, losses)
	}
}

func TestGenerator_ScorelineAgreesWithResult(t *testing.T) {
	g := New(3)
	for i := 0; i < 100; i++ {
		for _, result := range []match.Result{match.ResultWin, match.ResultDraw, match.ResultLoss} {
			team, opp := g.Scoreline(result)
			m := match.Match{TeamScore: team, OpponentScore: opp}
			if m.Result() != result {
				t.Fatalf("scoreline %d-%d does not match %s", team, opp, result)
			}
		}
	}
}
