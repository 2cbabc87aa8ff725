package cache

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/team-growth/internal/domain/growth"
	"github.com/riskibarqy/team-growth/internal/domain/match"
	"github.com/riskibarqy/team-growth/internal/domain/matchstats"
	"github.com/riskibarqy/team-growth/internal/domain/season"
	"github.com/riskibarqy/team-growth/internal/infrastructure/repository/memory"
	basecache "github.com/riskibarqy/team-growth/internal/platform/cache"
)

func TestMatchStatsRepository_SubmissionInvalidatesPlayerCaches(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore(memory.SeedPlayers())
	_ = store.Seasons().Insert(ctx, season.Season{ID: "s1", TeamID: memory.SeedTeamID})
	_ = store.Matches().Insert(ctx, match.Match{ID: "m1", TeamID: memory.SeedTeamID, SeasonID: "s1", MatchDate: time.Now()})

	c := basecache.NewStore(time.Minute)
	rosterRepo := NewRosterRepository(store.Roster(), c)
	snapshotRepo := NewSnapshotRepository(store.Snapshots(), c)
	statsRepo := NewMatchStatsRepository(store.MatchStats(), c)

	before, _, _ := rosterRepo.GetByID(ctx, "player-07")
	if !before.Attributes.IsZero() {
		t.Fatalf("expected unrated player")
	}
	if snaps, _ := snapshotRepo.ListByPlayer(ctx, "player-07"); len(snaps) != 0 {
		t.Fatalf("expected empty growth log")
	}
	team, _ := rosterRepo.ListByTeam(ctx, memory.SeedTeamID)
	if len(team) == 0 {
		t.Fatalf("expected seeded roster")
	}

	_, err := statsRepo.SaveSubmission(ctx, "m1", "player-07", func(matchstats.Current) (matchstats.Submission, error) {
		return matchstats.Submission{
			Record:     matchstats.Record{ID: "r1", MatchID: "m1", PlayerID: "player-07"},
			Attributes: growth.Baseline(),
			Snapshot:   growth.Snapshot{ID: "snap-1", PlayerID: "player-07", MatchID: "m1"},
		}, nil
	})
	if err != nil {
		t.Fatalf("save submission: %v", err)
	}

	after, _, _ := rosterRepo.GetByID(ctx, "player-07")
	if after.Attributes != growth.Baseline() {
		t.Fatalf("expected fresh attributes after submission, got %+v", after.Attributes)
	}
	if snaps, _ := snapshotRepo.ListByPlayer(ctx, "player-07"); len(snaps) != 1 {
		t.Fatalf("expected snapshot cache to be invalidated, got %d", len(snaps))
	}
	if c.Len() == 0 {
		t.Fatalf("expected reloaded entries to be cached again")
	}
}
