package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/team-growth/internal/domain/growth"
	"github.com/riskibarqy/team-growth/internal/domain/lineup"
	"github.com/riskibarqy/team-growth/internal/domain/match"
	"github.com/riskibarqy/team-growth/internal/domain/matchstats"
	"github.com/riskibarqy/team-growth/internal/domain/season"
)

func seededStore(t *testing.T) *Store {
	t.Helper()

	store := NewStore(SeedPlayers())
	ctx := context.Background()
	if err := store.Seasons().Insert(ctx, season.Season{
		ID: "s1", TeamID: SeedTeamID,
		StartDate: time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2025, 8, 1, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("insert season: %v", err)
	}
	if err := store.Matches().Insert(ctx, match.Match{
		ID: "m1", TeamID: SeedTeamID, SeasonID: "s1", Opponent: "Persita U17",
		MatchDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("insert match: %v", err)
	}
	return store
}

func TestSeasonRepository_DeleteInUse(t *testing.T) {
	store := seededStore(t)

	if err := store.Seasons().Delete(context.Background(), "s1"); !errors.Is(err, season.ErrInUse) {
		t.Fatalf("expected ErrInUse, got %v", err)
	}
}

func TestSeasonRepository_SetActiveIsExclusive(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()
	_ = store.Seasons().Insert(ctx, season.Season{ID: "s2", TeamID: SeedTeamID, IsActive: true})

	if err := store.Seasons().SetActive(ctx, SeedTeamID, "s1"); err != nil {
		t.Fatalf("set active: %v", err)
	}
	items, _ := store.Seasons().ListByTeam(ctx, SeedTeamID)
	for _, item := range items {
		if item.IsActive != (item.ID == "s1") {
			t.Fatalf("unexpected active flag on %s", item.ID)
		}
	}
}

func TestMatchRepository_DeleteCascadesButKeepsSnapshots(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()

	if _, err := store.Lineups().SelectFormation(ctx, lineup.Lineup{ID: "l1", MatchID: "m1", Formation: lineup.Formation433}); err != nil {
		t.Fatalf("select formation: %v", err)
	}
	_, err := store.MatchStats().SaveSubmission(ctx, "m1", "player-07", func(cur matchstats.Current) (matchstats.Submission, error) {
		return matchstats.Submission{
			Record:     matchstats.Record{ID: "r1", MatchID: "m1", PlayerID: "player-07"},
			Attributes: growth.Baseline(),
			Snapshot:   growth.Snapshot{ID: "snap1", PlayerID: "player-07", MatchID: "m1"},
		}, nil
	})
	if err != nil {
		t.Fatalf("save submission: %v", err)
	}

	if err := store.Matches().Delete(ctx, "m1"); err != nil {
		t.Fatalf("delete match: %v", err)
	}

	if _, ok, _ := store.Lineups().GetByMatch(ctx, "m1"); ok {
		t.Fatalf("expected lineup to be removed")
	}
	if _, ok, _ := store.MatchStats().Get(ctx, "m1", "player-07"); ok {
		t.Fatalf("expected stat record to be removed")
	}
	snaps, _ := store.Snapshots().ListByPlayer(ctx, "player-07")
	if len(snaps) != 1 {
		t.Fatalf("expected snapshot to survive, got %d", len(snaps))
	}
}

func TestLineupRepository_SelectFormationClearsAssignments(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()

	first, _ := store.Lineups().SelectFormation(ctx, lineup.Lineup{ID: "l1", MatchID: "m1", Formation: lineup.Formation433})
	_, err := store.Lineups().Mutate(ctx, first.ID, func(l *lineup.Lineup) error {
		l.Assignments["ST"] = "player-09"
		return nil
	})
	if err != nil {
		t.Fatalf("mutate: %v", err)
	}

	second, err := store.Lineups().SelectFormation(ctx, lineup.Lineup{ID: "ignored", MatchID: "m1", Formation: lineup.Formation442})
	if err != nil {
		t.Fatalf("reselect formation: %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("expected lineup id to be kept, got %s", second.ID)
	}
	if len(second.Assignments) != 0 || second.Formation != lineup.Formation442 {
		t.Fatalf("expected cleared 4-4-2 lineup, got %+v", second)
	}
}

func TestMatchStatsRepository_FailedApplyWritesNothing(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()
	boom := errors.New("boom")

	_, err := store.MatchStats().SaveSubmission(ctx, "m1", "player-07", func(matchstats.Current) (matchstats.Submission, error) {
		return matchstats.Submission{}, boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("expected callback error, got %v", err)
	}

	if _, ok, _ := store.MatchStats().Get(ctx, "m1", "player-07"); ok {
		t.Fatalf("expected no record")
	}
	snaps, _ := store.Snapshots().ListByPlayer(ctx, "player-07")
	if len(snaps) != 0 {
		t.Fatalf("expected no snapshots")
	}
	p, _, _ := store.Roster().GetByID(ctx, "player-07")
	if !p.Attributes.IsZero() {
		t.Fatalf("expected untouched attributes, got %+v", p.Attributes)
	}
}

func TestMatchStatsRepository_SubmissionSeesHistoryAndWritesRevisions(t *testing.T) {
	store := seededStore(t)
	ctx := context.Background()
	if err := store.Matches().Insert(ctx, match.Match{
		ID: "m2", TeamID: SeedTeamID, SeasonID: "s1", Opponent: "Persik U17",
		MatchDate: time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("insert match: %v", err)
	}

	save := func(matchID string, fn func(matchstats.Current) (matchstats.Submission, error)) {
		t.Helper()
		if _, err := store.MatchStats().SaveSubmission(ctx, matchID, "player-07", fn); err != nil {
			t.Fatalf("save submission %s: %v", matchID, err)
		}
	}
	save("m2", func(matchstats.Current) (matchstats.Submission, error) {
		return matchstats.Submission{
			Record:     matchstats.Record{ID: "r2", MatchID: "m2", PlayerID: "player-07"},
			Attributes: growth.Baseline(),
			Snapshot:   growth.Snapshot{ID: "snap1", PlayerID: "player-07", MatchID: "m2", MatchDate: time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC)},
		}, nil
	})

	rewritten := growth.Attributes{Shooting: 61}
	save("m1", func(cur matchstats.Current) (matchstats.Submission, error) {
		if len(cur.History) != 1 || cur.History[0].Record.MatchID != "m2" || cur.History[0].Opponent != "Persik U17" {
			t.Fatalf("expected m2 in history, got %+v", cur.History)
		}
		later := cur.History[0].Record
		later.Baseline = rewritten
		return matchstats.Submission{
			Record:     matchstats.Record{ID: "r1", MatchID: "m1", PlayerID: "player-07"},
			Attributes: rewritten,
			Snapshot:   growth.Snapshot{ID: "snap2", PlayerID: "player-07", MatchID: "m1", MatchDate: time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
			Revisions: []matchstats.Revision{{
				Record:   later,
				Snapshot: growth.Snapshot{ID: "snap3", PlayerID: "player-07", MatchID: "m2", MatchDate: time.Date(2025, 3, 8, 0, 0, 0, 0, time.UTC), Attributes: rewritten},
			}},
		}, nil
	})

	rec, _, _ := store.MatchStats().Get(ctx, "m2", "player-07")
	if rec.Baseline != rewritten {
		t.Fatalf("expected m2 baseline rewritten, got %+v", rec.Baseline)
	}
	snaps, _ := store.Snapshots().ListByPlayer(ctx, "player-07")
	if len(snaps) != 3 || snaps[len(snaps)-1].ID != "snap3" {
		t.Fatalf("expected the revision snapshot last, got %+v", snaps)
	}
	player, _, _ := store.Roster().GetByID(ctx, "player-07")
	if player.Attributes != snaps[len(snaps)-1].Attributes {
		t.Fatalf("expected current ratings to equal the newest snapshot")
	}
}
