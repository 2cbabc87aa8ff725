package app

import (
	"context"
	"fmt"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/team-growth/internal/domain/match"
	"github.com/riskibarqy/team-growth/internal/domain/roster"
	"github.com/riskibarqy/team-growth/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/team-growth/internal/platform/logging"
	"github.com/riskibarqy/team-growth/internal/platform/statsgen"
	"github.com/riskibarqy/team-growth/internal/usecase"
)

const (
	demoSeed      = 20240817
	demoBatchSize = 40
)

var demoOpponents = []string{
	"Persija Youth", "Bali United U17", "PSM Muda", "Arema Academy", "Persebaya Junior", "PSIS Youth",
}

type demoServices struct {
	seasons *usecase.SeasonService
	matches *usecase.MatchService
	stats   *usecase.StatsService
	players roster.Repository
}

// seedDemo plays n weekly matches for the seed team so a fresh instance has
// growth curves to show. It does nothing when the team already has a season.
func seedDemo(ctx context.Context, svc demoServices, n int, now time.Time, logger *logging.Logger) error {
	if n <= 0 {
		return nil
	}

	coach := usecase.RequestScope{
		CurrentUserID: memory.SeedCoach,
		ActiveTeamID:  memory.SeedTeamID,
		Role:          usecase.RoleCoach,
	}

	existing, err := svc.seasons.List(ctx, coach)
	if err != nil {
		return crerr.Wrap(err, "list seasons for demo seed")
	}
	if len(existing) > 0 {
		logger.Info("demo seed skipped", "reason", "team already has seasons", "team_id", coach.ActiveTeamID)
		return nil
	}

	players, err := svc.players.ListByTeam(ctx, coach.ActiveTeamID)
	if err != nil {
		return crerr.Wrap(err, "list roster for demo seed")
	}
	if len(players) == 0 {
		logger.Warn("demo seed skipped", "reason", "empty roster", "team_id", coach.ActiveTeamID)
		return nil
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	start := today.AddDate(0, 0, -7*n)
	created, err := svc.seasons.Create(ctx, coach, usecase.CreateSeasonInput{
		Name:      fmt.Sprintf("Demo Season %d", start.Year()),
		StartDate: start,
		EndDate:   today.AddDate(0, 3, 0),
		IsActive:  true,
	})
	if err != nil {
		return crerr.Wrap(err, "create demo season")
	}

	gen := statsgen.New(demoSeed)
	for i := 0; i < n; i++ {
		result := gen.Result()
		teamScore, opponentScore := gen.Scoreline(result)
		m, err := svc.matches.Create(ctx, coach, usecase.CreateMatchInput{
			SeasonID:      created.ID,
			Opponent:      demoOpponents[i%len(demoOpponents)],
			MatchDate:     start.AddDate(0, 0, 7*i),
			TeamScore:     teamScore,
			OpponentScore: opponentScore,
		})
		if err != nil {
			return crerr.Wrapf(err, "create demo match %d", i+1)
		}

		if err := submitDemoStats(ctx, svc.stats, coach, m, players, gen); err != nil {
			return err
		}
	}

	logger.Info("demo seed applied", "season_id", created.ID, "matches", n, "players", len(players))
	return nil
}

func submitDemoStats(
	ctx context.Context,
	stats *usecase.StatsService,
	coach usecase.RequestScope,
	m match.Match,
	players []roster.Player,
	gen *statsgen.Generator,
) error {
	entries := make([]usecase.BatchStatsEntry, 0, len(players))
	for _, p := range players {
		entries = append(entries, usecase.BatchStatsEntry{
			PlayerID: p.ID,
			Stats:    gen.Stats(p.Position, m.Result()),
		})
	}

	for len(entries) > 0 {
		chunk := entries[:min(demoBatchSize, len(entries))]
		entries = entries[len(chunk):]

		results, err := stats.SubmitBatch(ctx, coach, m.ID, chunk)
		if err != nil {
			return crerr.Wrapf(err, "submit demo stats for match %s", m.ID)
		}
		for _, row := range results {
			if row.Err != nil {
				return crerr.Wrapf(row.Err, "submit demo stats for player %s", row.PlayerID)
			}
		}
	}
	return nil
}
