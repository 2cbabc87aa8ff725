package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/team-growth/internal/domain/match"
	"github.com/riskibarqy/team-growth/internal/domain/roster"
	"github.com/riskibarqy/team-growth/internal/domain/season"
)

// Entities of another team are reported as missing so IDs do not leak
// across teams.

func loadSeason(ctx context.Context, repo season.Repository, teamID, seasonID string) (season.Season, error) {
	seasonID = strings.TrimSpace(seasonID)
	if seasonID == "" {
		return season.Season{}, fmt.Errorf("%w: season_id is required", ErrInvalidInput)
	}
	item, exists, err := repo.GetByID(ctx, seasonID)
	if err != nil {
		return season.Season{}, fmt.Errorf("get season by id: %w", err)
	}
	if !exists || item.TeamID != teamID {
		return season.Season{}, fmt.Errorf("%w: season=%s", ErrNotFound, seasonID)
	}
	return item, nil
}

func loadMatch(ctx context.Context, repo match.Repository, teamID, matchID string) (match.Match, error) {
	matchID = strings.TrimSpace(matchID)
	if matchID == "" {
		return match.Match{}, fmt.Errorf("%w: match_id is required", ErrInvalidInput)
	}
	item, exists, err := repo.GetByID(ctx, matchID)
	if err != nil {
		return match.Match{}, fmt.Errorf("get match by id: %w", err)
	}
	if !exists || item.TeamID != teamID {
		return match.Match{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return item, nil
}

func loadPlayer(ctx context.Context, repo roster.Repository, teamID, playerID string) (roster.Player, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return roster.Player{}, fmt.Errorf("%w: player_id is required", ErrInvalidInput)
	}
	item, exists, err := repo.GetByID(ctx, playerID)
	if err != nil {
		return roster.Player{}, fmt.Errorf("get player by id: %w", err)
	}
	if !exists || item.TeamID != teamID {
		return roster.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	return item, nil
}

func statsLockKey(matchID, playerID string) string {
	return "stats:" + matchID + ":" + playerID
}

func lineupLockKey(matchID string) string {
	return "lineup:" + matchID
}
