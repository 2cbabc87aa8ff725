package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/team-growth/internal/domain/growth"
	"github.com/riskibarqy/team-growth/internal/domain/roster"
	"github.com/riskibarqy/team-growth/internal/domain/timeline"
	"github.com/sourcegraph/conc/pool"
)

const defaultBoardWorkers = 8

// PlayerGrowth is one row of the team growth board.
type PlayerGrowth struct {
	Player  roster.Player
	Matches int
	Chart   timeline.Chart
}

type GrowthService struct {
	players      roster.Repository
	snapshots    growth.SnapshotRepository
	chart        timeline.Options
	boardWorkers int
}

func NewGrowthService(players roster.Repository, snapshots growth.SnapshotRepository, chart timeline.Options) *GrowthService {
	return &GrowthService{
		players:      players,
		snapshots:    snapshots,
		chart:        chart,
		boardWorkers: defaultBoardWorkers,
	}
}

// History lists a player's snapshots oldest first.
func (s *GrowthService) History(ctx context.Context, scope RequestScope, playerID string) ([]growth.Snapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GrowthService.History", playerAttr(playerID))
	defer span.End()

	scope, err := requireMember(scope)
	if err != nil {
		return nil, err
	}
	player, err := loadPlayer(ctx, s.players, scope.ActiveTeamID, playerID)
	if err != nil {
		return nil, err
	}
	return s.history(ctx, player.ID)
}

// Chart projects a player's history. Zero fields of opts fall back to the
// service defaults, except Padding: zero is honoured and only a negative
// value (timeline.UnsetPadding) falls back.
func (s *GrowthService) Chart(ctx context.Context, scope RequestScope, playerID string, opts timeline.Options) (timeline.Chart, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GrowthService.Chart", playerAttr(playerID))
	defer span.End()

	history, err := s.History(ctx, scope, playerID)
	if err != nil {
		return timeline.Chart{}, err
	}
	return timeline.Project(history, s.options(opts)), nil
}

// TeamBoard projects every rostered player of the active team concurrently.
// Rows keep roster order.
func (s *GrowthService) TeamBoard(ctx context.Context, scope RequestScope) ([]PlayerGrowth, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GrowthService.TeamBoard")
	defer span.End()

	scope, err := requireMember(scope)
	if err != nil {
		return nil, err
	}
	players, err := s.players.ListByTeam(ctx, scope.ActiveTeamID)
	if err != nil {
		return nil, fmt.Errorf("list roster by team: %w", err)
	}

	rows := make([]PlayerGrowth, len(players))
	p := pool.New().WithContext(ctx).WithCancelOnError().WithMaxGoroutines(s.boardWorkers)
	for i, player := range players {
		p.Go(func(ctx context.Context) error {
			history, err := s.history(ctx, player.ID)
			if err != nil {
				return err
			}
			rows[i] = PlayerGrowth{
				Player:  player,
				Matches: len(history),
				Chart:   timeline.Project(history, s.chart),
			}
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *GrowthService) history(ctx context.Context, playerID string) ([]growth.Snapshot, error) {
	items, err := s.snapshots.ListByPlayer(ctx, playerID)
	if err != nil {
		return nil, fmt.Errorf("list snapshots by player: %w", err)
	}
	growth.SortChronological(items)
	return items, nil
}

func (s *GrowthService) options(override timeline.Options) timeline.Options {
	out := s.chart
	if override.Height > 0 {
		out.Height = override.Height
	}
	if override.Padding >= 0 {
		out.Padding = override.Padding
	}
	if override.MinSpacing > 0 {
		out.MinSpacing = override.MinSpacing
	}
	if override.AvailableWidth > 0 {
		out.AvailableWidth = override.AvailableWidth
	}
	return out
}
