package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/team-growth/internal/domain/match"
	"github.com/riskibarqy/team-growth/internal/domain/refresh"
	"github.com/riskibarqy/team-growth/internal/domain/season"
	"github.com/riskibarqy/team-growth/internal/platform/id"
	"github.com/riskibarqy/team-growth/internal/platform/logging"
)

type CreateMatchInput struct {
	SeasonID      string
	Opponent      string
	MatchDate     time.Time
	TeamScore     int
	OpponentScore int
}

// UpdateMatchInput edits only the fields that are set.
type UpdateMatchInput struct {
	Opponent      *string
	MatchDate     *time.Time
	TeamScore     *int
	OpponentScore *int
}

type MatchService struct {
	seasons  season.Repository
	matches  match.Repository
	ids      id.Generator
	notifier eventNotifier
	now      func() time.Time
}

func NewMatchService(
	seasons season.Repository,
	matches match.Repository,
	ids id.Generator,
	publisher refresh.Publisher,
	logger *logging.Logger,
) *MatchService {
	return &MatchService{
		seasons:  seasons,
		matches:  matches,
		ids:      ids,
		notifier: newEventNotifier(publisher, logger),
		now:      time.Now,
	}
}

func (s *MatchService) Create(ctx context.Context, scope RequestScope, input CreateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Create", seasonAttr(input.SeasonID))
	defer span.End()

	scope, err := requireCoach(scope)
	if err != nil {
		return match.Match{}, err
	}
	parent, err := loadSeason(ctx, s.seasons, scope.ActiveTeamID, input.SeasonID)
	if err != nil {
		return match.Match{}, err
	}

	item := match.Match{
		TeamID:        parent.TeamID,
		SeasonID:      parent.ID,
		Opponent:      strings.TrimSpace(input.Opponent),
		MatchDate:     input.MatchDate,
		TeamScore:     input.TeamScore,
		OpponentScore: input.OpponentScore,
	}
	if err := validateMatch(item, parent); err != nil {
		return match.Match{}, err
	}
	item.MatchDate = season.CalendarDate(item.MatchDate)

	item.ID, err = s.ids.NewID()
	if err != nil {
		return match.Match{}, fmt.Errorf("generate match id: %w", err)
	}
	now := s.now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := s.matches.Insert(ctx, item); err != nil {
		return match.Match{}, fmt.Errorf("insert match: %w", err)
	}

	s.notifier.notify(ctx, item.TeamID, refresh.KindMatch, item.ID)
	return item, nil
}

func (s *MatchService) Get(ctx context.Context, scope RequestScope, matchID string) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Get", matchAttr(matchID))
	defer span.End()

	scope, err := requireMember(scope)
	if err != nil {
		return match.Match{}, err
	}
	return loadMatch(ctx, s.matches, scope.ActiveTeamID, matchID)
}

func (s *MatchService) ListBySeason(ctx context.Context, scope RequestScope, seasonID string) ([]match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.ListBySeason", seasonAttr(seasonID))
	defer span.End()

	scope, err := requireMember(scope)
	if err != nil {
		return nil, err
	}
	parent, err := loadSeason(ctx, s.seasons, scope.ActiveTeamID, seasonID)
	if err != nil {
		return nil, err
	}

	items, err := s.matches.ListBySeason(ctx, parent.ID)
	if err != nil {
		return nil, fmt.Errorf("list matches by season: %w", err)
	}
	return items, nil
}

// Update re-applies the season bounds to the edited match.
func (s *MatchService) Update(ctx context.Context, scope RequestScope, matchID string, input UpdateMatchInput) (match.Match, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Update", matchAttr(matchID))
	defer span.End()

	scope, err := requireCoach(scope)
	if err != nil {
		return match.Match{}, err
	}
	item, err := loadMatch(ctx, s.matches, scope.ActiveTeamID, matchID)
	if err != nil {
		return match.Match{}, err
	}
	parent, err := loadSeason(ctx, s.seasons, scope.ActiveTeamID, item.SeasonID)
	if err != nil {
		return match.Match{}, err
	}

	if input.Opponent != nil {
		item.Opponent = strings.TrimSpace(*input.Opponent)
	}
	if input.MatchDate != nil {
		item.MatchDate = *input.MatchDate
	}
	if input.TeamScore != nil {
		item.TeamScore = *input.TeamScore
	}
	if input.OpponentScore != nil {
		item.OpponentScore = *input.OpponentScore
	}
	if err := validateMatch(item, parent); err != nil {
		return match.Match{}, err
	}
	item.MatchDate = season.CalendarDate(item.MatchDate)
	item.UpdatedAt = s.now().UTC()

	if err := s.matches.Update(ctx, item); err != nil {
		return match.Match{}, fmt.Errorf("update match: %w", err)
	}

	s.notifier.notify(ctx, item.TeamID, refresh.KindMatch, item.ID)
	return item, nil
}

// Delete cascades to the lineup and stat records; growth snapshots stay.
func (s *MatchService) Delete(ctx context.Context, scope RequestScope, matchID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchService.Delete", matchAttr(matchID))
	defer span.End()

	scope, err := requireCoach(scope)
	if err != nil {
		return err
	}
	item, err := loadMatch(ctx, s.matches, scope.ActiveTeamID, matchID)
	if err != nil {
		return err
	}

	if err := s.matches.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("delete match: %w", err)
	}

	s.notifier.notify(ctx, item.TeamID, refresh.KindMatch, item.ID)
	return nil
}

func validateMatch(item match.Match, parent season.Season) error {
	if item.Opponent == "" {
		return fmt.Errorf("%w: opponent is required", ErrInvalidInput)
	}
	if item.MatchDate.IsZero() {
		return fmt.Errorf("%w: match_date is required", ErrInvalidInput)
	}
	if err := item.ValidateScores(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := season.ValidateMatchDate(item.MatchDate, parent); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}
