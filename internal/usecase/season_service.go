package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/team-growth/internal/domain/match"
	"github.com/riskibarqy/team-growth/internal/domain/refresh"
	"github.com/riskibarqy/team-growth/internal/domain/season"
	"github.com/riskibarqy/team-growth/internal/platform/id"
	"github.com/riskibarqy/team-growth/internal/platform/logging"
)

type CreateSeasonInput struct {
	Name      string
	StartDate time.Time
	EndDate   time.Time
	IsActive  bool
}

type UpdateSeasonInput struct {
	Name      string
	StartDate time.Time
	EndDate   time.Time
}

type SeasonService struct {
	seasons  season.Repository
	matches  match.Repository
	ids      id.Generator
	notifier eventNotifier
	now      func() time.Time
}

func NewSeasonService(
	seasons season.Repository,
	matches match.Repository,
	ids id.Generator,
	publisher refresh.Publisher,
	logger *logging.Logger,
) *SeasonService {
	return &SeasonService{
		seasons:  seasons,
		matches:  matches,
		ids:      ids,
		notifier: newEventNotifier(publisher, logger),
		now:      time.Now,
	}
}

func (s *SeasonService) Create(ctx context.Context, scope RequestScope, input CreateSeasonInput) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Create")
	defer span.End()

	scope, err := requireCoach(scope)
	if err != nil {
		return season.Season{}, err
	}

	input.Name = strings.TrimSpace(input.Name)
	if input.Name == "" {
		return season.Season{}, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if err := season.ValidateBounds(input.StartDate, input.EndDate); err != nil {
		return season.Season{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	seasonID, err := s.ids.NewID()
	if err != nil {
		return season.Season{}, fmt.Errorf("generate season id: %w", err)
	}

	now := s.now().UTC()
	item := season.Season{
		ID:        seasonID,
		TeamID:    scope.ActiveTeamID,
		Name:      input.Name,
		StartDate: season.CalendarDate(input.StartDate),
		EndDate:   season.CalendarDate(input.EndDate),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.seasons.Insert(ctx, item); err != nil {
		return season.Season{}, fmt.Errorf("insert season: %w", err)
	}
	if input.IsActive {
		if err := s.seasons.SetActive(ctx, item.TeamID, item.ID); err != nil {
			return season.Season{}, fmt.Errorf("activate season: %w", err)
		}
		item.IsActive = true
	}

	s.notifier.notify(ctx, item.TeamID, refresh.KindSeason, item.ID)
	return item, nil
}

func (s *SeasonService) List(ctx context.Context, scope RequestScope) ([]season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.List")
	defer span.End()

	scope, err := requireMember(scope)
	if err != nil {
		return nil, err
	}

	items, err := s.seasons.ListByTeam(ctx, scope.ActiveTeamID)
	if err != nil {
		return nil, fmt.Errorf("list seasons by team: %w", err)
	}
	return items, nil
}

func (s *SeasonService) Get(ctx context.Context, scope RequestScope, seasonID string) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Get", seasonAttr(seasonID))
	defer span.End()

	scope, err := requireMember(scope)
	if err != nil {
		return season.Season{}, err
	}
	return loadSeason(ctx, s.seasons, scope.ActiveTeamID, seasonID)
}

// Update rejects new bounds that would strand already scheduled matches.
func (s *SeasonService) Update(ctx context.Context, scope RequestScope, seasonID string, input UpdateSeasonInput) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Update", seasonAttr(seasonID))
	defer span.End()

	scope, err := requireCoach(scope)
	if err != nil {
		return season.Season{}, err
	}
	item, err := loadSeason(ctx, s.seasons, scope.ActiveTeamID, seasonID)
	if err != nil {
		return season.Season{}, err
	}

	if name := strings.TrimSpace(input.Name); name != "" {
		item.Name = name
	}
	if !input.StartDate.IsZero() {
		item.StartDate = season.CalendarDate(input.StartDate)
	}
	if !input.EndDate.IsZero() {
		item.EndDate = season.CalendarDate(input.EndDate)
	}
	if err := item.Validate(); err != nil {
		return season.Season{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	matches, err := s.matches.ListBySeason(ctx, item.ID)
	if err != nil {
		return season.Season{}, fmt.Errorf("list matches by season: %w", err)
	}
	for _, m := range matches {
		if err := season.ValidateMatchDate(m.MatchDate, item); err != nil {
			return season.Season{}, fmt.Errorf("%w: match %s against %s: %w", ErrConflict, m.ID, m.Opponent, err)
		}
	}

	item.UpdatedAt = s.now().UTC()
	if err := s.seasons.Update(ctx, item); err != nil {
		return season.Season{}, fmt.Errorf("update season: %w", err)
	}

	s.notifier.notify(ctx, item.TeamID, refresh.KindSeason, item.ID)
	return item, nil
}

func (s *SeasonService) SetActive(ctx context.Context, scope RequestScope, seasonID string) (season.Season, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.SetActive", seasonAttr(seasonID))
	defer span.End()

	scope, err := requireCoach(scope)
	if err != nil {
		return season.Season{}, err
	}
	item, err := loadSeason(ctx, s.seasons, scope.ActiveTeamID, seasonID)
	if err != nil {
		return season.Season{}, err
	}

	if err := s.seasons.SetActive(ctx, item.TeamID, item.ID); err != nil {
		return season.Season{}, fmt.Errorf("activate season: %w", err)
	}
	item.IsActive = true

	s.notifier.notify(ctx, item.TeamID, refresh.KindSeason, item.ID)
	return item, nil
}

// Delete is refused while any match references the season.
func (s *SeasonService) Delete(ctx context.Context, scope RequestScope, seasonID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Delete", seasonAttr(seasonID))
	defer span.End()

	scope, err := requireCoach(scope)
	if err != nil {
		return err
	}
	item, err := loadSeason(ctx, s.seasons, scope.ActiveTeamID, seasonID)
	if err != nil {
		return err
	}

	count, err := s.matches.CountBySeason(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("count matches by season: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("%w: season %s still has %d match(es)", ErrConflict, item.ID, count)
	}

	if err := s.seasons.Delete(ctx, item.ID); err != nil {
		if errors.Is(err, season.ErrInUse) {
			return fmt.Errorf("%w: %w", ErrConflict, err)
		}
		return fmt.Errorf("delete season: %w", err)
	}

	s.notifier.notify(ctx, item.TeamID, refresh.KindSeason, item.ID)
	return nil
}

// ValidateMatchDate is the advisory check clients run before submitting a
// match. The match service repeats it authoritatively.
func (s *SeasonService) ValidateMatchDate(ctx context.Context, scope RequestScope, seasonID string, matchDate time.Time) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.ValidateMatchDate", seasonAttr(seasonID))
	defer span.End()

	scope, err := requireMember(scope)
	if err != nil {
		return err
	}
	item, err := loadSeason(ctx, s.seasons, scope.ActiveTeamID, seasonID)
	if err != nil {
		return err
	}
	if matchDate.IsZero() {
		return fmt.Errorf("%w: match_date is required", ErrInvalidInput)
	}
	if err := season.ValidateMatchDate(matchDate, item); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return nil
}
