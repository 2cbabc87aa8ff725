package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/team-growth/internal/domain/lineup"
	"github.com/riskibarqy/team-growth/internal/domain/match"
	"github.com/riskibarqy/team-growth/internal/domain/refresh"
	"github.com/riskibarqy/team-growth/internal/domain/roster"
	"github.com/riskibarqy/team-growth/internal/platform/id"
	"github.com/riskibarqy/team-growth/internal/platform/logging"
	"github.com/riskibarqy/team-growth/internal/platform/resilience"
)

type SelectFormationInput struct {
	MatchID   string
	Formation string
	// ConfirmClear must be set to switch the formation of a lineup that
	// already has assignments; the switch clears all of them.
	ConfirmClear bool
}

type AssignPlayerInput struct {
	LineupID string
	SlotCode string
	PlayerID string
}

// FormationSlots is the slot vocabulary of one formation.
type FormationSlots struct {
	Formation lineup.Formation
	Starting  []string
	Bench     []string
}

type LineupService struct {
	matches  match.Repository
	players  roster.Repository
	lineups  lineup.Repository
	ids      id.Generator
	rules    lineup.Rules
	locks    *resilience.KeyedMutex
	notifier eventNotifier
	now      func() time.Time
}

func NewLineupService(
	matches match.Repository,
	players roster.Repository,
	lineups lineup.Repository,
	ids id.Generator,
	rules lineup.Rules,
	publisher refresh.Publisher,
	logger *logging.Logger,
) *LineupService {
	return &LineupService{
		matches:  matches,
		players:  players,
		lineups:  lineups,
		ids:      ids,
		rules:    rules,
		locks:    resilience.NewKeyedMutex(),
		notifier: newEventNotifier(publisher, logger),
		now:      time.Now,
	}
}

func (s *LineupService) Formations() []FormationSlots {
	out := make([]FormationSlots, 0, len(lineup.Formations()))
	for _, f := range lineup.Formations() {
		out = append(out, FormationSlots{
			Formation: f,
			Starting:  lineup.StartingSlots(f),
			Bench:     lineup.BenchSlots(s.rules.BenchSize),
		})
	}
	return out
}

func (s *LineupService) BenchSize() int {
	return s.rules.BenchSize
}

// SelectFormation creates the match lineup on first use. On an existing
// lineup it sets the formation and clears every assignment, including when
// the formation is unchanged; a lineup with assignments needs ConfirmClear.
func (s *LineupService) SelectFormation(ctx context.Context, scope RequestScope, input SelectFormationInput) (lineup.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.SelectFormation", matchAttr(input.MatchID))
	defer span.End()

	scope, err := requireCoach(scope)
	if err != nil {
		return lineup.Lineup{}, err
	}
	formation, err := lineup.ParseFormation(input.Formation)
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	m, err := loadMatch(ctx, s.matches, scope.ActiveTeamID, input.MatchID)
	if err != nil {
		return lineup.Lineup{}, err
	}

	unlock := s.locks.Lock(lineupLockKey(m.ID))
	defer unlock()

	existing, exists, err := s.lineups.GetByMatch(ctx, m.ID)
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("get lineup by match: %w", err)
	}
	if exists && len(existing.Assignments) > 0 && !input.ConfirmClear {
		return lineup.Lineup{}, fmt.Errorf(
			"%w: selecting %s over %s clears %d assignment(s); confirm_clear is required",
			ErrConflict, formation, existing.Formation, len(existing.Assignments),
		)
	}

	lineupID, err := s.ids.NewID()
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("generate lineup id: %w", err)
	}
	now := s.now().UTC()
	saved, err := s.lineups.SelectFormation(ctx, lineup.Lineup{
		ID:          lineupID,
		MatchID:     m.ID,
		TeamID:      m.TeamID,
		Formation:   formation,
		Assignments: map[string]string{},
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("select formation: %w", err)
	}

	s.notifier.notify(ctx, saved.TeamID, refresh.KindLineup, saved.ID)
	return saved, nil
}

func (s *LineupService) GetByMatch(ctx context.Context, scope RequestScope, matchID string) (lineup.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.GetByMatch", matchAttr(matchID))
	defer span.End()

	scope, err := requireMember(scope)
	if err != nil {
		return lineup.Lineup{}, err
	}
	m, err := loadMatch(ctx, s.matches, scope.ActiveTeamID, matchID)
	if err != nil {
		return lineup.Lineup{}, err
	}

	item, exists, err := s.lineups.GetByMatch(ctx, m.ID)
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("get lineup by match: %w", err)
	}
	if !exists {
		return lineup.Lineup{}, fmt.Errorf("%w: lineup for match=%s", ErrNotFound, m.ID)
	}
	return item, nil
}

// AssignPlayer puts a rostered player into a slot, replacing the occupant.
// A player already holding another slot must be unassigned first.
func (s *LineupService) AssignPlayer(ctx context.Context, scope RequestScope, input AssignPlayerInput) (lineup.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.AssignPlayer", playerAttr(input.PlayerID))
	defer span.End()

	scope, err := requireCoach(scope)
	if err != nil {
		return lineup.Lineup{}, err
	}
	slot := strings.TrimSpace(input.SlotCode)
	playerID := strings.TrimSpace(input.PlayerID)
	if playerID == "" {
		return lineup.Lineup{}, fmt.Errorf("%w: player_id is required", ErrInvalidInput)
	}

	current, err := s.loadLineup(ctx, scope.ActiveTeamID, input.LineupID)
	if err != nil {
		return lineup.Lineup{}, err
	}
	if _, err := loadPlayer(ctx, s.players, current.TeamID, playerID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return lineup.Lineup{}, fmt.Errorf("%w: player %s is not on the team roster", ErrInvalidInput, playerID)
		}
		return lineup.Lineup{}, err
	}

	return s.mutate(ctx, current, func(l *lineup.Lineup) (bool, error) {
		return s.rules.Assign(l, slot, playerID)
	})
}

func (s *LineupService) UnassignSlot(ctx context.Context, scope RequestScope, lineupID, slotCode string) (lineup.Lineup, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LineupService.UnassignSlot")
	defer span.End()

	scope, err := requireCoach(scope)
	if err != nil {
		return lineup.Lineup{}, err
	}
	slot := strings.TrimSpace(slotCode)

	current, err := s.loadLineup(ctx, scope.ActiveTeamID, lineupID)
	if err != nil {
		return lineup.Lineup{}, err
	}

	return s.mutate(ctx, current, func(l *lineup.Lineup) (bool, error) {
		return s.rules.Unassign(l, slot)
	})
}

func (s *LineupService) loadLineup(ctx context.Context, teamID, lineupID string) (lineup.Lineup, error) {
	lineupID = strings.TrimSpace(lineupID)
	if lineupID == "" {
		return lineup.Lineup{}, fmt.Errorf("%w: lineup_id is required", ErrInvalidInput)
	}
	item, exists, err := s.lineups.GetByID(ctx, lineupID)
	if err != nil {
		return lineup.Lineup{}, fmt.Errorf("get lineup by id: %w", err)
	}
	if !exists || item.TeamID != teamID {
		return lineup.Lineup{}, fmt.Errorf("%w: lineup=%s", ErrNotFound, lineupID)
	}
	return item, nil
}

func (s *LineupService) mutate(ctx context.Context, current lineup.Lineup, apply func(*lineup.Lineup) (bool, error)) (lineup.Lineup, error) {
	unlock := s.locks.Lock(lineupLockKey(current.MatchID))
	defer unlock()

	changed := false
	updated, err := s.lineups.Mutate(ctx, current.ID, func(l *lineup.Lineup) error {
		var err error
		changed, err = apply(l)
		if err != nil {
			return err
		}
		if changed {
			l.UpdatedAt = s.now().UTC()
		}
		return nil
	})
	if err != nil {
		return lineup.Lineup{}, mapLineupError(err)
	}

	if changed {
		s.notifier.notify(ctx, updated.TeamID, refresh.KindLineup, updated.ID)
	}
	return updated, nil
}

func mapLineupError(err error) error {
	var slotErr *lineup.SlotConflictError
	if errors.As(err, &slotErr) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	var dupErr *lineup.DuplicatePlayerError
	if errors.As(err, &dupErr) {
		return fmt.Errorf("%w: %w", ErrConflict, err)
	}
	return fmt.Errorf("mutate lineup: %w", err)
}
