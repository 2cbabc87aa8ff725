package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/team-growth/internal/domain/match"
	"github.com/riskibarqy/team-growth/internal/domain/matchstats"
	"github.com/riskibarqy/team-growth/internal/domain/refresh"
	"github.com/riskibarqy/team-growth/internal/domain/roster"
	"github.com/riskibarqy/team-growth/internal/domain/suggestion"
	"github.com/riskibarqy/team-growth/internal/platform/logging"
	"github.com/riskibarqy/team-growth/internal/platform/resilience"
)

type SuggestionService struct {
	matches   match.Repository
	players   roster.Repository
	stats     matchstats.Repository
	generator suggestion.Generator
	locks     *resilience.KeyedMutex
	notifier  eventNotifier
	logger    *logging.Logger
	now       func() time.Time
}

func NewSuggestionService(
	matches match.Repository,
	players roster.Repository,
	stats matchstats.Repository,
	generator suggestion.Generator,
	locks *resilience.KeyedMutex,
	publisher refresh.Publisher,
	logger *logging.Logger,
) *SuggestionService {
	if logger == nil {
		logger = logging.Default()
	}
	if locks == nil {
		locks = resilience.NewKeyedMutex()
	}
	return &SuggestionService{
		matches:   matches,
		players:   players,
		stats:     stats,
		generator: generator,
		locks:     locks,
		notifier:  newEventNotifier(publisher, logger),
		logger:    logger,
		now:       time.Now,
	}
}

// Generate asks the external generator for suggestions based on the graded
// stats and stores the text on the record. The remote call happens before
// the record lock is taken.
func (s *SuggestionService) Generate(ctx context.Context, scope RequestScope, matchID, playerID string) (matchstats.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SuggestionService.Generate", matchAttr(matchID), playerAttr(playerID))
	defer span.End()

	scope, err := requireCoach(scope)
	if err != nil {
		return matchstats.Record{}, err
	}
	if s.generator == nil {
		return matchstats.Record{}, fmt.Errorf("%w: suggestion generator is not configured", ErrDependencyUnavailable)
	}
	m, err := loadMatch(ctx, s.matches, scope.ActiveTeamID, matchID)
	if err != nil {
		return matchstats.Record{}, err
	}
	player, err := loadPlayer(ctx, s.players, scope.ActiveTeamID, playerID)
	if err != nil {
		return matchstats.Record{}, err
	}

	rec, exists, err := s.stats.Get(ctx, m.ID, player.ID)
	if err != nil {
		return matchstats.Record{}, fmt.Errorf("get stat record: %w", err)
	}
	if !exists {
		return matchstats.Record{}, fmt.Errorf("%w: no graded stats for player=%s match=%s", ErrNotFound, player.ID, m.ID)
	}

	text, err := s.generator.Generate(ctx, suggestion.Request{
		Feedback: rec.Stats.Feedback,
		Position: player.Position,
		Stats:    rec.Stats,
	})
	if err != nil {
		s.logger.WarnContext(ctx, "generate suggestions failed", "match_id", m.ID, "player_id", player.ID, "error", err)
		return matchstats.Record{}, fmt.Errorf("%w: generate suggestions: %v", ErrDependencyUnavailable, err)
	}

	unlock := s.locks.Lock(statsLockKey(m.ID, player.ID))
	defer unlock()

	updated, err := s.stats.Update(ctx, m.ID, player.ID, func(r *matchstats.Record) error {
		r.AISuggestions = text
		r.UpdatedAt = s.now().UTC()
		return nil
	})
	if err != nil {
		return matchstats.Record{}, fmt.Errorf("store suggestions: %w", err)
	}

	s.notifier.notify(ctx, m.TeamID, refresh.KindSuggestion, m.ID)
	return updated, nil
}
