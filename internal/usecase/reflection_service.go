package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/team-growth/internal/domain/match"
	"github.com/riskibarqy/team-growth/internal/domain/matchstats"
	"github.com/riskibarqy/team-growth/internal/domain/reflection"
	"github.com/riskibarqy/team-growth/internal/domain/refresh"
	"github.com/riskibarqy/team-growth/internal/domain/roster"
	"github.com/riskibarqy/team-growth/internal/platform/logging"
	"github.com/riskibarqy/team-growth/internal/platform/resilience"
)

const maxReflectionLength = 4000

type SaveReflectionInput struct {
	MatchID  string
	PlayerID string
	Text     string
}

type ReflectionResult struct {
	State     reflection.State
	Unlocked  bool
	Length    int
	Threshold int
}

// PerformanceSummary is the structured part of a review. It is gated with
// the coach feedback.
type PerformanceSummary struct {
	MinutesPlayed  int
	Goals          int
	Assists        int
	Tackles        int
	Interceptions  int
	Saves          int
	ChancesCreated int
	CoachRating    int
}

// Review is a player's view of one graded match. Feedback, AISuggestions and
// Performance are nil until the gate is open; coaches always see them.
type Review struct {
	Match         match.Match
	PlayerID      string
	Reflection    string
	State         reflection.State
	Threshold     int
	Feedback      *string
	AISuggestions *string
	Performance   *PerformanceSummary
}

type ReflectionService struct {
	matches  match.Repository
	players  roster.Repository
	stats    matchstats.Repository
	gate     reflection.Gate
	locks    *resilience.KeyedMutex
	notifier eventNotifier
	logger   *logging.Logger
	now      func() time.Time
}

func NewReflectionService(
	matches match.Repository,
	players roster.Repository,
	stats matchstats.Repository,
	gate reflection.Gate,
	locks *resilience.KeyedMutex,
	publisher refresh.Publisher,
	logger *logging.Logger,
) *ReflectionService {
	if logger == nil {
		logger = logging.Default()
	}
	if locks == nil {
		locks = resilience.NewKeyedMutex()
	}
	return &ReflectionService{
		matches:  matches,
		players:  players,
		stats:    stats,
		gate:     gate,
		locks:    locks,
		notifier: newEventNotifier(publisher, logger),
		logger:   logger,
		now:      time.Now,
	}
}

// Save stores the player's reflection for a graded match. Only the user
// linked to the player may write it, and the match must already have a stat
// record for that player.
//
// The save that crosses the threshold reports StateUnlocking with Unlocked
// set; callers treat it as open and may show gated content right away. Later
// reads report StateUnlocked.
func (s *ReflectionService) Save(ctx context.Context, scope RequestScope, input SaveReflectionInput) (ReflectionResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReflectionService.Save", matchAttr(input.MatchID), playerAttr(input.PlayerID))
	defer span.End()

	scope, err := requireMember(scope)
	if err != nil {
		return ReflectionResult{}, err
	}
	if reflection.Length(input.Text) > maxReflectionLength {
		return ReflectionResult{}, fmt.Errorf("%w: reflection exceeds %d characters", ErrInvalidInput, maxReflectionLength)
	}

	player, err := loadPlayer(ctx, s.players, scope.ActiveTeamID, input.PlayerID)
	if err != nil {
		return ReflectionResult{}, err
	}
	if player.UserID == "" || player.UserID != scope.CurrentUserID {
		return ReflectionResult{}, fmt.Errorf("%w: reflection belongs to the player", ErrForbidden)
	}
	m, err := loadMatch(ctx, s.matches, scope.ActiveTeamID, input.MatchID)
	if err != nil {
		return ReflectionResult{}, err
	}

	unlock := s.locks.Lock(statsLockKey(m.ID, player.ID))
	defer unlock()

	if _, exists, err := s.stats.Get(ctx, m.ID, player.ID); err != nil {
		return ReflectionResult{}, fmt.Errorf("get stat record: %w", err)
	} else if !exists {
		return ReflectionResult{}, fmt.Errorf("%w: no graded stats for player=%s match=%s", ErrNotFound, player.ID, m.ID)
	}

	text := strings.TrimSpace(input.Text)
	now := s.now().UTC()
	var transition reflection.Transition
	if _, err := s.stats.Update(ctx, m.ID, player.ID, func(rec *matchstats.Record) error {
		transition = s.gate.Save(text, rec.ReflectionUnlockedAt, now)
		rec.Reflection = text
		rec.ReflectionUnlockedAt = transition.UnlockedAt
		rec.UpdatedAt = now
		return nil
	}); err != nil {
		return ReflectionResult{}, fmt.Errorf("save reflection: %w", err)
	}

	if transition.Unlocked {
		s.logger.InfoContext(ctx, "reflection gate unlocked", "match_id", m.ID, "player_id", player.ID)
	}
	s.notifier.notify(ctx, m.TeamID, refresh.KindReflection, m.ID)

	return ReflectionResult{
		State:     transition.State,
		Unlocked:  transition.Unlocked,
		Length:    reflection.Length(text),
		Threshold: s.gate.Threshold(),
	}, nil
}

// Review returns the gated match review. Players only see their own.
func (s *ReflectionService) Review(ctx context.Context, scope RequestScope, matchID, playerID string) (Review, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ReflectionService.Review", matchAttr(matchID), playerAttr(playerID))
	defer span.End()

	scope, err := requireMember(scope)
	if err != nil {
		return Review{}, err
	}
	player, err := loadPlayer(ctx, s.players, scope.ActiveTeamID, playerID)
	if err != nil {
		return Review{}, err
	}
	if !scope.IsCoach() && player.UserID != scope.CurrentUserID {
		return Review{}, fmt.Errorf("%w: review belongs to the player", ErrForbidden)
	}
	m, err := loadMatch(ctx, s.matches, scope.ActiveTeamID, matchID)
	if err != nil {
		return Review{}, err
	}

	rec, exists, err := s.stats.Get(ctx, m.ID, player.ID)
	if err != nil {
		return Review{}, fmt.Errorf("get stat record: %w", err)
	}
	if !exists {
		return Review{}, fmt.Errorf("%w: no graded stats for player=%s match=%s", ErrNotFound, player.ID, m.ID)
	}

	out := Review{
		Match:      m,
		PlayerID:   player.ID,
		Reflection: rec.Reflection,
		State:      s.gate.Read(rec.Reflection, rec.ReflectionUnlockedAt),
		Threshold:  s.gate.Threshold(),
	}
	if out.State == reflection.StateUnlocked || scope.IsCoach() {
		feedback := rec.Stats.Feedback
		suggestions := rec.AISuggestions
		out.Feedback = &feedback
		out.AISuggestions = &suggestions
		out.Performance = &PerformanceSummary{
			MinutesPlayed:  rec.Stats.MinutesPlayed,
			Goals:          rec.Stats.Goals,
			Assists:        rec.Stats.Assists,
			Tackles:        rec.Stats.Tackles,
			Interceptions:  rec.Stats.Interceptions,
			Saves:          rec.Stats.Saves,
			ChancesCreated: rec.Stats.ChancesCreated,
			CoachRating:    rec.Stats.CoachRating,
		}
	}
	return out, nil
}
