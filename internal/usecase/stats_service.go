package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"github.com/riskibarqy/team-growth/internal/domain/growth"
	"github.com/riskibarqy/team-growth/internal/domain/match"
	"github.com/riskibarqy/team-growth/internal/domain/matchstats"
	"github.com/riskibarqy/team-growth/internal/domain/refresh"
	"github.com/riskibarqy/team-growth/internal/domain/roster"
	"github.com/riskibarqy/team-growth/internal/platform/id"
	"github.com/riskibarqy/team-growth/internal/platform/logging"
	"github.com/riskibarqy/team-growth/internal/platform/resilience"
	"go.opentelemetry.io/otel/attribute"
)

const (
	defaultBatchWorkers = 4
	maxBatchEntries     = 40
)

type SubmitStatsInput struct {
	MatchID  string
	PlayerID string
	Stats    matchstats.RawStats
}

type BatchStatsEntry struct {
	PlayerID string
	Stats    matchstats.RawStats
}

// BatchStatsResult is the outcome of one entry; entries succeed or fail
// independently.
type BatchStatsResult struct {
	PlayerID string
	Result   matchstats.Result
	Err      error
}

type StatsService struct {
	matches  match.Repository
	players  roster.Repository
	stats    matchstats.Repository
	ids      id.Generator
	locks    *resilience.KeyedMutex
	notifier eventNotifier
	logger   *logging.Logger
	workers  int
	now      func() time.Time
}

func NewStatsService(
	matches match.Repository,
	players roster.Repository,
	stats matchstats.Repository,
	ids id.Generator,
	locks *resilience.KeyedMutex,
	publisher refresh.Publisher,
	logger *logging.Logger,
	workers int,
) *StatsService {
	if logger == nil {
		logger = logging.Default()
	}
	if locks == nil {
		locks = resilience.NewKeyedMutex()
	}
	if workers < 1 {
		workers = defaultBatchWorkers
	}
	return &StatsService{
		matches:  matches,
		players:  players,
		stats:    stats,
		ids:      ids,
		locks:    locks,
		notifier: newEventNotifier(publisher, logger),
		logger:   logger,
		workers:  workers,
		now:      time.Now,
	}
}

// Submit grades one player's match. Ratings chain through the player's
// matches in match-date order: the match starts from the ratings after the
// previous graded match, and every later graded match is replayed on top so
// the current ratings always equal the newest snapshot. Re-submitting the
// same stats is idempotent for the ratings. Every call appends one snapshot
// for the match and one per replayed later match.
func (s *StatsService) Submit(ctx context.Context, scope RequestScope, input SubmitStatsInput) (matchstats.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.Submit", matchAttr(input.MatchID), playerAttr(input.PlayerID))
	defer span.End()

	scope, err := requireCoach(scope)
	if err != nil {
		return matchstats.Result{}, err
	}
	m, err := loadMatch(ctx, s.matches, scope.ActiveTeamID, input.MatchID)
	if err != nil {
		return matchstats.Result{}, err
	}
	return s.submit(ctx, m, input.PlayerID, input.Stats)
}

func (s *StatsService) submit(ctx context.Context, m match.Match, playerID string, raw matchstats.RawStats) (matchstats.Result, error) {
	raw.Feedback = strings.TrimSpace(raw.Feedback)
	if err := matchstats.Validate(ctx, raw); err != nil {
		return matchstats.Result{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	player, err := loadPlayer(ctx, s.players, m.TeamID, playerID)
	if err != nil {
		return matchstats.Result{}, err
	}

	recordID, err := s.ids.NewID()
	if err != nil {
		return matchstats.Result{}, fmt.Errorf("generate stat record id: %w", err)
	}
	snapshotID, err := s.ids.NewID()
	if err != nil {
		return matchstats.Result{}, fmt.Errorf("generate snapshot id: %w", err)
	}

	unlock := s.locks.Lock(statsLockKey(m.ID, player.ID))
	defer unlock()

	now := s.now().UTC()
	var previous growth.Attributes
	sub, err := s.stats.SaveSubmission(ctx, m.ID, player.ID, func(cur matchstats.Current) (matchstats.Submission, error) {
		previous = cur.PlayerAttributes
		if previous.IsZero() {
			previous = growth.Baseline()
		}

		rec := cur.Record
		if !cur.Exists {
			rec = matchstats.Record{
				ID:        recordID,
				MatchID:   m.ID,
				PlayerID:  player.ID,
				CreatedAt: now,
			}
		}
		rec.Stats = raw
		rec.UpdatedAt = now

		replayed := matchstats.Replay(cur.PlayerAttributes, cur.History, matchstats.GradedMatch{
			Record:    rec,
			MatchDate: m.MatchDate,
			Opponent:  m.Opponent,
		})

		out := matchstats.Submission{
			Record:     replayed.Target.Match.Record,
			Attributes: replayed.Current,
			Snapshot:   stepSnapshot(snapshotID, replayed.Target, now),
		}
		for _, step := range replayed.Later {
			laterSnapshotID, err := s.ids.NewID()
			if err != nil {
				return matchstats.Submission{}, fmt.Errorf("generate snapshot id: %w", err)
			}
			step.Match.Record.UpdatedAt = now
			out.Revisions = append(out.Revisions, matchstats.Revision{
				Record:   step.Match.Record,
				Snapshot: stepSnapshot(laterSnapshotID, step, now),
			})
		}
		return out, nil
	})
	if err != nil {
		return matchstats.Result{}, fmt.Errorf("save stats submission: %w", err)
	}

	s.logger.InfoContext(ctx, "match stats submitted",
		"match_id", m.ID,
		"player_id", player.ID,
		"overall_rating", sub.Attributes.OverallRating,
		"overall_delta", sub.Attributes.OverallRating-previous.OverallRating,
		"replayed_matches", len(sub.Revisions),
	)
	s.notifier.notify(ctx, m.TeamID, refresh.KindStats, m.ID)

	return matchstats.Result{
		Record:   sub.Record,
		Previous: previous,
		New:      sub.Attributes,
		Delta:    sub.Attributes.Sub(previous),
		Snapshot: sub.Snapshot,
	}, nil
}

func stepSnapshot(id string, step matchstats.Step, now time.Time) growth.Snapshot {
	return growth.Snapshot{
		ID:         id,
		PlayerID:   step.Match.Record.PlayerID,
		MatchID:    step.Match.Record.MatchID,
		Attributes: step.Attributes,
		MatchDate:  step.Match.MatchDate,
		Opponent:   step.Match.Opponent,
		CreatedAt:  now,
	}
}

// SubmitBatch grades several players of one match on a worker pool. Each
// entry keeps its own (player, match) serialisation and transaction.
func (s *StatsService) SubmitBatch(ctx context.Context, scope RequestScope, matchID string, entries []BatchStatsEntry) ([]BatchStatsResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.SubmitBatch", matchAttr(matchID), attribute.Int("batch.size", len(entries)))
	defer span.End()

	scope, err := requireCoach(scope)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, fmt.Errorf("%w: at least one entry is required", ErrInvalidInput)
	}
	if len(entries) > maxBatchEntries {
		return nil, fmt.Errorf("%w: at most %d entries per batch", ErrInvalidInput, maxBatchEntries)
	}
	seen := make(map[string]struct{}, len(entries))
	for _, entry := range entries {
		playerID := strings.TrimSpace(entry.PlayerID)
		if _, ok := seen[playerID]; ok {
			return nil, fmt.Errorf("%w: player %s appears more than once", ErrInvalidInput, playerID)
		}
		seen[playerID] = struct{}{}
	}

	m, err := loadMatch(ctx, s.matches, scope.ActiveTeamID, matchID)
	if err != nil {
		return nil, err
	}

	workerCount := min(s.workers, len(entries))
	pool, err := ants.NewPool(workerCount)
	if err != nil {
		return nil, fmt.Errorf("create worker pool: %w", err)
	}
	defer pool.Release()

	results := make([]BatchStatsResult, len(entries))
	var workers sync.WaitGroup
	for i, entry := range entries {
		results[i].PlayerID = strings.TrimSpace(entry.PlayerID)
		workers.Add(1)
		if err := pool.Submit(func() {
			defer workers.Done()
			results[i].Result, results[i].Err = s.submit(ctx, m, entry.PlayerID, entry.Stats)
		}); err != nil {
			workers.Done()
			results[i].Err = fmt.Errorf("submit entry to worker pool: %w", err)
		}
	}
	workers.Wait()

	failed := 0
	for _, row := range results {
		if row.Err != nil {
			failed++
		}
	}
	s.logger.InfoContext(ctx, "match stats batch submitted",
		"match_id", m.ID,
		"entries", len(entries),
		"failed", failed,
	)
	return results, nil
}

func (s *StatsService) ListByMatch(ctx context.Context, scope RequestScope, matchID string) ([]matchstats.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StatsService.ListByMatch", matchAttr(matchID))
	defer span.End()

	scope, err := requireCoach(scope)
	if err != nil {
		return nil, err
	}
	m, err := loadMatch(ctx, s.matches, scope.ActiveTeamID, matchID)
	if err != nil {
		return nil, err
	}

	items, err := s.stats.ListByMatch(ctx, m.ID)
	if err != nil {
		return nil, fmt.Errorf("list stat records by match: %w", err)
	}
	return items, nil
}
