package usecase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/team-growth/internal/domain/lineup"
	"github.com/riskibarqy/team-growth/internal/domain/match"
	"github.com/riskibarqy/team-growth/internal/domain/matchstats"
	"github.com/riskibarqy/team-growth/internal/domain/reflection"
	"github.com/riskibarqy/team-growth/internal/domain/refresh"
	"github.com/riskibarqy/team-growth/internal/domain/season"
	"github.com/riskibarqy/team-growth/internal/domain/suggestion"
	"github.com/riskibarqy/team-growth/internal/domain/timeline"
	"github.com/riskibarqy/team-growth/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/team-growth/internal/platform/id"
	"github.com/riskibarqy/team-growth/internal/platform/logging"
	"github.com/riskibarqy/team-growth/internal/platform/resilience"
)

var testNow = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

type recordingPublisher struct {
	mu     sync.Mutex
	events []refresh.Event
}

func (p *recordingPublisher) Publish(_ context.Context, event refresh.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) count(kind refresh.Kind) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := 0
	for _, e := range p.events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

type testEnv struct {
	store       *memory.Store
	publisher   *recordingPublisher
	seasons     *SeasonService
	matches     *MatchService
	lineups     *LineupService
	stats       *StatsService
	reflections *ReflectionService
	suggestions *SuggestionService
	growth      *GrowthService
}

type envOption func(*envConfig)

type envConfig struct {
	generator suggestion.Generator
	policy    reflection.Policy
}

func withGenerator(g suggestion.Generator) envOption {
	return func(c *envConfig) { c.generator = g }
}

func withReflectionPolicy(p reflection.Policy) envOption {
	return func(c *envConfig) { c.policy = p }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()

	cfg := envConfig{policy: reflection.PolicySticky}
	for _, opt := range opts {
		opt(&cfg)
	}

	store := memory.NewStore(memory.SeedPlayers())
	publisher := &recordingPublisher{}
	ids := id.NewSequenceGenerator("id")
	locks := resilience.NewKeyedMutex()
	logger := logging.NewNop()
	clock := func() time.Time { return testNow }

	env := &testEnv{
		store:     store,
		publisher: publisher,
		seasons:   NewSeasonService(store.Seasons(), store.Matches(), ids, publisher, logger),
		matches:   NewMatchService(store.Seasons(), store.Matches(), ids, publisher, logger),
		lineups: NewLineupService(store.Matches(), store.Roster(), store.Lineups(), ids,
			lineup.NewRules(lineup.DefaultBench), publisher, logger),
		stats: NewStatsService(store.Matches(), store.Roster(), store.MatchStats(), ids, locks,
			publisher, logger, 4),
		reflections: NewReflectionService(store.Matches(), store.Roster(), store.MatchStats(),
			reflection.NewGate(reflection.DefaultThreshold, cfg.policy), locks, publisher, logger),
		suggestions: NewSuggestionService(store.Matches(), store.Roster(), store.MatchStats(),
			cfg.generator, locks, publisher, logger),
		growth: NewGrowthService(store.Roster(), store.Snapshots(), timeline.DefaultOptions()),
	}
	env.seasons.now = clock
	env.matches.now = clock
	env.lineups.now = clock
	env.stats.now = clock
	env.reflections.now = clock
	env.suggestions.now = clock
	return env
}

func coachScope() RequestScope {
	return RequestScope{CurrentUserID: memory.SeedCoach, ActiveTeamID: memory.SeedTeamID, Role: RoleCoach}
}

func playerScope(userID string) RequestScope {
	return RequestScope{CurrentUserID: userID, ActiveTeamID: memory.SeedTeamID, Role: RolePlayer}
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// mustSeason creates the 2025-02-01..2025-08-01 season.
func (e *testEnv) mustSeason(t *testing.T) season.Season {
	t.Helper()
	item, err := e.seasons.Create(context.Background(), coachScope(), CreateSeasonInput{
		Name:      "Liga Pelajar 2025",
		StartDate: day(2025, 2, 1),
		EndDate:   day(2025, 8, 1),
		IsActive:  true,
	})
	if err != nil {
		t.Fatalf("create season: %v", err)
	}
	return item
}

func (e *testEnv) mustMatch(t *testing.T, seasonID string, at time.Time, opponent string) match.Match {
	t.Helper()
	item, err := e.matches.Create(context.Background(), coachScope(), CreateMatchInput{
		SeasonID:  seasonID,
		Opponent:  opponent,
		MatchDate: at,
	})
	if err != nil {
		t.Fatalf("create match: %v", err)
	}
	return item
}

func (e *testEnv) mustSubmit(t *testing.T, matchID, playerID string, raw matchstats.RawStats) matchstats.Result {
	t.Helper()
	res, err := e.stats.Submit(context.Background(), coachScope(), SubmitStatsInput{
		MatchID:  matchID,
		PlayerID: playerID,
		Stats:    raw,
	})
	if err != nil {
		t.Fatalf("submit stats: %v", err)
	}
	return res
}
