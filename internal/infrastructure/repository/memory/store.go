package memory

import (
	"slices"
	"sync"

	"github.com/riskibarqy/team-growth/internal/domain/growth"
	"github.com/riskibarqy/team-growth/internal/domain/lineup"
	"github.com/riskibarqy/team-growth/internal/domain/match"
	"github.com/riskibarqy/team-growth/internal/domain/matchstats"
	"github.com/riskibarqy/team-growth/internal/domain/roster"
	"github.com/riskibarqy/team-growth/internal/domain/season"
)

// Store keeps every aggregate behind one lock so multi-entity writes (stats
// submission, match cascade) are atomic the way a single SQL transaction is.
type Store struct {
	mu sync.RWMutex

	seasons       map[string]season.Season
	matches       map[string]match.Match
	players       map[string]roster.Player
	lineups       map[string]lineup.Lineup
	lineupByMatch map[string]string
	stats         map[statKey]matchstats.Record
	snapshots     map[string][]growth.Snapshot
}

type statKey struct {
	matchID  string
	playerID string
}

func NewStore(players []roster.Player) *Store {
	s := &Store{
		seasons:       make(map[string]season.Season),
		matches:       make(map[string]match.Match),
		players:       make(map[string]roster.Player, len(players)),
		lineups:       make(map[string]lineup.Lineup),
		lineupByMatch: make(map[string]string),
		stats:         make(map[statKey]matchstats.Record),
		snapshots:     make(map[string][]growth.Snapshot),
	}
	for _, p := range players {
		s.players[p.ID] = p
	}
	return s
}

func (s *Store) Seasons() *SeasonRepository        { return &SeasonRepository{store: s} }
func (s *Store) Matches() *MatchRepository         { return &MatchRepository{store: s} }
func (s *Store) Roster() *RosterRepository         { return &RosterRepository{store: s} }
func (s *Store) Lineups() *LineupRepository        { return &LineupRepository{store: s} }
func (s *Store) MatchStats() *MatchStatsRepository { return &MatchStatsRepository{store: s} }
func (s *Store) Snapshots() *SnapshotRepository    { return &SnapshotRepository{store: s} }

func sortedValues[K comparable, V any](m map[K]V, keep func(V) bool, less func(a, b V) int) []V {
	out := make([]V, 0, len(m))
	for _, v := range m {
		if keep(v) {
			out = append(out, v)
		}
	}
	slices.SortFunc(out, less)
	return out
}
