package matchstats

import (
	"time"

	"github.com/riskibarqy/team-growth/internal/domain/growth"
)

const (
	MaxMinutesPlayed = 120
	MaxCoachRating   = 100
)

// RawStats is one player's coach-submitted stat line for a match.
type RawStats struct {
	MinutesPlayed  int    `json:"minutes_played" validate:"gte=0,lte=120"`
	Goals          int    `json:"goals" validate:"gte=0"`
	Assists        int    `json:"assists" validate:"gte=0"`
	Tackles        int    `json:"tackles" validate:"gte=0"`
	Interceptions  int    `json:"interceptions" validate:"gte=0"`
	Saves          int    `json:"saves" validate:"gte=0"`
	ChancesCreated int    `json:"chances_created" validate:"gte=0"`
	CoachRating    int    `json:"coach_rating" validate:"gte=0,lte=100"`
	Feedback       string `json:"feedback" validate:"max=4000"`
}

func (r RawStats) Performance() growth.Performance {
	return growth.Performance{
		MinutesPlayed:  r.MinutesPlayed,
		Goals:          r.Goals,
		Assists:        r.Assists,
		Tackles:        r.Tackles,
		Interceptions:  r.Interceptions,
		Saves:          r.Saves,
		ChancesCreated: r.ChancesCreated,
		CoachRating:    r.CoachRating,
	}
}

// Record is the stored stat line for a (match, player) pair.
//
// Baseline holds the player's attributes going into this match, that is after
// the previous graded match. It is rewritten when an earlier match is graded
// or re-graded.
type Record struct {
	ID                   string
	MatchID              string
	PlayerID             string
	Stats                RawStats
	Reflection           string
	AISuggestions        string
	Baseline             growth.Attributes
	ReflectionUnlockedAt *time.Time
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (r Record) Clone() Record {
	copied := r
	if r.ReflectionUnlockedAt != nil {
		at := *r.ReflectionUnlockedAt
		copied.ReflectionUnlockedAt = &at
	}
	return copied
}

// Result is what a submission reports back to the coach.
type Result struct {
	Record   Record
	Previous growth.Attributes
	New      growth.Attributes
	Delta    growth.Attributes
	Snapshot growth.Snapshot
}
