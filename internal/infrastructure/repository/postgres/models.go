package postgres

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/team-growth/internal/domain/growth"
	"github.com/riskibarqy/team-growth/internal/domain/lineup"
	"github.com/riskibarqy/team-growth/internal/domain/match"
	"github.com/riskibarqy/team-growth/internal/domain/matchstats"
	"github.com/riskibarqy/team-growth/internal/domain/roster"
	"github.com/riskibarqy/team-growth/internal/domain/season"
)

type seasonTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	TeamID    string    `db:"team_public_id"`
	Name      string    `db:"name"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type seasonInsertModel struct {
	PublicID  string    `db:"public_id"`
	TeamID    string    `db:"team_public_id"`
	Name      string    `db:"name"`
	StartDate time.Time `db:"start_date"`
	EndDate   time.Time `db:"end_date"`
	IsActive  bool      `db:"is_active"`
}

func (m seasonTableModel) toDomain() season.Season {
	return season.Season{
		ID:        m.PublicID,
		TeamID:    m.TeamID,
		Name:      m.Name,
		StartDate: season.CalendarDate(m.StartDate),
		EndDate:   season.CalendarDate(m.EndDate),
		IsActive:  m.IsActive,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

type matchTableModel struct {
	ID            int64     `db:"id"`
	PublicID      string    `db:"public_id"`
	TeamID        string    `db:"team_public_id"`
	SeasonID      string    `db:"season_public_id"`
	Opponent      string    `db:"opponent"`
	MatchDate     time.Time `db:"match_date"`
	TeamScore     int       `db:"team_score"`
	OpponentScore int       `db:"opponent_score"`
	CreatedAt     time.Time `db:"created_at"`
	UpdatedAt     time.Time `db:"updated_at"`
}

type matchInsertModel struct {
	PublicID      string    `db:"public_id"`
	TeamID        string    `db:"team_public_id"`
	SeasonID      string    `db:"season_public_id"`
	Opponent      string    `db:"opponent"`
	MatchDate     time.Time `db:"match_date"`
	TeamScore     int       `db:"team_score"`
	OpponentScore int       `db:"opponent_score"`
}

func (m matchTableModel) toDomain() match.Match {
	return match.Match{
		ID:            m.PublicID,
		TeamID:        m.TeamID,
		SeasonID:      m.SeasonID,
		Opponent:      m.Opponent,
		MatchDate:     season.CalendarDate(m.MatchDate),
		TeamScore:     m.TeamScore,
		OpponentScore: m.OpponentScore,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// attributeColumns is embedded by every row carrying a rating set.
type attributeColumns struct {
	Shooting      float64 `db:"shooting"`
	Passing       float64 `db:"passing"`
	Dribbling     float64 `db:"dribbling"`
	Defense       float64 `db:"defense"`
	Physical      float64 `db:"physical"`
	CoachGrade    float64 `db:"coach_grade"`
	OverallRating float64 `db:"overall_rating"`
}

func (a attributeColumns) toDomain() growth.Attributes {
	return growth.Attributes(a)
}

type playerTableModel struct {
	ID           int64     `db:"id"`
	PublicID     string    `db:"public_id"`
	TeamID       string    `db:"team_public_id"`
	UserID       string    `db:"user_id"`
	Name         string    `db:"name"`
	Position     string    `db:"position"`
	JerseyNumber int       `db:"jersey_number"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
	attributeColumns
}

func (m playerTableModel) toDomain() roster.Player {
	return roster.Player{
		ID:           m.PublicID,
		TeamID:       m.TeamID,
		UserID:       m.UserID,
		Name:         m.Name,
		Position:     roster.Position(m.Position),
		JerseyNumber: m.JerseyNumber,
		Attributes:   m.attributeColumns.toDomain(),
	}
}

type lineupTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	MatchID   string    `db:"match_public_id"`
	TeamID    string    `db:"team_public_id"`
	Formation string    `db:"formation"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type lineupInsertModel struct {
	PublicID  string `db:"public_id"`
	MatchID   string `db:"match_public_id"`
	TeamID    string `db:"team_public_id"`
	Formation string `db:"formation"`
}

type lineupAssignmentModel struct {
	LineupID string `db:"lineup_public_id"`
	SlotCode string `db:"slot_code"`
	PlayerID string `db:"player_public_id"`
}

func (m lineupTableModel) toDomain(assignments []lineupAssignmentModel) lineup.Lineup {
	out := lineup.Lineup{
		ID:          m.PublicID,
		MatchID:     m.MatchID,
		TeamID:      m.TeamID,
		Formation:   lineup.Formation(m.Formation),
		Assignments: make(map[string]string, len(assignments)),
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
	for _, a := range assignments {
		out.Assignments[a.SlotCode] = a.PlayerID
	}
	return out
}

type statRecordTableModel struct {
	ID                   int64          `db:"id"`
	PublicID             string         `db:"public_id"`
	MatchID              string         `db:"match_public_id"`
	PlayerID             string         `db:"player_public_id"`
	MinutesPlayed        int            `db:"minutes_played"`
	Goals                int            `db:"goals"`
	Assists              int            `db:"assists"`
	Tackles              int            `db:"tackles"`
	Interceptions        int            `db:"interceptions"`
	Saves                int            `db:"saves"`
	ChancesCreated       int            `db:"chances_created"`
	CoachRating          int            `db:"coach_rating"`
	Feedback             string         `db:"feedback"`
	Reflection           string         `db:"reflection"`
	AISuggestions        string         `db:"ai_suggestions"`
	BaselineAttributes   attributesJSON `db:"baseline_attributes"`
	ReflectionUnlockedAt *time.Time     `db:"reflection_unlocked_at"`
	CreatedAt            time.Time      `db:"created_at"`
	UpdatedAt            time.Time      `db:"updated_at"`
}

// statRecordWriteModel is shared by insert and update; column order is the
// upsert column list.
type statRecordWriteModel struct {
	PublicID             string         `db:"public_id"`
	MatchID              string         `db:"match_public_id"`
	PlayerID             string         `db:"player_public_id"`
	MinutesPlayed        int            `db:"minutes_played"`
	Goals                int            `db:"goals"`
	Assists              int            `db:"assists"`
	Tackles              int            `db:"tackles"`
	Interceptions        int            `db:"interceptions"`
	Saves                int            `db:"saves"`
	ChancesCreated       int            `db:"chances_created"`
	CoachRating          int            `db:"coach_rating"`
	Feedback             string         `db:"feedback"`
	Reflection           string         `db:"reflection"`
	AISuggestions        string         `db:"ai_suggestions"`
	BaselineAttributes   attributesJSON `db:"baseline_attributes"`
	ReflectionUnlockedAt *time.Time     `db:"reflection_unlocked_at"`
}

func (m statRecordTableModel) toDomain() matchstats.Record {
	return matchstats.Record{
		ID:       m.PublicID,
		MatchID:  m.MatchID,
		PlayerID: m.PlayerID,
		Stats: matchstats.RawStats{
			MinutesPlayed:  m.MinutesPlayed,
			Goals:          m.Goals,
			Assists:        m.Assists,
			Tackles:        m.Tackles,
			Interceptions:  m.Interceptions,
			Saves:          m.Saves,
			ChancesCreated: m.ChancesCreated,
			CoachRating:    m.CoachRating,
			Feedback:       m.Feedback,
		},
		Reflection:           m.Reflection,
		AISuggestions:        m.AISuggestions,
		Baseline:             growth.Attributes(m.BaselineAttributes),
		ReflectionUnlockedAt: m.ReflectionUnlockedAt,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
}

func statRecordWrite(r matchstats.Record) statRecordWriteModel {
	return statRecordWriteModel{
		PublicID:             r.ID,
		MatchID:              r.MatchID,
		PlayerID:             r.PlayerID,
		MinutesPlayed:        r.Stats.MinutesPlayed,
		Goals:                r.Stats.Goals,
		Assists:              r.Stats.Assists,
		Tackles:              r.Stats.Tackles,
		Interceptions:        r.Stats.Interceptions,
		Saves:                r.Stats.Saves,
		ChancesCreated:       r.Stats.ChancesCreated,
		CoachRating:          r.Stats.CoachRating,
		Feedback:             r.Stats.Feedback,
		Reflection:           r.Reflection,
		AISuggestions:        r.AISuggestions,
		BaselineAttributes:   attributesJSON(r.Baseline),
		ReflectionUnlockedAt: r.ReflectionUnlockedAt,
	}
}

type snapshotTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	PlayerID  string    `db:"player_public_id"`
	MatchID   string    `db:"match_public_id"`
	MatchDate time.Time `db:"match_date"`
	Opponent  string    `db:"opponent"`
	CreatedAt time.Time `db:"created_at"`
	attributeColumns
}

type snapshotInsertModel struct {
	PublicID      string    `db:"public_id"`
	PlayerID      string    `db:"player_public_id"`
	MatchID       string    `db:"match_public_id"`
	Shooting      float64   `db:"shooting"`
	Passing       float64   `db:"passing"`
	Dribbling     float64   `db:"dribbling"`
	Defense       float64   `db:"defense"`
	Physical      float64   `db:"physical"`
	CoachGrade    float64   `db:"coach_grade"`
	OverallRating float64   `db:"overall_rating"`
	MatchDate     time.Time `db:"match_date"`
	Opponent      string    `db:"opponent"`
}

func (m snapshotTableModel) toDomain() growth.Snapshot {
	return growth.Snapshot{
		ID:         m.PublicID,
		PlayerID:   m.PlayerID,
		MatchID:    m.MatchID,
		Attributes: m.attributeColumns.toDomain(),
		MatchDate:  season.CalendarDate(m.MatchDate),
		Opponent:   m.Opponent,
		CreatedAt:  m.CreatedAt,
	}
}

// attributesJSON stores a rating set in a JSONB column.
type attributesJSON growth.Attributes

type attributesDoc struct {
	Shooting      float64 `json:"shooting"`
	Passing       float64 `json:"passing"`
	Dribbling     float64 `json:"dribbling"`
	Defense       float64 `json:"defense"`
	Physical      float64 `json:"physical"`
	CoachGrade    float64 `json:"coach_grade"`
	OverallRating float64 `json:"overall_rating"`
}

func (a attributesJSON) Value() (driver.Value, error) {
	raw, err := sonic.Marshal(attributesDoc(a))
	if err != nil {
		return nil, fmt.Errorf("encode attributes: %w", err)
	}
	return raw, nil
}

func (a *attributesJSON) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*a = attributesJSON{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("scan attributes: unsupported type %T", src)
	}

	var doc attributesDoc
	if err := sonic.Unmarshal(raw, &doc); err != nil {
		return fmt.Errorf("decode attributes: %w", err)
	}
	*a = attributesJSON(doc)
	return nil
}
