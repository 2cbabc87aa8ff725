package httpapi

import (
	"time"

	"github.com/riskibarqy/team-growth/internal/domain/growth"
	"github.com/riskibarqy/team-growth/internal/domain/lineup"
	"github.com/riskibarqy/team-growth/internal/domain/match"
	"github.com/riskibarqy/team-growth/internal/domain/matchstats"
	"github.com/riskibarqy/team-growth/internal/domain/roster"
	"github.com/riskibarqy/team-growth/internal/domain/season"
	"github.com/riskibarqy/team-growth/internal/domain/timeline"
	"github.com/riskibarqy/team-growth/internal/usecase"
)

type createSeasonRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
	IsActive  bool   `json:"is_active"`
}

type updateSeasonRequest struct {
	Name      string `json:"name" validate:"required,max=100"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

type validateDateRequest struct {
	MatchDate string `json:"match_date" validate:"required"`
}

type createMatchRequest struct {
	SeasonID      string `json:"season_id" validate:"required"`
	Opponent      string `json:"opponent" validate:"required,max=100"`
	MatchDate     string `json:"match_date" validate:"required"`
	TeamScore     int    `json:"team_score"`
	OpponentScore int    `json:"opponent_score"`
}

type updateMatchRequest struct {
	Opponent      *string `json:"opponent" validate:"omitempty,min=1,max=100"`
	MatchDate     *string `json:"match_date"`
	TeamScore     *int    `json:"team_score"`
	OpponentScore *int    `json:"opponent_score"`
}

type selectFormationRequest struct {
	Formation    string `json:"formation" validate:"required"`
	ConfirmClear bool   `json:"confirm_clear"`
}

type assignSlotRequest struct {
	PlayerID string `json:"player_id" validate:"required"`
}

type batchStatsRequest struct {
	Entries []batchStatsEntryRequest `json:"entries" validate:"required,min=1,dive"`
}

type batchStatsEntryRequest struct {
	PlayerID string              `json:"player_id" validate:"required"`
	Stats    matchstats.RawStats `json:"stats" validate:"-"`
}

type reflectionRequest struct {
	Text string `json:"text"`
}

type seasonDTO struct {
	ID        string    `json:"id"`
	TeamID    string    `json:"team_id"`
	Name      string    `json:"name"`
	StartDate string    `json:"start_date"`
	EndDate   string    `json:"end_date"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type matchDTO struct {
	ID            string    `json:"id"`
	SeasonID      string    `json:"season_id"`
	Opponent      string    `json:"opponent"`
	MatchDate     string    `json:"match_date"`
	TeamScore     int       `json:"team_score"`
	OpponentScore int       `json:"opponent_score"`
	Result        string    `json:"result"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type formationDTO struct {
	Formation string   `json:"formation"`
	Starting  []string `json:"starting"`
	Bench     []string `json:"bench"`
}

type lineupSlotDTO struct {
	SlotCode string `json:"slot_code"`
	PlayerID string `json:"player_id"`
	Bench    bool   `json:"bench"`
}

type lineupDTO struct {
	ID          string          `json:"id"`
	MatchID     string          `json:"match_id"`
	Formation   string          `json:"formation"`
	Assignments []lineupSlotDTO `json:"assignments"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

type attributesDTO struct {
	Shooting      float64 `json:"shooting"`
	Passing       float64 `json:"passing"`
	Dribbling     float64 `json:"dribbling"`
	Defense       float64 `json:"defense"`
	Physical      float64 `json:"physical"`
	CoachGrade    float64 `json:"coach_grade"`
	OverallRating float64 `json:"overall_rating"`
}

type snapshotDTO struct {
	ID         string        `json:"id"`
	PlayerID   string        `json:"player_id"`
	MatchID    string        `json:"match_id"`
	MatchDate  string        `json:"match_date"`
	Opponent   string        `json:"opponent"`
	Attributes attributesDTO `json:"attributes"`
}

type statRecordDTO struct {
	ID                   string              `json:"id"`
	MatchID              string              `json:"match_id"`
	PlayerID             string              `json:"player_id"`
	Stats                matchstats.RawStats `json:"stats"`
	Reflection           string              `json:"reflection"`
	AISuggestions        string              `json:"ai_suggestions"`
	ReflectionUnlockedAt *time.Time          `json:"reflection_unlocked_at,omitempty"`
	UpdatedAt            time.Time           `json:"updated_at"`
}

type statsResultDTO struct {
	Record   statRecordDTO `json:"record"`
	Previous attributesDTO `json:"previous"`
	New      attributesDTO `json:"new"`
	Delta    attributesDTO `json:"delta"`
	Snapshot snapshotDTO   `json:"snapshot"`
}

type batchEntryErrorDTO struct {
	Code    int    `json:"code"`
	Status  string `json:"status"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

type batchEntryDTO struct {
	PlayerID string              `json:"player_id"`
	Result   *statsResultDTO     `json:"result,omitempty"`
	Error    *batchEntryErrorDTO `json:"error,omitempty"`
}

type reflectionResultDTO struct {
	State     string `json:"state"`
	Unlocked  bool   `json:"unlocked"`
	Length    int    `json:"length"`
	Threshold int    `json:"threshold"`
}

type performanceDTO struct {
	MinutesPlayed  int `json:"minutes_played"`
	Goals          int `json:"goals"`
	Assists        int `json:"assists"`
	Tackles        int `json:"tackles"`
	Interceptions  int `json:"interceptions"`
	Saves          int `json:"saves"`
	ChancesCreated int `json:"chances_created"`
	CoachRating    int `json:"coach_rating"`
}

type reviewDTO struct {
	Match         matchDTO        `json:"match"`
	PlayerID      string          `json:"player_id"`
	Reflection    string          `json:"reflection"`
	State         string          `json:"state"`
	Threshold     int             `json:"threshold"`
	Feedback      *string         `json:"feedback"`
	AISuggestions *string         `json:"ai_suggestions"`
	Performance   *performanceDTO `json:"performance"`
}

type playerDTO struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Position     string        `json:"position"`
	JerseyNumber int           `json:"jersey_number"`
	Attributes   attributesDTO `json:"attributes"`
}

type playerGrowthDTO struct {
	Player  playerDTO      `json:"player"`
	Matches int            `json:"matches"`
	Chart   timeline.Chart `json:"chart"`
}

func seasonToDTO(v season.Season) seasonDTO {
	return seasonDTO{
		ID:        v.ID,
		TeamID:    v.TeamID,
		Name:      v.Name,
		StartDate: formatDate(v.StartDate),
		EndDate:   formatDate(v.EndDate),
		IsActive:  v.IsActive,
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

func matchToDTO(v match.Match) matchDTO {
	return matchDTO{
		ID:            v.ID,
		SeasonID:      v.SeasonID,
		Opponent:      v.Opponent,
		MatchDate:     formatDate(v.MatchDate),
		TeamScore:     v.TeamScore,
		OpponentScore: v.OpponentScore,
		Result:        string(v.Result()),
		CreatedAt:     v.CreatedAt,
		UpdatedAt:     v.UpdatedAt,
	}
}

func formationToDTO(v usecase.FormationSlots) formationDTO {
	return formationDTO{
		Formation: string(v.Formation),
		Starting:  v.Starting,
		Bench:     v.Bench,
	}
}

func lineupToDTO(v lineup.Lineup, benchSize int) lineupDTO {
	sorted := v.Sorted(benchSize)
	slots := make([]lineupSlotDTO, 0, len(sorted))
	for _, a := range sorted {
		slots = append(slots, lineupSlotDTO{
			SlotCode: a.SlotCode,
			PlayerID: a.PlayerID,
			Bench:    lineup.IsBench(a.SlotCode),
		})
	}
	return lineupDTO{
		ID:          v.ID,
		MatchID:     v.MatchID,
		Formation:   string(v.Formation),
		Assignments: slots,
		UpdatedAt:   v.UpdatedAt,
	}
}

func attributesToDTO(v growth.Attributes) attributesDTO {
	return attributesDTO{
		Shooting:      v.Shooting,
		Passing:       v.Passing,
		Dribbling:     v.Dribbling,
		Defense:       v.Defense,
		Physical:      v.Physical,
		CoachGrade:    v.CoachGrade,
		OverallRating: v.OverallRating,
	}
}

func snapshotToDTO(v growth.Snapshot) snapshotDTO {
	return snapshotDTO{
		ID:         v.ID,
		PlayerID:   v.PlayerID,
		MatchID:    v.MatchID,
		MatchDate:  formatDate(v.MatchDate),
		Opponent:   v.Opponent,
		Attributes: attributesToDTO(v.Attributes),
	}
}

func statRecordToDTO(v matchstats.Record) statRecordDTO {
	return statRecordDTO{
		ID:                   v.ID,
		MatchID:              v.MatchID,
		PlayerID:             v.PlayerID,
		Stats:                v.Stats,
		Reflection:           v.Reflection,
		AISuggestions:        v.AISuggestions,
		ReflectionUnlockedAt: v.ReflectionUnlockedAt,
		UpdatedAt:            v.UpdatedAt,
	}
}

func statsResultToDTO(v matchstats.Result) statsResultDTO {
	return statsResultDTO{
		Record:   statRecordToDTO(v.Record),
		Previous: attributesToDTO(v.Previous),
		New:      attributesToDTO(v.New),
		Delta:    attributesToDTO(v.Delta),
		Snapshot: snapshotToDTO(v.Snapshot),
	}
}

func reviewToDTO(v usecase.Review) reviewDTO {
	out := reviewDTO{
		Match:         matchToDTO(v.Match),
		PlayerID:      v.PlayerID,
		Reflection:    v.Reflection,
		State:         string(v.State),
		Threshold:     v.Threshold,
		Feedback:      v.Feedback,
		AISuggestions: v.AISuggestions,
	}
	if p := v.Performance; p != nil {
		out.Performance = &performanceDTO{
			MinutesPlayed:  p.MinutesPlayed,
			Goals:          p.Goals,
			Assists:        p.Assists,
			Tackles:        p.Tackles,
			Interceptions:  p.Interceptions,
			Saves:          p.Saves,
			ChancesCreated: p.ChancesCreated,
			CoachRating:    p.CoachRating,
		}
	}
	return out
}

func playerToDTO(v roster.Player) playerDTO {
	return playerDTO{
		ID:           v.ID,
		Name:         v.Name,
		Position:     string(v.Position),
		JerseyNumber: v.JerseyNumber,
		Attributes:   attributesToDTO(v.Attributes),
	}
}
