package match

import (
	"errors"
	"time"
)

var ErrNegativeScore = errors.New("scores must be non-negative")

// Match is one fixture of a team inside a season.
type Match struct {
	ID            string
	TeamID        string
	SeasonID      string
	Opponent      string
	MatchDate     time.Time
	TeamScore     int
	OpponentScore int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Result is win/draw/loss from the team's point of view.
type Result string

const (
	ResultWin  Result = "W"
	ResultDraw Result = "D"
	ResultLoss Result = "L"
)

func (m Match) Result() Result {
	switch {
	case m.TeamScore > m.OpponentScore:
		return ResultWin
	case m.TeamScore < m.OpponentScore:
		return ResultLoss
	default:
		return ResultDraw
	}
}

func (m Match) ValidateScores() error {
	if m.TeamScore < 0 || m.OpponentScore < 0 {
		return ErrNegativeScore
	}
	return nil
}
