package season

import (
	"errors"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

var ErrInvalidBounds = errors.New("season start_date must be before end_date")

// Season is a bounded date range scoping a team's matches.
type Season struct {
	ID        string
	TeamID    string
	Name      string
	StartDate time.Time
	EndDate   time.Time
	IsActive  bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DateOutOfBoundsError carries the valid range so callers can correct input.
type DateOutOfBoundsError struct {
	MatchDate time.Time
	Start     time.Time
	End       time.Time
}

func (e *DateOutOfBoundsError) Error() string {
	return fmt.Sprintf(
		"match date %s is outside season range %s to %s",
		e.MatchDate.Format(dateLayout),
		e.Start.Format(dateLayout),
		e.End.Format(dateLayout),
	)
}

// CalendarDate drops the time of day, keeping the date as written in t's location.
func CalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ValidateBounds requires start to fall on an earlier calendar day than end.
func ValidateBounds(start, end time.Time) error {
	if start.IsZero() || end.IsZero() {
		return fmt.Errorf("%w: both dates are required", ErrInvalidBounds)
	}
	if !CalendarDate(start).Before(CalendarDate(end)) {
		return fmt.Errorf("%w: got %s to %s", ErrInvalidBounds, start.Format(dateLayout), end.Format(dateLayout))
	}
	return nil
}

// ValidateMatchDate accepts dates inside [StartDate, EndDate], both ends included.
func ValidateMatchDate(matchDate time.Time, s Season) error {
	day := CalendarDate(matchDate)
	start := CalendarDate(s.StartDate)
	end := CalendarDate(s.EndDate)
	if day.Before(start) || day.After(end) {
		return &DateOutOfBoundsError{MatchDate: day, Start: start, End: end}
	}
	return nil
}

// Contains is the boolean form of ValidateMatchDate.
func (s Season) Contains(matchDate time.Time) bool {
	return ValidateMatchDate(matchDate, s) == nil
}

func (s Season) Validate() error {
	return ValidateBounds(s.StartDate, s.EndDate)
}
