package season

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestValidateMatchDate_InclusiveBounds(t *testing.T) {
	s := Season{StartDate: date(2025, 2, 1), EndDate: date(2025, 8, 1)}

	cases := []struct {
		name  string
		day   time.Time
		valid bool
	}{
		{name: "day before start", day: date(2025, 1, 31), valid: false},
		{name: "start day", day: date(2025, 2, 1), valid: true},
		{name: "mid season", day: date(2025, 5, 17), valid: true},
		{name: "end day", day: date(2025, 8, 1), valid: true},
		{name: "day after end", day: date(2025, 8, 2), valid: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateMatchDate(tc.day, s)
			if tc.valid && err != nil {
				t.Fatalf("expected valid date, got %v", err)
			}
			if !tc.valid {
				var boundsErr *DateOutOfBoundsError
				if !errors.As(err, &boundsErr) {
					t.Fatalf("expected DateOutOfBoundsError, got %v", err)
				}
				if !boundsErr.Start.Equal(s.StartDate) || !boundsErr.End.Equal(s.EndDate) {
					t.Fatalf("expected season range in error, got %s..%s", boundsErr.Start, boundsErr.End)
				}
			}
		})
	}
}

func TestValidateMatchDate_IgnoresTimeOfDay(t *testing.T) {
	s := Season{StartDate: date(2025, 2, 1), EndDate: date(2025, 8, 1)}

	lateOnEndDay := time.Date(2025, 8, 1, 23, 59, 0, 0, time.UTC)
	if err := ValidateMatchDate(lateOnEndDay, s); err != nil {
		t.Fatalf("expected late kickoff on end day to be valid: %v", err)
	}

	jakarta := time.FixedZone("WIB", 7*3600)
	earlyOnStartDay := time.Date(2025, 2, 1, 0, 30, 0, 0, jakarta)
	if err := ValidateMatchDate(earlyOnStartDay, s); err != nil {
		t.Fatalf("expected local start day to be valid: %v", err)
	}
}

func TestValidateBounds(t *testing.T) {
	if err := ValidateBounds(date(2025, 2, 1), date(2025, 8, 1)); err != nil {
		t.Fatalf("expected valid bounds: %v", err)
	}
	if err := ValidateBounds(date(2025, 8, 1), date(2025, 8, 1)); !errors.Is(err, ErrInvalidBounds) {
		t.Fatalf("expected equal dates to be rejected, got %v", err)
	}
	if err := ValidateBounds(date(2025, 8, 1), date(2025, 2, 1)); !errors.Is(err, ErrInvalidBounds) {
		t.Fatalf("expected reversed dates to be rejected, got %v", err)
	}
	if err := ValidateBounds(time.Time{}, date(2025, 2, 1)); !errors.Is(err, ErrInvalidBounds) {
		t.Fatalf("expected zero start to be rejected, got %v", err)
	}
}
