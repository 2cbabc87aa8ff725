package matchstats

import (
	"context"
	"errors"
	"testing"
)

func TestValidate_AcceptsBoundaries(t *testing.T) {
	raw := RawStats{MinutesPlayed: 120, CoachRating: 100}
	if err := Validate(context.Background(), raw); err != nil {
		t.Fatalf("expected boundary values to pass, got %v", err)
	}
	if err := Validate(context.Background(), RawStats{}); err != nil {
		t.Fatalf("expected zero stat line to pass, got %v", err)
	}
}

func TestValidate_ListsEveryFailingField(t *testing.T) {
	raw := RawStats{MinutesPlayed: 121, Goals: -1, Saves: -2, CoachRating: 101}

	err := Validate(context.Background(), raw)
	var vErr *ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}

	got := map[string]string{}
	for _, f := range vErr.Fields {
		got[f.Field] = f.Rule
	}
	want := map[string]string{
		"minutes_played": "lte",
		"goals":          "gte",
		"saves":          "gte",
		"coach_rating":   "lte",
	}
	if len(got) != len(want) {
		t.Fatalf("unexpected fields: %+v", vErr.Fields)
	}
	for field, rule := range want {
		if got[field] != rule {
			t.Fatalf("field %s: expected rule %s, got %q", field, rule, got[field])
		}
	}
}

func TestRawStats_Performance(t *testing.T) {
	raw := RawStats{MinutesPlayed: 90, Goals: 2, Assists: 1, CoachRating: 85, Feedback: "sharp"}
	p := raw.Performance()
	if p.Goals != 2 || p.Assists != 1 || p.CoachRating != 85 || p.MinutesPlayed != 90 {
		t.Fatalf("unexpected performance: %+v", p)
	}
}
