package growth

import "testing"

func TestApply_IsPure(t *testing.T) {
	prev := Attributes{Shooting: 61.2, Passing: 55, Dribbling: 58.4, Defense: 40, Physical: 70, CoachGrade: 66}
	prev.OverallRating = Overall(prev)
	perf := Performance{MinutesPlayed: 78, Goals: 1, Assists: 2, Tackles: 3, ChancesCreated: 4, CoachRating: 74}

	first := Apply(prev, perf)
	second := Apply(prev, perf)
	if first != second {
		t.Fatalf("expected identical results, got %+v and %+v", first, second)
	}
}

func TestApply_StrongerMatchRatesHigher(t *testing.T) {
	base := Performance{MinutesPlayed: 90, Tackles: 2, Interceptions: 1, ChancesCreated: 1}

	strong := base
	strong.Goals = 2
	strong.Assists = 1
	strong.CoachRating = 85

	weak := base
	weak.CoachRating = 50

	strongAttrs := Apply(Baseline(), strong)
	weakAttrs := Apply(Baseline(), weak)
	if strongAttrs.OverallRating <= weakAttrs.OverallRating {
		t.Fatalf("expected strong match overall %.1f > weak match overall %.1f", strongAttrs.OverallRating, weakAttrs.OverallRating)
	}
}

func TestApply_NoMinutesKeepsSubAttributes(t *testing.T) {
	prev := Baseline()
	next := Apply(prev, Performance{MinutesPlayed: 0, Goals: 3, CoachRating: 90})

	if next.Shooting != prev.Shooting || next.Physical != prev.Physical {
		t.Fatalf("expected unchanged sub-attributes, got %+v", next)
	}
	if next.CoachGrade != 90 {
		t.Fatalf("expected coach grade from match, got %.1f", next.CoachGrade)
	}
}

func TestApply_ZeroPrevStartsFromBaseline(t *testing.T) {
	perf := Performance{MinutesPlayed: 90, CoachRating: 60}
	if Apply(Attributes{}, perf) != Apply(Baseline(), perf) {
		t.Fatalf("expected zero attributes to behave like baseline")
	}
}

func TestApply_StaysOnScale(t *testing.T) {
	prev := Attributes{Shooting: 99, Passing: 99, Dribbling: 99, Defense: 99, Physical: 99, CoachGrade: 99}
	next := Apply(prev, Performance{MinutesPlayed: 120, Goals: 10, Assists: 10, Tackles: 20, Interceptions: 20, Saves: 20, ChancesCreated: 20, CoachRating: 100})

	for name, v := range map[string]float64{
		"shooting":  next.Shooting,
		"passing":   next.Passing,
		"dribbling": next.Dribbling,
		"defense":   next.Defense,
		"physical":  next.Physical,
		"overall":   next.OverallRating,
	} {
		if v < 0 || v > 100 {
			t.Fatalf("%s out of range: %.1f", name, v)
		}
	}
}

func TestOverall_Weights(t *testing.T) {
	a := Attributes{Shooting: 80, Passing: 70, Dribbling: 60, Defense: 50, Physical: 40, CoachGrade: 90}
	// 16 + 14 + 9 + 7.5 + 4 + 18
	if got := Overall(a); got != 68.5 {
		t.Fatalf("unexpected overall: %.2f", got)
	}
}

func TestAttributes_Sub(t *testing.T) {
	a := Attributes{Shooting: 60.3, OverallRating: 55}
	b := Attributes{Shooting: 58.1, OverallRating: 50}
	d := a.Sub(b)
	if d.Shooting != 2.2 || d.OverallRating != 5 {
		t.Fatalf("unexpected delta: %+v", d)
	}
}
