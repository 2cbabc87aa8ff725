package reflection

import (
	"strings"
	"testing"
	"time"
)

func TestGate_Evaluate(t *testing.T) {
	g := NewGate(0, "")
	if g.Threshold() != DefaultThreshold || g.Policy() != PolicySticky {
		t.Fatalf("unexpected defaults: %d %s", g.Threshold(), g.Policy())
	}

	if got := g.Evaluate(strings.Repeat("a", 49)); got != StateLocked {
		t.Fatalf("expected LOCKED for 49 chars, got %s", got)
	}
	if got := g.Evaluate(strings.Repeat("a", 50)); got != StateUnlocked {
		t.Fatalf("expected UNLOCKED for 50 chars, got %s", got)
	}
	if got := g.Evaluate("   " + strings.Repeat("a", 49) + "   "); got != StateLocked {
		t.Fatalf("expected surrounding whitespace to be ignored, got %s", got)
	}
	if got := g.Evaluate(strings.Repeat("é", 50)); got != StateUnlocked {
		t.Fatalf("expected characters not bytes to be counted, got %s", got)
	}
}

func TestGate_SaveTransitions(t *testing.T) {
	g := NewGate(50, PolicySticky)
	now := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)

	short := g.Save(strings.Repeat("x", 40), nil, now)
	if short.State != StateLocked || short.Unlocked || short.UnlockedAt != nil {
		t.Fatalf("expected locked save, got %+v", short)
	}

	crossing := g.Save(strings.Repeat("x", 52), nil, now)
	if crossing.State != StateUnlocking || !crossing.Unlocked || crossing.UnlockedAt == nil {
		t.Fatalf("expected unlocking save, got %+v", crossing)
	}
	if got := g.Read(strings.Repeat("x", 52), crossing.UnlockedAt); got != StateUnlocked {
		t.Fatalf("expected UNLOCKED after crossing, got %s", got)
	}

	again := g.Save(strings.Repeat("x", 60), crossing.UnlockedAt, now.Add(time.Hour))
	if again.State != StateUnlocked || again.Unlocked {
		t.Fatalf("expected already-unlocked save, got %+v", again)
	}
	if !again.UnlockedAt.Equal(now) {
		t.Fatalf("expected original unlock time to be kept, got %v", again.UnlockedAt)
	}
}

func TestGate_StickyNeverRelocks(t *testing.T) {
	g := NewGate(50, PolicySticky)
	now := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)

	opened := g.Save(strings.Repeat("x", 55), nil, now)
	shortened := g.Save("short", opened.UnlockedAt, now.Add(time.Minute))
	if shortened.State != StateUnlocked || shortened.UnlockedAt == nil {
		t.Fatalf("expected gate to stay open, got %+v", shortened)
	}
	if got := g.Read("short", shortened.UnlockedAt); got != StateUnlocked {
		t.Fatalf("expected sticky read to stay UNLOCKED, got %s", got)
	}
}

func TestGate_RecomputeRelocks(t *testing.T) {
	g := NewGate(50, PolicyRecompute)
	now := time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC)

	opened := g.Save(strings.Repeat("x", 55), nil, now)
	if got := g.Read("short", opened.UnlockedAt); got != StateLocked {
		t.Fatalf("expected recompute read to re-lock, got %s", got)
	}
	shortened := g.Save("short", opened.UnlockedAt, now)
	if shortened.State != StateLocked || shortened.UnlockedAt != nil {
		t.Fatalf("expected recompute save to clear unlock, got %+v", shortened)
	}
}

func TestParsePolicy(t *testing.T) {
	if p, ok := ParsePolicy(" Recompute "); !ok || p != PolicyRecompute {
		t.Fatalf("unexpected parse result: %s %v", p, ok)
	}
	if _, ok := ParsePolicy("forever"); ok {
		t.Fatalf("expected unknown policy to be rejected")
	}
}
