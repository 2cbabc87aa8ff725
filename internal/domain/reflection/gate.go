package reflection

import (
	"strings"
	"time"
	"unicode/utf8"
)

// State of the per (player, match) reflection gate.
type State string

const (
	StateLocked    State = "LOCKED"
	StateUnlocking State = "UNLOCKING"
	StateUnlocked  State = "UNLOCKED"
)

const DefaultThreshold = 50

// Policy decides how a stored gate is read back.
type Policy string

const (
	// PolicySticky keeps the gate open once the threshold was crossed.
	PolicySticky Policy = "sticky"
	// PolicyRecompute derives the state from the current text on every read.
	PolicyRecompute Policy = "recompute"
)

func ParsePolicy(v string) (Policy, bool) {
	switch Policy(strings.ToLower(strings.TrimSpace(v))) {
	case PolicySticky:
		return PolicySticky, true
	case PolicyRecompute:
		return PolicyRecompute, true
	default:
		return "", false
	}
}

// Gate evaluates reflection text against a minimum length.
type Gate struct {
	threshold int
	policy    Policy
}

func NewGate(threshold int, policy Policy) Gate {
	if threshold < 1 {
		threshold = DefaultThreshold
	}
	if policy == "" {
		policy = PolicySticky
	}
	return Gate{threshold: threshold, policy: policy}
}

func (g Gate) Threshold() int { return g.threshold }
func (g Gate) Policy() Policy { return g.policy }

// Length counts characters of the trimmed text.
func Length(text string) int {
	return utf8.RuneCountInString(strings.TrimSpace(text))
}

// Evaluate maps text alone to LOCKED or UNLOCKED.
func (g Gate) Evaluate(text string) State {
	if Length(text) >= g.threshold {
		return StateUnlocked
	}
	return StateLocked
}

// Read derives the visible state of a stored reflection.
func (g Gate) Read(text string, unlockedAt *time.Time) State {
	if g.policy == PolicySticky && unlockedAt != nil {
		return StateUnlocked
	}
	return g.Evaluate(text)
}

// Transition is the outcome of saving a reflection.
type Transition struct {
	State      State
	Unlocked   bool
	UnlockedAt *time.Time
}

// Save computes the gate after text replaces the stored reflection.
// Unlocked is true only for the save that opens the gate; that save reports
// UNLOCKING and later reads report UNLOCKED.
func (g Gate) Save(text string, unlockedAt *time.Time, now time.Time) Transition {
	if g.Evaluate(text) == StateUnlocked {
		if unlockedAt == nil {
			at := now
			return Transition{State: StateUnlocking, Unlocked: true, UnlockedAt: &at}
		}
		return Transition{State: StateUnlocked, UnlockedAt: unlockedAt}
	}
	if g.policy == PolicySticky && unlockedAt != nil {
		return Transition{State: StateUnlocked, UnlockedAt: unlockedAt}
	}
	// Recompute forgets the unlock once the text drops below threshold.
	return Transition{State: StateLocked}
}
