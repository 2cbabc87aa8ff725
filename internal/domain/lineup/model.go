package lineup

import (
	"sort"
	"time"
)

// Lineup is one match's formation plus its slot to player assignments.
type Lineup struct {
	ID          string
	MatchID     string
	TeamID      string
	Formation   Formation
	Assignments map[string]string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Assignment is one occupied slot.
type Assignment struct {
	SlotCode string
	PlayerID string
}

// SlotOf returns the slot a player occupies, if any.
func (l Lineup) SlotOf(playerID string) (string, bool) {
	for slot, occupant := range l.Assignments {
		if occupant == playerID {
			return slot, true
		}
	}
	return "", false
}

// Sorted lists assignments in vocabulary order, bench last.
func (l Lineup) Sorted(benchSize int) []Assignment {
	order := make(map[string]int)
	for i, slot := range Slots(l.Formation, benchSize) {
		order[slot] = i
	}

	out := make([]Assignment, 0, len(l.Assignments))
	for slot, playerID := range l.Assignments {
		out = append(out, Assignment{SlotCode: slot, PlayerID: playerID})
	}
	sort.Slice(out, func(i, j int) bool {
		oi, iok := order[out[i].SlotCode]
		oj, jok := order[out[j].SlotCode]
		if iok != jok {
			return iok
		}
		if oi != oj {
			return oi < oj
		}
		return out[i].SlotCode < out[j].SlotCode
	})
	return out
}

func (l Lineup) Clone() Lineup {
	copied := l
	copied.Assignments = make(map[string]string, len(l.Assignments))
	for slot, playerID := range l.Assignments {
		copied.Assignments[slot] = playerID
	}
	return copied
}
