package lineup

import (
	"fmt"
	"slices"
	"strings"
)

// SlotConflictError reports a slot outside the active vocabulary.
type SlotConflictError struct {
	Slot       string
	Formation  Formation
	ValidSlots []string
}

func (e *SlotConflictError) Error() string {
	return fmt.Sprintf("slot %q is not valid for formation %s; valid slots: %s",
		e.Slot, e.Formation, strings.Join(e.ValidSlots, ", "))
}

// DuplicatePlayerError reports a player already sitting in another slot.
type DuplicatePlayerError struct {
	PlayerID      string
	ExistingSlot  string
	RequestedSlot string
}

func (e *DuplicatePlayerError) Error() string {
	return fmt.Sprintf("player %s already occupies slot %s; unassign it before assigning %s",
		e.PlayerID, e.ExistingSlot, e.RequestedSlot)
}

// Rules applies assignment invariants for a fixed bench size.
type Rules struct {
	BenchSize int
}

func NewRules(benchSize int) Rules {
	if benchSize < 0 {
		benchSize = DefaultBench
	}
	return Rules{BenchSize: benchSize}
}

func (r Rules) ValidSlot(f Formation, slot string) error {
	valid := Slots(f, r.BenchSize)
	if !slices.Contains(valid, slot) {
		return &SlotConflictError{Slot: slot, Formation: f, ValidSlots: valid}
	}
	return nil
}

// Assign puts playerID into slot, replacing any previous occupant. It fails
// without touching l when the slot is unknown or the player sits elsewhere.
// Re-assigning a player to the slot they already hold is a no-op.
func (r Rules) Assign(l *Lineup, slot, playerID string) (changed bool, err error) {
	if err := r.ValidSlot(l.Formation, slot); err != nil {
		return false, err
	}
	if existing, ok := l.SlotOf(playerID); ok {
		if existing == slot {
			return false, nil
		}
		return false, &DuplicatePlayerError{PlayerID: playerID, ExistingSlot: existing, RequestedSlot: slot}
	}
	if l.Assignments == nil {
		l.Assignments = make(map[string]string)
	}
	l.Assignments[slot] = playerID
	return true, nil
}

// Unassign clears slot. Empty slots are a no-op.
func (r Rules) Unassign(l *Lineup, slot string) (changed bool, err error) {
	if err := r.ValidSlot(l.Formation, slot); err != nil {
		return false, err
	}
	if _, ok := l.Assignments[slot]; !ok {
		return false, nil
	}
	delete(l.Assignments, slot)
	return true, nil
}

// Check verifies the stored mapping: known slots only, each player once.
func (r Rules) Check(l Lineup) error {
	seen := make(map[string]string, len(l.Assignments))
	for _, a := range l.Sorted(r.BenchSize) {
		if err := r.ValidSlot(l.Formation, a.SlotCode); err != nil {
			return err
		}
		if prev, ok := seen[a.PlayerID]; ok {
			return &DuplicatePlayerError{PlayerID: a.PlayerID, ExistingSlot: prev, RequestedSlot: a.SlotCode}
		}
		seen[a.PlayerID] = a.SlotCode
	}
	return nil
}
