package lineup

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type Formation string

const (
	Formation433  Formation = "4-3-3"
	Formation442  Formation = "4-4-2"
	Formation352  Formation = "3-5-2"
	Formation343  Formation = "3-4-3"
	Formation4231 Formation = "4-2-3-1"
)

const (
	DefaultBench    = 7
	benchSlotPrefix = "B"
)

var ErrUnknownFormation = errors.New("unknown formation")

var starters = map[Formation][]string{
	Formation433:  {"GK", "LB", "CB1", "CB2", "RB", "CM1", "CM2", "CM3", "LW", "ST", "RW"},
	Formation442:  {"GK", "LB", "CB1", "CB2", "RB", "LM", "CM1", "CM2", "RM", "ST1", "ST2"},
	Formation352:  {"GK", "CB1", "CB2", "CB3", "LWB", "CM1", "CM2", "CM3", "RWB", "ST1", "ST2"},
	Formation343:  {"GK", "CB1", "CB2", "CB3", "LM", "CM1", "CM2", "RM", "LW", "ST", "RW"},
	Formation4231: {"GK", "LB", "CB1", "CB2", "RB", "CDM1", "CDM2", "LAM", "CAM", "RAM", "ST"},
}

// Formations lists the supported formations in a stable order.
func Formations() []Formation {
	return []Formation{Formation433, Formation442, Formation352, Formation343, Formation4231}
}

func ParseFormation(v string) (Formation, error) {
	f := Formation(strings.TrimSpace(v))
	if _, ok := starters[f]; !ok {
		return "", fmt.Errorf("%w %q", ErrUnknownFormation, v)
	}
	return f, nil
}

// StartingSlots returns a copy of the formation's starting eleven codes.
func StartingSlots(f Formation) []string {
	return append([]string(nil), starters[f]...)
}

// BenchSlots returns B1..Bn.
func BenchSlots(n int) []string {
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, benchSlotPrefix+strconv.Itoa(i))
	}
	return out
}

// Slots is the full vocabulary: starters followed by the bench.
func Slots(f Formation, benchSize int) []string {
	return append(StartingSlots(f), BenchSlots(benchSize)...)
}

func IsBench(slot string) bool {
	n, err := strconv.Atoi(strings.TrimPrefix(slot, benchSlotPrefix))
	return strings.HasPrefix(slot, benchSlotPrefix) && err == nil && n > 0
}
