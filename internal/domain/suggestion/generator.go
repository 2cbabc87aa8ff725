package suggestion

import (
	"context"

	"github.com/riskibarqy/team-growth/internal/domain/matchstats"
	"github.com/riskibarqy/team-growth/internal/domain/roster"
)

// Request is the input of the external suggestion generator.
type Request struct {
	Feedback string
	Position roster.Position
	Stats    matchstats.RawStats
}

// Generator produces improvement suggestions. The text is stored and gated,
// never interpreted.
type Generator interface {
	Generate(ctx context.Context, req Request) (string, error)
}
