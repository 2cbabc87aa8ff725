package refresh

import (
	"context"

	"github.com/riskibarqy/team-growth/internal/domain/refresh"
	"github.com/riskibarqy/team-growth/internal/platform/logging"
)

// LogPublisher is used when no broker is configured; clients fall back to
// polling and the log keeps a trail of what would have been pushed.
type LogPublisher struct {
	logger *logging.Logger
}

func NewLogPublisher(logger *logging.Logger) *LogPublisher {
	if logger == nil {
		logger = logging.Default()
	}
	return &LogPublisher{logger: logger}
}

func (p *LogPublisher) Publish(ctx context.Context, event refresh.Event) error {
	p.logger.InfoContext(ctx, "refresh event",
		"channel", refresh.Channel(event.TeamID),
		"kind", event.Kind,
		"entity_id", event.EntityID,
	)
	return nil
}
