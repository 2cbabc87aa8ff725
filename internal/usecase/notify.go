package usecase

import (
	"context"
	"time"

	"github.com/riskibarqy/team-growth/internal/domain/refresh"
	"github.com/riskibarqy/team-growth/internal/platform/logging"
)

// eventNotifier publishes refresh events after commits. Failures are logged
// and swallowed; the mutation already happened.
type eventNotifier struct {
	publisher refresh.Publisher
	logger    *logging.Logger
	now       func() time.Time
}

func newEventNotifier(publisher refresh.Publisher, logger *logging.Logger) eventNotifier {
	if logger == nil {
		logger = logging.Default()
	}
	return eventNotifier{publisher: publisher, logger: logger, now: time.Now}
}

func (n eventNotifier) notify(ctx context.Context, teamID string, kind refresh.Kind, entityID string) {
	if n.publisher == nil {
		return
	}
	err := n.publisher.Publish(ctx, refresh.Event{
		TeamID:     teamID,
		Kind:       kind,
		EntityID:   entityID,
		OccurredAt: n.now().UTC(),
	})
	if err != nil {
		n.logger.WarnContext(ctx, "publish refresh event failed",
			"team_id", teamID,
			"kind", kind,
			"entity_id", entityID,
			"error", err,
		)
	}
}
