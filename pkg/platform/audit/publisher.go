package audit

import (
	"context"
	"log/slog"
	"time"

	"github.com/Eklavvyaaaaa/Carbonx/pkg/requestcontext"
)

// Publisher emits audit events for security- and compliance-relevant
// transitions. Implementations must be safe for concurrent use.
type Publisher interface {
	Emit(ctx context.Context, event Event) error
}

// LogPublisher writes audit events to structured logs. It is the default
// sink when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

// NewLogPublisher creates a publisher backed by the given logger.
func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Emit logs the event at info level with stable attribute names.
func (p *LogPublisher) Emit(ctx context.Context, event Event) error {
	p.logger.InfoContext(ctx, "audit",
		"category", string(event.Category),
		"action", string(event.Action),
		"actor", event.Actor.String(),
		"subject", event.Subject.String(),
		"asset", uint64(event.Asset),
		"amount", event.Amount,
		"reason", event.Reason,
		"request_id", event.RequestID,
	)
	return nil
}

// Log fills in the timestamp and emits, logging (not propagating) publish
// failures so audit problems never fail a committed action.
func Log(ctx context.Context, logger *slog.Logger, publisher Publisher, event Event) {
	if publisher == nil {
		return
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if err := publisher.Emit(ctx, event); err != nil {
		logger.WarnContext(ctx, "audit emit failed",
			"action", string(event.Action),
			"error", err,
		)
	}
}
