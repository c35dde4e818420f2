package usecase

import (
	"context"

	"catalog-service/internal/messaging"

	"github.com/charmbracelet/log"
)

// notify publishes a change event. Delivery failures never fail the request
// that caused the change.
func notify(ctx context.Context, events messaging.Publisher, logger *log.Logger, subject string, data any) {
	if events == nil {
		return
	}
	event := messaging.NewEvent(subject, data)
	if err := events.Publish(ctx, event); err != nil {
		logger.Warn("failed to publish event", "subject", subject, "id", event.ID, "err", err)
	}
}
