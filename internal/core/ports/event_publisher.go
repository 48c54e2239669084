package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/notification"
)

// EventPublisher hands a fulfillment event to the notification pipeline.
// Publishing happens after the state change is committed and never feeds
// errors back into the command that produced the event.
type EventPublisher interface {
	Publish(ctx context.Context, event notification.Event)
}
