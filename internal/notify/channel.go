// Package notify implements the notification dispatch engine: composing
// channel payloads from transition events and fanning them out to the
// realtime, SMS and email channels with bounded retry. Delivery is
// best-effort; the state change that produced the event is already
// committed and is never affected by anything in this package.
package notify

import (
	"context"

	"fulfillment/internal/core/domain/model/notification"
)

// Target is the channel-facing slice of a recipient: the user identity
// plus the contact detail each channel addresses.
type Target struct {
	UserID  string
	OrderID string
	Phone   string
	Email   string
}

// Payload is one composed message for one channel.
type Payload struct {
	Title string
	Body  string
	Data  map[string]any
}

// SendResult reports a successful hand-off to a channel's provider.
type SendResult struct {
	ProviderMessageID string
}

// Channel is one independent delivery mechanism. Send must respect ctx
// cancellation; errors it wants retried must be marked transient via
// MarkTransient.
type Channel interface {
	Name() notification.Channel
	Send(ctx context.Context, target Target, payload Payload) (SendResult, error)
}
