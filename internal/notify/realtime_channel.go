package notify

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/notification"
)

// RoomPublisher is the slice of the realtime bus this channel needs.
type RoomPublisher interface {
	Publish(room string, event string, payload any)
}

// RealtimeChannel pushes notifications into the recipient's websocket
// room. Delivery is fire-and-forget: a user with no open connection
// simply misses the push, and the next page load re-reads state.
type RealtimeChannel struct {
	bus RoomPublisher
}

// NewRealtimeChannel creates the websocket push channel.
func NewRealtimeChannel(bus RoomPublisher) *RealtimeChannel {
	return &RealtimeChannel{bus: bus}
}

// Name identifies the channel.
func (c *RealtimeChannel) Name() notification.Channel {
	return notification.ChannelRealtime
}

// Send publishes the payload to the recipient's notifications room. It
// never returns a transient error; there is nothing to retry.
func (c *RealtimeChannel) Send(_ context.Context, target Target, payload Payload) (SendResult, error) {
	c.bus.Publish(
		fmt.Sprintf("notifications-%s", target.UserID),
		"new-notification",
		map[string]any{
			"title": payload.Title,
			"body":  payload.Body,
			"data":  payload.Data,
		},
	)
	return SendResult{}, nil
}
