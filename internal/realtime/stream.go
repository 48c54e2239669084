package realtime

import (
	"fulfillment/internal/core/domain/model/kernel"
)

// PublishOrderEvent publishes into the order's room. It adapts the hub to
// the order stream port used by the application layer.
func (h *Hub) PublishOrderEvent(orderID kernel.UUID, event string, payload any) {
	h.Publish(OrderRoom(orderID.String()), event, payload)
}
