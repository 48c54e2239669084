package ports

import (
	"fulfillment/internal/core/domain/model/kernel"
)

// OrderStreamPublisher pushes live updates to clients subscribed to an
// order's websocket room. Delivery is best effort and at most once; a
// client that is not connected simply misses the update and reconciles
// from the stored tracking record on its next read.
type OrderStreamPublisher interface {
	PublishOrderEvent(orderID kernel.UUID, event string, payload any)
}
