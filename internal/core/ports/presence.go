package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// PresenceStore tracks which drivers have a live connection. Entries
// expire on their own; a driver that stops heartbeating drops out of the
// online set without any cleanup pass.
type PresenceStore interface {
	// Heartbeat refreshes the driver's presence entry with the given TTL.
	Heartbeat(ctx context.Context, driverID kernel.UUID, ttl time.Duration) error

	// Remove deletes the driver's presence entry immediately.
	Remove(ctx context.Context, driverID kernel.UUID) error

	// IsOnline reports whether the driver has a live presence entry.
	IsOnline(ctx context.Context, driverID kernel.UUID) (bool, error)
}
