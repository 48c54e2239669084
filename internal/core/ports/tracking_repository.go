package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tracking"
)

// TrackingRepository defines the persistence contract for tracking
// records. Tracking is keyed by order ID; one record per order.
type TrackingRepository interface {
	// Add persists a new tracking record.
	Add(ctx context.Context, aggregate *tracking.Tracking) error

	// Update persists changes to an existing tracking record.
	Update(ctx context.Context, aggregate *tracking.Tracking) error

	// Get retrieves the tracking record for an order.
	Get(ctx context.Context, orderID kernel.UUID) (*tracking.Tracking, error)

	// BindDriver writes the driver columns with a conditional update
	// guarded on Ready status and an empty driver slot. Returns
	// errs.ErrPreconditionFailed when another driver won the race.
	BindDriver(ctx context.Context, aggregate *tracking.Tracking) error

	// GetActiveByDriver retrieves the driver's non-terminal tracking
	// records, oldest first.
	GetActiveByDriver(ctx context.Context, driverID kernel.UUID) ([]*tracking.Tracking, error)
}
