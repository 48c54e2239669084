package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
)

// DriverRepository defines the persistence contract for driver profiles.
type DriverRepository interface {
	// Add persists a new driver aggregate to storage.
	Add(ctx context.Context, aggregate *driver.Driver) error

	// Update persists changes to an existing driver aggregate.
	Update(ctx context.Context, aggregate *driver.Driver) error

	// Get retrieves a driver aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*driver.Driver, error)

	// GetByUserID retrieves the driver profile owned by a user account.
	GetByUserID(ctx context.Context, userID kernel.UUID) (*driver.Driver, error)

	// GetAllEligible retrieves drivers that are approved, online and
	// available. Presence freshness is layered on top by the caller.
	GetAllEligible(ctx context.Context) ([]*driver.Driver, error)
}
