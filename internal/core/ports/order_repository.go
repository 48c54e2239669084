// Package ports defines the persistence and messaging contracts of the
// core. Adapters implement them; application handlers depend on nothing
// below these interfaces.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate to storage.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// UpdateGuarded persists changes only if the stored row is still in
	// expected status. Returns errs.ErrPreconditionFailed when a
	// concurrent writer moved the order first.
	UpdateGuarded(ctx context.Context, aggregate *order.Order, expected order.Status) error

	// Get retrieves an order aggregate by its unique identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// GetAllByCustomer retrieves a customer's orders, newest first.
	GetAllByCustomer(ctx context.Context, customerID kernel.UUID) ([]*order.Order, error)

	// GetAllReadyUnbound retrieves orders in Ready status with no driver
	// bound. These are the orders offered to available drivers.
	GetAllReadyUnbound(ctx context.Context) ([]*order.Order, error)

	// GetActiveByDriver retrieves the driver's order still out for
	// delivery, or errs.ErrObjectNotFound when there is none.
	GetActiveByDriver(ctx context.Context, driverID kernel.UUID) (*order.Order, error)
}
