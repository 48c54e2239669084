// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS
// architecture. Queries return read models shaped for the wire surface
// and bypass the aggregates entirely.
package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetTrackingQueryIsNotConstructed = errors.New(
		"GetTrackingQuery must be created via NewGetTrackingQuery constructor",
	)
)

// GetTrackingQuery retrieves the delivery tracking record for an order.
// The read is self-healing: an order that exists without a tracking row
// gets a fresh Preparing record instead of a not-found error, so a
// customer polling right after checkout always sees a state.
//
// Example:
//
//	query, err := NewGetTrackingQuery(orderID)
//	if err != nil {
//	    return err
//	}
//
//	record, err := handler.Handle(ctx, query)
//	if err != nil {
//	    return fmt.Errorf("failed to retrieve tracking: %w", err)
//	}
//
//	fmt.Printf("Order %s is %s\n", record.OrderID, record.Status)
type GetTrackingQuery struct {
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

// NewGetTrackingQuery creates a query for one order's tracking record.
func NewGetTrackingQuery(orderID kernel.UUID) (GetTrackingQuery, error) {
	if err := orderID.Validate(); err != nil {
		return GetTrackingQuery{}, err
	}

	return GetTrackingQuery{
		orderID: orderID,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetTrackingQuery) Validate() error {
	return q.guard.Validate(ErrGetTrackingQueryIsNotConstructed)
}

// OrderID returns the identifier of the tracked order.
func (q GetTrackingQuery) OrderID() kernel.UUID {
	return q.orderID
}

// GetTrackingQueryResponse is the tracking read model. Pointer fields
// are nil until the underlying value has been reported.
type GetTrackingQueryResponse struct {
	OrderID           kernel.UUID
	Status            string
	DriverID          *kernel.UUID
	DriverName        string
	DriverPhone       string
	Lat               *float64
	Lng               *float64
	LocationAddress   string
	LocationUpdatedAt *time.Time
	EstimatedDelivery *time.Time
	DeliveredAt       *time.Time
	Notes             string
}
