package services

import (
	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"
)

// DriverAssignment binds an eligible driver to an order and its tracking
// record. Both aggregates change together; persisting them in one unit of
// work is the caller's job, as is the conditional write guarding against a
// concurrent acceptance.
type DriverAssignment struct{}

// NewDriverAssignment creates the assignment service.
func NewDriverAssignment() DriverAssignment {
	return DriverAssignment{}
}

// Assign binds d to o and tr. The driver must be approved, online and
// available; the order must be Ready with no driver bound.
func (s DriverAssignment) Assign(o *order.Order, tr *tracking.Tracking, d *driver.Driver) error {
	if err := o.Validate(); err != nil {
		return err
	}
	if err := tr.Validate(); err != nil {
		return err
	}
	if err := d.Validate(); err != nil {
		return err
	}

	if !d.IsEligible() {
		return driver.ErrDriverNotEligible
	}

	if err := tr.AssignDriver(d.ID(), d.Name(), d.Phone()); err != nil {
		return err
	}
	return o.BindDriver(d.ID())
}
