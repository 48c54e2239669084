package tracking

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrTrackingIsNotConstructed is returned when a Tracking instance was
	// not created through NewTracking or RestoreTracking.
	ErrTrackingIsNotConstructed = errors.New("Tracking must be created via NewTracking constructor")

	// ErrDriverAlreadyAssigned is returned when a second driver tries to
	// claim an order that already has one.
	ErrDriverAlreadyAssigned = errs.NewPreconditionFailedError("order already assigned to a driver")

	// ErrDriverNotAssigned is returned when advancing past Ready without a
	// driver assignment.
	ErrDriverNotAssigned = errs.NewPreconditionFailedError("tracking has no assigned driver")
)

// Tracking is the aggregate root for the physical delivery state of one
// order. There is at most one Tracking per order (orderID is the unique
// key), and a record is created lazily on first read if missing, so a
// tracking lookup for an existing order always succeeds.
//
// The driver identity is snapshotted (name and phone at assignment time)
// so the customer-facing view survives later driver profile edits.
type Tracking struct {
	orderID     kernel.UUID
	status      Status
	driverID    *kernel.UUID
	driverName  string
	driverPhone string
	location    *kernel.GeoLocation
	estimated   *time.Time
	delivered   *time.Time
	notes       string

	guard guard.ConstructorGuard
}

// NewTracking creates a fresh tracking record in Preparing status.
func NewTracking(orderID kernel.UUID) (*Tracking, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	return &Tracking{
		orderID: orderID,
		status:  Preparing,
		guard:   guard.NewConstructorGuard(),
	}, nil
}

// RestoreTracking reconstructs a tracking record from persistence.
func RestoreTracking(
	orderID kernel.UUID,
	status Status,
	driverID *kernel.UUID,
	driverName, driverPhone string,
	location *kernel.GeoLocation,
	estimated, delivered *time.Time,
	notes string,
) (*Tracking, error) {
	if err := errors.Join(orderID.Validate(), status.Validate()); err != nil {
		return nil, err
	}

	t := &Tracking{
		orderID:     orderID,
		status:      status,
		driverName:  driverName,
		driverPhone: driverPhone,
		estimated:   estimated,
		delivered:   delivered,
		notes:       notes,
		guard:       guard.NewConstructorGuard(),
	}

	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return nil, err
		}
		t.driverID = driverID
	}

	if location != nil {
		if err := location.Validate(); err != nil {
			return nil, err
		}
		t.location = location
	}

	return t, nil
}

// Validate ensures the Tracking was created through a constructor.
func (t *Tracking) Validate() error {
	if t == nil {
		return ErrTrackingIsNotConstructed
	}
	return t.guard.Validate(ErrTrackingIsNotConstructed)
}

// OrderID returns the identifier of the tracked order.
func (t *Tracking) OrderID() kernel.UUID { return t.orderID }

// Status returns the current physical delivery status.
func (t *Tracking) Status() Status { return t.status }

// Driver returns the assigned driver's ID, or nil before assignment.
func (t *Tracking) Driver() *kernel.UUID { return t.driverID }

// DriverName returns the driver name snapshot taken at assignment.
func (t *Tracking) DriverName() string { return t.driverName }

// DriverPhone returns the driver phone snapshot taken at assignment.
func (t *Tracking) DriverPhone() string { return t.driverPhone }

// Location returns the last reported package position, or nil.
func (t *Tracking) Location() *kernel.GeoLocation { return t.location }

// EstimatedDeliveryTime returns the ETA, or nil if none was set.
func (t *Tracking) EstimatedDeliveryTime() *time.Time { return t.estimated }

// ActualDeliveryTime returns the delivery moment, nil until Delivered.
func (t *Tracking) ActualDeliveryTime() *time.Time { return t.delivered }

// Notes returns the free-text delivery notes.
func (t *Tracking) Notes() string { return t.notes }

// MarkReady moves the record to Ready: the package waits for a driver.
func (t *Tracking) MarkReady() error {
	return t.transition(Ready)
}

// AssignDriver claims a Ready record for a driver, snapshotting name and
// phone. A record that already has a driver rejects the claim with
// ErrDriverAlreadyAssigned; the persistence layer enforces the same rule
// with a compare-and-set so concurrent claims cannot both win.
func (t *Tracking) AssignDriver(driverID kernel.UUID, name, phone string) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if t.status != Ready {
		return errs.NewIllegalTransitionError(t.status.String(), "driver assignment")
	}
	if t.driverID != nil {
		return ErrDriverAlreadyAssigned
	}

	t.driverID = &driverID
	t.driverName = name
	t.driverPhone = phone
	return nil
}

// Advance moves the record forward along the monotonic sequence. Moving
// past Ready requires a driver assignment. Advancing to Delivered records
// the actual delivery time.
func (t *Tracking) Advance(target Status) error {
	if target.rank() > Ready.rank() && t.driverID == nil {
		return ErrDriverNotAssigned
	}
	if err := t.transition(target); err != nil {
		return err
	}
	if target == Delivered {
		now := time.Now().UTC()
		t.delivered = &now
	}
	return nil
}

// Cancel calls the delivery off. Legal from any non-terminal status.
func (t *Tracking) Cancel() error {
	return t.transition(Cancelled)
}

// UpdateLocation records the latest reported package position.
// Rejected on terminal records: a delivered package does not move.
func (t *Tracking) UpdateLocation(location kernel.GeoLocation) error {
	if err := location.Validate(); err != nil {
		return err
	}
	if t.status.IsTerminal() {
		return errs.NewIllegalTransitionError(t.status.String(), "location update")
	}
	t.location = &location
	return nil
}

// SetEstimatedDeliveryTime records the ETA communicated to the customer.
func (t *Tracking) SetEstimatedDeliveryTime(eta time.Time) {
	utc := eta.UTC()
	t.estimated = &utc
}

// SetNotes replaces the free-text delivery notes.
func (t *Tracking) SetNotes(notes string) {
	t.notes = notes
}

func (t *Tracking) transition(target Status) error {
	newStatus, err := t.status.TransitionTo(target)
	if err != nil {
		return err
	}
	t.status = newStatus
	return nil
}
