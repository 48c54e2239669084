package driver

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrDriverIsNotConstructed is returned when a Driver instance was not
	// created through NewDriver or RestoreDriver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")

	// ErrDriverNotEligible is returned when an operation requires an
	// online, available, approved driver.
	ErrDriverNotEligible = errs.NewPreconditionFailedError("driver is not online, available and approved")
)

// Driver is the aggregate root for a delivery driver. Each driver is bound
// 1:1 to a user account; name and phone are the snapshot sources copied
// onto tracking records at assignment time.
//
// Availability semantics: isOnline is the client heartbeat flag, and
// isAvailable is the driver's own opt-in to receive work. Completing a
// delivery increments the counter but leaves availability untouched; the
// driver opts back into the pool explicitly.
type Driver struct {
	id            kernel.UUID
	userID        kernel.UUID
	name          string
	phone         string
	vehicle       Vehicle
	status        ApprovalStatus
	isOnline      bool
	isAvailable   bool
	location      *kernel.GeoLocation
	rating        float64
	deliveryCount int

	guard guard.ConstructorGuard
}

// NewDriver registers a new driver in Pending approval status, offline
// and unavailable.
func NewDriver(id, userID kernel.UUID, name, phone string, vehicle Vehicle) (*Driver, error) {
	d := &Driver{
		status: StatusPending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setUserID(userID),
		d.setName(name),
		d.setPhone(phone),
		d.setVehicle(vehicle),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDriver reconstructs a driver from persistence.
func RestoreDriver(
	id, userID kernel.UUID,
	name, phone string,
	vehicle Vehicle,
	status ApprovalStatus,
	isOnline, isAvailable bool,
	location *kernel.GeoLocation,
	rating float64,
	deliveryCount int,
) (*Driver, error) {
	d := &Driver{
		isOnline:      isOnline,
		isAvailable:   isAvailable,
		rating:        rating,
		deliveryCount: deliveryCount,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setUserID(userID),
		d.setName(name),
		d.setPhone(phone),
		d.setVehicle(vehicle),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	d.status = status

	if location != nil {
		if err := location.Validate(); err != nil {
			return nil, err
		}
		d.location = location
	}

	if deliveryCount < 0 {
		return nil, errs.NewValueIsInvalidError("delivery count is negative")
	}

	return d, nil
}

// Validate ensures the Driver was created through a constructor.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// ID returns the driver identifier.
func (d *Driver) ID() kernel.UUID { return d.id }

// UserID returns the bound user account identifier.
func (d *Driver) UserID() kernel.UUID { return d.userID }

// Name returns the driver's display name.
func (d *Driver) Name() string { return d.name }

// Phone returns the driver's contact phone.
func (d *Driver) Phone() string { return d.phone }

// Vehicle returns the registered vehicle metadata.
func (d *Driver) Vehicle() Vehicle { return d.vehicle }

// Status returns the admin approval status.
func (d *Driver) Status() ApprovalStatus { return d.status }

// IsOnline reports the client heartbeat flag.
func (d *Driver) IsOnline() bool { return d.isOnline }

// IsAvailable reports the driver's opt-in to receive work.
func (d *Driver) IsAvailable() bool { return d.isAvailable }

// Location returns the last reported position, or nil.
func (d *Driver) Location() *kernel.GeoLocation { return d.location }

// Rating returns the driver's average rating.
func (d *Driver) Rating() float64 { return d.rating }

// DeliveryCount returns the cumulative completed deliveries.
func (d *Driver) DeliveryCount() int { return d.deliveryCount }

// IsEligible reports whether the driver may take a delivery right now:
// online, available, and approved.
func (d *Driver) IsEligible() bool {
	return d.isOnline && d.isAvailable && d.status == StatusApproved
}

// Approve is the admin action moving the driver into service.
func (d *Driver) Approve() error {
	return d.transitionStatus(StatusApproved)
}

// Reject is the admin action permanently declining the registration.
func (d *Driver) Reject() error {
	return d.transitionStatus(StatusRejected)
}

// Suspend is the admin action removing an approved driver from duty.
// A suspended driver is also forced offline and unavailable.
func (d *Driver) Suspend() error {
	if err := d.transitionStatus(StatusSuspended); err != nil {
		return err
	}
	d.isOnline = false
	d.isAvailable = false
	return nil
}

// SetOnline records the client heartbeat flag.
func (d *Driver) SetOnline(online bool) {
	d.isOnline = online
	if !online {
		d.isAvailable = false
	}
}

// SetAvailable records the driver's opt-in. Opting in requires being
// online and approved.
func (d *Driver) SetAvailable(available bool) error {
	if available && (!d.isOnline || d.status != StatusApproved) {
		return ErrDriverNotEligible
	}
	d.isAvailable = available
	return nil
}

// MoveTo records the driver's current position.
func (d *Driver) MoveTo(location kernel.GeoLocation) error {
	if err := location.Validate(); err != nil {
		return err
	}
	d.location = &location
	return nil
}

// CompleteDelivery increments the cumulative counter by exactly one.
// Availability is deliberately left unchanged.
func (d *Driver) CompleteDelivery() {
	d.deliveryCount++
}

func (d *Driver) transitionStatus(target ApprovalStatus) error {
	newStatus, err := d.status.TransitionTo(target)
	if err != nil {
		return err
	}
	d.status = newStatus
	return nil
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setUserID(userID kernel.UUID) error {
	if err := userID.Validate(); err != nil {
		return err
	}
	d.userID = userID
	return nil
}

func (d *Driver) setName(name string) error {
	if name == "" {
		return errs.NewValueIsRequiredError("driver name")
	}
	d.name = name
	return nil
}

func (d *Driver) setPhone(phone string) error {
	if phone == "" {
		return errs.NewValueIsRequiredError("driver phone")
	}
	d.phone = phone
	return nil
}

func (d *Driver) setVehicle(vehicle Vehicle) error {
	if err := vehicle.Validate(); err != nil {
		return err
	}
	d.vehicle = vehicle
	return nil
}
