package order

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not
	// created through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrDriverAlreadyBound is returned when binding a driver to an order
	// that already has one.
	ErrDriverAlreadyBound = errs.NewPreconditionFailedError("order already has a driver bound")

	// ErrDriverIsRequired is returned when starting delivery without a
	// driver binding.
	ErrDriverIsRequired = errs.NewPreconditionFailedError("delivery requires a bound driver")
)

// Order is the aggregate root for the business side of a fulfillment.
// It owns the immutable line item snapshots, the computed amounts, and the
// business status; the physical delivery state lives in the tracking
// aggregate keyed by this order's ID.
//
// Invariants:
//   - line item snapshots and amounts never change after construction
//   - status changes only through the transition table in status.go
//   - OutForDelivery requires a bound driver
//   - amount arithmetic is exact: totals are stored in cents
type Order struct {
	id          kernel.UUID
	customerID  kernel.UUID
	items       []LineItem
	address     Address
	contact     Contact
	subtotal    kernel.Money
	shippingFee kernel.Money
	tax         kernel.Money
	total       kernel.Money
	status      Status
	driverID    *kernel.UUID
	acceptCode  string
	placedAt    time.Time

	guard guard.ConstructorGuard
}

// NewOrder creates an order from checkout input. The line items arrive as
// catalog snapshots; subtotal, tax and total are computed here once and
// frozen. taxRate is a percentage, e.g. 10 for ten percent.
//
// The order starts in Pending status with no driver bound.
func NewOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	items []LineItem,
	address Address,
	contact Contact,
	shippingFee kernel.Money,
	taxRate float64,
) (*Order, error) {
	o := &Order{
		contact:  contact,
		status:   Pending,
		placedAt: time.Now().UTC(),
		guard:    guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setItems(items),
		o.setAddress(address),
		o.setShippingFee(shippingFee),
	); err != nil {
		return nil, err
	}

	if taxRate < 0 || taxRate > 100 {
		return nil, errs.NewValueIsOutOfRangeError("tax rate", taxRate, 0, 100)
	}

	subtotal, _ := kernel.NewMoney(0)
	for _, item := range o.items {
		subtotal = subtotal.Add(item.Total())
	}
	o.subtotal = subtotal
	o.tax = subtotal.Percent(taxRate)
	o.total = subtotal.Add(o.shippingFee).Add(o.tax)

	return o, nil
}

// RestoreOrder reconstructs an order from persistence without recomputing
// amounts; the stored cents are authoritative.
func RestoreOrder(
	id kernel.UUID,
	customerID kernel.UUID,
	items []LineItem,
	address Address,
	contact Contact,
	subtotal, shippingFee, tax, total kernel.Money,
	status Status,
	driverID *kernel.UUID,
	acceptCode string,
	placedAt time.Time,
) (*Order, error) {
	o := &Order{
		contact:     contact,
		subtotal:    subtotal,
		shippingFee: shippingFee,
		tax:         tax,
		total:       total,
		acceptCode:  acceptCode,
		placedAt:    placedAt,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setCustomerID(customerID),
		o.setItems(items),
		o.setAddress(address),
		status.Validate(),
	); err != nil {
		return nil, err
	}
	o.status = status

	if driverID != nil {
		if err := driverID.Validate(); err != nil {
			return nil, err
		}
		o.driverID = driverID
	}

	return o, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order identifier.
func (o *Order) ID() kernel.UUID { return o.id }

// CustomerID returns the owning customer's identifier.
func (o *Order) CustomerID() kernel.UUID { return o.customerID }

// Items returns the line item snapshots.
func (o *Order) Items() []LineItem { return o.items }

// Address returns the delivery address snapshot.
func (o *Order) Address() Address { return o.address }

// Contact returns the notification contact snapshot.
func (o *Order) Contact() Contact { return o.contact }

// Subtotal returns the sum of line item totals.
func (o *Order) Subtotal() kernel.Money { return o.subtotal }

// ShippingFee returns the delivery fee.
func (o *Order) ShippingFee() kernel.Money { return o.shippingFee }

// Tax returns the computed tax amount.
func (o *Order) Tax() kernel.Money { return o.tax }

// Total returns subtotal + shipping + tax.
func (o *Order) Total() kernel.Money { return o.total }

// Status returns the current business status.
func (o *Order) Status() Status { return o.status }

// Driver returns the bound driver's ID, or nil if unbound.
func (o *Order) Driver() *kernel.UUID { return o.driverID }

// AcceptanceCode returns the artifact attached on staff acceptance,
// empty until the order is accepted.
func (o *Order) AcceptanceCode() string { return o.acceptCode }

// PlacedAt returns the order creation time.
func (o *Order) PlacedAt() time.Time { return o.placedAt }

// Confirm moves Pending to Confirmed.
func (o *Order) Confirm() error {
	return o.transition(Confirmed)
}

// Accept is the staff acceptance: Pending (or Confirmed) to Preparing.
// The acceptance code is the pickup/QR artifact handed to the customer.
func (o *Order) Accept(acceptanceCode string) error {
	if acceptanceCode == "" {
		return errs.NewValueIsRequiredError("acceptance code")
	}
	if err := o.transition(Preparing); err != nil {
		return err
	}
	o.acceptCode = acceptanceCode
	return nil
}

// Reject is the staff rejection of a not-yet-prepared order.
func (o *Order) Reject() error {
	return o.transition(Rejected)
}

// MarkReady signals preparation finished; the order now waits for a driver.
func (o *Order) MarkReady() error {
	return o.transition(Ready)
}

// Cancel calls the order off. Legal from any non-terminal status.
func (o *Order) Cancel() error {
	return o.transition(Cancelled)
}

// BindDriver associates a driver with a Ready order. Binding an already
// bound order fails with ErrDriverAlreadyBound; the compare-and-set at the
// persistence layer enforces the same rule under concurrency.
func (o *Order) BindDriver(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}
	if o.status != Ready {
		return errs.NewIllegalTransitionError(o.status.String(), "driver binding")
	}
	if o.driverID != nil {
		return ErrDriverAlreadyBound
	}
	o.driverID = &driverID
	return nil
}

// StartDelivery moves Ready to OutForDelivery. Requires a bound driver.
func (o *Order) StartDelivery() error {
	if o.driverID == nil {
		return ErrDriverIsRequired
	}
	return o.transition(OutForDelivery)
}

// Complete marks the order delivered. Completing an already completed order
// is a no-op so that a late tracking confirmation cannot fail the flow.
func (o *Order) Complete() error {
	if o.status == Completed {
		return nil
	}
	return o.transition(Completed)
}

func (o *Order) transition(target Status) error {
	newStatus, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setCustomerID(customerID kernel.UUID) error {
	if err := customerID.Validate(); err != nil {
		return err
	}
	o.customerID = customerID
	return nil
}

func (o *Order) setItems(items []LineItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("order items")
	}
	for _, item := range items {
		if err := item.Validate(); err != nil {
			return err
		}
	}
	o.items = items
	return nil
}

func (o *Order) setAddress(address Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	o.address = address
	return nil
}

func (o *Order) setShippingFee(shippingFee kernel.Money) error {
	if err := shippingFee.Validate(); err != nil {
		return err
	}
	o.shippingFee = shippingFee
	return nil
}
