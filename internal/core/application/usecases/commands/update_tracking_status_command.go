package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/actor"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateTrackingStatusCommandIsNotConstructed = errors.New(
	"UpdateTrackingStatusCommand must be created via NewUpdateTrackingStatusCommand constructor",
)

// UpdateTrackingStatusCommand represents a staff or driver report that the
// physical delivery state changed. Notes and the estimated delivery time
// are optional attachments.
type UpdateTrackingStatusCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	target  tracking.Status
	act     actor.Actor
	notes   string
	eta     *time.Time

	guard guard.ConstructorGuard
}

// NewUpdateTrackingStatusCommand creates a command to move an order's
// tracking record to the target status. Whether the move is legal from
// the current state is decided by the aggregate, not here.
func NewUpdateTrackingStatusCommand(
	orderID kernel.UUID,
	target tracking.Status,
	act actor.Actor,
	notes string,
	eta *time.Time,
) (UpdateTrackingStatusCommand, error) {
	cmd := UpdateTrackingStatusCommand{
		notes: notes,
		eta:   eta,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setTarget(target),
		cmd.setActor(act),
	); err != nil {
		return UpdateTrackingStatusCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateTrackingStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateTrackingStatusCommandIsNotConstructed)
}

// OrderID returns the identifier of the tracked order.
func (c UpdateTrackingStatusCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Target returns the reported tracking status.
func (c UpdateTrackingStatusCommand) Target() tracking.Status {
	return c.target
}

// Actor returns the identity reporting the change.
func (c UpdateTrackingStatusCommand) Actor() actor.Actor {
	return c.act
}

// Notes returns the free-text delivery notes, possibly empty.
func (c UpdateTrackingStatusCommand) Notes() string {
	return c.notes
}

// ETA returns the reported estimated delivery time, nil if none.
func (c UpdateTrackingStatusCommand) ETA() *time.Time {
	return c.eta
}

func (c *UpdateTrackingStatusCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *UpdateTrackingStatusCommand) setTarget(target tracking.Status) error {
	if err := target.Validate(); err != nil {
		return err
	}

	c.target = target
	return nil
}

func (c *UpdateTrackingStatusCommand) setActor(act actor.Actor) error {
	if err := act.Validate(); err != nil {
		return err
	}

	c.act = act
	return nil
}
