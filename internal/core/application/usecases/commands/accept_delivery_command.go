package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/actor"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrAcceptDeliveryCommandIsNotConstructed = errors.New(
	"AcceptDeliveryCommand must be created via NewAcceptDeliveryCommand constructor",
)

// AcceptDeliveryCommand represents a driver claiming a ready order. The
// actor's user identity is resolved to a driver record by the handler.
type AcceptDeliveryCommand struct { //nolint:recvcheck //using for validation
	orderID kernel.UUID
	act     actor.Actor

	guard guard.ConstructorGuard
}

// NewAcceptDeliveryCommand creates a command for a driver to claim an
// order. Only driver actors may claim.
func NewAcceptDeliveryCommand(orderID kernel.UUID, act actor.Actor) (AcceptDeliveryCommand, error) {
	cmd := AcceptDeliveryCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setOrderID(orderID),
		cmd.setActor(act),
	); err != nil {
		return AcceptDeliveryCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AcceptDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrAcceptDeliveryCommandIsNotConstructed)
}

// OrderID returns the identifier of the order being claimed.
func (c AcceptDeliveryCommand) OrderID() kernel.UUID {
	return c.orderID
}

// Actor returns the claiming driver's identity.
func (c AcceptDeliveryCommand) Actor() actor.Actor {
	return c.act
}

func (c *AcceptDeliveryCommand) setOrderID(orderID kernel.UUID) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	c.orderID = orderID
	return nil
}

func (c *AcceptDeliveryCommand) setActor(act actor.Actor) error {
	if err := act.Validate(); err != nil {
		return err
	}
	if !act.Is(actor.RoleDriver) {
		return errs.NewUnauthorizedError(act.Role().String(), "claim a delivery")
	}

	c.act = act
	return nil
}
