package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/actor"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateDriverAvailabilityCommandIsNotConstructed = errors.New(
	"UpdateDriverAvailabilityCommand must be created via NewUpdateDriverAvailabilityCommand constructor",
)

// UpdateDriverAvailabilityCommand represents a driver flipping their
// online and available flags. Driver clients send it on app start, on
// shift changes, and as a periodic heartbeat while online.
type UpdateDriverAvailabilityCommand struct { //nolint:recvcheck //using for validation
	act         actor.Actor
	isOnline    bool
	isAvailable bool

	guard guard.ConstructorGuard
}

// NewUpdateDriverAvailabilityCommand creates a command to update a
// driver's availability flags.
func NewUpdateDriverAvailabilityCommand(
	act actor.Actor,
	isOnline, isAvailable bool,
) (UpdateDriverAvailabilityCommand, error) {
	cmd := UpdateDriverAvailabilityCommand{
		isOnline:    isOnline,
		isAvailable: isAvailable,
		guard:       guard.NewConstructorGuard(),
	}

	if err := cmd.setActor(act); err != nil {
		return UpdateDriverAvailabilityCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateDriverAvailabilityCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDriverAvailabilityCommandIsNotConstructed)
}

// Actor returns the driver's identity.
func (c UpdateDriverAvailabilityCommand) Actor() actor.Actor {
	return c.act
}

// IsOnline returns the reported online flag.
func (c UpdateDriverAvailabilityCommand) IsOnline() bool {
	return c.isOnline
}

// IsAvailable returns the reported available flag.
func (c UpdateDriverAvailabilityCommand) IsAvailable() bool {
	return c.isAvailable
}

func (c *UpdateDriverAvailabilityCommand) setActor(act actor.Actor) error {
	if err := act.Validate(); err != nil {
		return err
	}
	if !act.Is(actor.RoleDriver) {
		return errs.NewUnauthorizedError(act.Role().String(), "update driver availability")
	}

	c.act = act
	return nil
}
