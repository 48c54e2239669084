package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/actor"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateDriverLocationCommandIsNotConstructed = errors.New(
	"UpdateDriverLocationCommand must be created via NewUpdateDriverLocationCommand constructor",
)

// UpdateDriverLocationCommand represents a position report from a driver
// client. The address line is the client's reverse geocode, optional.
type UpdateDriverLocationCommand struct { //nolint:recvcheck //using for validation
	act     actor.Actor
	lat     float64
	lng     float64
	address string

	guard guard.ConstructorGuard
}

// NewUpdateDriverLocationCommand creates a command to record a driver's
// position. Coordinate range checks happen in the location value object.
func NewUpdateDriverLocationCommand(
	act actor.Actor,
	lat, lng float64,
	address string,
) (UpdateDriverLocationCommand, error) {
	cmd := UpdateDriverLocationCommand{
		lat:     lat,
		lng:     lng,
		address: address,
		guard:   guard.NewConstructorGuard(),
	}

	if err := cmd.setActor(act); err != nil {
		return UpdateDriverLocationCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateDriverLocationCommand) Validate() error {
	return c.guard.Validate(ErrUpdateDriverLocationCommandIsNotConstructed)
}

// Actor returns the driver's identity.
func (c UpdateDriverLocationCommand) Actor() actor.Actor {
	return c.act
}

// Lat returns the reported latitude.
func (c UpdateDriverLocationCommand) Lat() float64 {
	return c.lat
}

// Lng returns the reported longitude.
func (c UpdateDriverLocationCommand) Lng() float64 {
	return c.lng
}

// Address returns the reverse geocoded address line, possibly empty.
func (c UpdateDriverLocationCommand) Address() string {
	return c.address
}

func (c *UpdateDriverLocationCommand) setActor(act actor.Actor) error {
	if err := act.Validate(); err != nil {
		return err
	}
	if !act.Is(actor.RoleDriver) {
		return errs.NewUnauthorizedError(act.Role().String(), "update driver location")
	}

	c.act = act
	return nil
}
