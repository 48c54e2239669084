package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/actor"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrRegisterDriverCommandIsNotConstructed = errors.New(
		"RegisterDriverCommand must be created via NewRegisterDriverCommand constructor",
	)
	ErrDriverNameIsRequired  = errors.New("driver name is required")
	ErrDriverPhoneIsRequired = errors.New("driver phone is required")
)

// RegisterDriverCommand represents a user signing up as a driver. The
// account starts in the Pending approval state and cannot take work
// until an admin approves it.
type RegisterDriverCommand struct { //nolint:recvcheck //using for validation
	driverID     kernel.UUID
	act          actor.Actor
	name         string
	phone        string
	vehicleType  string
	vehiclePlate string
	vehicleModel string

	guard guard.ConstructorGuard
}

// NewRegisterDriverCommand creates a command to register the acting user
// as a driver.
func NewRegisterDriverCommand(
	driverID kernel.UUID,
	act actor.Actor,
	name, phone string,
	vehicleType, vehiclePlate, vehicleModel string,
) (RegisterDriverCommand, error) {
	cmd := RegisterDriverCommand{
		vehicleType:  vehicleType,
		vehiclePlate: vehiclePlate,
		vehicleModel: vehicleModel,
		guard:        guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setDriverID(driverID),
		cmd.setActor(act),
		cmd.setName(name),
		cmd.setPhone(phone),
	); err != nil {
		return RegisterDriverCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c RegisterDriverCommand) Validate() error {
	return c.guard.Validate(ErrRegisterDriverCommandIsNotConstructed)
}

// DriverID returns the identifier for the new driver record.
func (c RegisterDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Actor returns the registering user's identity.
func (c RegisterDriverCommand) Actor() actor.Actor {
	return c.act
}

// Name returns the driver's display name.
func (c RegisterDriverCommand) Name() string {
	return c.name
}

// Phone returns the driver's contact phone.
func (c RegisterDriverCommand) Phone() string {
	return c.phone
}

// VehicleType returns the vehicle category, e.g. "bike" or "car".
func (c RegisterDriverCommand) VehicleType() string {
	return c.vehicleType
}

// VehiclePlate returns the vehicle plate number.
func (c RegisterDriverCommand) VehiclePlate() string {
	return c.vehiclePlate
}

// VehicleModel returns the vehicle model description.
func (c RegisterDriverCommand) VehicleModel() string {
	return c.vehicleModel
}

func (c *RegisterDriverCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}

func (c *RegisterDriverCommand) setActor(act actor.Actor) error {
	if err := act.Validate(); err != nil {
		return err
	}

	c.act = act
	return nil
}

func (c *RegisterDriverCommand) setName(name string) error {
	if name == "" {
		return ErrDriverNameIsRequired
	}

	c.name = name
	return nil
}

func (c *RegisterDriverCommand) setPhone(phone string) error {
	if phone == "" {
		return ErrDriverPhoneIsRequired
	}

	c.phone = phone
	return nil
}
