package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/actor"
	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrSetDriverApprovalCommandIsNotConstructed = errors.New(
	"SetDriverApprovalCommand must be created via NewSetDriverApprovalCommand constructor",
)

// SetDriverApprovalCommand represents an admin decision on a driver
// account: approve, reject or suspend.
type SetDriverApprovalCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	target   driver.ApprovalStatus
	act      actor.Actor

	guard guard.ConstructorGuard
}

// NewSetDriverApprovalCommand creates a command to change a driver's
// approval status. Only Approved, Rejected and Suspended are decisions;
// Pending is the registration state and cannot be set.
func NewSetDriverApprovalCommand(
	driverID kernel.UUID,
	target driver.ApprovalStatus,
	act actor.Actor,
) (SetDriverApprovalCommand, error) {
	cmd := SetDriverApprovalCommand{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		cmd.setDriverID(driverID),
		cmd.setTarget(target),
		cmd.setActor(act),
	); err != nil {
		return SetDriverApprovalCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetDriverApprovalCommand) Validate() error {
	return c.guard.Validate(ErrSetDriverApprovalCommandIsNotConstructed)
}

// DriverID returns the identifier of the driver account.
func (c SetDriverApprovalCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Target returns the decided approval status.
func (c SetDriverApprovalCommand) Target() driver.ApprovalStatus {
	return c.target
}

// Actor returns the deciding admin's identity.
func (c SetDriverApprovalCommand) Actor() actor.Actor {
	return c.act
}

func (c *SetDriverApprovalCommand) setDriverID(driverID kernel.UUID) error {
	if err := driverID.Validate(); err != nil {
		return err
	}

	c.driverID = driverID
	return nil
}

func (c *SetDriverApprovalCommand) setTarget(target driver.ApprovalStatus) error {
	switch target {
	case driver.StatusApproved, driver.StatusRejected, driver.StatusSuspended:
		c.target = target
		return nil
	default:
		return errs.NewValueIsInvalidError("approval status")
	}
}

func (c *SetDriverApprovalCommand) setActor(act actor.Actor) error {
	if err := act.Validate(); err != nil {
		return err
	}

	c.act = act
	return nil
}
