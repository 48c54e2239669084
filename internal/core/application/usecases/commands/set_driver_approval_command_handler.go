package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// SetDriverApprovalCommandHandler applies an admin's approval decision.
// A suspended or rejected driver drops out of the presence pool right
// away rather than waiting for the heartbeat to expire.
type SetDriverApprovalCommandHandler struct {
	uowFactory   DriverUoWFactory
	stateMachine services.OrderStateMachine
	presence     ports.PresenceStore
}

// NewSetDriverApprovalCommandHandler creates a handler for driver
// approval decisions.
func NewSetDriverApprovalCommandHandler(
	uowFactory DriverUoWFactory,
	presence ports.PresenceStore,
) SetDriverApprovalCommandHandler {
	return SetDriverApprovalCommandHandler{
		uowFactory:   uowFactory,
		stateMachine: services.NewOrderStateMachine(),
		presence:     presence,
	}
}

// Handle processes the approval decision.
func (h *SetDriverApprovalCommandHandler) Handle(ctx context.Context, cmd SetDriverApprovalCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if err := h.stateMachine.AuthorizeDriverApproval(cmd.Actor()); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	driverRepo := uow.DriverRepository()
	d, err := driverRepo.Get(ctx, cmd.DriverID())
	if err != nil {
		return err
	}

	switch cmd.Target() {
	case driver.StatusApproved:
		err = d.Approve()
	case driver.StatusRejected:
		err = d.Reject()
	case driver.StatusSuspended:
		err = d.Suspend()
	}
	if err != nil {
		return err
	}

	if err = driverRepo.Update(ctx, d); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	if cmd.Target() != driver.StatusApproved {
		return h.presence.Remove(ctx, d.ID())
	}

	return nil
}
