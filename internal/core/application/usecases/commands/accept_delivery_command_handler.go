package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// AcceptDeliveryCommandHandler binds a driver to a ready order. The
// domain assignment service validates eligibility and applies the binding
// to both aggregates; the tracking repository's conditional update is
// what settles a race between two drivers claiming the same order, so
// exactly one commit succeeds and the loser rolls back with a conflict.
type AcceptDeliveryCommandHandler struct {
	uowFactory UoWFactory
	assignment services.DriverAssignment
	publisher  ports.EventPublisher
}

// NewAcceptDeliveryCommandHandler creates a handler for delivery claims.
func NewAcceptDeliveryCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
) AcceptDeliveryCommandHandler {
	return AcceptDeliveryCommandHandler{
		uowFactory: uowFactory,
		assignment: services.NewDriverAssignment(),
		publisher:  publisher,
	}
}

// Handle processes the delivery claim.
func (h *AcceptDeliveryCommandHandler) Handle(ctx context.Context, cmd AcceptDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
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
	d, err := driverRepo.GetByUserID(ctx, cmd.Actor().ID())
	if err != nil {
		return err
	}

	trackingRepo := uow.TrackingRepository()
	active, err := trackingRepo.GetActiveByDriver(ctx, d.ID())
	if err != nil {
		return err
	}
	if len(active) > 0 {
		return errs.NewPreconditionFailedError("driver already has an active delivery")
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	tr, err := trackingRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = h.assignment.Assign(o, tr, d); err != nil {
		return err
	}

	// The conditional update loses cleanly when another driver got the
	// order first.
	if err = trackingRepo.BindDriver(ctx, tr); err != nil {
		return err
	}

	if err = orderRepo.UpdateGuarded(ctx, o, order.Ready); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishOrderEvent(ctx, h.publisher, notification.EventDriverAssigned, o, map[string]any{
		"driver_name":  d.Name(),
		"driver_phone": d.Phone(),
	})

	return nil
}
