package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// RejectOrderCommandHandler declines an order and notifies the customer.
// Rejection also cancels the tracking record so driver clients never see
// the order as claimable.
type RejectOrderCommandHandler struct {
	uowFactory   FulfillmentUoWFactory
	stateMachine services.OrderStateMachine
	publisher    ports.EventPublisher
}

// NewRejectOrderCommandHandler creates a handler for staff order rejection.
func NewRejectOrderCommandHandler(
	uowFactory FulfillmentUoWFactory,
	publisher ports.EventPublisher,
) RejectOrderCommandHandler {
	return RejectOrderCommandHandler{
		uowFactory:   uowFactory,
		stateMachine: services.NewOrderStateMachine(),
		publisher:    publisher,
	}
}

// Handle processes the rejection command.
func (h *RejectOrderCommandHandler) Handle(ctx context.Context, cmd RejectOrderCommand) error {
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

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = h.stateMachine.AuthorizeOrderTransition(cmd.Actor(), o, order.Rejected); err != nil {
		return err
	}

	loadedStatus := o.Status()
	if err = o.Reject(); err != nil {
		return err
	}

	if err = orderRepo.UpdateGuarded(ctx, o, loadedStatus); err != nil {
		return err
	}

	if err = cancelTracking(ctx, uow.TrackingRepository(), cmd.OrderID()); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishOrderEvent(ctx, h.publisher, notification.EventOrderRejected, o, map[string]any{
		"status": o.Status().String(),
	})

	return nil
}
