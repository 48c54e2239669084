package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// CancelOrderCommandHandler calls an order off. The state machine decides
// whether the actor may cancel; customers only reach their own orders.
// Cancelling also closes the tracking record in the same transaction.
type CancelOrderCommandHandler struct {
	uowFactory   FulfillmentUoWFactory
	stateMachine services.OrderStateMachine
	publisher    ports.EventPublisher
}

// NewCancelOrderCommandHandler creates a handler for order cancellation.
func NewCancelOrderCommandHandler(
	uowFactory FulfillmentUoWFactory,
	publisher ports.EventPublisher,
) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{
		uowFactory:   uowFactory,
		stateMachine: services.NewOrderStateMachine(),
		publisher:    publisher,
	}
}

// Handle processes the cancellation command.
func (h *CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
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

	if err = h.stateMachine.AuthorizeOrderTransition(cmd.Actor(), o, order.Cancelled); err != nil {
		return err
	}

	loadedStatus := o.Status()
	if err = o.Cancel(); err != nil {
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

	publishOrderEvent(ctx, h.publisher, notification.EventOrderCancelled, o, map[string]any{
		"status":       o.Status().String(),
		"cancelled_by": cmd.Actor().Role().String(),
	})

	return nil
}

// cancelTracking closes the tracking record matching a rejected or
// cancelled order. A missing record is fine, the order never reached the
// physical flow; a terminal record is left untouched.
func cancelTracking(ctx context.Context, repo ports.TrackingRepository, orderID kernel.UUID) error {
	tr, err := repo.Get(ctx, orderID)
	if err != nil {
		if errors.Is(err, errs.ErrObjectNotFound) {
			return nil
		}
		return err
	}

	if tr.Status().IsTerminal() {
		return nil
	}

	if err = tr.Cancel(); err != nil {
		return err
	}

	return repo.Update(ctx, tr)
}
