package commands

import (
	"context"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// AcceptOrderCommandHandler moves a pending order into preparation.
// Authority is checked by the state machine; persistence is guarded by
// the status the order had when it was loaded, so two staff consoles
// racing on the same order produce exactly one acceptance.
type AcceptOrderCommandHandler struct {
	uowFactory   OrderUoWFactory
	stateMachine services.OrderStateMachine
	publisher    ports.EventPublisher
}

// NewAcceptOrderCommandHandler creates a handler for staff order acceptance.
func NewAcceptOrderCommandHandler(
	uowFactory OrderUoWFactory,
	publisher ports.EventPublisher,
) AcceptOrderCommandHandler {
	return AcceptOrderCommandHandler{
		uowFactory:   uowFactory,
		stateMachine: services.NewOrderStateMachine(),
		publisher:    publisher,
	}
}

// Handle processes the acceptance command.
func (h *AcceptOrderCommandHandler) Handle(ctx context.Context, cmd AcceptOrderCommand) error {
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

	if err = h.stateMachine.AuthorizeOrderTransition(cmd.Actor(), o, order.Preparing); err != nil {
		return err
	}

	loadedStatus := o.Status()
	if err = o.Accept(newAcceptanceCode()); err != nil {
		return err
	}

	if err = orderRepo.UpdateGuarded(ctx, o, loadedStatus); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishOrderEvent(ctx, h.publisher, notification.EventOrderAccepted, o, map[string]any{
		"acceptance_code": o.AcceptanceCode(),
		"status":          o.Status().String(),
	})

	return nil
}

// newAcceptanceCode produces the short pickup code printed on the
// customer's receipt. The first UUID segment is enough entropy for a
// per-order artifact.
func newAcceptanceCode() string {
	return strings.ToUpper(strings.SplitN(kernel.NewUUID().String(), "-", 2)[0])
}
