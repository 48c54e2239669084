package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/core/ports"
)

// CreateOrderCommandHandler handles order placement. Creates the order
// aggregate together with its tracking record so that every order has
// exactly one tracking row from the start, then notifies the customer.
//
// Example:
//
//	handler := NewCreateOrderCommandHandler(uowFactory, publisher)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("order placement failed: %w", err)
//	}
type CreateOrderCommandHandler struct {
	uowFactory FulfillmentUoWFactory
	publisher  ports.EventPublisher
}

// NewCreateOrderCommandHandler creates a handler for order placement.
func NewCreateOrderCommandHandler(
	uowFactory FulfillmentUoWFactory,
	publisher ports.EventPublisher,
) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
	}
}

// Handle processes the order placement command. Totals are computed by
// the aggregate from the submitted snapshot; the notification publish
// happens only after the transaction commits.
func (h *CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	items := make([]order.LineItem, 0, len(cmd.Items()))
	for _, input := range cmd.Items() {
		unitPrice, err := kernel.NewMoney(input.UnitPriceCents)
		if err != nil {
			return err
		}
		item, err := order.NewLineItem(input.Name, input.Quantity, unitPrice)
		if err != nil {
			return err
		}
		items = append(items, item)
	}

	address, err := order.NewAddress(cmd.Street(), cmd.City(), cmd.PostalCode())
	if err != nil {
		return err
	}

	shippingFee, err := kernel.NewMoney(cmd.ShippingFeeCents())
	if err != nil {
		return err
	}

	newOrder, err := order.NewOrder(
		cmd.OrderID(),
		cmd.CustomerID(),
		items,
		address,
		order.NewContact(cmd.ContactPhone(), cmd.ContactEmail()),
		shippingFee,
		cmd.TaxRate(),
	)
	if err != nil {
		return err
	}

	newTracking, err := tracking.NewTracking(newOrder.ID())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, newOrder); err != nil {
		return err
	}

	if err = uow.TrackingRepository().Add(ctx, newTracking); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	publishOrderEvent(ctx, h.publisher, notification.EventOrderPlaced, newOrder, map[string]any{
		"total":  newOrder.Total().Float64(),
		"status": newOrder.Status().String(),
	})

	return nil
}

// publishOrderEvent publishes a customer-facing transition event. A
// malformed event is silently dropped here; the dispatcher logs it.
func publishOrderEvent(
	ctx context.Context,
	publisher ports.EventPublisher,
	eventType notification.EventType,
	o *order.Order,
	metadata map[string]any,
) {
	recipient := notification.Recipient{
		UserID: o.CustomerID(),
		Phone:  o.Contact().Phone(),
		Email:  o.Contact().Email(),
	}

	event, err := notification.NewEvent(eventType, recipient, o.ID(), metadata)
	if err != nil {
		return
	}

	publisher.Publish(ctx, event)
}
