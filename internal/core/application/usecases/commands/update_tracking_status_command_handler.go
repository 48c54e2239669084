package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/actor"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/notification"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
)

// UpdateTrackingStatusCommandHandler advances the physical delivery state
// and mirrors it onto the order's business state in one transaction:
// a ready report readies the order, a pickup starts the delivery, a
// delivered report completes the order and credits the driver. Driver
// clients do not always report every stage, so the mirroring works from
// whatever status the order is currently in.
type UpdateTrackingStatusCommandHandler struct {
	uowFactory   UoWFactory
	stateMachine services.OrderStateMachine
	publisher    ports.EventPublisher
	stream       ports.OrderStreamPublisher
}

// NewUpdateTrackingStatusCommandHandler creates a handler for tracking
// status reports.
func NewUpdateTrackingStatusCommandHandler(
	uowFactory UoWFactory,
	publisher ports.EventPublisher,
	stream ports.OrderStreamPublisher,
) UpdateTrackingStatusCommandHandler {
	return UpdateTrackingStatusCommandHandler{
		uowFactory:   uowFactory,
		stateMachine: services.NewOrderStateMachine(),
		publisher:    publisher,
		stream:       stream,
	}
}

// Handle processes the tracking status report.
func (h *UpdateTrackingStatusCommandHandler) Handle(ctx context.Context, cmd UpdateTrackingStatusCommand) error {
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

	trackingRepo := uow.TrackingRepository()
	tr, err := trackingRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	driverRepo := uow.DriverRepository()
	actingDriverID, err := resolveActingDriver(ctx, driverRepo, cmd.Actor())
	if err != nil {
		return err
	}

	if err = h.stateMachine.AuthorizeTrackingAdvance(cmd.Actor(), tr, actingDriverID); err != nil {
		return err
	}

	if cmd.Target() == tracking.Cancelled {
		err = tr.Cancel()
	} else {
		err = tr.Advance(cmd.Target())
	}
	if err != nil {
		return err
	}

	if cmd.Notes() != "" {
		tr.SetNotes(cmd.Notes())
	}
	if cmd.ETA() != nil {
		tr.SetEstimatedDeliveryTime(*cmd.ETA())
	}

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	loadedStatus := o.Status()
	if err = mirrorToOrder(o, cmd.Target()); err != nil {
		return err
	}

	if cmd.Target() == tracking.Delivered && tr.Driver() != nil {
		if err = creditDriver(ctx, driverRepo, *tr.Driver()); err != nil {
			return err
		}
	}

	if err = trackingRepo.Update(ctx, tr); err != nil {
		return err
	}

	if err = orderRepo.UpdateGuarded(ctx, o, loadedStatus); err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.stream.PublishOrderEvent(cmd.OrderID(), "order-status-update", map[string]any{
		"order_id":        cmd.OrderID().String(),
		"tracking_status": tr.Status().String(),
		"order_status":    o.Status().String(),
		"notes":           tr.Notes(),
	})

	if eventType, ok := trackingEventTypes()[cmd.Target()]; ok {
		publishOrderEvent(ctx, h.publisher, eventType, o, map[string]any{
			"tracking_status": tr.Status().String(),
		})
	}

	return nil
}

// resolveActingDriver maps a driver actor to its driver record so the
// state machine can match it against the tracking binding. Staff and
// admin actors act on their role alone.
func resolveActingDriver(
	ctx context.Context,
	repo ports.DriverRepository,
	act actor.Actor,
) (*kernel.UUID, error) {
	if !act.Is(actor.RoleDriver) {
		return nil, nil
	}

	d, err := repo.GetByUserID(ctx, act.ID())
	if err != nil {
		return nil, err
	}

	id := d.ID()
	return &id, nil
}

// mirrorToOrder applies the business-side consequence of a physical
// status change. Skipped stages are replayed: an order still Ready when
// the package is delivered passes through OutForDelivery on the way to
// Completed.
func mirrorToOrder(o *order.Order, target tracking.Status) error {
	switch target {
	case tracking.Ready:
		if o.Status().CanTransitionTo(order.Ready) {
			return o.MarkReady()
		}
	case tracking.PickedUp, tracking.InTransit:
		if o.Status() == order.Ready {
			return o.StartDelivery()
		}
	case tracking.Delivered:
		if o.Status() == order.Ready {
			if err := o.StartDelivery(); err != nil {
				return err
			}
		}
		return o.Complete()
	case tracking.Cancelled:
		if !o.Status().IsTerminal() {
			return o.Cancel()
		}
	}

	return nil
}

// creditDriver increments the bound driver's delivery count. Availability
// stays as the driver left it.
func creditDriver(ctx context.Context, repo ports.DriverRepository, driverID kernel.UUID) error {
	d, err := repo.Get(ctx, driverID)
	if err != nil {
		return err
	}

	d.CompleteDelivery()
	return repo.Update(ctx, d)
}

func trackingEventTypes() map[tracking.Status]notification.EventType {
	return map[tracking.Status]notification.EventType{
		tracking.Ready:     notification.EventOrderReady,
		tracking.PickedUp:  notification.EventOrderPickedUp,
		tracking.InTransit: notification.EventOrderInTransit,
		tracking.Delivered: notification.EventOrderDelivered,
		tracking.Cancelled: notification.EventOrderCancelled,
	}
}
