package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/ports"
)

// presenceTTL is how long a heartbeat keeps a driver in the online set.
// Driver clients heartbeat on a shorter interval; a client that crashes
// or loses connectivity expires out of the pool within this window.
const presenceTTL = 90 * time.Second

// UpdateDriverAvailabilityCommandHandler persists a driver's availability
// flags and keeps the presence store in step: going online refreshes the
// heartbeat entry, going offline removes it immediately. Orders the
// driver is currently delivering get a live status update either way.
type UpdateDriverAvailabilityCommandHandler struct {
	uowFactory UoWFactory
	presence   ports.PresenceStore
	stream     ports.OrderStreamPublisher
}

// NewUpdateDriverAvailabilityCommandHandler creates a handler for driver
// availability updates.
func NewUpdateDriverAvailabilityCommandHandler(
	uowFactory UoWFactory,
	presence ports.PresenceStore,
	stream ports.OrderStreamPublisher,
) UpdateDriverAvailabilityCommandHandler {
	return UpdateDriverAvailabilityCommandHandler{
		uowFactory: uowFactory,
		presence:   presence,
		stream:     stream,
	}
}

// Handle processes the availability update.
func (h *UpdateDriverAvailabilityCommandHandler) Handle(ctx context.Context, cmd UpdateDriverAvailabilityCommand) error {
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

	d.SetOnline(cmd.IsOnline())
	if err = d.SetAvailable(cmd.IsAvailable()); err != nil {
		return err
	}

	if err = driverRepo.Update(ctx, d); err != nil {
		return err
	}

	active, err := uow.TrackingRepository().GetActiveByDriver(ctx, d.ID())
	if err != nil {
		return err
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, tr := range active {
		h.stream.PublishOrderEvent(tr.OrderID(), "driver-status-update", map[string]any{
			"driver_id":    d.ID().String(),
			"is_online":    d.IsOnline(),
			"is_available": d.IsAvailable(),
		})
	}

	if cmd.IsOnline() {
		return h.presence.Heartbeat(ctx, d.ID(), presenceTTL)
	}
	return h.presence.Remove(ctx, d.ID())
}
