package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

// UpdateDriverLocationCommandHandler records a driver's position on the
// driver record and on every delivery the driver currently carries, then
// pushes the position into those orders' live rooms. A position report is
// also a liveness signal, so the presence heartbeat is refreshed.
type UpdateDriverLocationCommandHandler struct {
	uowFactory UoWFactory
	presence   ports.PresenceStore
	stream     ports.OrderStreamPublisher
}

// NewUpdateDriverLocationCommandHandler creates a handler for driver
// position reports.
func NewUpdateDriverLocationCommandHandler(
	uowFactory UoWFactory,
	presence ports.PresenceStore,
	stream ports.OrderStreamPublisher,
) UpdateDriverLocationCommandHandler {
	return UpdateDriverLocationCommandHandler{
		uowFactory: uowFactory,
		presence:   presence,
		stream:     stream,
	}
}

// Handle processes the position report.
func (h *UpdateDriverLocationCommandHandler) Handle(ctx context.Context, cmd UpdateDriverLocationCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	location, err := kernel.NewGeoLocation(cmd.Lat(), cmd.Lng(), cmd.Address())
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

	driverRepo := uow.DriverRepository()
	d, err := driverRepo.GetByUserID(ctx, cmd.Actor().ID())
	if err != nil {
		return err
	}

	if err = d.MoveTo(location); err != nil {
		return err
	}

	if err = driverRepo.Update(ctx, d); err != nil {
		return err
	}

	trackingRepo := uow.TrackingRepository()
	active, err := trackingRepo.GetActiveByDriver(ctx, d.ID())
	if err != nil {
		return err
	}

	for _, tr := range active {
		if err = tr.UpdateLocation(location); err != nil {
			return err
		}
		if err = trackingRepo.Update(ctx, tr); err != nil {
			return err
		}
	}

	if err = uow.Commit(ctx); err != nil {
		return err
	}

	for _, tr := range active {
		h.stream.PublishOrderEvent(tr.OrderID(), "driver-location-update", map[string]any{
			"driver_id": d.ID().String(),
			"lat":       location.Lat(),
			"lng":       location.Lng(),
			"address":   location.Address(),
		})
	}

	return h.presence.Heartbeat(ctx, d.ID(), presenceTTL)
}
