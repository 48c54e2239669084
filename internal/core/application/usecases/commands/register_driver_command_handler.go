package commands

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/pkg/errs"
)

// RegisterDriverCommandHandler creates a driver record for the acting
// user. A user registers at most once; a second registration attempt
// conflicts instead of creating a duplicate.
type RegisterDriverCommandHandler struct {
	uowFactory DriverUoWFactory
}

// NewRegisterDriverCommandHandler creates a handler for driver
// registration.
func NewRegisterDriverCommandHandler(uowFactory DriverUoWFactory) RegisterDriverCommandHandler {
	return RegisterDriverCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the registration.
func (h *RegisterDriverCommandHandler) Handle(ctx context.Context, cmd RegisterDriverCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	vehicle, err := driver.NewVehicle(cmd.VehicleType(), cmd.VehiclePlate(), cmd.VehicleModel())
	if err != nil {
		return err
	}

	newDriver, err := driver.NewDriver(cmd.DriverID(), cmd.Actor().ID(), cmd.Name(), cmd.Phone(), vehicle)
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

	if _, err = driverRepo.GetByUserID(ctx, cmd.Actor().ID()); err == nil {
		return errs.NewPreconditionFailedError("user is already registered as a driver")
	} else if !errors.Is(err, errs.ErrObjectNotFound) {
		return err
	}

	if err = driverRepo.Add(ctx, newDriver); err != nil {
		return err
	}

	return uow.Commit(ctx)
}
