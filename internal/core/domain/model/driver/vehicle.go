package driver

import (
	"errors"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrVehicleIsNotConstructed is returned when a Vehicle was not created
// through NewVehicle.
var ErrVehicleIsNotConstructed = errors.New("Vehicle must be created via NewVehicle constructor")

// Vehicle is the metadata a driver registers with: kind (bike, scooter,
// car), licence plate and model. Plate may be empty for bikes.
type Vehicle struct {
	kind  string
	plate string
	model string

	guard guard.ConstructorGuard
}

// NewVehicle creates vehicle metadata. Kind is required.
func NewVehicle(kind, plate, model string) (Vehicle, error) {
	if kind == "" {
		return Vehicle{}, errs.NewValueIsRequiredError("vehicle kind")
	}

	return Vehicle{
		kind:  kind,
		plate: plate,
		model: model,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the vehicle was created through the constructor.
func (v Vehicle) Validate() error {
	return v.guard.Validate(ErrVehicleIsNotConstructed)
}

// Kind returns the vehicle category.
func (v Vehicle) Kind() string { return v.kind }

// Plate returns the licence plate, possibly empty.
func (v Vehicle) Plate() string { return v.plate }

// Model returns the vehicle model, possibly empty.
func (v Vehicle) Model() string { return v.model }
