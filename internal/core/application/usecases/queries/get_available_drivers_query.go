package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var (
	ErrGetAvailableDriversQueryIsNotConstructed = errors.New(
		"GetAvailableDriversQuery must be created via NewGetAvailableDriversQuery constructor",
	)
)

// GetAvailableDriversQuery retrieves the drivers that can take work
// right now: approved, flagged online and available, and holding a live
// presence entry. A driver whose client crashed still carries the
// online flag in the database, so the presence check is what keeps
// dead connections out of the pool.
type GetAvailableDriversQuery struct {
	guard guard.ConstructorGuard
}

// NewGetAvailableDriversQuery creates a query for the dispatchable
// driver pool.
func NewGetAvailableDriversQuery() GetAvailableDriversQuery {
	return GetAvailableDriversQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetAvailableDriversQuery) Validate() error {
	return q.guard.Validate(ErrGetAvailableDriversQueryIsNotConstructed)
}

// GetAvailableDriversQueryResponse is one dispatchable driver. UserID
// is the driver's account identity, which is what notification
// recipients and websocket rooms are keyed by; ID identifies the
// driver record itself.
type GetAvailableDriversQueryResponse struct {
	ID            kernel.UUID
	UserID        kernel.UUID
	Name          string
	Phone         string
	VehicleKind   string
	Rating        float64
	DeliveryCount int
	Lat           *float64
	Lng           *float64
}
