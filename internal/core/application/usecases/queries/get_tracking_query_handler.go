package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/pkg/errs"
)

// GetTrackingQueryHandler reads one tracking record with raw SQL. When
// the row is missing but the order exists, the handler inserts a
// Preparing row and returns it, so the read path repairs gaps left by
// older orders instead of surfacing them.
type GetTrackingQueryHandler struct {
	db *gorm.DB
}

// NewGetTrackingQueryHandler creates a handler for tracking reads.
func NewGetTrackingQueryHandler(db *gorm.DB) GetTrackingQueryHandler {
	return GetTrackingQueryHandler{db: db}
}

// Handle executes the tracking read. Returns ObjectNotFoundError only
// when the order itself does not exist.
func (h GetTrackingQueryHandler) Handle(
	ctx context.Context,
	query GetTrackingQuery,
) (GetTrackingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetTrackingQueryResponse{}, err
	}

	response, found, err := h.read(ctx, query.OrderID())
	if err != nil {
		return GetTrackingQueryResponse{}, err
	}
	if found {
		return response, nil
	}

	if err = h.heal(ctx, query.OrderID()); err != nil {
		return GetTrackingQueryResponse{}, err
	}

	response, found, err = h.read(ctx, query.OrderID())
	if err != nil {
		return GetTrackingQueryResponse{}, err
	}
	if !found {
		return GetTrackingQueryResponse{}, errs.NewObjectNotFoundError(
			"tracking", query.OrderID().String())
	}

	return response, nil
}

func (h GetTrackingQueryHandler) read(
	ctx context.Context,
	orderID kernel.UUID,
) (GetTrackingQueryResponse, bool, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			order_id,
			status,
			driver_id,
			driver_name,
			driver_phone,
			lat,
			lng,
			location_address,
			location_updated_at,
			estimated_delivery,
			delivered_at,
			notes
		FROM trackings
		WHERE order_id = ?
	`, orderID.Bytes()).Rows()
	if err != nil {
		return GetTrackingQueryResponse{}, false, err
	}
	defer rows.Close()

	if !rows.Next() {
		return GetTrackingQueryResponse{}, false, rows.Err()
	}

	var response GetTrackingQueryResponse
	var id uuid.UUID
	var status int
	var driverID *uuid.UUID

	err = rows.Scan(
		&id,
		&status,
		&driverID,
		&response.DriverName,
		&response.DriverPhone,
		&response.Lat,
		&response.Lng,
		&response.LocationAddress,
		&response.LocationUpdatedAt,
		&response.EstimatedDelivery,
		&response.DeliveredAt,
		&response.Notes,
	)
	if err != nil {
		return GetTrackingQueryResponse{}, false, err
	}

	response.OrderID, err = kernel.UUIDFromBytes(id[:])
	if err != nil {
		return GetTrackingQueryResponse{}, false, err
	}

	if driverID != nil {
		dID, idErr := kernel.UUIDFromBytes((*driverID)[:])
		if idErr != nil {
			return GetTrackingQueryResponse{}, false, idErr
		}
		response.DriverID = &dID
	}

	response.Status = tracking.Status(status).String()

	return response, true, rows.Err()
}

// heal inserts a Preparing row for an order that has none. The order
// must exist; a concurrent heal of the same order is harmless because
// the insert ignores a conflicting row.
func (h GetTrackingQueryHandler) heal(ctx context.Context, orderID kernel.UUID) error {
	var orderCount int64

	err := h.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM orders WHERE id = ?
	`, orderID.Bytes()).Scan(&orderCount).Error
	if err != nil {
		return err
	}
	if orderCount == 0 {
		return errs.NewObjectNotFoundError("order", orderID.String())
	}

	return h.db.WithContext(ctx).Exec(`
		INSERT INTO trackings (order_id, status, driver_name, driver_phone, location_address, notes)
		VALUES (?, ?, '', '', '', '')
		ON CONFLICT (order_id) DO NOTHING
	`, orderID.Bytes(), int(tracking.Preparing)).Error
}
