package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// GetAvailableOrdersQueryHandler retrieves unclaimed ready orders from
// the database. Oldest orders come first so the queue drains fairly.
type GetAvailableOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetAvailableOrdersQueryHandler creates a handler for the unclaimed
// ready order listing.
func NewGetAvailableOrdersQueryHandler(db *gorm.DB) GetAvailableOrdersQueryHandler {
	return GetAvailableOrdersQueryHandler{db: db}
}

// Handle executes the query.
func (h GetAvailableOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableOrdersQuery,
) ([]GetAvailableOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetAvailableOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			o.id,
			o.street,
			o.city,
			o.postal_code,
			(SELECT COUNT(*) FROM order_line_items i WHERE i.order_id = o.id),
			o.total_cents,
			o.placed_at
		FROM orders o
		WHERE o.status = ? AND o.driver_id IS NULL
		ORDER BY o.placed_at
	`, order.Ready).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetAvailableOrdersQueryResponse
		var id uuid.UUID

		err = rows.Scan(
			&id,
			&response.Street,
			&response.City,
			&response.PostalCode,
			&response.ItemCount,
			&response.TotalCents,
			&response.PlacedAt,
		)
		if err != nil {
			return nil, err
		}

		orderID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = orderID

		orders = append(orders, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
