package queries

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
)

// GetAvailableDriversQueryHandler retrieves the dispatchable driver
// pool. The database narrows to approved, online, available drivers;
// the presence store then drops any whose heartbeat has expired.
type GetAvailableDriversQueryHandler struct {
	db       *gorm.DB
	presence ports.PresenceStore
}

// NewGetAvailableDriversQueryHandler creates a handler for the
// dispatchable driver listing.
func NewGetAvailableDriversQueryHandler(
	db *gorm.DB,
	presence ports.PresenceStore,
) GetAvailableDriversQueryHandler {
	return GetAvailableDriversQueryHandler{db: db, presence: presence}
}

// Handle executes the query. Drivers come back highest rated first.
func (h GetAvailableDriversQueryHandler) Handle(
	ctx context.Context,
	query GetAvailableDriversQuery,
) ([]GetAvailableDriversQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	candidates := make([]GetAvailableDriversQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			user_id,
			name,
			phone,
			vehicle_kind,
			rating,
			delivery_count,
			lat,
			lng
		FROM drivers
		WHERE status = ? AND is_online AND is_available
		ORDER BY rating DESC, delivery_count DESC
	`, driver.StatusApproved.String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var response GetAvailableDriversQueryResponse
		var id, userID uuid.UUID

		err = rows.Scan(
			&id,
			&userID,
			&response.Name,
			&response.Phone,
			&response.VehicleKind,
			&response.Rating,
			&response.DeliveryCount,
			&response.Lat,
			&response.Lng,
		)
		if err != nil {
			return nil, err
		}

		driverID, idErr := kernel.UUIDFromBytes(id[:])
		if idErr != nil {
			return nil, idErr
		}
		response.ID = driverID

		accountID, idErr := kernel.UUIDFromBytes(userID[:])
		if idErr != nil {
			return nil, idErr
		}
		response.UserID = accountID

		candidates = append(candidates, response)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	available := make([]GetAvailableDriversQueryResponse, 0, len(candidates))
	for _, candidate := range candidates {
		online, presenceErr := h.presence.IsOnline(ctx, candidate.ID)
		if presenceErr != nil {
			return nil, presenceErr
		}
		if online {
			available = append(available, candidate)
		}
	}

	return available, nil
}
