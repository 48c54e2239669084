package trackingrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/pkg/errs"
)

// GormTrackingRepository implements TrackingRepository using GORM.
type GormTrackingRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormTrackingRepository creates a new GORM tracking repository.
func NewGormTrackingRepository(db *gorm.DB, tracker aggregateTracker) *GormTrackingRepository {
	return &GormTrackingRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new tracking record to the database.
func (r *GormTrackingRepository) Add(ctx context.Context, aggregate *tracking.Tracking) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.OrderID(), aggregate)
	return nil
}

// Update saves an existing tracking record to the database. Uses a column
// map so cleared optional fields are written as NULL.
func (r *GormTrackingRepository) Update(ctx context.Context, aggregate *tracking.Tracking) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&TrackingDTO{}).
		Where("order_id = ?", dto.OrderID).
		Updates(map[string]any{
			"status":              dto.Status,
			"driver_id":           dto.DriverID,
			"driver_name":         dto.DriverName,
			"driver_phone":        dto.DriverPhone,
			"lat":                 dto.Lat,
			"lng":                 dto.Lng,
			"location_address":    dto.LocationAddress,
			"location_updated_at": dto.LocationUpdatedAt,
			"estimated_delivery":  dto.EstimatedDelivery,
			"delivered_at":        dto.DeliveredAt,
			"notes":               dto.Notes,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.OrderID(), aggregate)
	return nil
}

// BindDriver writes the driver columns with a conditional update: the row
// must still be Ready with an empty driver slot. Exactly one driver can
// win this write; everyone else gets ErrPreconditionFailed.
func (r *GormTrackingRepository) BindDriver(ctx context.Context, aggregate *tracking.Tracking) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if aggregate.Driver() == nil {
		return errs.NewValueIsRequiredError("driver")
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&TrackingDTO{}).
		Where("order_id = ? AND status = ? AND driver_id IS NULL", dto.OrderID, int(tracking.Ready)).
		Updates(map[string]any{
			"status":       dto.Status,
			"driver_id":    dto.DriverID,
			"driver_name":  dto.DriverName,
			"driver_phone": dto.DriverPhone,
		})
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewPreconditionFailedError("order is no longer open for acceptance")
	}

	r.tracker.TrackAggregate(aggregate.OrderID(), aggregate)
	return nil
}

// Get retrieves the tracking record for an order.
func (r *GormTrackingRepository) Get(ctx context.Context, orderID kernel.UUID) (*tracking.Tracking, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dto TrackingDTO
	if err := r.db.WithContext(ctx).First(&dto, "order_id = ?", orderID.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("tracking", orderID.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetActiveByDriver retrieves the driver's non-terminal tracking records.
func (r *GormTrackingRepository) GetActiveByDriver(ctx context.Context, driverID kernel.UUID) ([]*tracking.Tracking, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	var dtos []TrackingDTO
	err := r.db.WithContext(ctx).
		Find(&dtos, "driver_id = ? AND status NOT IN ?",
			driverID.Bytes(), []int{int(tracking.Delivered), int(tracking.Cancelled)}).Error
	if err != nil {
		return nil, err
	}

	records := make([]*tracking.Tracking, 0, len(dtos))
	for _, dto := range dtos {
		tr, trErr := toDomain(dto)
		if trErr != nil {
			return nil, trErr
		}
		records = append(records, tr)
	}

	return records, nil
}
