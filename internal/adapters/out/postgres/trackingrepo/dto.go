// Package trackingrepo provides data transfer objects and mapping
// functions for tracking persistence. One row per order, keyed by the
// order ID.
package trackingrepo

import (
	"time"

	"github.com/google/uuid"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tracking"
)

// TrackingDTO represents the database structure for persisting tracking
// records. The driver location is embedded; a NULL updated timestamp
// means no location has been reported yet.
type TrackingDTO struct {
	OrderID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Status            int        `gorm:"not null;index"`
	DriverID          *uuid.UUID `gorm:"type:uuid;index"`
	DriverName        string     `gorm:"type:varchar(255)"`
	DriverPhone       string     `gorm:"type:varchar(32)"`
	Lat               *float64
	Lng               *float64
	LocationAddress   string `gorm:"type:varchar(255)"`
	LocationUpdatedAt *time.Time
	EstimatedDelivery *time.Time
	DeliveredAt       *time.Time
	Notes             string `gorm:"type:text"`
}

// TableName overrides GORM's default naming to use "trackings".
func (TrackingDTO) TableName() string {
	return "trackings"
}

// fromDomain converts a tracking record to its database representation.
func fromDomain(aggregate *tracking.Tracking) TrackingDTO {
	var driverID *uuid.UUID
	if id := aggregate.Driver(); id != nil {
		raw := id.Bytes()
		driverID = &raw
	}

	dto := TrackingDTO{
		OrderID:           aggregate.OrderID().Bytes(),
		Status:            int(aggregate.Status()),
		DriverID:          driverID,
		DriverName:        aggregate.DriverName(),
		DriverPhone:       aggregate.DriverPhone(),
		EstimatedDelivery: aggregate.EstimatedDeliveryTime(),
		DeliveredAt:       aggregate.ActualDeliveryTime(),
		Notes:             aggregate.Notes(),
	}

	if loc := aggregate.Location(); loc != nil {
		lat, lng, updatedAt := loc.Lat(), loc.Lng(), loc.UpdatedAt()
		dto.Lat = &lat
		dto.Lng = &lng
		dto.LocationAddress = loc.Address()
		dto.LocationUpdatedAt = &updatedAt
	}

	return dto
}

// toDomain converts a database DTO to a tracking record using RestoreTracking.
func toDomain(dto TrackingDTO) (*tracking.Tracking, error) {
	orderID, err := kernel.UUIDFromBytes(dto.OrderID[:])
	if err != nil {
		return nil, err
	}

	var driverID *kernel.UUID
	if dto.DriverID != nil {
		dID, driverErr := kernel.UUIDFromBytes((*dto.DriverID)[:])
		if driverErr != nil {
			return nil, driverErr
		}
		driverID = &dID
	}

	var location *kernel.GeoLocation
	if dto.Lat != nil && dto.Lng != nil && dto.LocationUpdatedAt != nil {
		loc, locErr := kernel.RestoreGeoLocation(*dto.Lat, *dto.Lng, dto.LocationAddress, *dto.LocationUpdatedAt)
		if locErr != nil {
			return nil, locErr
		}
		location = &loc
	}

	return tracking.RestoreTracking(
		orderID, tracking.Status(dto.Status),
		driverID, dto.DriverName, dto.DriverPhone,
		location, dto.EstimatedDelivery, dto.DeliveredAt, dto.Notes,
	)
}
