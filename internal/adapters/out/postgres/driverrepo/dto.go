// Package driverrepo provides data transfer objects and mapping functions
// for driver persistence.
package driverrepo

import (
	"time"

	"github.com/google/uuid"

	"fulfillment/internal/core/domain/model/driver"
	"fulfillment/internal/core/domain/model/kernel"
)

// DriverDTO represents the database structure for persisting driver
// profiles. Approval status is stored as its wire string so rows stay
// readable in the database.
type DriverDTO struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	Name              string    `gorm:"type:varchar(255);not null"`
	Phone             string    `gorm:"type:varchar(32);not null"`
	VehicleKind       string    `gorm:"type:varchar(64);not null"`
	VehiclePlate      string    `gorm:"type:varchar(32)"`
	VehicleModel      string    `gorm:"type:varchar(255)"`
	Status            string    `gorm:"type:varchar(32);not null;index"`
	IsOnline          bool      `gorm:"not null"`
	IsAvailable       bool      `gorm:"not null"`
	Lat               *float64
	Lng               *float64
	LocationAddress   string `gorm:"type:varchar(255)"`
	LocationUpdatedAt *time.Time
	Rating            float64 `gorm:"not null"`
	DeliveryCount     int     `gorm:"not null"`
}

// TableName overrides GORM's default naming to use "drivers".
func (DriverDTO) TableName() string {
	return "drivers"
}

// fromDomain converts a driver aggregate to its database representation.
func fromDomain(aggregate *driver.Driver) DriverDTO {
	dto := DriverDTO{
		ID:            aggregate.ID().Bytes(),
		UserID:        aggregate.UserID().Bytes(),
		Name:          aggregate.Name(),
		Phone:         aggregate.Phone(),
		VehicleKind:   aggregate.Vehicle().Kind(),
		VehiclePlate:  aggregate.Vehicle().Plate(),
		VehicleModel:  aggregate.Vehicle().Model(),
		Status:        aggregate.Status().String(),
		IsOnline:      aggregate.IsOnline(),
		IsAvailable:   aggregate.IsAvailable(),
		Rating:        aggregate.Rating(),
		DeliveryCount: aggregate.DeliveryCount(),
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

// toDomain converts a database DTO to a driver aggregate using RestoreDriver.
func toDomain(dto DriverDTO) (*driver.Driver, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	userID, err := kernel.UUIDFromBytes(dto.UserID[:])
	if err != nil {
		return nil, err
	}

	vehicle, err := driver.NewVehicle(dto.VehicleKind, dto.VehiclePlate, dto.VehicleModel)
	if err != nil {
		return nil, err
	}

	status, err := driver.ApprovalStatusFromString(dto.Status)
	if err != nil {
		return nil, err
	}

	var location *kernel.GeoLocation
	if dto.Lat != nil && dto.Lng != nil && dto.LocationUpdatedAt != nil {
		loc, locErr := kernel.RestoreGeoLocation(*dto.Lat, *dto.Lng, dto.LocationAddress, *dto.LocationUpdatedAt)
		if locErr != nil {
			return nil, locErr
		}
		location = &loc
	}

	return driver.RestoreDriver(
		id, userID, dto.Name, dto.Phone, vehicle,
		status, dto.IsOnline, dto.IsAvailable,
		location, dto.Rating, dto.DeliveryCount,
	)
}
