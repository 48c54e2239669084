package kernel

import (
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrGeoLocationIsNotConstructed indicates a zero-value GeoLocation that
// bypassed NewGeoLocation.
var ErrGeoLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"GeoLocation must be created via NewGeoLocation")

// GeoLocation is a geographic position with an optional human-readable
// address and the moment it was reported. Driver clients report these
// continuously; tracking records keep the latest one.
type GeoLocation struct {
	lat       float64
	lng       float64
	address   string
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewGeoLocation creates a location from WGS84 coordinates.
// Latitude must lie in [-90, 90], longitude in [-180, 180].
func NewGeoLocation(lat, lng float64, address string) (GeoLocation, error) {
	if lat < -90 || lat > 90 {
		return GeoLocation{}, errs.NewValueIsOutOfRangeError("latitude", lat, -90, 90)
	}
	if lng < -180 || lng > 180 {
		return GeoLocation{}, errs.NewValueIsOutOfRangeError("longitude", lng, -180, 180)
	}

	return GeoLocation{
		lat:       lat,
		lng:       lng,
		address:   address,
		updatedAt: time.Now().UTC(),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// RestoreGeoLocation reconstructs a location from persistence,
// keeping the originally reported timestamp.
func RestoreGeoLocation(lat, lng float64, address string, updatedAt time.Time) (GeoLocation, error) {
	loc, err := NewGeoLocation(lat, lng, address)
	if err != nil {
		return GeoLocation{}, err
	}
	loc.updatedAt = updatedAt
	return loc, nil
}

// Lat returns the latitude.
func (l GeoLocation) Lat() float64 { return l.lat }

// Lng returns the longitude.
func (l GeoLocation) Lng() float64 { return l.lng }

// Address returns the human-readable address, possibly empty.
func (l GeoLocation) Address() string { return l.address }

// UpdatedAt returns when the position was reported.
func (l GeoLocation) UpdatedAt() time.Time { return l.updatedAt }

// Validate returns ErrGeoLocationIsNotConstructed for the zero value.
func (l GeoLocation) Validate() error {
	return l.guard.Validate(ErrGeoLocationIsNotConstructed)
}
