package kernel

import (
	"errors"
	"fmt"

	"terabia/internal/pkg/errs"
	"terabia/internal/pkg/guard"
)

const (
	// LatitudeMin is the minimum valid latitude in decimal degrees.
	LatitudeMin float64 = -90
	// LatitudeMax is the maximum valid latitude in decimal degrees.
	LatitudeMax float64 = 90
	// LongitudeMin is the minimum valid longitude in decimal degrees.
	LongitudeMin float64 = -180
	// LongitudeMax is the maximum valid longitude in decimal degrees.
	LongitudeMax float64 = 180
)

// ErrCoordsAreNotConstructed is returned when validating a zero-value Coords.
var ErrCoordsAreNotConstructed = errs.NewValueIsRequiredError(
	"coords must be created via NewCoords constructor")

// Coords is an immutable pair of geographic coordinates attached to an
// order's delivery destination. The zero value is invalid; orders without
// coordinates carry no Coords at all rather than a zero pair.
//
// Example:
//
//	coords, err := kernel.NewCoords(6.1319, 1.2228) // Lomé
//	if err != nil {
//	    // handle validation error
//	}
type Coords struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64

	guard guard.ConstructorGuard
}

// NewCoords creates validated geographic coordinates.
// Latitude must be within [-90, 90] and longitude within [-180, 180].
func NewCoords(latitude, longitude float64) (Coords, error) {
	coords := Coords{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		coords.setLatitude(latitude),
		coords.setLongitude(longitude),
	); err != nil {
		return Coords{}, err
	}

	return coords, nil
}

// Latitude returns the latitude in decimal degrees.
func (c Coords) Latitude() float64 {
	return c.latitude
}

// Longitude returns the longitude in decimal degrees.
func (c Coords) Longitude() float64 {
	return c.longitude
}

// IsEqual reports whether two coordinate pairs are identical.
func (c Coords) IsEqual(other Coords) bool {
	return c.latitude == other.latitude && c.longitude == other.longitude
}

// String renders the pair as "lat,lon" for logs.
func (c Coords) String() string {
	return fmt.Sprintf("%g,%g", c.latitude, c.longitude)
}

// Validate ensures the Coords were created via NewCoords.
func (c Coords) Validate() error {
	return c.guard.Validate(ErrCoordsAreNotConstructed)
}

func (c *Coords) setLatitude(latitude float64) error {
	if latitude < LatitudeMin || latitude > LatitudeMax {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LatitudeMin, LatitudeMax)
	}
	c.latitude = latitude
	return nil
}

func (c *Coords) setLongitude(longitude float64) error {
	if longitude < LongitudeMin || longitude > LongitudeMax {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LongitudeMin, LongitudeMax)
	}
	c.longitude = longitude
	return nil
}
