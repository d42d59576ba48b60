package kernel

import (
	"fmt"
	"math"

	"buildconnect/internal/pkg/errs"

	"buildconnect/internal/pkg/guard"
)

const (
	// GeoMinLatitude is the minimum valid latitude in degrees.
	GeoMinLatitude = -90.0
	// GeoMaxLatitude is the maximum valid latitude in degrees.
	GeoMaxLatitude = 90.0
	// GeoMinLongitude is the minimum valid longitude in degrees.
	GeoMinLongitude = -180.0
	// GeoMaxLongitude is the maximum valid longitude in degrees.
	GeoMaxLongitude = 180.0

	// earthRadiusKm is the mean Earth radius used by the haversine formula.
	earthRadiusKm = 6371.0
)

// ErrGeoPointIsNotConstructed is returned when using an improperly initialized GeoPoint.
// GeoPoints must be created via NewGeoPoint or NairobiCBD to ensure coordinate validity.
var ErrGeoPointIsNotConstructed = errs.NewValueIsRequiredError(
	"geo point must be created via NewGeoPoint or NairobiCBD constructors")

// GeoPoint is an immutable value object holding a validated WGS84 coordinate
// pair. It backs pickup and delivery locations on requests and the registered
// location of each delivery provider.
//
// The zero value is invalid and fails Validate; use the constructors.
//
// Example:
//
//	pickup, err := kernel.NewGeoPoint(-1.2921, 36.8219)
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Printf("pickup: %s", pickup) // GeoPoint(-1.292100, 36.821900)
type GeoPoint struct { //nolint:recvcheck //using for validation
	lat   float64
	lng   float64
	guard guard.ConstructorGuard
}

// NewGeoPoint creates a GeoPoint with the given latitude and longitude in
// degrees. Returns a ValueIsOutOfRangeError if either coordinate is outside
// its valid range.
func NewGeoPoint(lat, lng float64) (GeoPoint, error) {
	point := GeoPoint{
		guard: guard.NewConstructorGuard(),
	}

	if err := point.setLatitude(lat); err != nil {
		return GeoPoint{}, err
	}
	if err := point.setLongitude(lng); err != nil {
		return GeoPoint{}, err
	}

	return point, nil
}

// NairobiCBD returns the fixed city-center coordinate used as the soft-fail
// fallback when a request carries no usable geodata. Callers are expected to
// flag the substitution so data-quality problems stay visible.
func NairobiCBD() GeoPoint {
	return GeoPoint{
		lat:   -1.2921,
		lng:   36.8219,
		guard: guard.NewConstructorGuard(),
	}
}

// Latitude returns the latitude in degrees.
func (p GeoPoint) Latitude() float64 {
	return p.lat
}

// Longitude returns the longitude in degrees.
func (p GeoPoint) Longitude() float64 {
	return p.lng
}

// IsEqual compares two GeoPoints for exact coordinate equality.
func (p GeoPoint) IsEqual(other GeoPoint) bool {
	return p.lat == other.lat && p.lng == other.lng
}

// DistanceKmTo returns the great-circle distance to another point in
// kilometers, computed with the haversine formula.
func (p GeoPoint) DistanceKmTo(other GeoPoint) float64 {
	latFrom := p.lat * math.Pi / 180
	latTo := other.lat * math.Pi / 180
	dLat := (other.lat - p.lat) * math.Pi / 180
	dLng := (other.lng - p.lng) * math.Pi / 180

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latFrom)*math.Cos(latTo)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c
}

// String implements fmt.Stringer.
func (p GeoPoint) String() string {
	return fmt.Sprintf("GeoPoint(%f, %f)", p.lat, p.lng)
}

// Validate ensures the GeoPoint was created through a constructor.
func (p GeoPoint) Validate() error {
	return p.guard.Validate(ErrGeoPointIsNotConstructed)
}

func (p *GeoPoint) setLatitude(lat float64) error {
	if lat < GeoMinLatitude || lat > GeoMaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", lat, GeoMinLatitude, GeoMaxLatitude)
	}

	p.lat = lat
	return nil
}

func (p *GeoPoint) setLongitude(lng float64) error {
	if lng < GeoMinLongitude || lng > GeoMaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", lng, GeoMinLongitude, GeoMaxLongitude)
	}

	p.lng = lng
	return nil
}
