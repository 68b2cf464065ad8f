package kernel

import (
	"errors"
	"fmt"
	"math"

	"parcelflow/internal/pkg/errs"
	"parcelflow/internal/pkg/guard"
)

const (
	// LocationMinLatitude is the minimum valid latitude in degrees.
	LocationMinLatitude float64 = -90
	// LocationMaxLatitude is the maximum valid latitude in degrees.
	LocationMaxLatitude float64 = 90
	// LocationMinLongitude is the minimum valid longitude in degrees.
	LocationMinLongitude float64 = -180
	// LocationMaxLongitude is the maximum valid longitude in degrees.
	LocationMaxLongitude float64 = 180

	// earthRadiusKm is the mean Earth radius used for great-circle distances.
	earthRadiusKm = 6371.0
)

// ErrLocationIsNotConstructed is returned when attempting to use an improperly
// initialized Location. Locations must be created via NewLocation.
var ErrLocationIsNotConstructed = errs.NewValueIsRequiredError(
	"location must be created via NewLocation constructor")

// Location is an immutable geographic point with validated coordinates.
// The zero value is invalid and fails validation; use NewLocation.
//
// Example:
//
//	loc, err := kernel.NewLocation(48.8566, 2.3522)
//	if err != nil {
//	    // handle validation error
//	}
//	fmt.Println(loc) // Location(48.856600,2.352200)
type Location struct { //nolint:recvcheck //using for validation
	latitude  float64
	longitude float64
	guard     guard.ConstructorGuard
}

// NewLocation creates a Location from latitude and longitude in degrees.
// Latitude must be within [-90, 90] and longitude within [-180, 180];
// a coordinate outside its bounds produces a validation error.
func NewLocation(latitude, longitude float64) (Location, error) {
	loc := Location{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(loc.setLatitude(latitude), loc.setLongitude(longitude)); err != nil {
		return Location{}, err
	}

	return loc, nil
}

// Validate checks that the Location was created through NewLocation.
// The zero value fails with ErrLocationIsNotConstructed.
func (l Location) Validate() error {
	return l.guard.Validate(ErrLocationIsNotConstructed)
}

// Latitude returns the latitude in degrees.
func (l Location) Latitude() float64 {
	return l.latitude
}

// Longitude returns the longitude in degrees.
func (l Location) Longitude() float64 {
	return l.longitude
}

// String implements fmt.Stringer.
func (l Location) String() string {
	return fmt.Sprintf("Location(%f,%f)", l.latitude, l.longitude)
}

// IsEqual compares two locations for coordinate equality.
// Both locations must be properly constructed.
func (l Location) IsEqual(other Location) (bool, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return false, err
	}

	return l == other, nil
}

// DistanceKm calculates the great-circle (haversine) distance to another
// location in kilometers. Both locations must be properly constructed.
//
// Example:
//
//	paris, _ := kernel.NewLocation(48.8566, 2.3522)
//	lyon, _ := kernel.NewLocation(45.7640, 4.8357)
//	km, _ := paris.DistanceKm(lyon) // ~392
func (l Location) DistanceKm(other Location) (float64, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return 0, err
	}

	lat1 := toRadians(l.latitude)
	lat2 := toRadians(other.latitude)
	dLat := toRadians(other.latitude - l.latitude)
	dLon := toRadians(other.longitude - l.longitude)

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return earthRadiusKm * c, nil
}

// InterpolateTo returns the point a fraction of the way from this location to
// other, using linear interpolation of the coordinates. A ratio of 0 yields
// this location, 1 yields other; the ratio is clamped into [0, 1] so callers
// sweeping elapsed time past a step boundary never extrapolate.
func (l Location) InterpolateTo(other Location, ratio float64) (Location, error) {
	if err := errors.Join(l.Validate(), other.Validate()); err != nil {
		return Location{}, err
	}

	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}

	return NewLocation(
		l.latitude+(other.latitude-l.latitude)*ratio,
		l.longitude+(other.longitude-l.longitude)*ratio,
	)
}

// setLatitude sets the latitude with validation.
// Note: pointer receiver on a value-receiver type is intentional, matching the
// self-encapsulated construction pattern used across the domain model.
func (l *Location) setLatitude(latitude float64) error {
	if latitude < LocationMinLatitude || latitude > LocationMaxLatitude {
		return errs.NewValueIsOutOfRangeError("latitude", latitude, LocationMinLatitude, LocationMaxLatitude)
	}

	l.latitude = latitude
	return nil
}

// setLongitude sets the longitude with validation.
func (l *Location) setLongitude(longitude float64) error {
	if longitude < LocationMinLongitude || longitude > LocationMaxLongitude {
		return errs.NewValueIsOutOfRangeError("longitude", longitude, LocationMinLongitude, LocationMaxLongitude)
	}

	l.longitude = longitude
	return nil
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
