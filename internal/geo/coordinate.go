// Package geo provides coordinate types and great-circle distance math
// for shipment route estimation.
//
// Distances are haversine great-circle distances, used as a proxy for
// actual route distance. Callers that lack coordinates for one or both
// endpoints should not call DistanceKm; the calculation layer substitutes
// a configured fallback distance instead.
package geo

import "math"

// EarthRadiusKm is the mean Earth radius used by the haversine formula.
const EarthRadiusKm = 6371.0

// Coordinate is an immutable geographic point.
//
// Latitude is in [-90, 90] and Longitude in [-180, 180]. The range is an
// invariant owned by whoever produces the coordinate (geocoding, input
// validation); DistanceKm does not re-check it.
type Coordinate struct {
	Latitude  float64 `json:"latitude" yaml:"latitude"`
	Longitude float64 `json:"longitude" yaml:"longitude"`
}

// InRange reports whether the coordinate lies within valid
// latitude/longitude bounds.
func (c Coordinate) InRange() bool {
	return c.Latitude >= -90 && c.Latitude <= 90 &&
		c.Longitude >= -180 && c.Longitude <= 180
}

// DistanceKm returns the great-circle distance between a and b in
// kilometers using the haversine formula.
//
// Identical points yield exactly 0 (h is exactly 0, not a rounding
// artifact). Antipodal points yield ~pi*EarthRadiusKm. The result is
// symmetric in its arguments.
func DistanceKm(a, b Coordinate) float64 {
	dLat := radians(b.Latitude - a.Latitude)
	dLon := radians(b.Longitude - a.Longitude)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)

	h := sinLat*sinLat +
		math.Cos(radians(a.Latitude))*math.Cos(radians(b.Latitude))*sinLon*sinLon

	return 2 * EarthRadiusKm * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
}

// radians converts degrees to radians.
func radians(deg float64) float64 {
	return deg * math.Pi / 180
}
