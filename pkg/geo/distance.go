package geo

import "github.com/golang/geo/s2"

// EarthRadiusMeters is the IUGG mean Earth radius.
const EarthRadiusMeters = 6371008.8

// HaversineMeters returns the great-circle distance between two points on a
// spherical Earth. Inputs are degrees.
func HaversineMeters(lat1, lng1, lat2, lng2 float64) float64 {
	angle := s2.LatLngFromDegrees(lat1, lng1).Distance(s2.LatLngFromDegrees(lat2, lng2))
	return angle.Radians() * EarthRadiusMeters
}

// ValidCoordinate reports whether lat/lng are finite and within range. NaN and
// infinities fail the range comparison.
func ValidCoordinate(lat, lng float64) bool {
	return s2.LatLngFromDegrees(lat, lng).IsValid()
}
