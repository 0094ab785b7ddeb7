package domain

import (
	"fmt"
	"math"
)

// earthRadiusKm is the mean Earth radius used by the haversine formula.
const earthRadiusKm = 6371

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// HaversineKm returns the great-circle distance between two points in
// kilometres. Symmetric; zero for identical points.
func HaversineKm(a, b Coordinates) float64 {
	dLat := toRadians(b.Lat - a.Lat)
	dLng := toRadians(b.Lng - a.Lng)
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLng/2)*math.Sin(dLng/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusKm * c
}

func toRadians(degrees float64) float64 {
	return degrees * math.Pi / 180
}

// FormatDistance renders a distance for display: metres below 1 km, one
// decimal place up to 10 km, whole kilometres above.
func FormatDistance(km float64) string {
	if km < 1 {
		return fmt.Sprintf("%d m", int(math.Round(km*1000)))
	}
	if km < 10 {
		return fmt.Sprintf("%.1f km", km)
	}
	return fmt.Sprintf("%d km", int(math.Round(km)))
}

// DistanceStatus tags the outcome of one adjacent-pair distance computation.
// The non-computed outcomes are distinct states, not zero distances.
type DistanceStatus string

const (
	// DistanceComputed means both endpoints resolved and Km/Label are set.
	DistanceComputed DistanceStatus = "computed"
	// DistanceSameLocation means both activities name the exact same
	// location string; no lookup was made.
	DistanceSameLocation DistanceStatus = "same_location"
	// DistanceInsufficientData means at least one activity has an empty or
	// whitespace-only location.
	DistanceInsufficientData DistanceStatus = "insufficient_data"
	// DistanceUnavailable means a coordinate lookup failed for at least one
	// endpoint.
	DistanceUnavailable DistanceStatus = "unavailable"
)

// DistanceLeg is the distance between one adjacent pair of activities in a
// day's list. FromIndex identifies the pair (FromIndex, FromIndex+1).
type DistanceLeg struct {
	FromIndex int            `json:"from_index"`
	Status    DistanceStatus `json:"status"`
	Km        float64        `json:"km,omitempty"`
	Label     string         `json:"label,omitempty"`
}
