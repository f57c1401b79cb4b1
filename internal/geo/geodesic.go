// Package geo holds pure great-circle math. It performs no I/O and never
// fails for range-valid coordinates.
package geo

import (
	"math"

	"transport-route-service/internal/domain"
)

const earthRadiusKM = 6371.0

// DistanceKM returns the haversine great-circle distance between two
// coordinates in kilometers, ignoring roads.
func DistanceKM(a, b domain.Coordinate) float64 {
	lat1 := toRadians(a.Lat)
	lat2 := toRadians(b.Lat)
	dlat := toRadians(b.Lat - a.Lat)
	dlon := toRadians(b.Lon - a.Lon)

	sinDlat := math.Sin(dlat / 2)
	sinDlon := math.Sin(dlon / 2)
	h := sinDlat*sinDlat + math.Cos(lat1)*math.Cos(lat2)*sinDlon*sinDlon
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKM * c
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180.0
}
