package domain

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// ErrCoordinateRange reports a latitude outside [-90, 90] or a longitude
// outside [-180, 180]. Out-of-range values are rejected where they are
// parsed, never clamped.
var ErrCoordinateRange = errors.New("coordinate out of range")

// Immutable geographic coordinates (latitude, longitude).
type Coordinate struct {
	Lat float64
	Lon float64
}

func NewCoordinate(lat, lon float64) (Coordinate, error) {
	c := Coordinate{Lat: lat, Lon: lon}
	if !c.Valid() {
		return Coordinate{}, fmt.Errorf("%w: lat=%v lon=%v", ErrCoordinateRange, lat, lon)
	}
	return c, nil
}

func (c Coordinate) Valid() bool {
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Rounded returns the coordinate rounded to 6 decimal places (about 10 cm),
// the precision used for route cache keys.
func (c Coordinate) Rounded() Coordinate {
	return Coordinate{Lat: round6(c.Lat), Lon: round6(c.Lon)}
}

// Less orders coordinates by latitude, then longitude. Used to build
// direction-independent pair keys.
func (c Coordinate) Less(other Coordinate) bool {
	if c.Lat != other.Lat {
		return c.Lat < other.Lat
	}
	return c.Lon < other.Lon
}

func (c Coordinate) String() string {
	return strconv.FormatFloat(c.Lat, 'f', -1, 64) + "," + strconv.FormatFloat(c.Lon, 'f', -1, 64)
}

func round6(v float64) float64 {
	return math.Round(v*1e6) / 1e6
}
