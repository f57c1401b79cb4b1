package domain

import (
	"errors"
	"testing"
)

func TestNewCoordinateRejectsOutOfRange(t *testing.T) {
	cases := []struct{ lat, lon float64 }{
		{91, 0},
		{-91, 0},
		{0, 181},
		{0, -181},
	}
	for _, tc := range cases {
		if _, err := NewCoordinate(tc.lat, tc.lon); !errors.Is(err, ErrCoordinateRange) {
			t.Fatalf("expected ErrCoordinateRange for (%v, %v), got %v", tc.lat, tc.lon, err)
		}
	}

	// Boundary values are valid.
	for _, tc := range []struct{ lat, lon float64 }{{90, 180}, {-90, -180}, {0, 0}} {
		if _, err := NewCoordinate(tc.lat, tc.lon); err != nil {
			t.Fatalf("expected (%v, %v) to be valid: %v", tc.lat, tc.lon, err)
		}
	}
}

func TestCoordinateRounded(t *testing.T) {
	c := Coordinate{Lat: 55.67609812, Lon: 12.56833749}
	r := c.Rounded()
	if r.Lat != 55.676098 || r.Lon != 12.568337 {
		t.Fatalf("unexpected rounding: %v", r)
	}
}

func TestCoordinateLess(t *testing.T) {
	a := Coordinate{Lat: 55, Lon: 12}
	b := Coordinate{Lat: 56, Lon: 10}
	if !a.Less(b) || b.Less(a) {
		t.Fatalf("expected ordering by latitude first")
	}

	c := Coordinate{Lat: 55, Lon: 13}
	if !a.Less(c) || c.Less(a) {
		t.Fatalf("expected longitude tiebreak")
	}
	if a.Less(a) {
		t.Fatalf("a coordinate must not order before itself")
	}
}

func TestFacilityFullAddress(t *testing.T) {
	f := Facility{Address: "Rugvænget 18", PostalCode: "8444", City: "Grenå"}
	if got := f.FullAddress(); got != "Rugvænget 18, 8444 Grenå" {
		t.Fatalf("unexpected full address: %q", got)
	}

	f = Facility{Address: "Rugvænget 18"}
	if got := f.FullAddress(); got != "Rugvænget 18" {
		t.Fatalf("unexpected full address without town: %q", got)
	}
}
