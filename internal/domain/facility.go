package domain

import (
	"strings"
	"time"
)

// Facility is a known receiver site from the address book, addressable by
// a short opaque identifier.
type Facility struct {
	ID         string
	FacilityID string
	Name       string
	Address    string
	PostalCode string
	City       string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// FullAddress composes the geocodable address line for the facility.
func (f Facility) FullAddress() string {
	parts := make([]string, 0, 2)
	if a := strings.TrimSpace(f.Address); a != "" {
		parts = append(parts, a)
	}
	town := strings.TrimSpace(strings.TrimSpace(f.PostalCode) + " " + strings.TrimSpace(f.City))
	if town != "" {
		parts = append(parts, town)
	}
	return strings.Join(parts, ", ")
}

// Complete reports whether all required fields are present.
func (f Facility) Complete() bool {
	return strings.TrimSpace(f.FacilityID) != "" &&
		strings.TrimSpace(f.Name) != "" &&
		strings.TrimSpace(f.Address) != "" &&
		strings.TrimSpace(f.PostalCode) != "" &&
		strings.TrimSpace(f.City) != ""
}
