package ports

import (
	"context"

	"transport-route-service/internal/domain"
)

// Contract for resolving a free-form address to coordinates.
type Geocoder interface {
	// Geocode returns the best-match coordinate for the address. The
	// second return is false when the service found no match; errors are
	// reserved for transport and service failures.
	Geocode(ctx context.Context, address string) (domain.Coordinate, bool, error)
}
