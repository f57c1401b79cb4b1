package ports

import (
	"context"

	"transport-route-service/internal/domain"
)

// Contract for retrieving the routed road distance between two points.
type RouteProvider interface {
	// RouteDistance returns the driven distance in kilometers. The second
	// return is false when the service has no usable route for the pair,
	// which is a fallback trigger rather than an error.
	RouteDistance(ctx context.Context, from, to domain.Coordinate) (float64, bool, error)
}
