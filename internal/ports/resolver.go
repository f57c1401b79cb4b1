package ports

import (
	"context"

	"transport-route-service/internal/domain"
)

// DistanceResolver is the engine contract consumed by the HTTP surface.
type DistanceResolver interface {
	// ResolveDistance resolves two raw location tokens to a travel
	// distance in kilometers, or an error attributable to one side.
	ResolveDistance(ctx context.Context, origin, destination string) (domain.DistanceResult, error)
}
