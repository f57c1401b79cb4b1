package ports

import (
	"context"

	"transport-route-service/internal/domain"
)

// SharedCache is an optional second cache tier shared between processes,
// consulted after the in-process LRU misses and before any network call.
// Keys are the already-normalized cache keys of the in-process tier.
type SharedCache interface {
	GetCoordinates(ctx context.Context, key string) (domain.Coordinate, bool, error)
	SetCoordinates(ctx context.Context, key string, c domain.Coordinate) error
	GetDistance(ctx context.Context, key string) (float64, bool, error)
	SetDistance(ctx context.Context, key string, km float64) error
}
