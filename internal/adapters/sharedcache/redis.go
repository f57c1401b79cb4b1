// Package sharedcache implements the optional Redis-backed second cache
// tier shared across processes.
package sharedcache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"transport-route-service/internal/domain"
)

const defaultTTL = 24 * time.Hour

// RedisCache stores normalized-key geocode and route entries as plain
// string values with a TTL so the shared tier cannot grow unbounded.
type RedisCache struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

func NewRedisCache(client redis.Cmdable, prefix string, ttl time.Duration) *RedisCache {
	if prefix == "" {
		prefix = "resolve:"
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisCache{client: client, prefix: prefix, ttl: ttl}
}

func (c *RedisCache) GetCoordinates(ctx context.Context, key string) (domain.Coordinate, bool, error) {
	raw, err := c.client.Get(ctx, c.prefix+"geo:"+key).Result()
	if errors.Is(err, redis.Nil) {
		return domain.Coordinate{}, false, nil
	}
	if err != nil {
		return domain.Coordinate{}, false, fmt.Errorf("redis get geocode: %w", err)
	}

	coord, err := parseCoordinate(raw)
	if err != nil {
		return domain.Coordinate{}, false, fmt.Errorf("redis geocode entry %q: %w", raw, err)
	}
	return coord, true, nil
}

func (c *RedisCache) SetCoordinates(ctx context.Context, key string, coord domain.Coordinate) error {
	if err := c.client.Set(ctx, c.prefix+"geo:"+key, coord.String(), c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set geocode: %w", err)
	}
	return nil
}

func (c *RedisCache) GetDistance(ctx context.Context, key string) (float64, bool, error) {
	raw, err := c.client.Get(ctx, c.prefix+"dist:"+key).Result()
	if errors.Is(err, redis.Nil) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("redis get distance: %w", err)
	}

	km, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false, fmt.Errorf("redis distance entry %q: %w", raw, err)
	}
	return km, true, nil
}

func (c *RedisCache) SetDistance(ctx context.Context, key string, km float64) error {
	v := strconv.FormatFloat(km, 'f', -1, 64)
	if err := c.client.Set(ctx, c.prefix+"dist:"+key, v, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set distance: %w", err)
	}
	return nil
}

func parseCoordinate(raw string) (domain.Coordinate, error) {
	parts := strings.SplitN(raw, ",", 2)
	if len(parts) != 2 {
		return domain.Coordinate{}, errors.New("expected lat,lon")
	}
	lat, err := strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return domain.Coordinate{}, err
	}
	lon, err := strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return domain.Coordinate{}, err
	}
	return domain.NewCoordinate(lat, lon)
}
