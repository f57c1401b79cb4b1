package cache

import (
	"strconv"

	"transport-route-service/internal/domain"
)

// RouteCache maps an unordered coordinate pair to a resolved distance in
// kilometers. It stores whichever distance was last computed for the pair
// and does not record provenance.
type RouteCache struct {
	lru *LRU[string, float64]
}

func NewRouteCache(capacity int) *RouteCache {
	return &RouteCache{lru: NewLRU[string, float64](capacity)}
}

// RouteKey builds the direction-independent key for a coordinate pair:
// both ends rounded to 6 decimal places, then sorted so A→B and B→A land
// on the same entry.
func RouteKey(a, b domain.Coordinate) string {
	ra, rb := a.Rounded(), b.Rounded()
	if rb.Less(ra) {
		ra, rb = rb, ra
	}
	return "route_" + formatPoint(ra) + "_to_" + formatPoint(rb)
}

func formatPoint(c domain.Coordinate) string {
	return strconv.FormatFloat(c.Lat, 'f', 6, 64) + "," + strconv.FormatFloat(c.Lon, 'f', 6, 64)
}

func (c *RouteCache) GetDistance(a, b domain.Coordinate) (float64, bool) {
	km, ok := c.lru.Get(RouteKey(a, b))
	observe("route", ok)
	return km, ok
}

func (c *RouteCache) SetDistance(a, b domain.Coordinate, km float64) {
	c.lru.Set(RouteKey(a, b), km)
}

func (c *RouteCache) Len() int     { return c.lru.Len() }
func (c *RouteCache) Clear()       { c.lru.Clear() }
func (c *RouteCache) Stats() Stats { return c.lru.Stats() }
