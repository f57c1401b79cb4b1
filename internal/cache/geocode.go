package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"transport-route-service/internal/domain"
)

// maxPlainKeyLen bounds address key size; longer keys are content-hashed.
const maxPlainKeyLen = 100

// GeocodeCache maps normalized address strings to coordinates. It is a
// pure cache of results and performs no geocoding itself.
type GeocodeCache struct {
	lru *LRU[string, domain.Coordinate]
}

func NewGeocodeCache(capacity int) *GeocodeCache {
	return &GeocodeCache{lru: NewLRU[string, domain.Coordinate](capacity)}
}

// AddressKey normalizes an address to its cache key: lower-cased with
// whitespace collapsed, hashed when long so keys stay bounded while
// remaining deterministic for identical input.
func AddressKey(address string) string {
	normalized := strings.Join(strings.Fields(strings.ToLower(address)), " ")
	if len(normalized) > maxPlainKeyLen {
		sum := sha256.Sum256([]byte(normalized))
		return "addr_" + hex.EncodeToString(sum[:])
	}
	return "addr_" + normalized
}

func (c *GeocodeCache) GetCoordinates(address string) (domain.Coordinate, bool) {
	coord, ok := c.lru.Get(AddressKey(address))
	observe("geocode", ok)
	return coord, ok
}

func (c *GeocodeCache) SetCoordinates(address string, coord domain.Coordinate) {
	c.lru.Set(AddressKey(address), coord)
}

func (c *GeocodeCache) Contains(address string) bool { return c.lru.Contains(AddressKey(address)) }
func (c *GeocodeCache) Len() int                     { return c.lru.Len() }
func (c *GeocodeCache) Clear()                       { c.lru.Clear() }
func (c *GeocodeCache) Stats() Stats                 { return c.lru.Stats() }
