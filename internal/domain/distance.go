package domain

// DistanceSource records how a distance was obtained. The route cache does
// not store provenance, so a cache hit reports SourceCache rather than
// claiming routed or geodesic.
type DistanceSource string

const (
	SourceRouted   DistanceSource = "routed"
	SourceGeodesic DistanceSource = "geodesic"
	SourceCache    DistanceSource = "cache"
)

// DistanceResult is a resolved travel distance in kilometers. Callers may
// treat geodesic values as estimates rather than authoritative road
// distances.
type DistanceResult struct {
	KM     float64
	Source DistanceSource
}
