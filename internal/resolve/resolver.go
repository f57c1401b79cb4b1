// Package resolve orchestrates distance resolution: token classification,
// directory lookup, cached geocoding, cached routed distance with retry,
// and the geodesic fallback.
package resolve

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"transport-route-service/internal/cache"
	"transport-route-service/internal/domain"
	"transport-route-service/internal/geo"
	"transport-route-service/internal/platform/obs"
	"transport-route-service/internal/ports"
	"transport-route-service/internal/retry"
)

// Deps carries the resolver's collaborators. Directory and Shared are
// optional; caches default to fresh instances when nil so the resolver is
// always usable in tests.
type Deps struct {
	Geocoder  ports.Geocoder
	Router    ports.RouteProvider
	Directory ports.FacilityDirectory

	GeocodeCache *cache.GeocodeCache
	RouteCache   *cache.RouteCache
	Shared       ports.SharedCache

	RoutingRetry retry.Policy
	GeocodeRetry retry.Policy

	Logger *zap.Logger
}

// Resolver implements ports.DistanceResolver. The caches are the only
// shared mutable state; their locks are never held across a network call,
// so two concurrent callers may resolve the same key redundantly and the
// last writer wins.
type Resolver struct {
	geocoder  ports.Geocoder
	router    ports.RouteProvider
	directory ports.FacilityDirectory

	geocodeCache *cache.GeocodeCache
	routeCache   *cache.RouteCache
	shared       ports.SharedCache

	routingRetry retry.Policy
	geocodeRetry retry.Policy

	logger *zap.Logger
	tracer trace.Tracer
}

func New(deps Deps) *Resolver {
	r := &Resolver{
		geocoder:     deps.Geocoder,
		router:       deps.Router,
		directory:    deps.Directory,
		geocodeCache: deps.GeocodeCache,
		routeCache:   deps.RouteCache,
		shared:       deps.Shared,
		routingRetry: deps.RoutingRetry,
		geocodeRetry: deps.GeocodeRetry,
		logger:       deps.Logger,
		tracer:       otel.Tracer("transport-route-service/resolve"),
	}
	if r.geocodeCache == nil {
		r.geocodeCache = cache.NewGeocodeCache(cache.DefaultCapacity)
	}
	if r.routeCache == nil {
		r.routeCache = cache.NewRouteCache(cache.DefaultCapacity)
	}
	if r.routingRetry.MaxAttempts == 0 {
		r.routingRetry = retry.DefaultPolicy()
	}
	if r.geocodeRetry.MaxAttempts == 0 {
		r.geocodeRetry = retry.DefaultPolicy()
	}
	if r.logger == nil {
		r.logger = zap.NewNop()
	}
	return r
}

// ResolveDistance resolves two raw location tokens to a travel distance
// in kilometers. It either returns a positive distance or an error
// attributable to malformed input or a failed endpoint; routing outages
// degrade to the geodesic estimate instead of failing.
func (r *Resolver) ResolveDistance(ctx context.Context, origin, destination string) (domain.DistanceResult, error) {
	ctx, span := r.tracer.Start(ctx, "resolve.distance")
	defer span.End()
	start := time.Now()

	from, err := r.resolveLocation(ctx, origin, SideOrigin)
	if err != nil {
		return domain.DistanceResult{}, err
	}
	to, err := r.resolveLocation(ctx, destination, SideDestination)
	if err != nil {
		return domain.DistanceResult{}, err
	}

	result, err := r.resolvePairDistance(ctx, from, to)
	if err != nil {
		return domain.DistanceResult{}, err
	}

	span.SetAttributes(
		attribute.String("distance.source", string(result.Source)),
		attribute.Float64("distance.km", result.KM),
	)
	resolveDuration.WithLabelValues(string(result.Source)).Observe(time.Since(start).Seconds())
	return result, nil
}

// resolveLocation turns one token into coordinates. Coordinate literals
// are terminal; identifiers go through the directory to an address; a
// missing directory entry falls through to geocoding the raw token.
func (r *Resolver) resolveLocation(ctx context.Context, token string, side Side) (domain.Coordinate, error) {
	loc, err := r.Classify(ctx, token)
	if err != nil {
		return domain.Coordinate{}, &ResolutionError{Side: side, Token: token, Err: err}
	}

	switch loc.Kind {
	case domain.KindCoordinate:
		return loc.Coordinate, nil

	case domain.KindIdentifier:
		address := loc.Raw
		if loc.Facility == nil {
			if f, ok := r.lookupFacility(ctx, loc.Raw); ok {
				loc.Facility = &f
			}
		}
		if loc.Facility != nil {
			address = loc.Facility.FullAddress()
		} else {
			r.logger.Debug("unknown facility identifier, treating as address",
				zap.String("token", loc.Raw))
		}
		return r.geocodeAddress(ctx, address, side)

	default:
		return r.geocodeAddress(ctx, loc.Raw, side)
	}
}

// geocodeAddress consults the in-process cache, then the shared tier,
// then the geocoding service. Every successful resolution populates both
// cache tiers.
func (r *Resolver) geocodeAddress(ctx context.Context, address string, side Side) (_ domain.Coordinate, err error) {
	defer obs.Time(ctx, r.logger, "geocode_address")(&err)

	if coord, ok := r.geocodeCache.GetCoordinates(address); ok {
		return coord, nil
	}

	key := cache.AddressKey(address)
	if r.shared != nil {
		if coord, ok, err := r.shared.GetCoordinates(ctx, key); err != nil {
			r.logger.Warn("shared geocode cache read failed", zap.Error(err))
		} else if ok {
			r.geocodeCache.SetCoordinates(address, coord)
			return coord, nil
		}
	}

	if !domain.PlausibleAddress(address) {
		r.logger.Debug("address fails plausibility pre-check", zap.String("address", address))
	}

	coord, err := retry.Do(ctx, r.geocodeRetry, func(ctx context.Context) (domain.Coordinate, error) {
		c, found, err := r.geocoder.Geocode(ctx, address)
		if err != nil {
			return domain.Coordinate{}, err
		}
		if !found {
			return domain.Coordinate{}, ErrNoMatch
		}
		return c, nil
	})
	if err != nil {
		geocodeCalls.WithLabelValues("error").Inc()
		return domain.Coordinate{}, &ResolutionError{Side: side, Token: address, Err: err}
	}
	if !coord.Valid() {
		geocodeCalls.WithLabelValues("invalid").Inc()
		return domain.Coordinate{}, &ResolutionError{
			Side: side, Token: address,
			Err: fmt.Errorf("geocoder returned %w", domain.ErrCoordinateRange),
		}
	}
	geocodeCalls.WithLabelValues("ok").Inc()

	r.geocodeCache.SetCoordinates(address, coord)
	if r.shared != nil {
		if err := r.shared.SetCoordinates(ctx, key, coord); err != nil {
			r.logger.Warn("shared geocode cache write failed", zap.Error(err))
		}
	}
	return coord, nil
}

// resolvePairDistance runs the distance tiers for two known coordinates:
// route cache, routed call under retry, geodesic. Zero or negative values
// from any tier are invalid and trigger the next one.
func (r *Resolver) resolvePairDistance(ctx context.Context, from, to domain.Coordinate) (domain.DistanceResult, error) {
	if km, ok := r.routeCache.GetDistance(from, to); ok {
		return domain.DistanceResult{KM: km, Source: domain.SourceCache}, nil
	}

	key := cache.RouteKey(from, to)
	if r.shared != nil {
		if km, ok, err := r.shared.GetDistance(ctx, key); err != nil {
			r.logger.Warn("shared route cache read failed", zap.Error(err))
		} else if ok {
			r.routeCache.SetDistance(from, to, km)
			return domain.DistanceResult{KM: km, Source: domain.SourceCache}, nil
		}
	}

	if km, ok := r.routedDistance(ctx, from, to); ok {
		r.cacheDistance(ctx, from, to, key, km)
		return domain.DistanceResult{KM: km, Source: domain.SourceRouted}, nil
	}

	km := geo.DistanceKM(from, to)
	if km <= 0 {
		return domain.DistanceResult{}, fmt.Errorf("%w between %s and %s", ErrNoDistance, from, to)
	}
	r.logger.Info("using geodesic fallback distance",
		zap.String("from", from.String()),
		zap.String("to", to.String()),
		zap.Float64("km", km))
	r.cacheDistance(ctx, from, to, key, km)
	return domain.DistanceResult{KM: km, Source: domain.SourceGeodesic}, nil
}

// routedDistance attempts the primary routed lookup under the retry
// policy. Any terminal failure, exhausted retries, no-route response, or
// non-positive distance reports ok=false; the failure itself is only a
// log-level signal because the geodesic tier recovers it.
func (r *Resolver) routedDistance(ctx context.Context, from, to domain.Coordinate) (float64, bool) {
	type routed struct {
		km float64
		ok bool
	}

	res, err := retry.Do(ctx, r.routingRetry, func(ctx context.Context) (routed, error) {
		km, ok, err := r.router.RouteDistance(ctx, from, to)
		if err != nil {
			return routed{}, err
		}
		return routed{km: km, ok: ok}, nil
	})
	if err != nil {
		routingCalls.WithLabelValues("error").Inc()
		r.logger.Warn("routed distance failed, falling back to geodesic", zap.Error(err))
		return 0, false
	}
	if !res.ok {
		routingCalls.WithLabelValues("no_route").Inc()
		r.logger.Info("routing service returned no route",
			zap.String("from", from.String()), zap.String("to", to.String()))
		return 0, false
	}
	if res.km <= 0 {
		routingCalls.WithLabelValues("invalid").Inc()
		r.logger.Warn("routing service returned non-positive distance",
			zap.Float64("km", res.km))
		return 0, false
	}
	routingCalls.WithLabelValues("ok").Inc()
	return res.km, true
}

func (r *Resolver) cacheDistance(ctx context.Context, from, to domain.Coordinate, key string, km float64) {
	r.routeCache.SetDistance(from, to, km)
	if r.shared != nil {
		if err := r.shared.SetDistance(ctx, key, km); err != nil {
			r.logger.Warn("shared route cache write failed", zap.Error(err))
		}
	}
}

// WarmCache pre-geocodes a list of addresses so later resolutions hit the
// cache. It returns how many addresses resolved; failures are skipped.
func (r *Resolver) WarmCache(ctx context.Context, addresses []string) int {
	geocoded := 0
	for _, addr := range addresses {
		if addr == "" {
			continue
		}
		if _, err := r.geocodeAddress(ctx, addr, SideOrigin); err == nil {
			geocoded++
		}
	}
	return geocoded
}

// CacheStats reports both cache tiers' counters.
func (r *Resolver) CacheStats() map[string]cache.Stats {
	return map[string]cache.Stats{
		"geocode": r.geocodeCache.Stats(),
		"route":   r.routeCache.Stats(),
	}
}

// ClearCaches drops all cached geocoding and route results.
func (r *Resolver) ClearCaches() {
	r.geocodeCache.Clear()
	r.routeCache.Clear()
}
