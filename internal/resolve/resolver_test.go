package resolve

import (
	"context"
	"errors"
	"testing"
	"time"

	"transport-route-service/internal/domain"
	"transport-route-service/internal/retry"
)

var (
	copenhagen = domain.Coordinate{Lat: 55.6761, Lon: 12.5683}
	grenaa     = domain.Coordinate{Lat: 56.4167, Lon: 10.7833}
)

type fakeGeocoder struct {
	coords map[string]domain.Coordinate
	calls  int
	err    error
}

func (g *fakeGeocoder) Geocode(_ context.Context, address string) (domain.Coordinate, bool, error) {
	g.calls++
	if g.err != nil {
		return domain.Coordinate{}, false, g.err
	}
	c, ok := g.coords[address]
	return c, ok, nil
}

type fakeRouter struct {
	km    float64
	ok    bool
	err   error
	calls int
}

func (r *fakeRouter) RouteDistance(_ context.Context, _, _ domain.Coordinate) (float64, bool, error) {
	r.calls++
	if r.err != nil {
		return 0, false, r.err
	}
	return r.km, r.ok, nil
}

type fakeDirectory struct {
	facilities map[string]domain.Facility
}

func (d *fakeDirectory) LookupByID(_ context.Context, id string) (domain.Facility, bool, error) {
	f, ok := d.facilities[id]
	return f, ok, nil
}

// singleAttempt keeps tests from sleeping in backoff.
func singleAttempt() retry.Policy {
	return retry.Policy{MaxAttempts: 1, InitialDelay: time.Millisecond, MaxDelay: time.Millisecond}
}

func newTestResolver(g *fakeGeocoder, router *fakeRouter, dir *fakeDirectory) *Resolver {
	deps := Deps{
		Geocoder:     g,
		Router:       router,
		RoutingRetry: singleAttempt(),
		GeocodeRetry: singleAttempt(),
	}
	if dir != nil {
		deps.Directory = dir
	}
	return New(deps)
}

func TestResolveDistanceRouted(t *testing.T) {
	g := &fakeGeocoder{}
	router := &fakeRouter{km: 187.4, ok: true}
	r := newTestResolver(g, router, nil)

	res, err := r.ResolveDistance(context.Background(), "55.6761, 12.5683", "56.4167, 10.7833")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.KM != 187.4 || res.Source != domain.SourceRouted {
		t.Fatalf("unexpected result: %+v", res)
	}
	if g.calls != 0 {
		t.Fatalf("coordinate literals must not hit the geocoder, got %d calls", g.calls)
	}
}

func TestResolveDistanceAddressAndIdentifier(t *testing.T) {
	g := &fakeGeocoder{coords: map[string]domain.Coordinate{
		"Nørregade 10, 1000 København": copenhagen,
		"Rugvænget 18, 8444 Grenå":     grenaa,
	}}
	router := &fakeRouter{err: errors.New("connection refused")}
	dir := &fakeDirectory{facilities: map[string]domain.Facility{
		"1061": {FacilityID: "1061", Name: "Grenå Depot", Address: "Rugvænget 18", PostalCode: "8444", City: "Grenå"},
	}}
	r := newTestResolver(g, router, dir)

	// Routing is down, so resolution degrades to the geodesic estimate.
	res, err := r.ResolveDistance(context.Background(), "Nørregade 10, 1000 København", "1061")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != domain.SourceGeodesic {
		t.Fatalf("expected geodesic fallback, got %s", res.Source)
	}
	if res.KM <= 0 {
		t.Fatalf("expected positive distance, got %v", res.KM)
	}
	if g.calls != 2 {
		t.Fatalf("expected one geocode per endpoint, got %d", g.calls)
	}

	// Reversed direction lands on the same cached pair.
	rev, err := r.ResolveDistance(context.Background(), "1061", "Nørregade 10, 1000 København")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rev.Source != domain.SourceCache || rev.KM != res.KM {
		t.Fatalf("expected symmetric cache hit, got %+v", rev)
	}
	if g.calls != 2 {
		t.Fatalf("repeat resolution must not re-geocode, got %d calls", g.calls)
	}
}

func TestResolveDistanceCacheHit(t *testing.T) {
	g := &fakeGeocoder{coords: map[string]domain.Coordinate{
		"Nørregade 10, 1000 København": copenhagen,
		"Åboulevarden 1, 8000 Aarhus":  {Lat: 56.1539, Lon: 10.2108},
	}}
	router := &fakeRouter{km: 157.2, ok: true}
	r := newTestResolver(g, router, nil)

	first, err := r.ResolveDistance(context.Background(), "Nørregade 10, 1000 København", "Åboulevarden 1, 8000 Aarhus")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Source != domain.SourceRouted {
		t.Fatalf("expected routed first, got %s", first.Source)
	}

	second, err := r.ResolveDistance(context.Background(), "Nørregade 10, 1000 København", "Åboulevarden 1, 8000 Aarhus")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Source != domain.SourceCache || second.KM != first.KM {
		t.Fatalf("expected cache hit with the same distance, got %+v", second)
	}
	if g.calls != 2 || router.calls != 1 {
		t.Fatalf("repeat resolution must avoid network calls: geocode=%d route=%d", g.calls, router.calls)
	}

	stats := r.CacheStats()
	if stats["route"].Hits == 0 {
		t.Fatalf("expected a route cache hit, got %+v", stats["route"])
	}
	if stats["geocode"].Hits == 0 {
		t.Fatalf("expected geocode cache hits, got %+v", stats["geocode"])
	}
}

func TestResolveDistanceZeroRoutedFallsBack(t *testing.T) {
	router := &fakeRouter{km: 0, ok: true}
	r := newTestResolver(&fakeGeocoder{}, router, nil)

	res, err := r.ResolveDistance(context.Background(), "55.6761,12.5683", "56.4167,10.7833")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != domain.SourceGeodesic || res.KM <= 0 {
		t.Fatalf("expected positive geodesic distance, got %+v", res)
	}
}

func TestResolveDistanceNoRouteFallsBack(t *testing.T) {
	router := &fakeRouter{ok: false}
	r := newTestResolver(&fakeGeocoder{}, router, nil)

	res, err := r.ResolveDistance(context.Background(), "55.6761,12.5683", "56.4167,10.7833")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != domain.SourceGeodesic {
		t.Fatalf("expected geodesic fallback for no-route, got %s", res.Source)
	}
}

func TestResolveDistanceRetriesTransientRouterThenFallsBack(t *testing.T) {
	router := &fakeRouter{err: &retry.StatusError{Code: 503, Body: "unavailable"}}
	r := New(Deps{
		Geocoder: &fakeGeocoder{},
		Router:   router,
		RoutingRetry: retry.Policy{
			MaxAttempts:  3,
			InitialDelay: time.Millisecond,
			MaxDelay:     5 * time.Millisecond,
			Retryable:    retry.Transient,
		},
		GeocodeRetry: singleAttempt(),
	})

	res, err := r.ResolveDistance(context.Background(), "55.6761,12.5683", "56.4167,10.7833")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if router.calls != 3 {
		t.Fatalf("expected retries to exhaust before fallback, got %d calls", router.calls)
	}
	if res.Source != domain.SourceGeodesic {
		t.Fatalf("expected geodesic fallback after retries, got %s", res.Source)
	}
}

func TestResolveDistanceGeocodeFailure(t *testing.T) {
	g := &fakeGeocoder{coords: map[string]domain.Coordinate{
		"Nørregade 10, 1000 København": copenhagen,
	}}
	r := newTestResolver(g, &fakeRouter{km: 10, ok: true}, nil)

	_, err := r.ResolveDistance(context.Background(), "Nørregade 10, 1000 København", "Findesikkevej 99, 9999 Ingensted")
	if err == nil {
		t.Fatalf("expected error for unmatched destination")
	}

	var resErr *ResolutionError
	if !errors.As(err, &resErr) {
		t.Fatalf("expected ResolutionError, got %T", err)
	}
	if resErr.Side != SideDestination {
		t.Fatalf("expected failure attributed to destination, got %s", resErr.Side)
	}
	if !errors.Is(err, ErrNoMatch) {
		t.Fatalf("expected ErrNoMatch, got %v", err)
	}
}

func TestResolveDistanceEmptyToken(t *testing.T) {
	r := newTestResolver(&fakeGeocoder{}, &fakeRouter{}, nil)

	_, err := r.ResolveDistance(context.Background(), "   ", "56.4167,10.7833")
	if !errors.Is(err, domain.ErrEmptyToken) {
		t.Fatalf("expected ErrEmptyToken, got %v", err)
	}
	var resErr *ResolutionError
	if !errors.As(err, &resErr) || resErr.Side != SideOrigin {
		t.Fatalf("expected origin-side ResolutionError, got %v", err)
	}
}

func TestResolveDistanceOutOfRangeLiteral(t *testing.T) {
	r := newTestResolver(&fakeGeocoder{}, &fakeRouter{}, nil)

	_, err := r.ResolveDistance(context.Background(), "95.0, 10.0", "56.4167,10.7833")
	if !errors.Is(err, domain.ErrCoordinateRange) {
		t.Fatalf("expected ErrCoordinateRange, got %v", err)
	}
}

func TestResolveDistanceUnknownIdentifierGeocodedRaw(t *testing.T) {
	// A numeric token the directory does not know is still passed to the
	// geocoder as-is.
	g := &fakeGeocoder{coords: map[string]domain.Coordinate{
		"9999": grenaa,
	}}
	r := newTestResolver(g, &fakeRouter{km: 12.5, ok: true}, &fakeDirectory{})

	res, err := r.ResolveDistance(context.Background(), "9999", "55.6761,12.5683")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Source != domain.SourceRouted {
		t.Fatalf("unexpected source: %s", res.Source)
	}
}

func TestClassify(t *testing.T) {
	dir := &fakeDirectory{facilities: map[string]domain.Facility{
		"A12": {FacilityID: "A12", Name: "Depot", Address: "Havnevej 3", PostalCode: "7100", City: "Vejle"},
	}}
	r := newTestResolver(&fakeGeocoder{}, &fakeRouter{}, dir)
	ctx := context.Background()

	loc, err := r.Classify(ctx, "56.4167, 10.7833")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Kind != domain.KindCoordinate || loc.Coordinate != (domain.Coordinate{Lat: 56.4167, Lon: 10.7833}) {
		t.Fatalf("unexpected location: %+v", loc)
	}

	// Numeric tokens classify as identifiers even when unknown.
	loc, err = r.Classify(ctx, "1061")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Kind != domain.KindIdentifier || loc.Facility != nil {
		t.Fatalf("unexpected location: %+v", loc)
	}

	// Short alphanumeric tokens need a directory hit.
	loc, err = r.Classify(ctx, "A12")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Kind != domain.KindIdentifier || loc.Facility == nil {
		t.Fatalf("expected directory-backed identifier, got %+v", loc)
	}

	loc, err = r.Classify(ctx, "B99")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Kind != domain.KindAddress {
		t.Fatalf("expected address fallback for unknown short token, got %s", loc.Kind)
	}

	loc, err = r.Classify(ctx, "Nørregade 10, 1000 København")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if loc.Kind != domain.KindAddress {
		t.Fatalf("expected address, got %s", loc.Kind)
	}
}

func TestWarmCache(t *testing.T) {
	g := &fakeGeocoder{coords: map[string]domain.Coordinate{
		"Nørregade 10, 1000 København": copenhagen,
		"Rugvænget 18, 8444 Grenå":     grenaa,
	}}
	r := newTestResolver(g, &fakeRouter{}, nil)

	warmed := r.WarmCache(context.Background(), []string{
		"Nørregade 10, 1000 København",
		"Rugvænget 18, 8444 Grenå",
		"Ukendt Allé 1, 0000 Intetsted",
		"",
	})
	if warmed != 2 {
		t.Fatalf("expected 2 warmed addresses, got %d", warmed)
	}

	calls := g.calls
	if _, err := r.ResolveDistance(context.Background(), "Nørregade 10, 1000 København", "Rugvænget 18, 8444 Grenå"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.calls != calls {
		t.Fatalf("warmed addresses must resolve from cache, got %d extra calls", g.calls-calls)
	}
}

func TestClearCaches(t *testing.T) {
	g := &fakeGeocoder{coords: map[string]domain.Coordinate{
		"Nørregade 10, 1000 København": copenhagen,
	}}
	r := newTestResolver(g, &fakeRouter{km: 5, ok: true}, nil)

	if _, err := r.ResolveDistance(context.Background(), "Nørregade 10, 1000 København", "56.4167,10.7833"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	r.ClearCaches()

	stats := r.CacheStats()
	if stats["geocode"].Size != 0 || stats["route"].Size != 0 {
		t.Fatalf("expected empty caches after clear, got %+v", stats)
	}
}
