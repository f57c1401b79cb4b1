// Package batch resolves many token pairs concurrently with a bounded
// worker count, reporting a per-row outcome instead of failing the whole
// run on the first bad row.
package batch

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"transport-route-service/internal/domain"
	"transport-route-service/internal/ports"
)

const defaultWorkers = 5

// Pair is one origin/destination row to resolve. ID is assigned when
// empty so callers can correlate results.
type Pair struct {
	ID          string
	Origin      string
	Destination string
}

// Result is the outcome for one row: either a distance or an error
// message attributable to that row alone.
type Result struct {
	ID          string
	Origin      string
	Destination string
	KM          float64
	Source      domain.DistanceSource
	Err         string
}

// ResolveAll resolves all pairs, at most workers at a time, and returns
// results in input order.
func ResolveAll(ctx context.Context, resolver ports.DistanceResolver, pairs []Pair, workers int) []Result {
	if workers <= 0 {
		workers = defaultWorkers
	}

	results := make([]Result, len(pairs))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, p := range pairs {
		if p.ID == "" {
			p.ID = uuid.NewString()
		}
		results[i] = Result{ID: p.ID, Origin: p.Origin, Destination: p.Destination}

		wg.Add(1)
		go func(i int, p Pair) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if err := ctx.Err(); err != nil {
				results[i].Err = err.Error()
				return
			}

			r, err := resolver.ResolveDistance(ctx, p.Origin, p.Destination)
			if err != nil {
				results[i].Err = err.Error()
				return
			}
			results[i].KM = r.KM
			results[i].Source = r.Source
		}(i, p)
	}

	wg.Wait()
	return results
}
