package resolve

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	geocodeCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "geocode_calls_total",
		Help: "External geocoding calls grouped by outcome.",
	}, []string{"result"})

	routingCalls = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "routing_calls_total",
		Help: "External routing calls grouped by outcome.",
	}, []string{"result"})

	resolveDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "distance_resolution_seconds",
		Help:    "Time spent resolving a token pair to a distance.",
		Buckets: prometheus.DefBuckets,
	}, []string{"source"})
)
