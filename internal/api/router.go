package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"transport-route-service/internal/api/handlers"
	"transport-route-service/internal/ports"
)

// Deps collects the collaborators the HTTP surface exposes. Store is
// optional; the facility routes are only mounted when it is present.
type Deps struct {
	Resolver   ports.DistanceResolver
	CacheAdmin handlers.CacheAdmin
	Store      ports.FacilityStore
	Logger     *zap.Logger
}

// NewRouter wires HTTP handlers with their dependencies. This is the API
// composition root; handlers stay unaware of concrete adapters.
func NewRouter(deps Deps) http.Handler {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	distanceHandler := &handlers.DistanceHandler{Resolver: deps.Resolver, Logger: logger}
	cacheHandler := &handlers.CacheHandler{Admin: deps.CacheAdmin, Logger: logger}
	emissionsHandler := &handlers.EmissionsHandler{Logger: logger}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(requestID)
	r.Use(requestLogger(logger))

	r.Get("/healthz", handlers.Health)
	r.Handle("/metrics", promhttp.Handler())

	r.Post("/distances", distanceHandler.Resolve)
	r.Post("/distances/batch", distanceHandler.ResolveBatch)
	r.Post("/emissions", emissionsHandler.Estimate)

	r.Get("/cache/stats", cacheHandler.Stats)
	r.Post("/cache/clear", cacheHandler.Clear)

	if deps.Store != nil {
		facilityHandler := &handlers.FacilityHandler{Store: deps.Store, Logger: logger}
		r.Route("/facilities", func(r chi.Router) {
			r.Get("/", facilityHandler.List)
			r.Post("/", facilityHandler.Create)
			r.Get("/{id}", facilityHandler.Get)
			r.Put("/{id}", facilityHandler.Update)
			r.Delete("/{id}", facilityHandler.Delete)
		})
	}

	return r
}
