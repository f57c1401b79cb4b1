package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/jackc/pgx/v5/stdlib"

	"transport-route-service/internal/adapters/directory"
	"transport-route-service/internal/adapters/geocode"
	"transport-route-service/internal/adapters/routing"
	"transport-route-service/internal/adapters/sharedcache"
	"transport-route-service/internal/api"
	"transport-route-service/internal/cache"
	"transport-route-service/internal/config"
	"transport-route-service/internal/platform/db"
	"transport-route-service/internal/ports"
	"transport-route-service/internal/resolve"
	"transport-route-service/internal/retry"
	"transport-route-service/pkg/observability"
)

// main is the application composition root. It wires concrete adapters
// (Nominatim, OSRM, the facility directory, optional Redis) behind ports
// and starts the HTTP server.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger := observability.SetupLogger("transport-route-service")
	defer logger.Sync() //nolint:errcheck

	shutdown, err := observability.SetupTracer(ctx, "transport-route-service")
	if err != nil {
		logger.Warn("tracer setup failed", zap.Error(err))
	} else {
		defer shutdown(context.Background())
	}

	cfg := config.Load()

	var store ports.FacilityStore
	if cfg.DatabaseURL != "" {
		pool, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal("postgres connect", zap.Error(err))
		}
		defer pool.Close()

		pg := directory.NewPostgresStore(pool)
		if err := pg.InitSchema(ctx); err != nil {
			logger.Fatal("facility schema", zap.Error(err))
		}
		store = pg
	} else {
		fs, err := directory.NewFileStore(cfg.DirectoryPath)
		if err != nil {
			logger.Fatal("facility file store", zap.Error(err))
		}
		store = fs
	}

	var shared ports.SharedCache
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		if err := client.Ping(ctx).Err(); err != nil {
			logger.Fatal("redis ping", zap.Error(err))
		}
		defer client.Close()
		shared = sharedcache.NewRedisCache(client, "resolve:", 0)
	}

	retryPolicy := retry.Policy{
		MaxAttempts:  cfg.RetryMaxAttempts,
		InitialDelay: cfg.RetryInitialDelay,
		MaxDelay:     cfg.RetryMaxDelay,
		Retryable:    retry.Transient,
	}

	resolver := resolve.New(resolve.Deps{
		Geocoder: geocode.New(
			geocode.WithBaseURL(cfg.NominatimURL),
			geocode.WithCountryHint(cfg.CountryHint),
		),
		Router:       routing.New(routing.WithBaseURL(cfg.OSRMURL)),
		Directory:    store,
		GeocodeCache: cache.NewGeocodeCache(cfg.GeocodeCacheSize),
		RouteCache:   cache.NewRouteCache(cfg.RouteCacheSize),
		Shared:       shared,
		RoutingRetry: retryPolicy,
		GeocodeRetry: retryPolicy,
		Logger:       logger,
	})

	router := api.NewRouter(api.Deps{
		Resolver:   resolver,
		CacheAdmin: resolver,
		Store:      store,
		Logger:     logger,
	})

	// Write timeout leaves room for a cold-cache resolution with retries.
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("server listening", zap.String("addr", cfg.HTTPAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("server shutdown", zap.Error(err))
	}
}
