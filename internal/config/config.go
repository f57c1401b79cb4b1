// Package config loads service configuration from the environment, with
// an optional .env file for local runs.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is the full runtime configuration. DatabaseURL and RedisAddr
// are optional: absent, the facility directory falls back to the flat
// file and the shared cache tier is disabled.
type Config struct {
	HTTPAddr string

	NominatimURL string
	OSRMURL      string
	CountryHint  string

	GeocodeCacheSize int
	RouteCacheSize   int

	RetryMaxAttempts  int
	RetryInitialDelay time.Duration
	RetryMaxDelay     time.Duration

	DatabaseURL   string
	RedisAddr     string
	DirectoryPath string
}

// Load reads configuration, tolerating a missing .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		HTTPAddr:          Get("HTTP_ADDR", ":8080"),
		NominatimURL:      Get("NOMINATIM_URL", ""),
		OSRMURL:           Get("OSRM_URL", ""),
		CountryHint:       Get("COUNTRY_HINT", "Denmark"),
		GeocodeCacheSize:  GetInt("GEOCODE_CACHE_SIZE", 1000),
		RouteCacheSize:    GetInt("ROUTE_CACHE_SIZE", 1000),
		RetryMaxAttempts:  GetInt("RETRY_MAX_ATTEMPTS", 3),
		RetryInitialDelay: GetDuration("RETRY_INITIAL_DELAY", time.Second),
		RetryMaxDelay:     GetDuration("RETRY_MAX_DELAY", 60*time.Second),
		DatabaseURL:       Get("DATABASE_URL", ""),
		RedisAddr:         Get("REDIS_ADDR", ""),
		DirectoryPath:     Get("DIRECTORY_PATH", "data/facilities.csv"),
	}
}

func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func GetDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
