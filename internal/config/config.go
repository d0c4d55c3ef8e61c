// Package config reads service settings from the environment, loading a
// .env file first when one is present.
package config

import (
	"delivery-driver-service/internal/geo"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Delivery sources selectable with DELIVERY_SOURCE.
const (
	SourcePostgres = "postgres"
	SourceHTTP     = "http"
	SourceMemory   = "memory"
)

type Config struct {
	Port              string
	DatabaseURL       string
	DeliverySource    string
	BackendURL        string
	BackendToken      string
	SeedPath          string
	EarthRadiusMeters float64
	SortCacheSize     int
}

// LoadDotEnv loads .env into the process environment if the file exists.
func LoadDotEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found (using environment variables)")
	}
}

// Get returns the value of key, or fallback when it is unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Load builds a Config from the environment and checks that the selected
// delivery source has what it needs.
func Load() (Config, error) {
	cfg := Config{
		Port:           Get("PORT", "8080"),
		DatabaseURL:    strings.TrimSpace(os.Getenv("DATABASE_URL")),
		DeliverySource: strings.ToLower(Get("DELIVERY_SOURCE", SourcePostgres)),
		BackendURL:     strings.TrimSpace(os.Getenv("BACKEND_URL")),
		BackendToken:   os.Getenv("BACKEND_TOKEN"),
		SeedPath:       Get("SEED_PATH", "data/seeds/deliveries.json"),
	}

	radius, err := strconv.ParseFloat(Get("EARTH_RADIUS_METERS", strconv.FormatFloat(geo.MeanEarthRadiusMeters, 'f', -1, 64)), 64)
	if err != nil {
		return Config{}, fmt.Errorf("load config: EARTH_RADIUS_METERS: %w", err)
	}
	cfg.EarthRadiusMeters = radius

	cacheSize, err := strconv.Atoi(Get("SORT_CACHE_SIZE", "256"))
	if err != nil {
		return Config{}, fmt.Errorf("load config: SORT_CACHE_SIZE: %w", err)
	}
	if cacheSize < 1 {
		return Config{}, fmt.Errorf("load config: SORT_CACHE_SIZE must be positive, got %d", cacheSize)
	}
	cfg.SortCacheSize = cacheSize

	switch cfg.DeliverySource {
	case SourcePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("load config: DATABASE_URL is required for the postgres delivery source")
		}
	case SourceHTTP:
		if cfg.BackendURL == "" {
			return Config{}, errors.New("load config: BACKEND_URL is required for the http delivery source")
		}
	case SourceMemory:
	default:
		return Config{}, fmt.Errorf("load config: unknown DELIVERY_SOURCE %q", cfg.DeliverySource)
	}

	return cfg, nil
}

// Geo returns the distance model settings.
func (c Config) Geo() geo.Config {
	return geo.Config{EarthRadiusMeters: c.EarthRadiusMeters}
}
