package main

import (
	"context"
	"database/sql"
	"delivery-driver-service/internal/adapters/backend"
	"delivery-driver-service/internal/adapters/repositories"
	"delivery-driver-service/internal/api"
	"delivery-driver-service/internal/config"
	"delivery-driver-service/internal/domain"
	"delivery-driver-service/internal/geo"
	"delivery-driver-service/internal/platform/db"
	"delivery-driver-service/internal/ports"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

// main is the application composition root.
// It picks the configured delivery source, builds the distance model and starts the HTTP server.
func main() {
	config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	calc, err := geo.New(cfg.Geo())
	if err != nil {
		log.Fatal(err)
	}

	repo, healthCheck, closeRepo, err := openRepository(ctx, cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer closeRepo()

	sorter := geo.NewSortCache[*domain.Delivery](calc, cfg.SortCacheSize)

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	router := api.NewRouter(repo, sorter, healthCheck, reg)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Printf("Server listening addr=:%s source=%s earth_radius_m=%.0f", cfg.Port, cfg.DeliverySource, cfg.EarthRadiusMeters)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("http server shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Printf("server error: %v", err)
	}
	log.Printf("Server stopped sort_cache_hits=%d sort_cache_misses=%d", sorter.Hits(), sorter.Misses())
}

type healthCheck = func(ctx context.Context) error

// openRepository returns the delivery source selected by DELIVERY_SOURCE, an
// optional readiness probe and a function releasing its resources.
func openRepository(ctx context.Context, cfg config.Config) (ports.DeliveryRepository, healthCheck, func(), error) {
	switch cfg.DeliverySource {
	case config.SourcePostgres:
		conn, err := db.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := db.Migrate(ctx, conn); err != nil {
			conn.Close()
			return nil, nil, nil, err
		}
		return repositories.NewPostgresDeliveryRepository(conn), conn.PingContext, closer(conn), nil

	case config.SourceHTTP:
		repo, err := backend.NewHTTPDeliveryRepository(cfg.BackendURL, cfg.BackendToken)
		if err != nil {
			return nil, nil, nil, err
		}
		return repo, nil, func() {}, nil

	case config.SourceMemory:
		rows, err := repositories.LoadSeedFile(cfg.SeedPath)
		if err != nil {
			return nil, nil, nil, err
		}
		return repositories.NewMemoryDeliveryRepository(rows), nil, func() {}, nil
	}

	return nil, nil, nil, fmt.Errorf("open repository: unknown delivery source %q", cfg.DeliverySource)
}

func closer(conn *sql.DB) func() {
	return func() {
		if err := conn.Close(); err != nil {
			log.Printf("close db failed: %v", err)
		}
	}
}
