package main

import (
	"database/sql"
	"delivery-driver-service/internal/adapters/repositories"
	"delivery-driver-service/internal/config"
	"delivery-driver-service/internal/domain"
	"delivery-driver-service/internal/geo"
	"delivery-driver-service/internal/platform/db"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func openDatabase(cmd *cobra.Command) (*sql.DB, error) {
	config.LoadDotEnv()

	databaseURL := strings.TrimSpace(config.Get("DATABASE_URL", ""))
	if databaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}
	return db.Open(cmd.Context(), databaseURL)
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply schema migrations.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := openDatabase(cmd)
			if err != nil {
				return err
			}
			defer conn.Close()

			log.Println("Applying migrations...")
			if err := db.Migrate(cmd.Context(), conn); err != nil {
				return err
			}

			version, err := db.MigrationVersion(cmd.Context(), conn)
			if err != nil {
				return err
			}
			log.Printf("Schema ready. version=%d", version)
			return nil
		},
	}
}

func newSeedCommand() *cobra.Command {
	var seedPath string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Apply migrations and load deliveries from a JSON file.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			conn, err := openDatabase(cmd)
			if err != nil {
				return err
			}
			defer conn.Close()

			if err := db.Migrate(cmd.Context(), conn); err != nil {
				return err
			}

			log.Printf("Seeding database... path=%s", seedPath)
			n, err := repositories.SeedFromJSON(cmd.Context(), conn, seedPath)
			if err != nil {
				return err
			}
			log.Printf("Seeding complete. rows=%d", n)
			return nil
		},
	}
	cmd.Flags().StringVar(&seedPath, "file", config.Get("SEED_PATH", "data/seeds/deliveries.json"), "Path to the deliveries seed file.")
	return cmd
}

// newDistanceCommand prints the great-circle distance between two "lat,lng" points.
// The points are flag values so southern and western coordinates, which start
// with a minus sign, are not mistaken for flags.
func newDistanceCommand() *cobra.Command {
	var (
		radius   float64
		fromFlag string
		toFlag   string
	)

	cmd := &cobra.Command{
		Use:     "distance --from LAT,LNG --to LAT,LNG",
		Short:   "Print the distance between two lat,lng points.",
		Example: "  dbtool distance --from -33.8688,151.2093 --to 40.7128,-74.0060",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			calc, err := geo.New(geo.Config{EarthRadiusMeters: radius})
			if err != nil {
				return err
			}

			from, err := parsePoint(fromFlag)
			if err != nil {
				return fmt.Errorf("--from: %w", err)
			}
			to, err := parsePoint(toFlag)
			if err != nil {
				return fmt.Errorf("--to: %w", err)
			}

			meters := calc.Distance(from, to)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "%.3f\t%s\n", meters, geo.FormatDistance(meters))
			return err
		},
	}
	cmd.Flags().StringVar(&fromFlag, "from", "", "Start point as lat,lng.")
	cmd.Flags().StringVar(&toFlag, "to", "", "End point as lat,lng.")
	cmd.Flags().Float64Var(&radius, "radius", geo.MeanEarthRadiusMeters, "Sphere radius in meters.")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}

func parsePoint(s string) (domain.Coordinates, error) {
	lat, lng, ok := strings.Cut(s, ",")
	if !ok {
		return domain.Coordinates{}, fmt.Errorf("point %q: expected lat,lng", s)
	}

	latF, err := strconv.ParseFloat(strings.TrimSpace(lat), 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("point %q: latitude: %w", s, err)
	}
	lngF, err := strconv.ParseFloat(strings.TrimSpace(lng), 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("point %q: longitude: %w", s, err)
	}

	c := domain.Coordinates{Lat: latF, Lon: lngF}
	if err := c.Validate(); err != nil {
		return domain.Coordinates{}, fmt.Errorf("point %q: %w", s, err)
	}
	return c, nil
}
