package geo

import (
	"delivery-driver-service/internal/domain"
	"fmt"
	"math"
)

// Calculator evaluates distances on a sphere of a fixed radius.
// The zero value is not usable; build one with New.
type Calculator struct {
	radius float64
}

var defaultCalculator = &Calculator{radius: MeanEarthRadiusMeters}

func New(cfg Config) (*Calculator, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Calculator{radius: cfg.EarthRadiusMeters}, nil
}

// Default returns the calculator backed by DefaultConfig.
func Default() *Calculator { return defaultCalculator }

// Config returns the settings the calculator was built with.
func (c *Calculator) Config() Config {
	return Config{EarthRadiusMeters: c.radius}
}

// Distance returns the haversine great-circle distance in meters.
func (c *Calculator) Distance(a, b domain.Coordinates) float64 {
	lat1 := degToRad(a.Lat)
	lat2 := degToRad(b.Lat)
	dLat := degToRad(b.Lat - a.Lat)
	dLon := degToRad(b.Lon - a.Lon)

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	h := sinLat*sinLat + math.Cos(lat1)*math.Cos(lat2)*sinLon*sinLon

	central := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return c.radius * central
}

// DistanceTo measures from reference to target.
// A nil reference (position not known yet) yields 0, so callers that need to
// tell "no reference" apart from "same place" must check reference themselves.
func (c *Calculator) DistanceTo(reference *domain.Coordinates, target domain.Coordinates) float64 {
	if reference == nil {
		return 0
	}
	return c.Distance(*reference, target)
}

// Distance uses the mean Earth radius.
func Distance(a, b domain.Coordinates) float64 {
	return defaultCalculator.Distance(a, b)
}

func DistanceTo(reference *domain.Coordinates, target domain.Coordinates) float64 {
	return defaultCalculator.DistanceTo(reference, target)
}

// FormatDistance renders meters for display: whole meters below 1000,
// otherwise kilometers with one decimal. Both branches round half away
// from zero, and the unit is chosen before rounding (999.6 renders "1000m").
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%dm", int64(math.Round(meters)))
	}
	km := math.Round(meters/100) / 10
	return fmt.Sprintf("%.1fkm", km)
}

func degToRad(d float64) float64 {
	return d * math.Pi / 180.0
}
