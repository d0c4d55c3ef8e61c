// Package geo computes great-circle distances between coordinates and derives
// distance labels and distance orderings from them.
//
// All functions are pure and safe for concurrent use. Inputs are not validated:
// NaN or out-of-range coordinates produce NaN results instead of errors.
package geo

import (
	"errors"
	"fmt"
	"math"
)

// MeanEarthRadiusMeters is the spherical mean Earth radius.
const MeanEarthRadiusMeters = 6_371_000.0

// ErrInvalidConfig is returned by New for unusable settings.
var ErrInvalidConfig = errors.New("geo: invalid config")

// Config holds the process-wide constants of the distance model.
// It is read-only once a Calculator has been built from it.
type Config struct {
	EarthRadiusMeters float64
}

func DefaultConfig() Config {
	return Config{EarthRadiusMeters: MeanEarthRadiusMeters}
}

func (c Config) validate() error {
	r := c.EarthRadiusMeters
	if math.IsNaN(r) || math.IsInf(r, 0) || r <= 0 {
		return fmt.Errorf("%w: earth radius must be positive and finite, got %v", ErrInvalidConfig, r)
	}
	return nil
}
