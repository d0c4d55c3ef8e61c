package geo

import (
	"delivery-driver-service/internal/domain"
	"math"
	"testing"

	"github.com/golang/geo/s2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var samplePoints = []domain.Coordinates{
	{Lat: 0, Lon: 0},
	{Lat: 40.7128, Lon: -74.0060},  // New York
	{Lat: 51.5074, Lon: -0.1278},   // London
	{Lat: -33.8688, Lon: 151.2093}, // Sydney
	{Lat: 33.4484, Lon: -112.0740}, // Phoenix
	{Lat: 89.9, Lon: 10},           // near the pole
	{Lat: -12.0464, Lon: -77.0428}, // Lima
	{Lat: 35.6762, Lon: 139.6503},  // Tokyo
	{Lat: 0.0001, Lon: 179.9999},   // antimeridian
	{Lat: -0.0001, Lon: -179.9999}, // across the antimeridian
}

func TestDistanceIsSymmetric(t *testing.T) {
	for _, a := range samplePoints {
		for _, b := range samplePoints {
			ab := Distance(a, b)
			ba := Distance(b, a)
			assert.InDelta(t, ab, ba, 1e-9*math.Max(ab, 1), "%v <-> %v", a, b)
		}
	}
}

func TestDistanceToSelfIsZero(t *testing.T) {
	for _, p := range samplePoints {
		assert.Zero(t, Distance(p, p), "%v", p)
	}

	nyc := domain.Coordinates{Lat: 40.7128, Lon: -74.0060}
	assert.Equal(t, 0.0, Distance(nyc, nyc))
}

func TestDistanceQuarterGreatCircle(t *testing.T) {
	got := Distance(domain.Coordinates{Lat: 0, Lon: 0}, domain.Coordinates{Lat: 0, Lon: 90})
	assert.InEpsilon(t, 10_007_543.0, got, 0.005)

	got = Distance(domain.Coordinates{Lat: 0, Lon: 0}, domain.Coordinates{Lat: 90, Lon: 0})
	assert.InEpsilon(t, MeanEarthRadiusMeters*math.Pi/2, got, 1e-9)
}

func TestDistanceMatchesS2(t *testing.T) {
	for _, a := range samplePoints {
		for _, b := range samplePoints {
			want := s2.LatLngFromDegrees(a.Lat, a.Lon).Distance(s2.LatLngFromDegrees(b.Lat, b.Lon)).Radians() * MeanEarthRadiusMeters
			got := Distance(a, b)

			require.GreaterOrEqual(t, got, 0.0)
			require.False(t, math.IsInf(got, 0))
			assert.InDelta(t, want, got, 1e-6*math.Max(want, 1), "%v -> %v", a, b)
		}
	}
}

func TestDistancePropagatesNaN(t *testing.T) {
	got := Distance(domain.Coordinates{Lat: math.NaN(), Lon: 0}, domain.Coordinates{})
	assert.True(t, math.IsNaN(got), "got %v", got)
}

func TestCalculatorUsesConfiguredRadius(t *testing.T) {
	unit, err := New(Config{EarthRadiusMeters: 1})
	require.NoError(t, err)

	got := unit.Distance(domain.Coordinates{Lat: 0, Lon: 0}, domain.Coordinates{Lat: 0, Lon: 180})
	assert.InDelta(t, math.Pi, got, 1e-12)
	assert.Equal(t, Config{EarthRadiusMeters: 1}, unit.Config())
	assert.Equal(t, DefaultConfig(), Default().Config())
}

func TestNewRejectsInvalidRadius(t *testing.T) {
	for _, r := range []float64{0, -1, math.NaN(), math.Inf(1)} {
		_, err := New(Config{EarthRadiusMeters: r})
		assert.ErrorIs(t, err, ErrInvalidConfig, "radius %v", r)
	}
}

func TestDistanceToWithoutReference(t *testing.T) {
	target := domain.Coordinates{Lat: 51.5074, Lon: -0.1278}
	assert.Equal(t, 0.0, DistanceTo(nil, target))

	ref := domain.Coordinates{Lat: 40.7128, Lon: -74.0060}
	assert.Equal(t, Distance(ref, target), DistanceTo(&ref, target))
}

func TestFormatDistance(t *testing.T) {
	cases := []struct {
		meters float64
		want   string
	}{
		{0, "0m"},
		{0.4, "0m"},
		{0.5, "1m"},
		{500, "500m"},
		{632, "632m"},
		{999, "999m"},
		{999.6, "1000m"},
		{1000, "1.0km"},
		{1049, "1.0km"},
		{1050, "1.1km"},
		{2350, "2.4km"},
		{2500, "2.5km"},
		{12_345, "12.3km"},
		{10_007_543, "10007.5km"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatDistance(tc.meters), "FormatDistance(%v)", tc.meters)
	}
}
