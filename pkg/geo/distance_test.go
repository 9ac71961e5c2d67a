package geo

import (
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHaversineMeters(t *testing.T) {
	t.Run("same point", func(t *testing.T) {
		require.Zero(t, HaversineMeters(-23.55, -46.63, -23.55, -46.63))
	})
	t.Run("one degree of latitude", func(t *testing.T) {
		got := HaversineMeters(0, 0, 1, 0)
		want := EarthRadiusMeters * math.Pi / 180
		require.InDelta(t, want, got, 1e-6)
	})
	t.Run("symmetric", func(t *testing.T) {
		a := HaversineMeters(-23.5505, -46.6333, -22.9068, -43.1729)
		b := HaversineMeters(-22.9068, -43.1729, -23.5505, -46.6333)
		require.InDelta(t, a, b, 1e-9)
		// Sao Paulo to Rio de Janeiro is roughly 360 km.
		require.InDelta(t, 360_000, a, 10_000)
	})
	t.Run("across the antimeridian", func(t *testing.T) {
		got := HaversineMeters(0, 179.5, 0, -179.5)
		require.InDelta(t, EarthRadiusMeters*math.Pi/180, got, 1e-3)
	})
	t.Run("antipodal", func(t *testing.T) {
		got := HaversineMeters(0, 0, 0, 180)
		require.InDelta(t, EarthRadiusMeters*math.Pi, got, 1e-3)
	})
}

func TestValidCoordinate(t *testing.T) {
	require.True(t, ValidCoordinate(-23.5, -46.6))
	require.True(t, ValidCoordinate(90, 180))
	require.False(t, ValidCoordinate(91, 0))
	require.False(t, ValidCoordinate(0, -181))
	require.False(t, ValidCoordinate(math.NaN(), 0))
	require.False(t, ValidCoordinate(0, math.Inf(1)))
	require.False(t, ValidCoordinate(math.Inf(-1), 0))
	require.True(t, ValidCoordinate(-90, -180))
}
