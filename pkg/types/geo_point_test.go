package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGeoPointValueScanRoundTrip(t *testing.T) {
	point := NewGeoPoint(-23.5505, -46.6333)
	require.True(t, point.Complete())

	raw, err := point.Value()
	require.NoError(t, err)

	var scanned GeoPoint
	require.NoError(t, scanned.Scan(raw))
	require.True(t, scanned.Complete())
	require.InDelta(t, -23.5505, *scanned.Lat, 1e-9)
	require.InDelta(t, -46.6333, *scanned.Lng, 1e-9)
}

func TestGeoPointScanPartial(t *testing.T) {
	var point GeoPoint
	require.NoError(t, point.Scan(`{"lat": 10.5}`))
	require.NotNil(t, point.Lat)
	require.Nil(t, point.Lng)
	require.False(t, point.Complete())

	require.NoError(t, point.Scan(nil))
	require.False(t, point.Complete())
}

func TestGeoPointScanRejectsUnknownType(t *testing.T) {
	var point GeoPoint
	require.Error(t, point.Scan(42))
	require.Error(t, point.Scan("not json"))
}

func TestCategoryBreakdownScan(t *testing.T) {
	var breakdown CategoryBreakdown
	require.NoError(t, breakdown.Scan([]byte(`{"phone":{"quantidade":5,"porcentagem":"50.00%"}}`)))
	require.Equal(t, CategoryShare{Quantity: 5, Percentage: "50.00%"}, breakdown["phone"])

	value, err := CategoryBreakdown(nil).Value()
	require.NoError(t, err)
	require.Nil(t, value)
}
