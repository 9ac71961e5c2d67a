package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// GeoPoint is a latitude/longitude pair persisted as JSONB. Either component
// may be absent on stored rows.
type GeoPoint struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

// NewGeoPoint builds a complete point.
func NewGeoPoint(lat, lng float64) GeoPoint {
	return GeoPoint{Lat: &lat, Lng: &lng}
}

// Complete reports whether both components are present.
func (g GeoPoint) Complete() bool {
	return g.Lat != nil && g.Lng != nil
}

// Value marshals the point into JSON for Postgres.
func (g GeoPoint) Value() (driver.Value, error) {
	buf, err := json.Marshal(g)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Scan decodes JSONB into the point.
func (g *GeoPoint) Scan(value interface{}) error {
	if value == nil {
		*g = GeoPoint{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("geo point: unsupported scan type %T", value)
	}

	var point GeoPoint
	if err := json.Unmarshal(raw, &point); err != nil {
		return fmt.Errorf("geo point: %w", err)
	}
	*g = point
	return nil
}
