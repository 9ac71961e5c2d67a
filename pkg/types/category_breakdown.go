package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// CategoryShare is one category's slice of an aggregation.
type CategoryShare struct {
	Quantity   int    `json:"quantidade"`
	Percentage string `json:"porcentagem"`
}

// CategoryBreakdown maps a category tag to its share, persisted as JSONB.
type CategoryBreakdown map[string]CategoryShare

// Value marshals the map into JSON for Postgres.
func (c CategoryBreakdown) Value() (driver.Value, error) {
	if c == nil {
		return nil, nil
	}
	buf, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return buf, nil
}

// Scan decodes JSONB into the map.
func (c *CategoryBreakdown) Scan(value interface{}) error {
	if value == nil {
		*c = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("category breakdown: unsupported scan type %T", value)
	}

	result := make(CategoryBreakdown)
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*c = result
	return nil
}
