package validators

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/angelmondragon/ecotech-backend/pkg/errors"
)

type number interface{ ~int | ~float64 }

// ParseQueryInt reads an optional integer parameter in [min, max].
func ParseQueryInt(r *http.Request, key string, defaultVal, min, max int) (int, error) {
	raw, ok := queryValue(r, key)
	if !ok {
		return defaultVal, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, notNumeric(key)
	}
	return inRange(key, value, min, max)
}

// ParseQueryFloat reads a required finite float parameter in [min, max].
func ParseQueryFloat(r *http.Request, key string, min, max float64) (float64, error) {
	raw, ok := queryValue(r, key)
	if !ok {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "query parameter is required").
			WithDetails(map[string]any{"field": key})
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, notNumeric(key)
	}
	return inRange(key, value, min, max)
}

func queryValue(r *http.Request, key string) (string, bool) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	return raw, raw != ""
}

func inRange[T number](key string, value, min, max T) (T, error) {
	if value < min || value > max {
		var zero T
		return zero, pkgerrors.New(pkgerrors.CodeValidation, "query parameter out of range").
			WithDetails(map[string]any{"field": key, "min": min, "max": max})
	}
	return value, nil
}

func notNumeric(key string) error {
	return pkgerrors.New(pkgerrors.CodeValidation, "query parameter must be numeric").
		WithDetails(map[string]any{"field": key})
}
