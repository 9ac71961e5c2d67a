package analytics

import (
	"github.com/angelmondragon/ecotech-backend/pkg/db/models"
	"github.com/angelmondragon/ecotech-backend/pkg/types"
	"github.com/shopspring/decimal"
)

// UnknownCategory buckets entries stored without a category tag.
const UnknownCategory = "desconhecida"

var hundred = decimal.NewFromInt(100)

// Summary is the rollup of a set of recycling entries.
type Summary struct {
	Total      int
	Points     float64
	ByCategory types.CategoryBreakdown
}

// ComputeSummary sums quantidade per category and overall in a single pass.
// Each category's percentage is its share of the overall quantity rounded to
// two decimals; an empty or zero total yields "0.00%" for every category.
func ComputeSummary(entries []models.RecyclingEntry) Summary {
	quantities := map[string]int{}
	total := 0
	points := decimal.Zero

	for _, entry := range entries {
		category := entry.Category
		if category == "" {
			category = UnknownCategory
		}
		quantities[category] += entry.Quantity
		total += entry.Quantity
		points = points.Add(decimal.NewFromFloat(entry.Points))
	}

	byCategory := make(types.CategoryBreakdown, len(quantities))
	for category, qty := range quantities {
		byCategory[category] = types.CategoryShare{
			Quantity:   qty,
			Percentage: Percentage(qty, total),
		}
	}

	return Summary{
		Total:      total,
		Points:     points.InexactFloat64(),
		ByCategory: byCategory,
	}
}

// Percentage renders part/total*100 with two decimals and a "%" suffix.
func Percentage(part, total int) string {
	if total == 0 {
		return "0.00%"
	}
	pct := decimal.NewFromInt(int64(part)).Mul(hundred).Div(decimal.NewFromInt(int64(total)))
	return pct.StringFixed(2) + "%"
}
