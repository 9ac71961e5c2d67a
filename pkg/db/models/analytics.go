package models

import (
	"time"

	"github.com/angelmondragon/ecotech-backend/pkg/types"
)

// Analytics caches a user's recycling summary. It is derived data and may be
// recomputed from the user's entries at any time.
type Analytics struct {
	UID                 string                  `gorm:"column:uid;type:text;primaryKey"`
	Points              float64                 `gorm:"column:points;not null;default:0"`
	RecycledElectronics int                     `gorm:"column:recycled_electronics;not null;default:0"`
	ByCategory          types.CategoryBreakdown `gorm:"column:by_category;type:jsonb"`
	LastUpdated         time.Time               `gorm:"column:last_updated;not null"`
}

func (Analytics) TableName() string { return "analytics" }
