package models

import (
	"time"

	"github.com/angelmondragon/ecotech-backend/pkg/enums"
)

// RecyclingEntry is one reported recycling event. OwnerUID is nil once the
// owner has been detached; LocationID never changes after creation.
type RecyclingEntry struct {
	ID         string                `gorm:"column:id;type:text;primaryKey"`
	OwnerUID   *string               `gorm:"column:uid;index"`
	Category   string                `gorm:"column:category;not null"`
	Quantity   int                   `gorm:"column:quantity;not null"`
	LocationID string                `gorm:"column:location_id;not null;index"`
	Points     float64               `gorm:"column:points;not null"`
	Visibility enums.EntryVisibility `gorm:"column:visibility;type:text;not null;default:'active'"`
	CreatedAt  time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

func (RecyclingEntry) TableName() string { return "recycled_electronics" }
