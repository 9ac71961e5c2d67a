package models

import (
	"time"

	"github.com/angelmondragon/ecotech-backend/pkg/types"
)

// Location is a physical drop-off point with one or more bins.
type Location struct {
	ID                 string         `gorm:"column:id;type:text;primaryKey"`
	Name               string         `gorm:"column:name;not null"`
	Site               string         `gorm:"column:site;not null"`
	Coordinates        types.GeoPoint `gorm:"column:coordinates;type:jsonb;not null"`
	Address            string         `gorm:"column:address;not null"`
	Image              string         `gorm:"column:image;not null"`
	BinCount           int            `gorm:"column:bin_count;not null;default:1"`
	InauguratedAt      time.Time      `gorm:"column:inaugurated_at;not null"`
	LastBinInstalledAt time.Time      `gorm:"column:last_bin_installed_at;not null"`
	UpdatedAt          time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (Location) TableName() string { return "locations" }
