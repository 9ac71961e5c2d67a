package analytics

import (
	"time"

	"github.com/angelmondragon/ecotech-backend/pkg/types"
)

// UserReport is the persisted summary returned after a refresh.
type UserReport struct {
	UID                 string                  `json:"uid"`
	Points              float64                 `json:"pontos"`
	RecycledElectronics int                     `json:"recycled_eletronics"`
	ByCategory          types.CategoryBreakdown `json:"por_categoria"`
	LastUpdated         time.Time               `json:"last_updated"`
}

// LocationReport is the read-only rollup for one drop-off location.
type LocationReport struct {
	LocationID          string                  `json:"localId"`
	RecycledElectronics int                     `json:"recycled_eletronics"`
	Points              float64                 `json:"pontos"`
	ByCategory          types.CategoryBreakdown `json:"por_categoria"`
}

// UserLocationReport is the read-only rollup for one user at one location.
type UserLocationReport struct {
	UID                 string                  `json:"uid"`
	LocationID          string                  `json:"localId"`
	RecycledElectronics int                     `json:"recycled_eletronics"`
	Points              float64                 `json:"pontos"`
	ByCategory          types.CategoryBreakdown `json:"por_categoria"`
}
