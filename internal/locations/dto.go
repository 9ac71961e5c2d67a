package locations

import (
	"time"

	"github.com/angelmondragon/ecotech-backend/pkg/db/models"
	"github.com/angelmondragon/ecotech-backend/pkg/types"
)

// Dates groups the lifecycle timestamps of a location.
type Dates struct {
	InauguratedAt      time.Time `json:"inauguracao"`
	LastBinInstalledAt time.Time `json:"ultimaInstalacao"`
}

// LocationDTO is the transport shape of a drop-off location.
type LocationDTO struct {
	ID          string         `json:"id"`
	Name        string         `json:"nome"`
	Site        string         `json:"site"`
	Coordinates types.GeoPoint `json:"coordenadas"`
	Address     string         `json:"endereco"`
	Image       string         `json:"imagem"`
	BinCount    int            `json:"qtdLixeiras"`
	Dates       Dates          `json:"datas"`
}

// CreateLocationInput carries the caller-supplied fields of a new location.
type CreateLocationInput struct {
	ID          string
	Name        string
	Site        string
	Coordinates types.GeoPoint
	Address     string
	Image       string
}

// UpdateLocationInput lists the fields the general update path may change.
// Id, bin count and dates have dedicated operations and are absent here.
type UpdateLocationInput struct {
	Name        *string
	Site        *string
	Coordinates *types.GeoPoint
	Address     *string
	Image       *string
}

// BinInstallResult reports the outcome of installing a new bin.
type BinInstallResult struct {
	ID                 string    `json:"id"`
	BinCount           int       `json:"novaQtd"`
	LastBinInstalledAt time.Time `json:"ultimaInstalacao"`
}

// NearestLocation is the closest location to a query point.
type NearestLocation struct {
	ID             string  `json:"id"`
	Name           string  `json:"nome"`
	DistanceMeters float64 `json:"distanciaMetros"`
}

func (u UpdateLocationInput) isEmpty() bool {
	return u.Name == nil && u.Site == nil && u.Coordinates == nil && u.Address == nil && u.Image == nil
}

func (u UpdateLocationInput) columns() map[string]any {
	cols := map[string]any{}
	if u.Name != nil {
		cols["name"] = *u.Name
	}
	if u.Site != nil {
		cols["site"] = *u.Site
	}
	if u.Coordinates != nil {
		cols["coordinates"] = *u.Coordinates
	}
	if u.Address != nil {
		cols["address"] = *u.Address
	}
	if u.Image != nil {
		cols["image"] = *u.Image
	}
	return cols
}

func FromModel(m *models.Location) *LocationDTO {
	if m == nil {
		return nil
	}
	return &LocationDTO{
		ID:          m.ID,
		Name:        m.Name,
		Site:        m.Site,
		Coordinates: m.Coordinates,
		Address:     m.Address,
		Image:       m.Image,
		BinCount:    m.BinCount,
		Dates: Dates{
			InauguratedAt:      m.InauguratedAt,
			LastBinInstalledAt: m.LastBinInstalledAt,
		},
	}
}

func (c CreateLocationInput) toModel(at time.Time) *models.Location {
	return &models.Location{
		ID:                 c.ID,
		Name:               c.Name,
		Site:               c.Site,
		Coordinates:        c.Coordinates,
		Address:            c.Address,
		Image:              c.Image,
		BinCount:           1,
		InauguratedAt:      at,
		LastBinInstalledAt: at,
	}
}
