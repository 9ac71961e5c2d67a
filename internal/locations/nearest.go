package locations

import (
	"context"

	"github.com/angelmondragon/ecotech-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/ecotech-backend/pkg/errors"
	"github.com/angelmondragon/ecotech-backend/pkg/geo"
)

// FindNearest returns the location closest to (lat, lng) by great-circle
// distance. Locations missing either coordinate are skipped. On exact ties the
// first location in id order wins.
func (s *service) FindNearest(ctx context.Context, lat, lng float64) (*NearestLocation, error) {
	if !geo.ValidCoordinate(lat, lng) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "lat and lng must be valid coordinates")
	}

	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Store(err, "list locations")
	}

	best := nearestOf(rows, lat, lng)
	if best == nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "no location with coordinates")
	}
	return best, nil
}

func nearestOf(rows []models.Location, lat, lng float64) *NearestLocation {
	var best *NearestLocation
	for i := range rows {
		point := rows[i].Coordinates
		if !point.Complete() {
			continue
		}
		distance := geo.HaversineMeters(lat, lng, *point.Lat, *point.Lng)
		if best == nil || distance < best.DistanceMeters {
			best = &NearestLocation{
				ID:             rows[i].ID,
				Name:           rows[i].Name,
				DistanceMeters: distance,
			}
		}
	}
	return best
}
