package locations

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/angelmondragon/ecotech-backend/pkg/db"
	"github.com/angelmondragon/ecotech-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/ecotech-backend/pkg/errors"
	"github.com/angelmondragon/ecotech-backend/pkg/geo"
	"github.com/angelmondragon/ecotech-backend/pkg/types"
	"gorm.io/gorm"
)

type locationsRepository interface {
	Create(ctx context.Context, location *models.Location) error
	FindByID(ctx context.Context, id string) (*models.Location, error)
	FindByIDTx(ctx context.Context, tx *gorm.DB, id string) (*models.Location, error)
	List(ctx context.Context) ([]models.Location, error)
	Update(ctx context.Context, id string, columns map[string]any) (int64, error)
	IncrementBins(ctx context.Context, tx *gorm.DB, id string, at time.Time) (int64, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes location operations. Deletion lives in the cascade maintainer.
type Service interface {
	Create(ctx context.Context, input CreateLocationInput) (*LocationDTO, error)
	Get(ctx context.Context, id string) (*LocationDTO, error)
	List(ctx context.Context) ([]LocationDTO, error)
	Update(ctx context.Context, id string, input UpdateLocationInput) (*LocationDTO, error)
	InstallBin(ctx context.Context, id string) (*BinInstallResult, error)
	FindNearest(ctx context.Context, lat, lng float64) (*NearestLocation, error)
}

type service struct {
	repo locationsRepository
	tx   txRunner
	now  func() time.Time
}

// NewService builds a location service.
func NewService(repo locationsRepository, tx txRunner) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("locations repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	return &service{repo: repo, tx: tx, now: time.Now}, nil
}

func (s *service) Create(ctx context.Context, input CreateLocationInput) (*LocationDTO, error) {
	input.ID = strings.TrimSpace(input.ID)
	if input.ID == "" || strings.TrimSpace(input.Name) == "" || strings.TrimSpace(input.Site) == "" ||
		strings.TrimSpace(input.Address) == "" || strings.TrimSpace(input.Image) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "id, nome, site, endereco and imagem are required")
	}
	if err := validatePoint(input.Coordinates); err != nil {
		return nil, err
	}

	location := input.toModel(s.now().UTC())
	if err := s.repo.Create(ctx, location); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "location already exists").WithDetails(map[string]any{"id": input.ID})
		}
		return nil, pkgerrors.Store(err, "create location")
	}
	return FromModel(location), nil
}

func (s *service) Get(ctx context.Context, id string) (*LocationDTO, error) {
	location, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if db.IsNotFound(err) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "location not found")
		}
		return nil, pkgerrors.Store(err, "load location")
	}
	return FromModel(location), nil
}

func (s *service) List(ctx context.Context) ([]LocationDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Store(err, "list locations")
	}
	out := make([]LocationDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) Update(ctx context.Context, id string, input UpdateLocationInput) (*LocationDTO, error) {
	if input.Coordinates != nil {
		if err := validatePoint(*input.Coordinates); err != nil {
			return nil, err
		}
	}
	if _, err := s.Get(ctx, id); err != nil {
		return nil, err
	}
	if !input.isEmpty() {
		if _, err := s.repo.Update(ctx, id, input.columns()); err != nil {
			return nil, pkgerrors.Store(err, "update location")
		}
	}
	return s.Get(ctx, id)
}

// InstallBin atomically increments the bin count and stamps the install time.
func (s *service) InstallBin(ctx context.Context, id string) (*BinInstallResult, error) {
	now := s.now().UTC()
	var result *BinInstallResult
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		rows, err := s.repo.IncrementBins(ctx, tx, id, now)
		if err != nil {
			return pkgerrors.Store(err, "increment bins")
		}
		if rows == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "location not found")
		}
		location, err := s.repo.FindByIDTx(ctx, tx, id)
		if err != nil {
			return pkgerrors.Store(err, "reload location")
		}
		result = &BinInstallResult{
			ID:                 location.ID,
			BinCount:           location.BinCount,
			LastBinInstalledAt: location.LastBinInstalledAt,
		}
		return nil
	})
	if err != nil {
		if pkgerrors.As(err) != nil {
			return nil, err
		}
		return nil, pkgerrors.Store(err, "install bin")
	}
	return result, nil
}

func validatePoint(point types.GeoPoint) error {
	lat, lng := 0.0, 0.0
	if point.Lat != nil {
		lat = *point.Lat
	}
	if point.Lng != nil {
		lng = *point.Lng
	}
	if !geo.ValidCoordinate(lat, lng) {
		return pkgerrors.New(pkgerrors.CodeValidation, "coordenadas out of range").
			WithDetails(map[string]any{"field": "coordenadas"})
	}
	return nil
}
