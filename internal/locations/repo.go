package locations

import (
	"context"
	"time"

	"github.com/angelmondragon/ecotech-backend/internal/repo"
	"github.com/angelmondragon/ecotech-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes location persistence.
type Repository struct {
	repo.Base
}

// NewRepository constructs a locations repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) Create(ctx context.Context, location *models.Location) error {
	return r.DB(ctx).Create(location).Error
}

func (r *Repository) FindByID(ctx context.Context, id string) (*models.Location, error) {
	return r.findByID(r.DB(ctx), id)
}

// FindByIDTx reads a location inside tx.
func (r *Repository) FindByIDTx(ctx context.Context, tx *gorm.DB, id string) (*models.Location, error) {
	return r.findByID(r.Conn(ctx, tx), id)
}

// Exists performs a point read for the id.
func (r *Repository) Exists(ctx context.Context, id string) (bool, error) {
	return r.Base.Exists(ctx, &models.Location{}, "id", id)
}

// List returns every location ordered by id so scans are deterministic.
func (r *Repository) List(ctx context.Context) ([]models.Location, error) {
	var rows []models.Location
	if err := r.DB(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) Update(ctx context.Context, id string, columns map[string]any) (int64, error) {
	return repo.Affected(r.DB(ctx).Model(&models.Location{}).Where("id = ?", id).Updates(columns))
}

// IncrementBins bumps bin_count in a single statement so concurrent installs
// never lose an increment.
func (r *Repository) IncrementBins(ctx context.Context, tx *gorm.DB, id string, at time.Time) (int64, error) {
	return repo.Affected(r.Conn(ctx, tx).Model(&models.Location{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"bin_count":             gorm.Expr("bin_count + ?", 1),
			"last_bin_installed_at": at,
		}))
}

func (r *Repository) Delete(ctx context.Context, id string) (int64, error) {
	return repo.Affected(r.DB(ctx).Where("id = ?", id).Delete(&models.Location{}))
}

func (r *Repository) findByID(conn *gorm.DB, id string) (*models.Location, error) {
	var location models.Location
	if err := conn.First(&location, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &location, nil
}
