package analytics

import (
	"context"
	"time"

	"github.com/angelmondragon/ecotech-backend/internal/repo"
	"github.com/angelmondragon/ecotech-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists cached analytics summaries.
type Repository struct {
	repo.Base
}

// NewRepository constructs an analytics repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Init writes the zeroed summary created alongside a new user.
func (r *Repository) Init(ctx context.Context, tx *gorm.DB, uid string, at time.Time) error {
	return r.Conn(ctx, tx).Create(&models.Analytics{UID: uid, LastUpdated: at}).Error
}

// Upsert creates or merges the summary keyed by uid.
func (r *Repository) Upsert(ctx context.Context, row *models.Analytics) error {
	return r.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "uid"}},
		DoUpdates: clause.AssignmentColumns([]string{"points", "recycled_electronics", "by_category", "last_updated"}),
	}).Create(row).Error
}

// FindByUID loads the cached summary for a user.
func (r *Repository) FindByUID(ctx context.Context, uid string) (*models.Analytics, error) {
	var row models.Analytics
	if err := r.DB(ctx).First(&row, "uid = ?", uid).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// Delete removes the summary; a missing row is not an error.
func (r *Repository) Delete(ctx context.Context, tx *gorm.DB, uid string) (int64, error) {
	return repo.Affected(r.Conn(ctx, tx).Where("uid = ?", uid).Delete(&models.Analytics{}))
}
