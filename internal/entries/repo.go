package entries

import (
	"context"

	"github.com/angelmondragon/ecotech-backend/internal/repo"
	"github.com/angelmondragon/ecotech-backend/pkg/db/models"
	"github.com/angelmondragon/ecotech-backend/pkg/enums"
	"github.com/angelmondragon/ecotech-backend/pkg/pagination"
	"gorm.io/gorm"
)

const listOrder = "created_at ASC, id ASC"

// Repository exposes recycling entry persistence.
type Repository struct {
	repo.Base
}

// NewRepository constructs an entries repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

func (r *Repository) Create(ctx context.Context, entry *models.RecyclingEntry) error {
	return r.DB(ctx).Create(entry).Error
}

func (r *Repository) FindByID(ctx context.Context, id string) (*models.RecyclingEntry, error) {
	var entry models.RecyclingEntry
	if err := r.DB(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *Repository) List(ctx context.Context) ([]models.RecyclingEntry, error) {
	return r.find(r.DB(ctx))
}

// ListPage returns up to limit entries strictly after the cursor in list
// order, plus one extra row when a further page exists.
func (r *Repository) ListPage(ctx context.Context, limit int, after *pagination.Cursor) ([]models.RecyclingEntry, error) {
	q := r.DB(ctx)
	if after != nil {
		q = q.Where("(created_at, id) > (?, ?)", after.CreatedAt, after.ID)
	}
	return r.find(q.Limit(limit))
}

// ListByOwner returns every entry owned by uid regardless of visibility.
func (r *Repository) ListByOwner(ctx context.Context, uid string) ([]models.RecyclingEntry, error) {
	return r.find(r.DB(ctx).Where("uid = ?", uid))
}

// ListVisibleByOwner returns the owner's active entries only.
func (r *Repository) ListVisibleByOwner(ctx context.Context, uid string) ([]models.RecyclingEntry, error) {
	return r.find(r.DB(ctx).Where("uid = ? AND visibility = ?", uid, enums.EntryVisibilityActive))
}

func (r *Repository) ListByLocation(ctx context.Context, locationID string) ([]models.RecyclingEntry, error) {
	return r.find(r.DB(ctx).Where("location_id = ?", locationID))
}

func (r *Repository) ListByOwnerAndLocation(ctx context.Context, uid, locationID string) ([]models.RecyclingEntry, error) {
	return r.find(r.DB(ctx).Where("uid = ? AND location_id = ?", uid, locationID))
}

// Update applies the column patch to one entry.
func (r *Repository) Update(ctx context.Context, id string, columns map[string]any) (int64, error) {
	return repo.Affected(r.DB(ctx).Model(&models.RecyclingEntry{}).Where("id = ?", id).Updates(columns))
}

// SetVisibility moves one entry to the given lifecycle state.
func (r *Repository) SetVisibility(ctx context.Context, id string, state enums.EntryVisibility) (int64, error) {
	return repo.Affected(r.DB(ctx).Model(&models.RecyclingEntry{}).Where("id = ?", id).Update("visibility", state))
}

// HideByOwner hides every entry owned by uid in one statement.
func (r *Repository) HideByOwner(ctx context.Context, tx *gorm.DB, uid string) (int64, error) {
	return repo.Affected(r.Conn(ctx, tx).Model(&models.RecyclingEntry{}).
		Where("uid = ? AND visibility <> ?", uid, enums.EntryVisibilityHidden).
		Update("visibility", enums.EntryVisibilityHidden))
}

// DetachOwner clears the owner reference on every entry owned by uid.
func (r *Repository) DetachOwner(ctx context.Context, tx *gorm.DB, uid string) (int64, error) {
	return repo.Affected(r.Conn(ctx, tx).Model(&models.RecyclingEntry{}).
		Where("uid = ?", uid).
		Update("uid", gorm.Expr("NULL")))
}

// Delete hard-deletes one entry.
func (r *Repository) Delete(ctx context.Context, id string) (int64, error) {
	return repo.Affected(r.DB(ctx).Where("id = ?", id).Delete(&models.RecyclingEntry{}))
}

func (r *Repository) find(q *gorm.DB) ([]models.RecyclingEntry, error) {
	var rows []models.RecyclingEntry
	if err := q.Order(listOrder).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
