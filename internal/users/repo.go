package users

import (
	"context"

	"github.com/angelmondragon/ecotech-backend/internal/repo"
	"github.com/angelmondragon/ecotech-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes user persistence operations.
type Repository struct {
	repo.Base
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{Base: repo.NewBase(db)}
}

// Create inserts a user, inside tx when one is supplied.
func (r *Repository) Create(ctx context.Context, tx *gorm.DB, user *models.User) error {
	return r.Conn(ctx, tx).Create(user).Error
}

// FindByID loads a user by uid.
func (r *Repository) FindByID(ctx context.Context, uid string) (*models.User, error) {
	var user models.User
	if err := r.DB(ctx).First(&user, "uid = ?", uid).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Exists performs a point read for the uid.
func (r *Repository) Exists(ctx context.Context, uid string) (bool, error) {
	return r.Base.Exists(ctx, &models.User{}, "uid", uid)
}

// List returns every user ordered by uid.
func (r *Repository) List(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.DB(ctx).Order("uid ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// ListUIDs returns every user id ordered ascending.
func (r *Repository) ListUIDs(ctx context.Context) ([]string, error) {
	var uids []string
	if err := r.DB(ctx).Model(&models.User{}).Order("uid ASC").Pluck("uid", &uids).Error; err != nil {
		return nil, err
	}
	return uids, nil
}

// Update applies the column patch and reports the affected row count.
func (r *Repository) Update(ctx context.Context, uid string, columns map[string]any) (int64, error) {
	return repo.Affected(r.DB(ctx).Model(&models.User{}).Where("uid = ?", uid).Updates(columns))
}

// Delete removes the user row.
func (r *Repository) Delete(ctx context.Context, tx *gorm.DB, uid string) (int64, error) {
	return repo.Affected(r.Conn(ctx, tx).Where("uid = ?", uid).Delete(&models.User{}))
}
