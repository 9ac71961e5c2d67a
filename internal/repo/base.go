package repo

import (
	"context"

	"gorm.io/gorm"
)

// Base is embedded by every repository. Methods taking a tx run inside the
// caller's transaction when one is given.
type Base struct {
	db *gorm.DB
}

func NewBase(db *gorm.DB) Base {
	return Base{db: db}
}

// DB scopes the shared connection to ctx.
func (b Base) DB(ctx context.Context) *gorm.DB {
	if ctx == nil {
		return b.db
	}
	return b.db.WithContext(ctx)
}

// Conn returns tx scoped to ctx, or the shared connection when tx is nil.
func (b Base) Conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	switch {
	case tx == nil:
		return b.DB(ctx)
	case ctx == nil:
		return tx
	default:
		return tx.WithContext(ctx)
	}
}

// Exists reports whether a row of model has column equal to value.
func (b Base) Exists(ctx context.Context, model any, column string, value any) (bool, error) {
	var count int64
	err := b.DB(ctx).Model(model).Where(column+" = ?", value).Limit(1).Count(&count).Error
	return count > 0, err
}

// Affected unpacks a write result into the row count and its error.
func Affected(res *gorm.DB) (int64, error) {
	return res.RowsAffected, res.Error
}
