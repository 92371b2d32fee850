package follows

import (
	"context"

	"github.com/angelmondragon/foodgram-backend/internal/repo"
	"github.com/angelmondragon/foodgram-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository encapsulates follow persistence.
type Repository struct {
	base repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{base: repo.NewBase(db)}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{base: r.base.WithTx(tx)}
}

func (r *Repository) Exists(ctx context.Context, userID, authorID int64) (bool, error) {
	return r.base.Exists(ctx, &models.Follow{}, "user_id = ? AND author_id = ?", userID, authorID)
}

func (r *Repository) Add(ctx context.Context, userID, authorID int64) error {
	return r.base.DB(ctx).Create(&models.Follow{UserID: userID, AuthorID: authorID}).Error
}

// Remove deletes the follow and reports whether a row existed.
func (r *Repository) Remove(ctx context.Context, userID, authorID int64) (bool, error) {
	result := r.base.DB(ctx).
		Where("user_id = ? AND author_id = ?", userID, authorID).
		Delete(&models.Follow{})
	return result.RowsAffected > 0, result.Error
}
