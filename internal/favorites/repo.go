package favorites

import (
	"context"

	"github.com/angelmondragon/foodgram-backend/internal/repo"
	"github.com/angelmondragon/foodgram-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository encapsulates favorite persistence.
type Repository struct {
	base repo.Base
}

// NewRepository constructs a favorites repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{base: repo.NewBase(db)}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{base: r.base.WithTx(tx)}
}

// Exists reports whether userID already favorited recipeID.
func (r *Repository) Exists(ctx context.Context, userID, recipeID int64) (bool, error) {
	return r.base.Exists(ctx, &models.Favorite{}, "user_id = ? AND recipe_id = ?", userID, recipeID)
}

// Add inserts the favorite; a duplicate surfaces as a unique violation.
func (r *Repository) Add(ctx context.Context, userID, recipeID int64) error {
	return r.base.DB(ctx).Create(&models.Favorite{UserID: userID, RecipeID: recipeID}).Error
}

// Remove deletes the favorite and reports whether a row existed.
func (r *Repository) Remove(ctx context.Context, userID, recipeID int64) (bool, error) {
	result := r.base.DB(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.Favorite{})
	return result.RowsAffected > 0, result.Error
}
