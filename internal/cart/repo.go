package cart

import (
	"context"

	"github.com/angelmondragon/foodgram-backend/internal/repo"
	"github.com/angelmondragon/foodgram-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository encapsulates shopping cart persistence.
type Repository struct {
	base repo.Base
}

// NewRepository constructs a cart repository bound to the provided gorm DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{base: repo.NewBase(db)}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{base: r.base.WithTx(tx)}
}

// Exists reports whether recipeID is already in userID's cart.
func (r *Repository) Exists(ctx context.Context, userID, recipeID int64) (bool, error) {
	return r.base.Exists(ctx, &models.ShoppingCartItem{}, "user_id = ? AND recipe_id = ?", userID, recipeID)
}

// Add inserts the cart entry; a duplicate surfaces as a unique violation.
func (r *Repository) Add(ctx context.Context, userID, recipeID int64) error {
	return r.base.DB(ctx).Create(&models.ShoppingCartItem{UserID: userID, RecipeID: recipeID}).Error
}

// Remove deletes the cart entry and reports whether a row existed.
func (r *Repository) Remove(ctx context.Context, userID, recipeID int64) (bool, error) {
	result := r.base.DB(ctx).
		Where("user_id = ? AND recipe_id = ?", userID, recipeID).
		Delete(&models.ShoppingCartItem{})
	return result.RowsAffected > 0, result.Error
}

// ShoppingList sums ingredient amounts over every recipe in userID's cart,
// one line per (name, unit), ordered by name then unit.
func (r *Repository) ShoppingList(ctx context.Context, userID int64) ([]ShoppingListLine, error) {
	var lines []ShoppingListLine
	err := r.base.DB(ctx).
		Table("shopping_cart_items AS sci").
		Select("i.name AS name, i.measurement_unit AS measurement_unit, SUM(ri.amount) AS total").
		Joins("JOIN recipe_ingredients ri ON ri.recipe_id = sci.recipe_id").
		Joins("JOIN ingredients i ON i.id = ri.ingredient_id").
		Where("sci.user_id = ?", userID).
		Group("i.name, i.measurement_unit").
		Order("i.name ASC, i.measurement_unit ASC").
		Scan(&lines).Error
	if err != nil {
		return nil, err
	}
	return lines, nil
}
