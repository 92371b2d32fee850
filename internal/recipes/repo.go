package recipes

import (
	"context"

	"github.com/angelmondragon/foodgram-backend/internal/repo"
	"github.com/angelmondragon/foodgram-backend/pkg/db/models"
	"gorm.io/gorm"
)

const (
	rowColumns = "recipes.id, recipes.author_id, recipes.name, recipes.image, recipes.text, recipes.cooking_time, " +
		favoritedClause + " AS is_favorited, " +
		inCartClause + " AS is_in_shopping_cart"
	compactColumns = "recipes.id, recipes.author_id, recipes.name, recipes.image, recipes.cooking_time"
	newestFirst    = "recipes.created_at DESC, recipes.id DESC"
)

// Repository exposes recipe persistence operations.
type Repository struct {
	base repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{base: repo.NewBase(db)}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{base: r.base.WithTx(tx)}
}

// FindByID loads the bare recipe row.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.base.DB(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Compact loads the short card for one recipe.
func (r *Repository) Compact(ctx context.Context, id int64) (CompactDTO, error) {
	var row compactRow
	err := r.base.DB(ctx).
		Model(&models.Recipe{}).
		Select(compactColumns).
		Where("recipes.id = ?", id).
		Take(&row).Error
	if err != nil {
		return CompactDTO{}, err
	}
	return row.toDTO(), nil
}

// Row loads one recipe with the viewer's flags.
func (r *Repository) Row(ctx context.Context, viewerID, id int64) (recipeRow, error) {
	var row recipeRow
	err := r.rowQuery(ctx, viewerID).Where("recipes.id = ?", id).Take(&row).Error
	return row, err
}

// List returns a filtered page of recipes, newest first.
func (r *Repository) List(ctx context.Context, viewerID int64, filter Filter, limit, offset int) ([]recipeRow, error) {
	var rows []recipeRow
	err := filter.Apply(r.rowQuery(ctx, viewerID), viewerID).
		Order(newestFirst).
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Count returns how many recipes match filter.
func (r *Repository) Count(ctx context.Context, viewerID int64, filter Filter) (int64, error) {
	var total int64
	err := filter.Apply(r.base.DB(ctx).Model(&models.Recipe{}), viewerID).Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

// TagsFor batch-loads the tags of every listed recipe.
func (r *Repository) TagsFor(ctx context.Context, recipeIDs []int64) (map[int64][]recipeTagRow, error) {
	out := make(map[int64][]recipeTagRow, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return out, nil
	}
	var rows []recipeTagRow
	err := r.base.DB(ctx).
		Table("recipe_tags").
		Select("recipe_tags.recipe_id, tags.id, tags.name, tags.color, tags.slug").
		Joins("JOIN tags ON tags.id = recipe_tags.tag_id").
		Where("recipe_tags.recipe_id IN ?", recipeIDs).
		Order("tags.name ASC, tags.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.RecipeID] = append(out[row.RecipeID], row)
	}
	return out, nil
}

// IngredientsFor batch-loads the ingredient amounts of every listed recipe in
// the order they were attached.
func (r *Repository) IngredientsFor(ctx context.Context, recipeIDs []int64) (map[int64][]recipeIngredientRow, error) {
	out := make(map[int64][]recipeIngredientRow, len(recipeIDs))
	if len(recipeIDs) == 0 {
		return out, nil
	}
	var rows []recipeIngredientRow
	err := r.base.DB(ctx).
		Table("recipe_ingredients").
		Select("recipe_ingredients.recipe_id, ingredients.id, ingredients.name, ingredients.measurement_unit, recipe_ingredients.amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Where("recipe_ingredients.recipe_id IN ?", recipeIDs).
		Order("recipe_ingredients.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.RecipeID] = append(out[row.RecipeID], row)
	}
	return out, nil
}

// CompactByAuthors returns each author's newest recipes as cards. A negative
// limit returns every recipe.
func (r *Repository) CompactByAuthors(ctx context.Context, authorIDs []int64, limit int) (map[int64][]CompactDTO, error) {
	out := make(map[int64][]CompactDTO, len(authorIDs))
	if len(authorIDs) == 0 || limit == 0 {
		return out, nil
	}

	ranked := r.base.DB(ctx).
		Model(&models.Recipe{}).
		Select(compactColumns+", ROW_NUMBER() OVER (PARTITION BY recipes.author_id ORDER BY "+newestFirst+") AS rn").
		Where("recipes.author_id IN ?", authorIDs)

	query := r.base.DB(ctx).
		Table("(?) AS ranked", ranked).
		Select("id, author_id, name, image, cooking_time")
	if limit > 0 {
		query = query.Where("rn <= ?", limit)
	}

	var rows []compactRow
	if err := query.Order("author_id ASC, rn ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.AuthorID] = append(out[row.AuthorID], row.toDTO())
	}
	return out, nil
}

// CountByAuthors returns the number of recipes per author.
func (r *Repository) CountByAuthors(ctx context.Context, authorIDs []int64) (map[int64]int64, error) {
	out := make(map[int64]int64, len(authorIDs))
	if len(authorIDs) == 0 {
		return out, nil
	}
	var rows []struct {
		AuthorID int64
		Total    int64
	}
	err := r.base.DB(ctx).
		Model(&models.Recipe{}).
		Select("author_id, COUNT(*) AS total").
		Where("author_id IN ?", authorIDs).
		Group("author_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.AuthorID] = row.Total
	}
	return out, nil
}

// Create inserts the recipe row; associations are written separately.
func (r *Repository) Create(ctx context.Context, recipe *models.Recipe) error {
	return r.base.DB(ctx).Create(recipe).Error
}

// UpdateFields overwrites the scalar columns of a recipe.
func (r *Repository) UpdateFields(ctx context.Context, id int64, fields map[string]any) error {
	return r.base.DB(ctx).
		Model(&models.Recipe{}).
		Where("id = ?", id).
		Updates(fields).Error
}

// ReplaceIngredients drops the recipe's ingredient rows and writes rows.
func (r *Repository) ReplaceIngredients(ctx context.Context, recipeID int64, rows []models.RecipeIngredient) error {
	db := r.base.DB(ctx)
	if err := db.Where("recipe_id = ?", recipeID).Delete(&models.RecipeIngredient{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return db.Create(&rows).Error
}

// ReplaceTags drops the recipe's tag rows and writes rows.
func (r *Repository) ReplaceTags(ctx context.Context, recipeID int64, rows []models.RecipeTag) error {
	db := r.base.DB(ctx)
	if err := db.Where("recipe_id = ?", recipeID).Delete(&models.RecipeTag{}).Error; err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}
	return db.Create(&rows).Error
}

// Delete removes a recipe together with every row that references it.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	db := r.base.DB(ctx)
	dependents := []any{
		&models.RecipeIngredient{},
		&models.RecipeTag{},
		&models.Favorite{},
		&models.ShoppingCartItem{},
	}
	for _, model := range dependents {
		if err := db.Where("recipe_id = ?", id).Delete(model).Error; err != nil {
			return err
		}
	}
	result := db.Delete(&models.Recipe{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *Repository) rowQuery(ctx context.Context, viewerID int64) *gorm.DB {
	return r.base.DB(ctx).
		Model(&models.Recipe{}).
		Select(rowColumns, viewerID, viewerID)
}
