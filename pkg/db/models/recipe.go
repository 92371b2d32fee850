package models

import "time"

// Recipe is a published dish. Ingredients and tags hang off the join models
// below and are managed by the recipes repository.
type Recipe struct {
	ID          int64     `gorm:"column:id;primaryKey;autoIncrement"`
	AuthorID    int64     `gorm:"column:author_id;not null;index:recipes_author_id_idx"`
	Name        string    `gorm:"column:name;type:varchar(200);not null"`
	Image       string    `gorm:"column:image;not null;default:''"`
	Text        string    `gorm:"column:text;not null"`
	CookingTime int       `gorm:"column:cooking_time;not null;check:recipes_cooking_time_check,cooking_time >= 1"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime;index:recipes_created_at_idx"`

	Author *User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}

// RecipeIngredient carries the amount of one ingredient in one recipe.
type RecipeIngredient struct {
	ID           int64 `gorm:"column:id;primaryKey;autoIncrement"`
	RecipeID     int64 `gorm:"column:recipe_id;not null;uniqueIndex:recipe_ingredients_recipe_ingredient_key"`
	IngredientID int64 `gorm:"column:ingredient_id;not null;index:recipe_ingredients_ingredient_id_idx;uniqueIndex:recipe_ingredients_recipe_ingredient_key"`
	Amount       int   `gorm:"column:amount;not null;check:recipe_ingredients_amount_check,amount >= 1"`

	Recipe     *Recipe     `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Ingredient *Ingredient `gorm:"foreignKey:IngredientID;constraint:OnDelete:CASCADE"`
}

type RecipeTag struct {
	ID       int64 `gorm:"column:id;primaryKey;autoIncrement"`
	RecipeID int64 `gorm:"column:recipe_id;not null;uniqueIndex:recipe_tags_recipe_tag_key"`
	TagID    int64 `gorm:"column:tag_id;not null;index:recipe_tags_tag_id_idx;uniqueIndex:recipe_tags_recipe_tag_key"`

	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
	Tag    *Tag    `gorm:"foreignKey:TagID;constraint:OnDelete:CASCADE"`
}
