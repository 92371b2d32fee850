package models

import "time"

// Favorite links a user to a liked recipe.
type Favorite struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:favorites_user_recipe_key"`
	RecipeID  int64     `gorm:"column:recipe_id;not null;index:favorites_recipe_id_idx;uniqueIndex:favorites_user_recipe_key"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}
