package models

import "time"

// ShoppingCartItem places a recipe in a user's shopping basket.
type ShoppingCartItem struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:shopping_cart_items_user_recipe_key"`
	RecipeID  int64     `gorm:"column:recipe_id;not null;index:shopping_cart_items_recipe_id_idx;uniqueIndex:shopping_cart_items_user_recipe_key"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Recipe *Recipe `gorm:"foreignKey:RecipeID;constraint:OnDelete:CASCADE"`
}
