package models

import "gorm.io/gorm"

// All lists every persisted model in dependency order.
func All() []any {
	return []any{
		&User{},
		&Ingredient{},
		&Tag{},
		&Recipe{},
		&RecipeIngredient{},
		&RecipeTag{},
		&Favorite{},
		&ShoppingCartItem{},
		&Follow{},
	}
}

// AutoMigrate creates the schema straight from the model tags. Postgres
// deployments use the goose migrations instead; this serves SQLite databases.
func AutoMigrate(conn *gorm.DB) error {
	return conn.AutoMigrate(All()...)
}
