package follows

import (
	"github.com/angelmondragon/foodgram-backend/internal/recipes"
	"github.com/angelmondragon/foodgram-backend/internal/users"
)

// NoRecipesLimit requests every recipe of each author.
const NoRecipesLimit = -1

// AuthorDTO is a followed author with a preview of their recipes.
type AuthorDTO struct {
	users.UserDTO
	RecipesCount int64                `json:"recipes_count"`
	Recipes      []recipes.CompactDTO `json:"recipes"`
}
