package recipes

import (
	"github.com/angelmondragon/foodgram-backend/internal/tags"
	"github.com/angelmondragon/foodgram-backend/internal/users"
)

// RecipeDTO is the full read projection of a recipe.
type RecipeDTO struct {
	ID               int64                 `json:"id"`
	Tags             []tags.TagDTO         `json:"tags"`
	Author           users.UserDTO         `json:"author"`
	Ingredients      []IngredientAmountDTO `json:"ingredients"`
	IsFavorited      bool                  `json:"is_favorited"`
	IsInShoppingCart bool                  `json:"is_in_shopping_cart"`
	Name             string                `json:"name"`
	Image            string                `json:"image"`
	Text             string                `json:"text"`
	CookingTime      int                   `json:"cooking_time"`
}

// IngredientAmountDTO is an ingredient as used by one recipe.
type IngredientAmountDTO struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// CompactDTO is the short recipe card returned by favorites, the shopping
// cart and subscription previews.
type CompactDTO struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Image       string `json:"image"`
	CookingTime int    `json:"cooking_time"`
}

// IngredientAmountInput references an existing ingredient by id.
type IngredientAmountInput struct {
	ID     int64 `json:"id"`
	Amount int   `json:"amount"`
}

// WriteInput is the payload accepted by create and update.
type WriteInput struct {
	Ingredients []IngredientAmountInput
	Tags        []int64
	Image       string
	Name        string
	Text        string
	CookingTime int
}

// Actor identifies the caller of a mutating operation.
type Actor struct {
	UserID  int64
	IsAdmin bool
}

func (a Actor) canModify(authorID int64) bool {
	return a.IsAdmin || a.UserID == authorID
}

// recipeRow is a recipe joined with the viewer's favorite and cart flags.
type recipeRow struct {
	ID               int64
	AuthorID         int64
	Name             string
	Image            string
	Text             string
	CookingTime      int
	IsFavorited      bool
	IsInShoppingCart bool
}

type recipeTagRow struct {
	RecipeID int64
	ID       int64
	Name     string
	Color    string
	Slug     string
}

type recipeIngredientRow struct {
	RecipeID        int64
	ID              int64
	Name            string
	MeasurementUnit string
	Amount          int
}

type compactRow struct {
	ID          int64
	AuthorID    int64
	Name        string
	Image       string
	CookingTime int
}

func (r compactRow) toDTO() CompactDTO {
	return CompactDTO{ID: r.ID, Name: r.Name, Image: r.Image, CookingTime: r.CookingTime}
}
