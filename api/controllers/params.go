package controllers

import (
	"math"
	"net/http"

	"github.com/angelmondragon/foodgram-backend/api/middleware"
	"github.com/angelmondragon/foodgram-backend/api/validators"
	"github.com/angelmondragon/foodgram-backend/internal/follows"
	"github.com/angelmondragon/foodgram-backend/internal/recipes"
	pkgAuth "github.com/angelmondragon/foodgram-backend/pkg/auth"
	"github.com/angelmondragon/foodgram-backend/pkg/pagination"
)

// parsePage reads page/limit. Oversized limits are clamped rather than rejected.
func parsePage(r *http.Request) (pagination.Params, error) {
	page, err := validators.ParseQueryInt(r, pagination.PageParam, 1, 1, math.MaxInt32)
	if err != nil {
		return pagination.Params{}, err
	}
	limit, err := validators.ParseQueryInt(r, pagination.LimitParam, pagination.DefaultLimit, 1, math.MaxInt32)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{Page: page, Limit: limit}.Normalize(), nil
}

func parseRecipesLimit(r *http.Request) (int, error) {
	limit, err := validators.ParseQueryOptionalInt(r, "recipes_limit", 0, math.MaxInt32)
	if err != nil {
		return 0, err
	}
	if limit == nil {
		return follows.NoRecipesLimit, nil
	}
	return *limit, nil
}

func parseRecipeFilter(r *http.Request) (recipes.Filter, error) {
	authors, err := validators.ParseQueryIDs(r, "author")
	if err != nil {
		return recipes.Filter{}, err
	}
	favorited, err := validators.ParseQueryBool(r, "is_favorited")
	if err != nil {
		return recipes.Filter{}, err
	}
	inCart, err := validators.ParseQueryBool(r, "is_in_shopping_cart")
	if err != nil {
		return recipes.Filter{}, err
	}
	return recipes.Filter{
		AuthorIDs:     authors,
		TagSlugs:      validators.ParseQueryList(r, "tags"),
		FavoritedOnly: favorited != nil && *favorited,
		InCartOnly:    inCart != nil && *inCart,
	}, nil
}

func actorFrom(r *http.Request) recipes.Actor {
	ctx := r.Context()
	return recipes.Actor{
		UserID:  middleware.ViewerIDFromContext(ctx),
		IsAdmin: middleware.RoleFromContext(ctx) == string(pkgAuth.RoleAdmin),
	}
}
