package controllers

import (
	"net/http"

	"github.com/angelmondragon/foodgram-backend/api/middleware"
	"github.com/angelmondragon/foodgram-backend/api/responses"
	"github.com/angelmondragon/foodgram-backend/api/validators"
	"github.com/angelmondragon/foodgram-backend/internal/recipes"
	pkgerrors "github.com/angelmondragon/foodgram-backend/pkg/errors"
	"github.com/angelmondragon/foodgram-backend/pkg/logger"
	"github.com/angelmondragon/foodgram-backend/pkg/pagination"
)

type recipeIngredientPayload struct {
	ID     int64 `json:"id" validate:"gt=0"`
	Amount int   `json:"amount" validate:"gte=1"`
}

type recipePayload struct {
	Ingredients []recipeIngredientPayload `json:"ingredients" validate:"required,min=1,unique=ID,dive"`
	Tags        []int64                   `json:"tags" validate:"required,min=1,unique,dive,gt=0"`
	Image       string                    `json:"image" validate:"max=500"`
	Name        string                    `json:"name" validate:"required,max=200"`
	Text        string                    `json:"text" validate:"required"`
	CookingTime int                       `json:"cooking_time" validate:"gte=1"`
}

func (p recipePayload) toInput() recipes.WriteInput {
	items := make([]recipes.IngredientAmountInput, 0, len(p.Ingredients))
	for _, item := range p.Ingredients {
		items = append(items, recipes.IngredientAmountInput{ID: item.ID, Amount: item.Amount})
	}
	return recipes.WriteInput{
		Ingredients: items,
		Tags:        p.Tags,
		Image:       validators.SanitizeString(p.Image, 500),
		Name:        p.Name,
		Text:        p.Text,
		CookingTime: p.CookingTime,
	}
}

// RecipesList returns a filtered, paginated recipe listing.
func RecipesList(svc recipes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "recipes service unavailable"))
			return
		}

		params, err := parsePage(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		filter, err := parseRecipeFilter(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		items, total, err := svc.List(ctx, middleware.ViewerIDFromContext(ctx), filter, params)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, pagination.NewPage(items, total, params, r.URL))
	}
}

func RecipeGet(svc recipes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.ParsePathID(r, "recipeId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		dto, err := svc.Get(ctx, middleware.ViewerIDFromContext(ctx), id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// RecipeCreate publishes a recipe authored by the caller.
func RecipeCreate(svc recipes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		var payload recipePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		dto, err := svc.Create(ctx, actorFrom(r), payload.toInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteCreated(w, dto)
	}
}

// RecipeUpdate replaces a recipe's fields, ingredients and tags.
func RecipeUpdate(svc recipes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.ParsePathID(r, "recipeId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		var payload recipePayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		dto, err := svc.Update(ctx, actorFrom(r), id, payload.toInput())
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func RecipeDelete(svc recipes.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		id, err := validators.ParsePathID(r, "recipeId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.Delete(ctx, actorFrom(r), id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}
