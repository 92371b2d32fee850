package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/foodgram-backend/internal/cart"
	"github.com/angelmondragon/foodgram-backend/internal/recipes"
	pkgerrors "github.com/angelmondragon/foodgram-backend/pkg/errors"
)

func TestFavoriteAddReturnsCompactCard(t *testing.T) {
	svc := stubToggleService{
		add: func(_ context.Context, userID, recipeID int64) (recipes.CompactDTO, error) {
			require.Equal(t, int64(3), userID)
			return recipes.CompactDTO{ID: recipeID, Name: "Soup", CookingTime: 10}, nil
		},
	}
	rec := httptest.NewRecorder()
	FavoriteAdd(svc, nil).ServeHTTP(rec, newRequest(http.MethodPost, "/api/recipes/9/favorite", "", 3, map[string]string{"recipeId": "9"}))

	require.Equal(t, http.StatusCreated, rec.Code)
	var card recipes.CompactDTO
	decodeData(t, rec, &card)
	require.Equal(t, recipes.CompactDTO{ID: 9, Name: "Soup", CookingTime: 10}, card)
}

func TestFavoriteAddDuplicateIsBadRequest(t *testing.T) {
	svc := stubToggleService{
		add: func(context.Context, int64, int64) (recipes.CompactDTO, error) {
			return recipes.CompactDTO{}, pkgerrors.New(pkgerrors.CodeConflict, "recipe already in favorites")
		},
	}
	rec := httptest.NewRecorder()
	FavoriteAdd(svc, nil).ServeHTTP(rec, newRequest(http.MethodPost, "/api/recipes/9/favorite", "", 3, map[string]string{"recipeId": "9"}))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "CONFLICT", decodeErrorCode(t, rec))
}

func TestFavoriteRemoveMissingIsNotFound(t *testing.T) {
	svc := stubToggleService{
		remove: func(context.Context, int64, int64) error { return notFound("favorite") },
	}
	rec := httptest.NewRecorder()
	FavoriteRemove(svc, nil).ServeHTTP(rec, newRequest(http.MethodDelete, "/api/recipes/9/favorite", "", 3, map[string]string{"recipeId": "9"}))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestShoppingCartRemoveReturnsNoContent(t *testing.T) {
	svc := stubToggleService{
		remove: func(context.Context, int64, int64) error { return nil },
	}
	rec := httptest.NewRecorder()
	ShoppingCartRemove(svc, nil).ServeHTTP(rec, newRequest(http.MethodDelete, "/api/recipes/9/shopping_cart", "", 3, map[string]string{"recipeId": "9"}))
	require.Equal(t, http.StatusNoContent, rec.Code)
}

func TestShoppingCartDownloadServesAttachment(t *testing.T) {
	svc := stubToggleService{lines: []cart.ShoppingListLine{
		{Name: "Flour", MeasurementUnit: "g", Total: 300},
		{Name: "Salt", MeasurementUnit: "g", Total: 8},
	}}
	rec := httptest.NewRecorder()
	ShoppingCartDownload(svc, nil).ServeHTTP(rec, newRequest(http.MethodGet, "/api/recipes/download_shopping_cart", "", 3, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, cart.ShoppingListContentType, rec.Header().Get("Content-Type"))
	require.True(t, strings.Contains(rec.Header().Get("Content-Disposition"), cart.ShoppingListFilename))
	require.Contains(t, rec.Body.String(), "Flour - 300/g")
	require.Contains(t, rec.Body.String(), "Salt - 8/g")
}
