package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/foodgram-backend/api/middleware"
	"github.com/angelmondragon/foodgram-backend/internal/cart"
	"github.com/angelmondragon/foodgram-backend/internal/follows"
	"github.com/angelmondragon/foodgram-backend/internal/recipes"
	"github.com/angelmondragon/foodgram-backend/internal/users"
	"github.com/angelmondragon/foodgram-backend/pkg/pagination"
	pkgerrors "github.com/angelmondragon/foodgram-backend/pkg/errors"
)

type stubRecipesService struct {
	list   func(ctx context.Context, viewerID int64, filter recipes.Filter, params pagination.Params) ([]recipes.RecipeDTO, int64, error)
	get    func(ctx context.Context, viewerID, id int64) (recipes.RecipeDTO, error)
	create func(ctx context.Context, actor recipes.Actor, input recipes.WriteInput) (recipes.RecipeDTO, error)
	update func(ctx context.Context, actor recipes.Actor, id int64, input recipes.WriteInput) (recipes.RecipeDTO, error)
	delete func(ctx context.Context, actor recipes.Actor, id int64) error
}

func (s stubRecipesService) List(ctx context.Context, viewerID int64, filter recipes.Filter, params pagination.Params) ([]recipes.RecipeDTO, int64, error) {
	return s.list(ctx, viewerID, filter, params)
}

func (s stubRecipesService) Get(ctx context.Context, viewerID, id int64) (recipes.RecipeDTO, error) {
	return s.get(ctx, viewerID, id)
}

func (s stubRecipesService) Create(ctx context.Context, actor recipes.Actor, input recipes.WriteInput) (recipes.RecipeDTO, error) {
	return s.create(ctx, actor, input)
}

func (s stubRecipesService) Update(ctx context.Context, actor recipes.Actor, id int64, input recipes.WriteInput) (recipes.RecipeDTO, error) {
	return s.update(ctx, actor, id, input)
}

func (s stubRecipesService) Delete(ctx context.Context, actor recipes.Actor, id int64) error {
	return s.delete(ctx, actor, id)
}

type stubToggleService struct {
	add    func(ctx context.Context, userID, recipeID int64) (recipes.CompactDTO, error)
	remove func(ctx context.Context, userID, recipeID int64) error
	lines  []cart.ShoppingListLine
}

func (s stubToggleService) Add(ctx context.Context, userID, recipeID int64) (recipes.CompactDTO, error) {
	return s.add(ctx, userID, recipeID)
}

func (s stubToggleService) Remove(ctx context.Context, userID, recipeID int64) error {
	return s.remove(ctx, userID, recipeID)
}

func (s stubToggleService) ShoppingList(context.Context, int64) ([]cart.ShoppingListLine, error) {
	return s.lines, nil
}

type stubUsersService struct {
	users []users.UserDTO
}

func (s stubUsersService) List(_ context.Context, _ int64, params pagination.Params) ([]users.UserDTO, int64, error) {
	start := params.Offset()
	if start > len(s.users) {
		start = len(s.users)
	}
	end := start + params.Normalize().Limit
	if end > len(s.users) {
		end = len(s.users)
	}
	return s.users[start:end], int64(len(s.users)), nil
}

func (s stubUsersService) Get(_ context.Context, _ int64, id int64) (users.UserDTO, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return users.UserDTO{}, notFound("user")
}

func (s stubUsersService) Me(ctx context.Context, viewerID int64) (users.UserDTO, error) {
	if viewerID <= 0 {
		return users.UserDTO{}, unauthorized()
	}
	return s.Get(ctx, viewerID, viewerID)
}

type stubFollowsService struct {
	subscribe func(ctx context.Context, userID, authorID int64, recipesLimit int) (follows.AuthorDTO, error)
	listLimit *int
}

func (s stubFollowsService) Subscribe(ctx context.Context, userID, authorID int64, recipesLimit int) (follows.AuthorDTO, error) {
	return s.subscribe(ctx, userID, authorID, recipesLimit)
}

func (s stubFollowsService) Unsubscribe(context.Context, int64, int64) error {
	return nil
}

func (s stubFollowsService) List(_ context.Context, _ int64, _ pagination.Params, recipesLimit int) ([]follows.AuthorDTO, int64, error) {
	if s.listLimit != nil {
		*s.listLimit = recipesLimit
	}
	return nil, 0, nil
}

// newRequest builds a request with chi url params and an optional caller.
func newRequest(method, target, body string, userID int64, params map[string]string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	ctx := context.WithValue(req.Context(), chi.RouteCtxKey, rctx)
	if userID > 0 {
		ctx = middleware.WithUserID(ctx, userID)
	}
	return req.WithContext(ctx)
}

func decodeData(t *testing.T, rec *httptest.ResponseRecorder, dest any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	require.NoError(t, json.Unmarshal(envelope.Data, dest))
}

func decodeErrorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var envelope struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	return envelope.Error.Code
}

func notFound(what string) error {
	return pkgerrors.New(pkgerrors.CodeNotFound, what+" not found")
}

func unauthorized() error {
	return pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
}

func forbidden() error {
	return pkgerrors.New(pkgerrors.CodeForbidden, "not the author")
}
