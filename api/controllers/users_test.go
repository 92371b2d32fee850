package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/foodgram-backend/internal/follows"
	"github.com/angelmondragon/foodgram-backend/internal/users"
	"github.com/angelmondragon/foodgram-backend/pkg/pagination"
)

func sampleUsers() stubUsersService {
	return stubUsersService{users: []users.UserDTO{
		{ID: 1, Email: "a@example.com", Username: "alice"},
		{ID: 2, Email: "b@example.com", Username: "bob"},
		{ID: 3, Email: "c@example.com", Username: "carol"},
	}}
}

func TestUsersListPaginates(t *testing.T) {
	rec := httptest.NewRecorder()
	UsersList(sampleUsers(), nil).ServeHTTP(rec, newRequest(http.MethodGet, "/api/users?limit=2", "", 0, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var page pagination.Page[users.UserDTO]
	decodeData(t, rec, &page)
	require.Equal(t, int64(3), page.Count)
	require.Len(t, page.Results, 2)
	require.NotNil(t, page.Next)
	require.Nil(t, page.Previous)
}

func TestUserMeRequiresCaller(t *testing.T) {
	rec := httptest.NewRecorder()
	UserMe(sampleUsers(), nil).ServeHTTP(rec, newRequest(http.MethodGet, "/api/users/me", "", 0, nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = httptest.NewRecorder()
	UserMe(sampleUsers(), nil).ServeHTTP(rec, newRequest(http.MethodGet, "/api/users/me", "", 2, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var me users.UserDTO
	decodeData(t, rec, &me)
	require.Equal(t, "bob", me.Username)
}

func TestUserGetUnknown(t *testing.T) {
	rec := httptest.NewRecorder()
	UserGet(sampleUsers(), nil).ServeHTTP(rec, newRequest(http.MethodGet, "/api/users/99", "", 0, map[string]string{"userId": "99"}))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestSubscribePassesRecipesLimit(t *testing.T) {
	var gotLimit int
	svc := stubFollowsService{
		subscribe: func(_ context.Context, userID, authorID int64, recipesLimit int) (follows.AuthorDTO, error) {
			gotLimit = recipesLimit
			return follows.AuthorDTO{UserDTO: users.UserDTO{ID: authorID, IsSubscribed: true}}, nil
		},
	}
	rec := httptest.NewRecorder()
	Subscribe(svc, nil).ServeHTTP(rec, newRequest(http.MethodPost, "/api/users/2/subscribe?recipes_limit=2", "", 1, map[string]string{"userId": "2"}))

	require.Equal(t, http.StatusCreated, rec.Code)
	require.Equal(t, 2, gotLimit)
	var author follows.AuthorDTO
	decodeData(t, rec, &author)
	require.True(t, author.IsSubscribed)
}

func TestSubscriptionsDefaultsToAllRecipes(t *testing.T) {
	limit := 0
	svc := stubFollowsService{listLimit: &limit}
	rec := httptest.NewRecorder()
	Subscriptions(svc, nil).ServeHTTP(rec, newRequest(http.MethodGet, "/api/users/subscriptions", "", 1, nil))

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, follows.NoRecipesLimit, limit)

	var page pagination.Page[follows.AuthorDTO]
	decodeData(t, rec, &page)
	require.NotNil(t, page.Results)
	require.Empty(t, page.Results)
}

func TestSubscriptionsRejectsNegativeRecipesLimit(t *testing.T) {
	rec := httptest.NewRecorder()
	Subscriptions(stubFollowsService{}, nil).ServeHTTP(rec, newRequest(http.MethodGet, "/api/users/subscriptions?recipes_limit=-1", "", 1, nil))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}
