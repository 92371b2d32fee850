package tags

import (
	"context"
	"testing"

	"github.com/angelmondragon/foodgram-backend/pkg/db/dbtest"
	pkgerrors "github.com/angelmondragon/foodgram-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(NewRepository(dbtest.Open(t).DB()))
	require.NoError(t, err)
	return svc
}

func TestCreateAndList(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	lunch, err := svc.Create(ctx, CreateTagInput{Name: "Lunch", Color: "#49B64E", Slug: "lunch"})
	require.NoError(t, err)
	assert.NotZero(t, lunch.ID)

	_, err = svc.Create(ctx, CreateTagInput{Name: "Breakfast", Color: "#e26", Slug: "breakfast"})
	require.NoError(t, err)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Breakfast", all[0].Name)

	got, err := svc.Get(ctx, lunch.ID)
	require.NoError(t, err)
	assert.Equal(t, lunch, got)
}

func TestCreateRejectsInvalidFields(t *testing.T) {
	svc := newTestService(t)

	_, err := svc.Create(context.Background(), CreateTagInput{Name: "", Color: "red", Slug: "bad slug"})
	require.Error(t, err)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeValidation, typed.Code())
	details, ok := typed.Details().(map[string]string)
	require.True(t, ok)
	assert.Contains(t, details, "name")
	assert.Contains(t, details, "color")
	assert.Contains(t, details, "slug")

	for _, color := range []string{"#1234567", "#GGGGGG", "123456", "#12"} {
		_, err := svc.Create(context.Background(), CreateTagInput{Name: "x", Color: color, Slug: "x"})
		assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation), color)
	}
}

func TestCreateDuplicateIsConflict(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateTagInput{Name: "Dinner", Color: "#8775D2", Slug: "dinner"})
	require.NoError(t, err)

	_, err = svc.Create(ctx, CreateTagInput{Name: "Supper", Color: "#8775D2", Slug: "supper"})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeConflict))
}

func TestGetMissingTag(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.Get(context.Background(), 42)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}
