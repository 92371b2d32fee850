package cart

import (
	"context"
	"testing"

	"github.com/angelmondragon/foodgram-backend/internal/recipes"
	"github.com/angelmondragon/foodgram-backend/pkg/db/dbtest"
	"github.com/angelmondragon/foodgram-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/foodgram-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type cartFixture struct {
	svc   Service
	conn  *gorm.DB
	user  models.User
	other models.User
	salt  models.Ingredient
	milk  models.Ingredient
}

func newCartFixture(t *testing.T) *cartFixture {
	t.Helper()
	client := dbtest.Open(t)
	conn := client.DB()

	f := &cartFixture{
		conn:  conn,
		user:  models.User{Email: "cook@example.com", Username: "cook"},
		other: models.User{Email: "guest@example.com", Username: "guest"},
		salt:  models.Ingredient{Name: "Salt", MeasurementUnit: "g"},
		milk:  models.Ingredient{Name: "Milk", MeasurementUnit: "ml"},
	}
	for _, row := range []any{&f.user, &f.other, &f.salt, &f.milk} {
		require.NoError(t, conn.Create(row).Error)
	}

	svc, err := NewService(ServiceParams{
		Tx:          client,
		Repo:        NewRepository(conn),
		RecipesRepo: recipes.NewRepository(conn),
	})
	require.NoError(t, err)
	f.svc = svc
	return f
}

func (f *cartFixture) recipe(t *testing.T, name string, amounts map[int64]int) models.Recipe {
	t.Helper()
	recipe := models.Recipe{AuthorID: f.user.ID, Name: name, Text: "Cook.", CookingTime: 10}
	require.NoError(t, f.conn.Create(&recipe).Error)
	for ingredientID, amount := range amounts {
		require.NoError(t, f.conn.Create(&models.RecipeIngredient{
			RecipeID:     recipe.ID,
			IngredientID: ingredientID,
			Amount:       amount,
		}).Error)
	}
	return recipe
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(ServiceParams{})
	require.Error(t, err)
}

func TestShoppingListSumsSameIngredient(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()
	r1 := f.recipe(t, "R1", map[int64]int{f.salt.ID: 5})
	r2 := f.recipe(t, "R2", map[int64]int{f.salt.ID: 3})

	_, err := f.svc.Add(ctx, f.user.ID, r1.ID)
	require.NoError(t, err)
	_, err = f.svc.Add(ctx, f.user.ID, r2.ID)
	require.NoError(t, err)

	lines, err := f.svc.ShoppingList(ctx, f.user.ID)
	require.NoError(t, err)
	require.Len(t, lines, 1)
	assert.Equal(t, ShoppingListLine{Name: "Salt", MeasurementUnit: "g", Total: 8}, lines[0])
	assert.Equal(t, "Shopping list:\n\nSalt - 8/g", RenderShoppingList(lines))
}

func TestShoppingListOrdersByNameAndIgnoresOtherCarts(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()
	r1 := f.recipe(t, "R1", map[int64]int{f.salt.ID: 2, f.milk.ID: 200})
	r2 := f.recipe(t, "R2", map[int64]int{f.milk.ID: 50})

	_, err := f.svc.Add(ctx, f.user.ID, r1.ID)
	require.NoError(t, err)
	_, err = f.svc.Add(ctx, f.user.ID, r2.ID)
	require.NoError(t, err)
	_, err = f.svc.Add(ctx, f.other.ID, r1.ID)
	require.NoError(t, err)

	lines, err := f.svc.ShoppingList(ctx, f.user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shopping list:\n\nMilk - 250/ml\nSalt - 2/g", RenderShoppingList(lines))

	otherLines, err := f.svc.ShoppingList(ctx, f.other.ID)
	require.NoError(t, err)
	assert.Equal(t, "Shopping list:\n\nMilk - 200/ml\nSalt - 2/g", RenderShoppingList(otherLines))
}

func TestShoppingListEmptyCart(t *testing.T) {
	f := newCartFixture(t)
	lines, err := f.svc.ShoppingList(context.Background(), f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, lines)
	assert.Equal(t, "Shopping list:\n\n", RenderShoppingList(lines))
}

func TestAddRemoveToggle(t *testing.T) {
	f := newCartFixture(t)
	ctx := context.Background()
	recipe := f.recipe(t, "Tea", map[int64]int{f.milk.ID: 30})

	card, err := f.svc.Add(ctx, f.user.ID, recipe.ID)
	require.NoError(t, err)
	assert.Equal(t, recipes.CompactDTO{ID: recipe.ID, Name: "Tea", CookingTime: 10}, card)

	_, err = f.svc.Add(ctx, f.user.ID, recipe.ID)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeConflict))

	require.NoError(t, f.svc.Remove(ctx, f.user.ID, recipe.ID))
	err = f.svc.Remove(ctx, f.user.ID, recipe.ID)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))

	_, err = f.svc.Add(ctx, f.user.ID, recipe.ID+99)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestShoppingListRequiresUser(t *testing.T) {
	f := newCartFixture(t)
	_, err := f.svc.ShoppingList(context.Background(), 0)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeUnauthorized))
}
