package recipes

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/angelmondragon/foodgram-backend/internal/repo"
	"github.com/angelmondragon/foodgram-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/foodgram-backend/pkg/errors"
)

const maxNameLen = 200

// checkedInput is a WriteInput that passed every rule.
type checkedInput struct {
	name        string
	image       string
	text        string
	cookingTime int
	ingredients []IngredientAmountInput
	tagIDs      []int64
}

// validateShape applies the rules that need no database access.
func validateShape(input WriteInput) (checkedInput, error) {
	details := map[string]string{}
	checked := checkedInput{
		name:        strings.TrimSpace(input.Name),
		image:       strings.TrimSpace(input.Image),
		text:        strings.TrimSpace(input.Text),
		cookingTime: input.CookingTime,
		ingredients: input.Ingredients,
		tagIDs:      input.Tags,
	}

	switch {
	case checked.name == "":
		details["name"] = "is required"
	case utf8.RuneCountInString(checked.name) > maxNameLen:
		details["name"] = fmt.Sprintf("must be at most %d characters", maxNameLen)
	}
	if checked.text == "" {
		details["text"] = "is required"
	}
	if checked.cookingTime < 1 {
		details["cooking_time"] = "must be at least 1"
	}

	if msg := checkIngredients(checked.ingredients); msg != "" {
		details["ingredients"] = msg
	}
	if msg := checkTags(checked.tagIDs); msg != "" {
		details["tags"] = msg
	}

	if len(details) > 0 {
		return checkedInput{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid recipe").WithDetails(details)
	}
	return checked, nil
}

func checkIngredients(items []IngredientAmountInput) string {
	if len(items) == 0 {
		return "at least one ingredient is required"
	}
	seen := make(map[int64]struct{}, len(items))
	for _, item := range items {
		if item.ID <= 0 {
			return "ingredient id must be positive"
		}
		if item.Amount < 1 {
			return fmt.Sprintf("amount for ingredient %d must be at least 1", item.ID)
		}
		if _, dup := seen[item.ID]; dup {
			return fmt.Sprintf("ingredient %d is listed more than once", item.ID)
		}
		seen[item.ID] = struct{}{}
	}
	return ""
}

func checkTags(ids []int64) string {
	if len(ids) == 0 {
		return "at least one tag is required"
	}
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if id <= 0 {
			return "tag id must be positive"
		}
		if _, dup := seen[id]; dup {
			return fmt.Sprintf("tag %d is listed more than once", id)
		}
		seen[id] = struct{}{}
	}
	return ""
}

// validateReferences ensures every referenced ingredient and tag exists.
func (s *service) validateReferences(ctx context.Context, checked checkedInput) error {
	ingredientIDs := make([]int64, 0, len(checked.ingredients))
	for _, item := range checked.ingredients {
		ingredientIDs = append(ingredientIDs, item.ID)
	}

	foundIngredients, err := s.ingredients.FindByIDs(ctx, ingredientIDs)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ingredients")
	}
	foundTags, err := s.tags.FindByIDs(ctx, checked.tagIDs)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tags")
	}

	details := map[string]string{}
	if missing := repo.MissingIDs(ingredientIDs, ingredientIDsOf(foundIngredients)); len(missing) > 0 {
		details["ingredients"] = "unknown ingredient ids: " + joinIDs(missing)
	}
	if missing := repo.MissingIDs(checked.tagIDs, tagIDsOf(foundTags)); len(missing) > 0 {
		details["tags"] = "unknown tag ids: " + joinIDs(missing)
	}
	if len(details) > 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid recipe").WithDetails(details)
	}
	return nil
}

func (c checkedInput) ingredientRows(recipeID int64) []models.RecipeIngredient {
	rows := make([]models.RecipeIngredient, 0, len(c.ingredients))
	for _, item := range c.ingredients {
		rows = append(rows, models.RecipeIngredient{RecipeID: recipeID, IngredientID: item.ID, Amount: item.Amount})
	}
	return rows
}

func (c checkedInput) tagRows(recipeID int64) []models.RecipeTag {
	rows := make([]models.RecipeTag, 0, len(c.tagIDs))
	for _, id := range c.tagIDs {
		rows = append(rows, models.RecipeTag{RecipeID: recipeID, TagID: id})
	}
	return rows
}

func ingredientIDsOf(rows []models.Ingredient) []int64 {
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids
}

func tagIDsOf(rows []models.Tag) []int64 {
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	return ids
}

func joinIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, fmt.Sprint(id))
	}
	return strings.Join(parts, ", ")
}

func (c checkedInput) model(authorID int64) *models.Recipe {
	return &models.Recipe{
		AuthorID:    authorID,
		Name:        c.name,
		Image:       c.image,
		Text:        c.text,
		CookingTime: c.cookingTime,
	}
}

func (c checkedInput) fields() map[string]any {
	return map[string]any{
		"name":         c.name,
		"image":        c.image,
		"text":         c.text,
		"cooking_time": c.cookingTime,
	}
}
