package recipes

import (
	"context"

	"github.com/angelmondragon/foodgram-backend/internal/ingredients"
	"github.com/angelmondragon/foodgram-backend/internal/repo"
	"github.com/angelmondragon/foodgram-backend/internal/tags"
	"github.com/angelmondragon/foodgram-backend/internal/users"
	pkgerrors "github.com/angelmondragon/foodgram-backend/pkg/errors"
	"github.com/angelmondragon/foodgram-backend/pkg/pagination"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams groups dependencies for the recipes service.
type ServiceParams struct {
	Tx          txRunner
	Repo        *Repository
	Users       *users.Repository
	Tags        *tags.Repository
	Ingredients *ingredients.Repository
}

// Service exposes recipe reads and author-restricted writes.
type Service interface {
	List(ctx context.Context, viewerID int64, filter Filter, params pagination.Params) ([]RecipeDTO, int64, error)
	Get(ctx context.Context, viewerID, id int64) (RecipeDTO, error)
	Create(ctx context.Context, actor Actor, input WriteInput) (RecipeDTO, error)
	Update(ctx context.Context, actor Actor, id int64, input WriteInput) (RecipeDTO, error)
	Delete(ctx context.Context, actor Actor, id int64) error
}

type service struct {
	tx          txRunner
	repo        *Repository
	users       *users.Repository
	tags        *tags.Repository
	ingredients *ingredients.Repository
}

// NewService builds a recipes service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction runner is required")
	}
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recipes repo is required")
	}
	if params.Users == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "users repo is required")
	}
	if params.Tags == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tags repo is required")
	}
	if params.Ingredients == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ingredients repo is required")
	}
	return &service{
		tx:          params.Tx,
		repo:        params.Repo,
		users:       params.Users,
		tags:        params.Tags,
		ingredients: params.Ingredients,
	}, nil
}

func (s *service) List(ctx context.Context, viewerID int64, filter Filter, params pagination.Params) ([]RecipeDTO, int64, error) {
	params = params.Normalize()
	total, err := s.repo.Count(ctx, viewerID, filter)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count recipes")
	}
	rows, err := s.repo.List(ctx, viewerID, filter, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list recipes")
	}
	items, err := s.hydrate(ctx, viewerID, rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *service) Get(ctx context.Context, viewerID, id int64) (RecipeDTO, error) {
	row, err := s.repo.Row(ctx, viewerID, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return RecipeDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "recipe not found")
		}
		return RecipeDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recipe")
	}
	items, err := s.hydrate(ctx, viewerID, []recipeRow{row})
	if err != nil {
		return RecipeDTO{}, err
	}
	return items[0], nil
}

// Create stores a recipe with its ingredient amounts and tags atomically.
func (s *service) Create(ctx context.Context, actor Actor, input WriteInput) (RecipeDTO, error) {
	if actor.UserID <= 0 {
		return RecipeDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	checked, err := s.check(ctx, input)
	if err != nil {
		return RecipeDTO{}, err
	}

	var recipeID int64
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		recipesRepo := s.repo.WithTx(tx)
		recipe := checked.model(actor.UserID)
		if err := recipesRepo.Create(ctx, recipe); err != nil {
			return err
		}
		recipeID = recipe.ID
		if err := recipesRepo.ReplaceIngredients(ctx, recipe.ID, checked.ingredientRows(recipe.ID)); err != nil {
			return err
		}
		return recipesRepo.ReplaceTags(ctx, recipe.ID, checked.tagRows(recipe.ID))
	})
	if err != nil {
		return RecipeDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create recipe")
	}
	return s.Get(ctx, actor.UserID, recipeID)
}

// Update rewrites the scalar fields and fully replaces the ingredient and tag
// sets of a recipe owned by the actor.
func (s *service) Update(ctx context.Context, actor Actor, id int64, input WriteInput) (RecipeDTO, error) {
	if err := s.authorize(ctx, actor, id); err != nil {
		return RecipeDTO{}, err
	}
	checked, err := s.check(ctx, input)
	if err != nil {
		return RecipeDTO{}, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		recipesRepo := s.repo.WithTx(tx)
		if err := recipesRepo.UpdateFields(ctx, id, checked.fields()); err != nil {
			return err
		}
		if err := recipesRepo.ReplaceIngredients(ctx, id, checked.ingredientRows(id)); err != nil {
			return err
		}
		return recipesRepo.ReplaceTags(ctx, id, checked.tagRows(id))
	})
	if err != nil {
		return RecipeDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update recipe")
	}
	return s.Get(ctx, actor.UserID, id)
}

// Delete removes a recipe owned by the actor along with its associations.
func (s *service) Delete(ctx context.Context, actor Actor, id int64) error {
	if err := s.authorize(ctx, actor, id); err != nil {
		return err
	}
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		return s.repo.WithTx(tx).Delete(ctx, id)
	})
	if err != nil {
		if repo.IsNotFound(err) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "recipe not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete recipe")
	}
	return nil
}

func (s *service) authorize(ctx context.Context, actor Actor, id int64) error {
	if actor.UserID <= 0 {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	recipe, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "recipe not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recipe")
	}
	if !actor.canModify(recipe.AuthorID) {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only the author can modify this recipe")
	}
	return nil
}

func (s *service) check(ctx context.Context, input WriteInput) (checkedInput, error) {
	checked, err := validateShape(input)
	if err != nil {
		return checkedInput{}, err
	}
	if err := s.validateReferences(ctx, checked); err != nil {
		return checkedInput{}, err
	}
	return checked, nil
}

// hydrate attaches tags, ingredients and authors to rows with one query each.
func (s *service) hydrate(ctx context.Context, viewerID int64, rows []recipeRow) ([]RecipeDTO, error) {
	ids := make([]int64, 0, len(rows))
	authorIDs := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
		authorIDs = append(authorIDs, row.AuthorID)
	}

	tagsByRecipe, err := s.repo.TagsFor(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recipe tags")
	}
	ingredientsByRecipe, err := s.repo.IngredientsFor(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recipe ingredients")
	}
	authors, err := s.users.ProfilesByIDs(ctx, viewerID, authorIDs)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recipe authors")
	}

	out := make([]RecipeDTO, 0, len(rows))
	for _, row := range rows {
		dto := RecipeDTO{
			ID:               row.ID,
			Tags:             make([]tags.TagDTO, 0, len(tagsByRecipe[row.ID])),
			Author:           authors[row.AuthorID],
			Ingredients:      make([]IngredientAmountDTO, 0, len(ingredientsByRecipe[row.ID])),
			IsFavorited:      row.IsFavorited,
			IsInShoppingCart: row.IsInShoppingCart,
			Name:             row.Name,
			Image:            row.Image,
			Text:             row.Text,
			CookingTime:      row.CookingTime,
		}
		for _, tag := range tagsByRecipe[row.ID] {
			dto.Tags = append(dto.Tags, tags.TagDTO{ID: tag.ID, Name: tag.Name, Color: tag.Color, Slug: tag.Slug})
		}
		for _, ing := range ingredientsByRecipe[row.ID] {
			dto.Ingredients = append(dto.Ingredients, IngredientAmountDTO{
				ID:              ing.ID,
				Name:            ing.Name,
				MeasurementUnit: ing.MeasurementUnit,
				Amount:          ing.Amount,
			})
		}
		out = append(out, dto)
	}
	return out, nil
}
