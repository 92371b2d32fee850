package cart

import (
	"context"

	"github.com/angelmondragon/foodgram-backend/internal/recipes"
	"github.com/angelmondragon/foodgram-backend/internal/repo"
	"github.com/angelmondragon/foodgram-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/foodgram-backend/pkg/errors"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams groups dependencies for the cart service.
type ServiceParams struct {
	Tx          txRunner
	Repo        *Repository
	RecipesRepo *recipes.Repository
}

// Service manages the shopping cart and renders the shopping list.
type Service interface {
	Add(ctx context.Context, userID, recipeID int64) (recipes.CompactDTO, error)
	Remove(ctx context.Context, userID, recipeID int64) error
	ShoppingList(ctx context.Context, userID int64) ([]ShoppingListLine, error)
}

type service struct {
	tx          txRunner
	repo        *Repository
	recipesRepo *recipes.Repository
}

// NewService builds a cart service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction runner is required")
	}
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart repo is required")
	}
	if params.RecipesRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recipes repo is required")
	}
	return &service{tx: params.Tx, repo: params.Repo, recipesRepo: params.RecipesRepo}, nil
}

// Add puts an existing recipe into the cart and returns its card.
func (s *service) Add(ctx context.Context, userID, recipeID int64) (recipes.CompactDTO, error) {
	if userID <= 0 {
		return recipes.CompactDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}

	var card recipes.CompactDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		cartRepo := s.repo.WithTx(tx)

		var err error
		card, err = s.recipesRepo.WithTx(tx).Compact(ctx, recipeID)
		if err != nil {
			if repo.IsNotFound(err) {
				return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "recipe not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recipe")
		}

		exists, err := cartRepo.Exists(ctx, userID, recipeID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check cart")
		}
		if exists {
			return pkgerrors.New(pkgerrors.CodeConflict, "recipe is already in the shopping cart")
		}

		if err := cartRepo.Add(ctx, userID, recipeID); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "recipe is already in the shopping cart")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add to cart")
		}
		return nil
	})
	if err != nil {
		return recipes.CompactDTO{}, err
	}
	return card, nil
}

// Remove drops a recipe from the cart; an absent entry is NotFound.
func (s *service) Remove(ctx context.Context, userID, recipeID int64) error {
	if userID <= 0 {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	if _, err := s.recipesRepo.FindByID(ctx, recipeID); err != nil {
		if repo.IsNotFound(err) {
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "recipe not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recipe")
	}

	removed, err := s.repo.Remove(ctx, userID, recipeID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove from cart")
	}
	if !removed {
		return pkgerrors.New(pkgerrors.CodeNotFound, "recipe is not in the shopping cart")
	}
	return nil
}

// ShoppingList aggregates the ingredients of every recipe in the cart.
func (s *service) ShoppingList(ctx context.Context, userID int64) ([]ShoppingListLine, error) {
	if userID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	lines, err := s.repo.ShoppingList(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "build shopping list")
	}
	return lines, nil
}
