package favorites

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

// ServiceParams groups dependencies for the favorites service.
type ServiceParams struct {
	Tx          txRunner
	Repo        *Repository
	RecipesRepo *recipes.Repository
}

// Service exposes the favorite toggle.
type Service interface {
	Add(ctx context.Context, userID, recipeID int64) (recipes.CompactDTO, error)
	Remove(ctx context.Context, userID, recipeID int64) error
}

type service struct {
	tx          txRunner
	repo        *Repository
	recipesRepo *recipes.Repository
}

// NewService builds a favorites service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction runner is required")
	}
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "favorites repo is required")
	}
	if params.RecipesRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recipes repo is required")
	}
	return &service{tx: params.Tx, repo: params.Repo, recipesRepo: params.RecipesRepo}, nil
}

// Add favorites an existing recipe and returns its card.
func (s *service) Add(ctx context.Context, userID, recipeID int64) (recipes.CompactDTO, error) {
	if userID <= 0 {
		return recipes.CompactDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}

	var card recipes.CompactDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		favoritesRepo := s.repo.WithTx(tx)

		var err error
		card, err = s.recipesRepo.WithTx(tx).Compact(ctx, recipeID)
		if err != nil {
			if repo.IsNotFound(err) {
				return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "recipe not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load recipe")
		}

		exists, err := favoritesRepo.Exists(ctx, userID, recipeID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check favorite")
		}
		if exists {
			return pkgerrors.New(pkgerrors.CodeConflict, "recipe is already in favorites")
		}

		if err := favoritesRepo.Add(ctx, userID, recipeID); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "recipe is already in favorites")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "add favorite")
		}
		return nil
	})
	if err != nil {
		return recipes.CompactDTO{}, err
	}
	return card, nil
}

// Remove unfavorites a recipe; removing an absent favorite is NotFound.
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
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "remove favorite")
	}
	if !removed {
		return pkgerrors.New(pkgerrors.CodeNotFound, "recipe is not in favorites")
	}
	return nil
}
