package follows

import (
	"context"

	"github.com/angelmondragon/foodgram-backend/internal/recipes"
	"github.com/angelmondragon/foodgram-backend/internal/users"
	"github.com/angelmondragon/foodgram-backend/pkg/db"
	pkgerrors "github.com/angelmondragon/foodgram-backend/pkg/errors"
	"github.com/angelmondragon/foodgram-backend/pkg/pagination"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams groups dependencies for the follows service.
type ServiceParams struct {
	Tx          txRunner
	Repo        *Repository
	UsersRepo   *users.Repository
	RecipesRepo *recipes.Repository
}

// Service exposes author subscriptions.
type Service interface {
	Subscribe(ctx context.Context, userID, authorID int64, recipesLimit int) (AuthorDTO, error)
	Unsubscribe(ctx context.Context, userID, authorID int64) error
	List(ctx context.Context, userID int64, params pagination.Params, recipesLimit int) ([]AuthorDTO, int64, error)
}

type service struct {
	tx          txRunner
	repo        *Repository
	usersRepo   *users.Repository
	recipesRepo *recipes.Repository
}

// NewService builds a follows service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Tx == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "transaction runner is required")
	}
	if params.Repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "follows repo is required")
	}
	if params.UsersRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "users repo is required")
	}
	if params.RecipesRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "recipes repo is required")
	}
	return &service{
		tx:          params.Tx,
		repo:        params.Repo,
		usersRepo:   params.UsersRepo,
		recipesRepo: params.RecipesRepo,
	}, nil
}

// Subscribe makes userID follow authorID and returns the author card.
func (s *service) Subscribe(ctx context.Context, userID, authorID int64, recipesLimit int) (AuthorDTO, error) {
	if err := s.checkTarget(ctx, userID, authorID); err != nil {
		return AuthorDTO{}, err
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		followsRepo := s.repo.WithTx(tx)
		exists, err := followsRepo.Exists(ctx, userID, authorID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check subscription")
		}
		if exists {
			return pkgerrors.New(pkgerrors.CodeConflict, "already subscribed to this author")
		}
		if err := followsRepo.Add(ctx, userID, authorID); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "already subscribed to this author")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "subscribe")
		}
		return nil
	})
	if err != nil {
		return AuthorDTO{}, err
	}

	profile, err := s.usersRepo.Profile(ctx, userID, authorID)
	if err != nil {
		return AuthorDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load author")
	}
	authors, err := s.withRecipes(ctx, []users.UserDTO{profile}, recipesLimit)
	if err != nil {
		return AuthorDTO{}, err
	}
	return authors[0], nil
}

// Unsubscribe removes the follow; an absent follow is NotFound.
func (s *service) Unsubscribe(ctx context.Context, userID, authorID int64) error {
	if err := s.checkTarget(ctx, userID, authorID); err != nil {
		return err
	}
	removed, err := s.repo.Remove(ctx, userID, authorID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unsubscribe")
	}
	if !removed {
		return pkgerrors.New(pkgerrors.CodeNotFound, "not subscribed to this author")
	}
	return nil
}

// List pages through the authors userID follows.
func (s *service) List(ctx context.Context, userID int64, params pagination.Params, recipesLimit int) ([]AuthorDTO, int64, error) {
	if userID <= 0 {
		return nil, 0, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	params = params.Normalize()

	total, err := s.usersRepo.CountFollowedAuthors(ctx, userID)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count subscriptions")
	}
	profiles, err := s.usersRepo.FollowedAuthors(ctx, userID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list subscriptions")
	}
	authors, err := s.withRecipes(ctx, profiles, recipesLimit)
	if err != nil {
		return nil, 0, err
	}
	return authors, total, nil
}

func (s *service) checkTarget(ctx context.Context, userID, authorID int64) error {
	if userID <= 0 {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	exists, err := s.usersRepo.Exists(ctx, authorID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load author")
	}
	if !exists {
		return pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
	}
	if userID == authorID {
		return pkgerrors.Validation("author", "cannot subscribe to yourself")
	}
	return nil
}

// withRecipes attaches recipe counts and previews with one query each.
func (s *service) withRecipes(ctx context.Context, profiles []users.UserDTO, recipesLimit int) ([]AuthorDTO, error) {
	ids := make([]int64, 0, len(profiles))
	for _, profile := range profiles {
		ids = append(ids, profile.ID)
	}
	counts, err := s.recipesRepo.CountByAuthors(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count author recipes")
	}
	previews, err := s.recipesRepo.CompactByAuthors(ctx, ids, recipesLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load author recipes")
	}

	out := make([]AuthorDTO, 0, len(profiles))
	for _, profile := range profiles {
		cards := previews[profile.ID]
		if cards == nil {
			cards = []recipes.CompactDTO{}
		}
		out = append(out, AuthorDTO{
			UserDTO:      profile,
			RecipesCount: counts[profile.ID],
			Recipes:      cards,
		})
	}
	return out, nil
}
