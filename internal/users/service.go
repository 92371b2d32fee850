package users

import (
	"context"

	"github.com/angelmondragon/foodgram-backend/internal/repo"
	pkgerrors "github.com/angelmondragon/foodgram-backend/pkg/errors"
	"github.com/angelmondragon/foodgram-backend/pkg/pagination"
)

// Service exposes the read-only user directory.
type Service interface {
	List(ctx context.Context, viewerID int64, params pagination.Params) ([]UserDTO, int64, error)
	Get(ctx context.Context, viewerID, id int64) (UserDTO, error)
	Me(ctx context.Context, viewerID int64) (UserDTO, error)
}

type service struct {
	repo *Repository
}

// NewService builds a users service backed by repo.
func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "users repo is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, viewerID int64, params pagination.Params) ([]UserDTO, int64, error) {
	params = params.Normalize()
	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count users")
	}
	items, err := s.repo.List(ctx, viewerID, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list users")
	}
	return items, total, nil
}

func (s *service) Get(ctx context.Context, viewerID, id int64) (UserDTO, error) {
	dto, err := s.repo.Profile(ctx, viewerID, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return dto, nil
}

// Me returns the caller's own profile. A token whose subject no longer
// exists is treated as unauthenticated.
func (s *service) Me(ctx context.Context, viewerID int64) (UserDTO, error) {
	if viewerID <= 0 {
		return UserDTO{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	dto, err := s.repo.Profile(ctx, viewerID, viewerID)
	if err != nil {
		if repo.IsNotFound(err) {
			return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeUnauthorized, err, "user no longer exists")
		}
		return UserDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load user")
	}
	return dto, nil
}
