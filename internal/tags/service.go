package tags

import (
	"context"
	"regexp"
	"strings"

	"github.com/angelmondragon/foodgram-backend/internal/repo"
	"github.com/angelmondragon/foodgram-backend/pkg/db"
	"github.com/angelmondragon/foodgram-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/foodgram-backend/pkg/errors"
)

var (
	hexColorPattern = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)
	slugPattern     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
)

const maxTagFieldLen = 200

// Service exposes the tag catalog.
type Service interface {
	List(ctx context.Context) ([]TagDTO, error)
	Get(ctx context.Context, id int64) (TagDTO, error)
	Create(ctx context.Context, input CreateTagInput) (TagDTO, error)
}

type service struct {
	repo *Repository
}

func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tags repo is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context) ([]TagDTO, error) {
	rows, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list tags")
	}
	return FromModels(rows), nil
}

func (s *service) Get(ctx context.Context, id int64) (TagDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return TagDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "tag not found")
		}
		return TagDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load tag")
	}
	return FromModel(*row), nil
}

func (s *service) Create(ctx context.Context, input CreateTagInput) (TagDTO, error) {
	tag, err := validateCreate(input)
	if err != nil {
		return TagDTO{}, err
	}
	if err := s.repo.Create(ctx, tag); err != nil {
		if db.IsUniqueViolation(err, "") {
			return TagDTO{}, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "tag already exists")
		}
		return TagDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create tag")
	}
	return FromModel(*tag), nil
}

func validateCreate(input CreateTagInput) (*models.Tag, error) {
	tag := &models.Tag{
		Name:  strings.TrimSpace(input.Name),
		Color: strings.TrimSpace(input.Color),
		Slug:  strings.TrimSpace(input.Slug),
	}
	details := map[string]string{}
	switch {
	case tag.Name == "":
		details["name"] = "is required"
	case len(tag.Name) > maxTagFieldLen:
		details["name"] = "must be at most 200 characters"
	}
	if !hexColorPattern.MatchString(tag.Color) {
		details["color"] = "must be a HEX color such as #E26C2D"
	}
	switch {
	case tag.Slug == "":
		details["slug"] = "is required"
	case len(tag.Slug) > maxTagFieldLen || !slugPattern.MatchString(tag.Slug):
		details["slug"] = "may contain only letters, digits, hyphens and underscores"
	}
	if len(details) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid tag").WithDetails(details)
	}
	return tag, nil
}
