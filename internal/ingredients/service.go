package ingredients

import (
	"context"
	"strings"

	"github.com/angelmondragon/foodgram-backend/internal/repo"
	"github.com/angelmondragon/foodgram-backend/pkg/db/models"
	pkgerrors "github.com/angelmondragon/foodgram-backend/pkg/errors"
)

// Service exposes the ingredient catalog.
type Service interface {
	List(ctx context.Context, namePrefix string) ([]IngredientDTO, error)
	Get(ctx context.Context, id int64) (IngredientDTO, error)
	Import(ctx context.Context, items []ImportItem) (int64, error)
}

type service struct {
	repo *Repository
}

func NewService(repo *Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ingredients repo is required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, namePrefix string) ([]IngredientDTO, error) {
	rows, err := s.repo.List(ctx, strings.TrimSpace(namePrefix))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list ingredients")
	}
	return fromModels(rows), nil
}

func (s *service) Get(ctx context.Context, id int64) (IngredientDTO, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if repo.IsNotFound(err) {
			return IngredientDTO{}, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "ingredient not found")
		}
		return IngredientDTO{}, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ingredient")
	}
	return FromModel(*row), nil
}

// Import inserts the catalog entries that are not present yet. Blank entries
// are rejected before anything is written.
func (s *service) Import(ctx context.Context, items []ImportItem) (int64, error) {
	rows := make([]models.Ingredient, 0, len(items))
	seen := make(map[[2]string]struct{}, len(items))
	for i, item := range items {
		name := strings.TrimSpace(item.Name)
		unit := strings.TrimSpace(item.MeasurementUnit)
		if name == "" || unit == "" {
			return 0, pkgerrors.Newf(pkgerrors.CodeValidation, "ingredient %d requires name and measurement_unit", i)
		}
		key := [2]string{name, unit}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		rows = append(rows, models.Ingredient{Name: name, MeasurementUnit: unit})
	}

	inserted, err := s.repo.InsertIgnoringDuplicates(ctx, rows)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "import ingredients")
	}
	return inserted, nil
}
