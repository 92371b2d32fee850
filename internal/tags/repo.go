package tags

import (
	"context"

	"github.com/angelmondragon/foodgram-backend/internal/repo"
	"github.com/angelmondragon/foodgram-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes tag persistence operations.
type Repository struct {
	base repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{base: repo.NewBase(db)}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{base: r.base.WithTx(tx)}
}

// List returns every tag ordered by name.
func (r *Repository) List(ctx context.Context) ([]models.Tag, error) {
	var rows []models.Tag
	if err := r.base.DB(ctx).Order("name ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Tag, error) {
	var row models.Tag
	if err := r.base.DB(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// FindByIDs loads every tag whose id is listed; absent ids are skipped.
func (r *Repository) FindByIDs(ctx context.Context, ids []int64) ([]models.Tag, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Tag
	if err := r.base.DB(ctx).Where("id IN ?", repo.UniqueIDs(ids)).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) Create(ctx context.Context, tag *models.Tag) error {
	return r.base.DB(ctx).Create(tag).Error
}
