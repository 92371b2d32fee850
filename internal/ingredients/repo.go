package ingredients

import (
	"context"
	"strings"

	"github.com/angelmondragon/foodgram-backend/internal/repo"
	"github.com/angelmondragon/foodgram-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// Repository exposes ingredient persistence operations.
type Repository struct {
	base repo.Base
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{base: repo.NewBase(db)}
}

func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{base: r.base.WithTx(tx)}
}

// List returns ingredients ordered by name, optionally restricted to names
// starting with prefix (case-insensitive).
func (r *Repository) List(ctx context.Context, prefix string) ([]models.Ingredient, error) {
	query := r.base.DB(ctx).Model(&models.Ingredient{})
	if prefix != "" {
		pattern := likeEscaper.Replace(strings.ToLower(prefix)) + "%"
		query = query.Where(`LOWER(name) LIKE ? ESCAPE '\'`, pattern)
	}

	var rows []models.Ingredient
	if err := query.Order("name ASC").Order("id ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Ingredient, error) {
	var row models.Ingredient
	if err := r.base.DB(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// FindByIDs loads every ingredient whose id is listed; absent ids are skipped.
func (r *Repository) FindByIDs(ctx context.Context, ids []int64) ([]models.Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var rows []models.Ingredient
	if err := r.base.DB(ctx).Where("id IN ?", repo.UniqueIDs(ids)).Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// InsertIgnoringDuplicates bulk-inserts rows, skipping any (name, unit) pair
// that already exists, and reports how many rows were written.
func (r *Repository) InsertIgnoringDuplicates(ctx context.Context, rows []models.Ingredient) (int64, error) {
	if len(rows) == 0 {
		return 0, nil
	}
	result := r.base.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		CreateInBatches(rows, 500)
	return result.RowsAffected, result.Error
}
