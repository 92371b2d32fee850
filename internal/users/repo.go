package users

import (
	"context"

	"github.com/angelmondragon/foodgram-backend/internal/repo"
	"github.com/angelmondragon/foodgram-backend/pkg/db/models"
	"gorm.io/gorm"
)

// subscribedColumn evaluates to true when the bound viewer follows users.id.
// Viewer id 0 never matches, so anonymous callers always see false.
const subscribedColumn = "EXISTS (SELECT 1 FROM follows f WHERE f.user_id = ? AND f.author_id = users.id) AS is_subscribed"

const profileColumns = "users.id, users.email, users.username, users.first_name, users.last_name"

// Repository exposes user-related persistence operations.
type Repository struct {
	base repo.Base
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{base: repo.NewBase(db)}
}

// WithTx returns a repository bound to the supplied transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{base: r.base.WithTx(tx)}
}

// Create inserts a new user and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	if err := r.base.DB(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByEmail retrieves the user matching the provided email.
func (r *Repository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.base.DB(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindByID loads a user by id.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.base.DB(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// Exists reports whether a user with id is present.
func (r *Repository) Exists(ctx context.Context, id int64) (bool, error) {
	return r.base.Exists(ctx, &models.User{}, "id = ?", id)
}

// Profile loads one user with the viewer's follow flag.
func (r *Repository) Profile(ctx context.Context, viewerID, id int64) (UserDTO, error) {
	var row profileRow
	err := r.profileQuery(ctx, viewerID).
		Where("users.id = ?", id).
		Take(&row).Error
	if err != nil {
		return UserDTO{}, err
	}
	return row.toDTO(), nil
}

// List returns a page of profiles ordered by id.
func (r *Repository) List(ctx context.Context, viewerID int64, limit, offset int) ([]UserDTO, error) {
	var rows []profileRow
	err := r.profileQuery(ctx, viewerID).
		Order("users.id ASC").
		Limit(limit).
		Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDTOs(rows), nil
}

// Count returns the total number of users.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.base.DB(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

// ProfilesByIDs batch-loads profiles keyed by id.
func (r *Repository) ProfilesByIDs(ctx context.Context, viewerID int64, ids []int64) (map[int64]UserDTO, error) {
	out := make(map[int64]UserDTO, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var rows []profileRow
	err := r.profileQuery(ctx, viewerID).
		Where("users.id IN ?", repo.UniqueIDs(ids)).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.ID] = row.toDTO()
	}
	return out, nil
}

// FollowedAuthors returns a page of the authors viewerID follows, most recent
// subscription first.
func (r *Repository) FollowedAuthors(ctx context.Context, viewerID int64, limit, offset int) ([]UserDTO, error) {
	var rows []profileRow
	err := r.base.DB(ctx).
		Table("follows").
		Select(profileColumns+", ? AS is_subscribed", true).
		Joins("JOIN users ON users.id = follows.author_id").
		Where("follows.user_id = ?", viewerID).
		Order("follows.id DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return toDTOs(rows), nil
}

// CountFollowedAuthors counts the authors viewerID follows.
func (r *Repository) CountFollowedAuthors(ctx context.Context, viewerID int64) (int64, error) {
	var total int64
	err := r.base.DB(ctx).
		Model(&models.Follow{}).
		Where("user_id = ?", viewerID).
		Count(&total).Error
	if err != nil {
		return 0, err
	}
	return total, nil
}

func (r *Repository) profileQuery(ctx context.Context, viewerID int64) *gorm.DB {
	return r.base.DB(ctx).
		Model(&models.User{}).
		Select(profileColumns+", "+subscribedColumn, viewerID)
}

func toDTOs(rows []profileRow) []UserDTO {
	out := make([]UserDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDTO())
	}
	return out
}
