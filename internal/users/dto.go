package users

import (
	"github.com/angelmondragon/foodgram-backend/pkg/db/models"
)

// UserDTO is the public profile shape; credentials never leave the repo.
type UserDTO struct {
	ID           int64  `json:"id"`
	Email        string `json:"email"`
	Username     string `json:"username"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsSubscribed bool   `json:"is_subscribed"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email        string
	Username     string
	FirstName    string
	LastName     string
	PasswordHash string
	IsAdmin      bool
}

// ToModel converts the DTO into a persistable user.
func (d CreateUserDTO) ToModel() *models.User {
	return &models.User{
		Email:        d.Email,
		Username:     d.Username,
		FirstName:    d.FirstName,
		LastName:     d.LastName,
		PasswordHash: d.PasswordHash,
		IsAdmin:      d.IsAdmin,
	}
}

// profileRow is a user joined with the viewer's follow state.
type profileRow struct {
	ID           int64
	Email        string
	Username     string
	FirstName    string
	LastName     string
	IsSubscribed bool
}

func (r profileRow) toDTO() UserDTO {
	return UserDTO(r)
}

// FromModel maps a user row onto the profile shape.
func FromModel(u *models.User, subscribed bool) UserDTO {
	if u == nil {
		return UserDTO{}
	}
	return UserDTO{
		ID:           u.ID,
		Email:        u.Email,
		Username:     u.Username,
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		IsSubscribed: subscribed,
	}
}
