package models

import "time"

// User is a recipe author and the owner of favorites, basket entries and follows.
type User struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Email        string    `gorm:"column:email;type:varchar(254);not null;uniqueIndex:users_email_key"`
	Username     string    `gorm:"column:username;type:varchar(150);not null;uniqueIndex:users_username_key"`
	FirstName    string    `gorm:"column:first_name;type:varchar(150);not null"`
	LastName     string    `gorm:"column:last_name;type:varchar(150);not null"`
	PasswordHash string    `gorm:"column:password_hash;not null;default:''"`
	IsAdmin      bool      `gorm:"column:is_admin;not null;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime"`
}
