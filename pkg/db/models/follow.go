package models

import "time"

// Follow subscribes UserID to the recipes of AuthorID.
type Follow struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	UserID    int64     `gorm:"column:user_id;not null;uniqueIndex:follows_user_author_key"`
	AuthorID  int64     `gorm:"column:author_id;not null;index:follows_author_id_idx;uniqueIndex:follows_user_author_key"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`

	User   *User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Author *User `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE"`
}
