package models

// Tag colors are #RGB or #RRGGBB. The check uses SQLite GLOB syntax since
// AutoMigrate only builds SQLite schemas.
type Tag struct {
	ID    int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name  string `gorm:"column:name;type:varchar(200);not null;uniqueIndex:tags_name_key"`
	Color string `gorm:"column:color;type:varchar(7);not null;uniqueIndex:tags_color_key;check:tags_color_hex_check,length(color) IN (4, 7) AND color GLOB '#*' AND substr(color, 2) NOT GLOB '*[^0-9A-Fa-f]*'"`
	Slug  string `gorm:"column:slug;type:varchar(200);not null;uniqueIndex:tags_slug_key"`
}
