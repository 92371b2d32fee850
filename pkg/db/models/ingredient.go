package models

type Ingredient struct {
	ID              int64  `gorm:"column:id;primaryKey;autoIncrement"`
	Name            string `gorm:"column:name;type:varchar(200);not null;index:ingredients_name_idx;uniqueIndex:ingredients_name_unit_key"`
	MeasurementUnit string `gorm:"column:measurement_unit;type:varchar(200);not null;uniqueIndex:ingredients_name_unit_key"`
}
