package ingredients

import "github.com/angelmondragon/foodgram-backend/pkg/db/models"

type IngredientDTO struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

// ImportItem is one entry of the seed fixture.
type ImportItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
}

func FromModel(m models.Ingredient) IngredientDTO {
	return IngredientDTO{ID: m.ID, Name: m.Name, MeasurementUnit: m.MeasurementUnit}
}

func fromModels(rows []models.Ingredient) []IngredientDTO {
	out := make([]IngredientDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromModel(row))
	}
	return out
}
