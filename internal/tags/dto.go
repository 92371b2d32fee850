package tags

import "github.com/angelmondragon/foodgram-backend/pkg/db/models"

type TagDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

// CreateTagInput carries a new tag from the seed tool.
type CreateTagInput struct {
	Name  string `json:"name"`
	Color string `json:"color"`
	Slug  string `json:"slug"`
}

func FromModel(m models.Tag) TagDTO {
	return TagDTO{ID: m.ID, Name: m.Name, Color: m.Color, Slug: m.Slug}
}

func FromModels(rows []models.Tag) []TagDTO {
	out := make([]TagDTO, 0, len(rows))
	for _, row := range rows {
		out = append(out, FromModel(row))
	}
	return out
}
