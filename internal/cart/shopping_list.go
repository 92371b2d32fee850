package cart

import (
	"strconv"
	"strings"
)

const (
	// ShoppingListFilename names the downloaded attachment.
	ShoppingListFilename = "shopping-list.txt"
	// ShoppingListContentType is the media type of the rendered list.
	ShoppingListContentType = "text/plain; charset=utf-8"

	shoppingListTitle = "Shopping list:\n\n"
)

// ShoppingListLine is the aggregated amount of one ingredient.
type ShoppingListLine struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Total           int64  `json:"total"`
}

func (l ShoppingListLine) String() string {
	return l.Name + " - " + strconv.FormatInt(l.Total, 10) + "/" + l.MeasurementUnit
}

// RenderShoppingList formats lines as the downloadable text document.
func RenderShoppingList(lines []ShoppingListLine) string {
	var b strings.Builder
	b.WriteString(shoppingListTitle)
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line.String())
	}
	return b.String()
}
