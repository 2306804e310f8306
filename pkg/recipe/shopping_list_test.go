package recipe

import (
	"testing"

	"foodgram-backend/domain"

	"github.com/stretchr/testify/assert"
)

func TestSortShoppingListBreaksTiesByName(t *testing.T) {
	items := []domain.ShoppingListItem{
		{Name: "sugar", MeasurementUnit: "g", Total: 50},
		{Name: "salt", MeasurementUnit: "g", Total: 50},
		{Name: "flour", MeasurementUnit: "g", Total: 300},
		{Name: "salt", MeasurementUnit: "pinch", Total: 50},
	}

	SortShoppingList(items)

	assert.Equal(t, "flour g - 300\nsalt g - 50\nsalt pinch - 50\nsugar g - 50", RenderShoppingList(items))
}

func TestRenderEmptyShoppingList(t *testing.T) {
	assert.Equal(t, "", RenderShoppingList(nil))
}
