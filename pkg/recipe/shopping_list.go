package recipe

import (
	"fmt"
	"sort"
	"strings"

	"foodgram-backend/domain"
)

// SortShoppingList orders items by total descending, then name and unit
// ascending, so equal totals always come out the same way.
func SortShoppingList(items []domain.ShoppingListItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.MeasurementUnit < b.MeasurementUnit
	})
}

// RenderShoppingList writes one "{name} {unit} - {total}" line per item.
// An empty list renders as an empty document.
func RenderShoppingList(items []domain.ShoppingListItem) string {
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%s %s - %d", item.Name, item.MeasurementUnit, item.Total))
	}
	return strings.Join(lines, "\n")
}
