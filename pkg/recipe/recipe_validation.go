package recipe

import (
	"foodgram-backend/domain"
)

// uniqueTags drops repeated ids and keeps the first-seen order.
func uniqueTags(ids []uint) ([]uint, error) {
	if len(ids) == 0 {
		return nil, domain.NewValidationError("tags", "at least one tag is required")
	}
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out, nil
}

func validateCookingTime(minutes int) error {
	if minutes < domain.MinCookingTime {
		return domain.NewValidationError("cooking_time", "cooking time must be at least 1")
	}
	return nil
}

func validateIngredients(items []domain.RecipeIngredientRequest) error {
	if len(items) == 0 {
		return domain.NewValidationError("ingredients", "at least one ingredient is required")
	}
	seen := make(map[uint]struct{}, len(items))
	for _, item := range items {
		if _, ok := seen[item.ID]; ok {
			return domain.NewValidationError("ingredients", "ingredients must not repeat")
		}
		seen[item.ID] = struct{}{}
	}
	for _, item := range items {
		if item.Amount < domain.MinAmount {
			return domain.NewValidationError("ingredients", "ingredient amount must be at least 1")
		}
	}
	return nil
}

func ingredientIDs(items []domain.RecipeIngredientRequest) []uint {
	ids := make([]uint, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}
