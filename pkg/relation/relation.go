package relation

import (
	"foodgram-backend/domain"
	"foodgram-backend/entities"
)

// Relation describes one (user, target) flag table handled by the toggle
// service.
type Relation struct {
	Name         string
	TargetColumn string
	NotFound     error
	AllowSelf    bool

	target func() any
	row    func(userID, targetID uint) any
}

var (
	Favorite = Relation{
		Name:         "favorite",
		TargetColumn: "recipe_id",
		NotFound:     domain.ErrRecipeNotFound,
		AllowSelf:    true,
		target:       func() any { return &entities.Recipe{} },
		row: func(userID, targetID uint) any {
			return &entities.FavoriteRecipe{UserID: userID, RecipeID: targetID}
		},
	}

	ShoppingCart = Relation{
		Name:         "shopping_cart",
		TargetColumn: "recipe_id",
		NotFound:     domain.ErrRecipeNotFound,
		AllowSelf:    true,
		target:       func() any { return &entities.Recipe{} },
		row: func(userID, targetID uint) any {
			return &entities.ShoppingCart{UserID: userID, RecipeID: targetID}
		},
	}

	Follow = Relation{
		Name:         "follow",
		TargetColumn: "author_id",
		NotFound:     domain.ErrUserNotFound,
		AllowSelf:    false,
		target:       func() any { return &entities.User{} },
		row: func(userID, targetID uint) any {
			return &entities.Follow{UserID: userID, AuthorID: targetID}
		},
	}
)
