package recipe

import (
	"foodgram-backend/domain"

	"gorm.io/gorm"
)

// Scope is one step of the recipe query. Steps are applied in the order
// returned by Compose.
type Scope = func(*gorm.DB) *gorm.DB

const (
	favoriteExists = "EXISTS (SELECT 1 FROM favorite_recipes fr WHERE fr.recipe_id = recipes.id AND fr.user_id = ?)"
	cartExists     = "EXISTS (SELECT 1 FROM shopping_carts sc WHERE sc.recipe_id = recipes.id AND sc.user_id = ?)"
	followExists   = "EXISTS (SELECT 1 FROM follows fw WHERE fw.author_id = recipes.author_id AND fw.user_id = ?)"
)

// annotatedRow is what the composed query selects: the recipe id plus the
// flags computed for the viewer.
type annotatedRow struct {
	ID               uint
	IsFavorited      bool
	IsInShoppingCart bool
	IsSubscribed     bool
}

// Compose returns the query steps for filter as seen by viewer (nil for
// anonymous requests).
func Compose(filter domain.RecipeFilter, viewer *uint) []Scope {
	scopes := []Scope{
		FilterByTags(filter.Tags),
		Annotate(viewer),
		FilterByAuthor(filter.AuthorID),
	}
	if viewer != nil {
		scopes = append(scopes,
			FilterByFlag(favoriteExists, filter.IsFavorited, *viewer),
			FilterByFlag(cartExists, filter.IsInShoppingCart, *viewer),
		)
	}
	return append(scopes, OrderByNewest())
}

// FilterByTags keeps recipes having at least one tag with a slug in slugs.
// The subquery form never yields a recipe twice.
func FilterByTags(slugs []string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if len(slugs) == 0 {
			return db
		}
		return db.Where(
			"recipes.id IN (SELECT rt.recipe_id FROM recipe_tags rt JOIN tags t ON t.id = rt.tag_id WHERE t.slug IN ?)",
			slugs,
		)
	}
}

// Annotate selects the per-viewer flags. Anonymous viewers get constant false
// columns and no lookups.
func Annotate(viewer *uint) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if viewer == nil {
			return db.Select("recipes.id, false AS is_favorited, false AS is_in_shopping_cart, false AS is_subscribed")
		}
		return db.Select(
			"recipes.id, "+favoriteExists+" AS is_favorited, "+cartExists+" AS is_in_shopping_cart, "+followExists+" AS is_subscribed",
			*viewer, *viewer, *viewer,
		)
	}
}

func FilterByAuthor(authorID *uint) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if authorID == nil {
			return db
		}
		return db.Where("recipes.author_id = ?", *authorID)
	}
}

// FilterByFlag keeps rows where the exists-clause holds (FlagTrue) or does not
// hold (FlagFalse). FlagUnset leaves the query untouched.
func FilterByFlag(exists string, flag domain.Flag, viewer uint) Scope {
	return func(db *gorm.DB) *gorm.DB {
		switch flag {
		case domain.FlagTrue:
			return db.Where(exists, viewer)
		case domain.FlagFalse:
			return db.Where("NOT "+exists, viewer)
		default:
			return db
		}
	}
}

// OrderByNewest sorts by publication time, newest first; equal timestamps
// fall back to the higher id first.
func OrderByNewest() Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order("recipes.pub_date DESC").Order("recipes.id DESC")
	}
}
