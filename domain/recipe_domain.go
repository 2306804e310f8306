package domain

import (
	"errors"
	"time"
)

var (
	MessageSuccessGetRecipes      = "success get recipes"
	MessageSuccessGetRecipeDetail = "success get recipe detail"
	MessageSuccessCreateRecipe    = "recipe created successfully"
	MessageSuccessUpdateRecipe    = "recipe updated successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"
	MessageSuccessSendCart        = "shopping list sent"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedDownloadCart    = "failed to build shopping list"
	MessageFailedSendCart        = "failed to send shopping list"

	ErrRecipeNotFound     = errors.New("recipe not found")
	ErrInvalidImageFormat = errors.New("invalid image format")
)

const (
	MinCookingTime = 1
	MinAmount      = 1

	ShoppingCartFilename = "foodgram-shopping-cart.txt"
)

// Flag is a tri-state query value: anything but "0" or "1" leaves it unset.
type Flag int

const (
	FlagUnset Flag = iota
	FlagFalse
	FlagTrue
)

func ParseFlag(value string) Flag {
	switch value {
	case "1":
		return FlagTrue
	case "0":
		return FlagFalse
	default:
		return FlagUnset
	}
}

type (
	RecipeFilter struct {
		Tags             []string
		AuthorID         *uint
		IsFavorited      Flag
		IsInShoppingCart Flag
		Page             int
		Limit            int
	}

	RecipeIngredientRequest struct {
		ID     uint `json:"id" validate:"required"`
		Amount int  `json:"amount"`
	}

	CreateRecipeRequest struct {
		Ingredients []RecipeIngredientRequest `json:"ingredients"`
		Tags        []uint                    `json:"tags"`
		Image       string                    `json:"image" validate:"required"`
		Name        string                    `json:"name" validate:"required,max=200"`
		Text        string                    `json:"text" validate:"required"`
		CookingTime int                       `json:"cooking_time"`
	}

	UpdateRecipeRequest struct {
		Ingredients *[]RecipeIngredientRequest `json:"ingredients"`
		Tags        *[]uint                    `json:"tags"`
		Image       *string                    `json:"image"`
		Name        *string                    `json:"name" validate:"omitempty,min=1,max=200"`
		Text        *string                    `json:"text" validate:"omitempty,min=1"`
		CookingTime *int                       `json:"cooking_time"`
	}

	RecipeIngredient struct {
		ID              uint   `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	Recipe struct {
		ID               uint               `json:"id"`
		Tags             []Tag              `json:"tags"`
		Author           User               `json:"author"`
		Ingredients      []RecipeIngredient `json:"ingredients"`
		IsFavorited      bool               `json:"is_favorited"`
		IsInShoppingCart bool               `json:"is_in_shopping_cart"`
		Name             string             `json:"name"`
		Image            string             `json:"image"`
		Text             string             `json:"text"`
		CookingTime      int                `json:"cooking_time"`
		PubDate          time.Time          `json:"pub_date"`
	}

	ShortRecipe struct {
		ID          uint   `json:"id"`
		Name        string `json:"name"`
		Image       string `json:"image"`
		CookingTime int    `json:"cooking_time"`
	}

	RecipeListResponse struct {
		Results    []Recipe   `json:"results"`
		Pagination Pagination `json:"pagination"`
	}

	ShoppingListItem struct {
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Total           int64  `json:"total"`
	}
)
