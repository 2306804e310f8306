package domain

import "errors"

var (
	MessageSuccessGetTags          = "success get tags"
	MessageSuccessCreateTag        = "tag created successfully"
	MessageSuccessGetIngredients   = "success get ingredients"
	MessageSuccessCreateIngredient = "ingredient created successfully"

	MessageFailedGetTags          = "failed to get tags"
	MessageFailedCreateTag        = "failed to create tag"
	MessageFailedGetIngredients   = "failed to get ingredients"
	MessageFailedCreateIngredient = "failed to create ingredient"

	ErrTagNotFound        = errors.New("tag not found")
	ErrTagExists          = errors.New("tag with this name or slug already exists")
	ErrIngredientNotFound = errors.New("ingredient not found")
	ErrIngredientExists   = errors.New("ingredient with this name and measurement unit already exists")
)

type (
	Tag struct {
		ID    uint   `json:"id"`
		Name  string `json:"name"`
		Color string `json:"color"`
		Slug  string `json:"slug"`
	}

	CreateTagRequest struct {
		Name  string `json:"name" validate:"required,max=200"`
		Color string `json:"color" validate:"required,hexcolor"`
		Slug  string `json:"slug" validate:"required,max=200,slug"`
	}

	Ingredient struct {
		ID              uint   `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
	}

	CreateIngredientRequest struct {
		Name            string `json:"name" validate:"required,max=200"`
		MeasurementUnit string `json:"measurement_unit" validate:"required,max=200"`
	}
)
