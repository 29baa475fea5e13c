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
	MessageSuccessAddFavorite     = "recipe added to favorites"
	MessageSuccessRemoveFavorite  = "recipe removed from favorites"

	MessageFailedGetRecipes      = "failed to get recipes"
	MessageFailedGetRecipeDetail = "failed to get recipe detail"
	MessageFailedCreateRecipe    = "failed to create recipe"
	MessageFailedUpdateRecipe    = "failed to update recipe"
	MessageFailedDeleteRecipe    = "failed to delete recipe"
	MessageFailedAddFavorite     = "failed to add recipe to favorites"
	MessageFailedRemoveFavorite  = "failed to remove recipe from favorites"

	ErrRecipeNotFound           = errors.New("recipe not found")
	ErrUnauthorizedRecipeAccess = errors.New("unauthorized access to recipe")
	ErrRecipeNameTooShort       = errors.New("recipe name must be at least 2 characters")
	ErrDuplicateTag             = errors.New("tags must not repeat")
	ErrDuplicateIngredient      = errors.New("ingredients must not repeat")
	ErrAlreadyFavorited         = errors.New("recipe is already in favorites")
	ErrNotFavorited             = errors.New("recipe is not in favorites")
	ErrInvalidCookingTime       = errors.New("cooking time must be between 1 and 32000 minutes")
	ErrInvalidAmount            = errors.New("ingredient amount must be between 1 and 20")
)

type (
	RecipeIngredientRequest struct {
		ID     string `json:"id" validate:"required,uuid"`
		Amount int    `json:"amount" validate:"required,min=1,max=20"`
	}

	RecipeRequest struct {
		Name        string                    `json:"name" validate:"required,max=200"`
		Text        string                    `json:"text" validate:"required"`
		ImageURL    string                    `json:"image_url" validate:"omitempty,url"`
		CookingTime int                       `json:"cooking_time" validate:"required,min=1,max=32000"`
		Tags        []string                  `json:"tags" validate:"required,min=1,dive,uuid"`
		Ingredients []RecipeIngredientRequest `json:"ingredients" validate:"required,min=1,dive"`
	}

	RecipeFilter struct {
		AuthorID         string   `validate:"omitempty,uuid"`
		Tags             []string `validate:"dive,slug"`
		IsFavorited      *bool
		IsInShoppingCart *bool
	}

	RecipeIngredient struct {
		ID              string `json:"id"`
		Name            string `json:"name"`
		MeasurementUnit string `json:"measurement_unit"`
		Amount          int    `json:"amount"`
	}

	Recipe struct {
		ID               string             `json:"id"`
		Tags             []TagResponse      `json:"tags"`
		Author           UserResponse       `json:"author"`
		Ingredients      []RecipeIngredient `json:"ingredients"`
		IsFavorited      bool               `json:"is_favorited"`
		IsInShoppingCart bool               `json:"is_in_shopping_cart"`
		Name             string             `json:"name"`
		ImageURL         string             `json:"image_url,omitempty"`
		Text             string             `json:"text"`
		CookingTime      int                `json:"cooking_time"`
		CreatedAt        time.Time          `json:"created_at"`
	}

	// RecipeMinified is returned by favorite, cart and subscription endpoints.
	RecipeMinified struct {
		ID          string `json:"id"`
		Name        string `json:"name"`
		ImageURL    string `json:"image_url,omitempty"`
		CookingTime int    `json:"cooking_time"`
	}

	RecipeListResponse struct {
		Recipes    []Recipe           `json:"results"`
		Pagination PaginationResponse `json:"pagination"`
	}
)
