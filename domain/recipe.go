package domain

import (
	"errors"
)

var (
	MessageSuccessGenerateRecipes = "recipes generated successfully"
	MessageSuccessSaveRecipe      = "recipe saved successfully"
	MessageSuccessGetRecipes      = "recipes retrieved successfully"
	MessageSuccessDeleteRecipe    = "recipe deleted successfully"

	MessageFailedGenerateRecipes = "failed to generate recipes"
	MessageFailedSaveRecipe      = "failed to save recipe"
	MessageFailedGetRecipes      = "failed to retrieve recipes"
	MessageFailedDeleteRecipe    = "failed to delete recipe"

	ErrRecipeNotFound = errors.New("recipe not found")
)

type (
	// GeneratedRecipe mirrors the shape the enrichment backend is asked
	// for: generation and persistence are separate operations, a generated
	// recipe only gets an ID once the caller explicitly saves it.
	GeneratedRecipe struct {
		Title               string   `json:"title"`
		Difficulty          string   `json:"difficulty"`
		Time                string   `json:"time"`
		Instructions        []string `json:"instructions"`
		MatchingIngredients []string `json:"matching_ingredients"`
		MissingIngredients  []string `json:"missing_ingredients"`
	}

	SaveRecipeRequest struct {
		Title               string   `json:"title" validate:"required"`
		Difficulty          string   `json:"difficulty" validate:"omitempty,oneof=Easy Medium Hard"`
		Time                string   `json:"time" validate:"omitempty"`
		Instructions        []string `json:"instructions" validate:"required"`
		MatchingIngredients []string `json:"matching_ingredients"`
		MissingIngredients  []string `json:"missing_ingredients"`
	}

	RecipeResponse struct {
		ID                  string   `json:"id"`
		UserID              string   `json:"user_id"`
		Title               string   `json:"title"`
		Difficulty          string   `json:"difficulty"`
		Time                string   `json:"time"`
		Instructions        []string `json:"instructions"`
		MatchingIngredients []string `json:"matching_ingredients"`
		MissingIngredients  []string `json:"missing_ingredients"`
	}
)
