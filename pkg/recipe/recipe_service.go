package recipe

import (
	"context"
	"encoding/json"
	"errors"

	"fridgepal/domain"
	"fridgepal/entities"
	"fridgepal/pkg/enrichment"
	"fridgepal/pkg/item"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	RecipeService interface {
		GenerateRecipes(ctx context.Context, userID string) ([]domain.GeneratedRecipe, error)
		SaveRecipe(ctx context.Context, req domain.SaveRecipeRequest, userID string) (domain.RecipeResponse, error)
		GetRecipes(ctx context.Context, userID string) ([]domain.RecipeResponse, error)
		DeleteRecipe(ctx context.Context, id string, userID string) error
	}

	recipeService struct {
		recipeRepository RecipeRepository
		itemRepository   item.ItemRepository
		enricher         enrichment.Client
	}
)

func NewRecipeService(recipeRepository RecipeRepository, itemRepository item.ItemRepository, enricher enrichment.Client) RecipeService {
	return &recipeService{
		recipeRepository: recipeRepository,
		itemRepository:   itemRepository,
		enricher:         enricher,
	}
}

// GenerateRecipes proposes recipes from the whole inventory. Generation
// is transient: nothing is persisted until the caller saves a recipe.
func (s *recipeService) GenerateRecipes(ctx context.Context, userID string) ([]domain.GeneratedRecipe, error) {
	items, err := s.itemRepository.GetAllUserItems(ctx, userID)
	if err != nil {
		return nil, err
	}

	// An empty inventory never reaches the enrichment backend.
	if len(items) == 0 {
		return []domain.GeneratedRecipe{}, nil
	}

	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}

	return s.enricher.GenerateRecipes(ctx, names), nil
}

func (s *recipeService) SaveRecipe(ctx context.Context, req domain.SaveRecipeRequest, userID string) (domain.RecipeResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.RecipeResponse{}, domain.ErrParseUUID
	}

	recipe := &entities.Recipe{
		ID:                  uuid.New(),
		UserID:              userUUID,
		Title:               req.Title,
		Time:                req.Time,
		Difficulty:          req.Difficulty,
		Instructions:        encodeStrings(req.Instructions),
		MatchingIngredients: encodeStrings(req.MatchingIngredients),
		MissingIngredients:  encodeStrings(req.MissingIngredients),
	}

	if err := s.recipeRepository.CreateRecipe(ctx, recipe); err != nil {
		return domain.RecipeResponse{}, err
	}

	return toRecipeResponse(recipe), nil
}

func (s *recipeService) GetRecipes(ctx context.Context, userID string) ([]domain.RecipeResponse, error) {
	recipes, err := s.recipeRepository.GetRecipes(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := make([]domain.RecipeResponse, 0, len(recipes))
	for _, recipe := range recipes {
		response = append(response, toRecipeResponse(recipe))
	}
	return response, nil
}

func (s *recipeService) DeleteRecipe(ctx context.Context, id string, userID string) error {
	if _, err := s.recipeRepository.GetRecipeByID(ctx, id, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrRecipeNotFound
		}
		return err
	}

	return s.recipeRepository.DeleteRecipe(ctx, id)
}

func encodeStrings(values []string) string {
	if values == nil {
		values = []string{}
	}
	raw, _ := json.Marshal(values)
	return string(raw)
}

func decodeStrings(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return []string{}
	}
	return values
}

func toRecipeResponse(recipe *entities.Recipe) domain.RecipeResponse {
	return domain.RecipeResponse{
		ID:                  recipe.ID.String(),
		UserID:              recipe.UserID.String(),
		Title:               recipe.Title,
		Difficulty:          recipe.Difficulty,
		Time:                recipe.Time,
		Instructions:        decodeStrings(recipe.Instructions),
		MatchingIngredients: decodeStrings(recipe.MatchingIngredients),
		MissingIngredients:  decodeStrings(recipe.MissingIngredients),
	}
}
