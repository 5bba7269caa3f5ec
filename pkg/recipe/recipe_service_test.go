package recipe

import (
	"context"
	"testing"
	"time"

	"fridgepal/domain"
	"fridgepal/entities"
	"fridgepal/pkg/enrichment"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fakeRecipeRepository struct {
	recipes map[string]*entities.Recipe
}

func newFakeRecipeRepository() *fakeRecipeRepository {
	return &fakeRecipeRepository{recipes: map[string]*entities.Recipe{}}
}

func (f *fakeRecipeRepository) CreateRecipe(_ context.Context, recipe *entities.Recipe) error {
	f.recipes[recipe.ID.String()] = recipe
	return nil
}

func (f *fakeRecipeRepository) GetRecipeByID(_ context.Context, id string, userID string) (*entities.Recipe, error) {
	recipe, ok := f.recipes[id]
	if !ok || recipe.UserID.String() != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return recipe, nil
}

func (f *fakeRecipeRepository) GetRecipes(_ context.Context, userID string) ([]*entities.Recipe, error) {
	var recipes []*entities.Recipe
	for _, recipe := range f.recipes {
		if recipe.UserID.String() == userID {
			recipes = append(recipes, recipe)
		}
	}
	return recipes, nil
}

func (f *fakeRecipeRepository) DeleteRecipe(_ context.Context, id string) error {
	delete(f.recipes, id)
	return nil
}

type fakeItemRepository struct {
	items []*entities.Item
}

func (f *fakeItemRepository) AddItem(_ context.Context, item *entities.Item) error {
	f.items = append(f.items, item)
	return nil
}

func (f *fakeItemRepository) GetItemByID(_ context.Context, _ string, _ string) (*entities.Item, error) {
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeItemRepository) UpdateItem(_ context.Context, _ *entities.Item) error { return nil }

func (f *fakeItemRepository) DeleteItem(_ context.Context, _ string) error { return nil }

func (f *fakeItemRepository) GetItemsByFridge(_ context.Context, _ string) ([]*entities.Item, error) {
	return f.items, nil
}

func (f *fakeItemRepository) GetExpiringItems(_ context.Context, _ string, _ time.Time) ([]*entities.Item, error) {
	return nil, nil
}

func (f *fakeItemRepository) GetAllUserItems(_ context.Context, _ string) ([]*entities.Item, error) {
	return f.items, nil
}

type spyEnricher struct {
	recipes     []domain.GeneratedRecipe
	recipeCalls [][]string
}

func (s *spyEnricher) Configured() bool { return true }

func (s *spyEnricher) NutritionLookup(_ context.Context, _ enrichment.ItemView) (*domain.Nutrition, error) {
	return nil, domain.ErrEnrichmentUnavailable
}

func (s *spyEnricher) AnalyzeLabel(_ context.Context, _ []byte, _ string) (*domain.Nutrition, error) {
	return nil, domain.ErrEnrichmentUnavailable
}

func (s *spyEnricher) AnalyzeFridgeHealth(_ context.Context, _ []enrichment.ItemView) domain.FridgeAnalysisResponse {
	return domain.FridgeAnalysisResponse{}
}

func (s *spyEnricher) GenerateRecipes(_ context.Context, itemNames []string) []domain.GeneratedRecipe {
	s.recipeCalls = append(s.recipeCalls, itemNames)
	return s.recipes
}

func (s *spyEnricher) GoalAdvice(_ context.Context, _ []string, _ string) (*domain.GoalAdviceResponse, error) {
	return nil, domain.ErrEnrichmentUnavailable
}

func TestGenerateRecipesEmptyInventorySkipsBackend(t *testing.T) {
	enricher := &spyEnricher{}
	service := NewRecipeService(newFakeRecipeRepository(), &fakeItemRepository{}, enricher)

	recipes, err := service.GenerateRecipes(context.Background(), uuid.NewString())
	require.NoError(t, err)

	assert.NotNil(t, recipes)
	assert.Empty(t, recipes)
	assert.Empty(t, enricher.recipeCalls, "empty inventory must not reach the backend")
}

func TestGenerateRecipesPassesItemNames(t *testing.T) {
	enricher := &spyEnricher{
		recipes: []domain.GeneratedRecipe{{Title: "Omelette", Difficulty: "Easy"}},
	}
	itemRepo := &fakeItemRepository{items: []*entities.Item{
		{ID: uuid.New(), Name: "eggs", Quantity: 6},
		{ID: uuid.New(), Name: "cheese", Quantity: 1},
	}}
	service := NewRecipeService(newFakeRecipeRepository(), itemRepo, enricher)

	recipes, err := service.GenerateRecipes(context.Background(), uuid.NewString())
	require.NoError(t, err)
	require.Len(t, recipes, 1)
	assert.Equal(t, "Omelette", recipes[0].Title)

	require.Len(t, enricher.recipeCalls, 1)
	assert.Equal(t, []string{"eggs", "cheese"}, enricher.recipeCalls[0])
}

func TestSaveAndGetRecipeRoundTrip(t *testing.T) {
	service := NewRecipeService(newFakeRecipeRepository(), &fakeItemRepository{}, &spyEnricher{})
	userID := uuid.NewString()

	saved, err := service.SaveRecipe(context.Background(), domain.SaveRecipeRequest{
		Title:               "Fried Rice",
		Difficulty:          "Easy",
		Time:                "20 minutes",
		Instructions:        []string{"Cook rice", "Fry everything"},
		MatchingIngredients: []string{"rice", "eggs"},
		MissingIngredients:  []string{"soy sauce"},
	}, userID)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)

	recipes, err := service.GetRecipes(context.Background(), userID)
	require.NoError(t, err)
	require.Len(t, recipes, 1)

	got := recipes[0]
	assert.Equal(t, "Fried Rice", got.Title)
	assert.Equal(t, []string{"Cook rice", "Fry everything"}, got.Instructions)
	assert.Equal(t, []string{"rice", "eggs"}, got.MatchingIngredients)
	assert.Equal(t, []string{"soy sauce"}, got.MissingIngredients)
}

func TestSaveRecipeNilListsDecodeEmpty(t *testing.T) {
	service := NewRecipeService(newFakeRecipeRepository(), &fakeItemRepository{}, &spyEnricher{})
	userID := uuid.NewString()

	saved, err := service.SaveRecipe(context.Background(), domain.SaveRecipeRequest{
		Title:        "Toast",
		Instructions: []string{"Toast bread"},
	}, userID)
	require.NoError(t, err)

	assert.NotNil(t, saved.MatchingIngredients)
	assert.Empty(t, saved.MatchingIngredients)
	assert.NotNil(t, saved.MissingIngredients)
	assert.Empty(t, saved.MissingIngredients)
}

func TestDeleteRecipeNotFound(t *testing.T) {
	service := NewRecipeService(newFakeRecipeRepository(), &fakeItemRepository{}, &spyEnricher{})

	err := service.DeleteRecipe(context.Background(), uuid.NewString(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
}

func TestDeleteRecipeForeignOwnerReadsAsNotFound(t *testing.T) {
	repo := newFakeRecipeRepository()
	service := NewRecipeService(repo, &fakeItemRepository{}, &spyEnricher{})

	owner := uuid.New()
	recipeID := uuid.New()
	repo.recipes[recipeID.String()] = &entities.Recipe{ID: recipeID, UserID: owner, Title: "Soup"}

	err := service.DeleteRecipe(context.Background(), recipeID.String(), uuid.NewString())
	assert.ErrorIs(t, err, domain.ErrRecipeNotFound)
	assert.Contains(t, repo.recipes, recipeID.String())
}
