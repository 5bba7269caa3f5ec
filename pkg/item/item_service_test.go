package item

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"strings"
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

type fakeItemRepository struct {
	items       map[string]*entities.Item
	expiring    []*entities.Item
	expiringArg time.Time
}

func newFakeItemRepository() *fakeItemRepository {
	return &fakeItemRepository{items: map[string]*entities.Item{}}
}

func (f *fakeItemRepository) AddItem(_ context.Context, item *entities.Item) error {
	f.items[item.ID.String()] = item
	return nil
}

func (f *fakeItemRepository) GetItemByID(_ context.Context, id string, _ string) (*entities.Item, error) {
	item, ok := f.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *item
	return &copied, nil
}

func (f *fakeItemRepository) UpdateItem(_ context.Context, item *entities.Item) error {
	f.items[item.ID.String()] = item
	return nil
}

func (f *fakeItemRepository) DeleteItem(_ context.Context, id string) error {
	delete(f.items, id)
	return nil
}

func (f *fakeItemRepository) GetItemsByFridge(_ context.Context, fridgeID string) ([]*entities.Item, error) {
	var items []*entities.Item
	for _, item := range f.items {
		if item.FridgeID.String() == fridgeID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (f *fakeItemRepository) GetExpiringItems(_ context.Context, _ string, until time.Time) ([]*entities.Item, error) {
	f.expiringArg = until
	return f.expiring, nil
}

func (f *fakeItemRepository) GetAllUserItems(_ context.Context, _ string) ([]*entities.Item, error) {
	var items []*entities.Item
	for _, item := range f.items {
		items = append(items, item)
	}
	return items, nil
}

type fakeFridgeRepository struct {
	fridges map[string]*entities.Fridge
}

func newFakeFridgeRepository() *fakeFridgeRepository {
	return &fakeFridgeRepository{fridges: map[string]*entities.Fridge{}}
}

func (f *fakeFridgeRepository) CreateFridge(_ context.Context, fridge *entities.Fridge) error {
	f.fridges[fridge.ID.String()] = fridge
	return nil
}

func (f *fakeFridgeRepository) GetFridgeByID(_ context.Context, id string, userID string) (*entities.Fridge, error) {
	fridge, ok := f.fridges[id]
	if !ok || fridge.UserID.String() != userID {
		return nil, gorm.ErrRecordNotFound
	}
	return fridge, nil
}

func (f *fakeFridgeRepository) GetFridges(_ context.Context, _ string) ([]*entities.Fridge, error) {
	var fridges []*entities.Fridge
	for _, fridge := range f.fridges {
		fridges = append(fridges, fridge)
	}
	return fridges, nil
}

func (f *fakeFridgeRepository) DeleteFridge(_ context.Context, id string) error {
	delete(f.fridges, id)
	return nil
}

type fakeUserRepository struct {
	users map[string]*entities.User
}

func (f *fakeUserRepository) CreateUser(_ context.Context, user *entities.User) error {
	f.users[user.ID.String()] = user
	return nil
}

func (f *fakeUserRepository) GetUserByID(_ context.Context, id string) (*entities.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return user, nil
}

func (f *fakeUserRepository) GetUserByEmail(_ context.Context, email string) (*entities.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeEnricher struct {
	nutrition   *domain.Nutrition
	lookupErr   error
	lookupCalls []enrichment.ItemView

	labelNutrition *domain.Nutrition
	labelErr       error
	labelCalls     int
}

func (f *fakeEnricher) Configured() bool { return true }

func (f *fakeEnricher) NutritionLookup(_ context.Context, item enrichment.ItemView) (*domain.Nutrition, error) {
	f.lookupCalls = append(f.lookupCalls, item)
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	return f.nutrition, nil
}

func (f *fakeEnricher) AnalyzeLabel(_ context.Context, _ []byte, _ string) (*domain.Nutrition, error) {
	f.labelCalls++
	if f.labelErr != nil {
		return nil, f.labelErr
	}
	return f.labelNutrition, nil
}

func (f *fakeEnricher) AnalyzeFridgeHealth(_ context.Context, _ []enrichment.ItemView) domain.FridgeAnalysisResponse {
	return domain.FridgeAnalysisResponse{}
}

func (f *fakeEnricher) GenerateRecipes(_ context.Context, _ []string) []domain.GeneratedRecipe {
	return []domain.GeneratedRecipe{}
}

func (f *fakeEnricher) GoalAdvice(_ context.Context, _ []string, _ string) (*domain.GoalAdviceResponse, error) {
	return nil, domain.ErrEnrichmentUnavailable
}

type fakeS3 struct {
	uploadedBytes map[string][]byte
	uploadErr     error
	deleted       []string
}

func newFakeS3() *fakeS3 {
	return &fakeS3{uploadedBytes: map[string][]byte{}}
}

func (f *fakeS3) UploadFile(fileName string, _ *multipart.FileHeader, dir string, _ ...string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	return dir + "/" + fileName, nil
}

func (f *fakeS3) UploadBytes(fileName string, data []byte, _ string, dir string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	key := dir + "/" + fileName
	f.uploadedBytes[key] = data
	return key, nil
}

func (f *fakeS3) UpdateFile(objectKey string, _ *multipart.FileHeader, _ ...string) (string, error) {
	if f.uploadErr != nil {
		return "", f.uploadErr
	}
	return objectKey, nil
}

func (f *fakeS3) DeleteFile(objectKey string) error {
	f.deleted = append(f.deleted, objectKey)
	return nil
}

func (f *fakeS3) GetPublicLinkKey(objectKey string) string {
	return "https://bucket.s3.test/" + objectKey
}

func (f *fakeS3) GetObjectKeyFromLink(link string) string {
	if !strings.HasPrefix(link, "https://bucket.s3.test/") {
		return ""
	}
	return strings.TrimPrefix(link, "https://bucket.s3.test/")
}

type serviceFixture struct {
	service    ItemService
	itemRepo   *fakeItemRepository
	fridgeRepo *fakeFridgeRepository
	userRepo   *fakeUserRepository
	enricher   *fakeEnricher
	s3         *fakeS3
	userID     string
	fridgeID   string
}

func newServiceFixture() *serviceFixture {
	itemRepo := newFakeItemRepository()
	fridgeRepo := newFakeFridgeRepository()
	userRepo := &fakeUserRepository{users: map[string]*entities.User{}}
	enricher := &fakeEnricher{}
	s3 := newFakeS3()

	userID := uuid.New()
	fridgeID := uuid.New()
	fridgeRepo.fridges[fridgeID.String()] = &entities.Fridge{
		ID:     fridgeID,
		UserID: userID,
		Name:   "Kitchen",
	}

	return &serviceFixture{
		service:    NewItemService(itemRepo, fridgeRepo, userRepo, enricher, s3),
		itemRepo:   itemRepo,
		fridgeRepo: fridgeRepo,
		userRepo:   userRepo,
		enricher:   enricher,
		s3:         s3,
		userID:     userID.String(),
		fridgeID:   fridgeID.String(),
	}
}

func TestAddItemEnrichesMissingProfile(t *testing.T) {
	fx := newServiceFixture()
	fx.enricher.nutrition = &domain.Nutrition{Calories: 52, Protein: 0.3, Carbs: 14, Fat: 0.2}

	res, err := fx.service.AddItem(context.Background(), fx.fridgeID, domain.AddItemRequest{
		Name:     "apple",
		Quantity: 1,
	}, fx.userID)
	require.NoError(t, err)

	require.Len(t, fx.enricher.lookupCalls, 1)
	assert.Equal(t, "apple", fx.enricher.lookupCalls[0].Name)

	require.NotNil(t, res.NutritionalInfo)
	assert.Equal(t, 52, res.NutritionalInfo.Calories)

	stored := fx.itemRepo.items[res.ID]
	require.NotNil(t, stored)
	assert.NotEmpty(t, stored.NutritionalInfo)
}

func TestAddItemExplicitProfileSkipsLookup(t *testing.T) {
	fx := newServiceFixture()

	res, err := fx.service.AddItem(context.Background(), fx.fridgeID, domain.AddItemRequest{
		Name:            "protein bar",
		Quantity:        1,
		NutritionalInfo: &domain.Nutrition{Calories: 200, Protein: 20, Carbs: 15, Fat: 8},
	}, fx.userID)
	require.NoError(t, err)

	assert.Empty(t, fx.enricher.lookupCalls)
	require.NotNil(t, res.NutritionalInfo)
	assert.Equal(t, 200, res.NutritionalInfo.Calories)
}

func TestAddItemEnrichmentFailureKeepsNullProfile(t *testing.T) {
	fx := newServiceFixture()
	fx.enricher.lookupErr = domain.ErrEnrichmentUnavailable

	res, err := fx.service.AddItem(context.Background(), fx.fridgeID, domain.AddItemRequest{
		Name:     "mystery sauce",
		Quantity: 1,
	}, fx.userID)
	require.NoError(t, err)

	assert.Nil(t, res.NutritionalInfo)
	assert.Empty(t, fx.itemRepo.items[res.ID].NutritionalInfo)
}

func TestAddItemUnknownFridge(t *testing.T) {
	fx := newServiceFixture()

	_, err := fx.service.AddItem(context.Background(), uuid.NewString(), domain.AddItemRequest{
		Name:     "apple",
		Quantity: 1,
	}, fx.userID)
	assert.ErrorIs(t, err, domain.ErrFridgeNotFound)
}

func TestAddItemInvalidExpirationDate(t *testing.T) {
	fx := newServiceFixture()
	bad := "next tuesday"

	_, err := fx.service.AddItem(context.Background(), fx.fridgeID, domain.AddItemRequest{
		Name:           "yogurt",
		Quantity:       1,
		ExpirationDate: &bad,
	}, fx.userID)
	assert.ErrorIs(t, err, domain.ErrInvalidExpirationDate)
}

func seedItem(fx *serviceFixture, nutrition *domain.Nutrition) *entities.Item {
	item := &entities.Item{
		ID:              uuid.New(),
		FridgeID:        uuid.MustParse(fx.fridgeID),
		Name:            "milk",
		Quantity:        1,
		NutritionalInfo: nutrition.ToJSON(),
	}
	fx.itemRepo.items[item.ID.String()] = item
	return item
}

func TestUpdateItemRelevantChangeReEnriches(t *testing.T) {
	fx := newServiceFixture()
	item := seedItem(fx, &domain.Nutrition{Calories: 42, Protein: 3.4, Carbs: 5, Fat: 1})
	fx.enricher.nutrition = &domain.Nutrition{Calories: 84, Protein: 6.8, Carbs: 10, Fat: 2}

	newName := "oat milk"
	res, err := fx.service.UpdateItem(context.Background(), item.ID.String(), domain.UpdateItemRequest{
		Name: &newName,
	}, fx.userID)
	require.NoError(t, err)

	require.Len(t, fx.enricher.lookupCalls, 1)
	assert.Equal(t, "oat milk", fx.enricher.lookupCalls[0].Name, "lookup must see the merged post-update view")

	require.NotNil(t, res.NutritionalInfo)
	assert.Equal(t, 84, res.NutritionalInfo.Calories)
}

func TestUpdateItemExpirationOnlyDoesNotReEnrich(t *testing.T) {
	fx := newServiceFixture()
	item := seedItem(fx, &domain.Nutrition{Calories: 42, Protein: 3.4, Carbs: 5, Fat: 1})

	date := "2026-09-15"
	res, err := fx.service.UpdateItem(context.Background(), item.ID.String(), domain.UpdateItemRequest{
		ExpirationDate: &date,
	}, fx.userID)
	require.NoError(t, err)

	assert.Empty(t, fx.enricher.lookupCalls)
	require.NotNil(t, res.NutritionalInfo)
	assert.Equal(t, 42, res.NutritionalInfo.Calories)
	require.NotNil(t, res.ExpirationDate)
	assert.Equal(t, date, *res.ExpirationDate)
}

func TestUpdateItemExplicitProfileWins(t *testing.T) {
	fx := newServiceFixture()
	item := seedItem(fx, &domain.Nutrition{Calories: 42, Protein: 3.4, Carbs: 5, Fat: 1})
	fx.enricher.nutrition = &domain.Nutrition{Calories: 999}

	newName := "skim milk"
	res, err := fx.service.UpdateItem(context.Background(), item.ID.String(), domain.UpdateItemRequest{
		Name:            &newName,
		NutritionalInfo: &domain.Nutrition{Calories: 35, Protein: 3.4, Carbs: 5, Fat: 0.1},
	}, fx.userID)
	require.NoError(t, err)

	assert.Empty(t, fx.enricher.lookupCalls)
	require.NotNil(t, res.NutritionalInfo)
	assert.Equal(t, 35, res.NutritionalInfo.Calories)
}

func TestUpdateItemEnrichFailureKeepsOldProfile(t *testing.T) {
	fx := newServiceFixture()
	item := seedItem(fx, &domain.Nutrition{Calories: 42, Protein: 3.4, Carbs: 5, Fat: 1})
	fx.enricher.lookupErr = errors.New("backend down")

	quantity := 2.0
	res, err := fx.service.UpdateItem(context.Background(), item.ID.String(), domain.UpdateItemRequest{
		Quantity: &quantity,
	}, fx.userID)
	require.NoError(t, err)

	require.NotNil(t, res.NutritionalInfo)
	assert.Equal(t, 42, res.NutritionalInfo.Calories)
	assert.Equal(t, 2.0, res.Quantity)
}

func TestUpdateItemNotFound(t *testing.T) {
	fx := newServiceFixture()
	newName := "ghost"

	_, err := fx.service.UpdateItem(context.Background(), uuid.NewString(), domain.UpdateItemRequest{
		Name: &newName,
	}, fx.userID)
	assert.ErrorIs(t, err, domain.ErrItemNotFound)
}

func TestGetExpiringItemsWindow(t *testing.T) {
	fx := newServiceFixture()

	_, err := fx.service.GetExpiringItems(context.Background(), fx.userID)
	require.NoError(t, err)

	expected := time.Now().AddDate(0, 0, 3)
	assert.WithinDuration(t, expected, fx.itemRepo.expiringArg, time.Minute)
}

func TestNotifyExpiringItemsEmpty(t *testing.T) {
	fx := newServiceFixture()
	ownerID := uuid.MustParse(fx.userID)
	fx.userRepo.users[fx.userID] = &entities.User{ID: ownerID, Email: "test@example.com"}

	err := fx.service.NotifyExpiringItems(context.Background(), fx.userID)
	assert.ErrorIs(t, err, domain.ErrNoExpiringItems)
}

func TestDeleteItemRemovesStoredImage(t *testing.T) {
	fx := newServiceFixture()
	item := seedItem(fx, nil)
	item.ImageURL = "https://bucket.s3.test/items/item-" + item.ID.String()

	res, err := fx.service.DeleteItem(context.Background(), item.ID.String(), fx.userID)
	require.NoError(t, err)

	assert.Equal(t, item.ID.String(), res.ID)
	assert.NotContains(t, fx.itemRepo.items, item.ID.String())
	require.Len(t, fx.s3.deleted, 1)
	assert.Equal(t, "items/item-"+item.ID.String(), fx.s3.deleted[0])
}

func makeImageHeader(t *testing.T, name string, content []byte, contentType string) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, name))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(&buf, writer.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	return form.File["image"][0]
}

func TestScanNutritionLabelSuccess(t *testing.T) {
	fx := newServiceFixture()
	fx.enricher.labelNutrition = &domain.Nutrition{Calories: 120, Protein: 4, Carbs: 22, Fat: 2}

	file := makeImageHeader(t, "label.jpg", []byte("fake image bytes"), "image/jpeg")
	nutrition, err := fx.service.ScanNutritionLabel(context.Background(), file)
	require.NoError(t, err)
	require.NotNil(t, nutrition)
	assert.Equal(t, 120, nutrition.Calories)

	assert.Equal(t, 1, fx.enricher.labelCalls)
	assert.Len(t, fx.s3.uploadedBytes, 1, "scanned label should be archived")
}

func TestScanNutritionLabelFailure(t *testing.T) {
	fx := newServiceFixture()
	fx.enricher.labelErr = domain.ErrEnrichmentUnavailable

	file := makeImageHeader(t, "label.png", []byte("fake image bytes"), "image/png")
	nutrition, err := fx.service.ScanNutritionLabel(context.Background(), file)
	assert.Nil(t, nutrition)
	assert.ErrorIs(t, err, domain.ErrCouldNotAnalyzeImage)
}

func TestScanNutritionLabelArchiveFailureStillAnalyzes(t *testing.T) {
	fx := newServiceFixture()
	fx.enricher.labelNutrition = &domain.Nutrition{Calories: 90}
	fx.s3.uploadErr = errors.New("bucket unreachable")

	file := makeImageHeader(t, "label.jpg", []byte("fake image bytes"), "image/jpeg")
	nutrition, err := fx.service.ScanNutritionLabel(context.Background(), file)
	require.NoError(t, err)
	assert.Equal(t, 90, nutrition.Calories)
}

func TestUploadItemImageSetsURL(t *testing.T) {
	fx := newServiceFixture()
	item := seedItem(fx, nil)

	file := makeImageHeader(t, "milk.jpg", []byte("fake image bytes"), "image/jpeg")
	res, err := fx.service.UploadItemImage(context.Background(), item.ID.String(), file, fx.userID)
	require.NoError(t, err)

	assert.Equal(t, "https://bucket.s3.test/items/item-"+item.ID.String(), res.ImageURL)
	assert.Equal(t, res.ImageURL, fx.itemRepo.items[item.ID.String()].ImageURL)
}
