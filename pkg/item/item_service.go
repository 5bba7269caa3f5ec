package item

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"fridgepal/domain"
	"fridgepal/entities"
	"fridgepal/internal/utils/mailing"
	"fridgepal/internal/utils/storage"
	"fridgepal/pkg/enrichment"
	"fridgepal/pkg/fridge"
	"fridgepal/pkg/user"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// expiryWindowDays is the window for "expiring soon": a non-null
// expiration date within this many days of today, inclusive. Already
// expired items are included on purpose.
const expiryWindowDays = 3

type (
	ItemService interface {
		AddItem(ctx context.Context, fridgeID string, req domain.AddItemRequest, userID string) (domain.ItemResponse, error)
		GetItems(ctx context.Context, fridgeID string, userID string) ([]domain.ItemResponse, error)
		UpdateItem(ctx context.Context, itemID string, req domain.UpdateItemRequest, userID string) (domain.ItemResponse, error)
		DeleteItem(ctx context.Context, itemID string, userID string) (domain.ItemResponse, error)
		GetExpiringItems(ctx context.Context, userID string) ([]domain.ItemResponse, error)
		NotifyExpiringItems(ctx context.Context, userID string) error
		ScanNutritionLabel(ctx context.Context, file *multipart.FileHeader) (*domain.Nutrition, error)
		UploadItemImage(ctx context.Context, itemID string, image *multipart.FileHeader, userID string) (domain.ItemResponse, error)
	}

	itemService struct {
		itemRepository   ItemRepository
		fridgeRepository fridge.FridgeRepository
		userRepository   user.UserRepository
		enricher         enrichment.Client
		s3               storage.AwsS3
	}
)

func NewItemService(
	itemRepository ItemRepository,
	fridgeRepository fridge.FridgeRepository,
	userRepository user.UserRepository,
	enricher enrichment.Client,
	s3 storage.AwsS3,
) ItemService {
	return &itemService{
		itemRepository:   itemRepository,
		fridgeRepository: fridgeRepository,
		userRepository:   userRepository,
		enricher:         enricher,
		s3:               s3,
	}
}

func (s *itemService) AddItem(ctx context.Context, fridgeID string, req domain.AddItemRequest, userID string) (domain.ItemResponse, error) {
	if _, err := s.fridgeRepository.GetFridgeByID(ctx, fridgeID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ItemResponse{}, domain.ErrFridgeNotFound
		}
		return domain.ItemResponse{}, err
	}

	fridgeUUID, err := uuid.Parse(fridgeID)
	if err != nil {
		return domain.ItemResponse{}, domain.ErrParseUUID
	}

	item := &entities.Item{
		ID:       uuid.New(),
		FridgeID: fridgeUUID,
		Name:     req.Name,
		Quantity: req.Quantity,
		Unit:     req.Unit,
		Notes:    req.Notes,
	}

	if req.ExpirationDate != nil {
		expiration, err := time.Parse("2006-01-02", *req.ExpirationDate)
		if err != nil {
			return domain.ItemResponse{}, domain.ErrInvalidExpirationDate
		}
		item.ExpirationDate = &expiration
	}

	// Enrich before the first persisted write; a failed lookup persists
	// a null profile, creation never blocks on enrichment.
	profile := req.NutritionalInfo
	if profile == nil {
		looked, err := s.enricher.NutritionLookup(ctx, itemView(item))
		if err == nil {
			profile = looked
		}
	}
	item.NutritionalInfo = profile.ToJSON()

	if err := s.itemRepository.AddItem(ctx, item); err != nil {
		return domain.ItemResponse{}, err
	}

	return toItemResponse(item), nil
}

func (s *itemService) GetItems(ctx context.Context, fridgeID string, userID string) ([]domain.ItemResponse, error) {
	if _, err := s.fridgeRepository.GetFridgeByID(ctx, fridgeID, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrFridgeNotFound
		}
		return nil, err
	}

	items, err := s.itemRepository.GetItemsByFridge(ctx, fridgeID)
	if err != nil {
		return nil, err
	}

	return toItemResponses(items), nil
}

func (s *itemService) UpdateItem(ctx context.Context, itemID string, req domain.UpdateItemRequest, userID string) (domain.ItemResponse, error) {
	item, err := s.itemRepository.GetItemByID(ctx, itemID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ItemResponse{}, domain.ErrItemNotFound
		}
		return domain.ItemResponse{}, err
	}

	relevantChanges := req.Name != nil || req.Quantity != nil || req.Unit != nil || req.Notes != nil

	if req.Name != nil {
		item.Name = *req.Name
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.Unit != nil {
		item.Unit = req.Unit
	}
	if req.Notes != nil {
		item.Notes = req.Notes
	}
	if req.ExpirationDate != nil {
		expiration, err := time.Parse("2006-01-02", *req.ExpirationDate)
		if err != nil {
			return domain.ItemResponse{}, domain.ErrInvalidExpirationDate
		}
		item.ExpirationDate = &expiration
	}

	if req.NutritionalInfo != nil {
		// An explicit profile always wins, no fresh lookup.
		item.NutritionalInfo = req.NutritionalInfo.ToJSON()
	} else if relevantChanges {
		// Re-enrich with the merged post-update view so the backend sees
		// the new name/quantity/unit/notes; failure keeps the old profile.
		if profile, err := s.enricher.NutritionLookup(ctx, itemView(item)); err == nil {
			item.NutritionalInfo = profile.ToJSON()
		}
	}

	if err := s.itemRepository.UpdateItem(ctx, item); err != nil {
		return domain.ItemResponse{}, err
	}

	return toItemResponse(item), nil
}

func (s *itemService) DeleteItem(ctx context.Context, itemID string, userID string) (domain.ItemResponse, error) {
	item, err := s.itemRepository.GetItemByID(ctx, itemID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ItemResponse{}, domain.ErrItemNotFound
		}
		return domain.ItemResponse{}, err
	}

	if item.ImageURL != "" {
		if objectKey := s.s3.GetObjectKeyFromLink(item.ImageURL); objectKey != "" {
			_ = s.s3.DeleteFile(objectKey)
		}
	}

	if err := s.itemRepository.DeleteItem(ctx, itemID); err != nil {
		return domain.ItemResponse{}, err
	}

	return toItemResponse(item), nil
}

func (s *itemService) GetExpiringItems(ctx context.Context, userID string) ([]domain.ItemResponse, error) {
	until := time.Now().AddDate(0, 0, expiryWindowDays)
	items, err := s.itemRepository.GetExpiringItems(ctx, userID, until)
	if err != nil {
		return nil, err
	}
	return toItemResponses(items), nil
}

func (s *itemService) NotifyExpiringItems(ctx context.Context, userID string) error {
	owner, err := s.userRepository.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}

	until := time.Now().AddDate(0, 0, expiryWindowDays)
	items, err := s.itemRepository.GetExpiringItems(ctx, userID, until)
	if err != nil {
		return err
	}

	if len(items) == 0 {
		return domain.ErrNoExpiringItems
	}

	var body strings.Builder
	body.WriteString("<p>The following items expire within the next 3 days:</p><ul>")
	for _, item := range items {
		line := item.Name
		if item.ExpirationDate != nil {
			line = fmt.Sprintf("%s (expires %s)", item.Name, item.ExpirationDate.Format("2006-01-02"))
		}
		body.WriteString("<li>" + line + "</li>")
	}
	body.WriteString("</ul>")

	return mailing.SendMail(owner.Email, "Items expiring soon", body.String())
}

func (s *itemService) ScanNutritionLabel(ctx context.Context, file *multipart.FileHeader) (*domain.Nutrition, error) {
	src, err := file.Open()
	if err != nil {
		return nil, domain.ErrCouldNotAnalyzeImage
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		return nil, domain.ErrCouldNotAnalyzeImage
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		switch strings.ToLower(filepath.Ext(file.Filename)) {
		case ".png":
			mimeType = "image/png"
		case ".webp":
			mimeType = "image/webp"
		default:
			mimeType = "image/jpeg"
		}
	}

	// Best-effort archive of the scanned label; analysis proceeds either way.
	labelKey := fmt.Sprintf("label-%s%s", uuid.New().String(), filepath.Ext(file.Filename))
	if _, err := s.s3.UploadBytes(labelKey, data, mimeType, "labels"); err != nil {
		log.Warnf("failed to archive scanned label: %v", err)
	}

	nutrition, err := s.enricher.AnalyzeLabel(ctx, data, mimeType)
	if err != nil {
		return nil, domain.ErrCouldNotAnalyzeImage
	}

	return nutrition, nil
}

func (s *itemService) UploadItemImage(ctx context.Context, itemID string, image *multipart.FileHeader, userID string) (domain.ItemResponse, error) {
	item, err := s.itemRepository.GetItemByID(ctx, itemID, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.ItemResponse{}, domain.ErrItemNotFound
		}
		return domain.ItemResponse{}, err
	}

	fileName := fmt.Sprintf("item-%s", item.ID.String())
	var objectKey string
	var uploadErr error

	if existingKey := s.s3.GetObjectKeyFromLink(item.ImageURL); existingKey != "" {
		objectKey, uploadErr = s.s3.UpdateFile(existingKey, image, storage.AllowImage...)
	} else {
		objectKey, uploadErr = s.s3.UploadFile(fileName, image, "items", storage.AllowImage...)
	}
	if uploadErr != nil {
		return domain.ItemResponse{}, uploadErr
	}

	item.ImageURL = s.s3.GetPublicLinkKey(objectKey)

	if err := s.itemRepository.UpdateItem(ctx, item); err != nil {
		return domain.ItemResponse{}, err
	}

	return toItemResponse(item), nil
}

func itemView(item *entities.Item) enrichment.ItemView {
	view := enrichment.ItemView{
		Name:     item.Name,
		Quantity: item.Quantity,
	}
	if item.Unit != nil {
		view.Unit = *item.Unit
	}
	if item.Notes != nil {
		view.Notes = *item.Notes
	}
	return view
}

func toItemResponse(item *entities.Item) domain.ItemResponse {
	response := domain.ItemResponse{
		ID:              item.ID.String(),
		FridgeID:        item.FridgeID.String(),
		Name:            item.Name,
		Quantity:        item.Quantity,
		Unit:            item.Unit,
		Notes:           item.Notes,
		NutritionalInfo: domain.NutritionFromJSON(item.NutritionalInfo),
		ImageURL:        item.ImageURL,
	}
	if item.ExpirationDate != nil {
		date := item.ExpirationDate.Format("2006-01-02")
		response.ExpirationDate = &date
	}
	return response
}

func toItemResponses(items []*entities.Item) []domain.ItemResponse {
	response := make([]domain.ItemResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toItemResponse(item))
	}
	return response
}
