package fridge

import (
	"context"
	"errors"

	"fridgepal/domain"
	"fridgepal/entities"
	"fridgepal/pkg/enrichment"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type (
	FridgeService interface {
		CreateFridge(ctx context.Context, req domain.CreateFridgeRequest, userID string) (domain.FridgeResponse, error)
		GetFridges(ctx context.Context, userID string) ([]domain.FridgeResponse, error)
		GetFridgeByID(ctx context.Context, id string, userID string) (domain.FridgeResponse, error)
		DeleteFridge(ctx context.Context, id string, userID string) (domain.FridgeResponse, error)
		AnalyzeFridge(ctx context.Context, id string, userID string) (domain.FridgeAnalysisResponse, error)
	}

	fridgeService struct {
		fridgeRepository FridgeRepository
		enricher         enrichment.Client
	}
)

func NewFridgeService(fridgeRepository FridgeRepository, enricher enrichment.Client) FridgeService {
	return &fridgeService{
		fridgeRepository: fridgeRepository,
		enricher:         enricher,
	}
}

func (s *fridgeService) CreateFridge(ctx context.Context, req domain.CreateFridgeRequest, userID string) (domain.FridgeResponse, error) {
	userUUID, err := uuid.Parse(userID)
	if err != nil {
		return domain.FridgeResponse{}, domain.ErrParseUUID
	}

	fridge := &entities.Fridge{
		ID:     uuid.New(),
		UserID: userUUID,
		Name:   req.Name,
	}

	if err := s.fridgeRepository.CreateFridge(ctx, fridge); err != nil {
		return domain.FridgeResponse{}, err
	}

	return toFridgeResponse(fridge), nil
}

func (s *fridgeService) GetFridges(ctx context.Context, userID string) ([]domain.FridgeResponse, error) {
	fridges, err := s.fridgeRepository.GetFridges(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := make([]domain.FridgeResponse, 0, len(fridges))
	for _, fridge := range fridges {
		response = append(response, toFridgeResponse(fridge))
	}
	return response, nil
}

func (s *fridgeService) GetFridgeByID(ctx context.Context, id string, userID string) (domain.FridgeResponse, error) {
	fridge, err := s.fridgeRepository.GetFridgeByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.FridgeResponse{}, domain.ErrFridgeNotFound
		}
		return domain.FridgeResponse{}, err
	}

	return toFridgeResponse(fridge), nil
}

func (s *fridgeService) DeleteFridge(ctx context.Context, id string, userID string) (domain.FridgeResponse, error) {
	fridge, err := s.fridgeRepository.GetFridgeByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.FridgeResponse{}, domain.ErrFridgeNotFound
		}
		return domain.FridgeResponse{}, err
	}

	if err := s.fridgeRepository.DeleteFridge(ctx, id); err != nil {
		return domain.FridgeResponse{}, err
	}

	return toFridgeResponse(fridge), nil
}

func (s *fridgeService) AnalyzeFridge(ctx context.Context, id string, userID string) (domain.FridgeAnalysisResponse, error) {
	fridge, err := s.fridgeRepository.GetFridgeByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return domain.FridgeAnalysisResponse{}, domain.ErrFridgeNotFound
		}
		return domain.FridgeAnalysisResponse{}, err
	}

	views := make([]enrichment.ItemView, 0, len(fridge.Items))
	for _, item := range fridge.Items {
		views = append(views, itemView(item))
	}

	return s.enricher.AnalyzeFridgeHealth(ctx, views), nil
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

func toFridgeResponse(fridge *entities.Fridge) domain.FridgeResponse {
	items := make([]domain.ItemResponse, 0, len(fridge.Items))
	for _, item := range fridge.Items {
		items = append(items, toItemResponse(item))
	}

	return domain.FridgeResponse{
		ID:     fridge.ID.String(),
		UserID: fridge.UserID.String(),
		Name:   fridge.Name,
		Items:  items,
	}
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
