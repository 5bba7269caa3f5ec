package goal

import (
	"context"

	"fridgepal/domain"
	"fridgepal/pkg/enrichment"
	"fridgepal/pkg/item"
)

type (
	GoalService interface {
		GetAdvice(ctx context.Context, req domain.GoalAdviceRequest, userID string) (domain.GoalAdviceResponse, error)
	}

	goalService struct {
		itemRepository item.ItemRepository
		enricher       enrichment.Client
	}
)

func NewGoalService(itemRepository item.ItemRepository, enricher enrichment.Client) GoalService {
	return &goalService{
		itemRepository: itemRepository,
		enricher:       enricher,
	}
}

// GetAdvice is transient: produced from the current inventory and the
// free-text goal, never persisted.
func (s *goalService) GetAdvice(ctx context.Context, req domain.GoalAdviceRequest, userID string) (domain.GoalAdviceResponse, error) {
	items, err := s.itemRepository.GetAllUserItems(ctx, userID)
	if err != nil {
		return domain.GoalAdviceResponse{}, err
	}

	names := make([]string, 0, len(items))
	for _, it := range items {
		names = append(names, it.Name)
	}

	advice, err := s.enricher.GoalAdvice(ctx, names, req.Goal)
	if err != nil {
		return domain.GoalAdviceResponse{}, domain.ErrAdviceFailed
	}

	return *advice, nil
}
