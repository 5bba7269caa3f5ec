package item

import (
	"context"
	"time"

	"fridgepal/entities"

	"gorm.io/gorm"
)

type (
	ItemRepository interface {
		AddItem(ctx context.Context, item *entities.Item) error
		GetItemByID(ctx context.Context, id string, userID string) (*entities.Item, error)
		UpdateItem(ctx context.Context, item *entities.Item) error
		DeleteItem(ctx context.Context, id string) error
		GetItemsByFridge(ctx context.Context, fridgeID string) ([]*entities.Item, error)
		GetExpiringItems(ctx context.Context, userID string, until time.Time) ([]*entities.Item, error)
		GetAllUserItems(ctx context.Context, userID string) ([]*entities.Item, error)
	}

	itemRepository struct {
		db *gorm.DB
	}
)

func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepository{db: db}
}

func (r *itemRepository) AddItem(ctx context.Context, item *entities.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// GetItemByID is owner-scoped: the join filters out items living in
// another user's fridge, so a foreign id reads as not found.
func (r *itemRepository) GetItemByID(ctx context.Context, id string, userID string) (*entities.Item, error) {
	var item entities.Item
	if err := r.db.WithContext(ctx).
		Joins("JOIN fridges ON fridges.id = items.fridge_id").
		Where("items.id = ? AND fridges.user_id = ?", id, userID).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *itemRepository) UpdateItem(ctx context.Context, item *entities.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

func (r *itemRepository) DeleteItem(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Item{}).Error
}

func (r *itemRepository) GetItemsByFridge(ctx context.Context, fridgeID string) ([]*entities.Item, error) {
	var items []*entities.Item
	if err := r.db.WithContext(ctx).
		Where("fridge_id = ?", fridgeID).
		Order("created_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) GetExpiringItems(ctx context.Context, userID string, until time.Time) ([]*entities.Item, error) {
	var items []*entities.Item
	if err := r.db.WithContext(ctx).
		Joins("JOIN fridges ON fridges.id = items.fridge_id").
		Where("fridges.user_id = ? AND items.expiration_date IS NOT NULL AND items.expiration_date <= ?", userID, until).
		Order("items.expiration_date asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *itemRepository) GetAllUserItems(ctx context.Context, userID string) ([]*entities.Item, error) {
	var items []*entities.Item
	if err := r.db.WithContext(ctx).
		Joins("JOIN fridges ON fridges.id = items.fridge_id").
		Where("fridges.user_id = ?", userID).
		Order("items.created_at asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}
