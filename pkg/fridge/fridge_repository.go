package fridge

import (
	"context"

	"fridgepal/entities"

	"gorm.io/gorm"
)

type (
	FridgeRepository interface {
		CreateFridge(ctx context.Context, fridge *entities.Fridge) error
		GetFridgeByID(ctx context.Context, id string, userID string) (*entities.Fridge, error)
		GetFridges(ctx context.Context, userID string) ([]*entities.Fridge, error)
		DeleteFridge(ctx context.Context, id string) error
	}

	fridgeRepository struct {
		db *gorm.DB
	}
)

func NewFridgeRepository(db *gorm.DB) FridgeRepository {
	return &fridgeRepository{db: db}
}

func (r *fridgeRepository) CreateFridge(ctx context.Context, fridge *entities.Fridge) error {
	return r.db.WithContext(ctx).Create(fridge).Error
}

func (r *fridgeRepository) GetFridgeByID(ctx context.Context, id string, userID string) (*entities.Fridge, error) {
	var fridge entities.Fridge
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ? AND user_id = ?", id, userID).
		First(&fridge).Error; err != nil {
		return nil, err
	}
	return &fridge, nil
}

func (r *fridgeRepository) GetFridges(ctx context.Context, userID string) ([]*entities.Fridge, error) {
	var fridges []*entities.Fridge
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&fridges).Error; err != nil {
		return nil, err
	}
	return fridges, nil
}

func (r *fridgeRepository) DeleteFridge(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&entities.Fridge{}).Error
}
