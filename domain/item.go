package domain

import (
	"errors"
	"mime/multipart"
)

var (
	MessageSuccessAddItem         = "item added successfully"
	MessageSuccessGetItems        = "items retrieved successfully"
	MessageSuccessUpdateItem      = "item updated successfully"
	MessageSuccessDeleteItem      = "item deleted successfully"
	MessageSuccessGetExpiring     = "expiring items retrieved successfully"
	MessageSuccessNotifyExpiring  = "expiry reminder sent successfully"
	MessageSuccessUploadItemImage = "item image uploaded successfully"

	MessageFailedAddItem         = "failed to add item"
	MessageFailedGetItems        = "failed to retrieve items"
	MessageFailedUpdateItem      = "failed to update item"
	MessageFailedDeleteItem      = "failed to delete item"
	MessageFailedGetExpiring     = "failed to retrieve expiring items"
	MessageFailedNotifyExpiring  = "failed to send expiry reminder"
	MessageFailedUploadItemImage = "failed to upload item image"

	ErrItemNotFound          = errors.New("item not found")
	ErrInvalidExpirationDate = errors.New("invalid expiration date")
	ErrNoExpiringItems       = errors.New("no items expiring soon")
)

type (
	AddItemRequest struct {
		Name            string     `json:"name" validate:"required"`
		Quantity        float64    `json:"quantity" validate:"required,gt=0"`
		Unit            *string    `json:"unit" validate:"omitempty"`
		ExpirationDate  *string    `json:"expiration_date" validate:"omitempty"`
		Notes           *string    `json:"notes" validate:"omitempty"`
		NutritionalInfo *Nutrition `json:"nutritional_info" validate:"omitempty"`
	}

	// UpdateItemRequest is a partial update: nil fields are left untouched.
	UpdateItemRequest struct {
		Name            *string    `json:"name" validate:"omitempty"`
		Quantity        *float64   `json:"quantity" validate:"omitempty,gt=0"`
		Unit            *string    `json:"unit" validate:"omitempty"`
		ExpirationDate  *string    `json:"expiration_date" validate:"omitempty"`
		Notes           *string    `json:"notes" validate:"omitempty"`
		NutritionalInfo *Nutrition `json:"nutritional_info" validate:"omitempty"`
	}

	UploadItemImageRequest struct {
		Image *multipart.FileHeader `json:"image" form:"image" validate:"required"`
	}

	ItemResponse struct {
		ID              string     `json:"id"`
		FridgeID        string     `json:"fridge_id"`
		Name            string     `json:"name"`
		Quantity        float64    `json:"quantity"`
		Unit            *string    `json:"unit"`
		ExpirationDate  *string    `json:"expiration_date"`
		Notes           *string    `json:"notes"`
		NutritionalInfo *Nutrition `json:"nutritional_info"`
		ImageURL        string     `json:"image_url,omitempty"`
	}
)
