package entities

import (
	"time"

	"github.com/google/uuid"
)

type Item struct {
	ID             uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	FridgeID       uuid.UUID  `json:"fridge_id"`
	Name           string     `json:"name"`
	Quantity       float64    `json:"quantity"`
	Unit           *string    `json:"unit,omitempty"`
	ExpirationDate *time.Time `gorm:"type:date" json:"expiration_date,omitempty"`
	Notes          *string    `json:"notes,omitempty"`
	// Serialized nutritional profile. Empty string means no profile; a
	// populated value is always a complete JSON object.
	NutritionalInfo string `gorm:"type:text" json:"-"`
	ImageURL        string `json:"image_url,omitempty"`

	Fridge *Fridge `gorm:"foreignKey:FridgeID"`
	Timestamp
}
