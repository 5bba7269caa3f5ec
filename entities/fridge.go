package entities

import (
	"github.com/google/uuid"
)

type Fridge struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID uuid.UUID `json:"user_id"`
	Name   string    `json:"name"`

	User  *User   `gorm:"foreignKey:UserID"`
	Items []*Item `gorm:"foreignKey:FridgeID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	Timestamp
}
