package entities

import (
	"github.com/google/uuid"
)

type Recipe struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	Title      string    `json:"title"`
	Time       string    `json:"time"`
	Difficulty string    `json:"difficulty"` // "Easy", "Medium", "Hard"
	// JSON arrays of strings, serialized by the recipe service.
	Instructions        string `gorm:"type:text" json:"instructions"`
	MatchingIngredients string `gorm:"type:text" json:"matching_ingredients"`
	MissingIngredients  string `gorm:"type:text" json:"missing_ingredients"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
