package domain

import (
	"encoding/json"
)

// Nutrition is the structured nutritional profile attached to inventory
// items and returned by label scans. A profile is always either complete
// or absent; partially populated profiles are never persisted.
type Nutrition struct {
	Calories int      `json:"calories"`
	Protein  float64  `json:"protein"`
	Carbs    float64  `json:"carbs"`
	Fat      float64  `json:"fat"`
	Sugar    float64  `json:"sugar,omitempty"`
	Vitamins []string `json:"vitamins,omitempty"`
}

// ToJSON serializes the profile for the text column on the item entity.
func (n *Nutrition) ToJSON() string {
	if n == nil {
		return ""
	}
	raw, err := json.Marshal(n)
	if err != nil {
		return ""
	}
	return string(raw)
}

// NutritionFromJSON decodes a stored profile. Empty or malformed input
// yields nil so callers never see a partial profile.
func NutritionFromJSON(raw string) *Nutrition {
	if raw == "" {
		return nil
	}
	var n Nutrition
	if err := json.Unmarshal([]byte(raw), &n); err != nil {
		return nil
	}
	return &n
}
