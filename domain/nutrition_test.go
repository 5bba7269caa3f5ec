package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNutritionJSONRoundTrip(t *testing.T) {
	profile := &Nutrition{
		Calories: 150,
		Protein:  8,
		Carbs:    12,
		Fat:      8,
		Sugar:    12,
		Vitamins: []string{"D", "B12"},
	}

	decoded := NutritionFromJSON(profile.ToJSON())
	require.NotNil(t, decoded)
	assert.Equal(t, profile, decoded)
}

func TestNutritionNilToJSON(t *testing.T) {
	var profile *Nutrition
	assert.Equal(t, "", profile.ToJSON())
}

func TestNutritionFromJSONEmptyAndMalformed(t *testing.T) {
	assert.Nil(t, NutritionFromJSON(""))
	assert.Nil(t, NutritionFromJSON("not json"))
}
