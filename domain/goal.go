package domain

type (
	GoalAdviceRequest struct {
		Goal string `json:"goal" validate:"required"`
	}

	// GoalAdviceResponse is transient: produced per request from the
	// current inventory and never persisted.
	GoalAdviceResponse struct {
		Score        int      `json:"score"`
		Assessment   string   `json:"assessment"`
		EatList      []string `json:"eat_list"`
		AvoidList    []string `json:"avoid_list"`
		ShoppingList []string `json:"shopping_list"`
	}
)
