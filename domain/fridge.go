package domain

import (
	"errors"
)

var (
	MessageSuccessCreateFridge  = "fridge created successfully"
	MessageSuccessGetFridges    = "fridges retrieved successfully"
	MessageSuccessGetFridge     = "fridge retrieved successfully"
	MessageSuccessDeleteFridge  = "fridge deleted successfully"
	MessageSuccessAnalyzeFridge = "fridge analyzed successfully"

	MessageFailedCreateFridge  = "failed to create fridge"
	MessageFailedGetFridges    = "failed to retrieve fridges"
	MessageFailedDeleteFridge  = "failed to delete fridge"
	MessageFailedAnalyzeFridge = "failed to analyze fridge"

	ErrFridgeNotFound = errors.New("fridge not found")
)

type (
	CreateFridgeRequest struct {
		Name string `json:"name" validate:"required"`
	}

	FridgeResponse struct {
		ID     string         `json:"id"`
		UserID string         `json:"user_id"`
		Name   string         `json:"name"`
		Items  []ItemResponse `json:"items"`
	}

	FridgeAnalysisResponse struct {
		Score           int      `json:"score"`
		Analysis        string   `json:"analysis"`
		Recommendations []string `json:"recommendations"`
	}
)
