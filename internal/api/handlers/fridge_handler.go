package handlers

import (
	"errors"

	"fridgepal/domain"
	"fridgepal/internal/api/presenters"
	"fridgepal/pkg/fridge"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	FridgeHandler interface {
		CreateFridge(c *fiber.Ctx) error
		GetFridges(c *fiber.Ctx) error
		GetFridge(c *fiber.Ctx) error
		DeleteFridge(c *fiber.Ctx) error
		AnalyzeFridge(c *fiber.Ctx) error
	}

	fridgeHandler struct {
		fridgeService fridge.FridgeService
		validator     *validator.Validate
	}
)

func NewFridgeHandler(fridgeService fridge.FridgeService, validator *validator.Validate) FridgeHandler {
	return &fridgeHandler{
		fridgeService: fridgeService,
		validator:     validator,
	}
}

func (h *fridgeHandler) CreateFridge(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.CreateFridgeRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateFridge, err)
	}

	res, err := h.fridgeService.CreateFridge(c.Context(), *req, userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedCreateFridge, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusCreated, domain.MessageSuccessCreateFridge)
}

func (h *fridgeHandler) GetFridges(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.fridgeService.GetFridges(c.Context(), userID)
	if err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetFridges, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetFridges)
}

func (h *fridgeHandler) GetFridge(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	fridgeID := c.Params("id")

	res, err := h.fridgeService.GetFridgeByID(c.Context(), fridgeID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrFridgeNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedGetFridges, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGetFridges, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetFridge)
}

func (h *fridgeHandler) DeleteFridge(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	fridgeID := c.Params("id")

	res, err := h.fridgeService.DeleteFridge(c.Context(), fridgeID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrFridgeNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedDeleteFridge, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedDeleteFridge, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessDeleteFridge)
}

func (h *fridgeHandler) AnalyzeFridge(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	fridgeID := c.Params("id")

	res, err := h.fridgeService.AnalyzeFridge(c.Context(), fridgeID, userID)
	if err != nil {
		if errors.Is(err, domain.ErrFridgeNotFound) {
			return presenters.ErrorResponse(c, fiber.StatusNotFound, domain.MessageFailedAnalyzeFridge, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedAnalyzeFridge, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessAnalyzeFridge)
}
