package handlers

import (
	"errors"

	"fridgepal/domain"
	"fridgepal/internal/api/presenters"
	"fridgepal/pkg/goal"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	GoalHandler interface {
		GetAdvice(c *fiber.Ctx) error
	}

	goalHandler struct {
		goalService goal.GoalService
		validator   *validator.Validate
	}
)

func NewGoalHandler(goalService goal.GoalService, validator *validator.Validate) GoalHandler {
	return &goalHandler{
		goalService: goalService,
		validator:   validator,
	}
}

func (h *goalHandler) GetAdvice(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.GoalAdviceRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGoalAdvice, err)
	}

	res, err := h.goalService.GetAdvice(c.Context(), *req, userID)
	if err != nil {
		if errors.Is(err, domain.ErrAdviceFailed) {
			return presenters.ErrorResponse(c, fiber.StatusInternalServerError, domain.MessageFailedGoalAdvice, err)
		}
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedGoalAdvice, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGoalAdvice)
}
