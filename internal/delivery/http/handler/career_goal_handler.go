package handler

import (
	"errors"

	"eqwip/internal/delivery/http/dto"
	"eqwip/internal/delivery/http/middleware"
	"eqwip/internal/pkg/response"
	"eqwip/internal/pkg/validate"
	"eqwip/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type CareerGoalHandler struct {
	uc usecase.CareerGoalUsecase
}

func NewCareerGoalHandler(uc usecase.CareerGoalUsecase) *CareerGoalHandler {
	return &CareerGoalHandler{uc: uc}
}

func (h *CareerGoalHandler) RegisterRoutes(r fiber.Router, mw ...any) {
	if r == nil {
		return
	}
	grp := r.Group("/career")
	grp.Get("/goals", h.ListGoals, mw...)
	grp.Put("/goals", h.SaveGoals, mw...)
}

func (h *CareerGoalHandler) ListGoals(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	goals, err := h.uc.ListGoals(c.Context(), userID)
	if err != nil {
		return mapCareerGoalUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, goals)
}

func (h *CareerGoalHandler) SaveGoals(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req dto.SaveCareerGoalsRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}
	if err := validate.Struct(req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Bad request", nil, err)
	}

	goals, err := h.uc.SaveGoals(c.Context(), userID, req.ToDomain())
	if err != nil {
		return mapCareerGoalUsecaseError(err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, goals)
}

func mapCareerGoalUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	case errors.Is(err, usecase.ErrCandidateProfileNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Candidate profile not found", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
