package handler

import (
	"errors"
	"strconv"

	"eqwip/internal/delivery/http/dto"
	"eqwip/internal/delivery/http/middleware"
	"eqwip/internal/pkg/response"
	"eqwip/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobRecommendationHandler struct {
	uc usecase.JobRecommendationUsecase
}

func NewJobRecommendationHandler(uc usecase.JobRecommendationUsecase) *JobRecommendationHandler {
	return &JobRecommendationHandler{uc: uc}
}

func (h *JobRecommendationHandler) RegisterRoutes(r fiber.Router, mw ...any) {
	if r == nil {
		return
	}
	grp := r.Group("/jobs")
	grp.Get("/recommendations", h.GetRecommendations, mw...)
	grp.Get("/recommendations/personalized", h.GetPersonalizedRecommendations, mw...)
}

func (h *JobRecommendationHandler) GetRecommendations(c fiber.Ctx) error {
	return h.respond(c, false)
}

func (h *JobRecommendationHandler) GetPersonalizedRecommendations(c fiber.Ctx) error {
	return h.respond(c, true)
}

func (h *JobRecommendationHandler) respond(c fiber.Ctx, personalized bool) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	limit := parseQueryInt(c, "limit", 20)

	var (
		items []usecase.JobRecommendationItem
		err   error
	)
	if personalized {
		items, err = h.uc.GetPersonalizedRecommendations(c.Context(), userID, limit)
	} else {
		items, err = h.uc.GetRecommendations(c.Context(), userID, limit)
	}
	if err != nil {
		return mapJobRecommendationUsecaseError(err)
	}

	out := make([]dto.JobRecommendationResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.JobRecommendationResponse{
			JobID:       it.JobID,
			Title:       it.Title,
			CompanyName: it.CompanyName,
			Location:    it.Location,
			Score:       it.Score,
			Reasons:     it.Reasons,
		})
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func parseQueryInt(c fiber.Ctx, key string, defaultVal int) int {
	s := c.Query(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}

func mapJobRecommendationUsecaseError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrUnauthorized):
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
