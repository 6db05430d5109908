package handler

import (
	"errors"

	"eqwip/internal/delivery/http/dto"
	"eqwip/internal/delivery/http/middleware"
	"eqwip/internal/pkg/response"
	"eqwip/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type CandidateRecommendationHandler struct {
	uc usecase.CandidateRecommendationUsecase
}

func NewCandidateRecommendationHandler(uc usecase.CandidateRecommendationUsecase) *CandidateRecommendationHandler {
	return &CandidateRecommendationHandler{uc: uc}
}

func (h *CandidateRecommendationHandler) RegisterRoutes(r fiber.Router, mw ...any) {
	if r == nil {
		return
	}
	grp := r.Group("/jobs")
	grp.Get("/:id/candidate-recommendations", h.GetCandidateRecommendations, mw...)
}

func (h *CandidateRecommendationHandler) GetCandidateRecommendations(c fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	limit := parseQueryInt(c, "limit", 10)

	items, err := h.uc.GetCandidateRecommendations(c.Context(), jobID, limit)
	if err != nil {
		if errors.Is(err, usecase.ErrJobNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	out := make([]dto.CandidateRecommendationResponse, 0, len(items))
	for _, it := range items {
		out = append(out, dto.CandidateRecommendationResponse{
			CandidateID: it.CandidateID,
			Name:        it.Name,
			Score:       it.Score,
			Reasons:     it.Reasons,
		})
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}
