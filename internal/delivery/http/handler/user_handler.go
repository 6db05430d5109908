package handler

import (
	"errors"

	"eqwip/internal/delivery/http/dto"
	"eqwip/internal/delivery/http/middleware"
	"eqwip/internal/pkg/response"
	useruc "eqwip/internal/usecase/user"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type UserHandler struct {
	uc *useruc.Service
}

func NewUserHandler(uc *useruc.Service) *UserHandler {
	return &UserHandler{uc: uc}
}

func (h *UserHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}

	r.Get("/me", h.GetMe)
}

func (h *UserHandler) GetMe(c fiber.Ctx) error {
	userID, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	usr, err := h.uc.GetMe(c.Context(), userID)
	if err != nil {
		// A valid token whose account is gone is an auth failure, not a
		// server fault.
		if errors.Is(err, useruc.ErrUserNotFound) {
			return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	res := dto.UserResponse{
		ID:        usr.ID,
		Email:     usr.Email,
		Name:      usr.Name,
		Role:      string(usr.Role),
		CreatedAt: usr.CreatedAt,
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, res)
}
