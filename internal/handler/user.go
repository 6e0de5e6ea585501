package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/GabrielPedrotti/irecipes/internal/middleware"
	"github.com/GabrielPedrotti/irecipes/internal/service"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// GetByUserID handles GET /api/users/:userId
func (h *UserHandler) GetByUserID(c fiber.Ctx) error {
	userID, errMsg := middleware.ValidateID(c.Params("userId"), "userId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	user, err := h.svc.Lookup(c.Context(), userID)
	if err != nil {
		return respondError(c, err, "Failed to lookup user")
	}
	return c.JSON(user)
}
