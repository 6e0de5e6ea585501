package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/GabrielPedrotti/irecipes/internal/middleware"
	"github.com/GabrielPedrotti/irecipes/internal/model"
	"github.com/GabrielPedrotti/irecipes/internal/service"
)

type InteractionHandler struct {
	svc *service.InteractionService
}

func NewInteractionHandler(svc *service.InteractionService) *InteractionHandler {
	return &InteractionHandler{svc: svc}
}

// Record handles POST /api/interactions
func (h *InteractionHandler) Record(c fiber.Ctx) error {
	var req model.InteractionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	userID, errMsg := middleware.ValidateID(req.UserID, "userId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.UserID = userID

	videoID, errMsg := middleware.ValidateID(req.VideoID, "videoId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.VideoID = videoID

	if err := h.svc.Record(c.Context(), req); err != nil {
		return respondError(c, err, "Failed to record interaction")
	}

	return c.JSON(fiber.Map{"status": "recorded"})
}

// List handles GET /api/interactions?userId=X
func (h *InteractionHandler) List(c fiber.Ctx) error {
	userID, errMsg := middleware.ValidateID(fiber.Query[string](c, "userId"), "userId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	interactions, err := h.svc.List(c.Context(), userID)
	if err != nil {
		return respondError(c, err, "Failed to list interactions")
	}
	if interactions == nil {
		interactions = []model.Interaction{}
	}
	return c.JSON(fiber.Map{"interactions": interactions})
}
