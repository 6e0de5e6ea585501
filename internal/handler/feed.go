package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/GabrielPedrotti/irecipes/internal/middleware"
	"github.com/GabrielPedrotti/irecipes/internal/model"
	"github.com/GabrielPedrotti/irecipes/internal/service"
)

const defaultFeedPageSize = 20

type FeedHandler struct {
	svc *service.FeedService
}

func NewFeedHandler(svc *service.FeedService) *FeedHandler {
	return &FeedHandler{svc: svc}
}

// Get handles GET /api/recommendations?userId=&postedVideoId=&page=&limit=
// userId is optional: absent means an anonymous, non-personalized feed.
// postedVideoId pins a just-posted video to the first slot.
func (h *FeedHandler) Get(c fiber.Ctx) error {
	req := model.FeedRequest{
		UserID:        fiber.Query[string](c, "userId"),
		PinnedVideoID: fiber.Query[string](c, "postedVideoId"),
	}

	if req.UserID != "" {
		userID, errMsg := middleware.ValidateID(req.UserID, "userId")
		if errMsg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
		}
		req.UserID = userID
	}
	if req.PinnedVideoID != "" {
		videoID, errMsg := middleware.ValidateID(req.PinnedVideoID, "postedVideoId")
		if errMsg != "" {
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
		}
		req.PinnedVideoID = videoID
	}

	page, limit, errMsg := middleware.ValidatePagination(
		fiber.Query[string](c, "page"), fiber.Query[string](c, "limit"), defaultFeedPageSize)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.Page = page
	req.PageSize = limit

	resp, err := h.svc.GetFeed(c.Context(), req)
	if err != nil {
		return respondError(c, err, "Failed to build recommendations")
	}
	return c.JSON(resp)
}
