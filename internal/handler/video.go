package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/GabrielPedrotti/irecipes/internal/middleware"
	"github.com/GabrielPedrotti/irecipes/internal/model"
	"github.com/GabrielPedrotti/irecipes/internal/service"
)

const defaultVideosPerPage = 10

type VideoHandler struct {
	svc *service.VideoService
}

func NewVideoHandler(svc *service.VideoService) *VideoHandler {
	return &VideoHandler{svc: svc}
}

// Post handles POST /api/videos
func (h *VideoHandler) Post(c fiber.Ctx) error {
	var req model.PostVideoRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}

	userID, errMsg := middleware.ValidateID(req.UserID, "userId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.UserID = userID

	tags, errMsg := middleware.ValidateTags(req.Tags)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.Tags = tags

	video, err := h.svc.Post(c.Context(), req)
	if err != nil {
		return respondError(c, err, "Failed to post video")
	}
	return c.Status(fiber.StatusCreated).JSON(video)
}

// List handles GET /api/videos?page=&videosPerPage=
func (h *VideoHandler) List(c fiber.Ctx) error {
	page, perPage, errMsg := middleware.ValidatePagination(
		fiber.Query[string](c, "page"), fiber.Query[string](c, "videosPerPage"), defaultVideosPerPage)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	resp, err := h.svc.Recent(c.Context(), page, perPage)
	if err != nil {
		return respondError(c, err, "Failed to list videos")
	}
	return c.JSON(resp)
}

// Get handles GET /api/videos/:videoId
func (h *VideoHandler) Get(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateID(c.Params("videoId"), "videoId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	video, err := h.svc.Get(c.Context(), videoID)
	if err != nil {
		return respondError(c, err, "Failed to lookup video")
	}
	return c.JSON(fiber.Map{"video": video})
}

// ByOwner handles GET /api/users/:userId/videos
func (h *VideoHandler) ByOwner(c fiber.Ctx) error {
	userID, errMsg := middleware.ValidateID(c.Params("userId"), "userId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	videos, err := h.svc.ByOwner(c.Context(), userID)
	if err != nil {
		return respondError(c, err, "Failed to list user videos")
	}
	return c.JSON(fiber.Map{"videos": videos})
}

// Like handles POST /api/videos/:videoId/likes
func (h *VideoHandler) Like(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateID(c.Params("videoId"), "videoId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	var req model.LikeRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	userID, errMsg := middleware.ValidateID(req.UserID, "userId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if err := h.svc.Like(c.Context(), videoID, userID); err != nil {
		return respondError(c, err, "Failed to like video")
	}
	return c.JSON(fiber.Map{"success": true})
}

// Unlike handles DELETE /api/videos/:videoId/likes/:userId
func (h *VideoHandler) Unlike(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateID(c.Params("videoId"), "videoId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	userID, errMsg := middleware.ValidateID(c.Params("userId"), "userId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	if err := h.svc.Unlike(c.Context(), videoID, userID); err != nil {
		return respondError(c, err, "Failed to remove like")
	}
	return c.JSON(fiber.Map{"success": true})
}

// Likes handles GET /api/videos/:videoId/likes
func (h *VideoHandler) Likes(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateID(c.Params("videoId"), "videoId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	likes, err := h.svc.Likes(c.Context(), videoID)
	if err != nil {
		return respondError(c, err, "Failed to list likes")
	}
	return c.JSON(fiber.Map{"likes": likes})
}

// AddComment handles POST /api/videos/:videoId/comments
func (h *VideoHandler) AddComment(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateID(c.Params("videoId"), "videoId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	var req model.CommentRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_BODY", "Invalid request body")
	}
	userID, errMsg := middleware.ValidateID(req.UserID, "userId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}
	req.UserID = userID
	req.Body = middleware.TruncateComment(req.Body)

	comment, err := h.svc.AddComment(c.Context(), videoID, req)
	if err != nil {
		return respondError(c, err, "Failed to post comment")
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

// Comments handles GET /api/videos/:videoId/comments
func (h *VideoHandler) Comments(c fiber.Ctx) error {
	videoID, errMsg := middleware.ValidateID(c.Params("videoId"), "videoId")
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_FIELD", errMsg)
	}

	comments, err := h.svc.Comments(c.Context(), videoID)
	if err != nil {
		return respondError(c, err, "Failed to list comments")
	}
	return c.JSON(fiber.Map{"comments": comments})
}
