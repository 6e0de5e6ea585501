package handler

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/GabrielPedrotti/irecipes/internal/apperr"
	"github.com/GabrielPedrotti/irecipes/internal/middleware"
)

// respondError maps the error taxonomy onto HTTP statuses. Invalid
// arguments echo their message; storage details never leave the server.
func respondError(c fiber.Ctx, err error, fallback string) error {
	switch {
	case errors.Is(err, apperr.ErrInvalidArgument):
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "INVALID_ARGUMENT", clientMessage(err))
	case errors.Is(err, apperr.ErrNotFound):
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "NOT_FOUND", clientMessage(err))
	default:
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "STORAGE_ERROR", fallback)
	}
}

// clientMessage strips the sentinel prefix, leaving the human part.
func clientMessage(err error) string {
	msg := err.Error()
	for _, sentinel := range []string{apperr.ErrInvalidArgument.Error(), apperr.ErrNotFound.Error()} {
		msg = strings.TrimPrefix(msg, sentinel+": ")
	}
	return msg
}
