package handler

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/relengar/shopping-list-server/internal/apperr"
)

// errorBody is the uniform error envelope; nothing else ever reaches a
// client on a failed request.
type errorBody struct {
	Message string `json:"message"`
	Code    string `json:"code"`
}

var kindStatus = map[apperr.Kind]int{
	apperr.KindBadRequest:   fiber.StatusBadRequest,
	apperr.KindInvalidToken: fiber.StatusBadRequest,
	apperr.KindUnauthorized: fiber.StatusUnauthorized,
	apperr.KindForbidden:    fiber.StatusForbidden,
	apperr.KindNotFound:     fiber.StatusNotFound,
	apperr.KindConflict:     fiber.StatusConflict,
	apperr.KindInternal:     fiber.StatusInternalServerError,
}

// ErrorHandler recovers every error kind into the response envelope. It is
// the single place error kinds map to statuses. Internal causes are logged
// with full detail and reduced to a generic message for the client.
func ErrorHandler(logger zerolog.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		message := "Internal server error"

		var appErr *apperr.Error
		var fiberErr *fiber.Error
		switch {
		case errors.As(err, &appErr):
			status = kindStatus[appErr.Kind]
			message = appErr.Message
			if appErr.Kind == apperr.KindInternal {
				logger.Error().Err(appErr.Err).
					Str("method", c.Method()).
					Str("path", c.Path()).
					Msg("internal error")
				message = "Internal server error"
			}
		case errors.As(err, &fiberErr):
			// Routing-level errors raised by fiber itself.
			status = fiberErr.Code
			message = fiberErr.Message
		default:
			logger.Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("unhandled error")
		}

		return c.Status(status).JSON(errorBody{
			Message: message,
			Code:    strconv.Itoa(status),
		})
	}
}
