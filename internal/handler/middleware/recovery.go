package middleware

import (
	"runtime/debug"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

// Recovery turns a handler panic into a 500 response instead of tearing
// down the connection.
func Recovery(logger zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		defer func() {
			if r := recover(); r != nil {
				logger.Error().
					Interface("panic", r).
					Bytes("stack", debug.Stack()).
					Msg("recovered from panic")

				_ = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"message": "Internal server error",
					"code":    "500",
				})
			}
		}()

		return c.Next()
	}
}
