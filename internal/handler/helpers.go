package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/relengar/shopping-list-server/internal/apperr"
	"github.com/relengar/shopping-list-server/internal/domain"
	"github.com/relengar/shopping-list-server/pkg/validator"
)

// parseBody decodes and validates a JSON request body.
func parseBody[T any](c *fiber.Ctx, validate *validator.Validator) (*T, error) {
	var body T
	if err := c.BodyParser(&body); err != nil {
		return nil, apperr.BadRequest("Invalid input")
	}
	if err := validate.Validate(&body); err != nil {
		return nil, apperr.BadRequest(err.Error())
	}
	return &body, nil
}

// paramUUID parses a UUID path parameter.
func paramUUID(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, apperr.BadRequest("Invalid " + name)
	}
	return id, nil
}

// pagination reads limit/page query parameters; invalid values fall back to
// defaults rather than failing the request.
func pagination(c *fiber.Ctx) domain.Pagination {
	return domain.Pagination{
		Limit: c.QueryInt("limit"),
		Page:  c.QueryInt("page"),
	}
}
