package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/relengar/shopping-list-server/internal/apperr"
	"github.com/relengar/shopping-list-server/internal/domain"
	"github.com/relengar/shopping-list-server/internal/handler/middleware"
	"github.com/relengar/shopping-list-server/internal/service"
	"github.com/relengar/shopping-list-server/pkg/validator"
)

type ItemHandler struct {
	items    *service.ItemService
	validate *validator.Validator
}

func NewItemHandler(items *service.ItemService, validate *validator.Validator) *ItemHandler {
	return &ItemHandler{items: items, validate: validate}
}

// List handles GET /shopping_list/:id/item
func (h *ItemHandler) List(c *fiber.Ctx) error {
	listID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	items, err := h.items.Items(c.UserContext(), middleware.UserID(c), listID, pagination(c))
	if err != nil {
		return err
	}

	return c.JSON(items)
}

// Create handles POST /shopping_list/:id/item with a batch of items. Partial
// failures are reported per item, not as a failed request.
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	listID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	var inputs []service.ItemInput
	if err := c.BodyParser(&inputs); err != nil {
		return apperr.BadRequest("Invalid input")
	}
	for i := range inputs {
		if err := h.validate.Validate(&inputs[i]); err != nil {
			return apperr.BadRequest(err.Error())
		}
	}

	result, err := h.items.CreateBatch(c.UserContext(), middleware.UserID(c), listID, inputs)
	if err != nil {
		return err
	}

	return c.JSON(result)
}

// Update handles PATCH /shopping_list/:id/item/:itemId
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	listID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	itemID, err := paramUUID(c, "itemId")
	if err != nil {
		return err
	}

	update, err := parseBody[domain.ItemUpdate](c, h.validate)
	if err != nil {
		return err
	}

	item, err := h.items.Update(c.UserContext(), middleware.UserID(c), listID, itemID, update)
	if err != nil {
		return err
	}

	return c.JSON(item)
}

// Delete handles DELETE /shopping_list/:id/item/:itemId
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	listID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}
	itemID, err := paramUUID(c, "itemId")
	if err != nil {
		return err
	}

	if err := h.items.Delete(c.UserContext(), middleware.UserID(c), listID, itemID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
