package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/relengar/shopping-list-server/internal/domain"
	"github.com/relengar/shopping-list-server/internal/handler/middleware"
	"github.com/relengar/shopping-list-server/internal/service"
	"github.com/relengar/shopping-list-server/pkg/validator"
)

type ListHandler struct {
	lists    *service.ListService
	validate *validator.Validator
}

func NewListHandler(lists *service.ListService, validate *validator.Validator) *ListHandler {
	return &ListHandler{lists: lists, validate: validate}
}

// List handles GET /shopping_list
func (h *ListHandler) List(c *fiber.Ctx) error {
	resp, err := h.lists.Lists(c.UserContext(), middleware.UserID(c), pagination(c))
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// Create handles POST /shopping_list
func (h *ListHandler) Create(c *fiber.Ctx) error {
	req, err := parseBody[service.CreateListRequest](c, h.validate)
	if err != nil {
		return err
	}

	list, err := h.lists.Create(c.UserContext(), middleware.UserID(c), *req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(list)
}

// Update handles PATCH /shopping_list/:id
func (h *ListHandler) Update(c *fiber.Ctx) error {
	listID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	update, err := parseBody[domain.ShoppingListUpdate](c, h.validate)
	if err != nil {
		return err
	}

	list, err := h.lists.Update(c.UserContext(), middleware.UserID(c), listID, update)
	if err != nil {
		return err
	}

	return c.JSON(list)
}

// Delete handles DELETE /shopping_list/:id
func (h *ListHandler) Delete(c *fiber.Ctx) error {
	listID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	if err := h.lists.Delete(c.UserContext(), middleware.UserID(c), listID); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
