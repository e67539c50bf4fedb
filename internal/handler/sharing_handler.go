package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/relengar/shopping-list-server/internal/handler/middleware"
	"github.com/relengar/shopping-list-server/internal/service"
	"github.com/relengar/shopping-list-server/pkg/validator"
)

type SharingHandler struct {
	lists    *service.ListService
	validate *validator.Validator
}

func NewSharingHandler(lists *service.ListService, validate *validator.Validator) *SharingHandler {
	return &SharingHandler{lists: lists, validate: validate}
}

// Share handles POST /shopping_list/:id/share
func (h *SharingHandler) Share(c *fiber.Ctx) error {
	listID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	req, err := parseBody[service.ShareRequest](c, h.validate)
	if err != nil {
		return err
	}

	if err := h.lists.Share(c.UserContext(), middleware.UserID(c), listID, *req); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusCreated)
}

// Unshare handles DELETE /shopping_list/:id/share. Removing an absent grant
// is a success.
func (h *SharingHandler) Unshare(c *fiber.Ctx) error {
	listID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	req, err := parseBody[service.ShareRequest](c, h.validate)
	if err != nil {
		return err
	}

	if err := h.lists.Unshare(c.UserContext(), middleware.UserID(c), listID, *req); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Sharing handles GET /shopping_list/:id/share
func (h *SharingHandler) Sharing(c *fiber.Ctx) error {
	listID, err := paramUUID(c, "id")
	if err != nil {
		return err
	}

	grants, err := h.lists.Sharing(c.UserContext(), middleware.UserID(c), listID)
	if err != nil {
		return err
	}

	return c.JSON(grants)
}
