package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/relengar/shopping-list-server/internal/apperr"
	"github.com/relengar/shopping-list-server/internal/handler/middleware"
	"github.com/relengar/shopping-list-server/internal/service"
	"github.com/relengar/shopping-list-server/pkg/validator"
)

type UserHandler struct {
	auth     *service.AuthService
	users    *service.UserService
	validate *validator.Validator
}

func NewUserHandler(auth *service.AuthService, users *service.UserService, validate *validator.Validator) *UserHandler {
	return &UserHandler{auth: auth, users: users, validate: validate}
}

// Register handles POST /user. A successful registration logs the user in.
func (h *UserHandler) Register(c *fiber.Ctx) error {
	req, err := parseBody[service.RegisterRequest](c, h.validate)
	if err != nil {
		return err
	}

	resp, err := h.auth.Register(c.UserContext(), *req)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Current handles GET /user/current
func (h *UserHandler) Current(c *fiber.Ctx) error {
	user, err := h.users.Current(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return err
	}

	return c.JSON(user)
}

// Delete handles DELETE /user. It deletes the authenticated account and
// revokes all of its sessions.
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.auth.DeleteAccount(c.UserContext(), middleware.UserID(c)); err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// Search handles GET /user
func (h *UserHandler) Search(c *fiber.Ctx) error {
	req := service.SearchRequest{
		Username:      c.Query("username"),
		ExcludeShared: c.QueryBool("excludeShared"),
		Pagination:    pagination(c),
	}

	if raw := c.Query("forListId"); raw != "" {
		listID, err := uuid.Parse(raw)
		if err != nil {
			return apperr.BadRequest("Invalid forListId")
		}
		req.ForListID = &listID
	}

	resp, err := h.users.Search(c.UserContext(), middleware.UserID(c), req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}
