package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/relengar/shopping-list-server/internal/handler/middleware"
	"github.com/relengar/shopping-list-server/internal/service"
	"github.com/relengar/shopping-list-server/pkg/validator"
)

type AuthHandler struct {
	auth     *service.AuthService
	validate *validator.Validator
}

func NewAuthHandler(auth *service.AuthService, validate *validator.Validator) *AuthHandler {
	return &AuthHandler{auth: auth, validate: validate}
}

// Login handles POST /user/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	req, err := parseBody[service.LoginRequest](c, h.validate)
	if err != nil {
		return err
	}

	resp, err := h.auth.Login(c.UserContext(), *req)
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

// Logout handles GET /user/logout. It revokes only the presented session and
// is idempotent.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	err := h.auth.Logout(c.UserContext(), middleware.UserID(c), middleware.SessionID(c))
	if err != nil {
		return err
	}

	return c.SendStatus(fiber.StatusOK)
}
