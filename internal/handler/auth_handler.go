package handler

import (
	"microsite-shop/internal/middleware"
	"microsite-shop/internal/model"
	"microsite-shop/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type legacyLoginRequest struct {
	Password string `json:"password"`
}

// Register creates a customer account
// POST /api/auth/register
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req service.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	resp, err := h.authService.Register(&req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login handles user authentication
// POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req service.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	resp, err := h.authService.Login(&req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// LegacyLogin exchanges the shared admin password for the fixed admin token
// POST /api/login
func (h *AuthHandler) LegacyLogin(c *fiber.Ctx) error {
	var req legacyLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return invalidJSON(c)
	}
	resp, err := h.authService.LegacyLogin(req.Password)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}

// Me returns the caller's profile
// GET /api/auth/me
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	cred := middleware.CredentialFrom(c)
	if cred.Kind == middleware.CredentialLegacyAdmin {
		return c.JSON(model.UserResponse{Email: "admin", Name: "Administrator", Role: model.RoleAdmin})
	}

	user, err := h.authService.Profile(cred.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}
