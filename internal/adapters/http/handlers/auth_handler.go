package handlers

import (
	"time"

	"bankdesk/internal/config"
	"bankdesk/internal/core/services"
	"bankdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// CustomerLoginRequest represents customer login request body
type CustomerLoginRequest struct {
	Mobile   string `json:"mobile"`
	Password string `json:"password"`
}

// EmployeeLoginRequest represents employee login request body
type EmployeeLoginRequest struct {
	EmployeeID uint   `json:"employee_id"`
	Password   string `json:"password"`
}

// CustomerLogin authenticates a customer by mobile number
func (h *AuthHandler) CustomerLogin(c *fiber.Ctx) error {
	var req CustomerLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.Mobile == "" {
		return response.BadRequest(c, "Mobile number is required")
	}
	if req.Password == "" {
		return response.BadRequest(c, "Password is required")
	}

	result, err := h.authService.CustomerLogin(c.Context(), req.Mobile, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	h.setAuthCookie(c, result.Token)

	return response.Success(c, "Login successful", fiber.Map{
		"token":    result.Token,
		"customer": result.Customer,
	})
}

// EmployeeLogin authenticates an employee by id
func (h *AuthHandler) EmployeeLogin(c *fiber.Ctx) error {
	var req EmployeeLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if req.EmployeeID == 0 {
		return response.BadRequest(c, "Employee id is required")
	}
	if req.Password == "" {
		return response.BadRequest(c, "Password is required")
	}

	result, err := h.authService.EmployeeLogin(c.Context(), req.EmployeeID, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	h.setAuthCookie(c, result.Token)

	return response.Success(c, "Login successful", fiber.Map{
		"token":    result.Token,
		"employee": result.Employee,
	})
}

// Logout clears the auth cookie
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   h.cfg.IsProd(),
		SameSite: "Lax",
	})
	return response.Success(c, "Logged out", nil)
}

func (h *AuthHandler) setAuthCookie(c *fiber.Ctx, token string) {
	c.Cookie(&fiber.Cookie{
		Name:     "access_token",
		Value:    token,
		Expires:  time.Now().Add(time.Duration(h.cfg.JWT.AccessTokenMins) * time.Minute),
		HTTPOnly: true,
		Secure:   h.cfg.IsProd(),
		SameSite: "Lax",
	})
}
