package middleware

import (
	"strings"

	"bankdesk/internal/config"
	"bankdesk/internal/pkg/jwt"
	"bankdesk/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware creates authentication middleware
func AuthMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var accessToken string

		// 1. Try to get token from cookie first
		accessToken = c.Cookies("access_token")

		// 2. If not in cookie, try Authorization header
		if accessToken == "" {
			authHeader := c.Get("Authorization")
			if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
				accessToken = strings.TrimPrefix(authHeader, "Bearer ")
			}
		}

		// 3. No token found
		if accessToken == "" {
			return response.Unauthorized(c, "Access token required")
		}

		// 4. Validate token
		claims, err := jwt.ValidateAccessToken(accessToken, cfg.JWT.Secret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Access token expired")
			}
			return response.Unauthorized(c, "Invalid access token")
		}

		// 5. Set user info in context
		c.Locals("userID", claims.UserID)
		c.Locals("userType", claims.UserType)
		c.Locals("name", claims.Name)
		c.Locals("branchID", claims.BranchID)

		return c.Next()
	}
}

// UserTypeMiddleware creates user-type authorization middleware
func UserTypeMiddleware(allowedTypes ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		userType, ok := c.Locals("userType").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowed := range allowedTypes {
			if userType == allowed {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// CustomerOnly middleware allows only customer tokens
func CustomerOnly() fiber.Handler {
	return UserTypeMiddleware(jwt.UserTypeCustomer)
}

// EmployeeOnly middleware allows only employee tokens
func EmployeeOnly() fiber.Handler {
	return UserTypeMiddleware(jwt.UserTypeEmployee)
}

// UserID returns the authenticated user's id from the request context
func UserID(c *fiber.Ctx) uint {
	id, _ := c.Locals("userID").(uint)
	return id
}

// UserType returns the authenticated user's type
func UserType(c *fiber.Ctx) string {
	t, _ := c.Locals("userType").(string)
	return t
}

// BranchID returns the authenticated employee's branch id
func BranchID(c *fiber.Ctx) uint {
	id, _ := c.Locals("branchID").(uint)
	return id
}
