package middleware

import (
	"strings"

	"clinicare-portal/internal/pkg/jwt"
	"clinicare-portal/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware validates JWT access tokens
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		// 1. Get Authorization header
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "Missing authorization header")
		}

		// 2. Check Bearer prefix
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return response.Unauthorized(c, "Invalid authorization header format")
		}

		tokenString := parts[1]

		// 3. Validate token
		claims, err := jwt.ValidateAccessToken(tokenString, jwtSecret)
		if err != nil {
			if err == jwt.ErrTokenExpired {
				return response.Unauthorized(c, "Token expired")
			}
			return response.Unauthorized(c, "Invalid token")
		}

		// 4. Store claims in context for handlers
		c.Locals("userID", claims.UserID)
		c.Locals("email", claims.Email)
		c.Locals("role", claims.Role)

		return c.Next()
	}
}

// RoleMiddleware checks if user has one of the required roles
// Must be used AFTER AuthMiddleware
func RoleMiddleware(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok || role == "" {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowed := range allowedRoles {
			if role == allowed {
				return c.Next()
			}
		}

		return response.Forbidden(c, "Insufficient permissions")
	}
}

// AdminOnly restricts access to admin users
func AdminOnly() fiber.Handler {
	return RoleMiddleware("ADMIN")
}

// StaffOrAdmin restricts access to staff and admin users
func StaffOrAdmin() fiber.Handler {
	return RoleMiddleware("ADMIN", "STAFF")
}

// ClinicalStaff restricts access to doctors, staff and admin users
func ClinicalStaff() fiber.Handler {
	return RoleMiddleware("ADMIN", "STAFF", "DOCTOR")
}

// OptionalAuth validates a token when present but allows anonymous access
func OptionalAuth(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Next()
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return c.Next()
		}

		claims, err := jwt.ValidateAccessToken(parts[1], jwtSecret)
		if err == nil {
			c.Locals("userID", claims.UserID)
			c.Locals("email", claims.Email)
			c.Locals("role", claims.Role)
		}

		return c.Next()
	}
}
