package middleware

import (
	"crypto/subtle"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/wirkaufenfair/fairprice/internal/config"
	"github.com/wirkaufenfair/fairprice/internal/dto"
)

// AdminRequired admits requests carrying the configured X-Admin-Token or a
// valid JWT whose role claim is "admin".
func AdminRequired(cfg *config.Config) fiber.Handler {
	var jwtGate fiber.Handler
	if cfg.JWTSecret != "" {
		jwtGate = JWTProtected(cfg, requireAdminRole)
	}

	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" {
			given := c.Get("X-Admin-Token")
			if given != "" && subtle.ConstantTimeCompare([]byte(given), []byte(cfg.AdminToken)) == 1 {
				return c.Next()
			}
		}

		if jwtGate == nil || c.Get(fiber.HeaderAuthorization) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}
		return jwtGate(c)
	}
}

func requireAdminRole(c *fiber.Ctx) error {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid claims",
		})
	}

	if role, _ := claims["role"].(string); role == "admin" {
		return c.Next()
	}
	return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
		Error: true, Message: "Admin access required",
	})
}
