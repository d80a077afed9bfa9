package middleware

import (
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/wirkaufenfair/fairprice/internal/config"
	"github.com/wirkaufenfair/fairprice/internal/dto"
)

// JWTProtected validates an HS256 bearer token and stores it in
// c.Locals("user"). then runs after successful validation.
func JWTProtected(cfg *config.Config, then fiber.Handler) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:     jwtware.SigningKey{JWTAlg: jwtware.HS256, Key: []byte(cfg.JWTSecret)},
		SuccessHandler: then,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Unauthorized: invalid or expired token",
			})
		},
	})
}
