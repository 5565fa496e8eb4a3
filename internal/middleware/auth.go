package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/openimagingdata/radelement-api/internal/config"
	"github.com/openimagingdata/radelement-api/internal/services"
	"github.com/openimagingdata/radelement-api/internal/types"
)

// Auth validates the Authorization bearer token. Mutating routes are mounted
// behind this handler; reads stay open.
func Auth(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: "Authorization bearer token not found",
				Type:    "radelement.authorization",
			}
		}

		claims, err := services.ValidateToken(cfg, token)
		if err != nil {
			return &types.CustomError{
				Code:    fiber.StatusUnauthorized,
				Message: fmt.Sprintf("Invalid token: %v", err),
				Type:    "radelement.authorization",
			}
		}

		if subject, ok := claims["sub"].(string); ok {
			c.Locals("user", subject)
		}

		return c.Next()
	}
}
