package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// Version parses the X-Api-Version request header, stores it in context and
// echoes the resolved version on the response.
func Version() fiber.Handler {
	return func(c *fiber.Ctx) error {
		version := c.Get("X-Api-Version", "1.0.0")
		if version == "1.0" || version == "1" {
			version = "1.0.0"
		}

		c.Locals("apiVersion", version)
		c.Set("X-Api-Version", version)

		return c.Next()
	}
}
