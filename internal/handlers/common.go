// common.go
//
// Shared helpers for the route handlers.

package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/openimagingdata/radelement-api/internal/services"
)

// send writes a service result verbatim: the payload as JSON under the
// status the service decided.
func send(c *fiber.Ctx, result services.Result) error {
	return c.Status(result.Status).JSON(result.Value)
}

// parseIDParam reads a numeric route parameter. Returns false when the
// parameter is not a base-10 unsigned integer.
func parseIDParam(c *fiber.Ctx, name string) (uint64, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

// parseBody unmarshals the request body into payload. On malformed input
// the payload stays nil so the service rejects the request.
func parseBody[T any](c *fiber.Ctx) *T {
	payload := new(T)
	if err := c.BodyParser(payload); err != nil {
		return nil
	}
	return payload
}
