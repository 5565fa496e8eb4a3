// health.go
//
// Route handlers for the service level endpoints.

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/openimagingdata/radelement-api/internal/config"
	"github.com/openimagingdata/radelement-api/internal/services"
	"gorm.io/gorm"
)

// HealthHandler handles the health and index routes
type HealthHandler struct {
	Config *config.Config
	DB     *gorm.DB
}

// Health handles GET /api/health
// @Summary Service health
// @Description Report whether the service can reach its database
// @Tags Health
// @Produce json
// @Success 200 {object} services.HealthCheckResult
// @Failure 503 {object} services.HealthCheckResult
// @Router /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	result := services.HealthCheck(h.Config, h.DB)
	status := fiber.StatusOK
	if result.Status != "healthy" {
		status = fiber.StatusServiceUnavailable
	}
	return c.Status(status).JSON(result)
}

// Index handles GET /api
// @Summary API index
// @Description List the resource collections served under /api
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router / [get]
func (h *HealthHandler) Index(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"set":          "/api/set",
		"element":      "/api/element",
		"person":       "/api/person",
		"organization": "/api/organization",
		"health":       "/api/health",
		"swagger":      "/swagger/index.html",
	})
}
