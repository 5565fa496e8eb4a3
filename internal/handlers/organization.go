// organization.go
//
// Route handlers for the organization endpoints.

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/openimagingdata/radelement-api/internal/dto"
	"github.com/openimagingdata/radelement-api/internal/services"
)

// OrganizationHandler handles the organization routes
type OrganizationHandler struct {
	Service *services.OrganizationService
}

// GetOrganizations handles GET /api/organization
// @Summary List organizations
// @Tags Organization
// @Produce json
// @Success 200 {array} dto.OrganizationDetails
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /organization [get]
func (h *OrganizationHandler) GetOrganizations(c *fiber.Ctx) error {
	return send(c, h.Service.GetOrganizations())
}

// GetOrganization handles GET /api/organization/:organizationId
// @Summary Get an organization
// @Tags Organization
// @Produce json
// @Param organizationId path int true "Organization ID"
// @Success 200 {object} dto.OrganizationDetails
// @Failure 404 {object} string
// @Router /organization/{organizationId} [get]
func (h *OrganizationHandler) GetOrganization(c *fiber.Ctx) error {
	id, _ := parseIDParam(c, "organizationId")
	return send(c, h.Service.GetOrganization(id))
}

// SearchOrganizations handles GET /api/organization/search
// @Summary Search organizations
// @Description Search organizations by keyword against the name
// @Tags Organization
// @Produce json
// @Param keyword query string true "Search keyword, minimum 3 characters"
// @Success 200 {array} dto.OrganizationDetails
// @Failure 400 {object} string
// @Failure 404 {object} string
// @Router /organization/search [get]
func (h *OrganizationHandler) SearchOrganizations(c *fiber.Ctx) error {
	return send(c, h.Service.SearchOrganizations(c.Query("keyword")))
}

// CreateOrganization handles POST /api/organization
// @Summary Create an organization
// @Description Create an organization, optionally linking it to a set or element
// @Tags Organization
// @Accept json
// @Produce json
// @Param payload body dto.CreateUpdateOrganization true "Organization fields"
// @Success 201 {object} dto.OrganizationIDDetails
// @Failure 400 {object} string
// @Failure 404 {object} string
// @Security BearerAuth
// @Router /organization [post]
func (h *OrganizationHandler) CreateOrganization(c *fiber.Ctx) error {
	payload := parseBody[dto.CreateUpdateOrganization](c)
	return send(c, h.Service.CreateOrganization(payload))
}

// UpdateOrganization handles PUT /api/organization/:organizationId
// @Summary Update an organization
// @Tags Organization
// @Accept json
// @Produce json
// @Param organizationId path int true "Organization ID"
// @Param payload body dto.CreateUpdateOrganization true "Organization fields"
// @Success 200 {object} string
// @Failure 400 {object} string
// @Failure 404 {object} string
// @Security BearerAuth
// @Router /organization/{organizationId} [put]
func (h *OrganizationHandler) UpdateOrganization(c *fiber.Ctx) error {
	id, _ := parseIDParam(c, "organizationId")
	payload := parseBody[dto.CreateUpdateOrganization](c)
	return send(c, h.Service.UpdateOrganization(id, payload))
}

// DeleteOrganization handles DELETE /api/organization/:organizationId
// @Summary Delete an organization
// @Description Delete an organization and its element and set links
// @Tags Organization
// @Produce json
// @Param organizationId path int true "Organization ID"
// @Success 200 {object} string
// @Failure 404 {object} string
// @Security BearerAuth
// @Router /organization/{organizationId} [delete]
func (h *OrganizationHandler) DeleteOrganization(c *fiber.Ctx) error {
	id, _ := parseIDParam(c, "organizationId")
	return send(c, h.Service.DeleteOrganization(id))
}
