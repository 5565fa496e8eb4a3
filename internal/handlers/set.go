// set.go
//
// Route handlers for the element set endpoints.

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/openimagingdata/radelement-api/internal/dto"
	"github.com/openimagingdata/radelement-api/internal/services"
)

// SetHandler handles the element set routes
type SetHandler struct {
	Service *services.SetService
}

// GetSets handles GET /api/set
// @Summary List element sets
// @Description Get every element set with index codes, persons and organizations
// @Tags Set
// @Produce json
// @Success 200 {array} dto.ElementSetDetails
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /set [get]
func (h *SetHandler) GetSets(c *fiber.Ctx) error {
	return send(c, h.Service.GetSets())
}

// GetSet handles GET /api/set/:setId
// @Summary Get an element set
// @Description Get one element set by its public id, e.g. RDES3
// @Tags Set
// @Produce json
// @Param setId path string true "Set ID"
// @Success 200 {object} dto.ElementSetDetails
// @Failure 404 {object} string
// @Router /set/{setId} [get]
func (h *SetHandler) GetSet(c *fiber.Ctx) error {
	return send(c, h.Service.GetSet(c.Params("setId")))
}

// SearchSets handles GET /api/set/search
// @Summary Search element sets
// @Description Search element sets by keyword against the set name
// @Tags Set
// @Produce json
// @Param keyword query string true "Search keyword, minimum 3 characters"
// @Success 200 {array} dto.ElementSetDetails
// @Failure 400 {object} string
// @Failure 404 {object} string
// @Router /set/search [get]
func (h *SetHandler) SearchSets(c *fiber.Ctx) error {
	return send(c, h.Service.SearchSets(c.Query("keyword")))
}

// CreateSet handles POST /api/set
// @Summary Create an element set
// @Description Create an element set with its initial references
// @Tags Set
// @Accept json
// @Produce json
// @Param payload body dto.CreateUpdateSet true "Set fields"
// @Success 201 {object} dto.SetIDDetails
// @Failure 400 {object} string
// @Security BearerAuth
// @Router /set [post]
func (h *SetHandler) CreateSet(c *fiber.Ctx) error {
	payload := parseBody[dto.CreateUpdateSet](c)
	return send(c, h.Service.CreateSet(payload))
}

// UpdateSet handles PUT /api/set/:setId
// @Summary Update an element set
// @Description Rewrite an element set and replace its references
// @Tags Set
// @Accept json
// @Produce json
// @Param setId path string true "Set ID"
// @Param payload body dto.CreateUpdateSet true "Set fields"
// @Success 200 {object} string
// @Failure 400 {object} string
// @Failure 404 {object} string
// @Security BearerAuth
// @Router /set/{setId} [put]
func (h *SetHandler) UpdateSet(c *fiber.Ctx) error {
	payload := parseBody[dto.CreateUpdateSet](c)
	return send(c, h.Service.UpdateSet(c.Params("setId"), payload))
}

// DeleteSet handles DELETE /api/set/:setId
// @Summary Delete an element set
// @Description Delete an element set and its references, keeping the elements
// @Tags Set
// @Produce json
// @Param setId path string true "Set ID"
// @Success 200 {object} string
// @Failure 404 {object} string
// @Security BearerAuth
// @Router /set/{setId} [delete]
func (h *SetHandler) DeleteSet(c *fiber.Ctx) error {
	return send(c, h.Service.DeleteSet(c.Params("setId")))
}
