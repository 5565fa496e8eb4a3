// element.go
//
// Route handlers for the element endpoints.

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/openimagingdata/radelement-api/internal/dto"
	"github.com/openimagingdata/radelement-api/internal/services"
)

// ElementHandler handles the element routes
type ElementHandler struct {
	Service *services.ElementService
}

// GetElements handles GET /api/element
// @Summary List elements
// @Description Get every data element with its full details
// @Tags Element
// @Produce json
// @Success 200 {array} dto.ElementDetails
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /element [get]
func (h *ElementHandler) GetElements(c *fiber.Ctx) error {
	return send(c, h.Service.GetElements())
}

// GetElement handles GET /api/element/:elementId
// @Summary Get an element
// @Description Get one data element by its public id, e.g. RDE42
// @Tags Element
// @Produce json
// @Param elementId path string true "Element ID"
// @Success 200 {object} dto.ElementDetails
// @Failure 404 {object} string
// @Router /element/{elementId} [get]
func (h *ElementHandler) GetElement(c *fiber.Ctx) error {
	return send(c, h.Service.GetElement(c.Params("elementId")))
}

// GetElementsBySet handles GET /api/set/:setId/element
// @Summary List the elements of a set
// @Description Get every element referenced by a set, e.g. RDES3
// @Tags Element
// @Produce json
// @Param setId path string true "Set ID"
// @Success 200 {array} dto.ElementDetails
// @Failure 404 {object} string
// @Router /set/{setId}/element [get]
func (h *ElementHandler) GetElementsBySet(c *fiber.Ctx) error {
	return send(c, h.Service.GetElementsBySetID(c.Params("setId")))
}

// SearchElements handles GET /api/element/search
// @Summary Search elements
// @Description Search elements by keyword against public id and name
// @Tags Element
// @Produce json
// @Param keyword query string true "Search keyword, minimum 3 characters"
// @Success 200 {array} dto.ElementDetails
// @Failure 400 {object} string
// @Failure 404 {object} string
// @Router /element/search [get]
func (h *ElementHandler) SearchElements(c *fiber.Ctx) error {
	return send(c, h.Service.SearchElements(c.Query("keyword")))
}

// CreateElement handles POST /api/set/:setId/element
// @Summary Create an element
// @Description Create a new element under a set, or attach an existing one when elementId is given
// @Tags Element
// @Accept json
// @Produce json
// @Param setId path string true "Set ID"
// @Param payload body dto.CreateElement true "Element fields"
// @Success 201 {object} dto.ElementIDDetails
// @Failure 400 {object} string
// @Failure 404 {object} string
// @Security BearerAuth
// @Router /set/{setId}/element [post]
func (h *ElementHandler) CreateElement(c *fiber.Ctx) error {
	payload := parseBody[dto.CreateElement](c)
	return send(c, h.Service.CreateElement(c.Params("setId"), payload))
}

// UpdateElement handles PUT /api/set/:setId/element/:elementId
// @Summary Update an element
// @Description Rewrite an element referenced by the given set
// @Tags Element
// @Accept json
// @Produce json
// @Param setId path string true "Set ID"
// @Param elementId path string true "Element ID"
// @Param payload body dto.UpdateElement true "Element fields"
// @Success 200 {object} string
// @Failure 400 {object} string
// @Failure 404 {object} string
// @Security BearerAuth
// @Router /set/{setId}/element/{elementId} [put]
func (h *ElementHandler) UpdateElement(c *fiber.Ctx) error {
	payload := parseBody[dto.UpdateElement](c)
	return send(c, h.Service.UpdateElement(c.Params("setId"), c.Params("elementId"), payload))
}

// DeleteElement handles DELETE /api/set/:setId/element/:elementId
// @Summary Delete an element
// @Description Delete an element together with its options and references
// @Tags Element
// @Produce json
// @Param setId path string true "Set ID"
// @Param elementId path string true "Element ID"
// @Success 200 {object} string
// @Failure 404 {object} string
// @Security BearerAuth
// @Router /set/{setId}/element/{elementId} [delete]
func (h *ElementHandler) DeleteElement(c *fiber.Ctx) error {
	return send(c, h.Service.DeleteElement(c.Params("setId"), c.Params("elementId")))
}
