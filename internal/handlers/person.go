// person.go
//
// Route handlers for the person endpoints.

package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/openimagingdata/radelement-api/internal/dto"
	"github.com/openimagingdata/radelement-api/internal/services"
)

// PersonHandler handles the person routes
type PersonHandler struct {
	Service *services.PersonService
}

// GetPersons handles GET /api/person
// @Summary List persons
// @Tags Person
// @Produce json
// @Success 200 {array} dto.PersonDetails
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /person [get]
func (h *PersonHandler) GetPersons(c *fiber.Ctx) error {
	return send(c, h.Service.GetPersons())
}

// GetPerson handles GET /api/person/:personId
// @Summary Get a person
// @Tags Person
// @Produce json
// @Param personId path int true "Person ID"
// @Success 200 {object} dto.PersonDetails
// @Failure 404 {object} string
// @Router /person/{personId} [get]
func (h *PersonHandler) GetPerson(c *fiber.Ctx) error {
	id, ok := parseIDParam(c, "personId")
	if !ok {
		return send(c, h.Service.GetPerson(0))
	}
	return send(c, h.Service.GetPerson(id))
}

// SearchPersons handles GET /api/person/search
// @Summary Search persons
// @Description Search persons by keyword against the name
// @Tags Person
// @Produce json
// @Param keyword query string true "Search keyword, minimum 3 characters"
// @Success 200 {array} dto.PersonDetails
// @Failure 400 {object} string
// @Failure 404 {object} string
// @Router /person/search [get]
func (h *PersonHandler) SearchPersons(c *fiber.Ctx) error {
	return send(c, h.Service.SearchPersons(c.Query("keyword")))
}

// CreatePerson handles POST /api/person
// @Summary Create a person
// @Description Create a person, optionally linking them to a set or element
// @Tags Person
// @Accept json
// @Produce json
// @Param payload body dto.CreateUpdatePerson true "Person fields"
// @Success 201 {object} dto.PersonIDDetails
// @Failure 400 {object} string
// @Failure 404 {object} string
// @Security BearerAuth
// @Router /person [post]
func (h *PersonHandler) CreatePerson(c *fiber.Ctx) error {
	payload := parseBody[dto.CreateUpdatePerson](c)
	return send(c, h.Service.CreatePerson(payload))
}

// UpdatePerson handles PUT /api/person/:personId
// @Summary Update a person
// @Tags Person
// @Accept json
// @Produce json
// @Param personId path int true "Person ID"
// @Param payload body dto.CreateUpdatePerson true "Person fields"
// @Success 200 {object} string
// @Failure 400 {object} string
// @Failure 404 {object} string
// @Security BearerAuth
// @Router /person/{personId} [put]
func (h *PersonHandler) UpdatePerson(c *fiber.Ctx) error {
	id, _ := parseIDParam(c, "personId")
	payload := parseBody[dto.CreateUpdatePerson](c)
	return send(c, h.Service.UpdatePerson(id, payload))
}

// DeletePerson handles DELETE /api/person/:personId
// @Summary Delete a person
// @Description Delete a person and their element and set links
// @Tags Person
// @Produce json
// @Param personId path int true "Person ID"
// @Success 200 {object} string
// @Failure 404 {object} string
// @Security BearerAuth
// @Router /person/{personId} [delete]
func (h *PersonHandler) DeletePerson(c *fiber.Ctx) error {
	id, _ := parseIDParam(c, "personId")
	return send(c, h.Service.DeletePerson(id))
}
