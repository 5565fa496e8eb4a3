// element.go
//
// Business service for the element related operations.

package services

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/openimagingdata/radelement-api/internal/dto"
	"github.com/openimagingdata/radelement-api/internal/ident"
	"github.com/openimagingdata/radelement-api/internal/models"
	"github.com/openimagingdata/radelement-api/internal/types"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	statusProposed = "Proposed"

	stepInteger = 1.0
	stepNumeric = 0.1
)

// ElementService implements create/update/delete/query logic for elements
// and their typed value metadata.
type ElementService struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// NewElementService returns an ElementService bound to db.
func NewElementService(db *gorm.DB, logger *zap.SugaredLogger) *ElementService {
	return &ElementService{db: db, logger: logger}
}

// GetElements returns every element with its assembled details.
func (s *ElementService) GetElements() Result {
	var elements []models.Element
	if err := s.db.Find(&elements).Error; err != nil {
		s.logger.Errorf("unexpected fault in GetElements: %v", err)
		return resultInternalError(err)
	}

	details, err := s.elementDetailsList(elements)
	if err != nil {
		s.logger.Errorf("unexpected fault in GetElements: %v", err)
		return resultInternalError(err)
	}
	return resultOK(details)
}

// GetElement returns one element by its public id.
func (s *ElementService) GetElement(elementID string) Result {
	id, ok := ident.DecodeElementID(elementID)
	if !ok {
		return resultNotFoundf("No such element with id '%s'.", elementID)
	}

	var element models.Element
	err := s.db.First(&element, id).Error
	if err == gorm.ErrRecordNotFound {
		return resultNotFoundf("No such element with id '%s'.", elementID)
	}
	if err != nil {
		s.logger.Errorf("unexpected fault in GetElement: %v", err)
		return resultInternalError(err)
	}

	details, derr := s.elementDetails(element)
	if derr != nil {
		s.logger.Errorf("unexpected fault in GetElement: %v", derr)
		return resultInternalError(derr)
	}
	return resultOK(details)
}

// GetElementsBySetID returns the elements referenced by one set.
func (s *ElementService) GetElementsBySetID(setID string) Result {
	id, ok := ident.DecodeSetID(setID)
	if !ok {
		return resultNotFoundf("No such elements with set id '%s'.", setID)
	}

	var elements []models.Element
	err := s.db.
		Joins("JOIN element_set_ref ON element_set_ref.element_id = element.id").
		Where("element_set_ref.element_set_id = ?", id).
		Find(&elements).Error
	if err != nil {
		s.logger.Errorf("unexpected fault in GetElementsBySetID: %v", err)
		return resultInternalError(err)
	}
	if len(elements) == 0 {
		return resultNotFoundf("No such elements with set id '%s'.", setID)
	}

	details, derr := s.elementDetailsList(elements)
	if derr != nil {
		s.logger.Errorf("unexpected fault in GetElementsBySetID: %v", derr)
		return resultInternalError(derr)
	}
	return resultOK(details)
}

// SearchElements filters elements by keyword against the public id string or
// the name, case-insensitively. Keywords shorter than 3 characters are
// rejected.
func (s *ElementService) SearchElements(keyword string) Result {
	if keyword == "" {
		return resultBadRequest("Keyword given is invalid.")
	}
	if utf8.RuneCountInString(keyword) < 3 {
		return resultBadRequest("The Keyword field must be a string with a minimum length of '3'.")
	}

	var elements []models.Element
	if err := s.db.Find(&elements).Error; err != nil {
		s.logger.Errorf("unexpected fault in SearchElements: %v", err)
		return resultInternalError(err)
	}

	needle := strings.ToLower(keyword)
	filtered := elements[:0:0]
	for _, element := range elements {
		publicID := strings.ToLower(ident.EncodeElementID(element.ID))
		if strings.Contains(publicID, needle) || strings.Contains(strings.ToLower(element.Name), needle) {
			filtered = append(filtered, element)
		}
	}
	if len(filtered) == 0 {
		return resultNotFoundf("No such element with keyword '%s'.", keyword)
	}

	details, err := s.elementDetailsList(filtered)
	if err != nil {
		s.logger.Errorf("unexpected fault in SearchElements: %v", err)
		return resultInternalError(err)
	}
	return resultOK(details)
}

// CreateElement creates a new element under a set, or, when the payload
// carries an elementId, attaches that existing element to the set. The
// attach path is idempotent but still reports Created.
func (s *ElementService) CreateElement(setID string, payload *dto.CreateElement) Result {
	sid, ok := ident.DecodeSetID(setID)
	if !ok {
		return resultNotFoundf("No such set with set id '%s'.", setID)
	}
	if payload == nil {
		return resultBadRequest("Element fields are invalid.")
	}
	attach := payload.ElementID != ""
	if !attach {
		if payload.Name == "" {
			return resultBadRequest("'Name' field is missing in request.")
		}
		if !payload.ValueType.Valid() {
			return resultBadRequest("'ValueType' field is invalid.")
		}
		if payload.ValueType.IsChoice() && len(payload.Options) == 0 {
			return resultBadRequest("'Options' field is missing for Choice type elements.")
		}
	}

	var publicID string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var set models.ElementSet
		if err := tx.First(&set, sid).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return failNotFoundf("No such set with set id '%s'.", setID)
			}
			return err
		}

		sync := refSync{tx: tx}

		if attach {
			eid, ok := ident.DecodeElementID(payload.ElementID)
			if !ok {
				return failNotFoundf("No such element with element id '%s'.", payload.ElementID)
			}
			var element models.Element
			if err := tx.First(&element, eid).Error; err != nil {
				if err == gorm.ErrRecordNotFound {
					return failNotFoundf("No such element with element id '%s'.", payload.ElementID)
				}
				return err
			}
			var count int64
			if err := tx.Model(&models.ElementSetRef{}).
				Where("element_set_id = ? AND element_id = ?", sid, eid).
				Count(&count).Error; err != nil {
				return err
			}
			if count == 0 {
				if err := sync.AddElementSetRef(sid, eid); err != nil {
					return err
				}
			}
			publicID = ident.EncodeElementID(eid)
			return nil
		}

		element := buildElement(payload)
		if err := tx.Create(&element).Error; err != nil {
			return err
		}

		if payload.ValueType.IsChoice() {
			if err := sync.AddElementValues(element.ID, payload.Options); err != nil {
				return err
			}
		}
		if err := sync.AddElementSetRef(sid, element.ID); err != nil {
			return err
		}
		if err := sync.AddElementPersonRefs(element.ID, payload.Persons); err != nil {
			return err
		}
		if err := sync.AddElementOrganizationRefs(element.ID, payload.Organizations); err != nil {
			return err
		}

		publicID = ident.EncodeElementID(element.ID)
		return nil
	})

	return finish(err, resultCreated(dto.ElementIDDetails{ElementID: publicID}), s.logger.Errorf, "CreateElement")
}

// UpdateElement rewrites an element. The element must be referenced by the
// given set; every scalar field is overwritten and the option, person and
// organization references are replaced wholesale.
func (s *ElementService) UpdateElement(setID, elementID string, payload *dto.UpdateElement) Result {
	sid, okSet := ident.DecodeSetID(setID)
	eid, okElement := ident.DecodeElementID(elementID)
	if !okSet || !okElement {
		return resultNotFoundf("No such element with set id '%s' and element id '%s'.", setID, elementID)
	}
	if payload == nil {
		return resultBadRequest("Element fields are invalid.")
	}
	if !payload.ValueType.Valid() {
		return resultBadRequest("'ValueType' field is invalid.")
	}
	if payload.ValueType.IsChoice() && len(payload.Options) == 0 {
		return resultBadRequest("'Options' field is missing for Choice type elements.")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var ref models.ElementSetRef
		err := tx.Where("element_set_id = ? AND element_id = ?", sid, eid).First(&ref).Error
		if err == gorm.ErrRecordNotFound {
			return failNotFoundf("No such element with set id '%s' and element id '%s'.", setID, elementID)
		}
		if err != nil {
			return err
		}

		var element models.Element
		if err := tx.First(&element, eid).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return failNotFoundf("No such element with set id '%s' and element id '%s'.", setID, elementID)
			}
			return err
		}

		applyElementUpdate(&element, payload)
		if err := tx.Save(&element).Error; err != nil {
			return err
		}

		sync := refSync{tx: tx}
		options := payload.Options
		if !payload.ValueType.IsChoice() {
			options = nil
		}
		if err := sync.ReplaceElementValues(element.ID, options); err != nil {
			return err
		}
		if err := sync.ReplaceElementPersonRefs(element.ID, payload.Persons); err != nil {
			return err
		}
		if err := sync.ReplaceElementOrganizationRefs(element.ID, payload.Organizations); err != nil {
			return err
		}
		return nil
	})

	success := resultOKf("Element with set id '%s' and element id '%s' is updated.", setID, elementID)
	return finish(err, success, s.logger.Errorf, "UpdateElement")
}

// DeleteElement removes an element together with its option rows and every
// junction row referencing it.
func (s *ElementService) DeleteElement(setID, elementID string) Result {
	sid, okSet := ident.DecodeSetID(setID)
	eid, okElement := ident.DecodeElementID(elementID)
	if !okSet || !okElement {
		return resultNotFoundf("No such element with set id '%s' and element id '%s'.", setID, elementID)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var ref models.ElementSetRef
		err := tx.Where("element_set_id = ? AND element_id = ?", sid, eid).First(&ref).Error
		if err == gorm.ErrRecordNotFound {
			return failNotFoundf("No such element with set id '%s' and element id '%s'.", setID, elementID)
		}
		if err != nil {
			return err
		}

		if err := tx.Delete(&models.Element{}, eid).Error; err != nil {
			return err
		}

		sync := refSync{tx: tx}
		if err := sync.RemoveElementValues(eid); err != nil {
			return err
		}
		if err := sync.RemoveElementSetRefs(eid); err != nil {
			return err
		}
		if err := sync.RemoveElementPersonRefs(eid); err != nil {
			return err
		}
		if err := sync.RemoveElementOrganizationRefs(eid); err != nil {
			return err
		}
		return nil
	})

	success := resultOKf("Element with set id '%s' and element id '%s' is deleted.", setID, elementID)
	return finish(err, success, s.logger.Errorf, "DeleteElement")
}

// buildElement constructs a new element row from the create payload.
func buildElement(payload *dto.CreateElement) models.Element {
	now := time.Now()
	versionDate := now
	if payload.VersionDate != nil {
		versionDate = *payload.VersionDate
	}
	question := payload.Question
	if question == "" {
		question = payload.Name
	}
	maxCardinality := uint(1)
	if payload.ValueType == dto.ElementTypeMultiChoice {
		maxCardinality = uint(len(payload.Options))
	}

	element := models.Element{
		Name:           payload.Name,
		ShortName:      payload.ShortName,
		Definition:     payload.Definition,
		ValueType:      payload.ValueType.StorageValueType(),
		MinCardinality: 1,
		MaxCardinality: maxCardinality,
		Unit:           payload.Unit,
		Question:       question,
		Instructions:   payload.Instructions,
		References:     payload.References,
		Version:        payload.Version,
		VersionDate:    versionDate,
		Synonyms:       payload.Synonyms,
		Source:         payload.Source,
		Status:         statusProposed,
		StatusDate:     now,
		Editor:         payload.Editor,
		Modality:       models.JoinList(payload.Modality.Slice()),
		BiologicalSex:  models.JoinList(payload.BiologicalSex.Slice()),
		AgeLowerBound:  floatPtr(payload.AgeLowerBound),
		AgeUpperBound:  floatPtr(payload.AgeUpperBound),
		ValueSize:      0,
	}
	applyNumericBounds(&element, payload.ValueType, payload.ValueMin, payload.ValueMax)
	return element
}

// applyElementUpdate overwrites every mutable field from the update payload.
func applyElementUpdate(element *models.Element, payload *dto.UpdateElement) {
	now := time.Now()
	question := payload.Question
	if question == "" {
		question = payload.Name
	}
	maxCardinality := uint(1)
	if payload.ValueType == dto.ElementTypeMultiChoice {
		maxCardinality = uint(len(payload.Options))
	}

	element.Name = payload.Name
	element.ShortName = payload.ShortName
	element.Definition = payload.Definition
	element.ValueType = payload.ValueType.StorageValueType()
	element.MinCardinality = 1
	element.MaxCardinality = maxCardinality
	element.Unit = payload.Unit
	element.Question = question
	element.Instructions = payload.Instructions
	element.References = payload.References
	element.Version = payload.Version
	element.VersionDate = now
	element.Synonyms = payload.Synonyms
	element.Source = payload.Source
	element.Status = statusProposed
	element.StatusDate = now
	element.Editor = payload.Editor
	element.Modality = models.JoinList(payload.Modality.Slice())
	element.BiologicalSex = models.JoinList(payload.BiologicalSex.Slice())
	element.AgeLowerBound = floatPtr(payload.AgeLowerBound)
	element.AgeUpperBound = floatPtr(payload.AgeUpperBound)
	element.ValueMin = nil
	element.ValueMax = nil
	element.StepValue = nil
	element.ValueSize = 0
	applyNumericBounds(element, payload.ValueType, payload.ValueMin, payload.ValueMax)
}

// applyNumericBounds sets the numeric range fields of Integer and Numeric
// elements: min/max from the payload and the type's fixed step value.
func applyNumericBounds(element *models.Element, valueType dto.ElementType, min, max *types.FlexFloat64) {
	switch valueType {
	case dto.ElementTypeInteger:
		element.ValueMin = floatPtr(min)
		element.ValueMax = floatPtr(max)
		element.StepValue = floatValue(stepInteger)
	case dto.ElementTypeNumeric:
		element.ValueMin = floatPtr(min)
		element.ValueMax = floatPtr(max)
		element.StepValue = floatValue(stepNumeric)
	}
}

func floatPtr(f *types.FlexFloat64) *float64 {
	if f == nil {
		return nil
	}
	v := f.Float64()
	return &v
}

func floatValue(v float64) *float64 {
	return &v
}

// elementDetailsList assembles the read representation of many elements.
func (s *ElementService) elementDetailsList(elements []models.Element) ([]dto.ElementDetails, error) {
	details := make([]dto.ElementDetails, 0, len(elements))
	for _, element := range elements {
		d, err := s.elementDetails(element)
		if err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}

// elementDetails assembles one element: owning sets, person and organization
// references with deduplicated role lists, and, for valueSet elements only,
// the option list.
func (s *ElementService) elementDetails(element models.Element) (dto.ElementDetails, error) {
	details := dto.MapElementDetails(element)

	sets, err := s.elementSetInfo(element.ID)
	if err != nil {
		return details, err
	}
	details.SetInformation = sets

	persons, err := s.elementPersonInfo(element.ID)
	if err != nil {
		return details, err
	}
	details.PersonInformation = persons

	organizations, err := s.elementOrganizationInfo(element.ID)
	if err != nil {
		return details, err
	}
	details.OrganizationInformation = organizations

	if element.ValueType == "valueSet" {
		var values []models.ElementValue
		if err := s.db.Where("element_id = ?", element.ID).Find(&values).Error; err != nil {
			return details, err
		}
		options := make([]dto.ElementValueDetails, 0, len(values))
		for _, value := range values {
			options = append(options, dto.MapElementValueDetails(value))
		}
		details.ElementValues = options
	}

	return details, nil
}

func (s *ElementService) elementSetInfo(elementID uint64) ([]dto.SetBasicAttributes, error) {
	var refs []models.ElementSetRef
	if err := s.db.Where("element_id = ?", elementID).Find(&refs).Error; err != nil {
		return nil, err
	}

	info := make([]dto.SetBasicAttributes, 0, len(refs))
	for _, ref := range refs {
		var set models.ElementSet
		err := s.db.First(&set, ref.ElementSetID).Error
		if err == gorm.ErrRecordNotFound {
			continue
		}
		if err != nil {
			return nil, err
		}
		info = append(info, dto.SetBasicAttributes{
			SetID:   ident.EncodeSetID(set.ID),
			SetName: set.Name,
		})
	}
	return info, nil
}

func (s *ElementService) elementPersonInfo(elementID uint64) ([]dto.PersonAttributes, error) {
	var refs []models.PersonRoleElementRef
	if err := s.db.Where("element_id = ?", elementID).Find(&refs).Error; err != nil {
		return nil, err
	}

	var info []dto.PersonAttributes
	index := make(map[uint64]int)
	for _, ref := range refs {
		pos, seen := index[ref.PersonID]
		if !seen {
			var person models.Person
			err := s.db.First(&person, ref.PersonID).Error
			if err == gorm.ErrRecordNotFound {
				continue
			}
			if err != nil {
				return nil, err
			}
			info = append(info, dto.MapPersonAttributes(person))
			pos = len(info) - 1
			index[ref.PersonID] = pos
		}
		if ref.Role != "" && !containsString(info[pos].Roles, ref.Role) {
			info[pos].Roles = append(info[pos].Roles, ref.Role)
		}
	}
	return info, nil
}

func (s *ElementService) elementOrganizationInfo(elementID uint64) ([]dto.OrganizationAttributes, error) {
	var refs []models.OrganizationRoleElementRef
	if err := s.db.Where("element_id = ?", elementID).Find(&refs).Error; err != nil {
		return nil, err
	}

	var info []dto.OrganizationAttributes
	index := make(map[uint64]int)
	for _, ref := range refs {
		pos, seen := index[ref.OrganizationID]
		if !seen {
			var organization models.Organization
			err := s.db.First(&organization, ref.OrganizationID).Error
			if err == gorm.ErrRecordNotFound {
				continue
			}
			if err != nil {
				return nil, err
			}
			info = append(info, dto.MapOrganizationAttributes(organization))
			pos = len(info) - 1
			index[ref.OrganizationID] = pos
		}
		if ref.Role != "" && !containsString(info[pos].Roles, ref.Role) {
			info[pos].Roles = append(info[pos].Roles, ref.Role)
		}
	}
	return info, nil
}

func containsString(values []string, value string) bool {
	for _, v := range values {
		if v == value {
			return true
		}
	}
	return false
}
