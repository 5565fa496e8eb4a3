// organization.go
//
// Business service for the organization operations. Mirrors the person
// service with the organization profile shape.

package services

import (
	"strings"
	"unicode/utf8"

	"github.com/openimagingdata/radelement-api/internal/dto"
	"github.com/openimagingdata/radelement-api/internal/ident"
	"github.com/openimagingdata/radelement-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// OrganizationService implements create/update/delete/query logic for
// organizations.
type OrganizationService struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// NewOrganizationService returns an OrganizationService bound to db.
func NewOrganizationService(db *gorm.DB, logger *zap.SugaredLogger) *OrganizationService {
	return &OrganizationService{db: db, logger: logger}
}

// GetOrganizations returns every organization.
func (s *OrganizationService) GetOrganizations() Result {
	var organizations []models.Organization
	if err := s.db.Find(&organizations).Error; err != nil {
		s.logger.Errorf("unexpected fault in GetOrganizations: %v", err)
		return resultInternalError(err)
	}

	details := make([]dto.OrganizationDetails, 0, len(organizations))
	for _, organization := range organizations {
		details = append(details, dto.MapOrganizationDetails(organization))
	}
	return resultOK(details)
}

// GetOrganization returns one organization by id.
func (s *OrganizationService) GetOrganization(organizationID uint64) Result {
	var organization models.Organization
	err := s.db.First(&organization, organizationID).Error
	if err == gorm.ErrRecordNotFound {
		return resultNotFoundf("No such organization with id '%d'.", organizationID)
	}
	if err != nil {
		s.logger.Errorf("unexpected fault in GetOrganization: %v", err)
		return resultInternalError(err)
	}
	return resultOK(dto.MapOrganizationDetails(organization))
}

// SearchOrganizations filters organizations by keyword against the name,
// case-insensitively.
func (s *OrganizationService) SearchOrganizations(keyword string) Result {
	if keyword == "" {
		return resultBadRequest("Keyword given is invalid.")
	}
	if utf8.RuneCountInString(keyword) < 3 {
		return resultBadRequest("The Keyword field must be a string with a minimum length of '3'.")
	}

	var organizations []models.Organization
	err := s.db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(keyword)+"%").Find(&organizations).Error
	if err != nil {
		s.logger.Errorf("unexpected fault in SearchOrganizations: %v", err)
		return resultInternalError(err)
	}
	if len(organizations) == 0 {
		return resultNotFoundf("No such organization with keyword '%s'.", keyword)
	}

	details := make([]dto.OrganizationDetails, 0, len(organizations))
	for _, organization := range organizations {
		details = append(details, dto.MapOrganizationDetails(organization))
	}
	return resultOK(details)
}

// CreateOrganization creates an organization, rejecting exact duplicate
// profiles, and optionally links it to a set and/or an element.
func (s *OrganizationService) CreateOrganization(payload *dto.CreateUpdateOrganization) Result {
	if payload == nil {
		return resultBadRequest("Organization fields are invalid.")
	}
	if strings.TrimSpace(payload.Name) == "" {
		return resultBadRequest("'Name' field is missing in request.")
	}

	var organizationID uint64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		duplicate, err := findDuplicateOrganization(tx, payload, 0)
		if err != nil {
			return err
		}
		if duplicate {
			return failBadRequest("Organization with same details already exists.")
		}

		organization := models.Organization{
			Name:          payload.Name,
			Abbreviation:  payload.Abbreviation,
			URL:           payload.URL,
			Email:         payload.Email,
			TwitterHandle: payload.TwitterHandle,
			Comment:       payload.Comment,
		}
		if err := tx.Create(&organization).Error; err != nil {
			return err
		}

		if err := attachOrganization(tx, organization.ID, payload); err != nil {
			return err
		}

		organizationID = organization.ID
		return nil
	})

	success := resultCreated(dto.OrganizationIDDetails{OrganizationID: organizationID})
	return finish(err, success, s.logger.Errorf, "CreateOrganization")
}

// UpdateOrganization overwrites an organization's profile and rewrites its
// set and element links from the payload. A payload without SetID and
// ElementID detaches the organization everywhere.
func (s *OrganizationService) UpdateOrganization(organizationID uint64, payload *dto.CreateUpdateOrganization) Result {
	if payload == nil {
		return resultBadRequest("Organization fields are invalid.")
	}
	if strings.TrimSpace(payload.Name) == "" {
		return resultBadRequest("'Name' field is missing in request.")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var organization models.Organization
		err := tx.First(&organization, organizationID).Error
		if err == gorm.ErrRecordNotFound {
			return failNotFoundf("No such organization with id '%d'.", organizationID)
		}
		if err != nil {
			return err
		}

		duplicate, err := findDuplicateOrganization(tx, payload, organizationID)
		if err != nil {
			return err
		}
		if duplicate {
			return failBadRequest("Organization with same details already exists.")
		}

		organization.Name = payload.Name
		organization.Abbreviation = payload.Abbreviation
		organization.URL = payload.URL
		organization.Email = payload.Email
		organization.TwitterHandle = payload.TwitterHandle
		organization.Comment = payload.Comment
		if err := tx.Save(&organization).Error; err != nil {
			return err
		}

		sync := refSync{tx: tx}
		if err := sync.RemoveOrganizationRefs(organizationID); err != nil {
			return err
		}
		return attachOrganization(tx, organizationID, payload)
	})

	success := resultOKf("Organization with id '%d' is updated.", organizationID)
	return finish(err, success, s.logger.Errorf, "UpdateOrganization")
}

// DeleteOrganization removes an organization and every element and set link
// that references it.
func (s *OrganizationService) DeleteOrganization(organizationID uint64) Result {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var organization models.Organization
		err := tx.First(&organization, organizationID).Error
		if err == gorm.ErrRecordNotFound {
			return failNotFoundf("No such organization with id '%d'.", organizationID)
		}
		if err != nil {
			return err
		}

		sync := refSync{tx: tx}
		if err := sync.RemoveOrganizationRefs(organizationID); err != nil {
			return err
		}
		return tx.Delete(&models.Organization{}, organizationID).Error
	})

	success := resultOKf("Organization with id '%d' is deleted.", organizationID)
	return finish(err, success, s.logger.Errorf, "DeleteOrganization")
}

func findDuplicateOrganization(tx *gorm.DB, payload *dto.CreateUpdateOrganization, excludeID uint64) (bool, error) {
	query := tx.Model(&models.Organization{}).
		Where("LOWER(name) = LOWER(?)", payload.Name).
		Where("LOWER(abbreviation) = LOWER(?)", payload.Abbreviation).
		Where("LOWER(url) = LOWER(?)", payload.URL).
		Where("LOWER(email) = LOWER(?)", payload.Email).
		Where("LOWER(twitter_handle) = LOWER(?)", payload.TwitterHandle).
		Where("LOWER(comment) = LOWER(?)", payload.Comment)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func attachOrganization(tx *gorm.DB, organizationID uint64, payload *dto.CreateUpdateOrganization) error {
	sync := refSync{tx: tx}
	refs := []dto.OrganizationRef{{OrganizationID: organizationID, Roles: payload.Roles}}

	if payload.SetID != "" {
		sid, ok := ident.DecodeSetID(payload.SetID)
		if !ok {
			return failNotFoundf("No such set with set id '%s'.", payload.SetID)
		}
		var count int64
		if err := tx.Model(&models.ElementSet{}).Where("id = ?", sid).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return failNotFoundf("No such set with set id '%s'.", payload.SetID)
		}
		if err := sync.AddSetOrganizationRefs(sid, refs); err != nil {
			return err
		}
	}

	if payload.ElementID != "" {
		eid, ok := ident.DecodeElementID(payload.ElementID)
		if !ok {
			return failNotFoundf("No such element with element id '%s'.", payload.ElementID)
		}
		var count int64
		if err := tx.Model(&models.Element{}).Where("id = ?", eid).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return failNotFoundf("No such element with element id '%s'.", payload.ElementID)
		}
		if err := sync.AddElementOrganizationRefs(eid, refs); err != nil {
			return err
		}
	}

	return nil
}
