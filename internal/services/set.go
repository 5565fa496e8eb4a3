// set.go
//
// Business service for the element set operations. Reads assemble each set
// from a single flat join across the index code, person and organization
// junctions, folded back into one document per set.

package services

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/openimagingdata/radelement-api/internal/dto"
	"github.com/openimagingdata/radelement-api/internal/ident"
	"github.com/openimagingdata/radelement-api/internal/models"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetService implements create/update/delete/query logic for element sets.
type SetService struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// NewSetService returns a SetService bound to db.
func NewSetService(db *gorm.DB, logger *zap.SugaredLogger) *SetService {
	return &SetService{db: db, logger: logger}
}

// setJoinRow is one row of the flat set query. Joined columns are pointers
// so missing associations scan as nil.
type setJoinRow struct {
	SetID         uint64
	SetName       string
	Description   string
	ContactName   string
	ParentID      *uint64
	Modality      *string
	BiologicalSex *string
	AgeLowerBound *float64
	AgeUpperBound *float64
	Status        string
	StatusDate    time.Time
	Version       string
	VersionDate   time.Time

	CodeID        *uint64
	Code          *string
	CodeSystem    *string
	CodeDisplay   *string
	AccessionDate *time.Time

	PersonID      *uint64
	PersonName    *string
	Orcid         *string
	PersonURL     *string
	PersonEmail   *string
	PersonTwitter *string
	PersonComment *string
	PersonRole    *string

	OrganizationID      *uint64
	OrganizationName    *string
	Abbreviation        *string
	OrganizationURL     *string
	OrganizationEmail   *string
	OrganizationTwitter *string
	OrganizationComment *string
	OrganizationRole    *string
}

const setJoinColumns = `element_set.id AS set_id, element_set.name AS set_name,
element_set.description, element_set.contact_name, element_set.parent_id,
element_set.modality, element_set.biological_sex,
element_set.age_lower_bound, element_set.age_upper_bound,
element_set.status, element_set.status_date,
element_set.version, element_set.version_date,
index_code.id AS code_id, index_code.code, index_code.system AS code_system,
index_code.display AS code_display, index_code.accession_date,
person.id AS person_id, person.name AS person_name, person.orcid,
person.url AS person_url, person.email AS person_email,
person.twitter_handle AS person_twitter, person.comment AS person_comment,
person_role_element_set_ref.role AS person_role,
organization.id AS organization_id, organization.name AS organization_name,
organization.abbreviation, organization.url AS organization_url,
organization.email AS organization_email,
organization.twitter_handle AS organization_twitter,
organization.comment AS organization_comment,
organization_role_element_set_ref.role AS organization_role`

// setJoinQuery builds the flat query. The caller narrows it further with
// Where clauses before scanning.
func (s *SetService) setJoinQuery() *gorm.DB {
	return s.db.Table("element_set").
		Select(setJoinColumns).
		Joins("LEFT JOIN index_code_element_set_ref ON index_code_element_set_ref.element_set_id = element_set.id").
		Joins("LEFT JOIN index_code ON index_code.id = index_code_element_set_ref.code_id").
		Joins("LEFT JOIN person_role_element_set_ref ON person_role_element_set_ref.element_set_id = element_set.id").
		Joins("LEFT JOIN person ON person.id = person_role_element_set_ref.person_id").
		Joins("LEFT JOIN organization_role_element_set_ref ON organization_role_element_set_ref.element_set_id = element_set.id").
		Joins("LEFT JOIN organization ON organization.id = organization_role_element_set_ref.organization_id").
		Order("element_set.id")
}

// foldSetRows collapses the flat rows into one ElementSetDetails per set id,
// deduplicating index codes, persons and organizations and merging roles.
func foldSetRows(rows []setJoinRow) []dto.ElementSetDetails {
	details := make([]dto.ElementSetDetails, 0)
	index := make(map[uint64]int)
	seenCodes := make(map[uint64]map[uint64]bool)
	seenPersons := make(map[uint64]map[uint64]int)
	seenOrganizations := make(map[uint64]map[uint64]int)

	for _, row := range rows {
		pos, seen := index[row.SetID]
		if !seen {
			details = append(details, dto.ElementSetDetails{
				ID:            ident.EncodeSetID(row.SetID),
				Name:          row.SetName,
				Description:   row.Description,
				ContactName:   row.ContactName,
				ParentID:      row.ParentID,
				Modality:      models.SplitList(row.Modality),
				BiologicalSex: models.SplitList(row.BiologicalSex),
				AgeLowerBound: row.AgeLowerBound,
				AgeUpperBound: row.AgeUpperBound,
				Status:        row.Status,
				StatusDate:    row.StatusDate,
				Version:       row.Version,
				VersionDate:   row.VersionDate,
			})
			pos = len(details) - 1
			index[row.SetID] = pos
			seenCodes[row.SetID] = make(map[uint64]bool)
			seenPersons[row.SetID] = make(map[uint64]int)
			seenOrganizations[row.SetID] = make(map[uint64]int)
		}
		set := &details[pos]

		if row.CodeID != nil && !seenCodes[row.SetID][*row.CodeID] {
			seenCodes[row.SetID][*row.CodeID] = true
			code := dto.IndexCodeDetails{ID: *row.CodeID}
			if row.Code != nil {
				code.Code = *row.Code
			}
			if row.CodeSystem != nil {
				code.System = *row.CodeSystem
			}
			if row.CodeDisplay != nil {
				code.Display = *row.CodeDisplay
			}
			if row.AccessionDate != nil {
				code.AccessionDate = *row.AccessionDate
			}
			set.IndexCodes = append(set.IndexCodes, code)
		}

		if row.PersonID != nil {
			ppos, ok := seenPersons[row.SetID][*row.PersonID]
			if !ok {
				person := dto.PersonAttributes{ID: *row.PersonID, Roles: []string{}}
				person.Name = deref(row.PersonName)
				person.Orcid = deref(row.Orcid)
				person.URL = deref(row.PersonURL)
				person.Email = deref(row.PersonEmail)
				person.TwitterHandle = deref(row.PersonTwitter)
				person.Comment = deref(row.PersonComment)
				set.PersonInformation = append(set.PersonInformation, person)
				ppos = len(set.PersonInformation) - 1
				seenPersons[row.SetID][*row.PersonID] = ppos
			}
			role := deref(row.PersonRole)
			if role != "" && !containsString(set.PersonInformation[ppos].Roles, role) {
				set.PersonInformation[ppos].Roles = append(set.PersonInformation[ppos].Roles, role)
			}
		}

		if row.OrganizationID != nil {
			opos, ok := seenOrganizations[row.SetID][*row.OrganizationID]
			if !ok {
				organization := dto.OrganizationAttributes{ID: *row.OrganizationID, Roles: []string{}}
				organization.Name = deref(row.OrganizationName)
				organization.Abbreviation = deref(row.Abbreviation)
				organization.URL = deref(row.OrganizationURL)
				organization.Email = deref(row.OrganizationEmail)
				organization.TwitterHandle = deref(row.OrganizationTwitter)
				organization.Comment = deref(row.OrganizationComment)
				set.OrganizationInformation = append(set.OrganizationInformation, organization)
				opos = len(set.OrganizationInformation) - 1
				seenOrganizations[row.SetID][*row.OrganizationID] = opos
			}
			role := deref(row.OrganizationRole)
			if role != "" && !containsString(set.OrganizationInformation[opos].Roles, role) {
				set.OrganizationInformation[opos].Roles = append(set.OrganizationInformation[opos].Roles, role)
			}
		}
	}
	return details
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// GetSets returns every element set with its assembled details.
func (s *SetService) GetSets() Result {
	var rows []setJoinRow
	if err := s.setJoinQuery().Scan(&rows).Error; err != nil {
		s.logger.Errorf("unexpected fault in GetSets: %v", err)
		return resultInternalError(err)
	}
	return resultOK(foldSetRows(rows))
}

// GetSet returns one element set by its public id.
func (s *SetService) GetSet(setID string) Result {
	id, ok := ident.DecodeSetID(setID)
	if !ok {
		return resultNotFoundf("No such set with id '%s'.", setID)
	}

	var rows []setJoinRow
	if err := s.setJoinQuery().Where("element_set.id = ?", id).Scan(&rows).Error; err != nil {
		s.logger.Errorf("unexpected fault in GetSet: %v", err)
		return resultInternalError(err)
	}
	details := foldSetRows(rows)
	if len(details) == 0 {
		return resultNotFoundf("No such set with id '%s'.", setID)
	}
	return resultOK(details[0])
}

// SearchSets filters sets by keyword against the set name, case-insensitively.
func (s *SetService) SearchSets(keyword string) Result {
	if keyword == "" {
		return resultBadRequest("Keyword given is invalid.")
	}
	if utf8.RuneCountInString(keyword) < 3 {
		return resultBadRequest("The Keyword field must be a string with a minimum length of '3'.")
	}

	var rows []setJoinRow
	err := s.setJoinQuery().
		Where("LOWER(element_set.name) LIKE ?", "%"+strings.ToLower(keyword)+"%").
		Scan(&rows).Error
	if err != nil {
		s.logger.Errorf("unexpected fault in SearchSets: %v", err)
		return resultInternalError(err)
	}

	details := foldSetRows(rows)
	if len(details) == 0 {
		return resultNotFoundf("No such set with keyword '%s'.", keyword)
	}
	return resultOK(details)
}

// CreateSet creates an element set with its initial index code, person and
// organization references.
func (s *SetService) CreateSet(payload *dto.CreateUpdateSet) Result {
	if payload == nil {
		return resultBadRequest("Set fields are invalid.")
	}
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		return resultBadRequest("'Name' field is missing in request.")
	}

	var publicID string
	err := s.db.Transaction(func(tx *gorm.DB) error {
		set := buildElementSet(payload, name)
		if err := tx.Create(&set).Error; err != nil {
			return err
		}

		sync := refSync{tx: tx}
		if err := sync.AddSetIndexCodeRefs(set.ID, payload.IndexCodeReferences); err != nil {
			return err
		}
		if err := sync.AddSetPersonRefs(set.ID, payload.Persons); err != nil {
			return err
		}
		if err := sync.AddSetOrganizationRefs(set.ID, payload.Organizations); err != nil {
			return err
		}

		publicID = ident.EncodeSetID(set.ID)
		return nil
	})

	return finish(err, resultCreated(dto.SetIDDetails{SetID: publicID}), s.logger.Errorf, "CreateSet")
}

// UpdateSet rewrites an element set and replaces its references wholesale.
func (s *SetService) UpdateSet(setID string, payload *dto.CreateUpdateSet) Result {
	id, ok := ident.DecodeSetID(setID)
	if !ok {
		return resultNotFoundf("No such set with id '%s'.", setID)
	}
	if payload == nil {
		return resultBadRequest("Set fields are invalid.")
	}
	name := strings.TrimSpace(payload.Name)
	if name == "" {
		return resultBadRequest("'Name' field is missing in request.")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var set models.ElementSet
		err := tx.First(&set, id).Error
		if err == gorm.ErrRecordNotFound {
			return failNotFoundf("No such set with id '%s'.", setID)
		}
		if err != nil {
			return err
		}

		applySetUpdate(&set, payload, name)
		if err := tx.Save(&set).Error; err != nil {
			return err
		}

		sync := refSync{tx: tx}
		if err := sync.ReplaceSetIndexCodeRefs(set.ID, payload.IndexCodeReferences); err != nil {
			return err
		}
		if err := sync.ReplaceSetPersonRefs(set.ID, payload.Persons); err != nil {
			return err
		}
		if err := sync.ReplaceSetOrganizationRefs(set.ID, payload.Organizations); err != nil {
			return err
		}
		return nil
	})

	return finish(err, resultOKf("Set with id '%s' is updated.", setID), s.logger.Errorf, "UpdateSet")
}

// DeleteSet removes an element set and every junction row referencing it.
// The elements themselves survive.
func (s *SetService) DeleteSet(setID string) Result {
	id, ok := ident.DecodeSetID(setID)
	if !ok {
		return resultNotFoundf("No such set with id '%s'.", setID)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var set models.ElementSet
		err := tx.First(&set, id).Error
		if err == gorm.ErrRecordNotFound {
			return failNotFoundf("No such set with id '%s'.", setID)
		}
		if err != nil {
			return err
		}

		sync := refSync{tx: tx}
		if err := sync.RemoveSetIndexCodeRefs(id); err != nil {
			return err
		}
		if err := sync.RemoveSetElementRefs(id); err != nil {
			return err
		}
		if err := sync.RemoveSetPersonRefs(id); err != nil {
			return err
		}
		if err := sync.RemoveSetOrganizationRefs(id); err != nil {
			return err
		}
		return tx.Delete(&models.ElementSet{}, id).Error
	})

	return finish(err, resultOKf("Set with id '%s' is deleted.", setID), s.logger.Errorf, "DeleteSet")
}

func buildElementSet(payload *dto.CreateUpdateSet, name string) models.ElementSet {
	now := time.Now()
	versionDate := now
	if payload.VersionDate != nil {
		versionDate = *payload.VersionDate
	}
	return models.ElementSet{
		Name:          name,
		Description:   payload.Description,
		ContactName:   payload.ContactName,
		ParentID:      payload.ParentID,
		Modality:      models.JoinList(payload.Modality.Slice()),
		BiologicalSex: models.JoinList(payload.BiologicalSex.Slice()),
		AgeLowerBound: floatPtr(payload.AgeLowerBound),
		AgeUpperBound: floatPtr(payload.AgeUpperBound),
		Status:        statusProposed,
		StatusDate:    now,
		Version:       payload.Version,
		VersionDate:   versionDate,
		DeletedAt:     payload.DeletedAt,
	}
}

func applySetUpdate(set *models.ElementSet, payload *dto.CreateUpdateSet, name string) {
	now := time.Now()
	set.Name = name
	set.Description = payload.Description
	set.ContactName = payload.ContactName
	set.ParentID = payload.ParentID
	set.Modality = models.JoinList(payload.Modality.Slice())
	set.BiologicalSex = models.JoinList(payload.BiologicalSex.Slice())
	set.AgeLowerBound = floatPtr(payload.AgeLowerBound)
	set.AgeUpperBound = floatPtr(payload.AgeUpperBound)
	set.Status = statusProposed
	set.StatusDate = now
	set.Version = payload.Version
	set.VersionDate = now
	set.DeletedAt = payload.DeletedAt
}
