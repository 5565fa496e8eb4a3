// person.go
//
// Business service for the person operations. A person's identity for
// duplicate detection is the whole profile, compared case-insensitively.

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

// PersonService implements create/update/delete/query logic for persons.
type PersonService struct {
	db     *gorm.DB
	logger *zap.SugaredLogger
}

// NewPersonService returns a PersonService bound to db.
func NewPersonService(db *gorm.DB, logger *zap.SugaredLogger) *PersonService {
	return &PersonService{db: db, logger: logger}
}

// GetPersons returns every person.
func (s *PersonService) GetPersons() Result {
	var persons []models.Person
	if err := s.db.Find(&persons).Error; err != nil {
		s.logger.Errorf("unexpected fault in GetPersons: %v", err)
		return resultInternalError(err)
	}

	details := make([]dto.PersonDetails, 0, len(persons))
	for _, person := range persons {
		details = append(details, dto.MapPersonDetails(person))
	}
	return resultOK(details)
}

// GetPerson returns one person by id.
func (s *PersonService) GetPerson(personID uint64) Result {
	var person models.Person
	err := s.db.First(&person, personID).Error
	if err == gorm.ErrRecordNotFound {
		return resultNotFoundf("No such person with id '%d'.", personID)
	}
	if err != nil {
		s.logger.Errorf("unexpected fault in GetPerson: %v", err)
		return resultInternalError(err)
	}
	return resultOK(dto.MapPersonDetails(person))
}

// SearchPersons filters persons by keyword against the name,
// case-insensitively.
func (s *PersonService) SearchPersons(keyword string) Result {
	if keyword == "" {
		return resultBadRequest("Keyword given is invalid.")
	}
	if utf8.RuneCountInString(keyword) < 3 {
		return resultBadRequest("The Keyword field must be a string with a minimum length of '3'.")
	}

	var persons []models.Person
	err := s.db.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(keyword)+"%").Find(&persons).Error
	if err != nil {
		s.logger.Errorf("unexpected fault in SearchPersons: %v", err)
		return resultInternalError(err)
	}
	if len(persons) == 0 {
		return resultNotFoundf("No such person with keyword '%s'.", keyword)
	}

	details := make([]dto.PersonDetails, 0, len(persons))
	for _, person := range persons {
		details = append(details, dto.MapPersonDetails(person))
	}
	return resultOK(details)
}

// CreatePerson creates a person, rejecting exact duplicate profiles, and
// optionally links the new person to a set and/or an element.
func (s *PersonService) CreatePerson(payload *dto.CreateUpdatePerson) Result {
	if payload == nil {
		return resultBadRequest("Person fields are invalid.")
	}
	if strings.TrimSpace(payload.Name) == "" {
		return resultBadRequest("'Name' field is missing in request.")
	}

	var personID uint64
	err := s.db.Transaction(func(tx *gorm.DB) error {
		duplicate, err := findDuplicatePerson(tx, payload, 0)
		if err != nil {
			return err
		}
		if duplicate {
			return failBadRequest("Person with same details already exists.")
		}

		person := models.Person{
			Name:          payload.Name,
			Orcid:         payload.Orcid,
			URL:           payload.URL,
			Email:         payload.Email,
			TwitterHandle: payload.TwitterHandle,
			Comment:       payload.Comment,
		}
		if err := tx.Create(&person).Error; err != nil {
			return err
		}

		if err := attachPerson(tx, person.ID, payload); err != nil {
			return err
		}

		personID = person.ID
		return nil
	})

	return finish(err, resultCreated(dto.PersonIDDetails{PersonID: personID}), s.logger.Errorf, "CreatePerson")
}

// UpdatePerson overwrites a person's profile and rewrites their set and
// element links from the payload. A payload without SetID and ElementID
// detaches the person everywhere.
func (s *PersonService) UpdatePerson(personID uint64, payload *dto.CreateUpdatePerson) Result {
	if payload == nil {
		return resultBadRequest("Person fields are invalid.")
	}
	if strings.TrimSpace(payload.Name) == "" {
		return resultBadRequest("'Name' field is missing in request.")
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var person models.Person
		err := tx.First(&person, personID).Error
		if err == gorm.ErrRecordNotFound {
			return failNotFoundf("No such person with id '%d'.", personID)
		}
		if err != nil {
			return err
		}

		duplicate, err := findDuplicatePerson(tx, payload, personID)
		if err != nil {
			return err
		}
		if duplicate {
			return failBadRequest("Person with same details already exists.")
		}

		person.Name = payload.Name
		person.Orcid = payload.Orcid
		person.URL = payload.URL
		person.Email = payload.Email
		person.TwitterHandle = payload.TwitterHandle
		person.Comment = payload.Comment
		if err := tx.Save(&person).Error; err != nil {
			return err
		}

		sync := refSync{tx: tx}
		if err := sync.RemovePersonRefs(personID); err != nil {
			return err
		}
		return attachPerson(tx, personID, payload)
	})

	return finish(err, resultOKf("Person with id '%d' is updated.", personID), s.logger.Errorf, "UpdatePerson")
}

// DeletePerson removes a person and every element and set link that
// references them.
func (s *PersonService) DeletePerson(personID uint64) Result {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var person models.Person
		err := tx.First(&person, personID).Error
		if err == gorm.ErrRecordNotFound {
			return failNotFoundf("No such person with id '%d'.", personID)
		}
		if err != nil {
			return err
		}

		sync := refSync{tx: tx}
		if err := sync.RemovePersonRefs(personID); err != nil {
			return err
		}
		return tx.Delete(&models.Person{}, personID).Error
	})

	return finish(err, resultOKf("Person with id '%d' is deleted.", personID), s.logger.Errorf, "DeletePerson")
}

// findDuplicatePerson reports whether another person row carries the exact
// same profile, ignoring case. excludeID skips the row being updated.
func findDuplicatePerson(tx *gorm.DB, payload *dto.CreateUpdatePerson, excludeID uint64) (bool, error) {
	query := tx.Model(&models.Person{}).
		Where("LOWER(name) = LOWER(?)", payload.Name).
		Where("LOWER(orcid) = LOWER(?)", payload.Orcid).
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

// attachPerson links a person to the set and/or element the payload names.
// A missing target aborts the transaction.
func attachPerson(tx *gorm.DB, personID uint64, payload *dto.CreateUpdatePerson) error {
	sync := refSync{tx: tx}
	refs := []dto.PersonRef{{PersonID: personID, Roles: payload.Roles}}

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
		if err := sync.AddSetPersonRefs(sid, refs); err != nil {
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
		if err := sync.AddElementPersonRefs(eid, refs); err != nil {
			return err
		}
	}

	return nil
}
