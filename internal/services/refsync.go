// refsync.go
//
// Reference synchronizer: reconciles the junction rows of one association
// category (persons, organizations, index codes, element options, set
// membership) attached to one owner entity. Create paths use the add
// variants; update paths replace by remove-all-then-add-all rather than
// diffing, which intentionally discards junction row identity. Faults are
// never caught here; they propagate and abort the enclosing transaction.

package services

import (
	"encoding/json"
	"time"

	"github.com/openimagingdata/radelement-api/internal/dto"
	"github.com/openimagingdata/radelement-api/internal/models"
	"gorm.io/gorm"
)

// refSync operates within one storage transaction. Target ids are validated
// by the owning service before they reach this type.
type refSync struct {
	tx *gorm.DB
}

// distinctRoles deduplicates a role list preserving first-seen order.
func distinctRoles(roles []string) []string {
	seen := make(map[string]struct{}, len(roles))
	out := make([]string, 0, len(roles))
	for _, role := range roles {
		if _, ok := seen[role]; ok {
			continue
		}
		seen[role] = struct{}{}
		out = append(out, role)
	}
	return out
}

// AddElementSetRef inserts one element-into-set membership row.
func (r refSync) AddElementSetRef(setID, elementID uint64) error {
	return r.tx.Create(&models.ElementSetRef{ElementSetID: setID, ElementID: elementID}).Error
}

// RemoveSetElementRefs removes every membership row of a set. The elements
// themselves are untouched.
func (r refSync) RemoveSetElementRefs(setID uint64) error {
	return r.tx.Where("element_set_id = ?", setID).Delete(&models.ElementSetRef{}).Error
}

// RemoveElementSetRefs removes every membership row of an element.
func (r refSync) RemoveElementSetRefs(elementID uint64) error {
	return r.tx.Where("element_id = ?", elementID).Delete(&models.ElementSetRef{}).Error
}

// AddElementValues inserts the option rows of a valueSet element.
func (r refSync) AddElementValues(elementID uint64, options []dto.Option) error {
	for _, option := range options {
		value := models.ElementValue{
			ElementID:  elementID,
			Name:       option.Name,
			Value:      option.Value,
			Definition: option.Definition,
		}
		if len(option.Images) > 0 {
			images, err := json.Marshal(option.Images.Slice())
			if err != nil {
				return err
			}
			value.Images.JSON = images
		}
		if err := r.tx.Create(&value).Error; err != nil {
			return err
		}
	}
	return nil
}

// RemoveElementValues removes every option row of an element.
func (r refSync) RemoveElementValues(elementID uint64) error {
	return r.tx.Where("element_id = ?", elementID).Delete(&models.ElementValue{}).Error
}

// ReplaceElementValues rewrites the option rows of an element.
func (r refSync) ReplaceElementValues(elementID uint64, options []dto.Option) error {
	if err := r.RemoveElementValues(elementID); err != nil {
		return err
	}
	return r.AddElementValues(elementID, options)
}

// AddElementPersonRefs inserts person links for an element: one row per
// distinct role per person, or one roleless row when no roles are given.
// Persons that do not exist are skipped.
func (r refSync) AddElementPersonRefs(elementID uint64, refs []dto.PersonRef) error {
	for _, ref := range refs {
		exists, err := r.personExists(ref.PersonID)
		if err != nil {
			return err
		}
		if !exists {
			continue
		}
		if err := forEachRole(ref.Roles.Slice(), func(role string) error {
			return r.tx.Create(&models.PersonRoleElementRef{
				ElementID: elementID,
				PersonID:  ref.PersonID,
				Role:      role,
			}).Error
		}); err != nil {
			return err
		}
	}
	return nil
}

// RemoveElementPersonRefs removes every person link of an element.
func (r refSync) RemoveElementPersonRefs(elementID uint64) error {
	return r.tx.Where("element_id = ?", elementID).Delete(&models.PersonRoleElementRef{}).Error
}

// ReplaceElementPersonRefs rewrites the person links of an element.
func (r refSync) ReplaceElementPersonRefs(elementID uint64, refs []dto.PersonRef) error {
	if err := r.RemoveElementPersonRefs(elementID); err != nil {
		return err
	}
	return r.AddElementPersonRefs(elementID, refs)
}

// AddElementOrganizationRefs inserts organization links for an element.
func (r refSync) AddElementOrganizationRefs(elementID uint64, refs []dto.OrganizationRef) error {
	for _, ref := range refs {
		exists, err := r.organizationExists(ref.OrganizationID)
		if err != nil {
			return err
		}
		if !exists {
			continue
		}
		if err := forEachRole(ref.Roles.Slice(), func(role string) error {
			return r.tx.Create(&models.OrganizationRoleElementRef{
				ElementID:      elementID,
				OrganizationID: ref.OrganizationID,
				Role:           role,
			}).Error
		}); err != nil {
			return err
		}
	}
	return nil
}

// RemoveElementOrganizationRefs removes every organization link of an element.
func (r refSync) RemoveElementOrganizationRefs(elementID uint64) error {
	return r.tx.Where("element_id = ?", elementID).Delete(&models.OrganizationRoleElementRef{}).Error
}

// ReplaceElementOrganizationRefs rewrites the organization links of an element.
func (r refSync) ReplaceElementOrganizationRefs(elementID uint64, refs []dto.OrganizationRef) error {
	if err := r.RemoveElementOrganizationRefs(elementID); err != nil {
		return err
	}
	return r.AddElementOrganizationRefs(elementID, refs)
}

// AddSetPersonRefs inserts person links for a set.
func (r refSync) AddSetPersonRefs(setID uint64, refs []dto.PersonRef) error {
	for _, ref := range refs {
		exists, err := r.personExists(ref.PersonID)
		if err != nil {
			return err
		}
		if !exists {
			continue
		}
		if err := forEachRole(ref.Roles.Slice(), func(role string) error {
			return r.tx.Create(&models.PersonRoleElementSetRef{
				ElementSetID: setID,
				PersonID:     ref.PersonID,
				Role:         role,
			}).Error
		}); err != nil {
			return err
		}
	}
	return nil
}

// RemoveSetPersonRefs removes every person link of a set.
func (r refSync) RemoveSetPersonRefs(setID uint64) error {
	return r.tx.Where("element_set_id = ?", setID).Delete(&models.PersonRoleElementSetRef{}).Error
}

// ReplaceSetPersonRefs rewrites the person links of a set.
func (r refSync) ReplaceSetPersonRefs(setID uint64, refs []dto.PersonRef) error {
	if err := r.RemoveSetPersonRefs(setID); err != nil {
		return err
	}
	return r.AddSetPersonRefs(setID, refs)
}

// AddSetOrganizationRefs inserts organization links for a set.
func (r refSync) AddSetOrganizationRefs(setID uint64, refs []dto.OrganizationRef) error {
	for _, ref := range refs {
		exists, err := r.organizationExists(ref.OrganizationID)
		if err != nil {
			return err
		}
		if !exists {
			continue
		}
		if err := forEachRole(ref.Roles.Slice(), func(role string) error {
			return r.tx.Create(&models.OrganizationRoleElementSetRef{
				ElementSetID:   setID,
				OrganizationID: ref.OrganizationID,
				Role:           role,
			}).Error
		}); err != nil {
			return err
		}
	}
	return nil
}

// RemoveSetOrganizationRefs removes every organization link of a set.
func (r refSync) RemoveSetOrganizationRefs(setID uint64) error {
	return r.tx.Where("element_set_id = ?", setID).Delete(&models.OrganizationRoleElementSetRef{}).Error
}

// ReplaceSetOrganizationRefs rewrites the organization links of a set.
func (r refSync) ReplaceSetOrganizationRefs(setID uint64, refs []dto.OrganizationRef) error {
	if err := r.RemoveSetOrganizationRefs(setID); err != nil {
		return err
	}
	return r.AddSetOrganizationRefs(setID, refs)
}

// GetOrCreateIndexCode resolves an index code by (system abbreviation, code)
// case-insensitively, creating it stamped with the current time when absent.
// ok is false when the system abbreviation is unknown; the caller skips the
// reference in that case rather than failing the operation.
func (r refSync) GetOrCreateIndexCode(ref dto.IndexCodeReference) (uint64, bool, error) {
	var system models.IndexCodeSystem
	err := r.tx.Where("LOWER(abbrev) = LOWER(?)", ref.System).First(&system).Error
	if err == gorm.ErrRecordNotFound {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}

	var code models.IndexCode
	err = r.tx.Where("LOWER(system) = LOWER(?) AND LOWER(code) = LOWER(?)", system.Abbrev, ref.Code).
		First(&code).Error
	if err == gorm.ErrRecordNotFound {
		code = models.IndexCode{
			Code:          ref.Code,
			System:        system.Abbrev,
			Display:       ref.Display,
			AccessionDate: time.Now().UTC(),
		}
		if err := r.tx.Create(&code).Error; err != nil {
			return 0, false, err
		}
		return code.ID, true, nil
	}
	if err != nil {
		return 0, false, err
	}
	return code.ID, true, nil
}

// AddSetIndexCodeRefs attaches index codes to a set, creating codes on
// demand. Unknown code systems are skipped, not rejected.
func (r refSync) AddSetIndexCodeRefs(setID uint64, refs []dto.IndexCodeReference) error {
	for _, ref := range refs {
		codeID, ok, err := r.GetOrCreateIndexCode(ref)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		if err := r.tx.Create(&models.IndexCodeElementSetRef{
			ElementSetID: setID,
			CodeID:       codeID,
		}).Error; err != nil {
			return err
		}
	}
	return nil
}

// RemoveSetIndexCodeRefs removes every index code link of a set.
func (r refSync) RemoveSetIndexCodeRefs(setID uint64) error {
	return r.tx.Where("element_set_id = ?", setID).Delete(&models.IndexCodeElementSetRef{}).Error
}

// ReplaceSetIndexCodeRefs rewrites the index code links of a set.
func (r refSync) ReplaceSetIndexCodeRefs(setID uint64, refs []dto.IndexCodeReference) error {
	if err := r.RemoveSetIndexCodeRefs(setID); err != nil {
		return err
	}
	return r.AddSetIndexCodeRefs(setID, refs)
}

// RemovePersonRefs removes every junction row referencing a person, both
// element-level and set-level. Used by the person delete flow.
func (r refSync) RemovePersonRefs(personID uint64) error {
	if err := r.tx.Where("person_id = ?", personID).Delete(&models.PersonRoleElementRef{}).Error; err != nil {
		return err
	}
	return r.tx.Where("person_id = ?", personID).Delete(&models.PersonRoleElementSetRef{}).Error
}

// RemoveOrganizationRefs removes every junction row referencing an
// organization. Used by the organization delete flow.
func (r refSync) RemoveOrganizationRefs(organizationID uint64) error {
	if err := r.tx.Where("organization_id = ?", organizationID).Delete(&models.OrganizationRoleElementRef{}).Error; err != nil {
		return err
	}
	return r.tx.Where("organization_id = ?", organizationID).Delete(&models.OrganizationRoleElementSetRef{}).Error
}

func (r refSync) personExists(id uint64) (bool, error) {
	var count int64
	if err := r.tx.Model(&models.Person{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r refSync) organizationExists(id uint64) (bool, error) {
	var count int64
	if err := r.tx.Model(&models.Organization{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// forEachRole invokes insert once per distinct role, or once with an empty
// role when the list is empty.
func forEachRole(roles []string, insert func(role string) error) error {
	deduped := distinctRoles(roles)
	if len(deduped) == 0 {
		return insert("")
	}
	for _, role := range deduped {
		if err := insert(role); err != nil {
			return err
		}
	}
	return nil
}
