package dto

import (
	"encoding/json"

	"github.com/openimagingdata/radelement-api/internal/ident"
	"github.com/openimagingdata/radelement-api/internal/models"
)

// Pure row-to-DTO mapping. Like-named fields are copied verbatim; computed
// fields (owning sets, role aggregation, options) are filled in by the
// services after this base mapping.

// MapElementDetails maps an element row to its read representation.
func MapElementDetails(m models.Element) ElementDetails {
	return ElementDetails{
		ID:             ident.EncodeElementID(m.ID),
		Name:           m.Name,
		ShortName:      m.ShortName,
		Definition:     m.Definition,
		ValueType:      m.ValueType,
		MinCardinality: m.MinCardinality,
		MaxCardinality: m.MaxCardinality,
		Unit:           m.Unit,
		Question:       m.Question,
		Instructions:   m.Instructions,
		References:     m.References,
		Version:        m.Version,
		VersionDate:    m.VersionDate,
		Synonyms:       m.Synonyms,
		Source:         m.Source,
		Status:         m.Status,
		StatusDate:     m.StatusDate,
		Editor:         m.Editor,
		Modality:       models.SplitList(m.Modality),
		BiologicalSex:  models.SplitList(m.BiologicalSex),
		AgeLowerBound:  m.AgeLowerBound,
		AgeUpperBound:  m.AgeUpperBound,
		ValueMin:       m.ValueMin,
		ValueMax:       m.ValueMax,
		StepValue:      m.StepValue,
		ValueSize:      m.ValueSize,
	}
}

// MapElementValueDetails maps a persisted option row.
func MapElementValueDetails(m models.ElementValue) ElementValueDetails {
	var images []string
	if len(m.Images.JSON) > 0 {
		// A malformed images payload degrades to no images rather than
		// failing the whole read.
		_ = json.Unmarshal(m.Images.JSON, &images)
	}
	return ElementValueDetails{
		ID:         m.ID,
		Name:       m.Name,
		Value:      m.Value,
		Definition: m.Definition,
		Images:     images,
	}
}

// MapElementSetDetails maps a set row to its read representation.
func MapElementSetDetails(m models.ElementSet) ElementSetDetails {
	return ElementSetDetails{
		ID:            ident.EncodeSetID(m.ID),
		Name:          m.Name,
		Description:   m.Description,
		ContactName:   m.ContactName,
		ParentID:      m.ParentID,
		Modality:      models.SplitList(m.Modality),
		BiologicalSex: models.SplitList(m.BiologicalSex),
		AgeLowerBound: m.AgeLowerBound,
		AgeUpperBound: m.AgeUpperBound,
		Status:        m.Status,
		StatusDate:    m.StatusDate,
		Version:       m.Version,
		VersionDate:   m.VersionDate,
	}
}

// MapIndexCodeDetails maps an index code row.
func MapIndexCodeDetails(m models.IndexCode) IndexCodeDetails {
	return IndexCodeDetails{
		ID:            m.ID,
		Code:          m.Code,
		System:        m.System,
		Display:       m.Display,
		AccessionDate: m.AccessionDate,
	}
}

// MapPersonAttributes maps a person row into an owner response entry with an
// empty role list.
func MapPersonAttributes(m models.Person) PersonAttributes {
	return PersonAttributes{
		ID:            m.ID,
		Name:          m.Name,
		Orcid:         m.Orcid,
		URL:           m.URL,
		Email:         m.Email,
		TwitterHandle: m.TwitterHandle,
		Comment:       m.Comment,
		Roles:         []string{},
	}
}

// MapOrganizationAttributes maps an organization row into an owner response
// entry with an empty role list.
func MapOrganizationAttributes(m models.Organization) OrganizationAttributes {
	return OrganizationAttributes{
		ID:            m.ID,
		Name:          m.Name,
		Abbreviation:  m.Abbreviation,
		URL:           m.URL,
		Email:         m.Email,
		TwitterHandle: m.TwitterHandle,
		Comment:       m.Comment,
		Roles:         []string{},
	}
}

// MapPersonDetails maps a person row to its standalone representation.
func MapPersonDetails(m models.Person) PersonDetails {
	return PersonDetails{
		ID:            m.ID,
		Name:          m.Name,
		Orcid:         m.Orcid,
		URL:           m.URL,
		Email:         m.Email,
		TwitterHandle: m.TwitterHandle,
		Comment:       m.Comment,
	}
}

// MapOrganizationDetails maps an organization row to its standalone
// representation.
func MapOrganizationDetails(m models.Organization) OrganizationDetails {
	return OrganizationDetails{
		ID:            m.ID,
		Name:          m.Name,
		Abbreviation:  m.Abbreviation,
		URL:           m.URL,
		Email:         m.Email,
		TwitterHandle: m.TwitterHandle,
		Comment:       m.Comment,
	}
}
