package dto

import (
	"github.com/openimagingdata/radelement-api/internal/types"
)

// PersonRef names a person to link to an element or set, with optional roles.
// Roles are deduplicated before insertion; no roles means one roleless link.
type PersonRef struct {
	PersonID uint64                 `json:"personId"`
	Roles    types.FlexList[string] `json:"roles,omitempty"`
}

// OrganizationRef names an organization to link to an element or set.
type OrganizationRef struct {
	OrganizationID uint64                 `json:"organizationId"`
	Roles          types.FlexList[string] `json:"roles,omitempty"`
}

// CreateUpdatePerson is the request body for creating or rewriting a person.
// SetID/ElementID optionally attach the person to one set and/or one element.
type CreateUpdatePerson struct {
	Name          string                 `json:"name"`
	Orcid         string                 `json:"orcid"`
	URL           string                 `json:"url"`
	Email         string                 `json:"email"`
	TwitterHandle string                 `json:"twitterHandle"`
	Comment       string                 `json:"comment"`
	SetID         string                 `json:"setId,omitempty"`
	ElementID     string                 `json:"elementId,omitempty"`
	Roles         types.FlexList[string] `json:"roles,omitempty"`
}

// CreateUpdateOrganization is the request body for creating or rewriting an
// organization.
type CreateUpdateOrganization struct {
	Name          string                 `json:"name"`
	Abbreviation  string                 `json:"abbreviation"`
	URL           string                 `json:"url"`
	Email         string                 `json:"email"`
	TwitterHandle string                 `json:"twitterHandle"`
	Comment       string                 `json:"comment"`
	SetID         string                 `json:"setId,omitempty"`
	ElementID     string                 `json:"elementId,omitempty"`
	Roles         types.FlexList[string] `json:"roles,omitempty"`
}

// PersonIDDetails is the payload returned by the person create path.
type PersonIDDetails struct {
	PersonID uint64 `json:"personId"`
}

// OrganizationIDDetails is the payload returned by the organization create path.
type OrganizationIDDetails struct {
	OrganizationID uint64 `json:"organizationId"`
}

// PersonAttributes is a person as it appears inside element/set responses,
// with the merged, deduplicated role list for that owner.
type PersonAttributes struct {
	ID            uint64   `json:"id"`
	Name          string   `json:"name"`
	Orcid         string   `json:"orcid,omitempty"`
	URL           string   `json:"url,omitempty"`
	Email         string   `json:"email,omitempty"`
	TwitterHandle string   `json:"twitterHandle,omitempty"`
	Comment       string   `json:"comment,omitempty"`
	Roles         []string `json:"roles"`
}

// OrganizationAttributes is an organization inside element/set responses.
type OrganizationAttributes struct {
	ID            uint64   `json:"id"`
	Name          string   `json:"name"`
	Abbreviation  string   `json:"abbreviation,omitempty"`
	URL           string   `json:"url,omitempty"`
	Email         string   `json:"email,omitempty"`
	TwitterHandle string   `json:"twitterHandle,omitempty"`
	Comment       string   `json:"comment,omitempty"`
	Roles         []string `json:"roles"`
}

// PersonDetails is the standalone read representation of a person.
type PersonDetails struct {
	ID            uint64 `json:"id"`
	Name          string `json:"name"`
	Orcid         string `json:"orcid,omitempty"`
	URL           string `json:"url,omitempty"`
	Email         string `json:"email,omitempty"`
	TwitterHandle string `json:"twitterHandle,omitempty"`
	Comment       string `json:"comment,omitempty"`
}

// OrganizationDetails is the standalone read representation of an organization.
type OrganizationDetails struct {
	ID            uint64 `json:"id"`
	Name          string `json:"name"`
	Abbreviation  string `json:"abbreviation,omitempty"`
	URL           string `json:"url,omitempty"`
	Email         string `json:"email,omitempty"`
	TwitterHandle string `json:"twitterHandle,omitempty"`
	Comment       string `json:"comment,omitempty"`
}
