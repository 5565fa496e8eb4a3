package dto

import (
	"time"

	"github.com/openimagingdata/radelement-api/internal/types"
)

// CreateUpdateSet is the request body for creating or rewriting an element set.
type CreateUpdateSet struct {
	Name                string                 `json:"name"`
	Description         string                 `json:"description"`
	ContactName         string                 `json:"contactName"`
	ParentID            *uint64                `json:"parentId,omitempty"`
	Modality            types.FlexList[string] `json:"modality,omitempty"`
	BiologicalSex       types.FlexList[string] `json:"biologicalSex,omitempty"`
	AgeLowerBound       *types.FlexFloat64     `json:"ageLowerBound,omitempty"`
	AgeUpperBound       *types.FlexFloat64     `json:"ageUpperBound,omitempty"`
	Version             string                 `json:"version"`
	VersionDate         *time.Time             `json:"versionDate,omitempty"`
	DeletedAt           *time.Time             `json:"deletedAt,omitempty"`
	IndexCodeReferences []IndexCodeReference   `json:"indexCodeReferences,omitempty"`
	Persons             []PersonRef            `json:"persons,omitempty"`
	Organizations       []OrganizationRef      `json:"organizations,omitempty"`
}

// SetIDDetails is the payload returned by the set create path.
type SetIDDetails struct {
	SetID string `json:"setId"`
}

// IndexCodeReference names an external code to attach to a set. References
// to unknown system abbreviations are skipped.
type IndexCodeReference struct {
	System  string `json:"system"`
	Code    string `json:"code"`
	Display string `json:"display"`
}

// IndexCodeDetails is one attached index code in a read response.
type IndexCodeDetails struct {
	ID            uint64    `json:"id"`
	Code          string    `json:"code"`
	System        string    `json:"system"`
	Display       string    `json:"display"`
	AccessionDate time.Time `json:"accessionDate"`
}

// ElementSetDetails is the full read representation of a set.
type ElementSetDetails struct {
	ID                      string                   `json:"id"`
	Name                    string                   `json:"name"`
	Description             string                   `json:"description"`
	ContactName             string                   `json:"contactName"`
	ParentID                *uint64                  `json:"parentId,omitempty"`
	Modality                []string                 `json:"modality,omitempty"`
	BiologicalSex           []string                 `json:"biologicalSex,omitempty"`
	AgeLowerBound           *float64                 `json:"ageLowerBound,omitempty"`
	AgeUpperBound           *float64                 `json:"ageUpperBound,omitempty"`
	Status                  string                   `json:"status"`
	StatusDate              time.Time                `json:"statusDate"`
	Version                 string                   `json:"version"`
	VersionDate             time.Time                `json:"versionDate"`
	IndexCodes              []IndexCodeDetails       `json:"indexCodes,omitempty"`
	PersonInformation       []PersonAttributes       `json:"personInformation,omitempty"`
	OrganizationInformation []OrganizationAttributes `json:"organizationInformation,omitempty"`
}
