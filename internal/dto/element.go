package dto

import (
	"time"

	"github.com/openimagingdata/radelement-api/internal/types"
)

// ElementType is the request-level value type of a data element.
type ElementType string

const (
	ElementTypeInteger     ElementType = "Integer"
	ElementTypeNumeric     ElementType = "Numeric"
	ElementTypeChoice      ElementType = "Choice"
	ElementTypeMultiChoice ElementType = "MultiChoice"
	ElementTypeDateTime    ElementType = "DateTime"
	ElementTypeString      ElementType = "String"
)

// Valid reports whether t is one of the known element types.
func (t ElementType) Valid() bool {
	switch t {
	case ElementTypeInteger, ElementTypeNumeric, ElementTypeChoice,
		ElementTypeMultiChoice, ElementTypeDateTime, ElementTypeString:
		return true
	}
	return false
}

// IsChoice reports whether t carries options.
func (t ElementType) IsChoice() bool {
	return t == ElementTypeChoice || t == ElementTypeMultiChoice
}

// StorageValueType maps the request-level type to the storage-level tag.
func (t ElementType) StorageValueType() string {
	switch t {
	case ElementTypeInteger:
		return "integer"
	case ElementTypeNumeric:
		return "float"
	case ElementTypeChoice, ElementTypeMultiChoice:
		return "valueSet"
	case ElementTypeDateTime:
		return "date"
	case ElementTypeString:
		return "string"
	}
	return ""
}

// Option is one choice of a valueSet element.
type Option struct {
	Name       string                 `json:"name"`
	Value      string                 `json:"value"`
	Definition string                 `json:"definition"`
	Images     types.FlexList[string] `json:"images,omitempty"`
}

// CreateElement is the request body for creating an element under a set.
// When ElementID is non-empty the request attaches that existing element to
// the set instead of creating a new one.
type CreateElement struct {
	ElementID     string                 `json:"elementId,omitempty"`
	Name          string                 `json:"name"`
	ShortName     string                 `json:"shortName"`
	Definition    string                 `json:"definition"`
	ValueType     ElementType            `json:"valueType"`
	Options       []Option               `json:"options,omitempty"`
	Unit          string                 `json:"unit"`
	Question      string                 `json:"question"`
	Instructions  string                 `json:"instructions"`
	References    string                 `json:"references"`
	Version       string                 `json:"version"`
	VersionDate   *time.Time             `json:"versionDate,omitempty"`
	Synonyms      string                 `json:"synonyms"`
	Source        string                 `json:"source"`
	Editor        string                 `json:"editor"`
	Modality      types.FlexList[string] `json:"modality,omitempty"`
	BiologicalSex types.FlexList[string] `json:"biologicalSex,omitempty"`
	AgeLowerBound *types.FlexFloat64     `json:"ageLowerBound,omitempty"`
	AgeUpperBound *types.FlexFloat64     `json:"ageUpperBound,omitempty"`
	ValueMin      *types.FlexFloat64     `json:"valueMin,omitempty"`
	ValueMax      *types.FlexFloat64     `json:"valueMax,omitempty"`
	Persons       []PersonRef            `json:"persons,omitempty"`
	Organizations []OrganizationRef      `json:"organizations,omitempty"`
}

// UpdateElement is the request body for rewriting an element. Every scalar
// field is overwritten; there is no partial update.
type UpdateElement struct {
	Name          string                 `json:"name"`
	ShortName     string                 `json:"shortName"`
	Definition    string                 `json:"definition"`
	ValueType     ElementType            `json:"valueType"`
	Options       []Option               `json:"options,omitempty"`
	Unit          string                 `json:"unit"`
	Question      string                 `json:"question"`
	Instructions  string                 `json:"instructions"`
	References    string                 `json:"references"`
	Version       string                 `json:"version"`
	Synonyms      string                 `json:"synonyms"`
	Source        string                 `json:"source"`
	Editor        string                 `json:"editor"`
	Modality      types.FlexList[string] `json:"modality,omitempty"`
	BiologicalSex types.FlexList[string] `json:"biologicalSex,omitempty"`
	AgeLowerBound *types.FlexFloat64     `json:"ageLowerBound,omitempty"`
	AgeUpperBound *types.FlexFloat64     `json:"ageUpperBound,omitempty"`
	ValueMin      *types.FlexFloat64     `json:"valueMin,omitempty"`
	ValueMax      *types.FlexFloat64     `json:"valueMax,omitempty"`
	Persons       []PersonRef            `json:"persons,omitempty"`
	Organizations []OrganizationRef      `json:"organizations,omitempty"`
}

// ElementIDDetails is the payload returned by the element create paths.
type ElementIDDetails struct {
	ElementID string `json:"elementId"`
}

// SetBasicAttributes identifies one set owning an element.
type SetBasicAttributes struct {
	SetID   string `json:"setId"`
	SetName string `json:"setName"`
}

// ElementValueDetails is one persisted option in a read response.
type ElementValueDetails struct {
	ID         uint64   `json:"id"`
	Name       string   `json:"name"`
	Value      string   `json:"value"`
	Definition string   `json:"definition"`
	Images     []string `json:"images,omitempty"`
}

// ElementDetails is the full read representation of an element.
type ElementDetails struct {
	ID                      string                   `json:"id"`
	Name                    string                   `json:"name"`
	ShortName               string                   `json:"shortName"`
	Definition              string                   `json:"definition"`
	ValueType               string                   `json:"valueType"`
	MinCardinality          uint                     `json:"minCardinality"`
	MaxCardinality          uint                     `json:"maxCardinality"`
	Unit                    string                   `json:"unit"`
	Question                string                   `json:"question"`
	Instructions            string                   `json:"instructions"`
	References              string                   `json:"references"`
	Version                 string                   `json:"version"`
	VersionDate             time.Time                `json:"versionDate"`
	Synonyms                string                   `json:"synonyms"`
	Source                  string                   `json:"source"`
	Status                  string                   `json:"status"`
	StatusDate              time.Time                `json:"statusDate"`
	Editor                  string                   `json:"editor"`
	Modality                []string                 `json:"modality,omitempty"`
	BiologicalSex           []string                 `json:"biologicalSex,omitempty"`
	AgeLowerBound           *float64                 `json:"ageLowerBound,omitempty"`
	AgeUpperBound           *float64                 `json:"ageUpperBound,omitempty"`
	ValueMin                *float64                 `json:"valueMin,omitempty"`
	ValueMax                *float64                 `json:"valueMax,omitempty"`
	StepValue               *float64                 `json:"stepValue,omitempty"`
	ValueSize               uint                     `json:"valueSize"`
	ElementValues           []ElementValueDetails    `json:"elementValues,omitempty"`
	SetInformation          []SetBasicAttributes     `json:"setInformation,omitempty"`
	PersonInformation       []PersonAttributes       `json:"personInformation,omitempty"`
	OrganizationInformation []OrganizationAttributes `json:"organizationInformation,omitempty"`
}
