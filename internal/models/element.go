package models

import (
	"time"
)

// Element represents a single reusable data element definition, publicly
// identified as "RDE<id>".
type Element struct {
	ID             uint64 `gorm:"primaryKey;autoIncrement"`
	Name           string `gorm:"size:255;not null"`
	ShortName      string `gorm:"size:255"`
	Definition     string
	ValueType      string `gorm:"size:32;not null"` // integer|float|valueSet|date|string
	MinCardinality uint   `gorm:"not null;default:1"`
	MaxCardinality uint   `gorm:"not null;default:1"`
	Unit           string `gorm:"size:255"`
	Question       string
	Instructions   string
	References     string
	Version        string `gorm:"size:8"`
	VersionDate    time.Time
	Synonyms       string
	Source         string `gorm:"size:255"`
	Status         string `gorm:"size:64"`
	StatusDate     time.Time
	Editor         string `gorm:"size:255"`
	// Modality and BiologicalSex are comma-joined at the storage boundary
	// only; everywhere else they are ordered string slices.
	Modality      *string `gorm:"size:255"`
	BiologicalSex *string `gorm:"size:255"`
	AgeLowerBound *float64
	AgeUpperBound *float64
	ValueMin      *float64
	ValueMax      *float64
	StepValue     *float64
	ValueSize     uint
}

// TableName overrides the table name for Element
func (Element) TableName() string {
	return "element"
}

// ElementValue is one choice option of a valueSet element.
type ElementValue struct {
	ID         uint64 `gorm:"primaryKey;autoIncrement"`
	ElementID  uint64 `gorm:"not null;index"`
	Name       string `gorm:"size:255;not null"`
	Value      string `gorm:"size:255"`
	Definition string
	Images     JSON `gorm:"type:json"`
}

// TableName overrides the table name for ElementValue
func (ElementValue) TableName() string {
	return "element_value"
}
