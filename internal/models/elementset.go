package models

import (
	"time"
)

// ElementSet is a named, versioned collection of elements, publicly
// identified as "RDES<id>".
type ElementSet struct {
	ID            uint64 `gorm:"primaryKey;autoIncrement"`
	Name          string `gorm:"size:255;not null"`
	Description   string
	ContactName   string  `gorm:"size:255"`
	ParentID      *uint64 `gorm:"index"`
	Modality      *string `gorm:"size:255"`
	BiologicalSex *string `gorm:"size:255"`
	AgeLowerBound *float64
	AgeUpperBound *float64
	Status        string `gorm:"size:64"`
	StatusDate    time.Time
	Version       string `gorm:"size:8"`
	VersionDate   time.Time
	DeletedAt     *time.Time `gorm:"column:deleted_at"`
}

// TableName overrides the table name for ElementSet
func (ElementSet) TableName() string {
	return "element_set"
}

// ElementSetRef links an element into a set. No role qualifier.
type ElementSetRef struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	ElementSetID uint64 `gorm:"not null;index:idx_set_element"`
	ElementID    uint64 `gorm:"not null;index:idx_set_element"`
}

// TableName overrides the table name for ElementSetRef
func (ElementSetRef) TableName() string {
	return "element_set_ref"
}
