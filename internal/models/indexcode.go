package models

import (
	"time"
)

// IndexCode is an external coding-system reference (system + code + display)
// attachable to an element set. Lookup is get-or-create keyed on the
// (system abbreviation, code value) pair, case-insensitively.
type IndexCode struct {
	ID            uint64 `gorm:"primaryKey;autoIncrement"`
	Code          string `gorm:"size:255;not null"`
	System        string `gorm:"size:64;not null"` // abbreviation of the owning IndexCodeSystem
	Display       string `gorm:"size:255"`
	AccessionDate time.Time
}

// TableName overrides the table name for IndexCode
func (IndexCode) TableName() string {
	return "index_code"
}

// IndexCodeSystem is a known external coding system. Codes referencing an
// unknown system abbreviation are skipped, not rejected.
type IndexCodeSystem struct {
	ID     uint64 `gorm:"primaryKey;autoIncrement"`
	Abbrev string `gorm:"size:64;not null;uniqueIndex"`
	Name   string `gorm:"size:255"`
}

// TableName overrides the table name for IndexCodeSystem
func (IndexCodeSystem) TableName() string {
	return "index_code_system"
}

// IndexCodeElementSetRef links an index code to an element set.
type IndexCodeElementSetRef struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	ElementSetID uint64 `gorm:"not null;index"`
	CodeID       uint64 `gorm:"not null;index"`
}

// TableName overrides the table name for IndexCodeElementSetRef
func (IndexCodeElementSetRef) TableName() string {
	return "index_code_element_set_ref"
}
