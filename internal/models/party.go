package models

// Person is a contributor to elements and sets. Duplicate detection treats
// the whole profile (name plus every contact attribute) as the identity.
type Person struct {
	ID            uint64 `gorm:"primaryKey;autoIncrement"`
	Name          string `gorm:"size:255;not null"`
	Orcid         string `gorm:"size:255"`
	URL           string `gorm:"size:255;column:url"`
	Email         string `gorm:"size:255"`
	TwitterHandle string `gorm:"size:255"`
	Comment       string `gorm:"size:255"`
}

// TableName overrides the table name for Person
func (Person) TableName() string {
	return "person"
}

// Organization is an institutional contributor to elements and sets.
type Organization struct {
	ID            uint64 `gorm:"primaryKey;autoIncrement"`
	Name          string `gorm:"size:255;not null"`
	Abbreviation  string `gorm:"size:255"`
	URL           string `gorm:"size:255;column:url"`
	Email         string `gorm:"size:255"`
	TwitterHandle string `gorm:"size:255"`
	Comment       string `gorm:"size:255"`
}

// TableName overrides the table name for Organization
func (Organization) TableName() string {
	return "organization"
}
