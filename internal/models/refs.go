package models

// Role-tagged junction rows. Role is optional: an empty role is a single
// unqualified "linked" relation. A target may appear once per distinct role
// but never twice with the same role.

// PersonRoleElementRef links a person to an element with an optional role.
type PersonRoleElementRef struct {
	ID        uint64 `gorm:"primaryKey;autoIncrement"`
	ElementID uint64 `gorm:"not null;index"`
	PersonID  uint64 `gorm:"not null;index"`
	Role      string `gorm:"size:64"`
}

// TableName overrides the table name for PersonRoleElementRef
func (PersonRoleElementRef) TableName() string {
	return "person_role_element_ref"
}

// PersonRoleElementSetRef links a person to an element set with an optional role.
type PersonRoleElementSetRef struct {
	ID           uint64 `gorm:"primaryKey;autoIncrement"`
	ElementSetID uint64 `gorm:"not null;index"`
	PersonID     uint64 `gorm:"not null;index"`
	Role         string `gorm:"size:64"`
}

// TableName overrides the table name for PersonRoleElementSetRef
func (PersonRoleElementSetRef) TableName() string {
	return "person_role_element_set_ref"
}

// OrganizationRoleElementRef links an organization to an element with an optional role.
type OrganizationRoleElementRef struct {
	ID             uint64 `gorm:"primaryKey;autoIncrement"`
	ElementID      uint64 `gorm:"not null;index"`
	OrganizationID uint64 `gorm:"not null;index"`
	Role           string `gorm:"size:64"`
}

// TableName overrides the table name for OrganizationRoleElementRef
func (OrganizationRoleElementRef) TableName() string {
	return "organization_role_element_ref"
}

// OrganizationRoleElementSetRef links an organization to an element set with an optional role.
type OrganizationRoleElementSetRef struct {
	ID             uint64 `gorm:"primaryKey;autoIncrement"`
	ElementSetID   uint64 `gorm:"not null;index"`
	OrganizationID uint64 `gorm:"not null;index"`
	Role           string `gorm:"size:64"`
}

// TableName overrides the table name for OrganizationRoleElementSetRef
func (OrganizationRoleElementSetRef) TableName() string {
	return "organization_role_element_set_ref"
}
