package models

import "gorm.io/gorm"

// Permission represents a named permission granted or denied through an ACL entry.
// Permission rows are created, looked up and removed through their entry only.
type Permission struct {
	// ID is the hex encoded identifier of the permission.
	ID string `gorm:"column:id;primaryKey;size:32"`
	// Name is the permission identifier (e.g. "edit", "zone.create").
	Name string `gorm:"column:name;size:100;not null;index"`
	// Permitted is true if the permission is granted, false if it is explicitly denied.
	Permitted bool `gorm:"column:permitted;not null"`
}

// TableName specifies the database table name for the Permission model.
func (Permission) TableName() string {
	return "permission"
}

// GetID returns the row id.
func (p *Permission) GetID() string {
	return p.ID
}

// BeforeCreate assigns a new id to rows without one.
func (p *Permission) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID()
	}

	return nil
}
