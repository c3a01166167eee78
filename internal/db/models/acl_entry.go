package models

import "gorm.io/gorm"

// ACLEntry links an owned object with the permissions granted to an owner.
// The owner is identified by its type and id, for example a group "42".
type ACLEntry struct {
	// ID is the hex encoded identifier of the entry.
	ID string `gorm:"column:id;primaryKey;size:32"`
	// OwnedID is the id of the object protected by this entry.
	OwnedID string `gorm:"column:owned_id;size:100;index"`
	// OwnerID is the id of the owner, combined with OwnerType it forms the ACL id.
	OwnerID string `gorm:"column:owner_id;size:100;not null;index:idx_acl_entry_owner"`
	// OwnerType is the type of the owner (e.g. "user", "group").
	OwnerType string `gorm:"column:owner_type;size:100;not null;index:idx_acl_entry_owner"`
	// Permissions are the permission rows related to this entry.
	Permissions []*Permission `gorm:"many2many:acl_entry_permission;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for the ACLEntry model.
func (ACLEntry) TableName() string {
	return "acl_entry"
}

// GetID returns the row id.
func (e *ACLEntry) GetID() string {
	return e.ID
}

// BeforeCreate assigns a new id to rows without one.
func (e *ACLEntry) BeforeCreate(_ *gorm.DB) error {
	if e.ID == "" {
		e.ID = NewID()
	}

	return nil
}
