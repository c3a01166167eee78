package acl

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/pas-services/pas-profile/internal/db/instance"
	"github.com/pas-services/pas-profile/internal/db/models"
)

// Entries creates and loads ACL entries.
type Entries struct {
	db *gorm.DB
}

// NewEntries creates the ACL entry service.
func NewEntries(db *gorm.DB) *Entries {
	return &Entries{db: db}
}

// New returns an unsaved entry without permissions.
func (s *Entries) New() *Entry {
	return newEntry(s.db, nil)
}

// NewPermission returns an unsaved permission.
func (s *Entries) NewPermission() *Permission {
	return newPermission(s.db, nil)
}

// LoadACLID loads the entry with the ACL id "{owner_type}_{owner_id}".
// The id is split on its first underscore.
func (s *Entries) LoadACLID(ctx context.Context, id string) (*Entry, error) {
	if id == "" {
		return nil, instance.NothingMatched("ACL ID is invalid")
	}

	ownerType, ownerID, ok := strings.Cut(id, "_")
	if !ok {
		return nil, instance.NothingMatchedf("ACL ID '%s' is invalid", id)
	}

	var row models.ACLEntry

	err := s.db.WithContext(ctx).
		Preload("Permissions").
		Where("owner_type = ? AND owner_id = ?", ownerType, ownerID).
		First(&row).Error
	instance.Observe(entityEntry, "load_acl_id", err)

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, instance.NothingMatchedf("ACL ID '%s' is invalid", id)
	}

	if err != nil {
		return nil, err
	}

	return newEntry(s.db, &row), nil
}

// LoadOwned loads the entries protecting the object ownedID, sorted by ACL id.
func (s *Entries) LoadOwned(ctx context.Context, ownedID string) ([]*Entry, error) {
	var rows []*models.ACLEntry

	err := s.db.WithContext(ctx).
		Preload("Permissions").
		Where("owned_id = ?", ownedID).
		Order("owner_type ASC").Order("owner_id ASC").
		Find(&rows).Error
	instance.Observe(entityEntry, "load_owned", err)

	if err != nil {
		return nil, err
	}

	entries := make([]*Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, newEntry(s.db, row))
	}

	return entries, nil
}
