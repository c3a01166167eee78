package acl

import (
	"context"
	"slices"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pas-services/pas-profile/internal/db/instance"
	"github.com/pas-services/pas-profile/internal/db/models"
	"github.com/pas-services/pas-profile/internal/text"
)

const entityEntry = "ACL"

type cachedPermission struct {
	permitted bool
	row       *models.Permission
}

// Entry wraps one acl_entry row together with its permission rows.
//
// cache and removed are guarded by the instance lock. A nil cache has not been
// built yet; once built it stays for the lifetime of the Entry.
type Entry struct {
	inst    *instance.Instance[models.ACLEntry, *models.ACLEntry]
	cache   map[string]cachedPermission
	removed []*models.Permission
}

func newEntry(db *gorm.DB, row *models.ACLEntry) *Entry {
	return &Entry{
		inst: instance.New[models.ACLEntry](db, row, instance.Options{
			Entity:   entityEntry,
			Preloads: []string{"Permissions"},
		}),
	}
}

// EntryAttributes are assigned by Entry.SetDataAttributes. Nil fields are left untouched.
type EntryAttributes struct {
	OwnedID   *string
	OwnerID   *string
	OwnerType *string
}

// SetDataAttributes assigns every set field of a.
func (e *Entry) SetDataAttributes(a EntryAttributes) {
	e.inst.Update(func(row *models.ACLEntry) {
		if a.OwnedID != nil {
			row.OwnedID = *a.OwnedID
		}

		if a.OwnerID != nil {
			row.OwnerID = *a.OwnerID
		}

		if a.OwnerType != nil {
			row.OwnerType = *a.OwnerType
		}
	})
}

// ID returns the entry id; empty for unsaved entries.
func (e *Entry) ID() string {
	var id string

	e.inst.View(func(row *models.ACLEntry) { id = row.ID })

	return id
}

// ACLID returns the ACL id "{owner_type}_{owner_id}".
func (e *Entry) ACLID() string {
	var id string

	e.inst.View(func(row *models.ACLEntry) { id = aclID(row) })

	return id
}

func aclID(row *models.ACLEntry) string {
	return row.OwnerType + "_" + row.OwnerID
}

// OwnedID returns the id of the protected object.
func (e *Entry) OwnedID() string {
	var id string

	e.inst.View(func(row *models.ACLEntry) { id = row.OwnedID })

	return id
}

// OwnerID returns the id of the owner.
func (e *Entry) OwnerID() string {
	var id string

	e.inst.View(func(row *models.ACLEntry) { id = row.OwnerID })

	return id
}

// OwnerType returns the type of the owner.
func (e *Entry) OwnerType() string {
	var t string

	e.inst.View(func(row *models.ACLEntry) { t = row.OwnerType })

	return t
}

// AddPermission attaches the row of p to the entry. A nil p is ignored.
// The permission cache is not touched, use SetPermission for named permissions.
func (e *Entry) AddPermission(p *Permission) {
	if p == nil {
		return
	}

	permission := p.row()

	e.inst.Update(func(row *models.ACLEntry) { e.addPermission(row, permission) })
}

// RemovePermission detaches the row of p from the entry. A nil p is ignored.
// Stored permission rows are deleted on the next Save.
func (e *Entry) RemovePermission(p *Permission) {
	if p == nil {
		return
	}

	permission := p.row()

	e.inst.Update(func(row *models.ACLEntry) { e.removePermission(row, permission) })
}

func (e *Entry) addPermission(row *models.ACLEntry, permission *models.Permission) {
	row.Permissions = append(row.Permissions, permission)
	e.removed = slices.DeleteFunc(e.removed, func(r *models.Permission) bool {
		return samePermission(r, permission)
	})

	log.Debug().Str("acl", aclID(row)).Str("permission", permission.Name).Msg("permission added")
}

func (e *Entry) removePermission(row *models.ACLEntry, permission *models.Permission) {
	before := len(row.Permissions)

	row.Permissions = slices.DeleteFunc(row.Permissions, func(r *models.Permission) bool {
		return samePermission(r, permission)
	})

	if len(row.Permissions) == before {
		return
	}

	if permission.ID != "" {
		e.removed = append(e.removed, permission)
	}

	log.Debug().Str("acl", aclID(row)).Str("permission", permission.Name).Msg("permission removed")
}

func samePermission(a, b *models.Permission) bool {
	return a == b || (a.ID != "" && a.ID == b.ID)
}

// initCache builds the permission cache from the related rows unless it exists.
func (e *Entry) initCache(row *models.ACLEntry) {
	if e.cache != nil {
		return
	}

	e.cache = make(map[string]cachedPermission, len(row.Permissions))

	for _, permission := range row.Permissions {
		e.cache[permission.Name] = cachedPermission{permitted: permission.Permitted, row: permission}
	}

	log.Debug().Str("acl", aclID(row)).Int("permissions", len(e.cache)).Msg("permission cache built")
}

// SetPermission adds the permission name with the given flag.
// A name already known to the entry is left as it is; its flag is not changed.
func (e *Entry) SetPermission(name string, permitted bool) {
	name = text.Normalize(name)

	e.inst.Update(func(row *models.ACLEntry) {
		e.initCache(row)

		if _, ok := e.cache[name]; ok {
			return
		}

		permission := &models.Permission{Name: name, Permitted: permitted}
		e.addPermission(row, permission)
		e.cache[name] = cachedPermission{permitted: permitted, row: permission}
	})
}

// UnsetPermission removes the permission name. Unknown names are ignored.
// Like SetPermission it builds the permission cache when it does not exist yet.
func (e *Entry) UnsetPermission(name string) {
	name = text.Normalize(name)

	e.inst.Update(func(row *models.ACLEntry) {
		e.initCache(row)

		cached, ok := e.cache[name]
		if !ok {
			return
		}

		e.removePermission(row, cached.row)
		delete(e.cache, name)
	})
}

// IsPermitted reports whether the permission name is known and granted.
func (e *Entry) IsPermitted(name string) bool {
	name = text.Normalize(name)

	var permitted bool

	e.inst.Update(func(row *models.ACLEntry) {
		e.initCache(row)
		permitted = e.cache[name].permitted
	})

	return permitted
}

// Permissions returns the known permission names and their flags.
func (e *Entry) Permissions() map[string]bool {
	var permissions map[string]bool

	e.inst.Update(func(row *models.ACLEntry) {
		e.initCache(row)

		permissions = make(map[string]bool, len(e.cache))
		for name, cached := range e.cache {
			permissions[name] = cached.permitted
		}
	})

	return permissions
}

// IsReloadable reports whether the entry has been stored.
func (e *Entry) IsReloadable() bool {
	return e.inst.IsReloadable()
}

// Save stores the entry, its permission rows and their links in one transaction.
// Permission rows removed since the last save are deleted.
func (e *Entry) Save(ctx context.Context) error {
	return e.inst.Save(ctx, func(tx *gorm.DB, row *models.ACLEntry) error {
		if err := tx.Omit(clause.Associations).Save(row).Error; err != nil {
			return err
		}

		for _, permission := range row.Permissions {
			if err := tx.Save(permission).Error; err != nil {
				return err
			}
		}

		permissions := tx.Model(row).Association("Permissions")

		var err error
		if len(row.Permissions) == 0 {
			err = permissions.Clear()
		} else {
			err = permissions.Replace(row.Permissions)
		}

		if err != nil {
			return err
		}

		if err := deletePermissions(tx, e.removed); err != nil {
			return err
		}

		e.removed = nil

		return nil
	})
}

// Delete removes the entry together with its permission rows.
func (e *Entry) Delete(ctx context.Context) error {
	return e.inst.Delete(ctx, func(tx *gorm.DB, row *models.ACLEntry) error {
		orphans := slices.Concat(row.Permissions, e.removed)

		if err := tx.Model(row).Association("Permissions").Clear(); err != nil {
			return err
		}

		if err := deletePermissions(tx, orphans); err != nil {
			return err
		}

		if err := tx.Delete(row).Error; err != nil {
			return err
		}

		row.Permissions = nil
		e.removed = nil

		if e.cache != nil {
			clear(e.cache)
		}

		return nil
	})
}

func deletePermissions(tx *gorm.DB, permissions []*models.Permission) error {
	ids := make([]string, 0, len(permissions))

	for _, permission := range permissions {
		if permission.ID != "" {
			ids = append(ids, permission.ID)
		}
	}

	if len(ids) == 0 {
		return nil
	}

	return tx.Where("id IN ?", ids).Delete(&models.Permission{}).Error
}
