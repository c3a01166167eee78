package acl

import (
	"gorm.io/gorm"

	"github.com/pas-services/pas-profile/internal/db/instance"
	"github.com/pas-services/pas-profile/internal/db/models"
	"github.com/pas-services/pas-profile/internal/text"
)

const entityPermission = "Permission"

// Permission wraps one permission row.
type Permission struct {
	inst *instance.Instance[models.Permission, *models.Permission]
}

func newPermission(db *gorm.DB, row *models.Permission) *Permission {
	return &Permission{
		inst: instance.New[models.Permission](db, row, instance.Options{Entity: entityPermission}),
	}
}

// PermissionAttributes are assigned by Permission.SetDataAttributes. Nil fields are left untouched.
type PermissionAttributes struct {
	Name      *string
	Permitted *bool
}

// SetDataAttributes assigns every set field of a. The name is normalized.
func (p *Permission) SetDataAttributes(a PermissionAttributes) {
	p.inst.Update(func(row *models.Permission) {
		if a.Name != nil {
			row.Name = text.Normalize(*a.Name)
		}

		if a.Permitted != nil {
			row.Permitted = *a.Permitted
		}
	})
}

// ID returns the permission id; empty for unsaved permissions.
func (p *Permission) ID() string {
	var id string

	p.inst.View(func(row *models.Permission) { id = row.ID })

	return id
}

// Name returns the permission name.
func (p *Permission) Name() string {
	var name string

	p.inst.View(func(row *models.Permission) { name = row.Name })

	return name
}

// IsPermitted reports whether the permission is granted.
func (p *Permission) IsPermitted() bool {
	var permitted bool

	p.inst.View(func(row *models.Permission) { permitted = row.Permitted })

	return permitted
}

// row returns the wrapped row for attaching it to an entry.
func (p *Permission) row() *models.Permission {
	var r *models.Permission

	p.inst.View(func(row *models.Permission) { r = row })

	return r
}
