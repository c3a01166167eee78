package user

import (
	"context"

	"gorm.io/gorm"

	"github.com/pas-services/pas-profile/internal/db/instance"
	"github.com/pas-services/pas-profile/internal/db/models"
)

const entityProfile = "Profile"

// Profile wraps one user_profile row.
// A Profile may be shared between goroutines; every access holds the instance lock.
type Profile struct {
	inst     *instance.Instance[models.UserProfile, *models.UserProfile]
	settings Settings
}

func newProfile(db *gorm.DB, row *models.UserProfile, settings Settings) *Profile {
	return &Profile{
		inst:     instance.New[models.UserProfile](db, row, instance.Options{Entity: entityProfile}),
		settings: settings,
	}
}

// IsBanned checks if the user has been banned.
func (p *Profile) IsBanned() bool {
	var banned bool

	p.inst.View(func(row *models.UserProfile) { banned = row.Banned })

	return banned
}

// IsDeleted checks if the user has been deleted.
func (p *Profile) IsDeleted() bool {
	var deleted bool

	p.inst.View(func(row *models.UserProfile) { deleted = row.Deleted })

	return deleted
}

// IsLocked checks if the user has been locked.
func (p *Profile) IsLocked() bool {
	var locked bool

	p.inst.View(func(row *models.UserProfile) { locked = row.Locked })

	return locked
}

// IsValid checks if the user is neither banned, deleted nor locked.
func (p *Profile) IsValid() bool {
	valid := false

	p.inst.View(func(row *models.UserProfile) {
		valid = !row.Banned && !row.Deleted && !row.Locked
	})

	return valid
}

// IsType checks if the user type is t.
func (p *Profile) IsType(t Type) bool {
	return p.rank() == t
}

// IsTypeOrHigher checks if the user type is t or has higher privileges.
func (p *Profile) IsTypeOrHigher(t Type) bool {
	return p.rank() >= t
}

// IsTypeOrLower checks if the user type is t or has lower privileges.
func (p *Profile) IsTypeOrLower(t Type) bool {
	return p.rank() <= t
}

// IsTypeName is IsType for a type name.
func (p *Profile) IsTypeName(name string) (bool, error) {
	t, err := ParseType(name)
	if err != nil {
		return false, err
	}

	return p.IsType(t), nil
}

// IsTypeNameOrHigher is IsTypeOrHigher for a type name.
func (p *Profile) IsTypeNameOrHigher(name string) (bool, error) {
	t, err := ParseType(name)
	if err != nil {
		return false, err
	}

	return p.IsTypeOrHigher(t), nil
}

// IsTypeNameOrLower is IsTypeOrLower for a type name.
func (p *Profile) IsTypeNameOrLower(name string) (bool, error) {
	t, err := ParseType(name)
	if err != nil {
		return false, err
	}

	return p.IsTypeOrLower(t), nil
}

func (p *Profile) rank() Type {
	var t Type

	p.inst.View(func(row *models.UserProfile) { t = Type(row.Type) })

	return t
}

// Lock locks the user profile.
func (p *Profile) Lock() {
	locked := true
	p.SetDataAttributes(Attributes{Locked: &locked})
}

// Unlock unlocks the user profile.
func (p *Profile) Unlock() {
	locked := false
	p.SetDataAttributes(Attributes{Locked: &locked})
}

// SetDataAttributes assigns every set field of a.
// Name, e-mail, title and signature are normalized to NFC UTF-8.
func (p *Profile) SetDataAttributes(a Attributes) {
	p.inst.Update(a.apply)
}

// IsReloadable reports whether the profile has been stored and can be read again.
func (p *Profile) IsReloadable() bool {
	return p.inst.IsReloadable()
}

// Reload replaces the in-memory values with the stored ones.
func (p *Profile) Reload(ctx context.Context) error {
	return p.inst.Reload(ctx)
}

// Save stores the profile. New profiles get their id assigned.
func (p *Profile) Save(ctx context.Context) error {
	return p.inst.Save(ctx, nil)
}

// DataAttributes returns a copy of all stored values.
func (p *Profile) DataAttributes() models.UserProfile {
	var data models.UserProfile

	p.inst.View(func(row *models.UserProfile) { data = *row })

	return data
}

// ID returns the profile id; empty for unsaved profiles.
func (p *Profile) ID() string {
	var id string

	p.inst.View(func(row *models.UserProfile) { id = row.ID })

	return id
}

// Type returns the type rank.
func (p *Profile) Type() Type {
	return p.rank()
}

// TypeEx returns the extended type marker.
func (p *Profile) TypeEx() string { return p.DataAttributes().TypeEx }

// Name returns the user name.
func (p *Profile) Name() string { return p.DataAttributes().Name }

// Email returns the e-mail address.
func (p *Profile) Email() string { return p.DataAttributes().Email }

// IsEmailPublic reports whether the e-mail address may be shown to other users.
func (p *Profile) IsEmailPublic() bool { return p.DataAttributes().EmailPublic }

// PasswordHash returns the stored password hash.
func (p *Profile) PasswordHash() string { return p.DataAttributes().Password }

// Lang returns the preferred language.
func (p *Profile) Lang() string { return p.DataAttributes().Lang }

// Theme returns the preferred theme.
func (p *Profile) Theme() string { return p.DataAttributes().Theme }

// Credits returns the credits of the account.
func (p *Profile) Credits() int { return p.DataAttributes().Credits }

// Title returns the user title.
func (p *Profile) Title() string { return p.DataAttributes().Title }

// Avatar returns the avatar reference.
func (p *Profile) Avatar() string { return p.DataAttributes().Avatar }

// Signature returns the signature text.
func (p *Profile) Signature() string { return p.DataAttributes().Signature }

// RegistrationIP returns the address used for the registration.
func (p *Profile) RegistrationIP() string { return p.DataAttributes().RegistrationIP }

// RegistrationTime returns the unix timestamp of the registration.
func (p *Profile) RegistrationTime() int64 { return p.DataAttributes().RegistrationTime }

// SecID returns the security id.
func (p *Profile) SecID() string { return p.DataAttributes().SecID }

// LastvisitIP returns the address of the last visit.
func (p *Profile) LastvisitIP() string { return p.DataAttributes().LastvisitIP }

// LastvisitTime returns the unix timestamp of the last visit.
func (p *Profile) LastvisitTime() int64 { return p.DataAttributes().LastvisitTime }

// Rating returns the rating of the account.
func (p *Profile) Rating() int { return p.DataAttributes().Rating }

// Timezone returns the timezone offset in hours.
func (p *Profile) Timezone() float64 { return p.DataAttributes().Timezone }
