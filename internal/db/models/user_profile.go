package models

import "gorm.io/gorm"

// UserProfile represents one user account row.
// Deleting a profile only sets Deleted, rows are never removed.
type UserProfile struct {
	// ID is the hex encoded identifier of the profile.
	ID string `gorm:"column:id;primaryKey;size:32"`
	// Type is the integer rank of the account (guest, member, moderator, administrator).
	Type int `gorm:"column:type;not null;index"`
	// TypeEx is an extended, framework defined type marker.
	TypeEx string `gorm:"column:type_ex;size:100"`
	// Banned is set if the account has been banned.
	Banned bool `gorm:"column:banned;not null"`
	// Deleted is set if the account has been deleted.
	Deleted bool `gorm:"column:deleted;not null;index"`
	// Locked is set if the account has been locked temporarily.
	Locked bool `gorm:"column:locked;not null"`
	// Name is the user name used for login.
	Name string `gorm:"column:name;size:100;not null;index"`
	// Password is the Argon2id hash of the password.
	Password string `gorm:"column:password;size:255"`
	Lang     string `gorm:"column:lang;size:20"`
	Theme    string `gorm:"column:theme;size:100"`
	// Email is the e-mail address of the account.
	Email       string `gorm:"column:email;size:255;index"`
	EmailPublic bool   `gorm:"column:email_public;not null"`
	Credits     int    `gorm:"column:credits;not null"`
	Title       string `gorm:"column:title;size:255"`
	Avatar      string `gorm:"column:avatar;size:255"`
	Signature   string `gorm:"column:signature;type:text"`
	// RegistrationIP is the address used to register the account.
	RegistrationIP string `gorm:"column:registration_ip;size:100"`
	// RegistrationTime is the unix timestamp of the registration.
	RegistrationTime int64 `gorm:"column:registration_time;not null;index"`
	// SecID is the security id used to recover the account.
	SecID         string  `gorm:"column:secid;size:255"`
	LastvisitIP   string  `gorm:"column:lastvisit_ip;size:100"`
	LastvisitTime int64   `gorm:"column:lastvisit_time;not null"`
	Rating        int     `gorm:"column:rating;not null"`
	Timezone      float64 `gorm:"column:timezone;not null"`
}

// TableName specifies the database table name for the UserProfile model.
func (UserProfile) TableName() string {
	return "user_profile"
}

// GetID returns the row id.
func (p *UserProfile) GetID() string {
	return p.ID
}

// BeforeCreate assigns a new id to rows without one.
func (p *UserProfile) BeforeCreate(_ *gorm.DB) error {
	if p.ID == "" {
		p.ID = NewID()
	}

	return nil
}
