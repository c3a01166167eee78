package user

import (
	"fmt"
	"time"

	"github.com/spf13/cast"

	"github.com/pas-services/pas-profile/internal/db/models"
	"github.com/pas-services/pas-profile/internal/text"
)

// Attributes is the set of values assigned by Profile.SetDataAttributes.
// Nil fields are left untouched.
type Attributes struct {
	Type             *Type
	TypeEx           *string
	Banned           *bool
	Deleted          *bool
	Locked           *bool
	Name             *string
	Password         *string // stored as given, see Profile.SetPassword for hashing
	Lang             *string
	Theme            *string
	Email            *string
	EmailPublic      *bool
	Credits          *int
	Title            *string
	Avatar           *string
	Signature        *string
	RegistrationIP   *string
	RegistrationTime *int64
	SecID            *string
	LastvisitIP      *string
	LastvisitTime    *int64
	Rating           *int
	Timezone         *float64
}

// apply assigns the set fields to row. Free-text fields are normalized.
func (a *Attributes) apply(row *models.UserProfile) {
	if a.Type != nil {
		row.Type = int(*a.Type)
	}

	setString(&row.TypeEx, a.TypeEx)
	setBool(&row.Banned, a.Banned)
	setBool(&row.Deleted, a.Deleted)
	setBool(&row.Locked, a.Locked)
	setText(&row.Name, a.Name)
	setString(&row.Password, a.Password)
	setString(&row.Lang, a.Lang)
	setString(&row.Theme, a.Theme)
	setText(&row.Email, a.Email)
	setBool(&row.EmailPublic, a.EmailPublic)
	setInt(&row.Credits, a.Credits)
	setText(&row.Title, a.Title)
	setString(&row.Avatar, a.Avatar)
	setText(&row.Signature, a.Signature)
	setString(&row.RegistrationIP, a.RegistrationIP)
	setInt64(&row.RegistrationTime, a.RegistrationTime)
	setString(&row.SecID, a.SecID)
	setString(&row.LastvisitIP, a.LastvisitIP)
	setInt64(&row.LastvisitTime, a.LastvisitTime)
	setInt(&row.Rating, a.Rating)

	if a.Timezone != nil {
		row.Timezone = *a.Timezone
	}
}

func setString(dst, src *string) {
	if src != nil {
		*dst = *src
	}
}

func setText(dst, src *string) {
	if src != nil {
		*dst = text.Normalize(*src)
	}
}

func setBool(dst, src *bool) {
	if src != nil {
		*dst = *src
	}
}

func setInt(dst, src *int) {
	if src != nil {
		*dst = *src
	}
}

func setInt64(dst, src *int64) {
	if src != nil {
		*dst = *src
	}
}

// AttributesFromMap converts keyword style input, keyed by column name, into Attributes.
// Unknown keys are ignored. Values are coerced to the column type; a value that
// can not be coerced fails the whole conversion.
func AttributesFromMap(values map[string]any) (Attributes, error) { //nolint:cyclop,funlen
	var (
		a   Attributes
		err error
	)

	for key, value := range values {
		switch key {
		case "type":
			a.Type, err = toType(value)
		case "type_ex":
			a.TypeEx, err = toPtr(value, cast.ToStringE)
		case "banned":
			a.Banned, err = toPtr(value, cast.ToBoolE)
		case "deleted":
			a.Deleted, err = toPtr(value, cast.ToBoolE)
		case "locked":
			a.Locked, err = toPtr(value, cast.ToBoolE)
		case "name":
			a.Name, err = toPtr(value, cast.ToStringE)
		case "password":
			a.Password, err = toPtr(value, cast.ToStringE)
		case "lang":
			a.Lang, err = toPtr(value, cast.ToStringE)
		case "theme":
			a.Theme, err = toPtr(value, cast.ToStringE)
		case "email":
			a.Email, err = toPtr(value, cast.ToStringE)
		case "email_public":
			a.EmailPublic, err = toPtr(value, cast.ToBoolE)
		case "credits":
			a.Credits, err = toPtr(value, cast.ToIntE)
		case "title":
			a.Title, err = toPtr(value, cast.ToStringE)
		case "avatar":
			a.Avatar, err = toPtr(value, cast.ToStringE)
		case "signature":
			a.Signature, err = toPtr(value, cast.ToStringE)
		case "registration_ip":
			a.RegistrationIP, err = toPtr(value, cast.ToStringE)
		case "registration_time":
			a.RegistrationTime, err = toPtr(value, toTimestamp)
		case "secid":
			a.SecID, err = toPtr(value, cast.ToStringE)
		case "lastvisit_ip":
			a.LastvisitIP, err = toPtr(value, cast.ToStringE)
		case "lastvisit_time":
			a.LastvisitTime, err = toPtr(value, toTimestamp)
		case "rating":
			a.Rating, err = toPtr(value, cast.ToIntE)
		case "timezone":
			a.Timezone, err = toPtr(value, cast.ToFloat64E)
		}

		if err != nil {
			return Attributes{}, fmt.Errorf("attribute %s: %w", key, err)
		}
	}

	return a, nil
}

func toPtr[T any](value any, conv func(any) (T, error)) (*T, error) {
	v, err := conv(value)
	if err != nil {
		return nil, err
	}

	return &v, nil
}

// toTimestamp accepts unix timestamps as numbers or numeric strings and time.Time values.
func toTimestamp(value any) (int64, error) {
	switch v := value.(type) {
	case time.Time:
		return v.Unix(), nil
	case *time.Time:
		if v == nil {
			return 0, nil
		}

		return v.Unix(), nil
	case float64:
		return int64(v), nil
	case float32:
		return int64(v), nil
	default:
		return cast.ToInt64E(value)
	}
}

// toType accepts a rank or a type name.
func toType(value any) (*Type, error) {
	switch v := value.(type) {
	case Type:
		return &v, nil
	case string:
		t, err := ParseType(v)
		if err != nil {
			return nil, err
		}

		return &t, nil
	default:
		rank, err := cast.ToIntE(value)
		if err != nil {
			return nil, err
		}

		t := Type(rank)

		return &t, nil
	}
}
