package user

import (
	"fmt"
	"strings"
)

// Type is the rank of an account. Higher ranks have more privileges.
type Type int

const (
	// TypeGuest is an account without registration privileges.
	TypeGuest Type = iota
	// TypeMember is a registered account.
	TypeMember
	// TypeModerator is an account moderating content of other members.
	TypeModerator
	// TypeAdministrator is an account managing the whole application.
	TypeAdministrator
)

var (
	typeNames = map[Type]string{ //nolint:gochecknoglobals
		TypeGuest:         "guest",
		TypeMember:        "member",
		TypeModerator:     "moderator",
		TypeAdministrator: "administrator",
	}

	typeRanks = map[string]Type{ //nolint:gochecknoglobals
		"guest":         TypeGuest,
		"member":        TypeMember,
		"moderator":     TypeModerator,
		"administrator": TypeAdministrator,
	}
)

// ParseType resolves a type name to its rank.
func ParseType(name string) (Type, error) {
	t, ok := typeRanks[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrUnknownType, name)
	}

	return t, nil
}

// String returns the type name, or the rank for types without a name.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}

	return fmt.Sprintf("Type(%d)", int(t))
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	name, ok := typeNames[t]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownType, int(t))
	}

	return []byte(name), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}

	*t = parsed

	return nil
}

// Types returns all named types ordered by rank.
func Types() []Type {
	return []Type{TypeGuest, TypeMember, TypeModerator, TypeAdministrator}
}
